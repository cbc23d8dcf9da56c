package domain

import "strings"

// DefaultPackaging is assumed when a descriptor declares no packaging.
const DefaultPackaging = "jar"

// ModelVersion is the only POM schema version the engine accepts.
const ModelVersion = "4.0.0"

// Coordinate identifies a project, dependency, or plugin.
// Grouping for conflict detection uses GroupID:ArtifactID only;
// the version is a separate comparison axis.
type Coordinate struct {
	GroupID    string `json:"group_id"`
	ArtifactID string `json:"artifact_id"`
	Version    string `json:"version,omitempty"`
}

// Key returns the groupId:artifactId grouping key.
func (c Coordinate) Key() string {
	return c.GroupID + ":" + c.ArtifactID
}

func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Key()
	}
	return c.Key() + ":" + c.Version
}

// DependencyEntry is one declared dependency, direct or managed.
type DependencyEntry struct {
	Coordinate
	Scope    string `json:"scope,omitempty"`
	Type     string `json:"type,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Managed  bool   `json:"managed,omitempty"`
}

// DefaultPluginGroupID is assumed for plugins that omit a groupId.
const DefaultPluginGroupID = "org.apache.maven.plugins"

// PluginEntry is one declared build plugin, direct or managed.
type PluginEntry struct {
	Coordinate
	Managed bool `json:"managed,omitempty"`
}

// EffectiveGroupID returns the plugin's groupId, falling back to the
// standard Maven plugin group when none is declared.
func (p PluginEntry) EffectiveGroupID() string {
	if p.GroupID != "" {
		return p.GroupID
	}
	return DefaultPluginGroupID
}

// Coords returns the plugin grouping key with the default group applied.
func (p PluginEntry) Coords() string {
	return p.EffectiveGroupID() + ":" + p.ArtifactID
}

// ParentRef is a descriptor's reference to its parent project.
// RelativePathSet distinguishes an explicitly empty <relativePath/>,
// which disables local parent resolution, from an absent element.
type ParentRef struct {
	Coordinate
	RelativePath    string `json:"relative_path,omitempty"`
	RelativePathSet bool   `json:"relative_path_set,omitempty"`
}

// ProjectDescriptor is the parsed in-memory representation of one POM file.
// Identity is the filesystem path. Descriptors are read-only during
// validation; remediation replaces the whole object, never patches it.
type ProjectDescriptor struct {
	Path string `json:"path"`

	ModelVersion string `json:"model_version"`
	GroupID      string `json:"group_id,omitempty"`
	ArtifactID   string `json:"artifact_id"`
	Version      string `json:"version,omitempty"`
	Packaging    string `json:"packaging,omitempty"`

	Parent  *ParentRef `json:"parent,omitempty"`
	Modules []string   `json:"modules,omitempty"`

	Dependencies         []DependencyEntry `json:"dependencies,omitempty"`
	DependencyManagement []DependencyEntry `json:"dependency_management,omitempty"`
	Plugins              []PluginEntry     `json:"plugins,omitempty"`
	PluginManagement     []PluginEntry     `json:"plugin_management,omitempty"`

	Properties map[string]string `json:"properties,omitempty"`
}

// EffectivePackaging returns the declared packaging or the "jar" default.
func (d *ProjectDescriptor) EffectivePackaging() string {
	if d.Packaging == "" {
		return DefaultPackaging
	}
	return d.Packaging
}

// EffectiveGroupID returns the descriptor's groupId, inherited from the
// parent reference when absent.
func (d *ProjectDescriptor) EffectiveGroupID() string {
	if !isBlank(d.GroupID) {
		return d.GroupID
	}
	if d.Parent != nil {
		return d.Parent.GroupID
	}
	return ""
}

// EffectiveVersion returns the descriptor's version, inherited from the
// parent reference when absent.
func (d *ProjectDescriptor) EffectiveVersion() string {
	if !isBlank(d.Version) {
		return d.Version
	}
	if d.Parent != nil {
		return d.Parent.Version
	}
	return ""
}

// GAV returns the effective groupId:artifactId:version triple.
func (d *ProjectDescriptor) GAV() Coordinate {
	return Coordinate{
		GroupID:    d.EffectiveGroupID(),
		ArtifactID: d.ArtifactID,
		Version:    d.EffectiveVersion(),
	}
}

// Clone returns a deep copy. Remediation mutates the copy and persists it
// as a whole replacement, leaving the original untouched.
func (d *ProjectDescriptor) Clone() *ProjectDescriptor {
	out := *d
	if d.Parent != nil {
		p := *d.Parent
		out.Parent = &p
	}
	out.Modules = append([]string(nil), d.Modules...)
	out.Dependencies = append([]DependencyEntry(nil), d.Dependencies...)
	out.DependencyManagement = append([]DependencyEntry(nil), d.DependencyManagement...)
	out.Plugins = append([]PluginEntry(nil), d.Plugins...)
	out.PluginManagement = append([]PluginEntry(nil), d.PluginManagement...)
	if d.Properties != nil {
		out.Properties = make(map[string]string, len(d.Properties))
		for k, v := range d.Properties {
			out.Properties[k] = v
		}
	}
	return &out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
