// Package parser reads and writes Maven POM files, converting between the
// XML document and the domain descriptor. Writing is a whole-file
// re-serialization: original formatting and comments are not preserved.
package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pomlint/pomlint/internal/domain"
)

// POMParser implements domain.DescriptorParser and domain.DescriptorWriter.
type POMParser struct{}

func New() *POMParser { return &POMParser{} }

// Parse reads the POM at path into a ProjectDescriptor. A parse failure is
// returned as an error; the caller surfaces it as a single ERROR and runs
// no rules for the path.
func (p *POMParser) Parse(path string) (*domain.ProjectDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var doc pomDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing descriptor %s: %w", path, err)
	}

	return doc.toDescriptor(path), nil
}

// Write re-serializes the descriptor and replaces the file at its path.
func (p *POMParser) Write(d *domain.ProjectDescriptor) error {
	doc := fromDescriptor(d)

	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("serializing descriptor: %w", err)
	}

	content := xml.Header + string(out) + "\n"
	if err := os.WriteFile(d.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing descriptor %s: %w", d.Path, err)
	}
	return nil
}

type pomDocument struct {
	XMLName      xml.Name       `xml:"project"`
	ModelVersion string         `xml:"modelVersion"`
	GroupID      string         `xml:"groupId"`
	ArtifactID   string         `xml:"artifactId"`
	Version      string         `xml:"version"`
	Packaging    string         `xml:"packaging"`
	Parent       *pomParent     `xml:"parent"`
	Modules      *pomModules    `xml:"modules"`
	Properties   *pomProperties `xml:"properties"`
	Dependencies *pomDepList    `xml:"dependencies"`
	DepMgmt      *pomDepMgmt    `xml:"dependencyManagement"`
	Build        *pomBuild      `xml:"build"`
}

type pomParent struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	// Pointer so an empty-but-present <relativePath/> survives the round
	// trip; it carries Maven semantics distinct from an absent element.
	RelativePath *string `xml:"relativePath,omitempty"`
}

type pomModules struct {
	Modules []string `xml:"module"`
}

type pomDepList struct {
	Dependencies []pomDependency `xml:"dependency"`
}

type pomDepMgmt struct {
	Dependencies *pomDepList `xml:"dependencies"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version,omitempty"`
	Scope      string `xml:"scope,omitempty"`
	Type       string `xml:"type,omitempty"`
	Optional   bool   `xml:"optional,omitempty"`
}

type pomBuild struct {
	Plugins    *pomPluginList `xml:"plugins"`
	PluginMgmt *pomPluginMgmt `xml:"pluginManagement"`
}

type pomPluginMgmt struct {
	Plugins *pomPluginList `xml:"plugins"`
}

type pomPluginList struct {
	Plugins []pomPlugin `xml:"plugin"`
}

type pomPlugin struct {
	GroupID    string `xml:"groupId,omitempty"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version,omitempty"`
}

// pomProperties is an open key/value element set; child element names are
// the property names, so it needs hand-rolled XML handling.
type pomProperties struct {
	Values map[string]string
}

func (p *pomProperties) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	p.Values = make(map[string]string)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			var value string
			if err := dec.DecodeElement(&value, &el); err != nil {
				return err
			}
			p.Values[el.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			if el.Name == start.Name {
				return nil
			}
		}
	}
}

func (p *pomProperties) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	if len(p.Values) == 0 {
		return nil
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	// Sorted for deterministic output across rewrites.
	names := make([]string, 0, len(p.Values))
	for name := range p.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		el := xml.StartElement{Name: xml.Name{Local: name}}
		if err := enc.EncodeElement(p.Values[name], el); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func (doc *pomDocument) toDescriptor(path string) *domain.ProjectDescriptor {
	d := &domain.ProjectDescriptor{
		Path:         path,
		ModelVersion: strings.TrimSpace(doc.ModelVersion),
		GroupID:      strings.TrimSpace(doc.GroupID),
		ArtifactID:   strings.TrimSpace(doc.ArtifactID),
		Version:      strings.TrimSpace(doc.Version),
		Packaging:    strings.TrimSpace(doc.Packaging),
	}

	if doc.Parent != nil {
		d.Parent = &domain.ParentRef{
			Coordinate: domain.Coordinate{
				GroupID:    strings.TrimSpace(doc.Parent.GroupID),
				ArtifactID: strings.TrimSpace(doc.Parent.ArtifactID),
				Version:    strings.TrimSpace(doc.Parent.Version),
			},
		}
		if doc.Parent.RelativePath != nil {
			d.Parent.RelativePath = strings.TrimSpace(*doc.Parent.RelativePath)
			d.Parent.RelativePathSet = true
		}
	}

	if doc.Modules != nil {
		for _, m := range doc.Modules.Modules {
			d.Modules = append(d.Modules, strings.TrimSpace(m))
		}
	}

	if doc.Properties != nil {
		d.Properties = doc.Properties.Values
	}

	if doc.Dependencies != nil {
		d.Dependencies = toDependencies(doc.Dependencies.Dependencies, false)
	}
	if doc.DepMgmt != nil && doc.DepMgmt.Dependencies != nil {
		d.DependencyManagement = toDependencies(doc.DepMgmt.Dependencies.Dependencies, true)
	}

	if doc.Build != nil {
		if doc.Build.Plugins != nil {
			d.Plugins = toPlugins(doc.Build.Plugins.Plugins, false)
		}
		if doc.Build.PluginMgmt != nil && doc.Build.PluginMgmt.Plugins != nil {
			d.PluginManagement = toPlugins(doc.Build.PluginMgmt.Plugins.Plugins, true)
		}
	}

	return d
}

func toDependencies(in []pomDependency, managed bool) []domain.DependencyEntry {
	out := make([]domain.DependencyEntry, len(in))
	for i, dep := range in {
		out[i] = domain.DependencyEntry{
			Coordinate: domain.Coordinate{
				GroupID:    strings.TrimSpace(dep.GroupID),
				ArtifactID: strings.TrimSpace(dep.ArtifactID),
				Version:    strings.TrimSpace(dep.Version),
			},
			Scope:    strings.TrimSpace(dep.Scope),
			Type:     strings.TrimSpace(dep.Type),
			Optional: dep.Optional,
			Managed:  managed,
		}
	}
	return out
}

func toPlugins(in []pomPlugin, managed bool) []domain.PluginEntry {
	out := make([]domain.PluginEntry, len(in))
	for i, p := range in {
		out[i] = domain.PluginEntry{
			Coordinate: domain.Coordinate{
				GroupID:    strings.TrimSpace(p.GroupID),
				ArtifactID: strings.TrimSpace(p.ArtifactID),
				Version:    strings.TrimSpace(p.Version),
			},
			Managed: managed,
		}
	}
	return out
}

func fromDescriptor(d *domain.ProjectDescriptor) *pomDocument {
	doc := &pomDocument{
		ModelVersion: d.ModelVersion,
		GroupID:      d.GroupID,
		ArtifactID:   d.ArtifactID,
		Version:      d.Version,
		Packaging:    d.Packaging,
	}

	if d.Parent != nil {
		doc.Parent = &pomParent{
			GroupID:    d.Parent.GroupID,
			ArtifactID: d.Parent.ArtifactID,
			Version:    d.Parent.Version,
		}
		if d.Parent.RelativePathSet {
			rp := d.Parent.RelativePath
			doc.Parent.RelativePath = &rp
		}
	}
	if len(d.Modules) > 0 {
		doc.Modules = &pomModules{Modules: d.Modules}
	}
	if len(d.Properties) > 0 {
		doc.Properties = &pomProperties{Values: d.Properties}
	}
	if len(d.Dependencies) > 0 {
		doc.Dependencies = &pomDepList{Dependencies: fromDependencies(d.Dependencies)}
	}
	if len(d.DependencyManagement) > 0 {
		doc.DepMgmt = &pomDepMgmt{Dependencies: &pomDepList{Dependencies: fromDependencies(d.DependencyManagement)}}
	}
	if len(d.Plugins) > 0 || len(d.PluginManagement) > 0 {
		doc.Build = &pomBuild{}
		if len(d.Plugins) > 0 {
			doc.Build.Plugins = &pomPluginList{Plugins: fromPlugins(d.Plugins)}
		}
		if len(d.PluginManagement) > 0 {
			doc.Build.PluginMgmt = &pomPluginMgmt{Plugins: &pomPluginList{Plugins: fromPlugins(d.PluginManagement)}}
		}
	}

	return doc
}

func fromDependencies(in []domain.DependencyEntry) []pomDependency {
	out := make([]pomDependency, len(in))
	for i, dep := range in {
		out[i] = pomDependency{
			GroupID:    dep.GroupID,
			ArtifactID: dep.ArtifactID,
			Version:    dep.Version,
			Scope:      dep.Scope,
			Type:       dep.Type,
			Optional:   dep.Optional,
		}
	}
	return out
}

func fromPlugins(in []domain.PluginEntry) []pomPlugin {
	out := make([]pomPlugin, len(in))
	for i, p := range in {
		out[i] = pomPlugin{GroupID: p.GroupID, ArtifactID: p.ArtifactID, Version: p.Version}
	}
	return out
}
