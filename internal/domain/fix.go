package domain

// Deterministic remediation catalogue. Every fix is a pure function over a
// descriptor: it clones, mutates the clone, and returns it as a whole
// replacement. ApplyFix returns false instead of erroring when no safe fix
// can be determined, so callers can tell "not fixable" from "fix failed".

// PlaceholderGroupID is inserted for a missing groupId.
const PlaceholderGroupID = "com.example"

// DefaultJavaVersion is pinned for compiler properties when the descriptor
// declares no java.version property.
const DefaultJavaVersion = "21"

// corePluginVersions holds known-good versions pinned for core build
// plugins declared without a version.
var corePluginVersions = map[string]string{
	"maven-compiler-plugin":  "3.11.0",
	"maven-surefire-plugin":  "3.2.5",
	"maven-resources-plugin": "3.3.1",
	"maven-clean-plugin":     "3.3.2",
	"maven-install-plugin":   "3.1.1",
	"maven-deploy-plugin":    "3.1.1",
	"maven-site-plugin":      "4.0.0-M13",
}

// propertyDefaults holds the values inserted for missing recommended
// properties. Compiler properties fall back to the descriptor's
// java.version property when one exists.
var propertyDefaults = map[string]string{
	"project.build.sourceEncoding":     "UTF-8",
	"project.reporting.outputEncoding": "UTF-8",
	"maven.compiler.source":            DefaultJavaVersion,
	"maven.compiler.target":            DefaultJavaVersion,
}

// CanFix reports whether the deterministic catalogue covers the issue.
// Dispatch is on the rule tag, never on message text.
func CanFix(issue ValidationIssue) bool {
	switch issue.Rule {
	case RuleMissingGroupID, RuleMissingProperty, RuleDuplicateEntry,
		RuleTestScope, RuleCorePluginPin:
		return true
	}
	return false
}

// FixableIssues returns the issues of a result the catalogue can fix,
// errors first, preserving declaration order within each severity.
func FixableIssues(result *ValidationResult) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range result.Errors {
		if CanFix(issue) {
			out = append(out, issue)
		}
	}
	for _, issue := range result.Warnings {
		if CanFix(issue) {
			out = append(out, issue)
		}
	}
	return out
}

// ApplyFix applies the catalogue fix for issue to a copy of d. The second
// return value reports whether anything changed; when false, the returned
// descriptor is d unchanged.
func ApplyFix(d *ProjectDescriptor, issue ValidationIssue) (*ProjectDescriptor, bool) {
	switch issue.Rule {
	case RuleMissingGroupID:
		return fixMissingGroupID(d)
	case RuleMissingProperty:
		return fixMissingProperty(d, issue.Subject)
	case RuleDuplicateEntry:
		return fixDuplicateEntries(d, issue.Subject)
	case RuleTestScope:
		return fixTestScope(d, issue.Subject)
	case RuleCorePluginPin:
		return fixCorePluginVersion(d, issue.Subject)
	}
	return d, false
}

func fixMissingGroupID(d *ProjectDescriptor) (*ProjectDescriptor, bool) {
	if !isBlank(d.GroupID) || d.EffectiveGroupID() != "" {
		return d, false
	}
	out := d.Clone()
	out.GroupID = PlaceholderGroupID
	return out, true
}

func fixMissingProperty(d *ProjectDescriptor, name string) (*ProjectDescriptor, bool) {
	value, known := propertyDefaults[name]
	if !known {
		return d, false
	}
	if _, exists := d.Properties[name]; exists {
		return d, false
	}
	if name == "maven.compiler.source" || name == "maven.compiler.target" {
		if jv, ok := d.Properties["java.version"]; ok && !isBlank(jv) {
			value = jv
		}
	}
	out := d.Clone()
	if out.Properties == nil {
		out.Properties = make(map[string]string)
	}
	out.Properties[name] = value
	return out, true
}

// fixDuplicateEntries keeps the first occurrence of the coordinate key in
// declaration order and drops the rest, in whichever lists repeat it.
func fixDuplicateEntries(d *ProjectDescriptor, key string) (*ProjectDescriptor, bool) {
	out := d.Clone()
	changed := false

	dedupeDeps := func(entries []DependencyEntry) []DependencyEntry {
		seen := false
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.Key() == key {
				if seen {
					changed = true
					continue
				}
				seen = true
			}
			filtered = append(filtered, e)
		}
		return filtered
	}
	dedupePlugins := func(entries []PluginEntry) []PluginEntry {
		seen := false
		filtered := entries[:0:0]
		for _, e := range entries {
			if e.Coords() == key {
				if seen {
					changed = true
					continue
				}
				seen = true
			}
			filtered = append(filtered, e)
		}
		return filtered
	}

	out.Dependencies = dedupeDeps(out.Dependencies)
	out.DependencyManagement = dedupeDeps(out.DependencyManagement)
	out.Plugins = dedupePlugins(out.Plugins)
	out.PluginManagement = dedupePlugins(out.PluginManagement)

	if !changed {
		return d, false
	}
	return out, true
}

func fixTestScope(d *ProjectDescriptor, key string) (*ProjectDescriptor, bool) {
	out := d.Clone()
	for i, dep := range out.Dependencies {
		if dep.Key() == key && dep.Scope != "test" {
			out.Dependencies[i].Scope = "test"
			return out, true
		}
	}
	return d, false
}

func fixCorePluginVersion(d *ProjectDescriptor, coords string) (*ProjectDescriptor, bool) {
	out := d.Clone()
	for i, plugin := range out.Plugins {
		if plugin.Coords() != coords || !isBlank(plugin.Version) {
			continue
		}
		version, known := corePluginVersions[plugin.ArtifactID]
		if !known {
			return d, false
		}
		out.Plugins[i].Version = version
		return out, true
	}
	return d, false
}
