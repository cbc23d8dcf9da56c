package rules

import (
	"fmt"
	"strings"

	"github.com/pomlint/pomlint/internal/domain"
)

var corePlugins = map[string]bool{
	"maven-clean-plugin":     true,
	"maven-compiler-plugin":  true,
	"maven-deploy-plugin":    true,
	"maven-install-plugin":   true,
	"maven-resources-plugin": true,
	"maven-site-plugin":      true,
	"maven-surefire-plugin":  true,
}

// deprecatedPlugins maps known end-of-life plugin artifacts to their
// suggested replacements.
var deprecatedPlugins = map[string]string{
	"cobertura-maven-plugin": "org.jacoco:jacoco-maven-plugin",
	"findbugs-maven-plugin":  "com.github.spotbugs:spotbugs-maven-plugin",
	"maven-eclipse-plugin":   "your IDE's built-in Maven import",
}

// PluginRule mirrors the dependency rule's duplicate and version-management
// checks for the plugin lists, and flags known-deprecated plugins.
type PluginRule struct{}

func (PluginRule) ID() string { return NamePlugin }

func (PluginRule) Evaluate(d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult {
	var result domain.ValidationResult

	if len(d.Plugins) == 0 && len(d.PluginManagement) == 0 {
		result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RulePluginInfo, "No build plugins declared"))
		return result
	}

	if len(d.Plugins) > 0 {
		detectConflicts(pluginConflictEntries(d.Plugins), "plugin", "direct", &result)
		for _, p := range d.Plugins {
			checkPlugin(p, "direct", &result)
		}
	}
	if len(d.PluginManagement) > 0 {
		detectConflicts(pluginConflictEntries(d.PluginManagement), "plugin", "managed", &result)
		for _, p := range d.PluginManagement {
			checkPlugin(p, "managed", &result)
		}
	}

	checkPluginVersionManagement(d, inheritedPluginKeys(d, ctx), &result)
	checkRecommendedPlugins(d, &result)

	result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RulePluginInfo,
		fmt.Sprintf("Plugins: %d direct, %d managed", len(d.Plugins), len(d.PluginManagement))))

	return result
}

func checkPlugin(p domain.PluginEntry, listLabel string, result *domain.ValidationResult) {
	coords := p.Coords()

	if strings.TrimSpace(p.ArtifactID) == "" {
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RulePluginMissingField,
			fmt.Sprintf("Missing artifactId in %s plugin: %s", listLabel, coords),
			"Add <artifactId>plugin-name</artifactId>").WithSubject(coords))
	}

	checkVersionString(p.Version, coords, "plugin", listLabel, result)

	if replacement, deprecated := deprecatedPlugins[p.ArtifactID]; deprecated {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleDeprecatedPlugin,
			fmt.Sprintf("Plugin %s is deprecated: %s", p.ArtifactID, coords),
			fmt.Sprintf("Replace with %s", replacement)).WithSubject(coords))
	}
}

// inheritedPluginKeys mirrors the dependency rule's managed-key walk for
// the plugin management lists.
func inheritedPluginKeys(d *domain.ProjectDescriptor, ctx Context) map[string]bool {
	managed := make(map[string]bool, len(d.PluginManagement))
	visited := make(map[string]bool)
	for current := d; current != nil && !visited[current.Path]; {
		visited[current.Path] = true
		for _, p := range current.PluginManagement {
			managed[p.Coords()] = true
		}
		current = ctx.Parent(current.Path)
	}
	return managed
}

func checkPluginVersionManagement(d *domain.ProjectDescriptor, managed map[string]bool, result *domain.ValidationResult) {
	if len(d.Plugins) == 0 {
		return
	}

	if len(managed) == 0 {
		// Without plugin management the core build plugins should at least
		// pin their own versions.
		for _, p := range d.Plugins {
			if corePlugins[p.ArtifactID] && strings.TrimSpace(p.Version) == "" {
				result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleCorePluginPin,
					fmt.Sprintf("Core build plugin without version: %s", p.Coords()),
					"Add a version or use <pluginManagement>").WithSubject(p.Coords()))
			}
		}
		return
	}

	for _, p := range d.Plugins {
		coords := p.Coords()
		if strings.TrimSpace(p.Version) == "" {
			if !managed[coords] {
				result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RulePluginNoVersion,
					fmt.Sprintf("Direct plugin without version and not in plugin management: %s", coords),
					"Add a version or define the plugin in <pluginManagement>").WithSubject(coords))
			}
		} else if managed[coords] {
			result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RulePluginRedundantPin,
				fmt.Sprintf("Direct plugin specifies version but is managed: %s", coords),
				"Remove <version> from the plugin to use the managed version").WithSubject(coords))
		}
	}
}

func checkRecommendedPlugins(d *domain.ProjectDescriptor, result *domain.ValidationResult) {
	declared := make(map[string]bool, len(d.Plugins))
	for _, p := range d.Plugins {
		declared[p.ArtifactID] = true
	}

	if !declared["maven-compiler-plugin"] {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleRecommendedPlugin,
			"Consider explicitly configuring maven-compiler-plugin",
			"Add maven-compiler-plugin with the project's Java version"))
	}
	if !declared["maven-surefire-plugin"] {
		result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleRecommendedPlugin,
			"Consider configuring maven-surefire-plugin for test execution"))
	}
}
