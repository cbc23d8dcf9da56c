package rules

import (
	"fmt"
	"strings"

	"github.com/pomlint/pomlint/internal/domain"
)

var validPackagings = map[string]bool{
	"pom":          true,
	"jar":          true,
	"war":          true,
	"ear":          true,
	"maven-plugin": true,
	"rar":          true,
	"bundle":       true,
}

// StructureRule checks the fixed schema version, GAV coordinate presence
// (directly or by parent inheritance), and the packaging whitelist.
type StructureRule struct{}

func (StructureRule) ID() string { return NameStructure }

func (StructureRule) Evaluate(d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult {
	var result domain.ValidationResult

	if d.ModelVersion != domain.ModelVersion {
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleModelVersion,
			fmt.Sprintf("Model version must be %s, found: %s", domain.ModelVersion, d.ModelVersion),
			fmt.Sprintf("Set <modelVersion>%s</modelVersion>", domain.ModelVersion)))
	}

	checkInheritable(&result, "groupId", d.GroupID, parentGroupID(d), domain.RuleMissingGroupID,
		"Add <groupId>com.example</groupId> or define it in the parent descriptor")

	if strings.TrimSpace(d.ArtifactID) == "" {
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleMissingArtifactID,
			"ArtifactId is missing",
			"Add <artifactId>your-project-name</artifactId> to identify the project"))
	}

	checkInheritable(&result, "version", d.Version, parentVersion(d), domain.RuleMissingVersion,
		"Add <version>1.0.0-SNAPSHOT</version> or define it in the parent descriptor")

	if d.Packaging != "" && !validPackagings[d.Packaging] {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleUnknownPackaging,
			fmt.Sprintf("Unknown packaging type: %s", d.Packaging),
			"Use a standard packaging type: pom, jar, war, ear, maven-plugin, rar, or bundle"))
	}

	// An aggregator descriptor without modules should still centralize
	// version management for its children.
	if d.Packaging == "pom" && len(d.Modules) == 0 &&
		len(d.DependencyManagement) == 0 && len(d.PluginManagement) == 0 {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleBareAggregator,
			"POM packaging without modules should typically have dependency or plugin management",
			"Add <dependencyManagement> or <pluginManagement> sections, or define <modules>"))
	}

	gav := d.GAV()
	result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleProjectInfo,
		fmt.Sprintf("GAV: %s", gav.String())))
	packaging := d.Packaging
	if packaging == "" {
		packaging = domain.DefaultPackaging + " (default)"
	}
	result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleProjectInfo,
		fmt.Sprintf("Packaging: %s", packaging)))
	result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleProjectInfo,
		fmt.Sprintf("Project type: %s", projectType(d))))

	return result
}

// projectType classifies the descriptor shape: a BOM manages versions
// without declaring dependencies or modules, an aggregator only lists
// modules, a child carries a parent reference.
func projectType(d *domain.ProjectDescriptor) string {
	pomPackaging := d.EffectivePackaging() == "pom"
	switch {
	case pomPackaging && len(d.Modules) == 0 && len(d.DependencyManagement) > 0 && len(d.Dependencies) == 0:
		return "bill of materials (BOM)"
	case len(d.Modules) > 0:
		return "multi-module parent"
	case d.Parent != nil:
		return "multi-module child"
	case pomPackaging && len(d.Dependencies) == 0:
		if len(d.PluginManagement) > 0 {
			return "standalone parent"
		}
		return "aggregator"
	default:
		return "single module"
	}
}

// checkInheritable reports a missing field as an ERROR only when the parent
// cannot supply it; inherited values are noted as INFO per the inheritance
// contract.
func checkInheritable(result *domain.ValidationResult, field, own, inherited string, rule domain.RuleID, suggestion string) {
	if strings.TrimSpace(own) != "" {
		return
	}
	if strings.TrimSpace(inherited) == "" {
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, rule,
			fmt.Sprintf("%s is missing and not inherited from parent", capitalize(field)),
			suggestion).WithSubject(field))
		return
	}
	result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleInheritedField,
		fmt.Sprintf("%s inherited from parent: %s", capitalize(field), inherited)).WithSubject(field))
}

func parentGroupID(d *domain.ProjectDescriptor) string {
	if d.Parent == nil {
		return ""
	}
	return d.Parent.GroupID
}

func parentVersion(d *domain.ProjectDescriptor) string {
	if d.Parent == nil {
		return ""
	}
	return d.Parent.Version
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
