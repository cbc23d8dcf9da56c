package rules

import (
	"fmt"
	"strings"

	"github.com/pomlint/pomlint/internal/domain"
)

var validScopes = map[string]bool{
	"compile":  true,
	"provided": true,
	"runtime":  true,
	"test":     true,
	"system":   true,
	"import":   true,
}

// testFrameworkPrefixes recognize coordinates that should carry test scope.
var testFrameworkFragments = []string{
	"junit",
	"testng",
	"mockito",
	"assertj",
	"org.springframework:spring-test",
}

// DependencyRule checks duplicate and conflicting declarations, version
// hygiene, scope validity, and the cross-check between direct and managed
// dependency lists.
type DependencyRule struct{}

func (DependencyRule) ID() string { return NameDependency }

func (DependencyRule) Evaluate(d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult {
	var result domain.ValidationResult

	if len(d.Dependencies) > 0 {
		detectConflicts(dependencyConflictEntries(d.Dependencies), "dependency", "direct", &result)
		for _, dep := range d.Dependencies {
			checkDependency(dep, "direct", &result)
		}
	}
	if len(d.DependencyManagement) > 0 {
		detectConflicts(dependencyConflictEntries(d.DependencyManagement), "dependency", "managed", &result)
		for _, dep := range d.DependencyManagement {
			checkDependency(dep, "managed", &result)
		}
	}

	checkVersionManagement(d, inheritedManagedKeys(d, ctx), &result)

	result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleDependencyInfo,
		fmt.Sprintf("Dependencies: %d direct, %d managed", len(d.Dependencies), len(d.DependencyManagement))))

	return result
}

func checkDependency(dep domain.DependencyEntry, listLabel string, result *domain.ValidationResult) {
	coords := dep.Key()

	if strings.TrimSpace(dep.GroupID) == "" {
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleDepMissingField,
			fmt.Sprintf("Missing groupId in %s dependency: %s", listLabel, coords),
			"Add <groupId>org.example</groupId> to the dependency").WithSubject(coords))
	}
	if strings.TrimSpace(dep.ArtifactID) == "" {
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleDepMissingField,
			fmt.Sprintf("Missing artifactId in %s dependency: %s", listLabel, coords),
			"Add <artifactId>library-name</artifactId> to the dependency").WithSubject(coords))
	}

	checkVersionString(dep.Version, coords, "dependency", listLabel, result)

	if dep.Scope != "" && !validScopes[dep.Scope] {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleInvalidScope,
			fmt.Sprintf("Invalid scope in %s dependency %s: %s", listLabel, coords, dep.Scope),
			"Use a valid scope: compile, provided, runtime, test, system, or import").WithSubject(coords))
	}

	checkProblematic(dep, result)
}

// checkVersionString flags SNAPSHOT versions, version ranges, and the
// deprecated LATEST/RELEASE keywords; shared with the plugin rule.
func checkVersionString(version, coords, kind, listLabel string, result *domain.ValidationResult) {
	if strings.TrimSpace(version) == "" {
		return
	}
	if strings.HasSuffix(version, "-SNAPSHOT") {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleSnapshotVersion,
			fmt.Sprintf("SNAPSHOT %s version in %s: %s:%s", kind, listLabel, coords, version),
			"Use stable release versions in production").WithSubject(coords))
	}
	if strings.ContainsAny(version, "[(,") {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleVersionRange,
			fmt.Sprintf("Version range in %s %s: %s:%s", listLabel, kind, coords, version),
			"Specify an exact version for reproducible builds").WithSubject(coords))
	}
	if version == "LATEST" || version == "RELEASE" {
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleDeprecatedKeyword,
			fmt.Sprintf("Deprecated version keyword in %s %s: %s:%s", listLabel, kind, coords, version),
			"Replace with a specific version number").WithSubject(coords))
	}
}

// inheritedManagedKeys collects managed dependency keys from the descriptor
// and its locally resolved parent chain. The walk is bounded by a visited
// set; a parent cycle is reported elsewhere as a graph finding.
func inheritedManagedKeys(d *domain.ProjectDescriptor, ctx Context) map[string]bool {
	managed := make(map[string]bool, len(d.DependencyManagement))
	visited := make(map[string]bool)
	for current := d; current != nil && !visited[current.Path]; {
		visited[current.Path] = true
		for _, dep := range current.DependencyManagement {
			managed[dep.Key()] = true
		}
		current = ctx.Parent(current.Path)
	}
	return managed
}

// checkVersionManagement cross-checks direct dependencies against the
// managed set, own plus inherited: no version and no managed entry is an
// ERROR; a version duplicating a managed entry is a redundant pin.
func checkVersionManagement(d *domain.ProjectDescriptor, managed map[string]bool, result *domain.ValidationResult) {
	if len(d.Dependencies) == 0 {
		return
	}

	for _, dep := range d.Dependencies {
		coords := dep.Key()
		if strings.TrimSpace(dep.Version) == "" {
			if !managed[coords] {
				result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleUnmanagedNoVersion,
					fmt.Sprintf("Direct dependency without version and not in dependency management: %s", coords),
					"Add <version> or define the dependency in <dependencyManagement>").WithSubject(coords))
			}
		} else if managed[coords] {
			result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleRedundantPin,
				fmt.Sprintf("Direct dependency specifies version but is managed: %s", coords),
				"Remove <version> from the dependency to use the managed version").WithSubject(coords))
		}
	}
}

func checkProblematic(dep domain.DependencyEntry, result *domain.ValidationResult) {
	coords := dep.Key()

	if coords == "commons-logging:commons-logging" {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleProblematicDep,
			fmt.Sprintf("Consider using SLF4J instead of commons-logging: %s", coords),
			"Replace with org.slf4j:slf4j-api and an implementation").WithSubject(coords))
	}
	if coords == "log4j:log4j" && (dep.Version == "" || strings.HasPrefix(dep.Version, "1.")) {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleProblematicDep,
			fmt.Sprintf("Log4j 1.x is end-of-life, consider upgrading: %s", coords),
			"Upgrade to org.apache.logging.log4j:log4j-core 2.x").WithSubject(coords))
	}

	if isTestFramework(coords) && dep.Scope != "test" && !dep.Managed {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleTestScope,
			fmt.Sprintf("Test framework should have test scope: %s", coords),
			"Add <scope>test</scope> to this dependency").WithSubject(coords))
	}
}

func isTestFramework(coords string) bool {
	for _, fragment := range testFrameworkFragments {
		if strings.Contains(coords, fragment) {
			return true
		}
	}
	return false
}
