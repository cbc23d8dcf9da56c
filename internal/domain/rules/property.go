package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pomlint/pomlint/internal/domain"
)

// recommendedProperties are checked for presence, in a fixed order so issue
// output is deterministic.
var recommendedProperties = []string{
	"project.build.sourceEncoding",
	"project.reporting.outputEncoding",
	"maven.compiler.source",
	"maven.compiler.target",
}

var propertySuggestions = map[string]string{
	"project.build.sourceEncoding":     "Add <project.build.sourceEncoding>UTF-8</project.build.sourceEncoding>",
	"project.reporting.outputEncoding": "Add <project.reporting.outputEncoding>UTF-8</project.reporting.outputEncoding>",
	"maven.compiler.source":            "Add <maven.compiler.source>21</maven.compiler.source> (or your target Java version)",
	"maven.compiler.target":            "Add <maven.compiler.target>21</maven.compiler.target> (or your target Java version)",
}

// PropertyRule checks the recommended property set, encoding consistency,
// and the java.version / compiler source/target cross-validation.
type PropertyRule struct{}

func (PropertyRule) ID() string { return NameProperty }

func (PropertyRule) Evaluate(d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult {
	var result domain.ValidationResult
	props := d.Properties

	if len(props) == 0 {
		// Each missing recommended property still gets its own finding so
		// the fix catalogue can insert them individually.
		for _, name := range recommendedProperties {
			result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleMissingProperty,
				fmt.Sprintf("Missing recommended property: %s", name),
				propertySuggestions[name]).WithSubject(name))
		}
		return result
	}

	for _, name := range recommendedProperties {
		if _, ok := props[name]; !ok {
			result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleMissingProperty,
				fmt.Sprintf("Missing recommended property: %s", name),
				propertySuggestions[name]).WithSubject(name))
		}
	}

	checkEncoding(props, "project.build.sourceEncoding", &result)
	checkEncoding(props, "project.reporting.outputEncoding", &result)

	source := props["maven.compiler.source"]
	target := props["maven.compiler.target"]
	if source != "" && target != "" && source != target {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleCompilerMismatch,
			fmt.Sprintf("Compiler source and target versions differ: %s vs %s", source, target),
			"Set maven.compiler.source and maven.compiler.target to the same Java version"))
	}

	if javaVersion := props["java.version"]; javaVersion != "" {
		// Property-reference placeholders resolve at build time; comparing
		// them literally would be a false positive.
		if source != "" && source != javaVersion && !strings.Contains(source, "${") {
			result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleCompilerMismatch,
				fmt.Sprintf("Java version and compiler source mismatch: %s vs %s", javaVersion, source),
				"Set <maven.compiler.source>${java.version}</maven.compiler.source>"))
		}
		checkJavaVersion(javaVersion, &result)
	}

	result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RulePropertyInfo,
		fmt.Sprintf("Properties defined: %d", len(props))))

	return result
}

func checkEncoding(props map[string]string, name string, result *domain.ValidationResult) {
	value, ok := props[name]
	if !ok || value == "UTF-8" {
		return
	}
	result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleNonUTF8Encoding,
		fmt.Sprintf("Consider using UTF-8 encoding for %s: %s", name, value),
		fmt.Sprintf("Set <%s>UTF-8</%s>", name, name)).WithSubject(name))
}

func checkJavaVersion(javaVersion string, result *domain.ValidationResult) {
	if major, err := strconv.Atoi(javaVersion); err == nil {
		if major < 11 {
			result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleJavaVersion,
				fmt.Sprintf("Java version %s is no longer supported, consider upgrading to 11+", javaVersion),
				"Update <java.version>21</java.version> for current LTS support"))
		} else {
			result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleJavaVersion,
				fmt.Sprintf("Using supported Java version: %s", javaVersion)))
		}
		return
	}
	if strings.HasPrefix(javaVersion, "1.") {
		result.AddWarning(domain.NewIssueWithSuggestion(domain.SeverityWarning, domain.RuleJavaVersion,
			fmt.Sprintf("Java version %s uses the old versioning scheme and is likely outdated", javaVersion),
			"Update to modern Java versioning: <java.version>21</java.version>"))
	}
}
