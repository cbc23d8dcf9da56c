package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pomlint/pomlint/internal/domain"
)

var mavenVersionPattern = regexp.MustCompile(`^\d+(\.\d+)*(-[a-zA-Z0-9.-]+)?$`)

// VersionRule checks project and parent version strings for format hygiene,
// semantic-versioning compliance, SNAPSHOT consistency, and common
// anti-patterns. Part of the strict profile only.
type VersionRule struct{}

func (VersionRule) ID() string { return NameVersion }

func (VersionRule) Evaluate(d *domain.ProjectDescriptor, ctx Context) domain.ValidationResult {
	var result domain.ValidationResult

	if d.Version != "" {
		checkVersionFormat(d.Version, "project", &result)
	}
	if d.Parent != nil && d.Parent.Version != "" {
		checkVersionFormat(d.Parent.Version, "parent", &result)
		checkSnapshotConsistency(d, &result)
	}
	checkVersionNaming(d, &result)

	return result
}

func checkVersionFormat(version, label string, result *domain.ValidationResult) {
	if version == "LATEST" || version == "RELEASE" {
		// Reported by the dependency/plugin rules for entries; here the
		// keyword sits on the project itself.
		result.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleDeprecatedKeyword,
			fmt.Sprintf("Deprecated version keyword in %s version: %s", label, version),
			"Use a specific version number"))
		return
	}

	if strings.ContainsAny(version, "[(,") {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionFormat,
			fmt.Sprintf("Version range in %s version: %s", label, version)))
		return
	}

	if containsPropertyReference(version) {
		return
	}

	if !mavenVersionPattern.MatchString(version) {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionFormat,
			fmt.Sprintf("Non-standard %s version format: %s", label, version)))
	}

	if _, err := semver.NewVersion(strings.TrimSuffix(version, "-SNAPSHOT")); err == nil {
		result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleVersionInfo,
			fmt.Sprintf("Semantic versioning compliant %s version: %s", label, version)))
	}

	if strings.HasPrefix(strings.ToLower(version), "v") {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionPractice,
			fmt.Sprintf("Version starts with 'v', consider removing: %s", version)))
	}
	if strings.Contains(strings.ToLower(version), "final") {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionPractice,
			fmt.Sprintf("Version contains 'FINAL', which is usually implicit: %s", version)))
	}
	if len(version) > 50 {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionPractice,
			fmt.Sprintf("Very long %s version string: %s", label, version)))
	}
}

func checkSnapshotConsistency(d *domain.ProjectDescriptor, result *domain.ValidationResult) {
	if d.Version == "" {
		return
	}
	parentSnapshot := strings.HasSuffix(d.Parent.Version, "-SNAPSHOT")
	projectSnapshot := strings.HasSuffix(d.Version, "-SNAPSHOT")

	if parentSnapshot != projectSnapshot {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionPractice,
			fmt.Sprintf("Parent and project SNAPSHOT status mismatch: parent=%s, project=%s",
				d.Parent.Version, d.Version)))
	}
	if !parentSnapshot && projectSnapshot {
		result.AddInfo(domain.NewIssue(domain.SeverityInfo, domain.RuleVersionInfo,
			"Parent is a release version while the project is SNAPSHOT"))
	}
}

func checkVersionNaming(d *domain.ProjectDescriptor, result *domain.ValidationResult) {
	if d.Version == "" || d.ArtifactID == "" {
		return
	}
	lowerArtifact := strings.ToLower(d.ArtifactID)
	snapshot := strings.HasSuffix(d.Version, "-SNAPSHOT")

	if snapshot && strings.Contains(lowerArtifact, "release") {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionPractice,
			fmt.Sprintf("Artifact name suggests release but version is SNAPSHOT: %s vs %s", d.ArtifactID, d.Version)))
	}
	if !snapshot && strings.Contains(lowerArtifact, "snapshot") {
		result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleVersionPractice,
			fmt.Sprintf("Artifact name suggests SNAPSHOT but version is not: %s vs %s", d.ArtifactID, d.Version)))
	}
}

func containsPropertyReference(s string) bool {
	return strings.Contains(s, "${")
}
