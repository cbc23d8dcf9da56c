package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomlint/pomlint/internal/domain"
	"github.com/pomlint/pomlint/internal/domain/rules"
)

func dep(groupID, artifactID, version string) domain.DependencyEntry {
	return domain.DependencyEntry{
		Coordinate: domain.Coordinate{GroupID: groupID, ArtifactID: artifactID, Version: version},
	}
}

func TestDependencyRule_CleanDependencies(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{
		dep("org.slf4j", "slf4j-api", "2.0.9"),
	}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestDependencyRule_DuplicateWithConflictingVersions(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{
		dep("org.springframework", "spring-core", "5.3.20"),
		dep("org.springframework", "spring-core", "5.3.21"),
	}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Errors, 2, "one duplicate error plus one conflict error")
	assert.Equal(t, domain.RuleDuplicateEntry, result.Errors[0].Rule)
	assert.Equal(t, domain.RuleVersionConflict, result.Errors[1].Rule)
	assert.Contains(t, result.Errors[1].Message, "[5.3.20, 5.3.21]")
}

func TestDependencyRule_DuplicateSameVersion_NoConflict(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{
		dep("com.google.guava", "guava", "32.0.0"),
		dep("com.google.guava", "guava", "32.0.0"),
	}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.RuleDuplicateEntry, result.Errors[0].Rule)
}

func TestDependencyRule_ThreeDuplicates_OneErrorPair(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{
		dep("g", "a", "1"),
		dep("g", "a", "2"),
		dep("g", "a", "3"),
	}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Errors, 2, "group reports once regardless of size")
	assert.Contains(t, result.Errors[1].Message, "[1, 2, 3]")
}

func TestDependencyRule_LatestKeywordIsError(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{
		dep("com.google.guava", "guava", "LATEST"),
	}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.RuleDeprecatedKeyword, result.Errors[0].Rule)
}

func TestDependencyRule_SnapshotAndRangeAreWarnings(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{
		dep("com.acme", "lib-a", "2.0.0-SNAPSHOT"),
		dep("com.acme", "lib-b", "[1.0,2.0)"),
	}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	assert.Empty(t, result.Errors)
	var found []domain.RuleID
	for _, w := range result.Warnings {
		found = append(found, w.Rule)
	}
	assert.Contains(t, found, domain.RuleSnapshotVersion)
	assert.Contains(t, found, domain.RuleVersionRange)
}

func TestDependencyRule_InvalidScope(t *testing.T) {
	d := baseDescriptor()
	entry := dep("org.slf4j", "slf4j-api", "2.0.9")
	entry.Scope = "testing"
	d.Dependencies = []domain.DependencyEntry{entry}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.RuleInvalidScope, result.Warnings[0].Rule)
}

func TestDependencyRule_MissingFields(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{dep("", "", "1.0")}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	assert.Len(t, result.Errors, 2, "groupId and artifactId each reported")
}

func TestDependencyRule_UnmanagedWithoutVersion(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{dep("org.slf4j", "slf4j-api", "")}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, domain.RuleUnmanagedNoVersion, result.Errors[0].Rule)
}

func TestDependencyRule_ManagedVersionOmitted_IsClean(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{dep("org.slf4j", "slf4j-api", "")}
	managed := dep("org.slf4j", "slf4j-api", "2.0.9")
	managed.Managed = true
	d.DependencyManagement = []domain.DependencyEntry{managed}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestDependencyRule_RedundantPin(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{dep("org.slf4j", "slf4j-api", "2.0.9")}
	managed := dep("org.slf4j", "slf4j-api", "2.0.9")
	managed.Managed = true
	d.DependencyManagement = []domain.DependencyEntry{managed}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.RuleRedundantPin, result.Warnings[0].Rule)
}

func TestDependencyRule_TestFrameworkWithoutTestScope(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{dep("junit", "junit", "4.13.2")}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, domain.RuleTestScope, result.Warnings[0].Rule)
	assert.Equal(t, "junit:junit", result.Warnings[0].Subject)
}

func TestDependencyRule_TestFrameworkWithTestScope_IsClean(t *testing.T) {
	d := baseDescriptor()
	entry := dep("org.mockito", "mockito-core", "5.8.0")
	entry.Scope = "test"
	d.Dependencies = []domain.DependencyEntry{entry}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	assert.Empty(t, result.Warnings)
}

func TestDependencyRule_ProblematicDependencies(t *testing.T) {
	d := baseDescriptor()
	d.Dependencies = []domain.DependencyEntry{
		dep("commons-logging", "commons-logging", "1.2"),
		dep("log4j", "log4j", "1.2.17"),
	}

	result := rules.DependencyRule{}.Evaluate(d, rules.Context{})

	problematic := 0
	for _, w := range result.Warnings {
		if w.Rule == domain.RuleProblematicDep {
			problematic++
		}
	}
	assert.Equal(t, 2, problematic)
}
