package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomlint/pomlint/internal/domain"
)

func TestCanFix(t *testing.T) {
	fixable := []domain.RuleID{
		domain.RuleMissingGroupID,
		domain.RuleMissingProperty,
		domain.RuleDuplicateEntry,
		domain.RuleTestScope,
		domain.RuleCorePluginPin,
	}
	for _, rule := range fixable {
		assert.True(t, domain.CanFix(domain.ValidationIssue{Rule: rule}), string(rule))
	}

	assert.False(t, domain.CanFix(domain.ValidationIssue{Rule: domain.RuleVersionConflict}))
	assert.False(t, domain.CanFix(domain.ValidationIssue{Rule: domain.RuleModelVersion}))
}

func TestFixableIssues_ErrorsFirst(t *testing.T) {
	var result domain.ValidationResult
	result.AddWarning(domain.NewIssue(domain.SeverityWarning, domain.RuleMissingProperty, "prop"))
	result.AddError(domain.NewIssue(domain.SeverityError, domain.RuleMissingGroupID, "gid"))
	result.AddError(domain.NewIssue(domain.SeverityError, domain.RuleModelVersion, "not fixable"))

	fixable := domain.FixableIssues(&result)
	require.Len(t, fixable, 2)
	assert.Equal(t, domain.RuleMissingGroupID, fixable[0].Rule)
	assert.Equal(t, domain.RuleMissingProperty, fixable[1].Rule)
}

func TestApplyFix_MissingGroupID(t *testing.T) {
	d := &domain.ProjectDescriptor{ArtifactID: "app"}
	issue := domain.ValidationIssue{Rule: domain.RuleMissingGroupID, Subject: "groupId"}

	fixed, applied := domain.ApplyFix(d, issue)
	require.True(t, applied)
	assert.Equal(t, domain.PlaceholderGroupID, fixed.GroupID)
	assert.Empty(t, d.GroupID, "original descriptor untouched")

	// Second application is a no-op.
	_, applied = domain.ApplyFix(fixed, issue)
	assert.False(t, applied)
}

func TestApplyFix_MissingGroupID_InheritedIsNotFixed(t *testing.T) {
	d := &domain.ProjectDescriptor{
		ArtifactID: "child",
		Parent:     &domain.ParentRef{Coordinate: domain.Coordinate{GroupID: "com.acme"}},
	}

	_, applied := domain.ApplyFix(d, domain.ValidationIssue{Rule: domain.RuleMissingGroupID})
	assert.False(t, applied, "inherited groupId needs no placeholder")
}

func TestApplyFix_MissingProperty(t *testing.T) {
	d := &domain.ProjectDescriptor{ArtifactID: "app"}

	fixed, applied := domain.ApplyFix(d, domain.ValidationIssue{
		Rule:    domain.RuleMissingProperty,
		Subject: "project.build.sourceEncoding",
	})
	require.True(t, applied)
	assert.Equal(t, "UTF-8", fixed.Properties["project.build.sourceEncoding"])
}

func TestApplyFix_MissingProperty_CompilerUsesJavaVersion(t *testing.T) {
	d := &domain.ProjectDescriptor{
		ArtifactID: "app",
		Properties: map[string]string{"java.version": "17"},
	}

	fixed, applied := domain.ApplyFix(d, domain.ValidationIssue{
		Rule:    domain.RuleMissingProperty,
		Subject: "maven.compiler.source",
	})
	require.True(t, applied)
	assert.Equal(t, "17", fixed.Properties["maven.compiler.source"])
}

func TestApplyFix_MissingProperty_UnknownName(t *testing.T) {
	d := &domain.ProjectDescriptor{ArtifactID: "app"}

	_, applied := domain.ApplyFix(d, domain.ValidationIssue{
		Rule:    domain.RuleMissingProperty,
		Subject: "some.custom.property",
	})
	assert.False(t, applied)
}

func TestApplyFix_DuplicateEntries_KeepsFirst(t *testing.T) {
	d := &domain.ProjectDescriptor{
		ArtifactID: "app",
		Dependencies: []domain.DependencyEntry{
			{Coordinate: domain.Coordinate{GroupID: "org.springframework", ArtifactID: "spring-core", Version: "5.3.20"}},
			{Coordinate: domain.Coordinate{GroupID: "com.google.guava", ArtifactID: "guava", Version: "32.0.0"}},
			{Coordinate: domain.Coordinate{GroupID: "org.springframework", ArtifactID: "spring-core", Version: "5.3.21"}},
		},
	}

	fixed, applied := domain.ApplyFix(d, domain.ValidationIssue{
		Rule:    domain.RuleDuplicateEntry,
		Subject: "org.springframework:spring-core",
	})
	require.True(t, applied)
	require.Len(t, fixed.Dependencies, 2)
	assert.Equal(t, "5.3.20", fixed.Dependencies[0].Version, "first declaration wins")
	assert.Equal(t, "guava", fixed.Dependencies[1].ArtifactID)
	assert.Len(t, d.Dependencies, 3, "original descriptor untouched")
}

func TestApplyFix_TestScope(t *testing.T) {
	d := &domain.ProjectDescriptor{
		ArtifactID: "app",
		Dependencies: []domain.DependencyEntry{
			{Coordinate: domain.Coordinate{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2"}},
		},
	}

	fixed, applied := domain.ApplyFix(d, domain.ValidationIssue{
		Rule:    domain.RuleTestScope,
		Subject: "junit:junit",
	})
	require.True(t, applied)
	assert.Equal(t, "test", fixed.Dependencies[0].Scope)

	_, applied = domain.ApplyFix(fixed, domain.ValidationIssue{
		Rule:    domain.RuleTestScope,
		Subject: "junit:junit",
	})
	assert.False(t, applied)
}

func TestApplyFix_CorePluginVersion(t *testing.T) {
	d := &domain.ProjectDescriptor{
		ArtifactID: "app",
		Plugins: []domain.PluginEntry{
			{Coordinate: domain.Coordinate{ArtifactID: "maven-compiler-plugin"}},
		},
	}

	fixed, applied := domain.ApplyFix(d, domain.ValidationIssue{
		Rule:    domain.RuleCorePluginPin,
		Subject: "org.apache.maven.plugins:maven-compiler-plugin",
	})
	require.True(t, applied)
	assert.NotEmpty(t, fixed.Plugins[0].Version)
}

func TestApplyFix_UnknownRule(t *testing.T) {
	d := &domain.ProjectDescriptor{ArtifactID: "app"}
	same, applied := domain.ApplyFix(d, domain.ValidationIssue{Rule: domain.RuleVersionConflict})
	assert.False(t, applied)
	assert.Same(t, d, same)
}
