package application_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomlint/pomlint/internal/adapters/outbound/config"
	"github.com/pomlint/pomlint/internal/adapters/outbound/parser"
	"github.com/pomlint/pomlint/internal/adapters/outbound/scanner"
	"github.com/pomlint/pomlint/internal/application"
	"github.com/pomlint/pomlint/internal/domain"
)

const fixtureRoot = "../../testdata"

func newValidateService() *application.ValidateService {
	return application.NewValidateService(parser.New(), scanner.New(), config.New())
}

func TestValidateTree_ValidDescriptor(t *testing.T) {
	svc := newValidateService()

	run, err := svc.ValidateTree(filepath.Join(fixtureRoot, "valid"), application.DefaultValidateOptions())
	require.NoError(t, err)

	require.Len(t, run.Files, 1)
	assert.True(t, run.Valid())
	assert.Zero(t, run.ErrorCount())
	assert.Empty(t, run.Files[0].Result.Warnings)
	assert.NotEmpty(t, run.Files[0].Result.Infos)
}

func TestValidateTree_BrokenDescriptor(t *testing.T) {
	svc := newValidateService()

	run, err := svc.ValidateTree(filepath.Join(fixtureRoot, "broken"), application.DefaultValidateOptions())
	require.NoError(t, err)

	require.Len(t, run.Files, 1)
	result := run.Files[0].Result
	assert.False(t, result.IsValid())

	var found []domain.RuleID
	for _, e := range result.Errors {
		found = append(found, e.Rule)
	}
	assert.Contains(t, found, domain.RuleMissingGroupID)
	assert.Contains(t, found, domain.RuleDuplicateEntry)
	assert.Contains(t, found, domain.RuleVersionConflict)
	assert.Contains(t, found, domain.RuleDeprecatedKeyword)
}

func TestValidateTree_SeverityFilterKeepsErrors(t *testing.T) {
	svc := newValidateService()
	opts := application.DefaultValidateOptions()
	opts.Severity = domain.SeverityError

	run, err := svc.ValidateTree(filepath.Join(fixtureRoot, "broken"), opts)
	require.NoError(t, err)

	result := run.Files[0].Result
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Infos)
}

func TestValidateTree_MultiModuleRecursive(t *testing.T) {
	svc := newValidateService()
	opts := application.DefaultValidateOptions()
	opts.Recursive = true

	run, err := svc.ValidateTree(filepath.Join(fixtureRoot, "multimodule"), opts)
	require.NoError(t, err)

	require.Len(t, run.Files, 3)
	assert.True(t, run.Valid(), "parent and both children pass")
}

func TestValidateTree_NonRecursiveSeesOnlyRoot(t *testing.T) {
	svc := newValidateService()

	run, err := svc.ValidateTree(filepath.Join(fixtureRoot, "multimodule"), application.DefaultValidateOptions())
	require.NoError(t, err)

	// Without recursion the module dirs are still probed on disk, so the
	// aggregator itself validates cleanly.
	require.Len(t, run.Files, 1)
}

func TestValidateTree_MalformedDescriptor(t *testing.T) {
	svc := newValidateService()

	run, err := svc.ValidateTree(filepath.Join(fixtureRoot, "malformed"), application.DefaultValidateOptions())
	require.NoError(t, err)

	require.Len(t, run.Files, 1)
	result := run.Files[0].Result
	require.Len(t, result.Errors, 1, "a parse failure is a single error with no rule findings")
	assert.Equal(t, domain.RuleParseFailure, result.Errors[0].Rule)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Infos)
}

func TestValidateTree_NoDescriptors(t *testing.T) {
	svc := newValidateService()
	opts := application.DefaultValidateOptions()
	opts.Recursive = true

	_, err := svc.ValidateTree(t.TempDir(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pom.xml")
}

func TestValidatePaths_FailFast(t *testing.T) {
	svc := newValidateService()
	opts := application.DefaultValidateOptions()
	opts.FailFast = true

	paths := []string{
		filepath.Join(fixtureRoot, "broken", "pom.xml"),
		filepath.Join(fixtureRoot, "valid", "pom.xml"),
	}
	run, err := svc.ValidatePaths(paths, domain.DefaultConfig(), opts)
	require.NoError(t, err)

	assert.Len(t, run.Files, 1, "stops after the first invalid descriptor")
}

func TestValidateFile_MinimalProfileSkipsPropertyRule(t *testing.T) {
	svc := newValidateService()
	opts := application.DefaultValidateOptions()
	opts.Profile = domain.ProfileMinimal

	file, err := svc.ValidateFile(filepath.Join(fixtureRoot, "broken", "pom.xml"), opts)
	require.NoError(t, err)

	for _, w := range file.Result.Warnings {
		assert.NotEqual(t, domain.RuleMissingProperty, w.Rule)
	}
}

func TestValidateFile_StrictProfileRunsVersionRule(t *testing.T) {
	svc := newValidateService()
	opts := application.DefaultValidateOptions()
	opts.Profile = domain.ProfileStrict

	file, err := svc.ValidateFile(filepath.Join(fixtureRoot, "valid", "pom.xml"), opts)
	require.NoError(t, err)

	var found []domain.RuleID
	for _, info := range file.Result.Infos {
		found = append(found, info.Rule)
	}
	assert.Contains(t, found, domain.RuleVersionInfo)
}

func TestValidatePaths_CustomProfileFromConfig(t *testing.T) {
	svc := newValidateService()
	opts := application.DefaultValidateOptions()
	opts.Profile = domain.ProfileCustom

	cfg := domain.LintConfig{CustomRules: []string{"structure"}}
	run, err := svc.ValidatePaths([]string{filepath.Join(fixtureRoot, "broken", "pom.xml")}, cfg, opts)
	require.NoError(t, err)

	result := run.Files[0].Result
	for _, issue := range result.AllIssues() {
		assert.NotEqual(t, domain.RuleDuplicateEntry, issue.Rule, "dependency rule did not run")
	}
	var found []domain.RuleID
	for _, e := range result.Errors {
		found = append(found, e.Rule)
	}
	assert.Contains(t, found, domain.RuleMissingGroupID)
}

func TestRunResult_ErrorCount(t *testing.T) {
	run := &application.RunResult{
		Files: []application.FileResult{
			{Path: "a", Result: errorResult(2)},
			{Path: "b", Result: errorResult(1)},
		},
	}
	assert.Equal(t, 3, run.ErrorCount())
	assert.False(t, run.Valid())
}

func errorResult(n int) domain.ValidationResult {
	var result domain.ValidationResult
	for i := 0; i < n; i++ {
		result.AddError(domain.NewIssue(domain.SeverityError, domain.RuleModelVersion, "bad"))
	}
	return result
}
