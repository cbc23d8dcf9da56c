package application

import (
	"fmt"

	"github.com/pomlint/pomlint/internal/domain"
	"github.com/pomlint/pomlint/internal/domain/rules"
)

// ValidateOptions carries the engine's configuration for one run. Severity
// and profile are the only knobs the engine consumes from the CLI layer.
type ValidateOptions struct {
	Profile   domain.Profile
	Severity  domain.Severity
	Recursive bool
	FailFast  bool
}

// DefaultValidateOptions runs the standard profile surfacing everything.
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{
		Profile:  domain.ProfileStandard,
		Severity: domain.SeverityAll,
	}
}

// FileResult pairs one descriptor path with its aggregated, severity-
// filtered validation result.
type FileResult struct {
	Path   string
	Result domain.ValidationResult
}

// RunResult is the outcome of validating a set of descriptors, ordered
// parent-first (best effort).
type RunResult struct {
	Files []FileResult
}

// Valid reports whether every descriptor in the run passed.
func (r *RunResult) Valid() bool {
	for _, f := range r.Files {
		if !f.Result.IsValid() {
			return false
		}
	}
	return true
}

// ErrorCount returns the union error count across descriptors; the process
// exit signal reflects it.
func (r *RunResult) ErrorCount() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Result.Errors)
	}
	return total
}

// ValidateService orchestrates discovery, parsing, graph resolution, the
// rule pipeline, aggregation, and severity filtering.
type ValidateService struct {
	parser  domain.DescriptorParser
	scanner domain.DescriptorScanner
	config  domain.ConfigLoader
}

// NewValidateService creates a ValidateService with its collaborators.
func NewValidateService(parser domain.DescriptorParser, scanner domain.DescriptorScanner, config domain.ConfigLoader) *ValidateService {
	return &ValidateService{parser: parser, scanner: scanner, config: config}
}

// ValidateTree validates every descriptor discovered under root.
func (s *ValidateService) ValidateTree(root string, opts ValidateOptions) (*RunResult, error) {
	cfg, err := s.config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	paths, err := s.scanner.Discover(root, opts.Recursive, cfg.ExcludePaths...)
	if err != nil {
		return nil, fmt.Errorf("discovering descriptors: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files found under %s", domain.DescriptorFileName, root)
	}

	return s.ValidatePaths(paths, cfg, opts)
}

// ValidatePaths validates an explicit descriptor set. Parse failures
// short-circuit the pipeline for that path only: a single ERROR, no
// partial rule results. Processing is sequential; descriptors are never
// shared between runs.
func (s *ValidateService) ValidatePaths(paths []string, cfg domain.LintConfig, opts ValidateOptions) (*RunResult, error) {
	run := &RunResult{}

	descriptors := make(map[string]*domain.ProjectDescriptor, len(paths))
	var parsed []*domain.ProjectDescriptor
	for _, path := range paths {
		d, err := s.parser.Parse(path)
		if err != nil {
			var failure domain.ValidationResult
			failure.AddError(domain.NewIssueWithSuggestion(domain.SeverityError, domain.RuleParseFailure,
				fmt.Sprintf("Failed to parse descriptor: %v", err),
				"Check that the XML is well-formed and follows the POM schema"))
			run.Files = append(run.Files, FileResult{Path: path, Result: failure})
			if opts.FailFast {
				return run, nil
			}
			continue
		}
		descriptors[path] = d
		parsed = append(parsed, d)
	}

	graph := domain.BuildProjectGraph(parsed)
	ctx := rules.Context{Graph: graph}
	pipeline := rules.ForProfile(opts.Profile, cfg.CustomRules)

	for _, path := range paths {
		d, ok := descriptors[path]
		if !ok {
			continue // parse failure already recorded
		}

		result := rules.Pipeline(pipeline, d, ctx)
		filtered := result.FilterSeverity(opts.Severity)
		run.Files = append(run.Files, FileResult{Path: path, Result: filtered})

		if opts.FailFast && !filtered.IsValid() {
			break
		}
	}

	return run, nil
}

// ValidateFile validates a single descriptor path with tree context built
// from just that file.
func (s *ValidateService) ValidateFile(path string, opts ValidateOptions) (*FileResult, error) {
	run, err := s.ValidatePaths([]string{path}, domain.DefaultConfig(), opts)
	if err != nil {
		return nil, err
	}
	if len(run.Files) == 0 {
		return nil, fmt.Errorf("no result produced for %s", path)
	}
	return &run.Files[0], nil
}
