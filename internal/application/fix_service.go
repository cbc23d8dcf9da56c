package application

import (
	"fmt"
	"os"

	"github.com/pomlint/pomlint/internal/domain"
)

// FixOptions controls the batch remediation driver.
type FixOptions struct {
	// Backup controls whether a byte-identical copy is written next to the
	// original before any mutation. Declining is explicit; the engine never
	// silently skips the backup.
	Backup bool
	// DryRun plans fixes without touching the file.
	DryRun bool

	Validate ValidateOptions
}

// FixOutcome records the remediation attempt for one issue.
type FixOutcome struct {
	Issue   domain.ValidationIssue `json:"issue"`
	Applied bool                   `json:"applied"`
}

// FixReport is the result of one remediation pass. Success is never
// asserted directly; ResidualErrors/ResidualWarnings report what
// re-validation found after the fixes.
type FixReport struct {
	Path             string       `json:"path"`
	BackupPath       string       `json:"backup_path,omitempty"`
	AlreadyValid     bool         `json:"already_valid"`
	Outcomes         []FixOutcome `json:"outcomes"`
	Fixed            int          `json:"fixed"`
	Failed           int          `json:"failed"`
	ResidualErrors   int          `json:"residual_errors"`
	ResidualWarnings int          `json:"residual_warnings"`
}

// FixService is the batch remediation driver: validate, back up, apply the
// deterministic catalogue, persist, re-validate.
type FixService struct {
	validate *ValidateService
	parser   domain.DescriptorParser
	writer   domain.DescriptorWriter
}

// NewFixService creates a FixService.
func NewFixService(validate *ValidateService, parser domain.DescriptorParser, writer domain.DescriptorWriter) *FixService {
	return &FixService{validate: validate, parser: parser, writer: writer}
}

// FixableIssues returns the catalogue-covered issues of one descriptor,
// exposed for interactive drivers.
func (s *FixService) FixableIssues(path string, opts ValidateOptions) ([]domain.ValidationIssue, *domain.ValidationResult, error) {
	file, err := s.validate.ValidateFile(path, opts)
	if err != nil {
		return nil, nil, err
	}
	result := file.Result
	return domain.FixableIssues(&result), &result, nil
}

// FixPom runs the batch driver against one descriptor. A fix that cannot
// be determined is reported as not applied and never aborts the remaining
// batch.
func (s *FixService) FixPom(path string, opts FixOptions) (*FixReport, error) {
	report := &FixReport{Path: path}

	fixable, initial, err := s.FixableIssues(path, opts.Validate)
	if err != nil {
		return nil, err
	}

	if initial.IsValid() && len(initial.Warnings) == 0 {
		report.AlreadyValid = true
		return report, nil
	}
	if len(fixable) == 0 {
		report.ResidualErrors = len(initial.Errors)
		report.ResidualWarnings = len(initial.Warnings)
		return report, nil
	}

	if opts.DryRun {
		for _, issue := range fixable {
			report.Outcomes = append(report.Outcomes, FixOutcome{Issue: issue})
		}
		report.ResidualErrors = len(initial.Errors)
		report.ResidualWarnings = len(initial.Warnings)
		return report, nil
	}

	if err := s.applyIssues(report, fixable, opts); err != nil {
		return nil, err
	}
	return report, nil
}

// ApplyIssues applies a caller-chosen subset of fixable issues to one
// descriptor, used by the interactive driver after the walkthrough.
func (s *FixService) ApplyIssues(path string, issues []domain.ValidationIssue, opts FixOptions) (*FixReport, error) {
	report := &FixReport{Path: path}
	if len(issues) == 0 {
		final, err := s.validate.ValidateFile(path, opts.Validate)
		if err != nil {
			return nil, fmt.Errorf("re-validating: %w", err)
		}
		report.ResidualErrors = len(final.Result.Errors)
		report.ResidualWarnings = len(final.Result.Warnings)
		return report, nil
	}
	if err := s.applyIssues(report, issues, opts); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *FixService) applyIssues(report *FixReport, issues []domain.ValidationIssue, opts FixOptions) error {
	// The backup must exist before the original is overwritten.
	if opts.Backup {
		backupPath, err := createBackup(report.Path)
		if err != nil {
			return fmt.Errorf("creating backup: %w", err)
		}
		report.BackupPath = backupPath
	}

	descriptor, err := s.parser.Parse(report.Path)
	if err != nil {
		return fmt.Errorf("re-parsing descriptor: %w", err)
	}

	changed := false
	for _, issue := range issues {
		next, applied := domain.ApplyFix(descriptor, issue)
		report.Outcomes = append(report.Outcomes, FixOutcome{Issue: issue, Applied: applied})
		if applied {
			descriptor = next
			changed = true
			report.Fixed++
		} else {
			report.Failed++
		}
	}

	if changed {
		if err := s.writer.Write(descriptor); err != nil {
			return fmt.Errorf("persisting descriptor: %w", err)
		}
	}

	// Success is only ever "re-validation agrees".
	final, err := s.validate.ValidateFile(report.Path, opts.Validate)
	if err != nil {
		return fmt.Errorf("re-validating: %w", err)
	}
	report.ResidualErrors = len(final.Result.Errors)
	report.ResidualWarnings = len(final.Result.Warnings)
	return nil
}

// createBackup writes a byte-identical copy next to the original.
func createBackup(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backupPath := path + ".backup"
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", err
	}
	return backupPath, nil
}
