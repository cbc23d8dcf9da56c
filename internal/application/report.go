package application

import (
	"time"

	"github.com/pomlint/pomlint/internal/domain"
)

// ToolName appears in the machine-readable report metadata.
const ToolName = "pomlint"

// Report is the machine-readable projection of a run, consumed by external
// formatters.
type Report struct {
	Tool      string        `json:"tool"`
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Commit    string        `json:"commit,omitempty"`
	Summary   ReportSummary `json:"summary"`
	Results   []ReportEntry `json:"results"`
}

type ReportSummary struct {
	ValidCount    int `json:"valid_count"`
	InvalidCount  int `json:"invalid_count"`
	TotalErrors   int `json:"total_errors"`
	TotalWarnings int `json:"total_warnings"`
	TotalInfos    int `json:"total_infos"`
}

type ReportEntry struct {
	File     string        `json:"file"`
	Valid    bool          `json:"valid"`
	Errors   []ReportIssue `json:"errors"`
	Warnings []ReportIssue `json:"warnings"`
	Infos    []ReportIssue `json:"infos"`
}

type ReportIssue struct {
	Rule       string `json:"rule"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ReportBuilder assembles reports, stamping tool version and the commit
// hash of the validated tree when it is a git repository.
type ReportBuilder struct {
	version string
	git     domain.GitInfo
	now     func() time.Time
}

// NewReportBuilder creates a builder. git may be nil when commit metadata
// is not wanted.
func NewReportBuilder(version string, git domain.GitInfo) *ReportBuilder {
	return &ReportBuilder{version: version, git: git, now: time.Now}
}

// Build projects a run result into the report shape.
func (b *ReportBuilder) Build(run *RunResult, projectPath string) *Report {
	report := &Report{
		Tool:      ToolName,
		Version:   b.version,
		Timestamp: b.now().Format(time.RFC3339),
		Results:   make([]ReportEntry, 0, len(run.Files)),
	}

	if b.git != nil && b.git.IsGitRepo(projectPath) {
		if hash, err := b.git.CommitHash(projectPath); err == nil {
			report.Commit = hash
		}
	}

	for _, file := range run.Files {
		entry := ReportEntry{
			File:     file.Path,
			Valid:    file.Result.IsValid(),
			Errors:   toReportIssues(file.Result.Errors),
			Warnings: toReportIssues(file.Result.Warnings),
			Infos:    toReportIssues(file.Result.Infos),
		}
		report.Results = append(report.Results, entry)

		if entry.Valid {
			report.Summary.ValidCount++
		} else {
			report.Summary.InvalidCount++
		}
		report.Summary.TotalErrors += len(file.Result.Errors)
		report.Summary.TotalWarnings += len(file.Result.Warnings)
		report.Summary.TotalInfos += len(file.Result.Infos)
	}

	return report
}

func toReportIssues(issues []domain.ValidationIssue) []ReportIssue {
	out := make([]ReportIssue, len(issues))
	for i, issue := range issues {
		out[i] = ReportIssue{
			Rule:       string(issue.Rule),
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
		}
	}
	return out
}
