package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pomlint/pomlint/internal/application"
	"github.com/pomlint/pomlint/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

// Renderer renders validation output for the terminal. Color is an explicit
// option threaded in from the CLI, never a process-wide toggle.
type Renderer struct {
	headerStyle   lipgloss.Style
	boxStyle      lipgloss.Style
	dimStyle      lipgloss.Style
	faintStyle    lipgloss.Style
	passStyle     lipgloss.Style
	failStyle     lipgloss.Style
	errorTagStyle lipgloss.Style
	warnTagStyle  lipgloss.Style
	infoTagStyle  lipgloss.Style
	fileStyle     lipgloss.Style
	titleStyle    lipgloss.Style
}

// NewRenderer creates a Renderer. With color disabled every style renders
// plain text.
func NewRenderer(color bool) *Renderer {
	if !color {
		plain := lipgloss.NewStyle()
		return &Renderer{
			headerStyle: plain, boxStyle: plain, dimStyle: plain,
			faintStyle: plain, passStyle: plain, failStyle: plain,
			errorTagStyle: plain, warnTagStyle: plain, infoTagStyle: plain,
			fileStyle: plain, titleStyle: plain,
		}
	}
	return &Renderer{
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(accent).Align(lipgloss.Center),
		boxStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 3),
		dimStyle:      lipgloss.NewStyle().Foreground(dim),
		faintStyle:    lipgloss.NewStyle().Foreground(faint),
		passStyle:     lipgloss.NewStyle().Foreground(success),
		failStyle:     lipgloss.NewStyle().Foreground(danger),
		errorTagStyle: lipgloss.NewStyle().Foreground(danger).Bold(true),
		warnTagStyle:  lipgloss.NewStyle().Foreground(warning).Bold(true),
		infoTagStyle:  lipgloss.NewStyle().Foreground(info),
		fileStyle:     lipgloss.NewStyle().Foreground(dim),
		titleStyle:    lipgloss.NewStyle().Bold(true).Foreground(fg),
	}
}

// RenderRun renders the full validation report: a header box, one section
// per descriptor, then the summary line.
func (r *Renderer) RenderRun(run *application.RunResult) string {
	var b strings.Builder

	title := r.headerStyle.Render("pomlint")
	subtitle := r.dimStyle.Render("POM validation report")
	b.WriteString(r.boxStyle.Render(title + "\n" + subtitle))
	b.WriteString("\n\n")

	for _, file := range run.Files {
		r.renderFile(&b, file)
		b.WriteString("\n")
	}

	b.WriteString(r.renderSummary(run))
	return b.String()
}

// RenderFile renders one descriptor's section, used by watch mode for
// incremental output.
func (r *Renderer) RenderFile(file application.FileResult) string {
	var b strings.Builder
	r.renderFile(&b, file)
	return b.String()
}

func (r *Renderer) renderFile(b *strings.Builder, file application.FileResult) {
	status := r.passStyle.Render("VALID")
	if !file.Result.IsValid() {
		status = r.failStyle.Render("INVALID")
	}
	fmt.Fprintf(b, "%s  %s\n", r.fileStyle.Render(file.Path), status)

	for _, issue := range file.Result.Errors {
		r.renderIssue(b, r.errorTagStyle.Render("ERROR"), issue)
	}
	for _, issue := range file.Result.Warnings {
		r.renderIssue(b, r.warnTagStyle.Render("WARN"), issue)
	}
	for _, issue := range file.Result.Infos {
		r.renderIssue(b, r.infoTagStyle.Render("INFO"), issue)
	}
}

func (r *Renderer) renderIssue(b *strings.Builder, tag string, issue domain.ValidationIssue) {
	fmt.Fprintf(b, "  %s  %s\n", tag, issue.Message)
	if issue.HasSuggestion() {
		fmt.Fprintf(b, "         %s\n", r.dimStyle.Render("→ "+issue.Suggestion))
	}
}

func (r *Renderer) renderSummary(run *application.RunResult) string {
	valid, invalid, errors, warnings := 0, 0, 0, 0
	for _, f := range run.Files {
		if f.Result.IsValid() {
			valid++
		} else {
			invalid++
		}
		errors += len(f.Result.Errors)
		warnings += len(f.Result.Warnings)
	}

	line := fmt.Sprintf("%d valid, %d invalid", valid, invalid)
	counts := fmt.Sprintf("%s, %s",
		r.errorTagStyle.Render(fmt.Sprintf("%d errors", errors)),
		r.warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)))

	sep := r.faintStyle.Render(strings.Repeat("─", 48))
	return fmt.Sprintf("%s\n%s  %s\n", sep, r.titleStyle.Render(line), counts)
}

// RenderSummaryOnly renders just the totals, for --summary mode.
func (r *Renderer) RenderSummaryOnly(run *application.RunResult) string {
	return r.renderSummary(run)
}

// RenderFixReport renders the remediation outcome.
func (r *Renderer) RenderFixReport(report *application.FixReport) string {
	var b strings.Builder

	title := r.headerStyle.Render("pomlint fix")
	b.WriteString(r.boxStyle.Render(title + "\n" + r.dimStyle.Render(report.Path)))
	b.WriteString("\n\n")

	if report.AlreadyValid {
		b.WriteString(r.passStyle.Render("Descriptor is already valid, no fixes needed.") + "\n")
		return b.String()
	}

	if report.BackupPath != "" {
		fmt.Fprintf(&b, "%s\n\n", r.dimStyle.Render("Backup: "+report.BackupPath))
	}

	for _, outcome := range report.Outcomes {
		mark := r.passStyle.Render("✓")
		if !outcome.Applied {
			mark = r.failStyle.Render("✗")
		}
		fmt.Fprintf(&b, "  %s %s\n", mark, outcome.Issue.Message)
	}

	fmt.Fprintf(&b, "\n%s fixed, %s failed\n",
		r.passStyle.Render(fmt.Sprintf("%d", report.Fixed)),
		r.failStyle.Render(fmt.Sprintf("%d", report.Failed)))
	fmt.Fprintf(&b, "Remaining after re-validation: %d errors, %d warnings\n",
		report.ResidualErrors, report.ResidualWarnings)

	return b.String()
}
