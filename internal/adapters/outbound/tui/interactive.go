package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/pomlint/pomlint/internal/application"
	"github.com/pomlint/pomlint/internal/domain"
)

type fixChoice string

const (
	choiceApply   fixChoice = "apply"
	choiceSkip    fixChoice = "skip"
	choiceDetails fixChoice = "details"
	choiceEdit    fixChoice = "edit"
	choiceQuit    fixChoice = "quit"
)

// maxRestarts bounds the manual-edit loop so a descriptor that never
// converges cannot trap the session.
const maxRestarts = 20

// InteractiveFixer walks fixable issues one at a time and lets the user
// apply, skip, inspect, or drop to a manual edit. A manual edit restarts
// the walkthrough from a fresh validation, since the edit may have changed
// which issues exist.
type InteractiveFixer struct {
	fix      *application.FixService
	renderer *Renderer
	out      io.Writer
}

// NewInteractiveFixer creates an InteractiveFixer writing prompts and
// details to out.
func NewInteractiveFixer(fix *application.FixService, renderer *Renderer, out io.Writer) *InteractiveFixer {
	return &InteractiveFixer{fix: fix, renderer: renderer, out: out}
}

// Run drives the walkthrough for one descriptor and applies the accepted
// fixes. A user abort is not an error: the report carries whatever was
// accepted before quitting, which may be nothing.
func (f *InteractiveFixer) Run(path string, opts application.FixOptions) (*application.FixReport, error) {
	for restart := 0; restart <= maxRestarts; restart++ {
		fixable, result, err := f.fix.FixableIssues(path, opts.Validate)
		if err != nil {
			return nil, err
		}

		if result.IsValid() && len(result.Warnings) == 0 {
			report := &application.FixReport{Path: path, AlreadyValid: true}
			return report, nil
		}
		if len(fixable) == 0 {
			fmt.Fprintln(f.out, "No automatically fixable issues found.")
			return f.fix.ApplyIssues(path, nil, opts)
		}

		accepted, restartWanted, err := f.walk(path, fixable)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return f.fix.ApplyIssues(path, accepted, opts)
			}
			return nil, err
		}
		if restartWanted {
			continue
		}
		return f.fix.ApplyIssues(path, accepted, opts)
	}
	return nil, fmt.Errorf("walkthrough restarted %d times without converging", maxRestarts)
}

// walk prompts for each fixable issue in order. It returns the accepted
// issues, or restart=true when the user chose a manual edit.
func (f *InteractiveFixer) walk(path string, fixable []domain.ValidationIssue) ([]domain.ValidationIssue, bool, error) {
	var accepted []domain.ValidationIssue

	for i := 0; i < len(fixable); i++ {
		issue := fixable[i]

		choice, err := f.prompt(issue, i+1, len(fixable))
		if err != nil {
			return accepted, false, err
		}

		switch choice {
		case choiceApply:
			accepted = append(accepted, issue)
		case choiceSkip:
			// nothing to do
		case choiceDetails:
			f.printDetails(issue)
			i-- // re-prompt the same issue
		case choiceEdit:
			if err := f.waitForEdit(path); err != nil {
				return accepted, false, err
			}
			return accepted, true, nil
		case choiceQuit:
			return accepted, false, huh.ErrUserAborted
		}
	}

	return accepted, false, nil
}

func (f *InteractiveFixer) prompt(issue domain.ValidationIssue, pos, total int) (fixChoice, error) {
	var choice fixChoice

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[fixChoice]().
				Title(fmt.Sprintf("[%d/%d] %s", pos, total, issue.Message)).
				Description(issue.Suggestion).
				Options(
					huh.NewOption("Apply this fix", choiceApply),
					huh.NewOption("Skip", choiceSkip),
					huh.NewOption("Show details", choiceDetails),
					huh.NewOption("Edit the file manually", choiceEdit),
					huh.NewOption("Quit", choiceQuit),
				).
				Value(&choice),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

func (f *InteractiveFixer) printDetails(issue domain.ValidationIssue) {
	fmt.Fprintf(f.out, "\nRule:     %s\n", issue.Rule)
	fmt.Fprintf(f.out, "Severity: %s\n", issue.Severity)
	if issue.Subject != "" {
		fmt.Fprintf(f.out, "Subject:  %s\n", issue.Subject)
	}
	fmt.Fprintf(f.out, "Message:  %s\n", issue.Message)
	if issue.HasSuggestion() {
		fmt.Fprintf(f.out, "Fix:      %s\n", issue.Suggestion)
	}
	fmt.Fprintln(f.out)
}

// waitForEdit blocks until the user confirms the manual edit is done. The
// caller then restarts the walkthrough against the edited file.
func (f *InteractiveFixer) waitForEdit(path string) error {
	fmt.Fprintf(f.out, "\nEdit %s in your editor, then confirm to re-validate.\n", path)

	done := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Done editing?").
				Affirmative("Re-validate").
				Negative("Cancel").
				Value(&done),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !done {
		return huh.ErrUserAborted
	}
	return nil
}
