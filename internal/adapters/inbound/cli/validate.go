package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pomlint/pomlint/internal/adapters/outbound/config"
	"github.com/pomlint/pomlint/internal/adapters/outbound/gitinfo"
	"github.com/pomlint/pomlint/internal/adapters/outbound/parser"
	"github.com/pomlint/pomlint/internal/adapters/outbound/scanner"
	"github.com/pomlint/pomlint/internal/adapters/outbound/tui"
	"github.com/pomlint/pomlint/internal/application"
	"github.com/pomlint/pomlint/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		recursive  bool
		profile    string
		severity   string
		jsonOutput bool
		summary    bool
		failFast   bool
		noColor    bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate POM files under a path",
		Long:  "Validate a pom.xml file or every descriptor under a directory. The exit code is non-zero when any descriptor has errors; warnings and infos never fail the run.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			opts, err := buildValidateOptions(profile, severity, recursive, failFast)
			if err != nil {
				return err
			}

			svc := application.NewValidateService(parser.New(), scanner.New(), config.New())
			run, err := svc.ValidateTree(absPath, opts)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if jsonOutput || output != "" {
				if err := renderRunJSON(cmd, run, absPath, output); err != nil {
					return err
				}
			} else {
				renderer := tui.NewRenderer(!noColor)
				if summary {
					fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSummaryOnly(run))
				} else {
					fmt.Fprint(cmd.OutOrStdout(), renderer.RenderRun(run))
				}
			}

			if n := run.ErrorCount(); n > 0 {
				return fmt.Errorf("validation found %d error(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Discover descriptors in subdirectories")
	cmd.Flags().StringVar(&profile, "profile", string(domain.ProfileStandard), "Validation profile (strict, standard, minimal, custom)")
	cmd.Flags().StringVar(&severity, "severity", string(domain.SeverityAll), "Minimum severity to report (error, warning, info, all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print only the summary line")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first invalid descriptor")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable styled output")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the JSON report to a file")

	return cmd
}

// buildValidateOptions parses profile and severity strictly: an unknown
// name is a usage error, never a silent fallback.
func buildValidateOptions(profile, severity string, recursive, failFast bool) (application.ValidateOptions, error) {
	p, err := domain.ParseProfile(profile)
	if err != nil {
		return application.ValidateOptions{}, err
	}
	s, err := domain.ParseSeverity(severity)
	if err != nil {
		return application.ValidateOptions{}, err
	}
	return application.ValidateOptions{
		Profile:   p,
		Severity:  s,
		Recursive: recursive,
		FailFast:  failFast,
	}, nil
}

func renderRunJSON(cmd *cobra.Command, run *application.RunResult, projectPath, output string) error {
	report := application.NewReportBuilder(version, gitinfo.New()).Build(run, projectPath)

	if output != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		if err := os.WriteFile(output, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
