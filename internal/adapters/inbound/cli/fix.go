package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pomlint/pomlint/internal/adapters/outbound/config"
	"github.com/pomlint/pomlint/internal/adapters/outbound/parser"
	"github.com/pomlint/pomlint/internal/adapters/outbound/scanner"
	"github.com/pomlint/pomlint/internal/adapters/outbound/tui"
	"github.com/pomlint/pomlint/internal/application"
	"github.com/pomlint/pomlint/internal/domain"
)

func newFixCmd() *cobra.Command {
	var (
		interactive bool
		noBackup    bool
		dryRun      bool
		profile     string
		severity    string
		jsonOutput  bool
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Apply deterministic fixes to a POM file",
		Long:  "Validate a descriptor, back it up, apply the fixes pomlint knows how to make, and re-validate. Only re-validation decides whether the file improved.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			pomPath, err := resolveDescriptorPath(path)
			if err != nil {
				return err
			}

			validateOpts, err := buildValidateOptions(profile, severity, false, false)
			if err != nil {
				return err
			}
			opts := application.FixOptions{
				Backup:   !noBackup,
				DryRun:   dryRun,
				Validate: validateOpts,
			}

			par := parser.New()
			validateSvc := application.NewValidateService(par, scanner.New(), config.New())
			fixSvc := application.NewFixService(validateSvc, par, par)

			var report *application.FixReport
			if interactive {
				if dryRun {
					return fmt.Errorf("--interactive and --dry-run are mutually exclusive")
				}
				fixer := tui.NewInteractiveFixer(fixSvc, tui.NewRenderer(!noColor), cmd.OutOrStdout())
				report, err = fixer.Run(pomPath, opts)
			} else {
				report, err = fixSvc.FixPom(pomPath, opts)
			}
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.NewRenderer(!noColor).RenderFixReport(report))

			if report.ResidualErrors > 0 {
				return fmt.Errorf("%d error(s) remain after fixing", report.ResidualErrors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Confirm each fix before applying it")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the .backup copy before modifying the file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List planned fixes without touching the file")
	cmd.Flags().StringVar(&profile, "profile", string(domain.ProfileStandard), "Validation profile (strict, standard, minimal, custom)")
	cmd.Flags().StringVar(&severity, "severity", string(domain.SeverityAll), "Minimum severity to report (error, warning, info, all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable styled output")

	return cmd
}

// resolveDescriptorPath accepts either a pom.xml path or a directory
// containing one.
func resolveDescriptorPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("inspecting path: %w", err)
	}
	if info.IsDir() {
		absPath = filepath.Join(absPath, domain.DescriptorFileName)
		if _, err := os.Stat(absPath); err != nil {
			return "", fmt.Errorf("no %s found in %s", domain.DescriptorFileName, path)
		}
	}
	return absPath, nil
}
