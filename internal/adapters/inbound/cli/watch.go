package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/pomlint/pomlint/internal/adapters/outbound/config"
	"github.com/pomlint/pomlint/internal/adapters/outbound/parser"
	"github.com/pomlint/pomlint/internal/adapters/outbound/scanner"
	"github.com/pomlint/pomlint/internal/adapters/outbound/tui"
	"github.com/pomlint/pomlint/internal/application"
	"github.com/pomlint/pomlint/internal/domain"
)

func newWatchCmd() *cobra.Command {
	var (
		recursive bool
		profile   string
		severity  string
		noColor   bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-validate POM files as they change",
		Long:  "Validate every descriptor under a path, then keep watching and re-validate a descriptor whenever it changes on disk. Stop with Ctrl-C.",
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

			opts, err := buildValidateOptions(profile, severity, recursive, false)
			if err != nil {
				return err
			}

			level := hclog.Warn
			if verbose {
				level = hclog.Debug
			}
			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "pomlint.watch",
				Level:  level,
				Output: cmd.ErrOrStderr(),
			})

			validateSvc := application.NewValidateService(parser.New(), scanner.New(), config.New())
			watchSvc := application.NewWatchService(validateSvc, scanner.New(), logger)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				fmt.Fprintln(cmd.OutOrStdout(), "\nStopping watch.")
				watchSvc.Stop()
			}()

			renderer := tui.NewRenderer(!noColor)
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for POM changes...\n\n", absPath)

			return watchSvc.Watch(absPath, opts, func(file application.FileResult) {
				fmt.Fprint(cmd.OutOrStdout(), renderer.RenderFile(file))
				fmt.Fprintln(cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch descriptors in subdirectories")
	cmd.Flags().StringVar(&profile, "profile", string(domain.ProfileStandard), "Validation profile (strict, standard, minimal, custom)")
	cmd.Flags().StringVar(&severity, "severity", string(domain.SeverityAll), "Minimum severity to report (error, warning, info, all)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable styled output")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log watcher internals")

	return cmd
}
