package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fixturectl/internal/app"
	"fixturectl/internal/runner"
)

// runFlags are the batch selection flags shared by run, list, browse and mcp.
type runFlags struct {
	fixtures    []string
	order       string
	hookTimeout time.Duration
	reportPath  string
	format      string
	verbose     bool
	detailLevel int
}

func (f *runFlags) addSelection(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.fixtures, "fixture", nil, "Run only fixtures matching these names or glob patterns")
	cmd.Flags().StringVar(&f.order, "order", "", "Test order within a fixture (declared, lexical)")
	cmd.Flags().DurationVar(&f.hookTimeout, "hook-timeout", 0, "Deadline for every hook and test body (0 disables)")

	_ = cmd.RegisterFlagCompletionFunc("order", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"declared", "lexical"}, cobra.ShellCompDirectiveDefault
	})
}

func (f *runFlags) addReporting(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.reportPath, "report", "", "Directory to save a detailed JSON report in")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format (console, quiet, json)")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "List every test and the effective configuration")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{runner.FormatConsole, runner.FormatQuiet, runner.FormatJSON}, cobra.ShellCompDirectiveDefault
	})
}

func (f *runFlags) addDetail(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.detailLevel, "detail", 0, "Initial detail level (0 status, 1 error types, 2 full errors)")
}

// overrides returns only the flags the user actually set, so config files keep their say.
func (f *runFlags) overrides(cmd *cobra.Command) app.Overrides {
	var o app.Overrides
	flags := cmd.Flags()
	if flags.Changed("fixture") {
		o.Fixtures = f.fixtures
	}
	if flags.Changed("order") {
		o.Order = f.order
	}
	if flags.Changed("hook-timeout") {
		timeout := f.hookTimeout
		o.HookTimeout = &timeout
	}
	if flags.Changed("report") {
		o.ReportPath = f.reportPath
	}
	if flags.Changed("format") {
		o.Format = f.format
	}
	if flags.Changed("detail") {
		level := f.detailLevel
		o.DetailLevel = &level
	}
	return o
}

// runApplication bootstraps the application in mode and runs it until it finishes or the
// process is interrupted.
func runApplication(cmd *cobra.Command, mode app.Mode, f *runFlags) error {
	cfg := app.NewConfig(mode, debug, f.verbose)
	cfg.ConfigPath = configPath
	cfg.Version = rootCmd.Version
	cfg.Overrides = f.overrides(cmd)
	cfg.Out = cmd.OutOrStdout()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupts gracefully: running fixtures finish their teardown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return application.Run(ctx)
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the registered fixtures and report the results",
		Long: `Runs every registered fixture through its lifecycle: fixture setup, then
setup, body and teardown for each test, then fixture teardown.

A failing test does not stop the rest of its fixture, and a fixture that
cannot be discovered or constructed does not stop the batch. The command
exits non-zero when any test failed or any fixture broke.

Examples:
  fixturectl run
  fixturectl run --fixture 'SelfTest.*' --order lexical
  fixturectl run --format json > results.json
  fixturectl run --report ./reports --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd, app.ModeRun, &f)
		},
	}
	f.addSelection(cmd)
	f.addReporting(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered fixtures and their tests",
		Long: `Discovers every registered fixture without running it and prints its tests,
ignore reasons and discovery errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd, app.ModeList, &f)
		},
	}
	f.addSelection(cmd)
	return cmd
}

func newBrowseCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Run the fixtures and browse the result tree interactively",
		Long: `Runs the registered fixtures quietly, then opens a terminal navigator over
the result tree. Use the arrow keys or u/d/l/r to move, 0-2 to change the
detail level, y to copy the current node and h for help.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd, app.ModeBrowse, &f)
		},
	}
	f.addSelection(cmd)
	f.addDetail(cmd)
	return cmd
}

func newMCPCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the fixtures and serve the result tree over MCP (stdio transport)",
		Long: `Runs the registered fixtures, then serves navigation tools over the result
tree on stdin/stdout so an AI assistant can inspect failures.

Tools: nav_up, nav_down, nav_left, nav_right, nav_child, nav_detail,
nav_describe and nav_path. Logs and the failure summary go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd, app.ModeMCP, &f)
		},
	}
	f.addSelection(cmd)
	f.addDetail(cmd)
	return cmd
}
