package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"fixturectl/internal/mcpdriver"
	"fixturectl/internal/navigator"
	"fixturectl/internal/results"
	"fixturectl/internal/runner"
	"fixturectl/internal/tui/controller"
	"fixturectl/pkg/logging"
)

// runCLIMode runs the batch and reports it in the configured format.
func runCLIMode(ctx context.Context, a *Application) error {
	settings := a.config.Settings
	reporter, err := runner.NewReporter(settings.Report.Format, a.config.Out, a.config.Verbose, settings.Report.Path)
	if err != nil {
		return err
	}

	root, err := a.execute(ctx, reporter)
	if err != nil {
		logging.Error("CLI", err, "Test run interrupted")
		return err
	}
	return verdict(root)
}

// verdict turns an unhealthy tree into ErrSuiteFailed.
func verdict(root *results.Node) error {
	summary, ok := root.AssemblySummary()
	if !ok {
		return fmt.Errorf("result root is a %s node", root.Kind())
	}
	if !summary.Healthy() {
		return fmt.Errorf("%w: %d failed, %d broken fixtures", ErrSuiteFailed, summary.Failed, summary.Broken)
	}
	return nil
}

// runTUIMode runs the batch quietly, then lets the user browse the result tree.
func runTUIMode(ctx context.Context, a *Application) error {
	logging.Info("CLI", "Starting TUI mode...")

	// Switch logging to channel-based system for TUI integration
	logLevel := logging.LevelInfo
	if a.config.Debug {
		logLevel = logging.LevelDebug
	} else if level, err := logging.ParseLevel(a.config.Settings.Logging.Level); err == nil {
		logLevel = level
	}
	logChan := logging.InitForTUI(logLevel)
	defer logging.CloseTUIChannel()

	root, err := a.execute(ctx, runner.NewQuietReporter(io.Discard))
	if err != nil {
		return err
	}

	p, err := controller.NewProgram(root, navigator.DetailLevel(a.config.Settings.DetailLevel()), logChan)
	if err != nil {
		logging.Error("TUI-Lifecycle", err, "Error creating TUI program")
		return err
	}

	// Run the TUI until user exits
	if _, err := p.Run(); err != nil {
		logging.Error("TUI-Lifecycle", err, "Error running TUI program")
		return err
	}
	logging.Info("TUI-Lifecycle", "TUI exited.")

	return nil
}

// runMCPMode runs the batch, summarizes failures on stderr and serves the tree over stdio.
func runMCPMode(ctx context.Context, a *Application) error {
	root, err := a.execute(ctx, runner.NewQuietReporter(os.Stderr))
	if err != nil {
		return err
	}

	nav := navigator.New(root)
	if err := nav.SetDetailLevel(navigator.DetailLevel(a.config.Settings.DetailLevel())); err != nil {
		return err
	}

	driver := mcpdriver.New(nav, a.config.Version)
	if err := driver.Serve(); err != nil {
		logging.Error("MCP", err, "MCP server stopped")
		return err
	}
	return nil
}
