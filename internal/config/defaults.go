package config

import (
	"fmt"
	"time"

	"fixturectl/internal/fixture"
	"fixturectl/internal/navigator"
	"fixturectl/internal/runner"
	"fixturectl/pkg/logging"
)

// GetDefaultConfig returns the configuration used when no file overrides it.
func GetDefaultConfig() FixturectlConfig {
	detail := 0
	return FixturectlConfig{
		Run: RunConfig{
			Order: fixture.OrderDeclared.String(),
		},
		Report: ReportConfig{
			Format: runner.FormatConsole,
		},
		Navigator: NavigatorConfig{
			DetailLevel: &detail,
		},
		Stress: StressConfig{
			MaxDelay:   5 * time.Millisecond,
			Workers:    8,
			Iterations: 1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that every setting is in range.
func (c FixturectlConfig) Validate() error {
	if _, err := fixture.ParseOrder(c.Run.Order); err != nil {
		return fmt.Errorf("run.order: %w", err)
	}
	if c.Run.HookTimeout < 0 {
		return fmt.Errorf("run.hookTimeout must not be negative, got %s", c.Run.HookTimeout)
	}

	switch c.Report.Format {
	case "", runner.FormatConsole, runner.FormatQuiet, runner.FormatJSON:
	default:
		return fmt.Errorf("report.format: %w: %q", runner.ErrUnknownFormat, c.Report.Format)
	}

	if level := c.DetailLevel(); level < 0 || level > int(navigator.MaxDetailLevel) {
		return fmt.Errorf("navigator.detailLevel: %w: %d", navigator.ErrDetailLevelOutOfRange, level)
	}

	if c.Stress.Workers < 0 {
		return fmt.Errorf("stress.workers must not be negative, got %d", c.Stress.Workers)
	}
	if c.Stress.Iterations < 0 {
		return fmt.Errorf("stress.iterations must not be negative, got %d", c.Stress.Iterations)
	}
	if c.Stress.MaxDelay < 0 {
		return fmt.Errorf("stress.maxDelay must not be negative, got %s", c.Stress.MaxDelay)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}
