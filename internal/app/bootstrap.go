package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fixturectl/internal/config"
	"fixturectl/internal/fixture"
	"fixturectl/internal/results"
	"fixturectl/internal/runner"
	"fixturectl/internal/selftest"
	"fixturectl/pkg/logging"
)

// ErrSuiteFailed is returned by Run when at least one test failed or a fixture broke.
var ErrSuiteFailed = errors.New("test run failed")

// Application is the main application structure that bootstraps and runs fixturectl
type Application struct {
	config    *Config
	registry  *fixture.Registry
	runConfig runner.Configuration
}

// NewApplication loads the configuration, applies the command line overrides, sets up logging
// and makes sure the built-in fixtures are registered.
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag; replaced below once the config is known
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, os.Stderr)

	var settings config.FixturectlConfig
	var err error
	if cfg.ConfigPath != "" {
		settings, err = config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration from path: %s", cfg.ConfigPath)
			return nil, fmt.Errorf("failed to load configuration from path %s: %w", cfg.ConfigPath, err)
		}
		logging.Debug("Bootstrap", "Loaded configuration from custom path: %s", cfg.ConfigPath)
	} else {
		settings, err = config.LoadConfig()
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	}

	cfg.Overrides.apply(&settings)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	cfg.Settings = &settings

	if !cfg.Debug {
		level, err := logging.ParseLevel(settings.Logging.Level)
		if err != nil {
			return nil, err
		}
		logging.InitForCLI(level, os.Stderr)
	}

	runConfig, err := runConfiguration(settings, cfg.Verbose)
	if err != nil {
		return nil, err
	}

	registry := cfg.Registry
	if registry == nil {
		registry = fixture.Default
	}
	if err := ensureBuiltins(registry); err != nil {
		logging.Error("Bootstrap", err, "Failed to register built-in fixtures")
		return nil, fmt.Errorf("failed to register built-in fixtures: %w", err)
	}
	logging.Debug("Bootstrap", "Registry holds %d fixture types", registry.Len())

	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	return &Application{
		config:    cfg,
		registry:  registry,
		runConfig: runConfig,
	}, nil
}

// runConfiguration maps the loaded settings onto a runner configuration.
func runConfiguration(settings config.FixturectlConfig, verbose bool) (runner.Configuration, error) {
	order, err := fixture.ParseOrder(settings.Run.Order)
	if err != nil {
		return runner.Configuration{}, err
	}
	rc := runner.DefaultConfiguration()
	rc.Fixtures = settings.Run.Fixtures
	rc.Order = order
	rc.HookTimeout = settings.Run.HookTimeout
	rc.ReportPath = settings.Report.Path
	rc.Verbose = verbose
	return rc, runner.ValidateConfiguration(rc)
}

// ensureBuiltins registers the self-test fixtures unless they are already present.
func ensureBuiltins(reg *fixture.Registry) error {
	if _, ok := reg.Lookup(selftest.LifecycleFixture); ok {
		return nil
	}
	_, err := selftest.Register(reg)
	return err
}

// Registry returns the registry the application runs.
func (a *Application) Registry() *fixture.Registry {
	return a.registry
}

// RunConfiguration returns the resolved runner configuration.
func (a *Application) RunConfiguration() runner.Configuration {
	return a.runConfig
}

// Run executes the application in the configured mode
func (a *Application) Run(ctx context.Context) error {
	switch a.config.Mode {
	case ModeList:
		return listFixtures(a.config.Out, a.registry, a.runConfig)
	case ModeBrowse:
		return runTUIMode(ctx, a)
	case ModeMCP:
		return runMCPMode(ctx, a)
	default:
		return runCLIMode(ctx, a)
	}
}

// execute runs every registered fixture that passes the filter.
func (a *Application) execute(ctx context.Context, reporter runner.Reporter) (*results.Node, error) {
	return runner.New(a.runConfig, reporter).Run(ctx, a.registry.Types())
}
