package app

import (
	"io"
	"time"

	"fixturectl/internal/config"
	"fixturectl/internal/fixture"
)

// Mode selects what the application does once the configuration is loaded.
type Mode int

const (
	// ModeRun runs the batch and reports on the console
	ModeRun Mode = iota
	// ModeList discovers every registered fixture without running it
	ModeList
	// ModeBrowse runs the batch and opens the interactive navigator
	ModeBrowse
	// ModeMCP runs the batch and serves the navigator over MCP stdio
	ModeMCP
)

// Overrides carries command line flags. Nil and empty fields leave the loaded configuration alone.
type Overrides struct {
	Fixtures    []string
	Order       string
	HookTimeout *time.Duration
	ReportPath  string
	Format      string
	DetailLevel *int
}

// Config holds the application configuration
type Config struct {
	Mode Mode

	// Debug forces debug logging regardless of logging.level
	Debug bool

	// Verbose makes the console reporter list every test
	Verbose bool

	// ConfigPath loads a single file instead of the layered user and project files
	ConfigPath string

	// Version is reported by the MCP server
	Version string

	Overrides Overrides

	// Registry defaults to fixture.Default
	Registry *fixture.Registry

	// Out receives reports; defaults to stdout. Logs always go to stderr so that stdout stays
	// clean for JSON reports and the MCP transport.
	Out io.Writer

	// Settings is filled in by NewApplication
	Settings *config.FixturectlConfig
}

// NewConfig creates a new application configuration
func NewConfig(mode Mode, debug, verbose bool) *Config {
	return &Config{
		Mode:    mode,
		Debug:   debug,
		Verbose: verbose,
	}
}

// apply writes the non-empty overrides over settings.
func (o Overrides) apply(settings *config.FixturectlConfig) {
	if len(o.Fixtures) > 0 {
		settings.Run.Fixtures = append([]string(nil), o.Fixtures...)
	}
	if o.Order != "" {
		settings.Run.Order = o.Order
	}
	if o.HookTimeout != nil {
		settings.Run.HookTimeout = *o.HookTimeout
	}
	if o.ReportPath != "" {
		settings.Report.Path = o.ReportPath
	}
	if o.Format != "" {
		settings.Report.Format = o.Format
	}
	if o.DetailLevel != nil {
		level := *o.DetailLevel
		settings.Navigator.DetailLevel = &level
	}
}
