package config

import (
	"time"
)

// FixturectlConfig is the top-level configuration structure for fixturectl.
type FixturectlConfig struct {
	Run       RunConfig       `yaml:"run"`
	Report    ReportConfig    `yaml:"report"`
	Navigator NavigatorConfig `yaml:"navigator"`
	Stress    StressConfig    `yaml:"stress"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RunConfig controls how fixtures are executed.
type RunConfig struct {
	Order       string        `yaml:"order,omitempty"`       // "declared" or "lexical"
	HookTimeout time.Duration `yaml:"hookTimeout,omitempty"` // e.g. "30s"; zero disables the deadline
	Fixtures    []string      `yaml:"fixtures,omitempty"`    // fixture names or path.Match patterns
}

// ReportConfig controls how results are reported.
type ReportConfig struct {
	Path   string `yaml:"path,omitempty"`   // directory for detailed JSON reports
	Format string `yaml:"format,omitempty"` // "console", "quiet" or "json"
}

// NavigatorConfig holds result browser settings.
type NavigatorConfig struct {
	// DetailLevel is a pointer so that an explicit 0 can override a higher layer
	DetailLevel *int `yaml:"detailLevel,omitempty"`
}

// StressConfig holds defaults for the stress command.
type StressConfig struct {
	Seed       int64         `yaml:"seed,omitempty"`
	MaxDelay   time.Duration `yaml:"maxDelay,omitempty"`
	Workers    int           `yaml:"workers,omitempty"`
	Iterations int           `yaml:"iterations,omitempty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "debug", "info", "warn" or "error"
}

// DetailLevel returns the configured navigator detail level, defaulting to 0.
func (c FixturectlConfig) DetailLevel() int {
	if c.Navigator.DetailLevel == nil {
		return 0
	}
	return *c.Navigator.DetailLevel
}
