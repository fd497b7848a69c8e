package runner

import (
	"errors"
	"fmt"
	"time"

	"fixturectl/internal/fixture"
	"fixturectl/internal/results"
)

// Configuration controls a batch run.
type Configuration struct {
	// Assembly names the root of the result tree
	Assembly string
	// Fixtures filters the batch by fixture name; entries may be path.Match patterns. Empty runs all.
	Fixtures []string
	// Order of tests within each fixture
	Order fixture.Order
	// HookTimeout bounds every hook and body; zero disables the deadline
	HookTimeout time.Duration
	// ReportPath is a directory for the detailed JSON report; empty disables it
	ReportPath string
	Verbose    bool
}

// DefaultConfiguration returns the configuration used when nothing is overridden.
func DefaultConfiguration() Configuration {
	return Configuration{
		Assembly: "fixturectl",
		Order:    fixture.OrderDeclared,
	}
}

// ValidateConfiguration validates a run configuration.
func ValidateConfiguration(config Configuration) error {
	if config.Assembly == "" {
		return fmt.Errorf("assembly name must not be empty")
	}
	if config.HookTimeout < 0 {
		return fmt.Errorf("hook timeout must not be negative")
	}
	if config.Order != fixture.OrderDeclared && config.Order != fixture.OrderLexical {
		return fmt.Errorf("unknown test order %d", int(config.Order))
	}
	return nil
}

// Reporter receives progress of a batch run. Nodes passed to it are complete.
type Reporter interface {
	// ReportStart is called when the batch begins
	ReportStart(config Configuration, fixtures int)
	// ReportFixtureStart is called before a fixture is initialized
	ReportFixtureStart(name string)
	// ReportTestResult is called for every test node of a finished fixture
	ReportTestResult(node *results.Node)
	// ReportFixtureResult is called when a fixture subtree is complete
	ReportFixtureResult(node *results.Node)
	// ReportSuiteResult is called once with the assembly node
	ReportSuiteResult(root *results.Node)
}

// Output formats accepted by NewReporter.
const (
	FormatConsole = "console"
	FormatQuiet   = "quiet"
	FormatJSON    = "json"
)

// ErrUnknownFormat is returned for an output format NewReporter does not know.
var ErrUnknownFormat = errors.New("unknown report format")
