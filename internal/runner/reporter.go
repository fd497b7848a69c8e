package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fixturectl/internal/results"
)

// NewReporter creates the reporter for the given output format.
func NewReporter(format string, w io.Writer, verbose bool, reportPath string) (Reporter, error) {
	switch format {
	case "", FormatConsole:
		return NewConsoleReporter(w, verbose, reportPath), nil
	case FormatQuiet:
		return NewQuietReporter(w), nil
	case FormatJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// consoleReporter prints human-readable progress
type consoleReporter struct {
	w          io.Writer
	verbose    bool
	reportPath string
	now        func() time.Time
}

// NewConsoleReporter creates a reporter for interactive use. When reportPath is set a detailed
// JSON report is saved there at the end of the run.
func NewConsoleReporter(w io.Writer, verbose bool, reportPath string) Reporter {
	return &consoleReporter{
		w:          w,
		verbose:    verbose,
		reportPath: reportPath,
		now:        time.Now,
	}
}

func (r *consoleReporter) ReportStart(config Configuration, fixtures int) {
	fmt.Fprintf(r.w, "🧪 Running %d fixtures of %s\n", fixtures, config.Assembly)

	if r.verbose {
		fmt.Fprintf(r.w, "⚙️  Configuration:\n")
		fmt.Fprintf(r.w, "   • Order: %s\n", config.Order)
		if len(config.Fixtures) > 0 {
			fmt.Fprintf(r.w, "   • Fixtures: %v\n", config.Fixtures)
		}
		if config.HookTimeout > 0 {
			fmt.Fprintf(r.w, "   • Hook timeout: %v\n", config.HookTimeout)
		}
		if config.ReportPath != "" {
			fmt.Fprintf(r.w, "   • Report path: %s\n", config.ReportPath)
		}
		fmt.Fprintf(r.w, "\n")
	}
}

func (r *consoleReporter) ReportFixtureStart(name string) {
	if r.verbose {
		fmt.Fprintf(r.w, "🎯 %s\n", name)
	} else {
		fmt.Fprintf(r.w, "🎯 %s... ", name)
	}
}

func (r *consoleReporter) ReportTestResult(node *results.Node) {
	if !r.verbose {
		return
	}
	outcome, ok := node.Outcome()
	if !ok {
		return
	}
	symbol := outcomeSymbol(outcome)
	if outcome.Ignored {
		fmt.Fprintf(r.w, "   %s %s (ignored: %s)\n", symbol, outcome.Test, stringOrDefault(outcome.IgnoreReason, "no reason given"))
		return
	}
	fmt.Fprintf(r.w, "   %s %s (%v)\n", symbol, outcome.Test, outcome.Duration())
	for _, err := range outcome.Errors {
		fmt.Fprintf(r.w, "     ❌ %s\n", err)
	}
}

func (r *consoleReporter) ReportFixtureResult(node *results.Node) {
	summary, ok := node.FixtureSummary()
	if !ok {
		return
	}
	symbol := fixtureSymbol(summary)
	duration := summary.CompletedAt.Sub(summary.StartedAt)

	if !r.verbose {
		fmt.Fprintf(r.w, "%s (%v)\n", symbol, duration)
		return
	}

	for _, err := range summary.Errors() {
		fmt.Fprintf(r.w, "   💥 %s\n", err)
	}
	fmt.Fprintf(r.w, "%s %s: %d passed", symbol, summary.Fixture, summary.Passed)
	if summary.Failed > 0 {
		fmt.Fprintf(r.w, ", %d failed", summary.Failed)
	}
	if summary.NotRun > 0 {
		fmt.Fprintf(r.w, ", %d not run", summary.NotRun)
	}
	fmt.Fprintf(r.w, " (%v)\n\n", duration)
}

func (r *consoleReporter) ReportSuiteResult(root *results.Node) {
	asm, ok := root.AssemblySummary()
	if !ok {
		return
	}
	fmt.Fprintf(r.w, "\n🏁 Run Complete\n")
	fmt.Fprintf(r.w, "⏱️  Duration: %v\n", asm.CompletedAt.Sub(asm.StartedAt))
	fmt.Fprintf(r.w, "📊 Results:\n")
	fmt.Fprintf(r.w, "   ✅ Passed: %d\n", asm.Passed)
	if asm.Failed > 0 {
		fmt.Fprintf(r.w, "   ❌ Failed: %d\n", asm.Failed)
	}
	if asm.NotRun > 0 {
		fmt.Fprintf(r.w, "   ⏭️  Not run: %d\n", asm.NotRun)
	}
	if asm.Broken > 0 {
		fmt.Fprintf(r.w, "   💥 Broken fixtures: %d\n", asm.Broken)
	}
	fmt.Fprintf(r.w, "   📈 Fixtures: %d\n", asm.Fixtures)

	if asm.Healthy() {
		fmt.Fprintf(r.w, "\n🎉 All tests passed!\n")
	} else {
		fmt.Fprintf(r.w, "\n💔 Some tests failed\n")
	}

	if r.reportPath != "" {
		path, err := saveDetailedReport(r.reportPath, root, r.now())
		if err != nil {
			fmt.Fprintf(r.w, "⚠️  Failed to save detailed report: %v\n", err)
		} else {
			fmt.Fprintf(r.w, "📄 Detailed report saved to: %s\n", path)
		}
	}
}

// saveDetailedReport writes the result tree as JSON into dir and returns the file path
func saveDetailedReport(dir string, root *results.Node, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	filename := fmt.Sprintf("fixturectl-report-%s.json", now.Format("20060102-150405"))
	fullPath := filepath.Join(dir, filename)

	jsonData, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if err := os.WriteFile(fullPath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}
	return fullPath, nil
}

func outcomeSymbol(o *results.Outcome) string {
	switch o.Status {
	case results.StatusPassed:
		return "✅"
	case results.StatusFailed:
		return "❌"
	case results.StatusNotRun:
		return "⏭️"
	default:
		return "❓"
	}
}

func fixtureSymbol(s *results.FixtureSummary) string {
	switch {
	case s.Ignored:
		return "⏭️"
	case len(s.Errors()) > 0:
		return "💥"
	case s.Failed > 0:
		return "❌"
	default:
		return "✅"
	}
}

func stringOrDefault(s, defaultValue string) string {
	if s == "" {
		return defaultValue
	}
	return s
}

// NewQuietReporter creates a reporter that only prints failures and a final line. A nil writer
// discards everything.
func NewQuietReporter(w io.Writer) Reporter {
	if w == nil {
		w = io.Discard
	}
	return &quietReporter{w: w}
}

// quietReporter implements minimal output for CI
type quietReporter struct {
	w io.Writer
}

func (r *quietReporter) ReportStart(config Configuration, fixtures int) {}

func (r *quietReporter) ReportFixtureStart(name string) {}

func (r *quietReporter) ReportTestResult(node *results.Node) {
	outcome, ok := node.Outcome()
	if !ok || outcome.Status != results.StatusFailed {
		return
	}
	fixtureName := ""
	if parent := node.Parent(); parent != nil {
		fixtureName = parent.Label() + "."
	}
	fmt.Fprintf(r.w, "❌ %s%s: %v\n", fixtureName, outcome.Test, outcome.Errors)
}

func (r *quietReporter) ReportFixtureResult(node *results.Node) {
	summary, ok := node.FixtureSummary()
	if !ok {
		return
	}
	for _, err := range summary.Errors() {
		fmt.Fprintf(r.w, "💥 %s: %v\n", summary.Fixture, err)
	}
}

func (r *quietReporter) ReportSuiteResult(root *results.Node) {
	asm, ok := root.AssemblySummary()
	if !ok {
		return
	}
	if asm.Healthy() {
		fmt.Fprintf(r.w, "✅ All %d tests passed\n", asm.Passed)
	} else {
		fmt.Fprintf(r.w, "❌ %d/%d tests failed, %d broken fixtures\n",
			asm.Failed, asm.Passed+asm.Failed+asm.NotRun, asm.Broken)
	}
}

// NewJSONReporter creates a reporter that writes the whole result tree as JSON at the end.
func NewJSONReporter(w io.Writer) Reporter {
	return &jsonReporter{w: w}
}

// jsonReporter implements JSON output for machine consumption
type jsonReporter struct {
	w io.Writer
}

func (r *jsonReporter) ReportStart(config Configuration, fixtures int) {}

func (r *jsonReporter) ReportFixtureStart(name string) {}

func (r *jsonReporter) ReportTestResult(node *results.Node) {}

func (r *jsonReporter) ReportFixtureResult(node *results.Node) {}

func (r *jsonReporter) ReportSuiteResult(root *results.Node) {
	jsonData, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		fmt.Fprintf(r.w, `{"error": "Failed to marshal results: %v"}`+"\n", err)
		return
	}
	fmt.Fprintln(r.w, string(jsonData))
}
