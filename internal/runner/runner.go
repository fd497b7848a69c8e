package runner

import (
	"context"
	"path"

	"github.com/google/uuid"

	"fixturectl/internal/fixture"
	"fixturectl/internal/pipeline"
	"fixturectl/internal/results"
	"fixturectl/pkg/logging"
)

// Runner executes batches of fixtures into a single result tree. Every call to Run appends to the
// same tree, so re-running a fixture keeps the earlier subtree as history.
type Runner struct {
	config   Configuration
	reporter Reporter
	builder  *results.Builder
}

// New creates a runner. A nil reporter discards all progress.
func New(config Configuration, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NewQuietReporter(nil)
	}
	return &Runner{
		config:   config,
		reporter: reporter,
		builder:  results.NewBuilder(config.Assembly),
	}
}

// Root returns the assembly node of the result tree.
func (r *Runner) Root() *results.Node {
	return r.builder.Root()
}

// Run discovers, initializes and runs each fixture type in order. A fixture that fails discovery or
// construction is recorded in the tree and never stops the rest of the batch. The returned error is
// only non-nil when ctx is cancelled between fixtures.
func (r *Runner) Run(ctx context.Context, types []fixture.Type) (*results.Node, error) {
	selected := r.FilterTypes(types)
	r.reporter.ReportStart(r.config, len(selected))
	logging.Info("Runner", "Running %d of %d fixtures", len(selected), len(types))

	for _, t := range selected {
		if err := ctx.Err(); err != nil {
			logging.Warn("Runner", "Batch cancelled before %s: %v", t.Name, err)
			r.reporter.ReportSuiteResult(r.builder.Root())
			return r.builder.Root(), err
		}
		node := r.runFixture(ctx, t)
		for _, c := range node.Children() {
			r.reporter.ReportTestResult(c)
		}
		r.reporter.ReportFixtureResult(node)
	}

	r.reporter.ReportSuiteResult(r.builder.Root())
	return r.builder.Root(), nil
}

func (r *Runner) runFixture(ctx context.Context, t fixture.Type) *results.Node {
	r.reporter.ReportFixtureStart(t.Name)

	d, err := fixture.Scan(t, fixture.WithOrder(r.config.Order))
	if err != nil {
		logging.Warn("Runner", "Discovery of %s failed: %v", t.Name, err)
		node := r.builder.AddFixture(&results.FixtureSummary{
			Fixture:        t.Name,
			RunID:          uuid.NewString(),
			DiscoveryError: err,
		})
		r.builder.CompleteFixture(node)
		return node
	}

	p := pipeline.New(d, r.builder, pipeline.WithHookTimeout(r.config.HookTimeout))
	if err := p.Initialize(false); err != nil {
		return p.RecordAborted(err)
	}
	node, err := p.Run(ctx)
	if err != nil {
		// unreachable after a successful Initialize
		logging.Error("Runner", err, "Pipeline for %s refused to run", t.Name)
		return p.RecordAborted(err)
	}
	return node
}

// FilterTypes returns the types whose names match the configured fixture filter.
func (r *Runner) FilterTypes(types []fixture.Type) []fixture.Type {
	if len(r.config.Fixtures) == 0 {
		return types
	}
	var out []fixture.Type
	for _, t := range types {
		if matchesAny(t.Name, r.config.Fixtures) {
			out = append(out, t)
		}
	}
	return out
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if p == name {
			return true
		}
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
