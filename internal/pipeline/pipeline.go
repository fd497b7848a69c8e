// Package pipeline drives one fixture through its lifecycle and records the outcome of every
// test into a result tree.
//
//	p := pipeline.New(descriptor, builder, pipeline.WithHookTimeout(5*time.Second))
//	if err := p.Initialize(false); err != nil {
//		p.RecordAborted(err)
//	} else {
//		node, _ := p.Run(ctx)
//	}
//
// A pipeline is single-threaded. Fixture hooks run exactly once per Run, each runnable test
// gets its own Setup/Teardown pair, and a failure in one test never reaches another.
package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"fixturectl/internal/fixture"
	"fixturectl/internal/results"
	"fixturectl/pkg/logging"
)

// State is the lifecycle state of a pipeline.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitialized:
		return "Initialized"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a pipeline.
type Option func(*Pipeline)

// WithHookTimeout bounds every hook and body invocation. Zero disables the deadline.
func WithHookTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.hookTimeout = d
	}
}

// Pipeline runs the tests of one fixture descriptor.
type Pipeline struct {
	descriptor  *fixture.Descriptor
	builder     *results.Builder
	hookTimeout time.Duration

	state    State
	instance any
	// stray is the result of an invocation abandoned at its deadline; it still owns instance
	stray <-chan error
}

// New creates a pipeline for descriptor that appends its results to builder.
func New(descriptor *fixture.Descriptor, builder *results.Builder, opts ...Option) *Pipeline {
	p := &Pipeline{
		descriptor: descriptor,
		builder:    builder,
		state:      StateUninitialized,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return p.state
}

// Descriptor returns the fixture descriptor the pipeline executes.
func (p *Pipeline) Descriptor() *fixture.Descriptor {
	return p.descriptor
}

// Instance returns the fixture instance, or nil before a successful Initialize.
func (p *Pipeline) Instance() any {
	return p.instance
}

// Initialize prepares the fixture instance. With reuseExistingInstance set an instance kept from
// a previous run is used again; otherwise a fresh one is constructed. Ignored fixtures are never
// constructed.
func (p *Pipeline) Initialize(reuseExistingInstance bool) error {
	if p.state != StateUninitialized && p.state != StateCompleted {
		return fmt.Errorf("%w: cannot initialize from %s", ErrInvalidState, p.state)
	}

	if p.descriptor.Ignored() {
		p.state = StateInitialized
		return nil
	}

	if reuseExistingInstance && p.instance != nil && p.stray == nil {
		logging.Debug("Pipeline", "Reusing instance of %s", p.descriptor.Name())
		p.state = StateInitialized
		return nil
	}

	instance, err := p.construct()
	if err != nil {
		p.instance = nil
		p.state = StateUninitialized
		logging.Warn("Pipeline", "Could not instantiate %s: %v", p.descriptor.Name(), err)
		return &InstantiationError{Fixture: p.descriptor.Name(), Err: err}
	}

	p.instance = instance
	p.stray = nil
	p.state = StateInitialized
	return nil
}

func (p *Pipeline) construct() (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return p.descriptor.NewInstance()
}

// RecordAborted appends a fixture subtree for a fixture that could not be initialized: every test
// is recorded NotRun and err is attached at the fixture level.
func (p *Pipeline) RecordAborted(err error) *results.Node {
	summary := p.newSummary()
	summary.InstantiationError = err
	node := p.builder.AddFixture(summary)
	for _, t := range p.descriptor.Tests() {
		p.addOutcome(node, p.notRun(t))
	}
	p.builder.CompleteFixture(node)
	return node
}

// Run executes the fixture and returns its subtree. Test failures are recorded in the tree, not
// returned; the error result only reports misuse.
func (p *Pipeline) Run(ctx context.Context) (*results.Node, error) {
	if p.state != StateInitialized {
		return nil, fmt.Errorf("%w: cannot run from %s", ErrInvalidState, p.state)
	}
	p.state = StateRunning

	d := p.descriptor
	summary := p.newSummary()
	node := p.builder.AddFixture(summary)
	logging.Debug("Pipeline", "Running %s (run %s)", d.Name(), summary.RunID)

	tests := d.Tests()
	switch {
	case d.Ignored():
		for _, t := range tests {
			p.addOutcome(node, p.notRun(t))
		}

	default:
		// once started, fixture hooks are bounded by the deadline only
		hookCtx := context.WithoutCancel(ctx)

		if err := p.runHook(hookCtx, fixture.HookFixtureSetup); err != nil {
			summary.SetupErrors = append(summary.SetupErrors, err)
			logging.Warn("Pipeline", "Fixture setup of %s failed, skipping %d tests: %v", d.Name(), len(tests), err)
			for _, t := range tests {
				p.addOutcome(node, p.notRun(t))
			}
		} else {
			for _, t := range tests {
				switch {
				case t.Ignored:
					p.addOutcome(node, p.notRun(t))
				case p.stray != nil:
					outcome := p.notRun(t)
					outcome.Errors = append(outcome.Errors, ErrInstanceBusy)
					p.addOutcome(node, outcome)
				default:
					p.addOutcome(node, p.runTest(ctx, t))
				}
			}
		}

		if err := p.awaitStray(); err != nil {
			summary.TeardownErrors = append(summary.TeardownErrors, err)
			logging.Warn("Pipeline", "Fixture teardown of %s skipped: %v", d.Name(), err)
		} else if err := p.runHook(hookCtx, fixture.HookFixtureTeardown); err != nil {
			summary.TeardownErrors = append(summary.TeardownErrors, err)
			logging.Warn("Pipeline", "Fixture teardown of %s failed: %v", d.Name(), err)
		}
	}

	p.builder.CompleteFixture(node)
	p.state = StateCompleted
	logging.Info("Pipeline", "Completed %s: %d passed, %d failed, %d not run", d.Name(), summary.Passed, summary.Failed, summary.NotRun)
	return node, nil
}

func (p *Pipeline) newSummary() *results.FixtureSummary {
	return &results.FixtureSummary{
		Fixture:      p.descriptor.Name(),
		Description:  p.descriptor.Description(),
		RunID:        uuid.NewString(),
		Ignored:      p.descriptor.Ignored(),
		IgnoreReason: p.descriptor.IgnoreReason(),
	}
}

func (p *Pipeline) addOutcome(node *results.Node, outcome *results.Outcome) {
	// node is always a fixture node of this builder
	if _, err := p.builder.AddTest(node, outcome); err != nil {
		logging.Error("Pipeline", err, "Dropped outcome of %s", outcome.Test)
	}
}

func (p *Pipeline) notRun(t fixture.TestDescriptor) *results.Outcome {
	outcome := &results.Outcome{
		Test:        t.Name,
		Description: t.Description,
		Status:      results.StatusNotRun,
	}
	switch {
	case t.Ignored:
		outcome.Ignored = true
		outcome.IgnoreReason = t.IgnoreReason
	case p.descriptor.Ignored():
		outcome.Ignored = true
		outcome.IgnoreReason = p.descriptor.IgnoreReason()
	}
	return outcome
}

func (p *Pipeline) runTest(ctx context.Context, t fixture.TestDescriptor) *results.Outcome {
	started := p.builder.Now()
	outcome := &results.Outcome{
		Test:        t.Name,
		Description: t.Description,
		StartedAt:   &started,
	}
	defer func() {
		completed := p.builder.Now()
		outcome.CompletedAt = &completed
	}()

	if err := ctx.Err(); err != nil {
		outcome.Status = results.StatusNotRun
		outcome.Errors = append(outcome.Errors, err)
		return outcome
	}

	if err := p.runHook(ctx, fixture.HookSetup); err != nil {
		outcome.Status = results.StatusFailed
		outcome.Errors = append(outcome.Errors, err)
		return outcome
	}

	outcome.Status = results.StatusPassed
	if err := p.invoke(ctx, t.Name, t.Invoke); err != nil {
		outcome.Status = results.StatusFailed
		outcome.Errors = append(outcome.Errors, err)
	}

	if p.stray != nil {
		logging.Warn("Pipeline", "Skipping teardown of %s.%s, its body is still running", p.descriptor.Name(), t.Name)
	} else if err := p.runHook(ctx, fixture.HookTeardown); err != nil {
		outcome.Status = results.StatusFailed
		outcome.Errors = append(outcome.Errors, err)
	}

	if outcome.Status == results.StatusFailed {
		logging.Debug("Pipeline", "%s.%s failed: %v", p.descriptor.Name(), t.Name, outcome.Errors[0])
	}
	return outcome
}

func (p *Pipeline) runHook(ctx context.Context, kind fixture.HookKind) error {
	hook, ok := p.descriptor.Hook(kind)
	if !ok {
		return nil
	}
	if err := p.invoke(ctx, hook.Name, hook.Invoke); err != nil {
		return &HookError{Kind: kind, Member: hook.Name, Err: err}
	}
	return nil
}

// invoke calls fn on the fixture instance, inline when no deadline is set and on a separate
// goroutine otherwise. A goroutine that misses the deadline is kept in p.stray and nothing else
// touches the instance until it returns.
func (p *Pipeline) invoke(ctx context.Context, member string, fn func(any) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.hookTimeout <= 0 {
		return safeCall(fn, p.instance)
	}

	deadline, cancel := context.WithTimeout(ctx, p.hookTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- safeCall(fn, p.instance)
	}()

	select {
	case err := <-done:
		return err
	case <-deadline.Done():
		p.stray = done
		if err := ctx.Err(); err != nil {
			return err
		}
		logging.Warn("Pipeline", "%s.%s exceeded %s", p.descriptor.Name(), member, p.hookTimeout)
		return timeoutError(member, p.hookTimeout)
	}
}

// awaitStray gives an abandoned invocation one more deadline to return.
func (p *Pipeline) awaitStray() error {
	if p.stray == nil {
		return nil
	}

	timer := time.NewTimer(p.hookTimeout)
	defer timer.Stop()

	select {
	case err := <-p.stray:
		p.stray = nil
		if err != nil {
			logging.Debug("Pipeline", "Abandoned invocation on %s returned: %v", p.descriptor.Name(), err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("%w: %s", ErrInstanceBusy, p.descriptor.Name())
	}
}

func safeCall(fn func(any) error, instance any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn(instance)
}
