package selftest

import (
	"fmt"

	"fixturectl/internal/fixture"
)

// Names of the built-in self-test fixtures.
const (
	LifecycleFixture     = "SelfTest.Lifecycle"
	FaultyBodyFixture    = "SelfTest.FaultyBody"
	FaultySetupFixture   = "SelfTest.FaultySetup"
	IgnoredFixture       = "SelfTest.Ignored"
	PartialIgnoreFixture = "SelfTest.PartialIgnore"
)

// Lifecycle has two passing tests and all four hooks.
func Lifecycle(c *Counters) fixture.Type {
	return Scripted(LifecycleFixture, c, Script{
		Description: "hooks run once per fixture and once per test",
		Tests:       []string{"MethodOne", "MethodTwo"},
	})
}

// FaultyBody has a failing, a passing and a panicking test.
func FaultyBody(c *Counters) fixture.Type {
	return Scripted(FaultyBodyFixture, c, Script{
		Description: "a failing body does not affect its neighbours",
		Tests:       []string{"Fails", "Passes", "Panics"},
		FailBody:    map[string]bool{"Fails": true},
		PanicBody:   map[string]bool{"Panics": true},
	})
}

// FaultySetup fails its fixture setup so no body runs.
func FaultySetup(c *Counters) fixture.Type {
	return Scripted(FaultySetupFixture, c, Script{
		Description:      "a failing fixture setup skips every body",
		Tests:            []string{"Never", "Ever"},
		FailFixtureSetup: true,
	})
}

// Ignored is excluded as a whole.
func Ignored(c *Counters) fixture.Type {
	reason := "kept as an example of an ignored fixture"
	return Scripted(IgnoredFixture, c, Script{
		Description:   "an ignored fixture runs no hooks",
		Tests:         []string{"Skipped"},
		IgnoreFixture: &reason,
	})
}

// PartialIgnore ignores one of its two tests.
func PartialIgnore(c *Counters) fixture.Type {
	return Scripted(PartialIgnoreFixture, c, Script{
		Description: "an ignored test consumes no per-test hooks",
		Tests:       []string{"Runs", "Sits"},
		IgnoreTests: map[string]string{"Sits": "not ready"},
	})
}

// Builtins returns every built-in fixture, each bound to its own counters.
func Builtins() ([]fixture.Type, map[string]*Counters) {
	builders := []func(*Counters) fixture.Type{Lifecycle, FaultyBody, FaultySetup, Ignored, PartialIgnore}

	types := make([]fixture.Type, 0, len(builders))
	counters := make(map[string]*Counters, len(builders))
	for _, build := range builders {
		c := NewCounters()
		t := build(c)
		types = append(types, t)
		counters[t.Name] = c
	}
	return types, counters
}

// Register adds the built-in fixtures to reg and returns their counters keyed by fixture name.
func Register(reg *fixture.Registry) (map[string]*Counters, error) {
	types, counters := Builtins()
	for _, t := range types {
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("failed to register self-test fixture %s: %w", t.Name, err)
		}
	}
	return counters, nil
}
