// Package selftest provides fixtures that exercise the framework on itself. Each fixture
// records what the pipeline did to it in a caller-owned Counters value, so tests and the
// `run` command can assert lifecycle behaviour without package globals.
package selftest

import (
	"errors"
	"fmt"
	"time"

	"fixturectl/internal/fixture"
)

// ErrScripted is the failure returned by any scripted hook or body.
var ErrScripted = errors.New("scripted failure")

// Counters records every lifecycle event observed by a self-test fixture.
type Counters struct {
	Constructed     int
	FixtureSetup    int
	FixtureTeardown int
	Setup           int
	Teardown        int
	Bodies          map[string]int
	// Trace lists events in the order they happened, e.g. "Body:MethodOne"
	Trace []string
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{Bodies: make(map[string]int)}
}

// BodyCalls returns the number of times the named test body ran.
func (c *Counters) BodyCalls(test string) int {
	return c.Bodies[test]
}

// TotalBodies returns the number of body invocations across all tests.
func (c *Counters) TotalBodies() int {
	n := 0
	for _, v := range c.Bodies {
		n += v
	}
	return n
}

func (c *Counters) record(event string) {
	c.Trace = append(c.Trace, event)
}

// Script describes how a scripted fixture behaves.
type Script struct {
	Description string
	// Tests in declaration order
	Tests []string
	// IgnoreFixture excludes the whole fixture when non-nil; the value is the reason
	IgnoreFixture *string
	// IgnoreTests maps test names to ignore reasons
	IgnoreTests map[string]string

	FailConstruct       bool
	FailFixtureSetup    bool
	FailFixtureTeardown bool
	// FailSetupCall fails the n-th per-test setup call, counting from 1
	FailSetupCall map[int]bool
	FailTeardown  map[string]bool
	FailBody      map[string]bool
	PanicBody     map[string]bool
	// SleepBody delays the named bodies, used to trip hook deadlines
	SleepBody map[string]time.Duration
}

type scripted struct {
	script   Script
	counters *Counters
	// current is the last test whose body started
	current string
}

func (s *scripted) fail(event string, fail bool) error {
	s.counters.record(event)
	if fail {
		return fmt.Errorf("%s: %w", event, ErrScripted)
	}
	return nil
}

// Scripted builds a fixture type named name that behaves according to script and reports
// into counters. Tests are bound as members in script order, followed by the four hooks.
func Scripted(name string, counters *Counters, script Script) fixture.Type {
	markers := []fixture.Marker{fixture.FixtureMarker(script.Description)}
	if script.IgnoreFixture != nil {
		markers = append(markers, fixture.IgnoreMarker(*script.IgnoreFixture))
	}

	t := fixture.Type{
		Name:    name,
		Markers: markers,
		New: fixture.CtorE(func() (*scripted, error) {
			counters.Constructed++
			if script.FailConstruct {
				return nil, fmt.Errorf("construct %s: %w", name, ErrScripted)
			}
			return &scripted{script: script, counters: counters}, nil
		}),
	}

	t.Members = append(t.Members,
		fixture.Method("OneTimeSetUp", func(s *scripted) error {
			s.counters.FixtureSetup++
			return s.fail("FixtureSetup", s.script.FailFixtureSetup)
		}, fixture.FixtureSetupMarker),
		fixture.Method("SetUp", func(s *scripted) error {
			s.counters.Setup++
			return s.fail("Setup", s.script.FailSetupCall[s.counters.Setup])
		}, fixture.SetupMarker),
	)

	for _, test := range script.Tests {
		test := test
		testMarkers := []fixture.Marker{fixture.TestMarker()}
		if reason, ok := script.IgnoreTests[test]; ok {
			testMarkers = append(testMarkers, fixture.IgnoreMarker(reason))
		}
		t.Members = append(t.Members, fixture.Method(test, func(s *scripted) error {
			s.current = test
			s.counters.Bodies[test]++
			if d := s.script.SleepBody[test]; d > 0 {
				time.Sleep(d)
			}
			if s.script.PanicBody[test] {
				s.counters.record("Body:" + test)
				panic(fmt.Sprintf("%s exploded", test))
			}
			return s.fail("Body:"+test, s.script.FailBody[test])
		}, testMarkers...))
	}

	t.Members = append(t.Members,
		fixture.Method("TearDown", func(s *scripted) error {
			s.counters.Teardown++
			return s.fail("Teardown:"+s.current, s.script.FailTeardown[s.current])
		}, fixture.TeardownMarker),
		fixture.Method("OneTimeTearDown", func(s *scripted) error {
			s.counters.FixtureTeardown++
			return s.fail("FixtureTeardown", s.script.FailFixtureTeardown)
		}, fixture.FixtureTeardownMarker),
		// unmarked helper; never invoked by the pipeline
		fixture.Method("reset", func(s *scripted) error {
			s.current = ""
			return nil
		}),
	)
	return t
}
