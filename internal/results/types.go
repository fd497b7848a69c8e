package results

import (
	"errors"
	"fmt"
	"time"
)

// Status is the recorded outcome of one test method.
type Status string

const (
	// StatusNotRun indicates the body never executed (ignored, or fixture setup failed)
	StatusNotRun Status = "NOT_RUN"
	// StatusPassed indicates setup, body and teardown all returned normally
	StatusPassed Status = "PASSED"
	// StatusFailed indicates the setup, body or teardown failed
	StatusFailed Status = "FAILED"
)

// Kind is the level of a node in the result tree.
type Kind string

const (
	KindAssembly Kind = "assembly"
	KindFixture  Kind = "fixture"
	KindTest     Kind = "test"
)

// Outcome is the result of executing one test method.
type Outcome struct {
	Test         string     `json:"test"`
	Description  string     `json:"description,omitempty"`
	Ignored      bool       `json:"ignored,omitempty"`
	IgnoreReason string     `json:"ignore_reason,omitempty"`
	Status       Status     `json:"status"`
	Errors       []error    `json:"-"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Duration returns the wall time between start and completion, or zero.
func (o *Outcome) Duration() time.Duration {
	if o.StartedAt == nil || o.CompletedAt == nil {
		return 0
	}
	return o.CompletedAt.Sub(*o.StartedAt)
}

// FixtureSummary is the payload of a fixture node.
type FixtureSummary struct {
	Fixture            string    `json:"fixture"`
	Description        string    `json:"description,omitempty"`
	RunID              string    `json:"run_id"`
	Ignored            bool      `json:"ignored"`
	IgnoreReason       string    `json:"ignore_reason,omitempty"`
	DiscoveryError     error     `json:"-"`
	InstantiationError error     `json:"-"`
	SetupErrors        []error   `json:"-"`
	TeardownErrors     []error   `json:"-"`
	Passed             int       `json:"passed"`
	Failed             int       `json:"failed"`
	NotRun             int       `json:"not_run"`
	StartedAt          time.Time `json:"started_at"`
	CompletedAt        time.Time `json:"completed_at"`
}

// Errors returns every fixture-level error in the order they were recorded.
func (s *FixtureSummary) Errors() []error {
	var errs []error
	if s.DiscoveryError != nil {
		errs = append(errs, s.DiscoveryError)
	}
	if s.InstantiationError != nil {
		errs = append(errs, s.InstantiationError)
	}
	errs = append(errs, s.SetupErrors...)
	errs = append(errs, s.TeardownErrors...)
	return errs
}

// Healthy reports whether the fixture has no fixture-level errors and no failed tests.
func (s *FixtureSummary) Healthy() bool {
	return s.Failed == 0 && len(s.Errors()) == 0
}

// AssemblySummary is the payload of the root node.
type AssemblySummary struct {
	Name        string    `json:"name"`
	Fixtures    int       `json:"fixtures"`
	Broken      int       `json:"broken_fixtures"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	NotRun      int       `json:"not_run"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Healthy reports whether no test failed and no fixture broke.
func (s *AssemblySummary) Healthy() bool {
	return s.Failed == 0 && s.Broken == 0
}

// ErrorType names the dynamic type of an error, unwrapping fmt.Errorf wrappers once so that
// wrapped sentinels still show their origin.
func ErrorType(err error) string {
	if err == nil {
		return ""
	}
	if inner := errors.Unwrap(err); inner != nil {
		return fmt.Sprintf("%T(%T)", err, inner)
	}
	return fmt.Sprintf("%T", err)
}
