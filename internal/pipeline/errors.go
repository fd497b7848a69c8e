package pipeline

import (
	"errors"
	"fmt"
	"time"

	"fixturectl/internal/fixture"
)

var (
	// ErrInvalidState is returned when an operation is called in the wrong lifecycle state
	ErrInvalidState = errors.New("invalid pipeline state")
	// ErrHookTimeout is recorded when a hook or body outlives the configured deadline
	ErrHookTimeout = errors.New("hook deadline exceeded")
	// ErrInstanceBusy is recorded for work skipped while a timed-out invocation still holds the instance
	ErrInstanceBusy = errors.New("fixture instance still held by a timed-out invocation")
)

// InstantiationError reports that the fixture constructor failed or panicked.
type InstantiationError struct {
	Fixture string
	Err     error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate fixture %s: %v", e.Fixture, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// PanicError is recorded when a hook, body or constructor panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// HookError attributes a failure to the lifecycle hook that raised it.
type HookError struct {
	Kind   fixture.HookKind
	Member string
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s hook %s failed: %v", e.Kind, e.Member, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

func timeoutError(member string, d time.Duration) error {
	return fmt.Errorf("%w: %s did not return within %s", ErrHookTimeout, member, d)
}
