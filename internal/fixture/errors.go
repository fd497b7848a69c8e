package fixture

import (
	"errors"
	"fmt"
)

var (
	ErrNotAFixture        = errors.New("type carries no fixture marker")
	ErrUnnamedType        = errors.New("fixture type has no name")
	ErrNoConstructor      = errors.New("fixture type has no no-argument constructor")
	ErrDuplicateHook      = errors.New("hook kind declared more than once")
	ErrDuplicateTest      = errors.New("test name declared more than once")
	ErrMissingBody        = errors.New("marked member has no body")
	ErrConflictingMarkers = errors.New("member carries more than one role marker")
	ErrUnknownType        = errors.New("fixture type not registered")
	ErrAlreadyRegistered  = errors.New("fixture type already registered")
	ErrInstanceType       = errors.New("fixture instance has unexpected type")
)

// DiscoveryError reports a malformed or unmarked fixture type. It is fatal to that
// fixture's discovery only.
type DiscoveryError struct {
	Type   string
	Member string
	Err    error
}

func (e *DiscoveryError) Error() string {
	if e.Member != "" {
		return fmt.Sprintf("discovering fixture %q: member %q: %v", e.Type, e.Member, e.Err)
	}
	return fmt.Sprintf("discovering fixture %q: %v", e.Type, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
