package fixture

import (
	"fmt"
	"strings"
)

// MarkerKind identifies the role a marker assigns to a fixture type or member.
type MarkerKind int

const (
	// MarkerFixture marks a type as a test fixture
	MarkerFixture MarkerKind = iota + 1
	// MarkerTest marks a member as a test method
	MarkerTest
	// MarkerSetup marks the per-test setup hook
	MarkerSetup
	// MarkerTeardown marks the per-test teardown hook
	MarkerTeardown
	// MarkerFixtureSetup marks the once-per-run fixture setup hook
	MarkerFixtureSetup
	// MarkerFixtureTeardown marks the once-per-run fixture teardown hook
	MarkerFixtureTeardown
	// MarkerIgnore excludes a fixture or a test from execution
	MarkerIgnore
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerFixture:
		return "Fixture"
	case MarkerTest:
		return "Test"
	case MarkerSetup:
		return "Setup"
	case MarkerTeardown:
		return "Teardown"
	case MarkerFixtureSetup:
		return "FixtureSetup"
	case MarkerFixtureTeardown:
		return "FixtureTeardown"
	case MarkerIgnore:
		return "Ignore"
	default:
		return fmt.Sprintf("MarkerKind(%d)", int(k))
	}
}

// Marker is a declarative annotation attached to a fixture type or one of its members.
// Text carries the description (fixture/test markers) or the reason (ignore marker).
type Marker struct {
	Kind MarkerKind
	Text string
}

// FixtureMarker marks a type as a fixture with an optional description.
func FixtureMarker(description ...string) Marker {
	return Marker{Kind: MarkerFixture, Text: strings.Join(description, " ")}
}

// TestMarker marks a member as a test method with an optional description.
func TestMarker(description ...string) Marker {
	return Marker{Kind: MarkerTest, Text: strings.Join(description, " ")}
}

// IgnoreMarker excludes the fixture or test it is attached to, with an optional reason.
func IgnoreMarker(reason ...string) Marker {
	return Marker{Kind: MarkerIgnore, Text: strings.Join(reason, " ")}
}

var (
	SetupMarker           = Marker{Kind: MarkerSetup}
	TeardownMarker        = Marker{Kind: MarkerTeardown}
	FixtureSetupMarker    = Marker{Kind: MarkerFixtureSetup}
	FixtureTeardownMarker = Marker{Kind: MarkerFixtureTeardown}
)

// Member is one callable entry of a fixture type: a test method or a hook.
// Unmarked members are helpers and are never invoked by the pipeline.
type Member struct {
	Name    string
	Markers []Marker
	Func    func(instance any) error
}

// Type is the registration-table entry describing a fixture type.
type Type struct {
	// Name is the unique identifier of the fixture type
	Name string
	// Markers attached to the type itself (FixtureMarker, IgnoreMarker)
	Markers []Marker
	// New is the no-argument constructor
	New func() (any, error)
	// Members in declaration order
	Members []Member
}

// Ctor adapts a typed constructor to the untyped registration table.
func Ctor[T any](fn func() *T) func() (any, error) {
	return func() (any, error) {
		return fn(), nil
	}
}

// CtorE adapts a typed constructor that can fail.
func CtorE[T any](fn func() (*T, error)) func() (any, error) {
	return func() (any, error) {
		inst, err := fn()
		if err != nil {
			return nil, err
		}
		return inst, nil
	}
}

// Method binds a typed method to a member entry.
func Method[T any](name string, fn func(*T) error, markers ...Marker) Member {
	return Member{
		Name:    name,
		Markers: markers,
		Func: func(instance any) error {
			typed, ok := instance.(*T)
			if !ok {
				return fmt.Errorf("%w: %s expects %T, got %T", ErrInstanceType, name, typed, instance)
			}
			return fn(typed)
		},
	}
}

func findMarker(markers []Marker, kind MarkerKind) (Marker, bool) {
	for _, m := range markers {
		if m.Kind == kind {
			return m, true
		}
	}
	return Marker{}, false
}
