package fixture

import (
	"fmt"
	"sort"
)

// Order selects how the scanner orders test methods.
type Order int

const (
	// OrderDeclared keeps the order of Type.Members. This is the default.
	OrderDeclared Order = iota
	// OrderLexical sorts tests by name.
	OrderLexical
)

// ParseOrder converts a config value into an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "declared":
		return OrderDeclared, nil
	case "lexical":
		return OrderLexical, nil
	default:
		return OrderDeclared, fmt.Errorf("unknown test order %q, must be 'declared' or 'lexical'", s)
	}
}

func (o Order) String() string {
	if o == OrderLexical {
		return "lexical"
	}
	return "declared"
}

type scanOptions struct {
	order Order
}

// ScanOption configures Scan.
type ScanOption func(*scanOptions)

// WithOrder sets the test ordering policy.
func WithOrder(o Order) ScanOption {
	return func(so *scanOptions) {
		so.order = o
	}
}

// Scan inspects a fixture type and builds its Descriptor. It has no side effects.
func Scan(t Type, opts ...ScanOption) (*Descriptor, error) {
	so := scanOptions{order: OrderDeclared}
	for _, opt := range opts {
		opt(&so)
	}

	if t.Name == "" {
		return nil, &DiscoveryError{Err: ErrUnnamedType}
	}

	fixtureMarker, ok := findMarker(t.Markers, MarkerFixture)
	if !ok {
		return nil, &DiscoveryError{Type: t.Name, Err: ErrNotAFixture}
	}
	if t.New == nil {
		return nil, &DiscoveryError{Type: t.Name, Err: ErrNoConstructor}
	}

	d := &Descriptor{
		name:        t.Name,
		description: fixtureMarker.Text,
		newInstance: t.New,
		hooks:       make(map[HookKind]Hook),
	}
	if ignore, ok := findMarker(t.Markers, MarkerIgnore); ok {
		d.ignored = true
		d.ignoreReason = ignore.Text
	}

	seen := make(map[string]bool)
	for _, m := range t.Members {
		role, err := memberRole(m)
		if err != nil {
			return nil, &DiscoveryError{Type: t.Name, Member: m.Name, Err: err}
		}
		if role == 0 {
			continue
		}
		if m.Func == nil {
			return nil, &DiscoveryError{Type: t.Name, Member: m.Name, Err: ErrMissingBody}
		}

		if role == MarkerTest {
			if seen[m.Name] {
				return nil, &DiscoveryError{Type: t.Name, Member: m.Name, Err: ErrDuplicateTest}
			}
			seen[m.Name] = true

			testMarker, _ := findMarker(m.Markers, MarkerTest)
			td := TestDescriptor{
				Name:        m.Name,
				Description: testMarker.Text,
				body:        m.Func,
			}
			if ignore, ok := findMarker(m.Markers, MarkerIgnore); ok {
				td.Ignored = true
				td.IgnoreReason = ignore.Text
			}
			d.tests = append(d.tests, td)
			continue
		}

		kind := hookMarkers[role]
		if _, dup := d.hooks[kind]; dup {
			return nil, &DiscoveryError{Type: t.Name, Member: m.Name, Err: fmt.Errorf("%w: %s", ErrDuplicateHook, kind)}
		}
		d.hooks[kind] = Hook{Kind: kind, Name: m.Name, fn: m.Func}
	}

	if so.order == OrderLexical {
		sort.SliceStable(d.tests, func(i, j int) bool {
			return d.tests[i].Name < d.tests[j].Name
		})
	}

	return d, nil
}

// memberRole returns the single role marker of a member, or 0 for unmarked helpers.
// An ignore marker is only meaningful next to a test marker.
func memberRole(m Member) (MarkerKind, error) {
	var role MarkerKind
	ignored := false
	for _, marker := range m.Markers {
		switch marker.Kind {
		case MarkerIgnore:
			ignored = true
		case MarkerTest, MarkerSetup, MarkerTeardown, MarkerFixtureSetup, MarkerFixtureTeardown:
			if role != 0 && role != marker.Kind {
				return 0, fmt.Errorf("%w: %s and %s", ErrConflictingMarkers, role, marker.Kind)
			}
			role = marker.Kind
		case MarkerFixture:
			return 0, fmt.Errorf("%w: fixture marker on a member", ErrConflictingMarkers)
		}
	}
	if ignored && role != MarkerTest {
		return 0, fmt.Errorf("%w: ignore marker without test marker", ErrConflictingMarkers)
	}
	return role, nil
}
