package fixture

// HookKind identifies one of the four lifecycle hooks.
type HookKind int

const (
	HookSetup HookKind = iota
	HookTeardown
	HookFixtureSetup
	HookFixtureTeardown
)

func (k HookKind) String() string {
	switch k {
	case HookSetup:
		return "Setup"
	case HookTeardown:
		return "Teardown"
	case HookFixtureSetup:
		return "FixtureSetup"
	case HookFixtureTeardown:
		return "FixtureTeardown"
	default:
		return "UnknownHook"
	}
}

var hookMarkers = map[MarkerKind]HookKind{
	MarkerSetup:           HookSetup,
	MarkerTeardown:        HookTeardown,
	MarkerFixtureSetup:    HookFixtureSetup,
	MarkerFixtureTeardown: HookFixtureTeardown,
}

// Hook is a discovered lifecycle callback.
type Hook struct {
	Kind HookKind
	Name string
	fn   func(instance any) error
}

// Invoke calls the hook on the given fixture instance.
func (h Hook) Invoke(instance any) error {
	return h.fn(instance)
}

// TestDescriptor describes one discovered test method.
type TestDescriptor struct {
	Name         string
	Description  string
	Ignored      bool
	IgnoreReason string
	body         func(instance any) error
}

// Invoke calls the test body on the given fixture instance.
func (t TestDescriptor) Invoke(instance any) error {
	return t.body(instance)
}

// Descriptor is the immutable result of scanning a fixture type.
type Descriptor struct {
	name         string
	description  string
	ignored      bool
	ignoreReason string
	newInstance  func() (any, error)
	hooks        map[HookKind]Hook
	tests        []TestDescriptor
}

// Name returns the fixture type name.
func (d *Descriptor) Name() string { return d.name }

// Description returns the text of the fixture marker.
func (d *Descriptor) Description() string { return d.description }

// Ignored reports whether the fixture carries an ignore marker.
func (d *Descriptor) Ignored() bool { return d.ignored }

// IgnoreReason returns the reason given on the ignore marker, if any.
func (d *Descriptor) IgnoreReason() string { return d.ignoreReason }

// Tests returns the test methods in execution order. The slice is a copy.
func (d *Descriptor) Tests() []TestDescriptor {
	out := make([]TestDescriptor, len(d.tests))
	copy(out, d.tests)
	return out
}

// Hook returns the hook of the given kind, if the fixture declares one.
func (d *Descriptor) Hook(kind HookKind) (Hook, bool) {
	h, ok := d.hooks[kind]
	return h, ok
}

// NewInstance constructs a fresh fixture instance.
func (d *Descriptor) NewInstance() (any, error) {
	return d.newInstance()
}

// CountRunnable returns the number of tests that are not ignored.
func (d *Descriptor) CountRunnable() int {
	if d.ignored {
		return 0
	}
	n := 0
	for _, t := range d.tests {
		if !t.Ignored {
			n++
		}
	}
	return n
}
