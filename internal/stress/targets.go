package stress

import (
	"context"
	"fmt"
	"sync"

	"fixturectl/internal/fixture"
	"fixturectl/pkg/logging"
)

// LoggerTarget writes one entry per iteration through the shared logger.
func LoggerTarget(subsystem string) Delegate {
	return func(ctx context.Context, i int) error {
		switch i % 3 {
		case 0:
			logging.Info(subsystem, "stress iteration %d", i)
		case 1:
			logging.Warn(subsystem, "stress iteration %d", i)
		default:
			logging.Error(subsystem, fmt.Errorf("synthetic failure %d", i), "stress iteration %d", i)
		}
		return nil
	}
}

// RegistryTarget registers a uniquely named fixture type per iteration and reads it back, checking
// that concurrent registrations are neither lost nor torn and that every one was announced to
// OnRegister listeners.
func RegistryTarget(reg *fixture.Registry, prefix string) Delegate {
	var announced sync.Map
	reg.OnRegister(func(t fixture.Type) {
		// listeners may read the registry they are notified by
		if _, ok := reg.Lookup(t.Name); ok {
			announced.Store(t.Name, struct{}{})
		}
	})

	return func(ctx context.Context, i int) error {
		name := fmt.Sprintf("%s%d", prefix, i)
		t := fixture.Type{
			Name:    name,
			Markers: []fixture.Marker{fixture.FixtureMarker("stress")},
			New:     func() (any, error) { return struct{}{}, nil },
		}
		if err := reg.Register(t); err != nil {
			return err
		}
		if _, ok := announced.Load(name); !ok {
			return fmt.Errorf("registration of %s was not announced", name)
		}
		got, ok := reg.Lookup(name)
		if !ok || got.Name != name {
			return fmt.Errorf("registered %s but lookup returned %q", name, got.Name)
		}
		if _, err := reg.Discover(name); err != nil {
			return err
		}
		_ = reg.Types()
		return nil
	}
}
