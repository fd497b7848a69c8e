package fixture

import (
	"fmt"
	"sync"

	"fixturectl/pkg/logging"
)

// Registry is the registration table of fixture types, keyed by type name.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
	order []string

	onRegister []func(t Type)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]Type),
	}
}

// Default is the process-wide registry populated from init functions.
var Default = NewRegistry()

// Register adds a fixture type to the Default registry.
func Register(t Type) error {
	return Default.Register(t)
}

// MustRegister is Register for init functions; it panics on a duplicate name.
func MustRegister(t Type) {
	if err := Default.Register(t); err != nil {
		panic(err)
	}
}

// Register adds a fixture type. Types are validated lazily by Discover so that a malformed
// type is reported during discovery rather than at registration time.
func (r *Registry) Register(t Type) error {
	r.mu.Lock()
	if t.Name == "" {
		r.mu.Unlock()
		return ErrUnnamedType
	}
	if _, exists := r.types[t.Name]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, t.Name)
	}

	r.types[t.Name] = t
	r.order = append(r.order, t.Name)
	callbacks := append([]func(t Type){}, r.onRegister...)
	r.mu.Unlock()

	logging.Debug("Registry", "Registered fixture type %s (%d members)", t.Name, len(t.Members))

	for _, callback := range callbacks {
		callback(t)
	}
	return nil
}

// OnRegister adds a callback invoked for every subsequent registration. Callbacks run outside
// the registry lock and may call back into the registry.
func (r *Registry) OnRegister(callback func(t Type)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRegister = append(r.onRegister, callback)
}

// Lookup returns a registered type by name.
func (r *Registry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Types returns all registered types in registration order.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Type, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.types[name])
	}
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Discover scans the named type.
func (r *Registry) Discover(name string, opts ...ScanOption) (*Descriptor, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, &DiscoveryError{Type: name, Err: ErrUnknownType}
	}
	d, err := Scan(t, opts...)
	if err != nil {
		logging.Warn("Scanner", "Discovery failed for %s: %v", name, err)
		return nil, err
	}
	return d, nil
}
