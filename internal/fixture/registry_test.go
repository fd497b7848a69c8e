package fixture

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	var notified []string
	r.OnRegister(func(t Type) { notified = append(notified, t.Name) })

	require.NoError(t, r.Register(widgetType(Method("One", noop, TestMarker()))))
	other := widgetType()
	other.Name = "Gadget"
	require.NoError(t, r.Register(other))

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"Widget", "Gadget"}, notified)

	got, ok := r.Lookup("Gadget")
	require.True(t, ok)
	assert.Equal(t, "Gadget", got.Name)

	types := r.Types()
	require.Len(t, types, 2)
	assert.Equal(t, "Widget", types[0].Name)
	assert.Equal(t, "Gadget", types[1].Name)
}

func TestRegistry_CallbacksMayReadRegistry(t *testing.T) {
	r := NewRegistry()

	var seen []int
	r.OnRegister(func(t Type) {
		if _, ok := r.Lookup(t.Name); ok {
			seen = append(seen, len(r.Types()), r.Len())
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- r.Register(widgetType())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Register did not return while a callback read the registry")
	}
	assert.Equal(t, []int{1, 1}, seen)
}

func TestRegistry_RejectsDuplicatesAndUnnamed(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(widgetType()))

	err := r.Register(widgetType())
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	err = r.Register(Type{})
	assert.ErrorIs(t, err, ErrUnnamedType)
}

func TestRegistry_Discover(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(widgetType(Method("One", noop, TestMarker()))))
	require.NoError(t, r.Register(Type{Name: "Unmarked", New: Ctor(func() *widget { return &widget{} })}))

	d, err := r.Discover("Widget")
	require.NoError(t, err)
	assert.Len(t, d.Tests(), 1)

	_, err = r.Discover("Unmarked")
	assert.ErrorIs(t, err, ErrNotAFixture)

	_, err = r.Discover("Missing")
	var de *DiscoveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Missing", de.Type)
	assert.ErrorIs(t, err, ErrUnknownType)
}
