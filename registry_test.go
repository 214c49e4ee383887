package structmap

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Builtins(t *testing.T) {
	r := NewRegistry()

	for _, typ := range []reflect.Type{
		reflect.TypeOf(time.Time{}),
		reflect.TypeOf(time.Duration(0)),
	} {
		_, ok := r.forType(typ)
		assert.True(t, ok, "missing built-in converter for %s", typ)
	}

	_, ok := r.named("anything")
	assert.False(t, ok)
}

func TestNewRegistry_TypeOverride(t *testing.T) {
	fixed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	r := NewRegistry(WithTypeConverter(reflect.TypeOf(time.Time{}), func(value any) (any, error) {
		return fixed, nil
	}))

	type event struct {
		At time.Time `map:""`
	}

	var got event
	d := NewDecoder(WithRegistry(r))
	require.NoError(t, d.Decode(map[string]any{"at": "ignored"}, &got))
	assert.Equal(t, fixed, got.At)
}

func TestRegistry_Isolation(t *testing.T) {
	// Two registries must not share named converters: each decoder sees
	// only its own configuration.
	ra := NewRegistry(WithNamedConverter("upper", func(value any) (any, error) {
		return fmt.Sprintf("A:%v", value), nil
	}))
	rb := NewRegistry()

	type subject struct {
		Name string `map:",converter=upper"`
	}

	var got subject
	require.NoError(t, NewDecoder(WithRegistry(ra)).Decode(map[string]any{"name": "x"}, &got))
	assert.Equal(t, "A:x", got.Name)

	err := NewDecoder(WithRegistry(rb)).Decode(map[string]any{"name": "x"}, &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConverter)
}

func TestDefaultRegistry_Shared(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}
