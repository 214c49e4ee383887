package structmap

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConverterFunc converts a raw source-mapping value into a target-typed
// value. It must fail with an error on any input shape it does not
// support; it must never return a partially converted value.
type ConverterFunc func(value any) (any, error)

// Registry maps target types and converter names to conversion functions.
//
// A registry is assembled once via NewRegistry and never mutated
// afterward, so a single instance is safe for concurrent use by any
// number of decoders. Type-keyed converters are consulted during dispatch
// for values whose target type has no more specific strategy; name-keyed
// converters back the per-field "converter=" tag option.
type Registry struct {
	byType map[reflect.Type]ConverterFunc
	byName map[string]ConverterFunc
}

// RegistryOption configures a Registry under construction.
type RegistryOption func(*Registry)

// WithTypeConverter registers fn as the converter for values targeting
// type t, replacing any built-in for that type.
func WithTypeConverter(t reflect.Type, fn ConverterFunc) RegistryOption {
	return func(r *Registry) {
		r.byType[t] = fn
	}
}

// WithNamedConverter registers fn under the given name for use with the
// per-field "converter=" tag option. A named converter has total
// authority over its field: it bypasses all built-in dispatch and its
// result is trusted as-is.
func WithNamedConverter(name string, fn ConverterFunc) RegistryOption {
	return func(r *Registry) {
		r.byName[name] = fn
	}
}

// NewRegistry builds a registry containing the built-in converters plus
// any additions. Options are applied in order, so a later option can
// replace a built-in type converter.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byType: map[reflect.Type]ConverterFunc{
			reflect.TypeOf(time.Time{}):       convertTime,
			reflect.TypeOf(time.Duration(0)):  convertDuration,
			reflect.TypeOf(decimal.Decimal{}): convertDecimal,
			reflect.TypeOf(uuid.UUID{}):       convertUUID,
		},
		byName: make(map[string]ConverterFunc),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// defaultRegistry backs decoders that were not given their own registry.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry of built-in converters shared by
// decoders constructed without WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func (r *Registry) forType(t reflect.Type) (ConverterFunc, bool) {
	fn, ok := r.byType[t]
	return fn, ok
}

func (r *Registry) named(name string) (ConverterFunc, bool) {
	fn, ok := r.byName[name]
	return fn, ok
}
