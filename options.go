package structmap

import (
	"log/slog"
)

// Option configures a Decoder.
type Option func(*Decoder)

// WithRegistry sets the converter registry consulted by the decoder.
// If not provided, DefaultRegistry() is used. The registry must not be
// mutated after the decoder starts decoding.
func WithRegistry(r *Registry) Option {
	return func(d *Decoder) {
		d.registry = r
	}
}

// WithLogger sets a custom logger for the decoder. Field resolution and
// conversion are traced at debug level. If not provided, logging is
// discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithMaxDepth bounds the recursion depth of nested record and list-item
// conversion. Self-referential struct schemas fed deeply nested mappings
// fail with ErrMaxDepth instead of exhausting the stack. The default is
// DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(d *Decoder) {
		d.maxDepth = depth
	}
}

// WithKeyCase sets the alternate-casing transform used as the last key
// lookup step for fields without an explicit source key. The transform
// receives the field's derived snake_case name. The default produces
// camelCase.
func WithKeyCase(transform func(string) string) Option {
	return func(d *Decoder) {
		d.keyCase = transform
	}
}
