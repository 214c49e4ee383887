// Package structmap binds loosely-typed key-value trees, as produced by
// parsing JSON or YAML, onto strongly-typed Go structs declared with
// field-level map tags.
//
// Declare a struct once and populate instances from untrusted external
// data, with field renaming between casing conventions, per-field custom
// converters, default values, and optional-field semantics.
//
// # Core Concepts
//
// The package is organized around a few pieces:
//
//   - Decoder: the entry point; binds a map[string]any onto a tagged struct
//   - Field tags: per-field metadata selecting the source key, converter
//     and default behavior
//   - Registry: immutable set of converters keyed by target type and by name
//   - enum subpackage: registry of closed enumeration types
//
// # Declaring Fields
//
// Only fields carrying the map tag are populated; untagged fields keep
// whatever value the caller set before decoding:
//
//	type User struct {
//		FullName  string    `map:""`                // "full_name" or "fullName"
//		Mail      string    `map:"email_address"`   // exact key, no derivation
//		Age       int       `map:",default=0"`
//		Nickname  *string   `map:""`                // nil when source value is null
//		CreatedAt time.Time `map:""`                // built-in datetime converter
//		internal  string                            // never touched
//	}
//
// Without an explicit key, the field's snake_case name is tried first and
// its camelCase form second, so the same struct decodes JSON written in
// either convention.
//
// # Decoding
//
//	var u User
//	if err := structmap.Decode(source, &u); err != nil {
//		var de *structmap.DecodeError
//		if errors.As(err, &de) {
//			log.Printf("field %s: %v", de.Field, de.Err)
//		}
//	}
//
// Decoding is all-or-nothing: on any failure the target is left exactly
// as it was and the returned DecodeError identifies the field, the lookup
// key and the offending raw value. DecodeJSON and DecodeYAML parse raw
// bytes before decoding.
//
// # Conversion
//
// For each field, the first matching strategy wins: a named custom
// converter declared on the field; passthrough of an already-typed value;
// enumeration member lookup; a registry converter for the target type;
// element-wise recursion for slices; nested decoding for struct-typed
// fields. Anything else fails with a conversion error.
//
// A Decoder holds no per-call state and is safe for concurrent use.
package structmap
