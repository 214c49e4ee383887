package structmap

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors for decode failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrKeyNotFound indicates no usable lookup key was found in the source
	// mapping for a required field.
	ErrKeyNotFound = errors.New("key not found in source mapping")

	// ErrValueNotFound indicates the lookup key exists but its value is nil
	// and the field's type is not a pointer.
	ErrValueNotFound = errors.New("nil value for non-optional field")

	// ErrConversion indicates no conversion strategy succeeded for a
	// resolved value.
	ErrConversion = errors.New("value conversion failed")

	// ErrEnumValueNotFound indicates the enumeration type has no member
	// matching the raw value.
	ErrEnumValueNotFound = errors.New("enum member not found")

	// ErrUnspecificList indicates a list field whose item type is not
	// concrete (an element type of interface kind).
	ErrUnspecificList = errors.New("list field has no concrete item type")

	// ErrUnknownConverter indicates a field references a named converter
	// that is not present in the registry.
	ErrUnknownConverter = errors.New("converter not registered")

	// ErrInvalidTarget indicates Decode was called with something other
	// than a non-nil pointer to a struct. This is a programmer error, not
	// a data error.
	ErrInvalidTarget = errors.New("target must be a non-nil pointer to a struct")

	// ErrMaxDepth indicates the decoder exceeded its maximum recursion
	// depth, usually due to a self-referential schema fed a deeply nested
	// mapping.
	ErrMaxDepth = errors.New("maximum decode depth exceeded")
)

// Error kinds categorize decode errors by their type.
const (
	// KindKeyNotFound represents a missing lookup key.
	KindKeyNotFound = "key_not_found"

	// KindValueNotFound represents a nil value where one was required.
	KindValueNotFound = "value_not_found"

	// KindConversion represents a failed value conversion.
	KindConversion = "conversion"

	// KindEnumNotFound represents a missing enumeration member.
	KindEnumNotFound = "enum_not_found"

	// KindUnspecificList represents a list field without an item type.
	KindUnspecificList = "unspecific_list"

	// KindUnknownConverter represents a reference to an unregistered
	// named converter.
	KindUnknownConverter = "unknown_converter"

	// KindInvalidTarget represents an invalid decode target.
	KindInvalidTarget = "invalid_target"

	// KindMaxDepth represents exhausted recursion depth.
	KindMaxDepth = "max_depth"
)

// DecodeError is a structured error type describing why a source mapping
// could not be bound to a struct. It carries the identity of the failing
// field, the lookup key that was used, the target type and the raw value,
// so callers can build precise diagnostics without string matching.
//
// DecodeError implements the error interface and supports error
// unwrapping, making it compatible with errors.Is() and errors.As().
type DecodeError struct {
	// Kind categorizes the error (e.g., KindKeyNotFound, KindConversion).
	Kind string

	// Field is the dotted path of the failing field, rooted at the decode
	// target (e.g., "Child.Value"). Failures inside list elements carry
	// the element index (e.g., "Stops[1].City").
	Field string

	// Key is the source-mapping key involved, if any. For KindKeyNotFound
	// it is the explicit tag key when one was declared, empty otherwise.
	// For KindUnknownConverter it is the converter name.
	Key string

	// Type is the target type of the failing field, if known.
	Type reflect.Type

	// Value is the raw value from the source mapping, if one was resolved.
	Value any

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface, returning a message that includes
// the field path, the error kind and the offending value where relevant.
func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindKeyNotFound:
		if e.Key != "" {
			return fmt.Sprintf("structmap: no key found for field %s (with %q specified as source key)", e.Field, e.Key)
		}
		return fmt.Sprintf("structmap: no key found for field %s", e.Field)
	case KindValueNotFound:
		return fmt.Sprintf("structmap: found nil value for field %s but its type %s is not a pointer", e.Field, e.Type)
	case KindConversion:
		if e.Err != nil {
			return fmt.Sprintf("structmap: cannot convert value %v (%T) for field %s of type %s: %v", e.Value, e.Value, e.Field, e.Type, e.Err)
		}
		return fmt.Sprintf("structmap: cannot convert value %v (%T) for field %s of type %s", e.Value, e.Value, e.Field, e.Type)
	case KindEnumNotFound:
		return fmt.Sprintf("structmap: value %v (%T) is not a member of enum %s for field %s", e.Value, e.Value, e.Type, e.Field)
	case KindUnspecificList:
		return fmt.Sprintf("structmap: no item type specified for list field %s", e.Field)
	case KindUnknownConverter:
		return fmt.Sprintf("structmap: field %s references unregistered converter %q", e.Field, e.Key)
	case KindInvalidTarget:
		return fmt.Sprintf("structmap: invalid decode target %s", e.Type)
	case KindMaxDepth:
		return fmt.Sprintf("structmap: maximum decode depth exceeded at field %s", e.Field)
	}
	return fmt.Sprintf("structmap: decode error (%s) at field %s", e.Kind, e.Field)
}

// Unwrap returns the underlying error, allowing errors.Is() and
// errors.As() to work correctly with wrapped errors.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements error matching for DecodeError, allowing each error kind
// to be matched against its sentinel regardless of the wrapped cause.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrKeyNotFound:
		return e.Kind == KindKeyNotFound
	case ErrValueNotFound:
		return e.Kind == KindValueNotFound
	case ErrConversion:
		return e.Kind == KindConversion
	case ErrEnumValueNotFound:
		return e.Kind == KindEnumNotFound
	case ErrUnspecificList:
		return e.Kind == KindUnspecificList
	case ErrUnknownConverter:
		return e.Kind == KindUnknownConverter
	case ErrInvalidTarget:
		return e.Kind == KindInvalidTarget
	case ErrMaxDepth:
		return e.Kind == KindMaxDepth
	}
	if t, ok := target.(*DecodeError); ok {
		return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
	}
	return false
}

// prefix returns a copy of the error with the given field name prepended
// to its field path. Used when a nested record decode fails so the error
// reports the full path from the decode target.
func (e *DecodeError) prefix(name string) *DecodeError {
	out := *e
	if out.Field == "" {
		out.Field = name
	} else {
		out.Field = name + "." + out.Field
	}
	return &out
}

// indexed returns a copy of the error with the element index spliced
// into its field path (e.g. "Stops.City" becomes "Stops[1].City"). Used
// when a list element fails so the error pinpoints which element.
func (e *DecodeError) indexed(name string, i int) *DecodeError {
	out := *e
	elem := fmt.Sprintf("%s[%d]", name, i)
	switch {
	case out.Field == "":
		out.Field = elem
	case strings.HasPrefix(out.Field, name):
		out.Field = elem + strings.TrimPrefix(out.Field, name)
	default:
		out.Field = elem + "." + out.Field
	}
	return &out
}

func newKeyNotFoundError(f *field) *DecodeError {
	return &DecodeError{Kind: KindKeyNotFound, Field: f.name, Key: f.key, Type: f.typ}
}

func newValueNotFoundError(f *field) *DecodeError {
	return &DecodeError{Kind: KindValueNotFound, Field: f.name, Type: f.cls.typ}
}

func newConversionError(f *field, t reflect.Type, value any, cause error) *DecodeError {
	name := ""
	if f != nil {
		name = f.name
	}
	return &DecodeError{Kind: KindConversion, Field: name, Type: t, Value: value, Err: cause}
}

func newEnumNotFoundError(f *field, t reflect.Type, value any) *DecodeError {
	name := ""
	if f != nil {
		name = f.name
	}
	return &DecodeError{Kind: KindEnumNotFound, Field: name, Type: t, Value: value, Err: ErrEnumValueNotFound}
}

func newUnspecificListError(fieldName string, t reflect.Type) *DecodeError {
	return &DecodeError{Kind: KindUnspecificList, Field: fieldName, Type: t, Err: ErrUnspecificList}
}
