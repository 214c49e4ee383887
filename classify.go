package structmap

import (
	"reflect"

	"github.com/structmap-go/structmap/enum"
)

// typeKind is the closed set of type shapes the decoder understands.
// Every declared field type classifies into exactly one of these, and the
// value converter matches on them exhaustively.
type typeKind int

const (
	kindUnknown typeKind = iota
	kindPrimitive
	kindList
	kindUnspecifiedList
	kindRecord
	kindEnum
)

// classification describes a declared field or list-item type after
// optional unwrapping: the shape it dispatches on, the unwrapped target
// type, and the item type when the shape is a list.
type classification struct {
	kind     typeKind
	typ      reflect.Type // target type with any pointer removed
	elem     reflect.Type // item type for kindList
	optional bool         // declared as a pointer
}

// classify inspects a declared type and classifies it for conversion
// dispatch. A pointer type is unwrapped exactly once and marked optional;
// a pointer-to-pointer is not supported and classifies as unknown.
//
// Enumeration registration takes precedence over the underlying kind, so
// a registered named integer or string type classifies as an enumeration
// rather than a primitive.
func classify(t reflect.Type) classification {
	c := classification{typ: t}

	if t.Kind() == reflect.Pointer {
		c.optional = true
		t = t.Elem()
		c.typ = t
		if t.Kind() == reflect.Pointer {
			c.kind = kindUnknown
			return c
		}
	}

	if enum.IsEnum(t) {
		c.kind = kindEnum
		return c
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		c.kind = kindPrimitive
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Interface {
			c.kind = kindUnspecifiedList
		} else {
			c.kind = kindList
			c.elem = t.Elem()
		}
	case reflect.Struct:
		c.kind = kindRecord
	default:
		c.kind = kindUnknown
	}

	return c
}
