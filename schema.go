package structmap

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/stoewer/go-strcase"
)

// TagName is the struct tag consulted for field metadata. Only fields
// carrying this tag are populated from the source mapping; untagged fields
// keep whatever value the caller pre-set on the target.
const TagName = "map"

// field is the descriptor for a single sourced struct field: where its
// value comes from, how it converts, and what happens when it is missing.
// Descriptors are built once per struct type and are immutable afterward.
type field struct {
	name      string // Go field name
	index     []int  // reflect field index
	key       string // explicit source key from the tag, "" when derived
	snakeName string // derived primary lookup key

	converter    string // named converter, "" when none
	defaultLit   string // default literal from the tag
	hasDefault   bool
	omitEmpty    bool // keep current value on missing key
	ignoreErrors bool // zero value on conversion failure

	typ reflect.Type // declared field type, pointer included
	cls classification
}

// structSchema is the cached description of a struct type's sourced
// fields, in declaration order.
type structSchema struct {
	typ    reflect.Type
	fields []*field
}

// schemaCache holds one structSchema per struct type. Reflection over a
// type happens once, on its first decode.
var schemaCache sync.Map // reflect.Type -> *structSchema

// schemaFor returns the cached schema for t, building it on first use.
func schemaFor(t reflect.Type) (*structSchema, error) {
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*structSchema), nil
	}

	s, err := buildSchema(t)
	if err != nil {
		return nil, err
	}

	actual, _ := schemaCache.LoadOrStore(t, s)
	return actual.(*structSchema), nil
}

// buildSchema reflects over the struct type t and builds descriptors for
// every field carrying the map tag. A list field without a concrete item
// type fails the build immediately rather than at conversion time.
func buildSchema(t reflect.Type) (*structSchema, error) {
	s := &structSchema{typ: t, fields: make([]*field, 0, t.NumField())}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		if !sf.IsExported() {
			continue
		}

		tag, ok := sf.Tag.Lookup(TagName)
		if !ok || tag == "-" {
			continue
		}

		f, err := parseField(sf, tag)
		if err != nil {
			return nil, err
		}

		s.fields = append(s.fields, f)
	}

	return s, nil
}

// parseField builds one field descriptor from a struct field and its tag.
// Tag shape: "key[,converter=name][,default=literal][,omitempty][,ignoreerrors]".
func parseField(sf reflect.StructField, tag string) (*field, error) {
	f := &field{
		name:      sf.Name,
		index:     sf.Index,
		snakeName: strcase.SnakeCase(sf.Name),
		typ:       sf.Type,
	}

	parts := strings.Split(tag, ",")
	f.key = parts[0]

	for _, part := range parts[1:] {
		switch {
		case part == "omitempty":
			f.omitEmpty = true
		case part == "ignoreerrors":
			f.ignoreErrors = true
		case strings.HasPrefix(part, "converter="):
			f.converter = strings.TrimPrefix(part, "converter=")
		case strings.HasPrefix(part, "default="):
			f.defaultLit = strings.TrimPrefix(part, "default=")
			f.hasDefault = true
		case part == "":
			// tolerated, e.g. a trailing comma
		default:
			return nil, fmt.Errorf("structmap: field %s has unrecognized tag option %q", sf.Name, part)
		}
	}

	f.cls = classify(sf.Type)
	if f.cls.kind == kindUnspecifiedList {
		return nil, newUnspecificListError(f.name, f.typ)
	}

	return f, nil
}
