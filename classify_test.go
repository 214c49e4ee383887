package structmap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	type record struct{ Name string }

	cases := []struct {
		name     string
		typ      reflect.Type
		kind     typeKind
		optional bool
	}{
		{name: "bool", typ: reflect.TypeOf(true), kind: kindPrimitive},
		{name: "string", typ: reflect.TypeOf(""), kind: kindPrimitive},
		{name: "int", typ: reflect.TypeOf(0), kind: kindPrimitive},
		{name: "int64", typ: reflect.TypeOf(int64(0)), kind: kindPrimitive},
		{name: "uint8", typ: reflect.TypeOf(uint8(0)), kind: kindPrimitive},
		{name: "float64", typ: reflect.TypeOf(0.0), kind: kindPrimitive},
		{name: "slice of string", typ: reflect.TypeOf([]string{}), kind: kindList},
		{name: "slice of struct", typ: reflect.TypeOf([]record{}), kind: kindList},
		{name: "bare slice", typ: reflect.TypeOf([]any{}), kind: kindUnspecifiedList},
		{name: "struct", typ: reflect.TypeOf(record{}), kind: kindRecord},
		{name: "registered enum", typ: reflect.TypeOf(priorityFirst), kind: kindEnum},
		{name: "unregistered named int", typ: reflect.TypeOf(typeKind(0)), kind: kindPrimitive},
		{name: "map", typ: reflect.TypeOf(map[string]any{}), kind: kindUnknown},
		{name: "interface", typ: reflect.TypeOf((*any)(nil)).Elem(), kind: kindUnknown},
		{name: "func", typ: reflect.TypeOf(func() {}), kind: kindUnknown},

		{name: "pointer to string", typ: reflect.TypeOf((*string)(nil)), kind: kindPrimitive, optional: true},
		{name: "pointer to struct", typ: reflect.TypeOf((*record)(nil)), kind: kindRecord, optional: true},
		{name: "pointer to enum", typ: reflect.TypeOf((*testPriority)(nil)), kind: kindEnum, optional: true},
		{name: "pointer to pointer", typ: reflect.TypeOf((**string)(nil)), kind: kindUnknown, optional: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := classify(tc.typ)
			assert.Equal(t, tc.kind, c.kind)
			assert.Equal(t, tc.optional, c.optional)
		})
	}
}

func TestClassify_Unwrapping(t *testing.T) {
	c := classify(reflect.TypeOf((*string)(nil)))
	assert.Equal(t, reflect.TypeOf(""), c.typ)

	c = classify(reflect.TypeOf([]int{}))
	assert.Equal(t, reflect.TypeOf(0), c.elem)
}
