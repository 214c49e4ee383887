package structmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"reflect"
	"strconv"

	"github.com/stoewer/go-strcase"
	"github.com/structmap-go/structmap/enum"
	"gopkg.in/yaml.v3"
)

// DefaultMaxDepth is the recursion bound applied to decoders that were
// not configured with WithMaxDepth.
const DefaultMaxDepth = 32

// Decoder binds source mappings onto struct types declared with map tags.
//
// A Decoder holds no per-call state: a single instance is safe for
// concurrent use from any number of goroutines. The zero configuration
// (NewDecoder with no options) uses the built-in converter registry, the
// snake_case-then-camelCase key fallback, and a recursion bound of
// DefaultMaxDepth.
type Decoder struct {
	registry *Registry
	logger   *slog.Logger
	maxDepth int
	keyCase  func(string) string
}

// NewDecoder creates a decoder with the given options applied.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		registry: DefaultRegistry(),
		maxDepth: DefaultMaxDepth,
		keyCase:  strcase.LowerCamelCase,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return d
}

var defaultDecoder = NewDecoder()

// Decode binds source onto target using a decoder with default options.
// See Decoder.Decode.
func Decode(source map[string]any, target any) error {
	return defaultDecoder.Decode(source, target)
}

// DecodeJSON parses data as JSON and binds the resulting mapping onto
// target using a decoder with default options. See Decoder.DecodeJSON.
func DecodeJSON(data []byte, target any) error {
	return defaultDecoder.DecodeJSON(data, target)
}

// DecodeYAML parses data as YAML and binds the resulting mapping onto
// target using a decoder with default options. See Decoder.DecodeYAML.
func DecodeYAML(data []byte, target any) error {
	return defaultDecoder.DecodeYAML(data, target)
}

// Decode binds the source mapping onto target, which must be a non-nil
// pointer to a struct.
//
// Decoding is all-or-nothing: either every sourced field of the target is
// populated and nil is returned, or the target is left exactly as it was
// and a DecodeError describes the first failure. Fields without a map tag
// are never touched.
func (d *Decoder) Decode(source map[string]any, target any) error {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return &DecodeError{Kind: KindInvalidTarget, Type: reflect.TypeOf(target), Err: ErrInvalidTarget}
	}

	elem := rv.Elem()
	d.logger.Debug("decoding struct", "type", elem.Type().String(), "keys", len(source))

	// Assemble on a scratch value so a failed decode leaves the target
	// untouched. Pre-set field values survive for omitempty fields.
	scratch := reflect.New(elem.Type()).Elem()
	scratch.Set(elem)

	if err := d.assemble(scratch, source, 0); err != nil {
		return err
	}

	elem.Set(scratch)
	return nil
}

// DecodeJSON parses data as JSON and binds the resulting mapping onto
// target. Parse failures propagate as plain encoding/json errors, not
// DecodeErrors. Numbers are decoded as json.Number so integer timestamps
// and high-precision decimals survive the trip.
func (d *Decoder) DecodeJSON(data []byte, target any) error {
	var source map[string]any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&source); err != nil {
		return err
	}

	return d.Decode(source, target)
}

// DecodeYAML parses data as YAML and binds the resulting mapping onto
// target. Parse failures propagate as plain yaml errors, not
// DecodeErrors.
func (d *Decoder) DecodeYAML(data []byte, target any) error {
	var source map[string]any

	if err := yaml.Unmarshal(data, &source); err != nil {
		return err
	}

	return d.Decode(source, target)
}

// assemble populates every sourced field of rv from the source mapping,
// in declaration order. rv must be an addressable struct value.
func (d *Decoder) assemble(rv reflect.Value, source map[string]any, depth int) error {
	if depth > d.maxDepth {
		return &DecodeError{Kind: KindMaxDepth, Type: rv.Type(), Err: ErrMaxDepth}
	}

	sch, err := schemaFor(rv.Type())
	if err != nil {
		return err
	}

	for _, f := range sch.fields {
		raw, key, err := d.resolveKey(f, source)
		if err != nil {
			if f.hasDefault {
				dv, derr := d.parseDefault(f)
				if derr != nil {
					return derr
				}
				rv.FieldByIndex(f.index).Set(dv)
				continue
			}
			if f.omitEmpty {
				continue
			}
			return err
		}

		fv := rv.FieldByIndex(f.index)

		if raw == nil {
			if !f.cls.optional {
				return newValueNotFoundError(f)
			}
			// Explicit null assigns nil; no conversion is attempted.
			fv.Set(reflect.Zero(f.typ))
			continue
		}

		val, err := d.convertField(raw, f, depth)
		if err != nil {
			if f.ignoreErrors && swallowable(err) {
				fv.Set(reflect.Zero(f.typ))
				continue
			}
			return err
		}

		if f.cls.optional {
			val = wrapPointer(val, f.cls.typ)
		}
		fv.Set(val)

		d.logger.Debug("field decoded", "field", f.name, "key", key)
	}

	return nil
}

// swallowable reports whether an error may be replaced by the zero value
// under the ignoreerrors tag option. Only conversion-class failures
// qualify; missing keys and nil values keep their semantics.
func swallowable(err error) bool {
	return errors.Is(err, ErrConversion) || errors.Is(err, ErrEnumValueNotFound)
}

// convertField converts a resolved raw value for a field. A named custom
// converter, when declared, has total authority: it is invoked before any
// built-in dispatch and its result is trusted as-is.
func (d *Decoder) convertField(raw any, f *field, depth int) (reflect.Value, error) {
	if f.converter != "" {
		fn, ok := d.registry.named(f.converter)
		if !ok {
			return reflect.Value{}, &DecodeError{Kind: KindUnknownConverter, Field: f.name, Key: f.converter, Err: ErrUnknownConverter}
		}

		out, err := fn(raw)
		if err != nil {
			return reflect.Value{}, newConversionError(f, f.cls.typ, raw, err)
		}
		return adoptConverted(out, f, f.cls.typ, raw)
	}

	return d.convertValue(raw, f.cls, f, depth)
}

// convertValue is the recursive conversion dispatch. The order of the
// strategies below is a design commitment: passthrough of already-typed
// values first, then enumeration lookup, then registry converters, then
// list and nested-record recursion.
func (d *Decoder) convertValue(raw any, cls classification, f *field, depth int) (reflect.Value, error) {
	if depth > d.maxDepth {
		return reflect.Value{}, &DecodeError{Kind: KindMaxDepth, Field: f.name, Type: cls.typ, Err: ErrMaxDepth}
	}

	rv := reflect.ValueOf(raw)

	if v, ok := passthrough(rv, cls); ok {
		return v, nil
	}

	if cls.kind == kindEnum {
		name, ok := raw.(string)
		if !ok {
			return reflect.Value{}, newEnumNotFoundError(f, cls.typ, raw)
		}
		member, ok := enum.Lookup(cls.typ, name)
		if !ok {
			return reflect.Value{}, newEnumNotFoundError(f, cls.typ, raw)
		}
		return member, nil
	}

	if fn, ok := d.registry.forType(cls.typ); ok {
		out, err := fn(raw)
		if err != nil {
			return reflect.Value{}, newConversionError(f, cls.typ, raw, err)
		}
		return adoptConverted(out, f, cls.typ, raw)
	}

	// Primitive kind coercion sits after the registry on purpose: a
	// registry-known named type (time.Duration is one) must reach its
	// converter rather than be silently converted by kind.
	if cls.kind == kindPrimitive {
		if v, ok := coercePrimitive(rv, cls.typ); ok {
			return v, nil
		}
	}

	switch cls.kind {
	case kindList:
		return d.convertList(raw, cls, f, depth)
	case kindUnspecifiedList:
		// Detected at schema build; re-checked here for list items.
		return reflect.Value{}, newUnspecificListError(f.name, cls.typ)
	case kindRecord:
		mapping, ok := raw.(map[string]any)
		if !ok {
			return reflect.Value{}, newConversionError(f, cls.typ, raw, nil)
		}

		nested := reflect.New(cls.typ).Elem()
		if err := d.assemble(nested, mapping, depth+1); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return reflect.Value{}, de.prefix(f.name)
			}
			return reflect.Value{}, err
		}
		return nested, nil
	}

	return reflect.Value{}, newConversionError(f, cls.typ, raw, nil)
}

// convertList converts a raw sequence element by element against the
// declared item type, preserving order and length.
func (d *Decoder) convertList(raw any, cls classification, f *field, depth int) (reflect.Value, error) {
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return reflect.Value{}, newConversionError(f, cls.typ, raw, nil)
	}

	n := rv.Len()

	var out reflect.Value
	switch cls.typ.Kind() {
	case reflect.Slice:
		out = reflect.MakeSlice(cls.typ, n, n)
	case reflect.Array:
		if n != cls.typ.Len() {
			return reflect.Value{}, newConversionError(f, cls.typ, raw, nil)
		}
		out = reflect.New(cls.typ).Elem()
	}

	elemCls := classify(cls.elem)

	for i := 0; i < n; i++ {
		item := rv.Index(i).Interface()

		if item == nil {
			if !elemCls.optional {
				return reflect.Value{}, newConversionError(f, cls.elem, item, nil).indexed(f.name, i)
			}
			continue // leave the nil pointer element
		}

		v, err := d.convertValue(item, elemCls, f, depth+1)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return reflect.Value{}, de.indexed(f.name, i)
			}
			return reflect.Value{}, err
		}
		if elemCls.optional {
			v = wrapPointer(v, elemCls.typ)
		}
		out.Index(i).Set(v)
	}

	return out, nil
}

// passthrough handles raw values that already satisfy the target type;
// assignable values pass unchanged.
func passthrough(rv reflect.Value, cls classification) (reflect.Value, bool) {
	if !rv.IsValid() {
		return reflect.Value{}, false
	}

	// A list without a concrete item type always fails, even when the raw
	// value happens to be assignable.
	if cls.kind == kindUnspecifiedList {
		return reflect.Value{}, false
	}

	// json.Number is a string under the hood; without this guard a number
	// in the source would silently pass through into a string field.
	if _, isNumber := rv.Interface().(json.Number); isNumber && cls.typ != rv.Type() {
		return reflect.Value{}, false
	}

	if rv.Type().AssignableTo(cls.typ) {
		return rv, true
	}

	return reflect.Value{}, false
}

// coercePrimitive converts a raw value of a compatible kind to a
// primitive target type: string to named string types, bool to named
// bool types, and numeric to numeric where a float carrying a fractional
// part never converts to an integer type.
func coercePrimitive(rv reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !rv.IsValid() {
		return reflect.Value{}, false
	}

	switch t.Kind() {
	case reflect.String:
		if rv.Kind() == reflect.String && rv.Type() != reflect.TypeOf(json.Number("")) {
			return rv.Convert(t), true
		}
	case reflect.Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Convert(t), true
		}
	default:
		return numericConvert(rv, t)
	}

	return reflect.Value{}, false
}

// numericConvert converts a numeric raw value to a numeric target type.
// JSON sources surface every number as float64 (or json.Number), so a
// lossless float-to-integer conversion counts as passthrough; anything
// with a fractional part or out of range does not.
func numericConvert(rv reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if n, ok := rv.Interface().(json.Number); ok {
		return numericConvertJSON(n, t)
	}

	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if out.OverflowInt(rv.Int()) {
				return reflect.Value{}, false
			}
			out.SetInt(rv.Int())
			return out, true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := rv.Uint()
			if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
				return reflect.Value{}, false
			}
			out.SetInt(int64(u))
			return out, true
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 || out.OverflowInt(int64(f)) {
				return reflect.Value{}, false
			}
			out.SetInt(int64(f))
			return out, true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			i := rv.Int()
			if i < 0 || out.OverflowUint(uint64(i)) {
				return reflect.Value{}, false
			}
			out.SetUint(uint64(i))
			return out, true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if out.OverflowUint(rv.Uint()) {
				return reflect.Value{}, false
			}
			out.SetUint(rv.Uint())
			return out, true
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if f != math.Trunc(f) || f < 0 || f > math.MaxUint64 || out.OverflowUint(uint64(f)) {
				return reflect.Value{}, false
			}
			out.SetUint(uint64(f))
			return out, true
		}
	case reflect.Float32, reflect.Float64:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return rv.Convert(t), true
		}
	}

	return reflect.Value{}, false
}

// numericConvertJSON converts a json.Number to a numeric target type,
// integer reading first.
func numericConvertJSON(n json.Number, t reflect.Type) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i, err := n.Int64(); err == nil {
			return numericConvert(reflect.ValueOf(i), t)
		}
		// Integral floats like "3.0" or "1e3" do not parse as Int64;
		// the float path applies the usual integral check.
		f, err := n.Float64()
		if err != nil {
			return reflect.Value{}, false
		}
		return numericConvert(reflect.ValueOf(f), t)
	case reflect.Float32, reflect.Float64:
		f, err := n.Float64()
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(f).Convert(t), true
	}
	return reflect.Value{}, false
}

// adoptConverted turns a converter's result into an assignable value of
// the target type. A nil result maps to the zero value.
func adoptConverted(out any, f *field, t reflect.Type, raw any) (reflect.Value, error) {
	if out == nil {
		return reflect.Zero(t), nil
	}

	ov := reflect.ValueOf(out)
	if !ov.Type().AssignableTo(t) {
		return reflect.Value{}, newConversionError(f, t, raw, nil)
	}
	return ov, nil
}

// wrapPointer boxes a value of type t into a *t.
func wrapPointer(v reflect.Value, t reflect.Type) reflect.Value {
	p := reflect.New(t)
	p.Elem().Set(v)
	return p
}

// parseDefault materializes a field's default literal against its
// declared type. Primitives parse directly; enumeration and
// registry-known types go through their usual conversion path with the
// literal as the raw value.
func (d *Decoder) parseDefault(f *field) (reflect.Value, error) {
	t := f.cls.typ

	var (
		v   reflect.Value
		err error
	)

	switch f.cls.kind {
	case kindPrimitive:
		v, err = parsePrimitiveLiteral(f, t)
	case kindEnum:
		member, ok := enum.Lookup(t, f.defaultLit)
		if !ok {
			return reflect.Value{}, newEnumNotFoundError(f, t, f.defaultLit)
		}
		v = member
	default:
		fn, ok := d.registry.forType(t)
		if !ok {
			return reflect.Value{}, newConversionError(f, t, f.defaultLit, nil)
		}
		out, cerr := fn(f.defaultLit)
		if cerr != nil {
			return reflect.Value{}, newConversionError(f, t, f.defaultLit, cerr)
		}
		return adoptDefault(out, f, t)
	}

	if err != nil {
		return reflect.Value{}, err
	}

	if f.cls.optional {
		v = wrapPointer(v, t)
	}
	return v, nil
}

func adoptDefault(out any, f *field, t reflect.Type) (reflect.Value, error) {
	v, err := adoptConverted(out, f, t, f.defaultLit)
	if err != nil {
		return reflect.Value{}, err
	}
	if f.cls.optional {
		v = wrapPointer(v, t)
	}
	return v, nil
}

func parsePrimitiveLiteral(f *field, t reflect.Type) (reflect.Value, error) {
	lit := f.defaultLit
	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.String:
		out.SetString(lit)
	case reflect.Bool:
		b, err := strconv.ParseBool(lit)
		if err != nil {
			return reflect.Value{}, newConversionError(f, t, lit, err)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil || out.OverflowInt(i) {
			return reflect.Value{}, newConversionError(f, t, lit, err)
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(lit, 10, 64)
		if err != nil || out.OverflowUint(u) {
			return reflect.Value{}, newConversionError(f, t, lit, err)
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		fl, err := strconv.ParseFloat(lit, 64)
		if err != nil || out.OverflowFloat(fl) {
			return reflect.Value{}, newConversionError(f, t, lit, err)
		}
		out.SetFloat(fl)
	}

	return out, nil
}
