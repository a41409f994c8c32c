package view

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Normalizer is the default Encoder.
//
// Normalizable values normalize themselves. Other structs become maps of
// their exported fields keyed by JSON name, with embedded structs flattened.
// Nil fields are left out, as are zero fields tagged omitempty; zero scalars
// and structs are kept. Maps and slices are normalized element-wise; scalars, times and
// values implementing json.Marshaler or encoding.TextMarshaler are kept.
type Normalizer struct{}

var (
	normalizableType  = reflect.TypeFor[Normalizable]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	timeType          = reflect.TypeFor[time.Time]()
)

// Normalize encodes v with the default Normalizer.
func Normalize(v any) (any, error) {
	return Normalizer{}.Encode(v)
}

func (n Normalizer) Encode(v any) (any, error) {
	return n.encode(reflect.ValueOf(v))
}

func (n Normalizer) encode(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	if nv, ok := asNormalizable(v); ok {
		return nv.Normalize(n)
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return n.encode(v.Elem())
	}

	t := v.Type()
	if t == timeType || t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return v.Interface(), nil
	}

	switch v.Kind() {
	case reflect.Struct:
		return n.encodeStruct(v)

	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			e, err := n.encode(iter.Value())
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(iter.Key().Interface())] = e
		}
		return out, nil

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return v.Interface(), nil
		}
		out := make([]any, 0, v.Len())
		for i := range v.Len() {
			e, err := n.encode(v.Index(i))
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, e)
		}
		return out, nil

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, fmt.Errorf("cannot normalize %s", t)

	default:
		return v.Interface(), nil
	}
}

// asNormalizable also finds methods declared on the pointer receiver.
func asNormalizable(v reflect.Value) (Normalizable, bool) {
	if v.Kind() == reflect.Interface || !v.CanInterface() {
		return nil, false
	}
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return nil, false
	}

	if v.Type().Implements(normalizableType) {
		return v.Interface().(Normalizable), true
	}
	if v.Kind() != reflect.Ptr && reflect.PointerTo(v.Type()).Implements(normalizableType) {
		if !v.CanAddr() {
			cp := reflect.New(v.Type())
			cp.Elem().Set(v)
			return cp.Interface().(Normalizable), true
		}
		return v.Addr().Interface().(Normalizable), true
	}

	return nil, false
}

func (n Normalizer) encodeStruct(v reflect.Value) (any, error) {
	out := make(map[string]any)
	for _, sf := range reflect.VisibleFields(v.Type()) {
		if !sf.IsExported() || sf.Anonymous && isEmbeddedStruct(sf.Type) {
			continue
		}

		name, omitEmpty, skip := jsonName(sf)
		if skip {
			continue
		}

		f, err := v.FieldByIndexErr(sf.Index)
		if err != nil || isNil(f) || omitEmpty && f.IsZero() {
			continue
		}

		e, err := n.encode(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sf.Name, err)
		}
		out[name] = e
	}

	return out, nil
}

func isEmbeddedStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func jsonName(sf reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	if name == "" {
		name = sf.Name
	}

	return name, omitEmpty, false
}
