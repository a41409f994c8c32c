package accessor

import (
	"errors"
	"reflect"
	"unsafe"

	"view-binder/internal/analyze"
)

// Resilient decorates an Accessor with placeholder materialization and a
// read-only fallback to the raw field.
type Resilient struct {
	decorated Accessor
	meta      *analyze.Cache
}

// NewResilient wraps decorated. Fields for the fallback are looked up in meta.
func NewResilient(decorated Accessor, meta *analyze.Cache) *Resilient {
	if meta == nil {
		meta = analyze.Default()
	}

	return &Resilient{decorated: decorated, meta: meta}
}

func materialize(obj any, op Op, prop string) (any, error) {
	v, err := Resolve(obj)
	if err != nil {
		return nil, &Error{Kind: KindRuntime, Op: op, Type: typeName(reflect.TypeOf(obj)), Property: prop, Err: err}
	}

	return v, nil
}

// Set delegates to the decorated accessor. Writes never fall back.
func (r *Resilient) Set(obj any, prop string, value any) error {
	obj, err := materialize(obj, OpWrite, prop)
	if err != nil {
		return err
	}

	return r.decorated.Set(obj, prop, value)
}

// Get reads through the decorated accessor. When it reports a missing
// property, or an inaccessible one naming exactly this type and property,
// the raw field is read instead. If no such field exists the original
// error is returned.
func (r *Resilient) Get(obj any, prop string) (any, error) {
	obj, err := materialize(obj, OpRead, prop)
	if err != nil {
		return nil, err
	}

	value, err := r.decorated.Get(obj, prop)
	if err == nil {
		return value, nil
	}
	if !r.intercepted(err, obj, prop) {
		return nil, err
	}

	fd := r.field(obj, prop)
	if fd == nil {
		return nil, err
	}

	return readField(obj, fd.Index), nil
}

func (r *Resilient) IsReadable(obj any, prop string) bool {
	obj, err := Resolve(obj)
	if err != nil {
		return false
	}

	return r.decorated.IsReadable(obj, prop) || r.field(obj, prop) != nil
}

func (r *Resilient) IsWritable(obj any, prop string) bool {
	obj, err := Resolve(obj)
	if err != nil {
		return false
	}

	return r.decorated.IsWritable(obj, prop) || r.field(obj, prop) != nil
}

// IsStrictlyReadable reports only the decorated accessor's answer.
func (r *Resilient) IsStrictlyReadable(obj any, prop string) bool {
	obj, err := Resolve(obj)
	if err != nil {
		return false
	}

	return r.decorated.IsReadable(obj, prop)
}

func (r *Resilient) intercepted(err error, obj any, prop string) bool {
	var ae *Error
	if !errors.As(err, &ae) || ae.Op != OpRead {
		return false
	}

	switch ae.Kind {
	case KindNoSuchProperty:
		return true
	case KindInaccessible:
		return ae.Property == prop && ae.Type == typeName(reflect.TypeOf(obj))
	default:
		return false
	}
}

// field returns the metadata of prop when obj is a struct declaring it.
func (r *Resilient) field(obj any, prop string) *analyze.FieldDescriptor {
	t := analyze.RuntimeType(obj)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	fd, err := r.meta.Field(t, prop)
	if err != nil {
		return nil
	}

	return fd
}

// readField returns the field at index regardless of its visibility.
// A nil embedded pointer on the path yields the field's zero value.
func readField(obj any, index []int) any {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	v = addressable(v)

	for n, i := range index {
		if n > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Zero(v.Type().Elem().FieldByIndex(index[n:]).Type).Interface()
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}

	if !v.CanInterface() {
		v = reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}

	return v.Interface()
}
