package bind

import (
	"iter"
	"reflect"

	"view-binder/accessor"
	"view-binder/internal/analyze"
	"view-binder/view"
)

// construct builds the nested view declared by the target field of p.
func (b *Binder) construct(p pairing, value any) (any, error) {
	t := p.Target.Type.Type
	if view.IsCollection(t) {
		return b.constructCollection(p, value)
	}

	return b.constructView(t, value)
}

// Construct creates a new view of type t, which may be a pointer type, from
// source and returns a pointer to it. Views implementing Preparer prepare
// themselves from the materialized source first.
func (b *Binder) Construct(t reflect.Type, source any) (any, error) {
	if t == nil {
		return nil, ErrInvalidTarget
	}

	return b.constructView(t, source)
}

// constructView creates a *T, lets it prepare itself from the materialized
// value and binds value into it.
func (b *Binder) constructView(t reflect.Type, value any) (any, error) {
	value, err := accessor.Resolve(value)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(analyze.RuntimeType(t)).Interface()
	if pr, ok := ptr.(Preparer); ok {
		if err := pr.PrepareView(value); err != nil {
			return nil, err
		}
	}

	if err := b.Sync(ptr, value); err != nil {
		return nil, err
	}

	return ptr, nil
}

// elementFunc converts one source element into a collection element.
type elementFunc func(any) (any, error)

func (b *Binder) constructCollection(p pairing, value any) (any, error) {
	ptr := reflect.New(analyze.RuntimeType(p.Target.Type.Type))
	coll := ptr.Interface().(view.Collection)

	mapElem, err := b.elementMapping(p.Target, coll)
	if err != nil {
		return nil, b.constructionError(p, err)
	}

	src := reflect.ValueOf(value)
	for src.Kind() == reflect.Ptr || src.Kind() == reflect.Interface {
		src = src.Elem()
	}
	elems, ok := elements(src)
	if !ok {
		return nil, b.constructionError(p, ErrNotIterable)
	}

	for e := range elems {
		elem := e.Interface()

		var out any
		if !isNull(elem) {
			out, err = mapElem(elem)
			if err != nil {
				return nil, err
			}
		}
		if err := coll.Append(out); err != nil {
			return nil, b.constructionError(p, err)
		}
	}

	return ptr.Interface(), nil
}

// elements yields the entries of a slice, an array or an iter.Seq.
func elements(src reflect.Value) (iter.Seq[reflect.Value], bool) {
	switch {
	case src.Kind() == reflect.Slice || src.Kind() == reflect.Array:
		return func(yield func(reflect.Value) bool) {
			for i := range src.Len() {
				if !yield(src.Index(i)) {
					return
				}
			}
		}, true
	case src.Kind() == reflect.Func && src.Type().CanSeq():
		return src.Seq(), true
	default:
		return nil, false
	}
}

// elementMapping picks, in order: the registered type named by the field's
// elem annotation, the collection's own Mapper, the collection's bindable
// element type, or a plain copy for concrete element types.
func (b *Binder) elementMapping(fd *analyze.FieldDescriptor, coll view.Collection) (elementFunc, error) {
	if name := fd.Options.Elem; name != "" {
		t, ok := Lookup(name)
		if !ok || t.Kind() != reflect.Struct {
			return nil, ErrUnresolvedElement
		}
		return func(v any) (any, error) { return b.constructView(t, v) }, nil
	}

	if m, ok := coll.(view.Mapper); ok {
		return m.MapEntry, nil
	}

	et := coll.ElemType()
	switch {
	case view.IsBindable(et):
		return func(v any) (any, error) { return b.constructView(et, v) }, nil
	case et.Kind() != reflect.Interface:
		return func(v any) (any, error) { return v, nil }, nil
	default:
		return nil, ErrAmbiguousElement
	}
}

func (b *Binder) constructionError(p pairing, err error) error {
	elem := p.Target.Options.Elem
	if elem == "" {
		if c, ok := reflect.New(analyze.RuntimeType(p.Target.Type.Type)).Interface().(view.Collection); ok {
			elem = c.ElemType().String()
		}
	}

	return &ConstructionError{
		Pair:  p.Pair.String(),
		Field: p.Target.Name,
		Elem:  elem,
		Err:   err,
	}
}
