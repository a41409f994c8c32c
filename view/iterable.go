package view

import (
	"errors"
	"fmt"
	"reflect"

	"view-binder/primitive"
)

var ErrNoMapping = errors.New("no element mapping")

// Collection is a view built element by element from a source sequence.
type Collection interface {
	// ElemType returns the declared element type.
	ElemType() reflect.Type
	// Append adds one element, converting it to the element type.
	Append(v any) error
	Len() int
}

// Mapper is implemented by collections that convert source elements
// themselves.
type Mapper interface {
	MapEntry(src any) (any, error)
}

// MapFunc converts one source element into a view element.
type MapFunc[S, E any] func(S) (E, error)

// Iterable is a plain sequence of elements. It normalizes to a list.
type Iterable[E any] struct {
	Entries []E
}

// NewIterable creates an Iterable holding entries.
func NewIterable[E any](entries ...E) *Iterable[E] {
	return &Iterable[E]{Entries: entries}
}

// Fill creates an Iterable by mapping every element of src through f,
// preserving order.
func Fill[S, E any](src []S, f MapFunc[S, E]) (*Iterable[E], error) {
	if f == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoMapping, reflect.TypeFor[E]())
	}

	it := &Iterable[E]{Entries: make([]E, 0, len(src))}
	for i, s := range src {
		e, err := f(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		it.Entries = append(it.Entries, e)
	}

	return it, nil
}

func (it *Iterable[E]) ElemType() reflect.Type {
	return reflect.TypeFor[E]()
}

func (it *Iterable[E]) Append(v any) error {
	var e E
	if err := primitive.Assign(reflect.ValueOf(&e).Elem(), reflect.ValueOf(v)); err != nil {
		return fmt.Errorf("entry %d: %w", len(it.Entries), err)
	}
	it.Entries = append(it.Entries, e)

	return nil
}

func (it *Iterable[E]) Len() int {
	return len(it.Entries)
}

func (it *Iterable[E]) Normalize(enc Encoder) (any, error) {
	out := make([]any, 0, len(it.Entries))
	for i, e := range it.Entries {
		v, err := enc.Encode(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, v)
	}

	return out, nil
}

// IsCollection reports whether a pointer to t implements Collection.
func IsCollection(t reflect.Type) bool {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t != nil && reflect.PointerTo(t).Implements(collectionType)
}

var collectionType = reflect.TypeFor[Collection]()
