package accessor

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Placeholder is a stand-in that loads the real object on first use.
type Placeholder interface {
	// Materialized reports whether the subject has been loaded.
	Materialized() bool
	// Materialize loads the subject if needed and returns it.
	Materialize() (any, error)
}

// maxPlaceholderDepth bounds chains of placeholders resolving to placeholders.
const maxPlaceholderDepth = 8

// Resolve materializes v while it is a non-nil Placeholder and returns the
// subject. Any other value is returned as is.
func Resolve(v any) (any, error) {
	for range maxPlaceholderDepth {
		p, ok := v.(Placeholder)
		if !ok {
			return v, nil
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr && rv.IsNil() {
			return v, nil
		}

		subject, err := p.Materialize()
		if err != nil {
			return nil, fmt.Errorf("%w %T: %w", ErrLoad, v, err)
		}
		v = subject
	}

	return nil, fmt.Errorf("%w %T: placeholder chain too deep", ErrLoad, v)
}

// Deferred is a Placeholder for *T produced by a loader function.
// The loader runs at most once; its result, including an error, is kept.
type Deferred[T any] struct {
	once   sync.Once
	loaded atomic.Bool
	load   func() (*T, error)
	value  *T
	err    error
}

// Defer creates a Deferred that calls load on first materialization.
func Defer[T any](load func() (*T, error)) *Deferred[T] {
	return &Deferred[T]{load: load}
}

// Loaded creates an already materialized Deferred holding v.
func Loaded[T any](v *T) *Deferred[T] {
	d := &Deferred[T]{value: v}
	d.once.Do(func() {})
	d.loaded.Store(true)

	return d
}

func (d *Deferred[T]) Materialized() bool {
	return d.loaded.Load()
}

func (d *Deferred[T]) Materialize() (any, error) {
	v, err := d.Get()
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Get loads the subject if needed and returns it.
func (d *Deferred[T]) Get() (*T, error) {
	d.once.Do(func() {
		if d.load == nil {
			d.value = new(T)
		} else {
			d.value, d.err = d.load()
		}
		d.loaded.Store(true)
	})

	return d.value, d.err
}
