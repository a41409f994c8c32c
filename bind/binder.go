package bind

import (
	"fmt"
	"log"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"view-binder/accessor"
	"view-binder/internal/analyze"
	"view-binder/internal/match"
	"view-binder/store"
	"view-binder/view"
)

// Preparer is implemented by views that set some fields themselves before
// binding. Fields it fills are not overwritten.
type Preparer interface {
	PrepareView(source any) error
}

// Binder copies compatible properties from source objects into views.
type Binder struct {
	meta     *analyze.Cache
	resolver *match.Resolver
	conv     *accessor.Conventional
	access   *accessor.Resilient
	cache    *store.Namespaced
	logger   *log.Logger

	pairs sync.Map // Pair -> []pairing
	group singleflight.Group
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger traces pairing decisions to logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *Binder) { b.logger = logger }
}

// WithMetadata sets the metadata cache. It defaults to analyze.Default().
func WithMetadata(meta *analyze.Cache) Option {
	return func(b *Binder) { b.meta = meta }
}

// WithCache persists resolved access plans to cache.
func WithCache(cache *store.Namespaced) Option {
	return func(b *Binder) { b.cache = cache }
}

// NewBinder creates a Binder.
func NewBinder(opts ...Option) *Binder {
	b := &Binder{meta: analyze.Default()}
	for _, opt := range opts {
		opt(b)
	}

	b.resolver = match.NewResolver(constructible)
	b.conv = accessor.NewConventional(
		accessor.WithMetadata(b.meta),
		accessor.WithCache(b.cache),
		accessor.WithLogger(b.logger),
	)
	b.access = accessor.NewResilient(b.conv, b.meta)

	return b
}

// constructible names the view families built from any source value.
func constructible(t reflect.Type) bool {
	return view.IsBindable(t) || view.IsCollection(t)
}

// Accessor returns the accessor used for every read and write.
func (b *Binder) Accessor() *accessor.Resilient {
	return b.access
}

// Reset drops memoized pairings, field maps and access plans.
func (b *Binder) Reset() {
	b.pairs.Clear()
	b.conv.Reset()
	b.meta.Reset()
}

func (b *Binder) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}

// Sync copies every compatible property of source into target, which must be
// a non-nil pointer to a struct. Placeholders are materialized first.
func (b *Binder) Sync(target, source any) error {
	target, err := accessor.Resolve(target)
	if err != nil {
		return err
	}
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.IsNil() || tv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrInvalidTarget, target)
	}

	source, err = accessor.Resolve(source)
	if err != nil {
		return err
	}
	if sv := reflect.ValueOf(source); !sv.IsValid() || sv.Kind() == reflect.Ptr && sv.IsNil() {
		return ErrNilSource
	}

	pairs, err := b.pairings(tv.Elem().Type(), analyze.RuntimeType(source))
	if err != nil {
		return err
	}

	for _, p := range pairs {
		if err := b.bindField(target, source, p); err != nil {
			return err
		}
	}

	return nil
}

func (b *Binder) bindField(target, source any, p pairing) error {
	name := p.Target.Name

	if b.access.IsStrictlyReadable(target, name) {
		cur, err := b.access.Get(target, name)
		if err != nil {
			return err
		}
		if !isNull(cur) {
			return nil
		}
	}

	value, err := b.access.Get(source, p.Source.Name)
	if err != nil {
		return err
	}

	// A placeholder is kept only when the target field can hold it as is.
	if _, ok := value.(accessor.Placeholder); ok && !reflect.TypeOf(value).AssignableTo(p.Target.Declared) {
		value, err = accessor.Resolve(value)
		if err != nil {
			return err
		}
	}

	if isNull(value) {
		return b.access.Set(target, name, nil)
	}

	if p.Verdict == match.VerdictConstructible {
		value, err = b.construct(p, value)
		if err != nil {
			return err
		}
	}

	return b.access.Set(target, name, value)
}

// isNull reports whether v is nil or the zero value of its type.
func isNull(v any) bool {
	if v == nil {
		return true
	}

	return reflect.ValueOf(v).IsZero()
}
