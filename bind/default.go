package bind

import (
	"fmt"
	"log"
	"reflect"
	"sync"
	"sync/atomic"

	"view-binder/internal/analyze"
	"view-binder/options"
)

var (
	defaultBinder atomic.Pointer[Binder]
	configureMu   sync.Mutex
	configured    bool
)

func init() {
	defaultBinder.Store(NewBinder())
}

// Default returns the process-wide Binder.
func Default() *Binder {
	return defaultBinder.Load()
}

// Configure replaces the process-wide Binder with one backed by the cache
// described by cfg. Only the first call has an effect until Reset.
func Configure(cfg options.Config, opts ...Option) error {
	configureMu.Lock()
	defer configureMu.Unlock()

	if configured {
		return nil
	}

	ns, err := cfg.OpenCache()
	if err != nil {
		return fmt.Errorf("configure binder: %w", err)
	}

	b := NewBinder(append([]Option{WithCache(ns)}, opts...)...)
	if cfg.Debug && b.logger == nil {
		b.logger = log.Default()
	}
	b.logf("bind: configured namespace=%s version=%q lifetime=%s",
		cfg.Cache.Namespace, cfg.Version, cfg.CacheLifetime())

	defaultBinder.Store(b)
	configured = true

	return nil
}

// Reset restores an unconfigured process-wide Binder and drops every
// memoized field map, pairing and access plan. The cache backend opened by
// Configure is closed.
func Reset() {
	configureMu.Lock()
	defer configureMu.Unlock()

	prev := Default()
	prev.Reset()
	if configured {
		if err := prev.cache.Close(); err != nil {
			prev.logf("bind: close cache: %v", err)
		}
	}
	analyze.Default().Reset()
	defaultBinder.Store(NewBinder())
	configured = false
}

// Sync binds source into target with the process-wide Binder.
func Sync(target, source any) error {
	return Default().Sync(target, source)
}

// New creates a V from source with b, as Construct does. A nil b selects the
// process-wide Binder.
func New[V any](b *Binder, source any) (*V, error) {
	if b == nil {
		b = Default()
	}

	v, err := b.Construct(reflect.TypeFor[V](), source)
	if err != nil {
		return nil, err
	}

	return v.(*V), nil
}
