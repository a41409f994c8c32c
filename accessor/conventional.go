package accessor

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"view-binder/internal/analyze"
	"view-binder/primitive"
	"view-binder/store"
)

// Conventional accesses properties through their public surface only.
// Resolved access plans are memoized per (type, property, operation) and,
// when a cache is configured, persisted across processes.
type Conventional struct {
	meta   *analyze.Cache
	cache  *store.Namespaced
	logger *log.Logger
	plans  sync.Map // planKey -> plan
}

// Option configures a Conventional accessor.
type Option func(*Conventional)

// WithMetadata sets the metadata cache used to find fields.
func WithMetadata(meta *analyze.Cache) Option {
	return func(c *Conventional) { c.meta = meta }
}

// WithCache persists access plans to cache.
func WithCache(cache *store.Namespaced) Option {
	return func(c *Conventional) { c.cache = cache }
}

// WithLogger reports cache failures to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Conventional) { c.logger = logger }
}

// NewConventional creates a Conventional accessor.
func NewConventional(opts ...Option) *Conventional {
	c := &Conventional{meta: analyze.Default()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Reset drops every memoized plan. Persisted plans are kept.
func (c *Conventional) Reset() {
	c.plans.Clear()
}

func (c *Conventional) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func (c *Conventional) plan(t reflect.Type, prop string, op Op) plan {
	k := planKey{t: t, prop: prop, op: op}
	if p, ok := c.plans.Load(k); ok {
		return p.(plan)
	}

	p, ok := c.loadPlan(k)
	if !ok {
		p = resolvePlan(c.meta, k)
		c.storePlan(k, p)
	}
	c.plans.Store(k, p)

	return p
}

func (c *Conventional) loadPlan(k planKey) (plan, bool) {
	if !c.cache.Enabled() {
		return plan{}, false
	}

	raw, ok, err := c.cache.Get(k.String())
	if err != nil {
		c.logf("accessor: load %s: %v", k, err)
		return plan{}, false
	}
	if !ok {
		return plan{}, false
	}

	var p plan
	if err := msgpack.Unmarshal(raw, &p); err != nil {
		c.logf("accessor: decode %s: %v", k, err)
		return plan{}, false
	}
	if !p.valid(k) {
		return plan{}, false
	}

	return p, true
}

func (c *Conventional) storePlan(k planKey, p plan) {
	if !c.cache.Enabled() {
		return
	}

	raw, err := msgpack.Marshal(&p)
	if err == nil {
		err = c.cache.Put(k.String(), raw)
	}
	if err != nil {
		c.logf("accessor: store %s: %v", k, err)
	}
}

// target dereferences obj down to a struct or map.
func target(obj any, op Op, prop string) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return v, &Error{Kind: KindUnexpectedType, Op: op, Property: prop, Err: ErrNilObject}
	}

	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, &Error{Kind: KindUnexpectedType, Op: op, Type: typeName(v.Type()), Property: prop, Err: ErrNilObject}
		}
		v = v.Elem()
	}

	switch {
	case v.Kind() == reflect.Struct:
		return v, nil
	case v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String:
		return v, nil
	default:
		return v, &Error{Kind: KindUnexpectedType, Op: op, Type: typeName(v.Type()), Property: prop, Err: ErrUnsupportedType}
	}
}

func typeName(t reflect.Type) string {
	return analyze.IDOf(analyze.RuntimeType(t)).String()
}

// addressable returns v itself when addressable, else an addressable copy.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)

	return cp
}

func (c *Conventional) Get(obj any, prop string) (any, error) {
	v, err := target(obj, OpRead, prop)
	if err != nil {
		return nil, err
	}
	if v.Kind() == reflect.Map {
		return getKey(v, prop)
	}

	t := v.Type()
	p := c.plan(t, prop, OpRead)
	switch p.Kind {
	case planField:
		f, err := v.FieldByIndexErr(p.Index)
		if err != nil {
			// promoted through a nil embedded pointer
			return reflect.Zero(t.FieldByIndex(p.Index).Type).Interface(), nil
		}
		return f.Interface(), nil

	case planMethod:
		out := addressable(v).Addr().MethodByName(p.Name).Call(nil)
		if p.Errors && !out[1].IsNil() {
			return nil, &Error{Kind: KindRuntime, Op: OpRead, Type: typeName(t), Property: prop, Err: out[1].Interface().(error)}
		}
		return out[0].Interface(), nil

	default:
		return nil, missing(p.Reason, OpRead, t, prop)
	}
}

func (c *Conventional) Set(obj any, prop string, value any) error {
	v, err := target(obj, OpWrite, prop)
	if err != nil {
		return err
	}
	if v.Kind() == reflect.Map {
		return setKey(v, prop, value)
	}

	t := v.Type()
	if !v.CanAddr() {
		return &Error{Kind: KindUnexpectedType, Op: OpWrite, Type: typeName(t), Property: prop, Err: ErrNotAddressable}
	}

	p := c.plan(t, prop, OpWrite)
	switch p.Kind {
	case planField:
		f, err := fieldForWrite(v, p.Index)
		if err != nil {
			return &Error{Kind: KindInaccessible, Op: OpWrite, Type: typeName(t), Property: prop, Err: err}
		}
		if err := primitive.Assign(f, reflect.ValueOf(value)); err != nil {
			return &Error{Kind: KindInvalidArgument, Op: OpWrite, Type: typeName(t), Property: prop, Err: err}
		}
		return nil

	case planMethod:
		m := v.Addr().MethodByName(p.Name)
		arg := reflect.New(m.Type().In(0)).Elem()
		if err := primitive.Assign(arg, reflect.ValueOf(value)); err != nil {
			return &Error{Kind: KindInvalidArgument, Op: OpWrite, Type: typeName(t), Property: prop, Err: err}
		}
		out := m.Call([]reflect.Value{arg})
		if p.Errors && !out[0].IsNil() {
			return &Error{Kind: KindRuntime, Op: OpWrite, Type: typeName(t), Property: prop, Err: out[0].Interface().(error)}
		}
		return nil

	default:
		return missing(p.Reason, OpWrite, t, prop)
	}
}

func (c *Conventional) IsReadable(obj any, prop string) bool {
	v, err := target(obj, OpRead, prop)
	if err != nil {
		return false
	}
	if v.Kind() == reflect.Map {
		return v.MapIndex(mapKey(v, prop)).IsValid()
	}

	return c.plan(v.Type(), prop, OpRead).Kind != planNone
}

func (c *Conventional) IsWritable(obj any, prop string) bool {
	v, err := target(obj, OpWrite, prop)
	if err != nil {
		return false
	}
	if v.Kind() == reflect.Map {
		return !v.IsNil() || v.CanSet()
	}

	return v.CanAddr() && c.plan(v.Type(), prop, OpWrite).Kind != planNone
}

func missing(kind Kind, op Op, t reflect.Type, prop string) error {
	err := ErrNoSuchProperty
	if kind == KindInaccessible {
		err = ErrInaccessible
	}

	return &Error{Kind: kind, Op: op, Type: typeName(t), Property: prop, Err: err}
}

// fieldForWrite walks index, allocating nil embedded pointers on the way.
func fieldForWrite(v reflect.Value, index []int) (reflect.Value, error) {
	for n, i := range index {
		if n > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("%w: nil pointer to unexported %s", ErrInaccessible, v.Type().Elem())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}

	return v, nil
}

func mapKey(m reflect.Value, prop string) reflect.Value {
	return reflect.ValueOf(prop).Convert(m.Type().Key())
}

func getKey(m reflect.Value, prop string) (any, error) {
	v := m.MapIndex(mapKey(m, prop))
	if !v.IsValid() {
		return nil, &Error{Kind: KindNoSuchProperty, Op: OpRead, Type: typeName(m.Type()), Property: prop, Err: ErrNoSuchProperty}
	}

	return v.Interface(), nil
}

func setKey(m reflect.Value, prop string, value any) error {
	if m.IsNil() {
		if !m.CanSet() {
			return &Error{Kind: KindUnexpectedType, Op: OpWrite, Type: typeName(m.Type()), Property: prop, Err: ErrNilObject}
		}
		m.Set(reflect.MakeMap(m.Type()))
	}

	elem := reflect.New(m.Type().Elem()).Elem()
	if err := primitive.Assign(elem, reflect.ValueOf(value)); err != nil {
		return &Error{Kind: KindInvalidArgument, Op: OpWrite, Type: typeName(m.Type()), Property: prop, Err: fmt.Errorf("key %q: %w", prop, err)}
	}
	m.SetMapIndex(mapKey(m, prop), elem)

	return nil
}

// IsNotFound reports whether err says the property does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoSuchProperty)
}
