package accessor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-binder/internal/analyze"
)

// stubAccessor fails every read with err.
type stubAccessor struct {
	err      error
	readable bool
	writes   int
}

func (s *stubAccessor) Get(any, string) (any, error) { return nil, s.err }
func (s *stubAccessor) Set(any, string, any) error   { s.writes++; return s.err }
func (s *stubAccessor) IsReadable(any, string) bool  { return s.readable }
func (s *stubAccessor) IsWritable(any, string) bool  { return false }

func newResilient() *Resilient {
	meta := analyze.NewCache()
	return NewResilient(NewConventional(WithMetadata(meta)), meta)
}

func TestResilient_FallbackReadsPrivateField(t *testing.T) {
	r := newResilient()
	u := newUser()

	got, err := r.Get(u, "password")
	require.Error(t, err, "a failing getter is not a visibility problem")
	assert.Nil(t, got)

	got, err = r.Get(u, "revision")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = r.Get(*u, "revision")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	p := product{cost: 42}
	got, err = r.Get(p, "cost")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestResilient_FallbackNilEmbedded(t *testing.T) {
	r := newResilient()

	got, err := r.Get(&user{}, "revision")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestResilient_MatchingInaccessibleIsIntercepted(t *testing.T) {
	meta := analyze.NewCache()
	stub := &stubAccessor{err: &Error{
		Kind:     KindInaccessible,
		Op:       OpRead,
		Type:     "view-binder/accessor.product",
		Property: "cost",
		Err:      ErrInaccessible,
	}}
	r := NewResilient(stub, meta)

	got, err := r.Get(&product{cost: 5}, "cost")
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	// an inaccessible error naming a different type is not ours to recover
	stub.err = &Error{Kind: KindInaccessible, Op: OpRead, Type: "other.product", Property: "cost", Err: ErrInaccessible}
	_, err = r.Get(&product{cost: 5}, "cost")
	assert.Same(t, stub.err, err)

	stub.err = &Error{Kind: KindInaccessible, Op: OpRead, Type: "view-binder/accessor.product", Property: "price", Err: ErrInaccessible}
	_, err = r.Get(&product{cost: 5}, "cost")
	assert.Same(t, stub.err, err)
}

func TestResilient_UnrelatedErrorIsReturnedUnchanged(t *testing.T) {
	meta := analyze.NewCache()
	boom := errors.New("boom")
	stub := &stubAccessor{err: boom}
	r := NewResilient(stub, meta)

	_, err := r.Get(&product{cost: 5}, "cost")
	assert.Same(t, boom, err)

	runtimeErr := &Error{Kind: KindRuntime, Op: OpRead, Property: "cost", Err: boom}
	stub.err = runtimeErr
	_, err = r.Get(&product{cost: 5}, "cost")
	assert.Same(t, runtimeErr, err)
}

func TestResilient_NoFieldReturnsOriginalError(t *testing.T) {
	r := newResilient()

	_, err := r.Get(newUser(), "nothing")
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindNoSuchProperty, ae.Kind)
	assert.Equal(t, "nothing", ae.Property)

	m := map[string]int{}
	_, err = r.Get(m, "k")
	assert.Equal(t, KindNoSuchProperty, KindOf(err))
}

func TestResilient_WritesNeverFallBack(t *testing.T) {
	r := newResilient()
	u := newUser()

	err := r.Set(u, "revision", 9)
	assert.Equal(t, KindInaccessible, KindOf(err))
	assert.Equal(t, 3, u.revision)

	stub := &stubAccessor{err: errors.New("nope")}
	err = NewResilient(stub, nil).Set(u, "revision", 9)
	assert.EqualError(t, err, "nope")
	assert.Equal(t, 1, stub.writes)
}

func TestResilient_Readability(t *testing.T) {
	r := newResilient()
	u := newUser()

	assert.True(t, r.IsReadable(u, "revision"))
	assert.False(t, r.IsStrictlyReadable(u, "revision"))
	assert.True(t, r.IsStrictlyReadable(u, "ID"))
	assert.True(t, r.IsWritable(u, "revision"))
	assert.False(t, r.IsReadable(u, "nothing"))
	assert.False(t, r.IsReadable(42, "x"))
}

func TestResilient_Placeholders(t *testing.T) {
	r := newResilient()

	loads := 0
	d := Defer(func() (*product, error) {
		loads++
		return &product{SKU: "p-1", cost: 4}, nil
	})
	require.False(t, d.Materialized())

	got, err := r.Get(d, "SKU")
	require.NoError(t, err)
	assert.Equal(t, "p-1", got)
	assert.True(t, d.Materialized())

	got, err = r.Get(d, "cost")
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	require.NoError(t, r.Set(d, "SKU", "p-2"))
	p, err := d.Get()
	require.NoError(t, err)
	assert.Equal(t, "p-2", p.SKU)
	assert.Equal(t, 1, loads)

	assert.True(t, r.IsStrictlyReadable(d, "SKU"))
}

func TestResilient_PlaceholderLoadFailure(t *testing.T) {
	r := newResilient()
	boom := errors.New("db down")
	d := Defer(func() (*product, error) { return nil, boom })

	_, err := r.Get(d, "SKU")
	require.Equal(t, KindRuntime, KindOf(err))
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, boom)

	err = r.Set(d, "SKU", "x")
	assert.ErrorIs(t, err, boom)
	assert.False(t, r.IsReadable(d, "SKU"))
}

func TestResolve(t *testing.T) {
	v, err := Resolve(42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	var nilDeferred *Deferred[product]
	v, err = Resolve(nilDeferred)
	require.NoError(t, err)
	assert.Nil(t, v)

	inner := Loaded(&product{SKU: "x"})
	outer := Defer(func() (*Deferred[product], error) { return inner, nil })
	v, err = Resolve(outer)
	require.NoError(t, err)
	assert.Equal(t, &product{SKU: "x"}, v)

	empty := Defer[product](nil)
	v, err = Resolve(empty)
	require.NoError(t, err)
	assert.Equal(t, &product{}, v)
}

func TestKindAndOp_String(t *testing.T) {
	assert.Equal(t, "no-such-property", KindNoSuchProperty.String())
	assert.Equal(t, "runtime", KindRuntime.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, "Kind(6)", Kind(6).String())
	assert.Equal(t, "read", OpRead.String())
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "unknown", Op(7).String())
}
