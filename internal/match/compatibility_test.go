package match

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-binder/internal/analyze"
)

type money struct{ Cents int64 }

type account struct{ ID int }

type stringer interface{ String() string }

type label string

func (l label) String() string { return string(l) }

type ptrLabel string

func (l *ptrLabel) String() string { return string(*l) }

type bound struct{ Name string }

func builtin[T any]() analyze.TypeRef {
	return analyze.TypeRef{Kind: analyze.TypeKindBuiltin, Type: reflect.TypeFor[T]()}
}

func named[T any]() analyze.TypeRef {
	return analyze.TypeRef{Kind: analyze.TypeKindNamed, Type: reflect.TypeFor[T]()}
}

func union(members ...analyze.TypeRef) analyze.TypeRef {
	return analyze.TypeRef{Kind: analyze.TypeKindUnion, Type: reflect.TypeFor[any](), Members: members}
}

var unresolved = analyze.TypeRef{Kind: analyze.TypeKindUnresolved, Type: reflect.TypeFor[any]()}

func TestVerdict_String(t *testing.T) {
	tests := []struct {
		verdict  Verdict
		expected string
	}{
		{VerdictRejected, "rejected"},
		{VerdictBuiltin, "builtin"},
		{VerdictConstructible, "constructible"},
		{VerdictAssignable, "assignable"},
		{Verdict(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.verdict.String())
		})
	}
}

func TestResolver_Check(t *testing.T) {
	r := NewResolver(func(t reflect.Type) bool { return t == reflect.TypeFor[bound]() })

	tests := []struct {
		name     string
		target   analyze.TypeRef
		source   analyze.TypeRef
		expected Verdict
	}{
		{"union target", union(builtin[int]()), builtin[int](), VerdictRejected},
		{"unresolved target", unresolved, builtin[int](), VerdictRejected},
		{"builtin identical", builtin[int](), builtin[int](), VerdictBuiltin},
		{"builtin loose float from int", builtin[float64](), builtin[int](), VerdictBuiltin},
		{"builtin loose int from string", builtin[int](), builtin[string](), VerdictBuiltin},
		{"builtin from union with builtin", builtin[string](), union(named[money](), builtin[int]()), VerdictBuiltin},
		{"builtin from named", builtin[string](), named[money](), VerdictRejected},
		{"builtin from unresolved", builtin[string](), unresolved, VerdictRejected},
		{"constructible from anything", named[bound](), named[account](), VerdictConstructible},
		{"constructible from unresolved", named[bound](), unresolved, VerdictConstructible},
		{"named identical", named[money](), named[money](), VerdictAssignable},
		{"named time", named[time.Time](), named[time.Time](), VerdictAssignable},
		{"named unrelated", named[money](), named[account](), VerdictRejected},
		{"named from builtin", named[money](), builtin[int](), VerdictRejected},
		{"named from union member", named[money](), union(builtin[int](), named[money]()), VerdictAssignable},
		{"interface implemented", named[stringer](), builtin[label](), VerdictAssignable},
		{"interface implemented by pointer", named[stringer](), builtin[ptrLabel](), VerdictAssignable},
		{"interface not implemented", named[stringer](), named[money](), VerdictRejected},
		{"named from unresolved", named[money](), unresolved, VerdictRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Check(tt.target, tt.source)
			assert.Equal(t, tt.expected, res.Verdict, res.Reason)
			assert.NotEmpty(t, res.Reason)
			assert.Equal(t, tt.expected.Accepted(), r.IsAssignable(tt.target, tt.source))
		})
	}
}

func TestResolver_NilPredicate(t *testing.T) {
	r := NewResolver(nil)

	res := r.Check(named[bound](), named[account]())
	require.Equal(t, VerdictRejected, res.Verdict)
	assert.Equal(t, "match.bound", res.TargetType)
	assert.Equal(t, "match.account", res.SourceType)
}
