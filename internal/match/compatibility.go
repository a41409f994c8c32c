package match

import (
	"reflect"

	"view-binder/internal/analyze"
	"view-binder/internal/common"
)

// Verdict is the outcome of a compatibility check.
type Verdict int

const (
	// VerdictRejected means the pair is excluded from binding.
	VerdictRejected Verdict = iota
	// VerdictBuiltin means the target is a builtin and some source member is too.
	// The real type check is deferred to the write.
	VerdictBuiltin
	// VerdictConstructible means the target view is constructed from the source value.
	VerdictConstructible
	// VerdictAssignable means some source member is assignable to the named target.
	VerdictAssignable
)

const (
	VerdictRejectedStr      = "rejected"
	VerdictBuiltinStr       = "builtin"
	VerdictConstructibleStr = "constructible"
	VerdictAssignableStr    = "assignable"
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictRejected:
		return VerdictRejectedStr
	case VerdictBuiltin:
		return VerdictBuiltinStr
	case VerdictConstructible:
		return VerdictConstructibleStr
	case VerdictAssignable:
		return VerdictAssignableStr
	default:
		return common.UnknownStr
	}
}

// Accepted reports whether the pair may be bound.
func (v Verdict) Accepted() bool {
	return v != VerdictRejected
}

// Result contains detailed information about one compatibility check.
type Result struct {
	Verdict    Verdict
	Reason     string // Human-readable explanation
	TargetType string
	SourceType string
}

// Resolver applies the compatibility rules. The constructible predicate
// names the view families that are built from any source value.
type Resolver struct {
	constructible func(reflect.Type) bool
}

// NewResolver creates a Resolver. A nil predicate treats no type as constructible.
func NewResolver(constructible func(reflect.Type) bool) *Resolver {
	if constructible == nil {
		constructible = func(reflect.Type) bool { return false }
	}

	return &Resolver{constructible: constructible}
}

// IsAssignable reports whether a value declared as source may be bound into
// a field declared as target.
func (r *Resolver) IsAssignable(target, source analyze.TypeRef) bool {
	return r.Check(target, source).Verdict.Accepted()
}

// Check evaluates, in order: ambiguous targets, builtin looseness,
// constructible views, then named assignability.
func (r *Resolver) Check(target, source analyze.TypeRef) Result {
	res := Result{
		Verdict:    VerdictRejected,
		TargetType: target.String(),
		SourceType: source.String(),
	}

	switch target.Kind {
	case analyze.TypeKindUnion:
		res.Reason = "union targets are not supported"
		return res

	case analyze.TypeKindUnresolved:
		res.Reason = "target has no declared type"
		return res

	case analyze.TypeKindBuiltin:
		for _, m := range source.Flatten() {
			if m.Kind == analyze.TypeKindBuiltin {
				res.Verdict = VerdictBuiltin
				res.Reason = "source declares a builtin"
				return res
			}
		}
		res.Reason = "source declares no builtin"
		return res

	case analyze.TypeKindNamed:
		if r.constructible(target.Type) {
			res.Verdict = VerdictConstructible
			res.Reason = "target view is constructed from the source value"
			return res
		}
		for _, m := range source.Flatten() {
			if assignable(m, target.Type) {
				res.Verdict = VerdictAssignable
				res.Reason = "source " + m.String() + " is assignable to target"
				return res
			}
		}
		res.Reason = "no source type is assignable to target"
		return res
	}

	res.Reason = "unknown target kind"
	return res
}

func assignable(source analyze.TypeRef, target reflect.Type) bool {
	if source.Type == nil || source.Kind == analyze.TypeKindUnresolved {
		return false
	}
	if source.Type.AssignableTo(target) {
		return true
	}

	// methods declared on the pointer receiver still satisfy interface targets
	return target.Kind() == reflect.Interface && reflect.PointerTo(source.Type).Implements(target)
}
