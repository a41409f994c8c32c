package accessor

import (
	"reflect"

	"view-binder/internal/analyze"
	"view-binder/internal/common"
)

type planKind uint8

const (
	planNone planKind = iota
	planField
	planMethod
)

// plan is the resolved way to access one property of one struct type.
type plan struct {
	Kind   planKind `msgpack:"k"`
	Name   string   `msgpack:"n"` // method name or Go field name
	Index  []int    `msgpack:"i,omitempty"`
	Errors bool     `msgpack:"e,omitempty"` // method returns a trailing error
	Reason Kind     `msgpack:"r,omitempty"` // failure kind when Kind is planNone
}

type planKey struct {
	t    reflect.Type
	prop string
	op   Op
}

func (k planKey) String() string {
	return "plan/" + analyze.IDOf(k.t).String() + "/" + k.op.String() + "/" + k.prop
}

var errorType = reflect.TypeFor[error]()

func getterNames(prop string) []string {
	x := common.Exported(prop)
	return []string{"Get" + x, x, "Is" + x, "Has" + x}
}

func setterName(prop string) string {
	return "Set" + common.Exported(prop)
}

// isGetter accepts func(recv) T and func(recv) (T, error).
func isGetter(m reflect.Type) bool {
	switch {
	case m.NumIn() != 1:
		return false
	case m.NumOut() == 1:
		return true
	case m.NumOut() == 2:
		return m.Out(1) == errorType
	default:
		return false
	}
}

// isSetter accepts func(recv, T) and func(recv, T) error.
func isSetter(m reflect.Type) bool {
	switch {
	case m.NumIn() != 2:
		return false
	case m.NumOut() == 0:
		return true
	case m.NumOut() == 1:
		return m.Out(0) == errorType
	default:
		return false
	}
}

func resolvePlan(meta *analyze.Cache, k planKey) plan {
	pt := reflect.PointerTo(k.t)

	if k.op == OpRead {
		for _, name := range getterNames(k.prop) {
			if m, ok := pt.MethodByName(name); ok && isGetter(m.Type) {
				return plan{Kind: planMethod, Name: name, Errors: m.Type.NumOut() == 2}
			}
		}
	} else {
		name := setterName(k.prop)
		if m, ok := pt.MethodByName(name); ok && isSetter(m.Type) {
			return plan{Kind: planMethod, Name: name, Errors: m.Type.NumOut() == 1}
		}
	}

	fd, err := meta.Field(k.t, k.prop)
	switch {
	case err != nil, fd == nil:
		return plan{Reason: KindNoSuchProperty}
	case !fd.Exported():
		return plan{Reason: KindInaccessible}
	default:
		return plan{Kind: planField, Name: fd.GoName, Index: fd.Index}
	}
}

// valid reports whether a decoded plan still fits t.
func (p plan) valid(k planKey) bool {
	switch p.Kind {
	case planNone:
		return p.Reason == KindNoSuchProperty || p.Reason == KindInaccessible
	case planMethod:
		m, ok := reflect.PointerTo(k.t).MethodByName(p.Name)
		if !ok {
			return false
		}
		if k.op == OpRead {
			return isGetter(m.Type) && p.Errors == (m.Type.NumOut() == 2)
		}
		return isSetter(m.Type) && p.Errors == (m.Type.NumOut() == 1)
	case planField:
		t := k.t
		for n, i := range p.Index {
			t = analyze.RuntimeType(t)
			if t.Kind() != reflect.Struct || i < 0 || i >= t.NumField() {
				return false
			}
			f := t.Field(i)
			if n == len(p.Index)-1 {
				return f.Name == p.Name && f.IsExported()
			}
			t = f.Type
		}
		return false
	default:
		return false
	}
}
