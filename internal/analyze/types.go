package analyze

import (
	"fmt"
	"reflect"
	"strings"

	"view-binder/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "view-binder/warehouse"
	Name    string // e.g., "Order"
}

// IDOf returns the TypeID of t. Unnamed types are identified by their
// literal spelling.
func IDOf(t reflect.Type) TypeID {
	if t == nil {
		return TypeID{Name: "<nil>"}
	}
	if t.Name() == "" {
		return TypeID{Name: t.String()}
	}

	return TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}

// FlightKey identifies t itself rather than its name. Distinct types sharing
// a TypeID, such as function-local types, get distinct keys.
func FlightKey(t reflect.Type) string {
	return fmt.Sprintf("%p", t)
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Short returns the TypeID qualified by the package alias only (e.g., "warehouse.Order").
func (t TypeID) Short() string {
	if alias := common.PkgAlias(t.PkgPath); alias != "" {
		return alias + "." + t.Name
	}

	return t.Name
}

// TypeKind is the closed set of declared-type variants.
type TypeKind int

const (
	TypeKindUnresolved TypeKind = iota // no usable declared type: any, func, chan
	TypeKindBuiltin                    // scalars, named scalars, slices, arrays, maps
	TypeKindNamed                      // structs and non-empty interfaces
	TypeKindUnion                      // interface registered as a sealed union
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindUnresolved:
		return "unresolved"
	case TypeKindBuiltin:
		return "builtin"
	case TypeKindNamed:
		return "named"
	case TypeKindUnion:
		return "union"
	default:
		return common.UnknownStr
	}
}

// TypeRef describes the declared type of a field.
type TypeRef struct {
	Kind     TypeKind
	Type     reflect.Type // Declared type with pointer levels removed; nil when unresolved
	Members  []TypeRef    // Union members
	Nullable bool         // Declared through a pointer
}

// Flatten returns the union members, or the ref itself for any other kind.
func (r TypeRef) Flatten() []TypeRef {
	if r.Kind == TypeKindUnion {
		return r.Members
	}

	return []TypeRef{r}
}

// String returns a human-readable representation of the TypeRef.
func (r TypeRef) String() string {
	var s string
	switch r.Kind {
	case TypeKindUnresolved:
		if r.Type == nil {
			return "<unresolved>"
		}
		s = r.Type.String()
	case TypeKindUnion:
		parts := make([]string, 0, len(r.Members))
		for _, m := range r.Members {
			parts = append(parts, m.String())
		}
		s = strings.Join(parts, "|")
	default:
		s = r.Type.String()
	}

	if r.Nullable {
		return "?" + s
	}

	return s
}

// Visibility mirrors the access level of a field within its type hierarchy.
type Visibility int

const (
	VisibilityPublic    Visibility = iota // exported
	VisibilityProtected                   // unexported, promoted from an embedded struct
	VisibilityPrivate                     // unexported, declared on the struct itself
)

// String returns a human-readable representation of the Visibility.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityProtected:
		return "protected"
	case VisibilityPrivate:
		return "private"
	default:
		return common.UnknownStr
	}
}

// FieldDescriptor describes a bindable struct field.
type FieldDescriptor struct {
	Name       string            // Property name used for pairing
	GoName     string            // Go field name
	Type       TypeRef           // Classified declared type
	Declared   reflect.Type      // Raw declared type
	Visibility Visibility        // Access level
	Owner      TypeID            // Struct that declares the field
	Index      []int             // Index path from the described struct
	Tag        reflect.StructTag // Raw struct tag
	Options    TagOptions        // Parsed `bind` tag
}

// Exported returns true if the field is part of the public surface.
func (f *FieldDescriptor) Exported() bool {
	return f.Visibility == VisibilityPublic
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldDescriptor) JSONName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name
		}
	}

	return f.GoName
}

// GetTag returns the value of the specified tag.
func (f *FieldDescriptor) GetTag(key string) string {
	return f.Tag.Get(key)
}

// FieldMap holds the fields of one struct, most-derived declaration first.
type FieldMap struct {
	ID     TypeID
	Type   reflect.Type
	names  []string
	fields map[string]*FieldDescriptor
}

func newFieldMap(t reflect.Type) *FieldMap {
	return &FieldMap{
		ID:     IDOf(t),
		Type:   t,
		fields: make(map[string]*FieldDescriptor),
	}
}

// add registers f unless a more derived field already claimed its name. At
// equal depth an exported field displaces an unexported one, so `name` and
// `Name` declared side by side resolve to Name whatever their order.
func (m *FieldMap) add(f *FieldDescriptor) bool {
	if prev, ok := m.fields[f.Name]; ok {
		if len(prev.Index) != len(f.Index) || prev.Exported() || !f.Exported() {
			return false
		}
		m.fields[f.Name] = f

		return true
	}
	m.fields[f.Name] = f
	m.names = append(m.names, f.Name)

	return true
}

// Get returns the field named name, or nil. A name that misses is retried
// with its first rune upper-cased, so "email" finds the property "Email".
func (m *FieldMap) Get(name string) *FieldDescriptor {
	if f, ok := m.fields[name]; ok {
		return f
	}

	return m.fields[common.Exported(name)]
}

// Names returns the property names in order.
func (m *FieldMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Fields returns the descriptors in order.
func (m *FieldMap) Fields() []*FieldDescriptor {
	out := make([]*FieldDescriptor, 0, len(m.names))
	for _, n := range m.names {
		out = append(out, m.fields[n])
	}

	return out
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	return len(m.names)
}
