package analyze

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"view-binder/internal/common"
	"view-binder/primitive"
)

// Cache memoizes field maps per struct type. Struct shapes never change at
// runtime, so entries live until Reset.
type Cache struct {
	fields sync.Map // reflect.Type -> *FieldMap
	unions sync.Map // reflect.Type -> []reflect.Type
	group  singleflight.Group
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

var defaultCache = NewCache()

// Default returns the process-wide cache.
func Default() *Cache {
	return defaultCache
}

// Reset drops every memoized field map. Union registrations are kept.
func (c *Cache) Reset() {
	c.fields.Clear()
}

// RegisterUnion declares iface as a sealed union of members. Fields declared
// with iface resolve to a union TypeRef instead of a named one.
func (c *Cache) RegisterUnion(iface reflect.Type, members ...reflect.Type) error {
	if iface == nil {
		return &MetadataError{Type: "<nil>", Err: ErrNilType}
	}
	if iface.Kind() != reflect.Interface {
		return &MetadataError{Type: IDOf(iface).String(), Err: ErrNotInterface}
	}

	for _, m := range members {
		if m == nil || !m.Implements(iface) {
			return &MetadataError{
				Type: IDOf(iface).String(),
				Err:  fmt.Errorf("%w: %s", ErrNotMember, IDOf(m)),
			}
		}
	}

	c.unions.Store(iface, slices.Clone(members))
	// previously classified fields may now resolve differently
	c.Reset()

	return nil
}

// RuntimeType returns the dynamic type behind v with pointer levels removed.
func RuntimeType(v any) reflect.Type {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

// Fields returns the field map of the struct type t (pointers are dereferenced).
func (c *Cache) Fields(t reflect.Type) (*FieldMap, error) {
	t = RuntimeType(t)
	if t == nil {
		return nil, &MetadataError{Type: "<nil>", Err: ErrNilType}
	}

	if fm, ok := c.fields.Load(t); ok {
		return fm.(*FieldMap), nil
	}

	if t.Kind() != reflect.Struct {
		return nil, &MetadataError{Type: IDOf(t).String(), Err: ErrNotStruct}
	}

	v, err, _ := c.group.Do(FlightKey(t), func() (any, error) {
		if fm, ok := c.fields.Load(t); ok {
			return fm, nil
		}
		fm := c.build(t)
		c.fields.Store(t, fm)

		return fm, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*FieldMap), nil
}

// Field returns the descriptor of name on the type of v, which may be a
// reflect.Type or an instance. A missing field yields (nil, nil).
func (c *Cache) Field(v any, name string) (*FieldDescriptor, error) {
	fm, err := c.Fields(RuntimeType(v))
	if err != nil {
		return nil, err
	}

	return fm.Get(name), nil
}

// Ref classifies a declared field type.
func (c *Cache) Ref(t reflect.Type) TypeRef {
	if t == nil {
		return TypeRef{Kind: TypeKindUnresolved}
	}

	switch t.Kind() {
	case reflect.Ptr:
		ref := c.Ref(t.Elem())
		ref.Nullable = true
		return ref

	case reflect.Interface:
		if members, ok := c.unions.Load(t); ok {
			ref := TypeRef{Kind: TypeKindUnion, Type: t}
			for _, m := range members.([]reflect.Type) {
				ref.Members = append(ref.Members, c.Ref(m))
			}
			return ref
		}
		if t.NumMethod() == 0 {
			return TypeRef{Kind: TypeKindUnresolved, Type: t}
		}
		return TypeRef{Kind: TypeKindNamed, Type: t}

	case reflect.Struct:
		return TypeRef{Kind: TypeKindNamed, Type: t}

	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return TypeRef{Kind: TypeKindUnresolved, Type: t}

	default:
		if primitive.FromReflectType(t).IsBuiltin() {
			return TypeRef{Kind: TypeKindBuiltin, Type: t}
		}
		return TypeRef{Kind: TypeKindUnresolved, Type: t}
	}
}

// build collects the visible fields of t. Fields are visited shallowest
// first so a declaration on a more derived struct claims its property name
// before any embedded ancestor can.
func (c *Cache) build(t reflect.Type) *FieldMap {
	visible := reflect.VisibleFields(t)
	slices.SortStableFunc(visible, func(a, b reflect.StructField) int {
		return cmp.Compare(len(a.Index), len(b.Index))
	})

	fm := newFieldMap(t)
	for _, sf := range visible {
		if sf.Anonymous && isComposition(sf.Type) {
			continue
		}

		opts := ParseTag(sf.Tag)
		if opts.Skip {
			continue
		}

		name := opts.Name
		if name == "" {
			name = common.Exported(sf.Name)
		}

		fm.add(&FieldDescriptor{
			Name:       name,
			GoName:     sf.Name,
			Type:       c.Ref(sf.Type),
			Declared:   sf.Type,
			Visibility: visibility(sf),
			Owner:      IDOf(owner(t, sf.Index)),
			Index:      sf.Index,
			Tag:        sf.Tag,
			Options:    opts,
		})
	}

	return fm
}

// isComposition reports whether an embedded field only contributes members.
func isComposition(t reflect.Type) bool {
	t = RuntimeType(t)

	return t.Kind() == reflect.Struct || t.Kind() == reflect.Interface
}

func visibility(sf reflect.StructField) Visibility {
	switch {
	case sf.IsExported():
		return VisibilityPublic
	case len(sf.Index) > 1:
		return VisibilityProtected
	default:
		return VisibilityPrivate
	}
}

// owner walks the index path down to the struct that declares the field.
func owner(t reflect.Type, index []int) reflect.Type {
	for _, i := range index[:len(index)-1] {
		t = RuntimeType(t.Field(i).Type)
	}

	return t
}
