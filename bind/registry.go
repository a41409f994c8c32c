package bind

import (
	"fmt"
	"reflect"
	"sync"
)

var registry sync.Map // string -> reflect.Type

// Register names V so collection fields can refer to it with
// `bind:",elem=name"`. An empty name registers V under its type name.
func Register[V any](name string) {
	RegisterType(name, reflect.TypeFor[V]())
}

// RegisterType is Register for a reflect.Type. Pointer types are
// dereferenced. Registering a different type under a taken name panics.
func RegisterType(name string, t reflect.Type) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name == "" {
		name = t.Name()
	}

	if prev, loaded := registry.LoadOrStore(name, t); loaded && prev.(reflect.Type) != t {
		panic(fmt.Sprintf("bind: %q already registered as %s", name, prev))
	}
}

// Lookup returns the type registered under name.
func Lookup(name string) (reflect.Type, bool) {
	t, ok := registry.Load(name)
	if !ok {
		return nil, false
	}

	return t.(reflect.Type), true
}
