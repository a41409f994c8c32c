package view

import (
	"net/http"
	"reflect"
)

// Encoder turns a value into a tree of maps, slices and scalars.
type Encoder interface {
	Encode(v any) (any, error)
}

// Normalizable views produce their own plain representation.
type Normalizable interface {
	Normalize(enc Encoder) (any, error)
}

// Responsive views carry the status code and headers of a response.
type Responsive interface {
	Status() int
	Headers() map[string]string
}

// Bindable is implemented by structs embedding Bound.
type Bindable interface {
	bindable()
}

// Bound marks a struct as a view the binder constructs from a source value.
// Embed it; it contributes no fields.
type Bound struct{}

func (Bound) bindable() {}

// IsBindable reports whether t, or the struct it points to, embeds Bound.
func IsBindable(t reflect.Type) bool {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t != nil && t.Kind() == reflect.Struct && t.Implements(bindableType)
}

var bindableType = reflect.TypeFor[Bindable]()

// Response is the base of top-level results: status 200, JSON content.
// Embedding structs normalize as plain views.
type Response struct{}

func (Response) Status() int {
	return http.StatusOK
}

func (Response) Headers() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

// Data wraps a single value as {"data": value}.
type Data struct {
	Response
	Value any
}

// NewData wraps v.
func NewData(v any) *Data {
	return &Data{Value: v}
}

func (d *Data) Normalize(enc Encoder) (any, error) {
	v, err := enc.Encode(d.Value)
	if err != nil {
		return nil, err
	}

	return map[string]any{"data": v}, nil
}

// KeyValue places a precomputed value under one key. It is built directly
// and never bound.
type KeyValue struct {
	key   string
	value any
}

// NewKeyValue creates a KeyValue view.
func NewKeyValue(key string, value any) *KeyValue {
	return &KeyValue{key: key, value: value}
}

func (kv *KeyValue) Key() string { return kv.key }

func (kv *KeyValue) Normalize(Encoder) (any, error) {
	return map[string]any{kv.key: kv.value}, nil
}
