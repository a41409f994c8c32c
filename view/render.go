package view

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
)

// Rendered is an encoded response.
type Rendered struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// Render encodes v as a JSON response. Values that are not Responsive are
// wrapped in Data first.
func Render(v any) (*Rendered, error) {
	return RenderWith(Normalizer{}, v)
}

// RenderWith is Render with a custom Encoder.
func RenderWith(enc Encoder, v any) (*Rendered, error) {
	resp, ok := v.(Responsive)
	if !ok {
		d := NewData(v)
		resp, v = d, d
	}

	tree, err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("normalize %T: %w", v, err)
	}

	body, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}

	return &Rendered{Status: resp.Status(), Headers: resp.Headers(), Body: body}, nil
}

// Write renders v into w.
func Write(w http.ResponseWriter, v any) error {
	r, err := Render(v)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.Header().Set(k, r.Headers[k])
	}
	w.WriteHeader(r.Status)

	_, err = w.Write(r.Body)

	return err
}
