package analyze

import (
	"reflect"
	"strings"
)

// TagKey is the struct tag consulted for binding options.
const TagKey = "bind"

// TagOptions are the parsed contents of a `bind` struct tag.
//
//	Items view.Iterable[view.View] `bind:"lines,elem=OrderLineView"`
//	Secret string                  `bind:"-"`
type TagOptions struct {
	Name string // Property name override
	Skip bool   // Field excluded from binding
	Elem string // Registered element view name for collection views
}

// ParseTag parses the `bind` key of tag.
func ParseTag(tag reflect.StructTag) TagOptions {
	raw, ok := tag.Lookup(TagKey)
	if !ok {
		return TagOptions{}
	}
	if raw == "-" {
		return TagOptions{Skip: true}
	}

	parts := strings.Split(raw, ",")
	opts := TagOptions{Name: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(p), "=")
		if key == "elem" {
			opts.Elem = value
		}
	}

	return opts
}
