package bind

import (
	"errors"
)

var (
	ErrInvalidTarget     = errors.New("target must be a non-nil pointer to a struct")
	ErrNilSource         = errors.New("source is nil")
	ErrAmbiguousElement  = errors.New("collection element type is ambiguous")
	ErrUnresolvedElement = errors.New("collection element type is not registered")
	ErrNotIterable       = errors.New("source value is not a slice, array or sequence")
)

// ConstructionError reports a nested view that could not be built.
type ConstructionError struct {
	Pair  string // "target <- source"
	Field string // target property
	Elem  string // element annotation or type, if any
	Err   error
}

func (e *ConstructionError) Error() string {
	msg := "cannot construct " + e.Field + " [" + e.Pair + "]"
	if e.Elem != "" {
		msg += " elem " + e.Elem
	}

	return msg + ": " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
