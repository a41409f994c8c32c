package analyze

import (
	"errors"
)

var (
	ErrNilType      = errors.New("type is nil")
	ErrNotStruct    = errors.New("type is not a struct")
	ErrNotInterface = errors.New("union type must be an interface")
	ErrNotMember    = errors.New("union member does not implement the union interface")
)

// MetadataError reports a type that cannot be introspected.
type MetadataError struct {
	Type string
	Err  error
}

func (e *MetadataError) Error() string {
	return "cannot introspect " + e.Type + ": " + e.Err.Error()
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}
