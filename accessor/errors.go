package accessor

import (
	"errors"
	"strconv"

	"view-binder/internal/common"
)

var (
	ErrNoSuchProperty  = errors.New("no such property")
	ErrInaccessible    = errors.New("property is not accessible")
	ErrNilObject       = errors.New("object is nil")
	ErrNotAddressable  = errors.New("object is not addressable")
	ErrUnsupportedType = errors.New("unsupported object type")
	ErrLoad            = errors.New("cannot load placeholder")
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind discriminates accessor failures.
type Kind int

const (
	// KindNoSuchProperty means neither an accessor method nor a field exists.
	KindNoSuchProperty Kind = iota + 1 // no-such-property
	// KindInaccessible means the field exists on Type but is unexported and no
	// accessor method exposes it.
	KindInaccessible // inaccessible
	// KindInvalidArgument means the value cannot be stored into the property.
	KindInvalidArgument // invalid-argument
	// KindUnexpectedType means the object is not a struct or string-keyed map.
	KindUnexpectedType // unexpected-type
	// KindRuntime means an accessor method or a placeholder load failed.
	KindRuntime // runtime
)

// Op is the attempted access.
type Op int

const (
	OpRead Op = iota
	OpWrite
)

func (o Op) String() string {
	switch o {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	default:
		return common.UnknownStr
	}
}

// Error describes a failed property access.
type Error struct {
	Kind     Kind
	Op       Op
	Type     string // fully qualified type of the object
	Property string
	Err      error
}

func (e *Error) Error() string {
	msg := "cannot " + e.Op.String() + " property " + strconv.Quote(e.Property)
	if e.Type != "" {
		msg += " of " + e.Type
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}

	return 0
}
