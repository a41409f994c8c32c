// Package accessor reads and writes named properties of structs and
// string-keyed maps.
//
// Conventional honors only the public surface: getter methods (GetX, X, IsX,
// HasX), setter methods (SetX) and exported fields. Resilient decorates any
// Accessor: it materializes lazy placeholders before every access and, for
// reads only, falls back to the raw field when the conventional accessor
// reports that the property is missing or not accessible.
//
// Failures are *Error values whose Kind tells the two recoverable read
// shapes apart from everything else.
package accessor
