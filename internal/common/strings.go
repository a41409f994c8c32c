package common

import (
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the String() rendering of out-of-range enum values.
const UnknownStr = "unknown"

// Exported returns name with its first rune upper-cased.
func Exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
