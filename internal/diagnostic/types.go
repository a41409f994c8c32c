package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"view-binder/internal/common"
)

// Codes reported by the binder.
const (
	CodePaired       = "paired"
	CodeIncompatible = "incompatible"
	CodeUnmatched    = "unmatched"
	CodeUnreadable   = "unreadable"
	CodeUnwritable   = "unwritable"
	CodeMetadata     = "metadata"
	CodeElement      = "element"
	CodeConversion   = "conversion"
)

// Diagnostics holds every diagnostic produced while explaining one type pair.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity `yaml:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `yaml:"code"`
	// Message is the human-readable description.
	Message string `yaml:"message"`
	// TypePair identifies which type pair this relates to (if any).
	TypePair string `yaml:"pair,omitempty"`
	// FieldPath identifies which property this relates to (if any).
	FieldPath string `yaml:"field,omitempty"`
	// Suggestions are near-miss property names on the other side.
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML encodes the severity by name.
func (s DiagnosticSeverity) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, typePair, fieldPath string) *Diagnostic {
	item := Diagnostic{
		Severity:  sev,
		Code:      code,
		Message:   message,
		TypePair:  typePair,
		FieldPath: fieldPath,
	}

	var list *[]Diagnostic
	switch sev {
	case DiagnosticError:
		list = &d.Errors
	case DiagnosticWarning:
		list = &d.Warnings
	default:
		list = &d.Infos
	}
	*list = append(*list, item)

	return &(*list)[len(*list)-1]
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typePair, fieldPath string) {
	d.add(DiagnosticError, code, message, typePair, fieldPath)
}

// AddWarning adds a warning diagnostic and returns it so suggestions can be attached.
func (d *Diagnostics) AddWarning(code, message, typePair, fieldPath string) *Diagnostic {
	return d.add(DiagnosticWarning, code, message, typePair, fieldPath)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typePair, fieldPath string) {
	d.add(DiagnosticInfo, code, message, typePair, fieldPath)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, most severe first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// ByCode returns the diagnostics carrying code, most severe first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic
	for _, item := range d.All() {
		if item.Code == code {
			out = append(out, item)
		}
	}

	return out
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypePair != "" {
		prefix = append(prefix, "["+d.TypePair+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}
	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
