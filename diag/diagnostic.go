// Package diag holds the structured diagnostics the parser emits.
// Grounded on sqlparser.Error (teacher), generalized from line/col
// positions to byte spans.
package diag

import (
	"fmt"

	"github.com/embedlang/macrolang/span"
)

// ErrorKind classifies a Diagnostic.
type ErrorKind int

const (
	// Syntax covers unmatched brackets/braces/backticks and other
	// structural recognizer failures.
	Syntax ErrorKind = iota + 1
	// ArgumentCount covers too-few/too-many arguments for a call site.
	ArgumentCount
	// EnumValue covers an argument whose literal value isn't in the
	// schema's (or referenced) enumeration.
	EnumValue
	// UnknownFunction covers a call site whose name isn't registered.
	UnknownFunction
	// BracketUsage covers a bracket policy violation (required-but-absent
	// or forbidden-but-present).
	BracketUsage
)

func (k ErrorKind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case ArgumentCount:
		return "ArgumentCount"
	case EnumValue:
		return "EnumValue"
	case UnknownFunction:
		return "UnknownFunction"
	case BracketUsage:
		return "BracketUsage"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single structured error produced during parsing or
// validation. Diagnostics never halt parsing; they accumulate alongside
// a well-formed AST.
type Diagnostic struct {
	Kind    ErrorKind
	Message string
	Span    span.Span
}

func New(kind ErrorKind, span span.Span, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s@[%d:%d]: %s", d.Kind, d.Span.Start, d.Span.End, d.Message)
}

// Error implements the error interface so a Diagnostic can be used
// wherever callers prefer to treat validation failure as an error value.
func (d Diagnostic) Error() string {
	return d.String()
}
