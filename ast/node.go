// Package ast defines the macrolang Abstract Syntax Tree: a closed,
// tagged set of node variants plus read-only and mutating traversal
// contracts (see Visitor and MutatingVisitor in visitor.go).
//
// Grounded on original_source/src/visitor.rs's AstNode enum (ported from
// a Rust sum type to a Go interface implemented by a closed set of
// structs) and on sqlparser.Create/Declare/Unparsed for the general
// shape of "small value structs, each carrying a span."
package ast

import (
	"strings"

	"github.com/embedlang/macrolang/span"
)

// Node is implemented by every AST node variant. The set of
// implementations is closed: Program, Text, FunctionCall, JavaScript,
// Escaped.
type Node interface {
	// Span returns the node's byte span in the outer source.
	Span() span.Span
	node()
}

// Program is the root of every parse: an ordered sequence of nodes
// whose span always covers [0, len(source)).
type Program struct {
	Body     []Node
	SpanData span.Span
}

func (p *Program) Span() span.Span { return p.SpanData }
func (*Program) node()             {}

// Text is a literal run, after escape resolution.
type Text struct {
	Content  string
	SpanData span.Span
}

func (t *Text) Span() span.Span { return t.SpanData }
func (*Text) node()             {}

// JavaScript is a host-expression payload between ${ and its matching }.
type JavaScript struct {
	Code     string
	SpanData span.Span
}

func (j *JavaScript) Span() span.Span { return j.SpanData }
func (*JavaScript) node()             {}

// Escaped is a literal region introduced by one of the reserved
// escape-function names (c, C, escape).
type Escaped struct {
	Content  string
	SpanData span.Span
}

func (e *Escaped) Span() span.Span { return e.SpanData }
func (*Escaped) node()             {}

// Modifiers carries the optional modifier run that may precede a
// function call's name: silent (!), negated (#), and count (@[...]).
// The three are mutually independent and order-insensitive in meaning,
// but SpanData preserves the order they actually occupied in source.
type Modifiers struct {
	Silent  bool
	Negated bool
	Count   *string
	// SpanData is nil when the modifier run was empty.
	SpanData *span.Span
}

// Empty reports whether no modifier atom was present.
func (m Modifiers) Empty() bool {
	return !m.Silent && !m.Negated && m.Count == nil
}

// Argument is one element of a function call's bracketed argument list:
// an ordered sequence of child nodes plus the span of the argument's
// text between separators.
type Argument struct {
	Parts    []Node
	SpanData span.Span
}

func (a Argument) Span() span.Span { return a.SpanData }

// IsEmpty reports whether every child is a whitespace-only Text node,
// which is the spec's definition of an "empty" argument.
func (a Argument) IsEmpty() bool {
	for _, p := range a.Parts {
		t, ok := p.(*Text)
		if !ok {
			return false
		}
		if strings.TrimSpace(t.Content) != "" {
			return false
		}
	}
	return true
}

// FunctionCall is a $-introduced construct: optional modifiers, a name,
// and optionally a bracketed argument list.
//
// Span includes the leading '$'; FullSpan excludes it (runs from the
// start of the modifier run, or the name if no modifiers, to the end of
// the name or the closing ']').  Modifiers.SpanData and ArgsSpan are
// non-nil iff the corresponding syntax was present at the call site;
// NameSpan is always set.
type FunctionCall struct {
	Name         string
	NameSpan     span.Span
	Modifiers    Modifiers
	Args         []Argument // nil iff no argument list was present
	ArgsSpan     *span.Span
	FullSpanData span.Span
	SpanData     span.Span
}

func (f *FunctionCall) Span() span.Span { return f.SpanData }
func (*FunctionCall) node()             {}

// FullSpan excludes the leading '$'; Span (the interface method) is the
// node's full span including it.
func (f *FunctionCall) FullSpan() span.Span { return f.FullSpanData }

// HasArgs reports whether a bracketed argument list syntactically
// appeared at this call site (as opposed to having zero arguments
// inside an empty bracket pair, which is still "has args").
func (f *FunctionCall) HasArgs() bool { return f.Args != nil }
