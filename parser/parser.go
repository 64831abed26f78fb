// Package parser implements the single-pass, span-preserving recognizer
// for embedded calls inside host source: host-block extraction (outer
// pass), the embedded-language recognizer (inner pass), and optional
// registry-backed validation.
//
// Grounded on original_source/src/parser.rs's public shape (Parser,
// ValidationConfig, AstNode) as pinned down by original_source/tests/parser.rs,
// and on sqlparser.Parser/Scanner (teacher) for the byte-cursor,
// span-carrying recursive-descent idiom.
package parser

import (
	"github.com/embedlang/macrolang/ast"
	"github.com/embedlang/macrolang/diag"
	"github.com/embedlang/macrolang/registry"
)

// Registry is the narrow read interface a Parser needs from a function
// registry. *registry.Manager satisfies it; tests can supply a fake.
type Registry interface {
	Get(name string) (*registry.Signature, bool)
	GetEnum(name string) ([]string, bool)
}

// Parser recognizes embedded calls in host source and, when a Registry
// is attached, validates each call site against it.
type Parser struct {
	config   ValidationConfig
	registry Registry
}

// New returns a Parser that emits no diagnostics at all (not even
// syntax ones) and performs no registry validation.
func New() *Parser {
	return &Parser{}
}

// WithConfig returns a Parser with the given validation config and no
// attached registry; UnknownFunction/ArgumentCount/EnumValue categories
// never fire without one.
func WithConfig(config ValidationConfig) *Parser {
	return &Parser{config: config}
}

// WithValidation returns a Parser with both a validation config and an
// attached registry.
func WithValidation(config ValidationConfig, reg Registry) *Parser {
	return &Parser{config: config, registry: reg}
}

// Parse is a package-level convenience for New().Parse(source).
func Parse(source string) (ast.Program, []diag.Diagnostic) {
	return New().Parse(source)
}

// Parse recognizes source and returns a well-formed Program together
// with a (possibly empty) diagnostic list. Parsing never fails outright:
// malformed regions degrade to best-effort nodes alongside a diagnostic.
func (p *Parser) Parse(source string) (ast.Program, []diag.Diagnostic) {
	return p.parseOuter(source)
}
