package parser

import (
	"github.com/embedlang/macrolang/ast"
	"github.com/embedlang/macrolang/diag"
	"github.com/embedlang/macrolang/span"
)

// blockToken is the literal text that opens an embedded block: the
// word "code:", one space, and the opening backtick.
const blockToken = "code: `"

// parseOuter scans source for code: `...` blocks, delegating the
// content of each to the inner recognizer and splicing the result back
// into the outer body with every span offset to host-source
// coordinates. Text outside any block is copied verbatim.
func (p *Parser) parseOuter(source string) (ast.Program, []diag.Diagnostic) {
	var body []ast.Node
	var diags []diag.Diagnostic
	cursor := 0

	for cursor < len(source) {
		start := findBlockStart(source, cursor)
		if start < 0 {
			break
		}
		if start > cursor {
			body = append(body, &ast.Text{Content: source[cursor:start], SpanData: span.New(cursor, start)})
		}

		contentStart := start + len(blockToken)
		closeIdx := findUnescapedBacktick(source, contentStart)
		if closeIdx < 0 {
			if p.config.ValidateSyntax {
				diags = append(diags, diag.New(diag.Syntax, span.New(start, len(source)), "Unclosed code block"))
			}
			body = append(body, &ast.Text{Content: source[start:], SpanData: span.New(start, len(source))})
			return ast.Program{Body: body, SpanData: span.New(0, len(source))}, diags
		}

		inner := source[contentStart:closeIdx]
		innerProgram, innerDiags := p.parseInner(inner)
		for _, n := range innerProgram.Body {
			offsetNode(n, contentStart)
			body = append(body, n)
		}
		for _, d := range innerDiags {
			diags = append(diags, offsetDiag(d, contentStart))
		}

		cursor = closeIdx + 1
	}

	if cursor < len(source) {
		body = append(body, &ast.Text{Content: source[cursor:], SpanData: span.New(cursor, len(source))})
	}

	return ast.Program{Body: body, SpanData: span.New(0, len(source))}, diags
}

// findBlockStart returns the byte offset of the next accepted block
// token at or after from, or -1. A candidate is accepted only when the
// byte before "code:" is start-of-input, whitespace, '{', or ',', and
// the trailing backtick is not escaped.
func findBlockStart(source string, from int) int {
	for i := from; i+len(blockToken) <= len(source); i++ {
		if source[i:i+len(blockToken)] != blockToken {
			continue
		}
		if !precedingByteAccepted(source, i) {
			continue
		}
		backtick := i + len(blockToken) - 1
		if span.IsEscaped(source, backtick) {
			continue
		}
		return i
	}
	return -1
}

func precedingByteAccepted(source string, i int) bool {
	if i == 0 {
		return true
	}
	switch source[i-1] {
	case ' ', '\t', '\n', '\r', '\v', '\f', '{', ',':
		return true
	default:
		return false
	}
}

// findUnescapedBacktick returns the offset of the first unescaped '`'
// at or after from, or -1.
func findUnescapedBacktick(source string, from int) int {
	for i := from; i < len(source); i++ {
		if source[i] == '`' && !span.IsEscaped(source, i) {
			return i
		}
	}
	return -1
}
