package parser

import (
	"github.com/embedlang/macrolang/ast"
	"github.com/embedlang/macrolang/diag"
	"github.com/embedlang/macrolang/span"
)

// reservedEscapeFunctions switch a function call into the escape-function
// production: their bracketed content becomes a literal, un-reparsed region.
var reservedEscapeFunctions = map[string]bool{"c": true, "C": true, "escape": true}

// innerState parses one code-block's content. Positions are absolute
// offsets within source (the block's own text, pre-offset); the caller
// relocates them into host coordinates once after the whole block
// finishes.
type innerState struct {
	p      *Parser
	source string
}

func (p *Parser) parseInner(block string) (ast.Program, []diag.Diagnostic) {
	st := &innerState{p: p, source: block}
	body, diags := st.parseRange(0, len(block))
	return ast.Program{Body: body, SpanData: span.New(0, len(block))}, diags
}

// parseRange recognizes [start, end) of st.source as an embedded-language
// fragment: a sequence of escape, host-expression, function-call, and
// plain-text productions.
func (st *innerState) parseRange(start, end int) ([]ast.Node, []diag.Diagnostic) {
	var body []ast.Node
	var diags []diag.Diagnostic
	pos := start
	textStart := start

	flush := func(upTo int) {
		if upTo > textStart {
			body = append(body, &ast.Text{Content: st.source[textStart:upTo], SpanData: span.New(textStart, upTo)})
		}
	}

	for pos < end {
		b := st.source[pos]
		switch {
		case b == '\\':
			flush(pos)
			text, consumed := st.escapeSequence(pos, end)
			next := pos + consumed
			body = append(body, &ast.Text{Content: text, SpanData: span.New(pos, next)})
			pos = next
			textStart = pos
		case b == '$':
			flush(pos)
			if pos+1 < end && st.source[pos+1] == '{' {
				node, next, d := st.parseJavaScript(pos, end)
				body = append(body, node)
				if d != nil {
					diags = append(diags, *d)
				}
				pos = next
			} else {
				node, next, callDiags := st.parseFunctionCall(pos, end)
				body = append(body, node)
				diags = append(diags, callDiags...)
				pos = next
			}
			textStart = pos
		default:
			pos++
		}
	}
	flush(end)
	return body, diags
}

// escapeSequence decodes the escape beginning at pos (st.source[pos] ==
// '\\') and returns its literal text and the number of source bytes it
// consumed. A run of two backslashes immediately followed by one of the
// structural characters ` $ [ ] ; collapses the whole three-byte run to
// just that character; two backslashes alone collapse to one literal
// backslash; anything else leaves a single backslash untouched so the
// following byte is re-examined on the next iteration.
//
// Pinned down by original_source/tests/parser.rs's escape_sequence_len
// walkthroughs (test_escaped_dollar_is_literal, test_lone_backslash_then_function,
// test_escaped_closing_bracket_in_args, test_escaped_semicolon_in_args):
// spec.md's prose reads as a simple two-byte collapse for a lone
// backslash, but every escaping test case in the original exercises the
// doubled-backslash form, and the lone-backslash case is explicitly
// shown passing the following byte through unconsumed.
func (st *innerState) escapeSequence(pos, end int) (text string, consumed int) {
	if pos+1 >= end || st.source[pos+1] != '\\' {
		return "\\", 1
	}
	if pos+2 < end && isEscapable(st.source[pos+2]) {
		return string(st.source[pos+2]), 3
	}
	return "\\", 2
}

func isEscapable(b byte) bool {
	switch b {
	case '$', '[', ']', ';', '`':
		return true
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// parseJavaScript recognizes a host-expression node from "${" to its
// matching '}', tracking brace depth.
func (st *innerState) parseJavaScript(pos, end int) (ast.Node, int, *diag.Diagnostic) {
	start := pos
	i := pos + 2
	depth := 1
	for i < end {
		switch st.source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				code := st.source[pos+2 : i]
				return &ast.JavaScript{Code: code, SpanData: span.New(start, i+1)}, i + 1, nil
			}
		}
		i++
	}
	var d *diag.Diagnostic
	if st.p.config.ValidateSyntax {
		dd := diag.New(diag.Syntax, span.New(start, end), "Unclosed host expression")
		d = &dd
	}
	return &ast.JavaScript{Code: "", SpanData: span.New(start, end)}, end, d
}
