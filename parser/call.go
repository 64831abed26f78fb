package parser

import (
	"github.com/embedlang/macrolang/ast"
	"github.com/embedlang/macrolang/diag"
	"github.com/embedlang/macrolang/span"
)

// parseFunctionCall recognizes a $-introduced construct starting at pos
// (st.source[pos] == '$'): the modifier run, the name, and, unless the
// name is a reserved escape-function name, an optional bracketed
// argument list.
func (st *innerState) parseFunctionCall(pos, end int) (ast.Node, int, []diag.Diagnostic) {
	start := pos
	modStart := pos + 1

	mods, i, diags := st.parseModifiers(modStart, end)
	if i > modStart {
		s := span.New(modStart, i)
		mods.SpanData = &s
	}

	nameStart := i
	for i < end && isIdentByte(st.source[i]) {
		i++
	}
	name := st.source[nameStart:i]

	if name == "" {
		return &ast.Text{Content: "$", SpanData: span.New(start, start+1)}, start + 1, nil
	}
	nameSpan := span.New(nameStart, i)

	if reservedEscapeFunctions[name] {
		node, next, escDiags := st.parseEscapeFunction(start, i, end)
		return node, next, append(diags, escDiags...)
	}

	var args []ast.Argument
	var argsSpan *span.Span
	if i < end && st.source[i] == '[' {
		parsedArgs, next, span_, argDiags, ok := st.parseArgumentList(i, end)
		diags = append(diags, argDiags...)
		if ok {
			args = parsedArgs
			argsSpan = &span_
			i = next
		} else {
			i = next
		}
	}

	call := &ast.FunctionCall{
		Name:         name,
		NameSpan:     nameSpan,
		Modifiers:    mods,
		Args:         args,
		ArgsSpan:     argsSpan,
		FullSpanData: span.New(modStart, i),
		SpanData:     span.New(start, i),
	}
	diags = append(diags, st.p.validateCall(call)...)

	return call, i, diags
}

// parseModifiers recognizes zero or more modifier atoms (!, #, @[...])
// in any order starting at pos.
func (st *innerState) parseModifiers(pos, end int) (ast.Modifiers, int, []diag.Diagnostic) {
	var mods ast.Modifiers
	var diags []diag.Diagnostic
	i := pos
	for i < end {
		switch {
		case st.source[i] == '!':
			mods.Silent = true
			i++
		case st.source[i] == '#':
			mods.Negated = true
			i++
		case st.source[i] == '@' && i+1 < end && st.source[i+1] == '[':
			content, next, ok := st.scanBalancedBrackets(i+1, end)
			if !ok {
				if st.p.config.ValidateBrackets {
					diags = append(diags, diag.New(diag.Syntax, span.New(i, end), "Unmatched '[' in modifier"))
				}
				return mods, end, diags
			}
			c := content
			mods.Count = &c
			i = next
		default:
			return mods, i, diags
		}
	}
	return mods, i, diags
}

// scanBalancedBrackets scans a bracket-balanced group starting at pos
// (st.source[pos] == '['), respecting backslash escapes, and returns
// its interior text (the raw substring, not escape-decoded) and the
// position just past the matching ']'.
func (st *innerState) scanBalancedBrackets(pos, end int) (content string, next int, ok bool) {
	depth := 0
	interiorStart := pos + 1
	i := pos
	for i < end {
		b := st.source[i]
		switch {
		case b == '\\':
			_, consumed := st.escapeSequence(i, end)
			i += consumed
		case b == '[':
			depth++
			i++
		case b == ']':
			depth--
			if depth == 0 {
				return st.source[interiorStart:i], i + 1, true
			}
			i++
		default:
			i++
		}
	}
	return "", end, false
}

// parseEscapeFunction recognizes the bracketed-literal production for
// the reserved escape-function names (c, C, escape): afterName is the
// position immediately following the name.
func (st *innerState) parseEscapeFunction(start, afterName, end int) (ast.Node, int, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	if afterName >= end || st.source[afterName] != '[' {
		if st.p.config.ValidateBrackets {
			diags = append(diags, diag.New(diag.Syntax, span.New(start, afterName), "Missing '[' after escape function"))
		}
		return &ast.Escaped{Content: "", SpanData: span.New(start, afterName)}, afterName, diags
	}
	content, next, ok := st.scanBalancedBrackets(afterName, end)
	if !ok {
		if st.p.config.ValidateBrackets {
			diags = append(diags, diag.New(diag.Syntax, span.New(start, end), "Unmatched '[' in escape function"))
		}
		return &ast.Escaped{Content: "", SpanData: span.New(start, end)}, end, diags
	}
	return &ast.Escaped{Content: content, SpanData: span.New(start, next)}, next, diags
}

// parseArgumentList recognizes a bracketed argument list starting at
// pos (st.source[pos] == '['). depth counts only nested function-attached
// bracket pairs beneath the list's own delimiters, so it starts at 0:
// a ']' seen at depth 0 closes the list itself, and ';' only splits at
// depth 0. Escape-function call sites are skipped atomically so their
// internal ';'/']' can't affect the split. A syntactically empty pair
// "[]" (no interior bytes at all) yields a non-nil, zero-length argument
// slice: HasArgs() is true but there are no arguments to validate.
func (st *innerState) parseArgumentList(pos, end int) (args []ast.Argument, next int, argsSpan span.Span, diags []diag.Diagnostic, ok bool) {
	start := pos
	i := pos + 1
	depth := 0
	segStart := i
	var segments []span.Span

	for i < end {
		b := st.source[i]
		switch {
		case b == '\\':
			_, consumed := st.escapeSequence(i, end)
			i += consumed
		case b == '$' && st.isEscapeFunctionCallAt(i, end):
			i = st.skipEscapeFunctionCall(i, end)
		case b == '[' && st.isFunctionAttachedBracket(i):
			depth++
			i++
		case b == ']':
			if depth > 0 {
				depth--
				i++
				continue
			}
			segments = append(segments, span.New(segStart, i))
			return st.finishArgumentList(start, i+1, segments)
		case b == ';' && depth == 0:
			segments = append(segments, span.New(segStart, i))
			i++
			segStart = i
		default:
			i++
		}
	}
	var failDiags []diag.Diagnostic
	if st.p.config.ValidateBrackets {
		failDiags = append(failDiags, diag.New(diag.Syntax, span.New(start, end), "Unmatched '[' in argument list"))
	}
	return nil, end, span.Span{}, failDiags, false
}

func (st *innerState) finishArgumentList(start, closeEnd int, segments []span.Span) ([]ast.Argument, int, span.Span, []diag.Diagnostic, bool) {
	argsSpan := span.New(start, closeEnd)
	args := []ast.Argument{}
	var diags []diag.Diagnostic

	if len(segments) == 1 && segments[0].Len() == 0 {
		return args, closeEnd, argsSpan, diags, true
	}

	for _, seg := range segments {
		parts, segDiags := st.parseRange(seg.Start, seg.End)
		diags = append(diags, segDiags...)
		if len(parts) == 0 {
			parts = []ast.Node{&ast.Text{Content: "", SpanData: span.New(seg.Start, seg.Start)}}
		}
		args = append(args, ast.Argument{Parts: parts, SpanData: seg})
	}
	return args, closeEnd, argsSpan, diags, true
}

// isEscapeFunctionCallAt reports whether pos begins a reserved
// escape-function call ($c[, $C[, $escape[) that should be skipped
// atomically during argument-list depth/split scanning.
func (st *innerState) isEscapeFunctionCallAt(pos, end int) bool {
	i := pos + 1
	nameStart := i
	for i < end && isIdentByte(st.source[i]) {
		i++
	}
	if !reservedEscapeFunctions[st.source[nameStart:i]] {
		return false
	}
	return i < end && st.source[i] == '['
}

func (st *innerState) skipEscapeFunctionCall(pos, end int) int {
	i := pos + 1
	for i < end && isIdentByte(st.source[i]) {
		i++
	}
	_, next, ok := st.scanBalancedBrackets(i, end)
	if !ok {
		return end
	}
	return next
}

// isFunctionAttachedBracket implements the function-attached-bracket
// predicate: a '[' at i is function-attached iff, reading backwards
// over a run of identifier characters then optionally over a run of
// modifier atoms (!, #, or a bracket-balanced @[...] group), the cursor
// reaches a '$' that a forward scan would still treat as live.
func (st *innerState) isFunctionAttachedBracket(i int) bool {
	j := i
	for j > 0 && isIdentByte(st.source[j-1]) {
		j--
	}
	for j > 0 {
		switch st.source[j-1] {
		case '!', '#':
			j--
			continue
		case ']':
			openIdx, ok := st.matchBackwardBracket(j - 1)
			if ok && openIdx > 0 && st.source[openIdx-1] == '@' {
				j = openIdx - 1
				continue
			}
		}
		break
	}
	return j > 0 && st.source[j-1] == '$' && !deadAfterBackslashRun(st.source, j-1)
}

// matchBackwardBracket scans backwards from closeIdx (st.source[closeIdx]
// == ']') for the matching live '[', respecting nested brackets.
func (st *innerState) matchBackwardBracket(closeIdx int) (openIdx int, ok bool) {
	depth := 0
	for i := closeIdx; i >= 0; i-- {
		b := st.source[i]
		if b == ']' && !deadAfterBackslashRun(st.source, i) {
			depth++
		} else if b == '[' && !deadAfterBackslashRun(st.source, i) {
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// deadAfterBackslashRun reports whether the byte at pos was consumed as
// part of the preceding backslash run under escapeSequence's rules: a
// non-zero, even-length run collapses together with the byte that
// follows it, leaving that byte dead rather than live. An odd-length
// run (or no backslashes at all) leaves it live. This is the inverse of
// the textual odd/even convention span.IsEscaped implements, because
// escapeSequence resolves a doubled backslash plus the following
// structural byte as a single three-byte unit rather than pairing the
// last backslash with its immediate neighbor.
func deadAfterBackslashRun(source string, pos int) bool {
	count := 0
	for i := pos - 1; i >= 0 && source[i] == '\\'; i-- {
		count++
	}
	return count > 0 && count%2 == 0
}
