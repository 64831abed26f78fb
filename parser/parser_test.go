package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedlang/macrolang/ast"
	"github.com/embedlang/macrolang/parser"
)

func TestSimpleText(t *testing.T) {
	program, diags := parser.Parse("just some text, no code block")
	assert.Empty(t, diags)
	require.Len(t, program.Body, 1)
	text, ok := program.Body[0].(*ast.Text)
	require.True(t, ok)
	assert.Equal(t, "just some text, no code block", text.Content)
}

func TestSimpleFunction(t *testing.T) {
	program, diags := parser.Parse("code: `$get[role]`")
	assert.Empty(t, diags)
	require.Len(t, program.Body, 1)
	call, ok := program.Body[0].(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "get", call.Name)
	require.True(t, call.HasArgs())
	require.Len(t, call.Args, 1)
}

func TestFunctionWithArgs(t *testing.T) {
	program, _ := parser.Parse("code: `$get[coins]`")
	call := program.Body[0].(*ast.FunctionCall)
	require.Len(t, call.Args, 1)
	text := call.Args[0].Parts[0].(*ast.Text)
	assert.Equal(t, "coins", text.Content)
}

func TestNestedFunctions(t *testing.T) {
	program, diags := parser.Parse("code: `$outer[$inner[val]]`")
	assert.Empty(t, diags)
	outer := program.Body[0].(*ast.FunctionCall)
	assert.Equal(t, "outer", outer.Name)
	require.Len(t, outer.Args, 1)
	inner, ok := outer.Args[0].Parts[0].(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "inner", inner.Name)
}

func TestModifiers(t *testing.T) {
	program, _ := parser.Parse("code: `$!#get[role]`")
	call := program.Body[0].(*ast.FunctionCall)
	assert.True(t, call.Modifiers.Silent)
	assert.True(t, call.Modifiers.Negated)
	assert.Equal(t, "get", call.Name)
}

func TestModifierComplexCount(t *testing.T) {
	program, _ := parser.Parse("code: `$@[ 100 ]funcName`")
	call := program.Body[0].(*ast.FunctionCall)
	require.NotNil(t, call.Modifiers.Count)
	assert.Equal(t, " 100 ", *call.Modifiers.Count)
	assert.Equal(t, "funcName", call.Name)
}

func TestJavaScript(t *testing.T) {
	program, diags := parser.Parse("code: `${ 1 + 1 }`")
	assert.Empty(t, diags)
	js, ok := program.Body[0].(*ast.JavaScript)
	require.True(t, ok)
	assert.Equal(t, " 1 + 1 ", js.Code)
}

func TestMixedTextAndCode(t *testing.T) {
	program, _ := parser.Parse("code: `hello $get[x] world`")
	require.Len(t, program.Body, 3)
	assert.Equal(t, "hello ", program.Body[0].(*ast.Text).Content)
	assert.Equal(t, "get", program.Body[1].(*ast.FunctionCall).Name)
	assert.Equal(t, " world", program.Body[2].(*ast.Text).Content)
}

func TestCodeLiteralInText(t *testing.T) {
	program, _ := parser.Parse("before code: `$get[x]` after")
	require.Len(t, program.Body, 3)
	assert.Equal(t, "before ", program.Body[0].(*ast.Text).Content)
	assert.Equal(t, " after", program.Body[2].(*ast.Text).Content)
}

func TestCodeBlockSpanAccuracy(t *testing.T) {
	source := "prefix code: `$get[x]` suffix"
	program, _ := parser.Parse(source)
	call := program.Body[1].(*ast.FunctionCall)
	assert.Equal(t, "$get[x]", source[call.Span().Start:call.Span().End])
}

func TestEscapedFunctionDollarIsLiteral(t *testing.T) {
	program, diags := parser.Parse("code: `\\\\$userName`")
	assert.Empty(t, diags)
	for _, n := range program.Body {
		_, isCall := n.(*ast.FunctionCall)
		assert.False(t, isCall, "escaped $ must not start a function call")
	}
}

func TestLoneBackslashThenFunction(t *testing.T) {
	program, diags := parser.Parse("code: `\\$func`")
	assert.Empty(t, diags)
	require.Len(t, program.Body, 2)
	text := program.Body[0].(*ast.Text)
	assert.Equal(t, "\\", text.Content)
	call := program.Body[1].(*ast.FunctionCall)
	assert.Equal(t, "func", call.Name)
}

func TestUnicodeSafety(t *testing.T) {
	program, diags := parser.Parse("code: `héllo $get[wörld]`")
	assert.Empty(t, diags)
	assert.Equal(t, "héllo ", program.Body[0].(*ast.Text).Content)
}

func TestDeepNestingStack(t *testing.T) {
	program, diags := parser.Parse("code: `$a[$b[$c[$d[$e[leaf]]]]]`")
	assert.Empty(t, diags)
	a := program.Body[0].(*ast.FunctionCall)
	assert.Equal(t, "a", a.Name)
}

func TestEmptyBracketPairHasNoArgs(t *testing.T) {
	program, _ := parser.Parse("code: `$f[]`")
	call := program.Body[0].(*ast.FunctionCall)
	assert.True(t, call.HasArgs())
	assert.Len(t, call.Args, 0)
}

func TestSemicolonsInNestedArgs(t *testing.T) {
	program, _ := parser.Parse("code: `$parent[$inner[a;b];outer_second]`")
	parentCall := program.Body[0].(*ast.FunctionCall)
	require.Len(t, parentCall.Args, 2)
}

func TestBareBracketInArgsNoError(t *testing.T) {
	program, diags := parser.WithConfig(parser.SyntaxOnly()).Parse("code: `$ban[user; 1m; []`")
	assert.Empty(t, diags)
	call := program.Body[0].(*ast.FunctionCall)
	require.Len(t, call.Args, 3)
	third := call.Args[2]
	foundBracket := false
	for _, p := range third.Parts {
		if text, ok := p.(*ast.Text); ok {
			if contains(text.Content, '[') {
				foundBracket = true
			}
		}
	}
	assert.True(t, foundBracket)
}

func TestEscapedDollarInArgsNoUnclosedError(t *testing.T) {
	program, diags := parser.WithConfig(parser.SyntaxOnly()).Parse("code: `$attachment[$get[hello] \\\\$get[hello\\\\];hello]`")
	assert.Empty(t, diags)
	call := program.Body[0].(*ast.FunctionCall)
	require.Len(t, call.Args, 2)
}

func TestEscapedSemicolonInArgs(t *testing.T) {
	program, diags := parser.Parse("code: `$f[a\\\\;b]`")
	assert.Empty(t, diags)
	call := program.Body[0].(*ast.FunctionCall)
	require.Len(t, call.Args, 1)
}

func contains(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
