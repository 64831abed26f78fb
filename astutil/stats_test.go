package astutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embedlang/macrolang/astutil"
	"github.com/embedlang/macrolang/parser"
)

func TestCalculateStatsBasic(t *testing.T) {
	program, _ := parser.Parse("code: `$if[$authorID==$ownerID]$get[role]$endif`")
	stats := astutil.CalculateStats(&program)

	assert.GreaterOrEqual(t, stats.FunctionCalls, 3)
	assert.Greater(t, stats.TotalNodes, stats.FunctionCalls)
}

func TestMaxDepthNested(t *testing.T) {
	program, _ := parser.Parse("code: `$a[$b[$c[leaf]]]`")
	assert.Equal(t, 3, astutil.MaxDepth(&program))
}

func TestMaxDepthFlat(t *testing.T) {
	program, _ := parser.Parse("code: `$a[x] $b[y]`")
	assert.Equal(t, 1, astutil.MaxDepth(&program))
}

func TestContainsJavaScript(t *testing.T) {
	withJS, _ := parser.Parse("code: `$let[x;${1+1}]`")
	withoutJS, _ := parser.Parse("code: `$get[x]`")

	assert.True(t, astutil.ContainsJavaScript(&withJS))
	assert.False(t, astutil.ContainsJavaScript(&withoutJS))
}

func TestFormatIncludesFunctionAndArgMarkers(t *testing.T) {
	program, _ := parser.Parse("code: `$get[role]`")
	out := astutil.Format(&program)

	assert.Contains(t, out, "FunctionCall")
	assert.Contains(t, out, "$get")
	assert.Contains(t, out, "Arg 0")
}
