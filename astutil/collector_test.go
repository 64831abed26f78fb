package astutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embedlang/macrolang/astutil"
	"github.com/embedlang/macrolang/parser"
)

func TestCollectFunctionsBasic(t *testing.T) {
	program, _ := parser.Parse("code: `$get[foo] $set[bar]`")
	assert.Equal(t, []string{"get", "set"}, astutil.CollectFunctions(&program))
}

func TestCollectFunctionsNestedPreOrder(t *testing.T) {
	program, _ := parser.Parse("code: `$outer[$inner[val];$second]`")
	assert.Equal(t, []string{"outer", "inner", "second"}, astutil.CollectFunctions(&program))
}

func TestCountNodesAllKinds(t *testing.T) {
	program, _ := parser.Parse("code: `text $func[] ${ 1+1 } $c[esc]`")
	counter := astutil.CountNodes(&program)

	assert.Equal(t, 3, counter.TextNodes)
	assert.Equal(t, 1, counter.FunctionNodes)
	assert.Equal(t, 1, counter.JavaScriptNodes)
	assert.Equal(t, 1, counter.EscapedNodes)
}

func TestSortedUniqueFunctions(t *testing.T) {
	program, _ := parser.Parse("code: `$get[a] $set[b] $get[c]`")
	assert.Equal(t, []string{"get", "set"}, astutil.SortedUniqueFunctions(&program))
}
