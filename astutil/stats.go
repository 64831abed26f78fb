package astutil

import (
	"fmt"
	"sort"
	"strings"

	"github.com/embedlang/macrolang/ast"
)

// Stats is aggregate information about a parsed tree.
//
// Grounded on original_source/src/utils.rs's AstStats/calculate_stats.
type Stats struct {
	TotalNodes      int
	TextNodes       int
	FunctionCalls   int
	JavaScriptNodes int
	EscapedNodes    int
	MaxDepth        int
	UniqueFunctions int
}

// CalculateStats returns n's aggregate Stats. It walks the tree once per
// analysis it combines (node counts, function names, total nodes, depth).
func CalculateStats(n ast.Node) Stats {
	counter := CountNodes(n)
	functions := CollectFunctions(n)
	unique := make(map[string]struct{}, len(functions))
	for _, name := range functions {
		unique[name] = struct{}{}
	}

	return Stats{
		TotalNodes:      TotalNodes(n),
		TextNodes:       counter.TextNodes,
		FunctionCalls:   counter.FunctionNodes,
		JavaScriptNodes: counter.JavaScriptNodes,
		EscapedNodes:    counter.EscapedNodes,
		MaxDepth:        MaxDepth(n),
		UniqueFunctions: len(unique),
	}
}

// nodeCountVisitor counts every node, including Program and one per
// FunctionCall's own node (not just its leaf descendants).
type nodeCountVisitor struct {
	ast.DefaultVisitor
	total int
}

func (v *nodeCountVisitor) VisitProgram(n *ast.Program) {
	v.total++
	v.DefaultVisitor.VisitProgram(n)
}

func (v *nodeCountVisitor) VisitText(*ast.Text) { v.total++ }

func (v *nodeCountVisitor) VisitFunctionCall(n *ast.FunctionCall) {
	v.total++
	for _, arg := range n.Args {
		v.VisitArgument(arg)
	}
}

func (v *nodeCountVisitor) VisitJavaScript(*ast.JavaScript) { v.total++ }

func (v *nodeCountVisitor) VisitEscaped(*ast.Escaped) { v.total++ }

// TotalNodes counts every node in the tree rooted at n, Program included.
func TotalNodes(n ast.Node) int {
	v := &nodeCountVisitor{}
	v.Self = v
	ast.Walk(v, n)
	return v.total
}

// depthVisitor tracks the deepest function-call nesting level reached.
type depthVisitor struct {
	ast.DefaultVisitor
	current int
	max     int
}

func (v *depthVisitor) VisitFunctionCall(n *ast.FunctionCall) {
	v.current++
	if v.current > v.max {
		v.max = v.current
	}
	for _, arg := range n.Args {
		v.VisitArgument(arg)
	}
	v.current--
}

// MaxDepth returns the deepest function-call nesting level in the tree
// rooted at n (0 if it contains no function calls).
func MaxDepth(n ast.Node) int {
	v := &depthVisitor{}
	v.Self = v
	ast.Walk(v, n)
	return v.max
}

// javaScriptVisitor stops at the first JavaScript node found.
type javaScriptVisitor struct {
	ast.DefaultVisitor
	found bool
}

func (v *javaScriptVisitor) VisitJavaScript(*ast.JavaScript) { v.found = true }

func (v *javaScriptVisitor) VisitFunctionCall(n *ast.FunctionCall) {
	if v.found {
		return
	}
	for _, arg := range n.Args {
		if v.found {
			return
		}
		v.VisitArgument(arg)
	}
}

func (v *javaScriptVisitor) VisitArgument(a ast.Argument) {
	for _, part := range a.Parts {
		if v.found {
			return
		}
		ast.Walk(v, part)
	}
}

// ContainsJavaScript reports whether the tree rooted at n has any
// JavaScript host-expression node.
func ContainsJavaScript(n ast.Node) bool {
	v := &javaScriptVisitor{}
	v.Self = v
	ast.Walk(v, n)
	return v.found
}

// formatVisitor renders a tree as indented, human-readable lines.
type formatVisitor struct {
	ast.DefaultVisitor
	out   *strings.Builder
	depth int
}

func (v *formatVisitor) indent() string { return strings.Repeat("  ", v.depth) }

func (v *formatVisitor) VisitProgram(n *ast.Program) {
	fmt.Fprintf(v.out, "%sProgram (%d..%d)\n", v.indent(), n.SpanData.Start, n.SpanData.End)
	v.depth++
	for _, child := range n.Body {
		ast.Walk(v, child)
	}
	v.depth--
}

func (v *formatVisitor) VisitText(n *ast.Text) {
	fmt.Fprintf(v.out, "%sText (%d..%d): %q\n", v.indent(), n.SpanData.Start, n.SpanData.End, n.Content)
}

func (v *formatVisitor) VisitFunctionCall(n *ast.FunctionCall) {
	flags := ""
	if n.Modifiers.Silent {
		flags += " [silent]"
	}
	if n.Modifiers.Negated {
		flags += " [negated]"
	}
	if n.Modifiers.Count != nil {
		flags += fmt.Sprintf(" [count: %s]", *n.Modifiers.Count)
	}
	fmt.Fprintf(v.out, "%sFunctionCall (%d..%d): $%s%s\n", v.indent(), n.SpanData.Start, n.SpanData.End, n.Name, flags)
	v.depth++
	for i, arg := range n.Args {
		fmt.Fprintf(v.out, "%sArg %d (%d..%d):\n", v.indent(), i, arg.SpanData.Start, arg.SpanData.End)
		v.depth++
		for _, part := range arg.Parts {
			ast.Walk(v, part)
		}
		v.depth--
	}
	v.depth--
}

func (v *formatVisitor) VisitJavaScript(n *ast.JavaScript) {
	fmt.Fprintf(v.out, "%sJavaScript (%d..%d): %q\n", v.indent(), n.SpanData.Start, n.SpanData.End, n.Code)
}

func (v *formatVisitor) VisitEscaped(n *ast.Escaped) {
	fmt.Fprintf(v.out, "%sEscaped (%d..%d): %q\n", v.indent(), n.SpanData.Start, n.SpanData.End, n.Content)
}

// Format renders n as an indented, human-readable tree.
func Format(n ast.Node) string {
	var out strings.Builder
	v := &formatVisitor{out: &out}
	v.Self = v
	ast.Walk(v, n)
	return out.String()
}

// SortedUniqueFunctions returns every distinct function name in the
// tree rooted at n, alphabetically sorted.
func SortedUniqueFunctions(n ast.Node) []string {
	functions := CollectFunctions(n)
	unique := make(map[string]struct{}, len(functions))
	for _, name := range functions {
		unique[name] = struct{}{}
	}
	names := make([]string, 0, len(unique))
	for name := range unique {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
