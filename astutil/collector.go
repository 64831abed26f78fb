// Package astutil implements read-only analyses over an ast.Program:
// function-name collection, per-kind node counting, a pretty-printer,
// and aggregate statistics. Every analysis is built against ast.Visitor
// rather than hand-rolled recursion.
//
// Grounded on original_source/src/visitor.rs's FunctionCollector/
// NodeCounter (ported onto ast.Visitor/ast.DefaultVisitor) and
// src/utils.rs's format_ast/calculate_stats.
package astutil

import "github.com/embedlang/macrolang/ast"

// FunctionCollector records every function name in the order visited:
// pre-order, so a call's own name precedes the names inside its
// arguments.
type FunctionCollector struct {
	ast.DefaultVisitor
	Functions []string
}

// NewFunctionCollector returns a ready-to-use collector.
func NewFunctionCollector() *FunctionCollector {
	c := &FunctionCollector{}
	c.Self = c
	return c
}

func (c *FunctionCollector) VisitFunctionCall(n *ast.FunctionCall) {
	c.Functions = append(c.Functions, n.Name)
	for _, arg := range n.Args {
		c.VisitArgument(arg)
	}
}

// CollectFunctions walks n and returns every function name, pre-order.
func CollectFunctions(n ast.Node) []string {
	c := NewFunctionCollector()
	ast.Walk(c, n)
	return c.Functions
}

// NodeCounter tallies how many nodes of each leaf kind appear in a tree.
// Program nodes themselves aren't counted -- only the node kinds that
// can appear inside one.
type NodeCounter struct {
	ast.DefaultVisitor
	TextNodes       int
	FunctionNodes   int
	JavaScriptNodes int
	EscapedNodes    int
}

func NewNodeCounter() *NodeCounter {
	c := &NodeCounter{}
	c.Self = c
	return c
}

func (c *NodeCounter) VisitText(*ast.Text) { c.TextNodes++ }

func (c *NodeCounter) VisitFunctionCall(n *ast.FunctionCall) {
	c.FunctionNodes++
	for _, arg := range n.Args {
		c.VisitArgument(arg)
	}
}

func (c *NodeCounter) VisitJavaScript(*ast.JavaScript) { c.JavaScriptNodes++ }

func (c *NodeCounter) VisitEscaped(*ast.Escaped) { c.EscapedNodes++ }

// CountNodes walks n and returns a populated NodeCounter.
func CountNodes(n ast.Node) *NodeCounter {
	c := NewNodeCounter()
	ast.Walk(c, n)
	return c
}
