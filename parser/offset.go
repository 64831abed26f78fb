package parser

import (
	"github.com/embedlang/macrolang/ast"
	"github.com/embedlang/macrolang/diag"
)

// spanShifter is an ast.MutatingVisitor that relocates every span in a
// subtree by a fixed delta, used to move an inner block's parse result
// from block-local coordinates into host-source coordinates.
//
// Grounded on ast.DefaultMutatingVisitor (this package's own traversal
// contract) rather than a hand-rolled recursive walk.
type spanShifter struct {
	ast.DefaultMutatingVisitor
	delta int
}

func newSpanShifter(delta int) *spanShifter {
	s := &spanShifter{delta: delta}
	s.Self = s
	return s
}

func (s *spanShifter) VisitProgramMut(n *ast.Program) {
	n.SpanData = n.SpanData.Offset(s.delta)
	s.DefaultMutatingVisitor.VisitProgramMut(n)
}

func (s *spanShifter) VisitTextMut(n *ast.Text) {
	n.SpanData = n.SpanData.Offset(s.delta)
}

func (s *spanShifter) VisitJavaScriptMut(n *ast.JavaScript) {
	n.SpanData = n.SpanData.Offset(s.delta)
}

func (s *spanShifter) VisitEscapedMut(n *ast.Escaped) {
	n.SpanData = n.SpanData.Offset(s.delta)
}

func (s *spanShifter) VisitArgumentMut(a *ast.Argument) {
	a.SpanData = a.SpanData.Offset(s.delta)
	s.DefaultMutatingVisitor.VisitArgumentMut(a)
}

func (s *spanShifter) VisitFunctionCallMut(n *ast.FunctionCall) {
	n.SpanData = n.SpanData.Offset(s.delta)
	n.FullSpanData = n.FullSpanData.Offset(s.delta)
	n.NameSpan = n.NameSpan.Offset(s.delta)
	if n.ArgsSpan != nil {
		shifted := n.ArgsSpan.Offset(s.delta)
		n.ArgsSpan = &shifted
	}
	if n.Modifiers.SpanData != nil {
		shifted := n.Modifiers.SpanData.Offset(s.delta)
		n.Modifiers.SpanData = &shifted
	}
	s.DefaultMutatingVisitor.VisitFunctionCallMut(n)
}

// offsetNode shifts every span in n's subtree by delta, in place.
func offsetNode(n ast.Node, delta int) {
	ast.WalkMut(newSpanShifter(delta), n)
}

func offsetDiag(d diag.Diagnostic, delta int) diag.Diagnostic {
	d.Span = d.Span.Offset(delta)
	return d
}
