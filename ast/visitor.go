package ast

// Visitor is the read-only traversal contract: one method per node
// variant, each with a default implementation that recurses into
// children in source order (pre-order, arguments left-to-right, each
// argument's parts left-to-right). Embed DefaultVisitor to get the
// default recursion for any methods you don't override.
//
// Grounded on original_source/src/visitor.rs's AstVisitor trait.
type Visitor interface {
	VisitProgram(n *Program)
	VisitText(n *Text)
	VisitFunctionCall(n *FunctionCall)
	VisitJavaScript(n *JavaScript)
	VisitEscaped(n *Escaped)
	VisitArgument(a Argument)
}

// Walk dispatches to the visitor method matching n's concrete type.
func Walk(v Visitor, n Node) {
	switch t := n.(type) {
	case *Program:
		v.VisitProgram(t)
	case *Text:
		v.VisitText(t)
	case *FunctionCall:
		v.VisitFunctionCall(t)
	case *JavaScript:
		v.VisitJavaScript(t)
	case *Escaped:
		v.VisitEscaped(t)
	default:
		panic("ast: unknown node type in Walk")
	}
}

// DefaultVisitor implements Visitor with the default pre-order
// recursion for every method. Embed it in a concrete visitor and
// override only the methods you care about.
type DefaultVisitor struct {
	// Self is the outer visitor to dispatch to when recursing, so
	// overridden methods on the embedder are still invoked for
	// children. Set it to the embedding value before use; if left nil,
	// DefaultVisitor recurses into itself.
	Self Visitor
}

func (d *DefaultVisitor) self() Visitor {
	if d.Self != nil {
		return d.Self
	}
	return d
}

func (d *DefaultVisitor) VisitProgram(n *Program) {
	self := d.self()
	for _, child := range n.Body {
		Walk(self, child)
	}
}

func (d *DefaultVisitor) VisitText(*Text) {}

func (d *DefaultVisitor) VisitFunctionCall(n *FunctionCall) {
	self := d.self()
	for _, arg := range n.Args {
		self.VisitArgument(arg)
	}
}

func (d *DefaultVisitor) VisitArgument(a Argument) {
	self := d.self()
	for _, part := range a.Parts {
		Walk(self, part)
	}
}

func (d *DefaultVisitor) VisitJavaScript(*JavaScript) {}

func (d *DefaultVisitor) VisitEscaped(*Escaped) {}

// MutatingVisitor is the mutating traversal contract: analogous to
// Visitor but receives pointers to mutable string payloads and argument
// lists so implementations can rewrite content in place. The default
// recursion is identical to Visitor's.
type MutatingVisitor interface {
	VisitProgramMut(n *Program)
	VisitTextMut(n *Text)
	VisitFunctionCallMut(n *FunctionCall)
	VisitJavaScriptMut(n *JavaScript)
	VisitEscapedMut(n *Escaped)
	VisitArgumentMut(a *Argument)
}

// WalkMut dispatches to the mutating visitor method matching n's
// concrete type.
func WalkMut(v MutatingVisitor, n Node) {
	switch t := n.(type) {
	case *Program:
		v.VisitProgramMut(t)
	case *Text:
		v.VisitTextMut(t)
	case *FunctionCall:
		v.VisitFunctionCallMut(t)
	case *JavaScript:
		v.VisitJavaScriptMut(t)
	case *Escaped:
		v.VisitEscapedMut(t)
	default:
		panic("ast: unknown node type in WalkMut")
	}
}

// DefaultMutatingVisitor implements MutatingVisitor with the default
// in-place recursion for every method.
type DefaultMutatingVisitor struct {
	Self MutatingVisitor
}

func (d *DefaultMutatingVisitor) self() MutatingVisitor {
	if d.Self != nil {
		return d.Self
	}
	return d
}

func (d *DefaultMutatingVisitor) VisitProgramMut(n *Program) {
	self := d.self()
	for _, child := range n.Body {
		WalkMut(self, child)
	}
}

func (d *DefaultMutatingVisitor) VisitTextMut(*Text) {}

func (d *DefaultMutatingVisitor) VisitFunctionCallMut(n *FunctionCall) {
	self := d.self()
	for i := range n.Args {
		self.VisitArgumentMut(&n.Args[i])
	}
}

func (d *DefaultMutatingVisitor) VisitArgumentMut(a *Argument) {
	self := d.self()
	for _, part := range a.Parts {
		WalkMut(self, part)
	}
}

func (d *DefaultMutatingVisitor) VisitJavaScriptMut(*JavaScript) {}

func (d *DefaultMutatingVisitor) VisitEscapedMut(*Escaped) {}
