package syntax

import (
	"sable/internal/source"
)

// Node is the read-only capability interface the lowering engine consumes
// surface trees through. Accessors that do not apply to a node's kind
// return the zero value (nil, "", OpNone). Implementations must be safe
// for concurrent reads.
type Node interface {
	// Kind returns the element kind from the closed vocabulary.
	Kind() Kind
	// Span returns the node's byte range in the original source.
	Span() source.Span

	// Text returns the raw source text of literal and template-text nodes.
	Text() string
	// Unescaped returns the decoded form of escape and char-literal
	// content. ok is false when the text cannot be decoded.
	Unescaped() (s string, ok bool)
	// Name returns the referenced or declared name.
	Name() string
	// Label returns the label text on labeled, jump, this and return nodes.
	Label() string
	// Op returns the operator of prefix, postfix and binary nodes.
	Op() Op

	// Receiver returns the receiver of qualified, safe-qualified and
	// array-access nodes.
	Receiver() Node
	// Selector returns the selected member of qualified nodes.
	Selector() Node
	// Indices returns the index expressions of array-access nodes.
	Indices() []Node
	// Operand returns the single wrapped or operated-on sub-node:
	// paren/labeled/annotated target, unary operand, return value,
	// var-decl initializer, template-entry expression, call callee.
	Operand() Node
	// Left and Right return binary operands.
	Left() Node
	Right() Node
	// Cond and Body return loop and function sub-nodes.
	Cond() Node
	Body() Node
	// Params returns declaration parameters.
	Params() []Node
	// Children returns the remaining ordered sub-nodes: call arguments,
	// template segments, block statements, file/class/record members.
	Children() []Node

	// Mutable reports `var` on var-decls and record fields.
	Mutable() bool
	// Expect reports the `expect` modifier on declarations.
	Expect() bool
	// Stored reports whether a record parameter declares a backing field
	// (val/var) as opposed to a plain constructor parameter.
	Stored() bool
	// TypeText returns the declared type annotation text, if any.
	TypeText() string
	// TypeParams returns the declared type-parameter names of fun, class
	// and record declarations.
	TypeParams() []string
}
