package syntax

import (
	"sable/internal/source"
)

// tree is the concrete Node implementation produced by the parser and by
// test builders. All fields are set at construction and never mutated.
type tree struct {
	kind      Kind
	span      source.Span
	text      string
	unescaped string
	decodeOK  bool
	name      string
	label     string
	op        Op
	mutable   bool
	stored    bool
	expect    bool
	typeText  string

	typeParams []string

	receiver Node
	selector Node
	operand  Node
	left     Node
	right    Node
	cond     Node
	body     Node

	indices  []Node
	params   []Node
	children []Node
}

func (t *tree) Kind() Kind                 { return t.kind }
func (t *tree) Span() source.Span          { return t.span }
func (t *tree) Text() string               { return t.text }
func (t *tree) Unescaped() (string, bool)  { return t.unescaped, t.decodeOK }
func (t *tree) Name() string               { return t.name }
func (t *tree) Label() string              { return t.label }
func (t *tree) Op() Op                     { return t.op }
func (t *tree) Receiver() Node             { return t.receiver }
func (t *tree) Selector() Node             { return t.selector }
func (t *tree) Indices() []Node            { return t.indices }
func (t *tree) Operand() Node              { return t.operand }
func (t *tree) Left() Node                 { return t.left }
func (t *tree) Right() Node                { return t.right }
func (t *tree) Cond() Node                 { return t.cond }
func (t *tree) Body() Node                 { return t.body }
func (t *tree) Params() []Node             { return t.params }
func (t *tree) Children() []Node           { return t.children }
func (t *tree) Mutable() bool              { return t.mutable }
func (t *tree) Stored() bool               { return t.stored }
func (t *tree) Expect() bool               { return t.expect }
func (t *tree) TypeText() string           { return t.typeText }
func (t *tree) TypeParams() []string       { return t.typeParams }

// NewReference builds a bare name reference.
func NewReference(span source.Span, name string) Node {
	return &tree{kind: KindReference, span: span, name: name}
}

// NewThis builds a this-expression with an optional label.
func NewThis(span source.Span, label string) Node {
	return &tree{kind: KindThis, span: span, label: label}
}

// NewLiteral builds a literal leaf. kind must be one of the literal kinds.
func NewLiteral(kind Kind, span source.Span, text string) Node {
	return &tree{kind: kind, span: span, text: text}
}

// NewCharLiteral builds a character literal carrying its decoded content.
func NewCharLiteral(span source.Span, text, decoded string, ok bool) Node {
	return &tree{kind: KindCharLiteral, span: span, text: text, unescaped: decoded, decodeOK: ok}
}

// NewStringTemplate builds a string template from ordered segments.
func NewStringTemplate(span source.Span, segments []Node) Node {
	return &tree{kind: KindStringTemplate, span: span, children: segments}
}

// NewTemplateText builds a literal text segment.
func NewTemplateText(span source.Span, text string) Node {
	return &tree{kind: KindTemplateText, span: span, text: text, unescaped: text, decodeOK: true}
}

// NewTemplateEscape builds an escape segment carrying the decoded rune.
func NewTemplateEscape(span source.Span, raw, decoded string, ok bool) Node {
	return &tree{kind: KindTemplateEscape, span: span, text: raw, unescaped: decoded, decodeOK: ok}
}

// NewTemplateEntry wraps an interpolated expression segment.
func NewTemplateEntry(span source.Span, expr Node) Node {
	return &tree{kind: KindTemplateEntry, span: span, operand: expr}
}

// NewCall builds a call with a callee expression and ordered arguments.
func NewCall(span source.Span, callee Node, args []Node) Node {
	return &tree{kind: KindCall, span: span, operand: callee, children: args}
}

// NewQualified builds `receiver.selector` or `receiver?.selector`.
func NewQualified(span source.Span, receiver, selector Node, safe bool) Node {
	k := KindQualified
	if safe {
		k = KindSafeQualified
	}
	return &tree{kind: k, span: span, receiver: receiver, selector: selector}
}

// NewArrayAccess builds `receiver[indices...]`.
func NewArrayAccess(span source.Span, receiver Node, indices []Node) Node {
	return &tree{kind: KindArrayAccess, span: span, receiver: receiver, indices: indices}
}

// NewParen wraps an expression in parentheses.
func NewParen(span source.Span, inner Node) Node {
	return &tree{kind: KindParen, span: span, operand: inner}
}

// NewLabeled attaches `label@` to an expression.
func NewLabeled(span source.Span, label string, inner Node) Node {
	return &tree{kind: KindLabeled, span: span, label: label, operand: inner}
}

// NewAnnotated attaches `@Name` to an expression.
func NewAnnotated(span source.Span, name string, inner Node) Node {
	return &tree{kind: KindAnnotated, span: span, name: name, operand: inner}
}

// NewPrefix builds a prefix unary expression. operand may be nil for
// malformed input; lowering turns that into a syntax error node.
func NewPrefix(span source.Span, op Op, operand Node) Node {
	return &tree{kind: KindPrefix, span: span, op: op, operand: operand}
}

// NewPostfix builds a postfix unary expression.
func NewPostfix(span source.Span, op Op, operand Node) Node {
	return &tree{kind: KindPostfix, span: span, op: op, operand: operand}
}

// NewBinary builds a binary expression, including assignment forms.
func NewBinary(span source.Span, op Op, left, right Node) Node {
	return &tree{kind: KindBinary, span: span, op: op, left: left, right: right}
}

// NewBreak and NewContinue build loop jumps with an optional label.
func NewBreak(span source.Span, label string) Node {
	return &tree{kind: KindBreak, span: span, label: label}
}

func NewContinue(span source.Span, label string) Node {
	return &tree{kind: KindContinue, span: span, label: label}
}

// NewReturn builds a return with an optional label and value.
func NewReturn(span source.Span, label string, value Node) Node {
	return &tree{kind: KindReturn, span: span, label: label, operand: value}
}

// NewBlock builds a `{ ... }` statement sequence.
func NewBlock(span source.Span, stmts []Node) Node {
	return &tree{kind: KindBlock, span: span, children: stmts}
}

// NewWhile and NewDoWhile build loops.
func NewWhile(span source.Span, cond, body Node) Node {
	return &tree{kind: KindWhile, span: span, cond: cond, body: body}
}

func NewDoWhile(span source.Span, cond, body Node) Node {
	return &tree{kind: KindDoWhile, span: span, cond: cond, body: body}
}

// NewVarDecl builds `val`/`var` with an optional type and initializer.
func NewVarDecl(span source.Span, name string, mutable bool, typeText string, init Node) Node {
	return &tree{kind: KindVarDecl, span: span, name: name, mutable: mutable, typeText: typeText, operand: init}
}

// NewParam builds a function or record parameter. stored marks record
// val/var parameters that declare a backing field.
func NewParam(span source.Span, name, typeText string, mutable, stored bool) Node {
	return &tree{kind: KindParam, span: span, name: name, typeText: typeText, mutable: mutable, stored: stored}
}

// NewFunDecl builds a function declaration.
func NewFunDecl(span source.Span, name string, typeParams []string, params []Node, returnType string, body Node, expect bool) Node {
	return &tree{kind: KindFunDecl, span: span, name: name, typeParams: typeParams, params: params, typeText: returnType, body: body, expect: expect}
}

// NewClassDecl builds a class with optional constructor parameters and
// ordered member declarations.
func NewClassDecl(span source.Span, name string, typeParams []string, params []Node, members []Node, expect bool) Node {
	return &tree{kind: KindClassDecl, span: span, name: name, typeParams: typeParams, params: params, children: members, expect: expect}
}

// NewRecordDecl builds a value-holder declaration.
func NewRecordDecl(span source.Span, name string, typeParams []string, params []Node, members []Node, expect bool) Node {
	return &tree{kind: KindRecordDecl, span: span, name: name, typeParams: typeParams, params: params, children: members, expect: expect}
}

// NewFile wraps top-level declarations and statements.
func NewFile(span source.Span, decls []Node) Node {
	return &tree{kind: KindFile, span: span, children: decls}
}
