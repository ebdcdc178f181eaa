package ir

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/source"
)

// LoopTarget is a forward-reference cell for break/continue. It is
// created before the loop body is lowered and bound to the loop
// expression exactly once when the loop IR is finalized, so jumps
// lowered inside the body can reference the loop by identity.
type LoopTarget struct {
	label string
	loop  *Expr
	bound bool
}

// NewLoopTarget creates an unbound target with an optional label.
func NewLoopTarget(label string) *LoopTarget {
	return &LoopTarget{label: label}
}

// NewErrorLoopTarget fabricates a target pre-bound to an error-carrying
// placeholder loop, so later passes can type-check around a failed label
// binding without nil-checking every jump.
func NewErrorLoopTarget(span source.Span, d diag.Diagnostic) *LoopTarget {
	t := &LoopTarget{}
	placeholder := &Expr{
		Kind:   ExprLoop,
		Span:   span,
		Origin: OriginErrorPlaceholder,
		Data: LoopData{
			Loop: LoopWhile,
			Cond: NewError(span, d),
			Body: &Expr{Kind: ExprBlock, Span: span, Origin: OriginErrorPlaceholder, Data: BlockData{}},
		},
	}
	t.Bind(placeholder)
	return t
}

// Bind attaches the loop expression. Binding twice is a bug.
func (t *LoopTarget) Bind(loop *Expr) {
	if t.bound {
		panic("ir: loop target bound twice")
	}
	if loop == nil || loop.Kind != ExprLoop {
		panic(fmt.Sprintf("ir: loop target bound to %v", loop))
	}
	t.loop = loop
	t.bound = true
}

// Loop returns the bound loop. Reading an unbound target is a bug.
func (t *LoopTarget) Loop() *Expr {
	if !t.bound {
		panic("ir: loop target read before binding")
	}
	return t.loop
}

// Bound reports whether Bind has been called.
func (t *LoopTarget) Bound() bool {
	return t.bound
}

// Label returns the loop's label, or "".
func (t *LoopTarget) Label() string {
	return t.label
}

// IsError reports whether the target is an error placeholder.
func (t *LoopTarget) IsError() bool {
	return t.bound && t.loop.Origin == OriginErrorPlaceholder
}

// FuncTarget is the return counterpart of LoopTarget: created before a
// function body is lowered and bound to the finished function once.
type FuncTarget struct {
	label string
	fn    *Function
	bound bool
}

// NewFuncTarget creates an unbound function target with an optional label.
func NewFuncTarget(label string) *FuncTarget {
	return &FuncTarget{label: label}
}

// NewErrorFuncTarget fabricates a target pre-bound to an error-carrying
// placeholder function.
func NewErrorFuncTarget(span source.Span, d diag.Diagnostic) *FuncTarget {
	t := &FuncTarget{}
	t.Bind(&Function{
		Name:   Ident{Text: "<error>", Kind: IdentTemp},
		Origin: OriginErrorPlaceholder,
		Body:   NewError(span, d),
	})
	return t
}

// Bind attaches the function. Binding twice is a bug.
func (t *FuncTarget) Bind(fn *Function) {
	if t.bound {
		panic("ir: function target bound twice")
	}
	if fn == nil {
		panic("ir: function target bound to nil")
	}
	t.fn = fn
	t.bound = true
}

// Function returns the bound function. Reading an unbound target is a bug.
func (t *FuncTarget) Function() *Function {
	if !t.bound {
		panic("ir: function target read before binding")
	}
	return t.fn
}

// Bound reports whether Bind has been called.
func (t *FuncTarget) Bound() bool {
	return t.bound
}

// Label returns the function's label, or "".
func (t *FuncTarget) Label() string {
	return t.label
}

// IsError reports whether the target is an error placeholder.
func (t *FuncTarget) IsError() bool {
	return t.bound && t.fn.Origin == OriginErrorPlaceholder
}
