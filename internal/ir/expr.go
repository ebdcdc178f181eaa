package ir

import (
	"sable/internal/diag"
	"sable/internal/source"
)

// ExprKind enumerates IR expression kinds.
type ExprKind uint8

const (
	// ExprConst is a typed constant.
	ExprConst ExprKind = iota
	// ExprError stands in for a malformed sub-expression. It always
	// carries a non-empty diagnostic; lowering keeps going around it.
	ExprError
	// ExprBlock is a statement sequence; its value is the trailing
	// expression.
	ExprBlock
	// ExprCall is a function or operator call with an optional explicit
	// receiver.
	ExprCall
	// ExprPropertyAccess reads a variable or property with no explicit
	// receiver.
	ExprPropertyAccess
	// ExprQualifiedAccess reads a member off an explicit receiver.
	ExprQualifiedAccess
	// ExprVarAssign writes a variable or property.
	ExprVarAssign
	// ExprSafeCall evaluates the receiver once and short-circuits the
	// selector when the receiver is null.
	ExprSafeCall
	// ExprThis references the dispatch receiver, optionally labeled.
	ExprThis
	// ExprLoop is a while or do-while loop.
	ExprLoop
	// ExprLoopJump is a break or continue bound to a loop target.
	ExprLoopJump
	// ExprReturn returns from a function target with an optional value.
	ExprReturn
	// ExprVarDecl is a local binding statement inside a block. Desugaring
	// uses it for temporaries.
	ExprVarDecl
	// ExprStringConcat concatenates string template parts in source
	// order. Template lowering only builds it when at least one true
	// interpolated expression is present.
	ExprStringConcat
)

func (k ExprKind) String() string {
	switch k {
	case ExprConst:
		return "Const"
	case ExprError:
		return "Error"
	case ExprBlock:
		return "Block"
	case ExprCall:
		return "Call"
	case ExprPropertyAccess:
		return "Access"
	case ExprQualifiedAccess:
		return "QualifiedAccess"
	case ExprVarAssign:
		return "Assign"
	case ExprSafeCall:
		return "SafeCall"
	case ExprThis:
		return "This"
	case ExprLoop:
		return "Loop"
	case ExprLoopJump:
		return "LoopJump"
	case ExprReturn:
		return "Return"
	case ExprVarDecl:
		return "VarDecl"
	case ExprStringConcat:
		return "StringConcat"
	default:
		return "Unknown"
	}
}

// Expr is an IR expression node.
type Expr struct {
	Kind   ExprKind
	Span   source.Span
	Origin Origin
	Data   ExprData
}

// ExprData is the kind-specific payload.
type ExprData interface {
	exprData()
}

// ConstData holds data for ExprConst.
type ConstData struct {
	Value ConstValue
}

// ErrorData holds data for ExprError.
type ErrorData struct {
	Diag diag.Diagnostic
}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Stmts []*Expr
}

// CallData holds data for ExprCall.
type CallData struct {
	Callee   Ref
	Receiver *Expr // nil for plain calls
	Args     []*Expr
}

// AccessData holds data for ExprPropertyAccess and ExprQualifiedAccess.
// Receiver is nil exactly for ExprPropertyAccess.
type AccessData struct {
	Callee   Ref
	Receiver *Expr
}

// AssignData holds data for ExprVarAssign.
type AssignData struct {
	Callee   Ref
	Receiver *Expr // nil when assigning through the implicit receiver
	Value    *Expr
}

// SafeCallData holds data for ExprSafeCall. Subject is the temporary
// bound to the receiver; Selector reads or writes through it and runs
// only when the subject is non-null.
type SafeCallData struct {
	Receiver *Expr
	Subject  Ident
	Selector *Expr
}

// ThisData holds data for ExprThis.
type ThisData struct {
	Label string
}

// LoopKind separates while from do-while.
type LoopKind uint8

const (
	LoopWhile LoopKind = iota
	LoopDoWhile
)

func (k LoopKind) String() string {
	if k == LoopDoWhile {
		return "do-while"
	}
	return "while"
}

// LoopData holds data for ExprLoop.
type LoopData struct {
	Loop  LoopKind
	Cond  *Expr
	Body  *Expr
	Label string
}

// LoopJumpData holds data for ExprLoopJump.
type LoopJumpData struct {
	IsBreak bool
	Target  *LoopTarget
}

// ReturnData holds data for ExprReturn.
type ReturnData struct {
	Target *FuncTarget
	Value  *Expr // nil for bare return
}

// VarDeclData holds data for ExprVarDecl.
type VarDeclData struct {
	Name     Ident
	Mutable  bool
	TypeText string
	Init     *Expr
}

// StringConcatData holds data for ExprStringConcat.
type StringConcatData struct {
	Parts []*Expr
}

func (ConstData) exprData()    {}
func (ErrorData) exprData()    {}
func (BlockData) exprData()    {}
func (CallData) exprData()     {}
func (AccessData) exprData()   {}
func (AssignData) exprData()   {}
func (SafeCallData) exprData() {}
func (ThisData) exprData()     {}
func (LoopData) exprData()     {}
func (LoopJumpData) exprData() {}
func (ReturnData) exprData()   {}
func (VarDeclData) exprData()  {}

func (StringConcatData) exprData() {}

// NewConst builds a constant expression.
func NewConst(span source.Span, origin Origin, v ConstValue) *Expr {
	return &Expr{Kind: ExprConst, Span: span, Origin: origin, Data: ConstData{Value: v}}
}

// NewError builds an error expression. The diagnostic must be non-empty.
func NewError(span source.Span, d diag.Diagnostic) *Expr {
	if d.Message == "" {
		panic("ir: error expression without diagnostic")
	}
	return &Expr{Kind: ExprError, Span: span, Origin: OriginSource, Data: ErrorData{Diag: d}}
}

// Diagnostic returns the attached diagnostic of an ExprError, if any.
func (e *Expr) Diagnostic() (diag.Diagnostic, bool) {
	if e == nil || e.Kind != ExprError {
		return diag.Diagnostic{}, false
	}
	d, ok := e.Data.(ErrorData)
	return d.Diag, ok
}
