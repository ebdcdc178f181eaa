package ir

import (
	"sable/internal/fqname"
	"sable/internal/source"
)

// Unit is the lowered form of one compilation unit.
type Unit struct {
	Path    string
	Funcs   []*Function
	Classes []*Class
	Stmts   []*Expr // top-level statements
}

// Function is a lowered function declaration. Generated members
// (componentN, copy) have a nil Body.
type Function struct {
	Name       Ident
	FqName     fqname.FqName
	Span       source.Span
	Origin     Origin
	Operator   bool
	Params     []Param
	ReturnType string
	Body       *Expr
	Target     *FuncTarget
}

// Param is a function value parameter.
type Param struct {
	Name     Ident
	TypeText string
	Span     source.Span
	Default  *Expr // nil when the parameter has no default
}

// Class is a lowered class or record declaration.
type Class struct {
	Name    Ident
	FqName  fqname.FqName
	Span    source.Span
	Record  bool
	Fields  []Field
	Members []*Function
	Nested  []*Class
	Stmts   []*Expr // initializer statements
}

// Field is a stored or plain constructor parameter of a record, or a
// class property. Stored fields back componentN/copy generation.
type Field struct {
	Name     Ident
	TypeText string
	Span     source.Span
	Mutable  bool
	Stored   bool
}
