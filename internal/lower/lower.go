package lower

import (
	"strings"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/source"
	"sable/internal/syntax"
)

// Lowerer drives one lowering pass. It is not safe for concurrent use;
// parallel lowering of independent units takes one Lowerer (and one
// Context) per unit.
type Lowerer struct {
	ctx      *Context
	reporter diag.Reporter
}

// New creates a Lowerer. A nil reporter drops sink copies of the
// diagnostics; error nodes still carry them inline.
func New(ctx *Context, reporter diag.Reporter) *Lowerer {
	if ctx == nil {
		ctx = NewContext()
	}
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Lowerer{ctx: ctx, reporter: reporter}
}

// Context returns the lowerer's build context.
func (l *Lowerer) Context() *Context {
	return l.ctx
}

// LowerUnit lowers a parsed file into an IR unit.
func (l *Lowerer) LowerUnit(path string, file syntax.Node) *ir.Unit {
	unit := &ir.Unit{Path: path}
	if file == nil {
		return unit
	}
	for _, decl := range file.Children() {
		if decl == nil {
			continue
		}
		switch decl.Kind() {
		case syntax.KindFunDecl:
			unit.Funcs = append(unit.Funcs, l.lowerFun(decl))
		case syntax.KindClassDecl, syntax.KindRecordDecl:
			unit.Classes = append(unit.Classes, l.lowerClass(decl))
		default:
			unit.Stmts = append(unit.Stmts, l.LowerExpr(decl))
		}
	}
	return unit
}

// LowerExpr lowers a single expression or statement subtree.
func (l *Lowerer) LowerExpr(n syntax.Node) *ir.Expr {
	return l.lowerExpr(n)
}

func (l *Lowerer) lowerFun(n syntax.Node) *ir.Function {
	name := n.Name()
	popName := l.ctx.PushName(name)
	defer popName()
	popExpect := l.ctx.PushExpect(n.Expect())
	defer popExpect()
	popTypes := l.ctx.PushTypeParams(n.TypeParams())
	defer popTypes()

	target := ir.NewFuncTarget(name)
	popFunc := l.ctx.PushFunc(target, name)
	defer popFunc()

	fn := &ir.Function{
		Name:       ir.SourceIdent(name),
		FqName:     l.ctx.Path(),
		Span:       n.Span(),
		Origin:     ir.OriginSource,
		ReturnType: n.TypeText(),
		Target:     target,
	}
	for _, p := range n.Params() {
		fn.Params = append(fn.Params, ir.Param{
			Name:     ir.SourceIdent(p.Name()),
			TypeText: p.TypeText(),
			Span:     p.Span(),
		})
	}
	if body := n.Body(); body != nil {
		fn.Body = l.lowerExpr(body)
	}
	target.Bind(fn)
	return fn
}

func (l *Lowerer) lowerClass(n syntax.Node) *ir.Class {
	name := n.Name()
	popName := l.ctx.PushName(name)
	defer popName()
	popExpect := l.ctx.PushExpect(n.Expect())
	defer popExpect()
	popTypes := l.ctx.PushTypeParams(n.TypeParams())
	defer popTypes()
	popRecv := l.ctx.PushReceiver(name)
	defer popRecv()

	class := &ir.Class{
		Name:   ir.SourceIdent(name),
		FqName: l.ctx.Path(),
		Span:   n.Span(),
		Record: n.Kind() == syntax.KindRecordDecl,
	}

	for _, p := range n.Params() {
		class.Fields = append(class.Fields, ir.Field{
			Name:     ir.SourceIdent(p.Name()),
			TypeText: p.TypeText(),
			Span:     p.Span(),
			Mutable:  p.Mutable(),
			Stored:   p.Stored(),
		})
	}

	// Expect records are headers; the actual declaration brings its own
	// members.
	if class.Record && !l.ctx.InExpect() {
		// The self type of a nested record is fully parameterized: every
		// type parameter in scope, outermost first.
		selfType := func() string {
			if captured := l.ctx.CapturedTypeParams(); len(captured) > 0 {
				return name + "<" + strings.Join(captured, ", ") + ">"
			}
			return name
		}
		fieldType := func(f ir.Field) string { return f.TypeText }
		class.Members = append(class.Members,
			l.generateRecordMembers(n.Span(), selfType, class.Fields, fieldType)...)
	}

	for _, member := range n.Children() {
		if member == nil {
			continue
		}
		switch member.Kind() {
		case syntax.KindFunDecl:
			class.Members = append(class.Members, l.lowerFun(member))
		case syntax.KindClassDecl, syntax.KindRecordDecl:
			class.Nested = append(class.Nested, l.lowerClass(member))
		default:
			class.Stmts = append(class.Stmts, l.lowerExpr(member))
		}
	}
	return class
}

// errorExpr reports a diagnostic to the sink and returns an error node
// carrying the same diagnostic inline.
func (l *Lowerer) errorExpr(span source.Span, code diag.Code, msg string) *ir.Expr {
	d := diag.NewError(code, span, msg)
	l.reporter.Report(d)
	return ir.NewError(span, d)
}

// report sends a soft diagnostic (the produced node stays well formed).
func (l *Lowerer) report(d diag.Diagnostic) {
	l.reporter.Report(d)
}

// newExpr builds an expression honoring the forced-origin override.
func (l *Lowerer) newExpr(kind ir.ExprKind, span source.Span, want ir.Origin, data ir.ExprData) *ir.Expr {
	return &ir.Expr{Kind: kind, Span: span, Origin: l.ctx.Origin(want), Data: data}
}
