package lower

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/source"
	"sable/internal/syntax"
)

// lowerIncDec expands `x++`, `--x`, `a.b++` and `arr[i]++` into an
// explicit block of temporary bindings and calls. The strategy is picked
// by the statically observed shape of the unwrapped argument. Prefix and
// postfix differ only in which temporary is the block's trailing result
// and in whether the reassignment uses the new-value temporary or the
// operator call inline.
func (l *Lowerer) lowerIncDec(n syntax.Node, prefix bool) *ir.Expr {
	opName, ok := stepOperatorName(n.Op())
	if !ok {
		panic(fmt.Sprintf("lower: inc/dec with operator %q", n.Op()))
	}
	origin := ir.OriginIncrement
	if n.Op() == syntax.OpDec {
		origin = ir.OriginDecrement
	}

	arg := syntax.Deparenthesize(n.Operand())
	if arg == nil {
		return l.errorExpr(n.Span(), diag.LowSyntax,
			fmt.Sprintf("operand of %q is missing", n.Op()))
	}

	switch arg.Kind() {
	case syntax.KindReference:
		return l.incDecPlain(n.Span(), arg, opName, origin, prefix)
	case syntax.KindQualified:
		return l.incDecQualified(n.Span(), arg, opName, origin, prefix)
	case syntax.KindArrayAccess:
		return l.incDecArray(n.Span(), arg, opName, origin, prefix)
	default:
		return l.errorExpr(arg.Span(), diag.LowVariableExpected,
			fmt.Sprintf("variable expected as operand of %q", n.Op()))
	}
}

// incDecPlain handles a bare variable. The prefix form skips the
// pre-operation temporary and reassigns directly.
func (l *Lowerer) incDecPlain(span source.Span, arg syntax.Node, opName string, origin ir.Origin, prefix bool) *ir.Expr {
	name := arg.Name()

	if prefix {
		// { x = x.inc(); ^x }
		assign := l.newExpr(ir.ExprVarAssign, span, origin, ir.AssignData{
			Callee: ir.NamedRef(name),
			Value: l.newExpr(ir.ExprCall, span, origin, ir.CallData{
				Callee: ir.NamedRef(opName),
				Receiver: l.newExpr(ir.ExprPropertyAccess, arg.Span(), origin, ir.AccessData{
					Callee: ir.NamedRef(name),
				}),
			}),
		})
		result := l.newExpr(ir.ExprPropertyAccess, span, origin, ir.AccessData{
			Callee: ir.NamedRef(name),
		})
		return l.newExpr(ir.ExprBlock, span, origin, ir.BlockData{
			Stmts: []*ir.Expr{assign, result},
		})
	}

	// { val <unary> = x; x = <unary>.inc(); ^<unary> }
	old := l.ctx.NewTemp("unary")
	decl := l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
		Name: old,
		Init: l.newExpr(ir.ExprPropertyAccess, arg.Span(), origin, ir.AccessData{
			Callee: ir.NamedRef(name),
		}),
	})
	assign := l.newExpr(ir.ExprVarAssign, span, origin, ir.AssignData{
		Callee: ir.NamedRef(name),
		Value: l.newExpr(ir.ExprCall, span, origin, ir.CallData{
			Callee:   ir.NamedRef(opName),
			Receiver: l.tempAccess(span, old, origin),
		}),
	})
	return l.newExpr(ir.ExprBlock, span, origin, ir.BlockData{
		Stmts: []*ir.Expr{decl, assign, l.tempAccess(span, old, origin)},
	})
}

// incDecQualified handles `a.b`. The receiver is captured in a temporary
// exactly once regardless of prefix/postfix, so its side effects run once.
func (l *Lowerer) incDecQualified(span source.Span, arg syntax.Node, opName string, origin ir.Origin, prefix bool) *ir.Expr {
	recv := arg.Receiver()
	sel := syntax.Deparenthesize(arg.Selector())
	if recv == nil || sel == nil || sel.Kind() != syntax.KindReference {
		return l.errorExpr(arg.Span(), diag.LowSyntax, "malformed qualified access")
	}
	member := sel.Name()

	recvTmp := l.ctx.NewTemp("receiver")
	recvDecl := l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
		Name: recvTmp,
		Init: l.lowerExpr(recv),
	})
	readMember := func() *ir.Expr {
		return l.newExpr(ir.ExprQualifiedAccess, sel.Span(), origin, ir.AccessData{
			Callee:   ir.NamedRef(member),
			Receiver: l.tempAccess(span, recvTmp, origin),
		})
	}
	writeMember := func(value *ir.Expr) *ir.Expr {
		return l.newExpr(ir.ExprVarAssign, span, origin, ir.AssignData{
			Callee:   ir.NamedRef(member),
			Receiver: l.tempAccess(span, recvTmp, origin),
			Value:    value,
		})
	}

	if prefix {
		// { val r = a; val <unary> = r.b.inc(); r.b = <unary>; ^<unary> }
		newVal := l.ctx.NewTemp("unary")
		newDecl := l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
			Name: newVal,
			Init: l.newExpr(ir.ExprCall, span, origin, ir.CallData{
				Callee:   ir.NamedRef(opName),
				Receiver: readMember(),
			}),
		})
		return l.newExpr(ir.ExprBlock, span, origin, ir.BlockData{
			Stmts: []*ir.Expr{
				recvDecl,
				newDecl,
				writeMember(l.tempAccess(span, newVal, origin)),
				l.tempAccess(span, newVal, origin),
			},
		})
	}

	// { val r = a; val <unary> = r.b; r.b = <unary>.inc(); ^<unary> }
	old := l.ctx.NewTemp("unary")
	oldDecl := l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
		Name: old,
		Init: readMember(),
	})
	return l.newExpr(ir.ExprBlock, span, origin, ir.BlockData{
		Stmts: []*ir.Expr{
			recvDecl,
			oldDecl,
			writeMember(l.newExpr(ir.ExprCall, span, origin, ir.CallData{
				Callee:   ir.NamedRef(opName),
				Receiver: l.tempAccess(span, old, origin),
			})),
			l.tempAccess(span, old, origin),
		},
	})
}

// incDecArray handles `a[i, j]`. The array and every index expression
// are each captured in a temporary and evaluated exactly once; the block
// then issues get, the operator call, and set against the temporaries.
func (l *Lowerer) incDecArray(span source.Span, arg syntax.Node, opName string, origin ir.Origin, prefix bool) *ir.Expr {
	recv := arg.Receiver()
	if recv == nil {
		return l.errorExpr(arg.Span(), diag.LowSyntax, "malformed array access")
	}

	stmts := make([]*ir.Expr, 0, len(arg.Indices())+4)

	arrTmp := l.ctx.NewTemp("array")
	stmts = append(stmts, l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
		Name: arrTmp,
		Init: l.lowerExpr(recv),
	}))

	idxTmps := make([]ir.Ident, 0, len(arg.Indices()))
	for i, idx := range arg.Indices() {
		tmp := l.ctx.NewTemp(fmt.Sprintf("index%d", i))
		var init *ir.Expr
		if idx != nil {
			init = l.lowerExpr(idx)
		} else {
			init = l.errorExpr(arg.Span(), diag.LowExpressionExpected, "expected index expression")
		}
		stmts = append(stmts, l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
			Name: tmp,
			Init: init,
		}))
		idxTmps = append(idxTmps, tmp)
	}

	indexArgs := func() []*ir.Expr {
		out := make([]*ir.Expr, 0, len(idxTmps)+1)
		for _, tmp := range idxTmps {
			out = append(out, l.tempAccess(span, tmp, origin))
		}
		return out
	}
	getCall := func() *ir.Expr {
		return l.newExpr(ir.ExprCall, span, origin, ir.CallData{
			Callee:   ir.NamedRef(getName),
			Receiver: l.tempAccess(span, arrTmp, origin),
			Args:     indexArgs(),
		})
	}
	setCall := func(value *ir.Expr) *ir.Expr {
		return l.newExpr(ir.ExprCall, span, origin, ir.CallData{
			Callee:   ir.NamedRef(setName),
			Receiver: l.tempAccess(span, arrTmp, origin),
			Args:     append(indexArgs(), value),
		})
	}

	if prefix {
		// { ...; val <unary> = a'.get(i').inc(); a'.set(i', <unary>); ^<unary> }
		newVal := l.ctx.NewTemp("unary")
		stmts = append(stmts,
			l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
				Name: newVal,
				Init: l.newExpr(ir.ExprCall, span, origin, ir.CallData{
					Callee:   ir.NamedRef(opName),
					Receiver: getCall(),
				}),
			}),
			setCall(l.tempAccess(span, newVal, origin)),
			l.tempAccess(span, newVal, origin),
		)
	} else {
		// { ...; val <unary> = a'.get(i'); a'.set(i', <unary>.inc()); ^<unary> }
		old := l.ctx.NewTemp("unary")
		stmts = append(stmts,
			l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
				Name: old,
				Init: getCall(),
			}),
			setCall(l.newExpr(ir.ExprCall, span, origin, ir.CallData{
				Callee:   ir.NamedRef(opName),
				Receiver: l.tempAccess(span, old, origin),
			})),
			l.tempAccess(span, old, origin),
		)
	}

	return l.newExpr(ir.ExprBlock, span, origin, ir.BlockData{Stmts: stmts})
}
