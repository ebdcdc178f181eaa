package lower

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/syntax"
)

// lowerAssignment dispatches `=` and the compound operators by the shape
// of the left-hand side. Subscript targets go through get/set calls, a
// safe-access target has its chain tail rewritten into a write, and
// everything else resolves to a plain assignment or a single
// assignment-operator call.
func (l *Lowerer) lowerAssignment(n syntax.Node) *ir.Expr {
	op := n.Op()
	left := syntax.Deparenthesize(n.Left())
	right := n.Right()
	if left == nil || right == nil {
		return l.errorExpr(n.Span(), diag.LowSyntax, "malformed assignment")
	}

	if op.IsCompoundAssignment() {
		if left.Kind() == syntax.KindArrayAccess {
			return l.compoundArrayAssign(n, left, right)
		}
		return l.compoundAssign(n, left, right)
	}

	switch left.Kind() {
	case syntax.KindArrayAccess:
		// arr[i] = v becomes arr.set(i, v). The value is parked in the
		// side table so the subscript lowering picks it up without the
		// indices being lowered twice.
		l.ctx.RecordPendingStore(left, l.lowerExpr(right))
		return l.lowerExpr(left)

	case syntax.KindReference:
		return l.newExpr(ir.ExprVarAssign, n.Span(), ir.OriginSource, ir.AssignData{
			Callee: ir.NamedRef(left.Name()),
			Value:  l.lowerExpr(right),
		})

	case syntax.KindThis:
		return l.newExpr(ir.ExprVarAssign, n.Span(), ir.OriginSource, ir.AssignData{
			Callee: ir.ThisRef(left.Label()),
			Value:  l.lowerExpr(right),
		})

	case syntax.KindQualified:
		recv := left.Receiver()
		sel := syntax.Deparenthesize(left.Selector())
		if recv == nil || sel == nil || sel.Kind() != syntax.KindReference {
			return l.errorExpr(left.Span(), diag.LowSyntax, "malformed qualified access")
		}
		return l.newExpr(ir.ExprVarAssign, n.Span(), ir.OriginSource, ir.AssignData{
			Callee:   ir.NamedRef(sel.Name()),
			Receiver: l.lowerExpr(recv),
			Value:    l.lowerExpr(right),
		})

	case syntax.KindSafeQualified:
		return l.safeAssign(n, left, right)

	default:
		return l.errorExpr(left.Span(), diag.LowVariableExpected,
			"variable expected on the left-hand side of assignment")
	}
}

// safeAssign lowers `a?.b = v`. The receiver is bound to the subject
// temporary and the write, including the right-hand side, sits inside
// the selector, so a null receiver skips evaluating `v` entirely.
func (l *Lowerer) safeAssign(n, left, right syntax.Node) *ir.Expr {
	recv := left.Receiver()
	sel := syntax.Deparenthesize(left.Selector())
	if recv == nil || sel == nil || sel.Kind() != syntax.KindReference {
		return l.errorExpr(left.Span(), diag.LowSyntax, "malformed safe access")
	}

	receiver := l.lowerExpr(recv)
	subject := l.ctx.NewTemp("safe")
	write := l.newExpr(ir.ExprVarAssign, n.Span(), ir.OriginSafeAccess, ir.AssignData{
		Callee:   ir.NamedRef(sel.Name()),
		Receiver: l.tempAccess(sel.Span(), subject, ir.OriginSafeAccess),
		Value:    l.lowerExpr(right),
	})
	return l.newExpr(ir.ExprSafeCall, n.Span(), ir.OriginSource, ir.SafeCallData{
		Receiver: receiver,
		Subject:  subject,
		Selector: write,
	})
}

// compoundAssign lowers `x += v` for non-subscript targets into a single
// plusAssign-style call statement.
func (l *Lowerer) compoundAssign(n, left, right syntax.Node) *ir.Expr {
	name, ok := assignOperatorName(n.Op())
	if !ok {
		return l.errorExpr(n.Span(), diag.LowSyntax,
			fmt.Sprintf("unsupported operator %q", n.Op()))
	}
	lhs := l.lowerExpr(left)
	return l.newExpr(ir.ExprCall, n.Span(), ir.OriginCompoundAssign, ir.CallData{
		Callee:   ir.NamedRef(name),
		Receiver: lhs,
		Args:     []*ir.Expr{l.lowerExpr(right)},
	})
}

// compoundArrayAssign lowers `arr[i] += v` into the temporary-based
// get/plus/set block. Unlike the non-subscript form this uses the simple
// operator name inside the set call, not plusAssign.
func (l *Lowerer) compoundArrayAssign(n, left, right syntax.Node) *ir.Expr {
	name, ok := simpleOperatorName(n.Op())
	if !ok {
		return l.errorExpr(n.Span(), diag.LowSyntax,
			fmt.Sprintf("unsupported operator %q", n.Op()))
	}
	recv := left.Receiver()
	if recv == nil {
		return l.errorExpr(left.Span(), diag.LowSyntax, "malformed array access")
	}
	span := n.Span()
	origin := ir.OriginCompoundAssign

	stmts := make([]*ir.Expr, 0, len(left.Indices())+2)

	arrTmp := l.ctx.NewTemp("array")
	stmts = append(stmts, l.newExpr(ir.ExprVarDecl, span, origin, ir.VarDeclData{
		Name: arrTmp,
		Init: l.lowerExpr(recv),
	}))

	idxTmps := make([]ir.Ident, 0, len(left.Indices()))
	for i, idx := range left.Indices() {
		tmp := l.ctx.NewTemp(fmt.Sprintf("index%d", i))
		var init *ir.Expr
		if idx != nil {
			init = l.lowerExpr(idx)
		} else {
			init = l.errorExpr(left.Span(), diag.LowExpressionExpected, "expected index expression")
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

	// a'.set(i', a'.get(i').plus(v))
	newVal := l.newExpr(ir.ExprCall, span, origin, ir.CallData{
		Callee: ir.NamedRef(name),
		Receiver: l.newExpr(ir.ExprCall, span, origin, ir.CallData{
			Callee:   ir.NamedRef(getName),
			Receiver: l.tempAccess(span, arrTmp, origin),
			Args:     indexArgs(),
		}),
		Args: []*ir.Expr{l.lowerExpr(right)},
	})
	stmts = append(stmts, l.newExpr(ir.ExprCall, span, origin, ir.CallData{
		Callee:   ir.NamedRef(setName),
		Receiver: l.tempAccess(span, arrTmp, origin),
		Args:     append(indexArgs(), newVal),
	}))

	return l.newExpr(ir.ExprBlock, span, origin, ir.BlockData{Stmts: stmts})
}
