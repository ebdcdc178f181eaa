package lower

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/source"
	"sable/internal/syntax"
)

// lowerExpr translates one expression subtree. Every recoverable failure
// becomes a local error node; lowering of siblings continues around it.
func (l *Lowerer) lowerExpr(n syntax.Node) *ir.Expr {
	if n == nil {
		panic("lower: nil expression node")
	}

	switch n.Kind() {
	case syntax.KindParen, syntax.KindAnnotated:
		inner := n.Operand()
		if inner == nil {
			return l.errorExpr(n.Span(), diag.LowExpressionExpected, "expected expression")
		}
		return l.lowerExpr(inner)

	case syntax.KindLabeled:
		return l.lowerLabeled(n)

	case syntax.KindReference:
		return l.newExpr(ir.ExprPropertyAccess, n.Span(), ir.OriginSource,
			ir.AccessData{Callee: ir.NamedRef(n.Name())})

	case syntax.KindThis:
		return l.lowerThis(n)

	case syntax.KindIntLiteral, syntax.KindFloatLiteral, syntax.KindCharLiteral,
		syntax.KindBoolLiteral, syntax.KindNullLiteral:
		return l.lowerLiteral(n)

	case syntax.KindStringTemplate:
		return l.lowerStringTemplate(n, l.lowerExpr)

	case syntax.KindCall:
		return l.lowerCall(n)

	case syntax.KindQualified:
		return l.lowerQualified(n)

	case syntax.KindSafeQualified:
		return l.lowerSafeQualified(n)

	case syntax.KindArrayAccess:
		return l.lowerArrayAccess(n)

	case syntax.KindPrefix:
		return l.lowerPrefix(n)

	case syntax.KindPostfix:
		return l.lowerPostfix(n)

	case syntax.KindBinary:
		return l.lowerBinary(n)

	case syntax.KindBreak, syntax.KindContinue:
		return l.lowerLoopJump(n)

	case syntax.KindReturn:
		return l.lowerReturn(n)

	case syntax.KindBlock:
		return l.lowerBlock(n)

	case syntax.KindWhile, syntax.KindDoWhile:
		return l.lowerLoop(n, "")

	case syntax.KindVarDecl:
		return l.lowerVarDecl(n)

	default:
		// The element-kind vocabulary is closed; a declaration or
		// template segment in expression position means the parser and
		// the lowering disagree about the tree shape.
		panic(fmt.Sprintf("lower: unexpected element kind %v in expression position", n.Kind()))
	}
}

func (l *Lowerer) lowerLiteral(n syntax.Node) *ir.Expr {
	v, d, ok := ParseLiteral(n.Kind(), n.Text(), n.Span())
	if !ok {
		l.report(*d)
		return ir.NewError(n.Span(), *d)
	}
	if d != nil {
		l.report(*d)
	}
	return l.newExpr(ir.ExprConst, n.Span(), ir.OriginSource, ir.ConstData{Value: v})
}

func (l *Lowerer) lowerThis(n syntax.Node) *ir.Expr {
	label := n.Label()
	if label != "" && !l.ctx.HasReceiverNamed(label) && !l.ctx.HasLabel(label) {
		return l.errorExpr(n.Span(), diag.LowUnresolvedLabel,
			fmt.Sprintf("unresolved label %q", label))
	}
	return l.newExpr(ir.ExprThis, n.Span(), ir.OriginSource, ir.ThisData{Label: label})
}

func (l *Lowerer) lowerLabeled(n syntax.Node) *ir.Expr {
	label := n.Label()
	inner := unwrapTransparent(n.Operand())
	if inner == nil {
		return l.errorExpr(n.Span(), diag.LowExpressionExpected, "expected labeled expression")
	}
	if inner.Kind() == syntax.KindWhile || inner.Kind() == syntax.KindDoWhile {
		return l.lowerLoop(inner, label)
	}
	pop := l.ctx.PushLabel(label)
	defer pop()
	return l.lowerExpr(inner)
}

// unwrapTransparent strips parens and annotations but keeps labels, so a
// label can reach through `lbl@ (while ...)`.
func unwrapTransparent(n syntax.Node) syntax.Node {
	for n != nil {
		switch n.Kind() {
		case syntax.KindParen, syntax.KindAnnotated:
			n = n.Operand()
		default:
			return n
		}
	}
	return nil
}

func (l *Lowerer) lowerLoop(n syntax.Node, label string) *ir.Expr {
	kind := ir.LoopWhile
	if n.Kind() == syntax.KindDoWhile {
		kind = ir.LoopDoWhile
	}

	target := ir.NewLoopTarget(label)
	pop := l.ctx.PushLoop(target, label)
	defer pop()

	var cond, body *ir.Expr
	if c := n.Cond(); c != nil {
		cond = l.lowerExpr(c)
	} else {
		cond = l.errorExpr(n.Span(), diag.LowSyntax, "loop condition missing")
	}
	if b := n.Body(); b != nil {
		body = l.lowerExpr(b)
	} else {
		body = l.newExpr(ir.ExprBlock, n.Span(), ir.OriginSource, ir.BlockData{})
	}

	loop := l.newExpr(ir.ExprLoop, n.Span(), ir.OriginSource, ir.LoopData{
		Loop:  kind,
		Cond:  cond,
		Body:  body,
		Label: label,
	})
	target.Bind(loop)
	return loop
}

func (l *Lowerer) lowerLoopJump(n syntax.Node) *ir.Expr {
	isBreak := n.Kind() == syntax.KindBreak
	word := "continue"
	if isBreak {
		word = "break"
	}

	var target *ir.LoopTarget
	if label := n.Label(); label != "" {
		resolved, lookup := l.ctx.ResolveLoopLabel(label)
		switch lookup {
		case labelFound:
			target = resolved
		case labelWrongKind:
			d := diag.NewError(diag.LowNotLoopLabel, n.Span(),
				fmt.Sprintf("label %q does not denote a loop", label))
			l.report(d)
			target = ir.NewErrorLoopTarget(n.Span(), d)
		case labelUnresolved:
			d := diag.NewError(diag.LowUnresolvedLabel, n.Span(),
				fmt.Sprintf("unresolved label %q", label))
			l.report(d)
			target = ir.NewErrorLoopTarget(n.Span(), d)
		}
	} else {
		innermost, ok := l.ctx.InnermostLoop()
		if ok {
			target = innermost
		} else {
			d := diag.NewError(diag.LowJumpOutsideLoop, n.Span(),
				fmt.Sprintf("%s outside a loop", word))
			l.report(d)
			target = ir.NewErrorLoopTarget(n.Span(), d)
		}
	}

	return l.newExpr(ir.ExprLoopJump, n.Span(), ir.OriginSource, ir.LoopJumpData{
		IsBreak: isBreak,
		Target:  target,
	})
}

func (l *Lowerer) lowerReturn(n syntax.Node) *ir.Expr {
	var target *ir.FuncTarget
	if label := n.Label(); label != "" {
		resolved, lookup := l.ctx.ResolveFuncLabel(label)
		switch lookup {
		case labelFound:
			target = resolved
		case labelWrongKind:
			d := diag.NewError(diag.LowNotAFunctionLabel, n.Span(),
				fmt.Sprintf("label %q does not denote a function", label))
			l.report(d)
			target = ir.NewErrorFuncTarget(n.Span(), d)
		case labelUnresolved:
			d := diag.NewError(diag.LowUnresolvedLabel, n.Span(),
				fmt.Sprintf("unresolved label %q", label))
			l.report(d)
			target = ir.NewErrorFuncTarget(n.Span(), d)
		}
	} else {
		innermost, ok := l.ctx.InnermostFunc()
		if ok {
			target = innermost
		} else {
			d := diag.NewError(diag.LowReturnNotAllowed, n.Span(), "return is not allowed here")
			l.report(d)
			target = ir.NewErrorFuncTarget(n.Span(), d)
		}
	}

	var value *ir.Expr
	if v := n.Operand(); v != nil {
		value = l.lowerExpr(v)
	}
	return l.newExpr(ir.ExprReturn, n.Span(), ir.OriginSource, ir.ReturnData{
		Target: target,
		Value:  value,
	})
}

func (l *Lowerer) lowerBlock(n syntax.Node) *ir.Expr {
	stmts := make([]*ir.Expr, 0, len(n.Children()))
	for _, stmt := range n.Children() {
		if stmt == nil {
			continue
		}
		stmts = append(stmts, l.lowerExpr(stmt))
	}
	return l.newExpr(ir.ExprBlock, n.Span(), ir.OriginSource, ir.BlockData{Stmts: stmts})
}

func (l *Lowerer) lowerVarDecl(n syntax.Node) *ir.Expr {
	var init *ir.Expr
	if v := n.Operand(); v != nil {
		init = l.lowerExpr(v)
	}
	return l.newExpr(ir.ExprVarDecl, n.Span(), ir.OriginSource, ir.VarDeclData{
		Name:     ir.SourceIdent(n.Name()),
		Mutable:  n.Mutable(),
		TypeText: n.TypeText(),
		Init:     init,
	})
}

// lowerQualified translates `a.b` and `a.f(x)` selector shapes.
func (l *Lowerer) lowerQualified(n syntax.Node) *ir.Expr {
	recv := n.Receiver()
	sel := syntax.Deparenthesize(n.Selector())
	if recv == nil || sel == nil {
		return l.errorExpr(n.Span(), diag.LowSyntax, "malformed qualified access")
	}
	switch sel.Kind() {
	case syntax.KindReference:
		return l.newExpr(ir.ExprQualifiedAccess, n.Span(), ir.OriginSource, ir.AccessData{
			Callee:   ir.NamedRef(sel.Name()),
			Receiver: l.lowerExpr(recv),
		})
	default:
		return l.errorExpr(sel.Span(), diag.LowSyntax, "malformed selector")
	}
}

// lowerSafeQualified desugars `a?.b`: the receiver is bound to a checked
// temporary and the selector runs against it only when it is non-null.
func (l *Lowerer) lowerSafeQualified(n syntax.Node) *ir.Expr {
	recv := n.Receiver()
	sel := syntax.Deparenthesize(n.Selector())
	if recv == nil || sel == nil {
		return l.errorExpr(n.Span(), diag.LowSyntax, "malformed safe access")
	}
	if sel.Kind() != syntax.KindReference {
		return l.errorExpr(sel.Span(), diag.LowSyntax, "malformed selector")
	}

	receiver := l.lowerExpr(recv)
	subject := l.ctx.NewTemp("safe")
	selector := l.newExpr(ir.ExprQualifiedAccess, sel.Span(), ir.OriginSafeAccess, ir.AccessData{
		Callee:   ir.NamedRef(sel.Name()),
		Receiver: l.tempAccess(sel.Span(), subject, ir.OriginSafeAccess),
	})
	return l.newExpr(ir.ExprSafeCall, n.Span(), ir.OriginSource, ir.SafeCallData{
		Receiver: receiver,
		Subject:  subject,
		Selector: selector,
	})
}

// lowerCall translates `f(x)`, `a.f(x)` and `a?.f(x)`.
func (l *Lowerer) lowerCall(n syntax.Node) *ir.Expr {
	callee := syntax.Deparenthesize(n.Operand())
	if callee == nil {
		return l.errorExpr(n.Span(), diag.LowSyntax, "malformed call")
	}

	args := make([]*ir.Expr, 0, len(n.Children()))
	lowerArgs := func() {
		for _, arg := range n.Children() {
			if arg == nil {
				continue
			}
			args = append(args, l.lowerExpr(arg))
		}
	}

	switch callee.Kind() {
	case syntax.KindReference:
		lowerArgs()
		return l.newExpr(ir.ExprCall, n.Span(), ir.OriginSource, ir.CallData{
			Callee: ir.NamedRef(callee.Name()),
			Args:   args,
		})

	case syntax.KindQualified:
		recv := callee.Receiver()
		sel := syntax.Deparenthesize(callee.Selector())
		if recv == nil || sel == nil || sel.Kind() != syntax.KindReference {
			return l.errorExpr(callee.Span(), diag.LowSyntax, "malformed call receiver")
		}
		receiver := l.lowerExpr(recv)
		lowerArgs()
		return l.newExpr(ir.ExprCall, n.Span(), ir.OriginSource, ir.CallData{
			Callee:   ir.NamedRef(sel.Name()),
			Receiver: receiver,
			Args:     args,
		})

	case syntax.KindSafeQualified:
		recv := callee.Receiver()
		sel := syntax.Deparenthesize(callee.Selector())
		if recv == nil || sel == nil || sel.Kind() != syntax.KindReference {
			return l.errorExpr(callee.Span(), diag.LowSyntax, "malformed call receiver")
		}
		receiver := l.lowerExpr(recv)
		subject := l.ctx.NewTemp("safe")
		lowerArgs()
		call := l.newExpr(ir.ExprCall, n.Span(), ir.OriginSafeAccess, ir.CallData{
			Callee:   ir.NamedRef(sel.Name()),
			Receiver: l.tempAccess(sel.Span(), subject, ir.OriginSafeAccess),
			Args:     args,
		})
		return l.newExpr(ir.ExprSafeCall, n.Span(), ir.OriginSource, ir.SafeCallData{
			Receiver: receiver,
			Subject:  subject,
			Selector: call,
		})

	default:
		return l.errorExpr(callee.Span(), diag.LowSyntax, "expression is not callable")
	}
}

// lowerArrayAccess emits a get call, or a set call when a plain
// subscript assignment recorded a pending store for this exact node.
func (l *Lowerer) lowerArrayAccess(n syntax.Node) *ir.Expr {
	recv := n.Receiver()
	if recv == nil {
		return l.errorExpr(n.Span(), diag.LowSyntax, "malformed array access")
	}

	receiver := l.lowerExpr(recv)
	args := make([]*ir.Expr, 0, len(n.Indices())+1)
	for _, idx := range n.Indices() {
		if idx == nil {
			args = append(args, l.errorExpr(n.Span(), diag.LowExpressionExpected, "expected index expression"))
			continue
		}
		args = append(args, l.lowerExpr(idx))
	}

	if stored, ok := l.ctx.TakePendingStore(n); ok {
		args = append(args, stored)
		return l.newExpr(ir.ExprCall, n.Span(), ir.OriginSource, ir.CallData{
			Callee:   ir.NamedRef(setName),
			Receiver: receiver,
			Args:     args,
		})
	}
	return l.newExpr(ir.ExprCall, n.Span(), ir.OriginSource, ir.CallData{
		Callee:   ir.NamedRef(getName),
		Receiver: receiver,
		Args:     args,
	})
}

func (l *Lowerer) lowerPrefix(n syntax.Node) *ir.Expr {
	switch n.Op() {
	case syntax.OpInc, syntax.OpDec:
		return l.lowerIncDec(n, true)
	default:
		name, ok := unaryOperatorName(n.Op())
		if !ok {
			return l.errorExpr(n.Span(), diag.LowSyntax,
				fmt.Sprintf("unsupported prefix operator %q", n.Op()))
		}
		operand := n.Operand()
		if operand == nil {
			return l.errorExpr(n.Span(), diag.LowSyntax, "operand missing")
		}
		return l.newExpr(ir.ExprCall, n.Span(), ir.OriginSource, ir.CallData{
			Callee:   ir.NamedRef(name),
			Receiver: l.lowerExpr(operand),
		})
	}
}

func (l *Lowerer) lowerPostfix(n syntax.Node) *ir.Expr {
	switch n.Op() {
	case syntax.OpInc, syntax.OpDec:
		return l.lowerIncDec(n, false)
	default:
		return l.errorExpr(n.Span(), diag.LowSyntax,
			fmt.Sprintf("unsupported postfix operator %q", n.Op()))
	}
}

func (l *Lowerer) lowerBinary(n syntax.Node) *ir.Expr {
	op := n.Op()
	if op.IsAssignment() {
		return l.lowerAssignment(n)
	}
	name, ok := simpleOperatorName(op)
	if !ok {
		return l.errorExpr(n.Span(), diag.LowSyntax,
			fmt.Sprintf("unsupported operator %q", op))
	}
	left, right := n.Left(), n.Right()
	if left == nil || right == nil {
		return l.errorExpr(n.Span(), diag.LowSyntax, "operand missing")
	}
	return l.newExpr(ir.ExprCall, n.Span(), ir.OriginSource, ir.CallData{
		Callee:   ir.NamedRef(name),
		Receiver: l.lowerExpr(left),
		Args:     []*ir.Expr{l.lowerExpr(right)},
	})
}

// tempAccess reads a temporary binding.
func (l *Lowerer) tempAccess(span source.Span, name ir.Ident, origin ir.Origin) *ir.Expr {
	return l.newExpr(ir.ExprPropertyAccess, span, origin, ir.AccessData{
		Callee: ir.TempRef(name),
	})
}
