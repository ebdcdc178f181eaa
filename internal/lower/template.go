package lower

import (
	"strings"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/syntax"
)

// lowerStringTemplate folds a template's text and escape segments into a
// scratch buffer and lowers entry segments through the supplied callback.
// An entry that lowers to a string constant folds into the buffer like
// literal text. When every segment folds, the result is a single string
// constant and no concatenation node is ever built; consumers rely on
// that, constant-only templates must not produce concat nodes.
func (l *Lowerer) lowerStringTemplate(n syntax.Node, lowerEntry func(syntax.Node) *ir.Expr) *ir.Expr {
	var buf strings.Builder
	var parts []*ir.Expr

	flushBuf := func() {
		if buf.Len() == 0 {
			return
		}
		parts = append(parts, l.newExpr(ir.ExprConst, n.Span(), ir.OriginStringConcat,
			ir.ConstData{Value: ir.StringValue(buf.String())}))
		buf.Reset()
	}

	for _, seg := range n.Children() {
		if seg == nil {
			continue
		}
		switch seg.Kind() {
		case syntax.KindTemplateText:
			buf.WriteString(seg.Text())

		case syntax.KindTemplateEscape:
			decoded, ok := seg.Unescaped()
			if !ok {
				flushBuf()
				parts = append(parts, l.errorExpr(seg.Span(), diag.LowIllegalConstExpression,
					"illegal escape sequence in string template"))
				continue
			}
			buf.WriteString(decoded)

		case syntax.KindTemplateEntry:
			expr := seg.Operand()
			if expr == nil {
				flushBuf()
				parts = append(parts, l.errorExpr(seg.Span(), diag.LowExpressionExpected,
					"expected expression in string template"))
				continue
			}
			lowered := lowerEntry(expr)
			if s, ok := constString(lowered); ok {
				buf.WriteString(s)
				continue
			}
			flushBuf()
			parts = append(parts, lowered)

		default:
			flushBuf()
			parts = append(parts, l.errorExpr(seg.Span(), diag.LowSyntax,
				"unexpected string template segment"))
		}
	}

	if len(parts) == 0 {
		return l.newExpr(ir.ExprConst, n.Span(), ir.OriginSource,
			ir.ConstData{Value: ir.StringValue(buf.String())})
	}
	flushBuf()
	return l.newExpr(ir.ExprStringConcat, n.Span(), ir.OriginSource,
		ir.StringConcatData{Parts: parts})
}

// constString extracts the value of a string-constant expression.
func constString(e *ir.Expr) (string, bool) {
	if e == nil || e.Kind != ir.ExprConst {
		return "", false
	}
	d, ok := e.Data.(ir.ConstData)
	if !ok || d.Value.Kind != ir.ConstString {
		return "", false
	}
	return d.Value.Str, true
}
