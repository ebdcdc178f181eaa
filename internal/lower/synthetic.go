package lower

import (
	"fmt"

	"sable/internal/ir"
	"sable/internal/source"
)

// generateRecordMembers synthesizes the positional accessors and the
// structural copy function for a record's stored fields. The functions
// are bodiless; equals/hashCode/toString style body synthesis belongs to
// a later stage. Every node built here carries the generated-member
// origin, enforced for the whole scope so nested expression construction
// cannot accidentally tag anything as source.
func (l *Lowerer) generateRecordMembers(span source.Span, selfType func() string, fields []ir.Field, fieldType func(ir.Field) string) []*ir.Function {
	restore := l.ctx.ForceOrigin(ir.OriginGeneratedMember)
	defer restore()

	members := make([]*ir.Function, 0, len(fields)+1)

	// component1, component2, ... over stored fields, 1-based in
	// declaration order. Computed fields do not get a slot and do not
	// shift the numbering of later stored fields.
	position := 0
	for _, f := range fields {
		if !f.Stored {
			continue
		}
		position++
		members = append(members, l.syntheticFun(span, ir.Function{
			Name:       ir.SourceIdent(fmt.Sprintf("component%d", position)),
			Operator:   true,
			ReturnType: fieldType(f),
		}))
	}

	// copy(x: Int = this.x, y: String = this.y): parameters mirror the
	// field list 1:1, names and order preserved exactly, so positional
	// call sites stay compatible with the constructor.
	copyFn := ir.Function{
		Name:       ir.SourceIdent("copy"),
		ReturnType: selfType(),
	}
	for _, f := range fields {
		if !f.Stored {
			continue
		}
		copyFn.Params = append(copyFn.Params, ir.Param{
			Name:     f.Name,
			TypeText: fieldType(f),
			Span:     f.Span,
			Default: l.newExpr(ir.ExprQualifiedAccess, span, ir.OriginGeneratedMember, ir.AccessData{
				Callee: ir.RefOf(f.Name),
				Receiver: l.newExpr(ir.ExprThis, span, ir.OriginGeneratedMember,
					ir.ThisData{}),
			}),
		})
	}
	members = append(members, l.syntheticFun(span, copyFn))

	return members
}

// syntheticFun fills the shared fields of a generated member and binds
// its function target.
func (l *Lowerer) syntheticFun(span source.Span, fn ir.Function) *ir.Function {
	popName := l.ctx.PushName(fn.Name.Text)
	defer popName()

	fn.Span = span
	fn.Origin = ir.OriginGeneratedMember
	fn.FqName = l.ctx.Path()
	fn.Target = ir.NewFuncTarget(fn.Name.Text)
	out := &fn
	fn.Target.Bind(out)
	return out
}
