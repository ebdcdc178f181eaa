package lower_test

import (
	"testing"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/lexer"
	"sable/internal/lower"
	"sable/internal/parser"
	"sable/internal/source"
	"sable/internal/syntax"
)

func newLowerer() (*lower.Lowerer, *diag.Bag) {
	bag := diag.NewBag(64)
	ctx := lower.NewContext()
	return lower.New(ctx, diag.BagReporter{Bag: bag}), bag
}

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func ref(name string) syntax.Node {
	return syntax.NewReference(source.Span{}, name)
}

func intLit(text string) syntax.Node {
	return syntax.NewLiteral(syntax.KindIntLiteral, source.Span{}, text)
}

// lowerSnippet runs the full pipeline over one source string and returns
// the lowered unit together with all diagnostics.
func lowerSnippet(t *testing.T, input string) (*ir.Unit, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sb", []byte(input))
	bag := diag.NewBag(128)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(fs, lx, parser.Options{Reporter: rep})
	l := lower.New(lower.NewContext(), rep)
	unit := l.LowerUnit("test.sb", res.File)
	return unit, bag
}

// lowerStmt lowers a single-statement snippet and returns the one
// top-level expression.
func lowerStmt(t *testing.T, input string) *ir.Expr {
	t.Helper()
	unit, bag := lowerSnippet(t, input)
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %v", input, bag.Items())
	}
	if len(unit.Stmts) != 1 {
		t.Fatalf("%q: got %d statements, want 1", input, len(unit.Stmts))
	}
	return unit.Stmts[0]
}

func blockStmts(t *testing.T, e *ir.Expr) []*ir.Expr {
	t.Helper()
	if e.Kind != ir.ExprBlock {
		t.Fatalf("kind = %v, want Block", e.Kind)
	}
	return e.Data.(ir.BlockData).Stmts
}

func asCall(t *testing.T, e *ir.Expr) ir.CallData {
	t.Helper()
	if e.Kind != ir.ExprCall {
		t.Fatalf("kind = %v, want Call", e.Kind)
	}
	return e.Data.(ir.CallData)
}

func asVarDecl(t *testing.T, e *ir.Expr) ir.VarDeclData {
	t.Helper()
	if e.Kind != ir.ExprVarDecl {
		t.Fatalf("kind = %v, want VarDecl", e.Kind)
	}
	return e.Data.(ir.VarDeclData)
}

func asAssign(t *testing.T, e *ir.Expr) ir.AssignData {
	t.Helper()
	if e.Kind != ir.ExprVarAssign {
		t.Fatalf("kind = %v, want Assign", e.Kind)
	}
	return e.Data.(ir.AssignData)
}

func asAccess(t *testing.T, e *ir.Expr) ir.AccessData {
	t.Helper()
	if e.Kind != ir.ExprPropertyAccess && e.Kind != ir.ExprQualifiedAccess {
		t.Fatalf("kind = %v, want an access", e.Kind)
	}
	return e.Data.(ir.AccessData)
}

func calleeName(t *testing.T, e *ir.Expr) string {
	t.Helper()
	return asCall(t, e).Callee.Name.Text
}

func constOf(t *testing.T, e *ir.Expr) ir.ConstValue {
	t.Helper()
	if e.Kind != ir.ExprConst {
		t.Fatalf("kind = %v, want Const", e.Kind)
	}
	return e.Data.(ir.ConstData).Value
}
