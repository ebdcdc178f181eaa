package lower_test

import (
	"testing"

	"sable/internal/diag"
	"sable/internal/ir"
)

func TestPlainAssignVariable(t *testing.T) {
	e := lowerStmt(t, "x = 1")
	assign := asAssign(t, e)
	if assign.Callee.Name.Text != "x" {
		t.Errorf("target = %q, want x", assign.Callee.Name.Text)
	}
	if assign.Receiver != nil {
		t.Error("plain variable assignment must have no receiver")
	}
	if v := constOf(t, assign.Value); v.Int != 1 {
		t.Errorf("value = %v, want 1", v)
	}
	if e.Origin != ir.OriginSource {
		t.Errorf("origin = %v, want OriginSource", e.Origin)
	}
}

func TestAssignThroughQualifiedTarget(t *testing.T) {
	e := lowerStmt(t, "a.b = 1")
	assign := asAssign(t, e)
	if assign.Callee.Name.Text != "b" {
		t.Errorf("member = %q, want b", assign.Callee.Name.Text)
	}
	recv := asAccess(t, assign.Receiver)
	if recv.Callee.Name.Text != "a" {
		t.Errorf("receiver = %q, want a", recv.Callee.Name.Text)
	}
}

func TestAssignToThisProperty(t *testing.T) {
	e := lowerStmt(t, "this.x = 1")
	assign := asAssign(t, e)
	if assign.Callee.Name.Text != "x" {
		t.Errorf("member = %q, want x", assign.Callee.Name.Text)
	}
	if assign.Receiver == nil || assign.Receiver.Kind != ir.ExprThis {
		t.Error("receiver must be a this expression")
	}
}

func TestSubscriptAssignBecomesSet(t *testing.T) {
	// a[i] = v turns straight into a.set(i, v); no temporaries.
	e := lowerStmt(t, "a[i] = v")
	call := asCall(t, e)
	if call.Callee.Name.Text != "set" {
		t.Fatalf("call = %q, want set", call.Callee.Name.Text)
	}
	if asAccess(t, call.Receiver).Callee.Name.Text != "a" {
		t.Error("set receiver must be the array expression itself")
	}
	if len(call.Args) != 2 {
		t.Fatalf("args = %d, want index plus value", len(call.Args))
	}
	if asAccess(t, call.Args[0]).Callee.Name.Text != "i" {
		t.Error("first argument must be the index")
	}
	if asAccess(t, call.Args[1]).Callee.Name.Text != "v" {
		t.Error("last argument must be the stored value")
	}
}

func TestMultiSubscriptAssign(t *testing.T) {
	e := lowerStmt(t, "m[i, j] = v")
	call := asCall(t, e)
	if call.Callee.Name.Text != "set" {
		t.Fatalf("call = %q, want set", call.Callee.Name.Text)
	}
	if len(call.Args) != 3 {
		t.Errorf("args = %d, want 2 indices plus value", len(call.Args))
	}
}

func TestSubscriptReadStaysGet(t *testing.T) {
	e := lowerStmt(t, "a[i]")
	call := asCall(t, e)
	if call.Callee.Name.Text != "get" {
		t.Errorf("call = %q, want get", call.Callee.Name.Text)
	}
	if len(call.Args) != 1 {
		t.Errorf("args = %d, want 1", len(call.Args))
	}
}

func TestCompoundAssignVariable(t *testing.T) {
	// x += v is one plusAssign call; the target is lowered as a read.
	e := lowerStmt(t, "x += v")
	call := asCall(t, e)
	if call.Callee.Name.Text != "plusAssign" {
		t.Errorf("call = %q, want plusAssign", call.Callee.Name.Text)
	}
	if asAccess(t, call.Receiver).Callee.Name.Text != "x" {
		t.Error("receiver must be the target read")
	}
	if len(call.Args) != 1 {
		t.Fatalf("args = %d, want 1", len(call.Args))
	}
	if e.Origin != ir.OriginCompoundAssign {
		t.Errorf("origin = %v, want OriginCompoundAssign", e.Origin)
	}
}

func TestCompoundAssignOperatorNames(t *testing.T) {
	cases := []struct {
		src  string
		name string
	}{
		{"x += v", "plusAssign"},
		{"x -= v", "minusAssign"},
		{"x *= v", "timesAssign"},
		{"x /= v", "divAssign"},
		{"x %= v", "remAssign"},
	}
	for _, tc := range cases {
		e := lowerStmt(t, tc.src)
		if got := asCall(t, e).Callee.Name.Text; got != tc.name {
			t.Errorf("%q: call = %q, want %q", tc.src, got, tc.name)
		}
	}
}

func TestCompoundAssignQualifiedTarget(t *testing.T) {
	e := lowerStmt(t, "a.b += v")
	call := asCall(t, e)
	if call.Callee.Name.Text != "plusAssign" {
		t.Fatalf("call = %q, want plusAssign", call.Callee.Name.Text)
	}
	recv := asAccess(t, call.Receiver)
	if recv.Callee.Name.Text != "b" || recv.Receiver == nil {
		t.Error("receiver must be the lowered a.b read")
	}
}

func TestCompoundSubscriptAssign(t *testing.T) {
	// a[i] += v: { val a' = a; val i' = i; a'.set(i', a'.get(i').plus(v)) }
	e := lowerStmt(t, "a[i] += v")
	stmts := blockStmts(t, e)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}

	arrDecl := asVarDecl(t, stmts[0])
	idxDecl := asVarDecl(t, stmts[1])
	if !arrDecl.Name.IsTemp() || !idxDecl.Name.IsTemp() {
		t.Fatal("array and index must be captured in temporaries")
	}

	set := asCall(t, stmts[2])
	if set.Callee.Name.Text != "set" {
		t.Fatalf("call = %q, want set", set.Callee.Name.Text)
	}
	if asAccess(t, set.Receiver).Callee.Name != arrDecl.Name {
		t.Error("set must go through the array temporary")
	}
	if len(set.Args) != 2 {
		t.Fatalf("set args = %d, want index plus value", len(set.Args))
	}

	// Stored value is plus over a get through the same temporaries; the
	// simple operator name is used here, not plusAssign.
	plus := asCall(t, set.Args[1])
	if plus.Callee.Name.Text != "plus" {
		t.Errorf("value call = %q, want plus", plus.Callee.Name.Text)
	}
	get := asCall(t, plus.Receiver)
	if get.Callee.Name.Text != "get" {
		t.Errorf("read call = %q, want get", get.Callee.Name.Text)
	}
	if asAccess(t, get.Receiver).Callee.Name != arrDecl.Name {
		t.Error("get must go through the array temporary")
	}
	if len(get.Args) != 1 || asAccess(t, get.Args[0]).Callee.Name != idxDecl.Name {
		t.Error("get must index through the index temporary")
	}
	if len(plus.Args) != 1 || asAccess(t, plus.Args[0]).Callee.Name.Text != "v" {
		t.Error("plus argument must be the right-hand side")
	}

	if e.Origin != ir.OriginCompoundAssign {
		t.Errorf("origin = %v, want OriginCompoundAssign", e.Origin)
	}
}

func TestSafeAssignShortCircuitsValue(t *testing.T) {
	// a?.b = v: the write, together with the right-hand side, sits inside
	// the selector so a null receiver never evaluates v.
	e := lowerStmt(t, "a?.b = v")
	if e.Kind != ir.ExprSafeCall {
		t.Fatalf("kind = %v, want SafeCall", e.Kind)
	}
	sc := e.Data.(ir.SafeCallData)
	if !sc.Subject.IsTemp() {
		t.Error("subject must be a temporary")
	}
	if asAccess(t, sc.Receiver).Callee.Name.Text != "a" {
		t.Error("receiver must be the lowered a")
	}

	write := asAssign(t, sc.Selector)
	if write.Callee.Name.Text != "b" {
		t.Errorf("write member = %q, want b", write.Callee.Name.Text)
	}
	if asAccess(t, write.Receiver).Callee.Name != sc.Subject {
		t.Error("write must go through the subject temporary")
	}
	if asAccess(t, write.Value).Callee.Name.Text != "v" {
		t.Error("right-hand side must sit inside the selector")
	}
	if sc.Selector.Origin != ir.OriginSafeAccess {
		t.Errorf("selector origin = %v, want OriginSafeAccess", sc.Selector.Origin)
	}
}

func TestAssignRightAssociativeChains(t *testing.T) {
	// a = b = 1 assigns b first, then a gets the inner assignment.
	e := lowerStmt(t, "a = b = 1")
	outer := asAssign(t, e)
	if outer.Callee.Name.Text != "a" {
		t.Errorf("outer target = %q, want a", outer.Callee.Name.Text)
	}
	inner := asAssign(t, outer.Value)
	if inner.Callee.Name.Text != "b" {
		t.Errorf("inner target = %q, want b", inner.Callee.Name.Text)
	}
}

func TestAssignToLiteralIsError(t *testing.T) {
	unit, bag := lowerSnippet(t, "1 = 2")
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	d := bag.Items()[0]
	if d.Code != diag.LowVariableExpected {
		t.Errorf("code = %v, want LowVariableExpected", d.Code)
	}
	if d.Message != "variable expected on the left-hand side of assignment" {
		t.Errorf("message = %q", d.Message)
	}
	if unit.Stmts[0].Kind != ir.ExprError {
		t.Error("lowering must produce an error node, not abort")
	}
}

func TestAssignToCallIsError(t *testing.T) {
	_, bag := lowerSnippet(t, "f() = 2")
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LowVariableExpected {
		t.Errorf("code = %v, want LowVariableExpected", bag.Items()[0].Code)
	}
}

func TestParenthesizedTargetUnwraps(t *testing.T) {
	e := lowerStmt(t, "(x) = 1")
	assign := asAssign(t, e)
	if assign.Callee.Name.Text != "x" {
		t.Errorf("target = %q, want x", assign.Callee.Name.Text)
	}
}

func TestPendingStoreDoesNotLeak(t *testing.T) {
	// After a subscript assignment the side table is empty again: a later
	// read of the same syntactic shape is a get, not a set.
	unit, bag := lowerSnippet(t, "a[i] = v\na[i]")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(unit.Stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(unit.Stmts))
	}
	if got := calleeName(t, unit.Stmts[0]); got != "set" {
		t.Errorf("first statement call = %q, want set", got)
	}
	if got := calleeName(t, unit.Stmts[1]); got != "get" {
		t.Errorf("second statement call = %q, want get", got)
	}
}
