package parser_test

import (
	"testing"

	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/parser"
	"sable/internal/source"
	"sable/internal/syntax"
	"sable/internal/testkit"
)

func parseSource(t *testing.T, input string) (parser.Result, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sb", []byte(input))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	return parser.ParseFile(fs, lx, parser.Options{Reporter: rep}), fs
}

func parseOneStmt(t *testing.T, input string) syntax.Node {
	t.Helper()
	res, _ := parseSource(t, input)
	if res.Bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %v", input, res.Bag.Items())
	}
	items := res.File.Children()
	if len(items) != 1 {
		t.Fatalf("%q: got %d top-level items, want 1", input, len(items))
	}
	return items[0]
}

func TestParseBinaryPrecedence(t *testing.T) {
	// a + b * c parses as a + (b * c)
	n := parseOneStmt(t, "a + b * c")
	if n.Kind() != syntax.KindBinary || n.Op() != syntax.OpPlus {
		t.Fatalf("root = %v %v, want Binary +", n.Kind(), n.Op())
	}
	right := n.Right()
	if right.Kind() != syntax.KindBinary || right.Op() != syntax.OpMul {
		t.Fatalf("right = %v %v, want Binary *", right.Kind(), right.Op())
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	// a = b = c parses as a = (b = c)
	n := parseOneStmt(t, "a = b = c")
	if n.Kind() != syntax.KindBinary || n.Op() != syntax.OpAssign {
		t.Fatalf("root = %v %v, want Binary =", n.Kind(), n.Op())
	}
	right := n.Right()
	if right.Kind() != syntax.KindBinary || right.Op() != syntax.OpAssign {
		t.Fatalf("right = %v %v, want nested assignment", right.Kind(), right.Op())
	}
}

func TestParsePostfixChain(t *testing.T) {
	// a.b[i](x) nests ArrayAccess inside Call
	n := parseOneStmt(t, "a.b[i](x)")
	if n.Kind() != syntax.KindCall {
		t.Fatalf("root = %v, want Call", n.Kind())
	}
	callee := n.Operand()
	if callee.Kind() != syntax.KindArrayAccess {
		t.Fatalf("callee = %v, want ArrayAccess", callee.Kind())
	}
	if callee.Receiver().Kind() != syntax.KindQualified {
		t.Fatalf("receiver = %v, want Qualified", callee.Receiver().Kind())
	}
}

func TestParseSafeQualified(t *testing.T) {
	n := parseOneStmt(t, "a?.b")
	if n.Kind() != syntax.KindSafeQualified {
		t.Fatalf("kind = %v, want SafeQualified", n.Kind())
	}
	if n.Selector().Name() != "b" {
		t.Errorf("selector = %q, want b", n.Selector().Name())
	}
}

func TestParseIncDec(t *testing.T) {
	pre := parseOneStmt(t, "++x")
	if pre.Kind() != syntax.KindPrefix || pre.Op() != syntax.OpInc {
		t.Fatalf("prefix = %v %v", pre.Kind(), pre.Op())
	}
	post := parseOneStmt(t, "x--")
	if post.Kind() != syntax.KindPostfix || post.Op() != syntax.OpDec {
		t.Fatalf("postfix = %v %v", post.Kind(), post.Op())
	}
}

func TestPostfixRequiresSameLine(t *testing.T) {
	// A newline before ++ keeps it a prefix on the next statement.
	res, _ := parseSource(t, "x\n++y")
	items := res.File.Children()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (postfix must not glue across lines)", len(items))
	}
	if items[0].Kind() != syntax.KindReference {
		t.Errorf("first = %v, want Reference", items[0].Kind())
	}
	if items[1].Kind() != syntax.KindPrefix {
		t.Errorf("second = %v, want Prefix", items[1].Kind())
	}
}

func TestCallRequiresSameLine(t *testing.T) {
	res, _ := parseSource(t, "a\n(b)")
	items := res.File.Children()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (call must not glue across lines)", len(items))
	}
}

func TestParseVarDecl(t *testing.T) {
	n := parseOneStmt(t, "var count: Int = 0")
	if n.Kind() != syntax.KindVarDecl {
		t.Fatalf("kind = %v, want VarDecl", n.Kind())
	}
	if !n.Mutable() {
		t.Error("var should be mutable")
	}
	if n.TypeText() != "Int" {
		t.Errorf("type = %q, want Int", n.TypeText())
	}
	if n.Operand() == nil || n.Operand().Kind() != syntax.KindIntLiteral {
		t.Error("initializer missing or wrong kind")
	}
}

func TestParseNullableType(t *testing.T) {
	n := parseOneStmt(t, "val s: String? = null")
	if n.TypeText() != "String?" {
		t.Errorf("type = %q, want String?", n.TypeText())
	}
}

func TestParseFunDecl(t *testing.T) {
	n := parseOneStmt(t, "fun add(a: Int, b: Int): Int { return a + b }")
	if n.Kind() != syntax.KindFunDecl {
		t.Fatalf("kind = %v, want FunDecl", n.Kind())
	}
	if n.Name() != "add" {
		t.Errorf("name = %q, want add", n.Name())
	}
	if len(n.Params()) != 2 {
		t.Fatalf("params = %d, want 2", len(n.Params()))
	}
	if n.TypeText() != "Int" {
		t.Errorf("return type = %q, want Int", n.TypeText())
	}
	if n.Body() == nil || n.Body().Kind() != syntax.KindBlock {
		t.Error("body missing or not a block")
	}
}

func TestParseExpressionBodyFun(t *testing.T) {
	n := parseOneStmt(t, "fun twice(x: Int): Int = x + x")
	if n.Body() == nil || n.Body().Kind() != syntax.KindBinary {
		t.Fatal("expression body missing")
	}
}

func TestParseRecordDecl(t *testing.T) {
	n := parseOneStmt(t, "record Point(val x: Int, var y: Int)")
	if n.Kind() != syntax.KindRecordDecl {
		t.Fatalf("kind = %v, want RecordDecl", n.Kind())
	}
	params := n.Params()
	if len(params) != 2 {
		t.Fatalf("params = %d, want 2", len(params))
	}
	if !params[0].Stored() || params[0].Mutable() {
		t.Error("first param should be stored and immutable")
	}
	if !params[1].Stored() || !params[1].Mutable() {
		t.Error("second param should be stored and mutable")
	}
}

func TestParseTypeParams(t *testing.T) {
	n := parseOneStmt(t, "fun first<T, U>(p: Pair<T, U>): T = p.first()")
	if got := n.TypeParams(); len(got) != 2 || got[0] != "T" || got[1] != "U" {
		t.Fatalf("type params = %v, want [T U]", got)
	}
	if n.Params()[0].TypeText() != "Pair<T, U>" {
		t.Errorf("param type = %q, want Pair<T, U>", n.Params()[0].TypeText())
	}
}

func TestParseGenericRecord(t *testing.T) {
	n := parseOneStmt(t, "record Box<T>(val value: T)")
	if got := n.TypeParams(); len(got) != 1 || got[0] != "T" {
		t.Fatalf("type params = %v, want [T]", got)
	}
}

func TestParseNullableGenericType(t *testing.T) {
	n := parseOneStmt(t, "val b: Box<Int>? = null")
	if n.TypeText() != "Box<Int>?" {
		t.Errorf("type = %q, want Box<Int>?", n.TypeText())
	}
}

func TestParseUnclosedTypeParams(t *testing.T) {
	res, _ := parseSource(t, "fun f<T(x: T) {}")
	if !res.Bag.HasErrors() {
		t.Fatal("expected a diagnostic for the unclosed list")
	}
}

func TestParseExpectClass(t *testing.T) {
	n := parseOneStmt(t, "expect class Platform { fun name(): String }")
	if n.Kind() != syntax.KindClassDecl {
		t.Fatalf("kind = %v, want ClassDecl", n.Kind())
	}
	if !n.Expect() {
		t.Error("expect modifier lost")
	}
	if len(n.Children()) != 1 {
		t.Fatalf("members = %d, want 1", len(n.Children()))
	}
}

func TestParseLabeledLoop(t *testing.T) {
	n := parseOneStmt(t, "outer@ while (true) { break@outer }")
	if n.Kind() != syntax.KindLabeled {
		t.Fatalf("kind = %v, want Labeled", n.Kind())
	}
	if n.Label() != "outer" {
		t.Errorf("label = %q, want outer", n.Label())
	}
	loop := n.Operand()
	if loop.Kind() != syntax.KindWhile {
		t.Fatalf("inner = %v, want While", loop.Kind())
	}
	body := loop.Body()
	if len(body.Children()) != 1 {
		t.Fatalf("body stmts = %d, want 1", len(body.Children()))
	}
	jump := body.Children()[0]
	if jump.Kind() != syntax.KindBreak || jump.Label() != "outer" {
		t.Errorf("jump = %v %q, want Break outer", jump.Kind(), jump.Label())
	}
}

func TestParseDoWhile(t *testing.T) {
	n := parseOneStmt(t, "do { work() } while (busy)")
	if n.Kind() != syntax.KindDoWhile {
		t.Fatalf("kind = %v, want DoWhile", n.Kind())
	}
	if n.Cond() == nil || n.Body() == nil {
		t.Error("cond or body missing")
	}
}

func TestReturnValueStaysOnLine(t *testing.T) {
	res, _ := parseSource(t, "fun f(): Int { return\n1 }")
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	body := res.File.Children()[0].Body()
	if len(body.Children()) != 2 {
		t.Fatalf("body stmts = %d, want 2 (bare return plus literal)", len(body.Children()))
	}
	if body.Children()[0].Operand() != nil {
		t.Error("return across a newline must be bare")
	}
}

func TestParseStringTemplateSegments(t *testing.T) {
	n := parseOneStmt(t, `"a ${x + 1} b $name c"`)
	if n.Kind() != syntax.KindStringTemplate {
		t.Fatalf("kind = %v, want StringTemplate", n.Kind())
	}
	segs := n.Children()
	kinds := make([]syntax.Kind, len(segs))
	for i, s := range segs {
		kinds[i] = s.Kind()
	}
	want := []syntax.Kind{
		syntax.KindTemplateText,
		syntax.KindTemplateEntry,
		syntax.KindTemplateText,
		syntax.KindTemplateEntry,
		syntax.KindTemplateText,
	}
	if len(kinds) != len(want) {
		t.Fatalf("segments = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("segment %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	entry := segs[1].Operand()
	if entry.Kind() != syntax.KindBinary || entry.Op() != syntax.OpPlus {
		t.Errorf("first entry = %v %v, want Binary +", entry.Kind(), entry.Op())
	}
	if segs[3].Operand().Name() != "name" {
		t.Errorf("second entry = %q, want name", segs[3].Operand().Name())
	}
}

func TestTemplateEntrySpansPointIntoSource(t *testing.T) {
	input := `"pre ${value} post"`
	res, fs := parseSource(t, input)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	tmpl := res.File.Children()[0]
	var entry syntax.Node
	for _, seg := range tmpl.Children() {
		if seg.Kind() == syntax.KindTemplateEntry {
			entry = seg
		}
	}
	if entry == nil {
		t.Fatal("no entry segment")
	}
	inner := entry.Operand()
	sp := inner.Span()
	content := fs.Get(sp.File).Content
	if got := string(content[sp.Start:sp.End]); got != "value" {
		t.Errorf("entry span covers %q, want %q", got, "value")
	}
}

func TestTemplateEscapes(t *testing.T) {
	n := parseOneStmt(t, `"a\nb"`)
	segs := n.Children()
	if len(segs) != 3 {
		t.Fatalf("segments = %d, want 3", len(segs))
	}
	esc := segs[1]
	if esc.Kind() != syntax.KindTemplateEscape {
		t.Fatalf("middle = %v, want TemplateEscape", esc.Kind())
	}
	decoded, ok := esc.Unescaped()
	if !ok || decoded != "\n" {
		t.Errorf("decoded = %q ok=%v, want \\n", decoded, ok)
	}
}

func TestUnclosedTemplateExpr(t *testing.T) {
	// The sub-parser never reaches the '}' because a comment swallows it.
	res, _ := parseSource(t, `"${a //}"`)
	if !res.Bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynUnclosedDelimiter {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want SynUnclosedDelimiter", res.Bag.Items())
	}
}

func TestRecoveryKeepsGoing(t *testing.T) {
	// A malformed statement must not take down the declarations after it.
	res, _ := parseSource(t, "] ]\nfun ok(): Int = 1")
	if !res.Bag.HasErrors() {
		t.Fatal("expected diagnostics for stray brackets")
	}
	var fun syntax.Node
	for _, item := range res.File.Children() {
		if item.Kind() == syntax.KindFunDecl {
			fun = item
		}
	}
	if fun == nil || fun.Name() != "ok" {
		t.Error("declaration after the error was lost")
	}
}

func TestSpanInvariants(t *testing.T) {
	input := `
fun add(a: Int, b: Int): Int { return a + b }
record Point(val x: Int, val y: Int)
val greeting = "hi ${add(1, 2)}"
`
	res, fs := parseSource(t, input)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	id, _ := fs.Lookup("test.sb")
	if err := testkit.CheckSpanInvariants(res.File, fs.Get(id)); err != nil {
		t.Error(err)
	}
}

func TestMaxErrorsStopsParse(t *testing.T) {
	res, _ := parseSource(t, "] ] ] ] ] ] ] ] ] ]")
	if res.Bag == nil {
		t.Fatal("nil bag")
	}
	opts := parser.Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: diag.NewBag(8)}}
	fs := source.NewFileSet()
	id := fs.AddVirtual("cap.sb", []byte("] ] ] ] ] ] ] ] ] ]"))
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: opts.Reporter})
	capped := parser.ParseFile(fs, lx, opts)
	if capped.Bag.Len() > 4 {
		t.Errorf("error budget ignored: %d diagnostics", capped.Bag.Len())
	}
}
