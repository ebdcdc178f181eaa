package lexer_test

import (
	"testing"

	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/source"
	"sable/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sb", []byte(input))
	bag := diag.NewBag(64)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectKinds(lx *lexer.Lexer) []token.Kind {
	var kinds []token.Kind
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func TestBasicTokens(t *testing.T) {
	lx, bag := makeTestLexer("val x = 1 + 2")
	want := []token.Kind{
		token.KwVal, token.Ident, token.Assign, token.IntLit,
		token.Plus, token.IntLit, token.EOF,
	}
	got := collectKinds(lx)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"0", token.IntLit, "0"},
		{"123", token.IntLit, "123"},
		{"1_000_000", token.IntLit, "1_000_000"},
		{"0x1F", token.IntLit, "0x1F"},
		{"0b1010", token.IntLit, "0b1010"},
		{"42u", token.IntLit, "42u"},
		{"42U", token.IntLit, "42U"},
		{"42L", token.IntLit, "42L"},
		{"42l", token.IntLit, "42l"},
		{"42uL", token.IntLit, "42uL"},
		{"42ul", token.IntLit, "42ul"},
		{"3.14", token.FloatLit, "3.14"},
		{"1e10", token.FloatLit, "1e10"},
		{"1.5e-3", token.FloatLit, "1.5e-3"},
		{"2f", token.FloatLit, "2f"},
		{"2.5F", token.FloatLit, "2.5F"},
	}
	for _, tc := range cases {
		lx, _ := makeTestLexer(tc.input)
		tok := lx.Next()
		if tok.Kind != tc.kind {
			t.Errorf("%q: kind = %v, want %v", tc.input, tok.Kind, tc.kind)
		}
		if tok.Text != tc.text {
			t.Errorf("%q: text = %q, want %q", tc.input, tok.Text, tc.text)
		}
	}
}

func TestDotAfterIntIsCall(t *testing.T) {
	// 1.plus(2): the dot is not a fraction because no digit follows.
	lx, _ := makeTestLexer("1.plus(2)")
	want := []token.Kind{
		token.IntLit, token.Dot, token.Ident, token.LParen,
		token.IntLit, token.RParen, token.EOF,
	}
	got := collectKinds(lx)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestExponentNeedsDigits(t *testing.T) {
	// `1e` followed by nothing numeric stays an int plus an identifier.
	lx, _ := makeTestLexer("1eX")
	first := lx.Next()
	if first.Kind != token.IntLit || first.Text != "1" {
		t.Fatalf("first token = %v %q, want IntLit \"1\"", first.Kind, first.Text)
	}
	second := lx.Next()
	if second.Kind != token.Ident || second.Text != "eX" {
		t.Fatalf("second token = %v %q, want Ident \"eX\"", second.Kind, second.Text)
	}
}

func TestKeywords(t *testing.T) {
	cases := map[string]token.Kind{
		"val":      token.KwVal,
		"var":      token.KwVar,
		"fun":      token.KwFun,
		"class":    token.KwClass,
		"record":   token.KwRecord,
		"while":    token.KwWhile,
		"do":       token.KwDo,
		"break":    token.KwBreak,
		"continue": token.KwContinue,
		"return":   token.KwReturn,
		"this":     token.KwThis,
		"true":     token.KwTrue,
		"false":    token.KwFalse,
		"null":     token.KwNull,
		"expect":   token.KwExpect,
		"operator": token.KwOperator,
	}
	for input, want := range cases {
		lx, _ := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != want {
			t.Errorf("%q: kind = %v, want %v", input, tok.Kind, want)
		}
	}
}

func TestLabelDefinition(t *testing.T) {
	lx, _ := makeTestLexer("outer@ while (true) {}")
	tok := lx.Next()
	if tok.Kind != token.LabelDef {
		t.Fatalf("kind = %v, want LabelDef", tok.Kind)
	}
	if tok.Text != "outer" {
		t.Errorf("text = %q, want %q", tok.Text, "outer")
	}
	// The span covers the '@' even though the text excludes it.
	if tok.Span.Len() != uint32(len("outer@")) {
		t.Errorf("span length = %d, want %d", tok.Span.Len(), len("outer@"))
	}
	if next := lx.Next(); next.Kind != token.KwWhile {
		t.Errorf("next = %v, want KwWhile", next.Kind)
	}
}

func TestStringTemplateIsOneToken(t *testing.T) {
	cases := []string{
		`"hello"`,
		`"a ${x} b"`,
		`"${a + b[i]} tail"`,
		`"${f("nested")} done"`,
		`"${outer { inner } }"`,
		`"esc \" and \$ stay inside"`,
	}
	for _, input := range cases {
		lx, bag := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.StringLit {
			t.Errorf("%s: kind = %v, want StringLit", input, tok.Kind)
		}
		if tok.Text != input {
			t.Errorf("%s: text = %q", input, tok.Text)
		}
		if next := lx.Next(); next.Kind != token.EOF {
			t.Errorf("%s: trailing token %v", input, next.Kind)
		}
		if bag.HasErrors() {
			t.Errorf("%s: unexpected diagnostics: %v", input, bag.Items())
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, bag := makeTestLexer("\"no closing quote\nval x")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("kind = %v, want Invalid", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("code = %v, want LexUnterminatedString", bag.Items()[0].Code)
	}
	// Lexing continues on the next line.
	if next := lx.Next(); next.Kind != token.KwVal {
		t.Errorf("next = %v, want KwVal", next.Kind)
	}
}

func TestCharLiterals(t *testing.T) {
	cases := []string{`'a'`, `'\n'`, `'\''`, `'é'`}
	for _, input := range cases {
		lx, bag := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.CharLit {
			t.Errorf("%s: kind = %v, want CharLit", input, tok.Kind)
		}
		if bag.HasErrors() {
			t.Errorf("%s: unexpected diagnostics", input)
		}
	}
}

func TestComments(t *testing.T) {
	lx, bag := makeTestLexer("a // line comment\nb /* block /* nested */ still */ c")
	want := []token.Kind{token.Ident, token.Ident, token.Ident, token.EOF}
	got := collectKinds(lx)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestAfterNewlineFlag(t *testing.T) {
	lx, _ := makeTestLexer("a\n(b)")
	first := lx.Next()
	if first.AfterNewline {
		t.Error("first token should not be AfterNewline")
	}
	paren := lx.Next()
	if paren.Kind != token.LParen {
		t.Fatalf("second token = %v, want LParen", paren.Kind)
	}
	if !paren.AfterNewline {
		t.Error("LParen after newline should carry AfterNewline")
	}
}

func TestOperators(t *testing.T) {
	lx, _ := makeTestLexer("+ - * / % ++ -- += -= *= /= %= = . ?. ? @")
	want := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.PlusPlus, token.MinusMinus,
		token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign,
		token.Assign, token.Dot, token.QuestionDot, token.Question, token.At,
		token.EOF,
	}
	got := collectKinds(lx)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnicodeIdentifierNFC(t *testing.T) {
	// "e" + combining acute composes to the same identifier as the
	// precomposed form.
	decomposed := "café"
	precomposed := "café"

	lx, bag := makeTestLexer(decomposed)
	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("kind = %v, want Ident", tok.Kind)
	}
	if tok.Text != precomposed {
		t.Errorf("text = %q, want NFC form %q", tok.Text, precomposed)
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Errorf("combining mark split the identifier: next = %v", next.Kind)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestAngleBracketTokens(t *testing.T) {
	lx, bag := makeTestLexer("<T, U>")
	got := collectKinds(lx)
	want := []token.Kind{token.Lt, token.Ident, token.Comma, token.Ident, token.Gt, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestUnknownCharReported(t *testing.T) {
	lx, bag := makeTestLexer("a # b")
	got := collectKinds(lx)
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for '#'")
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("code = %v, want LexUnknownChar", bag.Items()[0].Code)
	}
	// The bad character does not stop lexing.
	if got[len(got)-2] != token.Ident {
		t.Errorf("tokens = %v, want trailing Ident before EOF", got)
	}
}

func TestSetRangeSubLexer(t *testing.T) {
	input := `xx a + b yy`
	lx, _ := makeTestLexer(input)
	// Narrow to the `a + b` slice.
	lx.SetRange(3, 8)
	want := []token.Kind{token.Ident, token.Plus, token.Ident, token.EOF}
	got := collectKinds(lx)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if lx.Peek().Kind != token.Ident || lx.Peek().Text != "a" {
		t.Fatal("peek should return the first token repeatedly")
	}
	if lx.Next().Text != "a" {
		t.Fatal("next should return the peeked token")
	}
	if lx.Next().Text != "b" {
		t.Fatal("next should advance past the peeked token")
	}
}
