package lower_test

import (
	"math"
	"testing"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/lower"
	"sable/internal/source"
	"sable/internal/syntax"
)

func TestIntLiteralSuffixes(t *testing.T) {
	cases := []struct {
		text string
		kind ir.ConstKind
	}{
		{"0", ir.ConstInt},
		{"42", ir.ConstInt},
		{"42u", ir.ConstUInt},
		{"42U", ir.ConstUInt},
		{"42L", ir.ConstLong},
		{"42uL", ir.ConstULong},
		{"42UL", ir.ConstULong},
		{"0x2A", ir.ConstInt},
		{"0b101010", ir.ConstInt},
		{"0x2AuL", ir.ConstULong},
	}
	for _, tc := range cases {
		v, d, ok := lower.ParseLiteral(syntax.KindIntLiteral, tc.text, source.Span{})
		if !ok {
			t.Errorf("%q: not ok, diag %v", tc.text, d)
			continue
		}
		if d != nil {
			t.Errorf("%q: unexpected diagnostic %v", tc.text, d)
		}
		if v.Kind != tc.kind {
			t.Errorf("%q: kind = %v, want %v", tc.text, v.Kind, tc.kind)
		}
	}
}

func TestIntLiteralValues(t *testing.T) {
	cases := []struct {
		text string
		want int64
	}{
		{"42", 42},
		{"1_000_000", 1000000},
		{"1__0", 10},
		{"0xFF", 255},
		{"0b1010", 10},
	}
	for _, tc := range cases {
		v, _, ok := lower.ParseLiteral(syntax.KindIntLiteral, tc.text, source.Span{})
		if !ok || v.Int != tc.want {
			t.Errorf("%q: value = %d ok=%v, want %d", tc.text, v.Int, ok, tc.want)
		}
	}
}

func TestWrongLongSuffixIsSoft(t *testing.T) {
	// Lowercase 'l' still parses as a long; the diagnostic rides along.
	v, d, ok := lower.ParseLiteral(syntax.KindIntLiteral, "42l", source.Span{})
	if !ok {
		t.Fatal("lowercase long must stay a usable constant")
	}
	if v.Kind != ir.ConstLong || v.Int != 42 {
		t.Errorf("value = %v %d, want Long 42", v.Kind, v.Int)
	}
	if d == nil || d.Code != diag.LowWrongLongSuffix {
		t.Errorf("diag = %v, want LowWrongLongSuffix", d)
	}
}

func TestWrongLongSuffixWinsOverRange(t *testing.T) {
	// One diagnostic at most; the suffix complaint takes precedence.
	_, d, ok := lower.ParseLiteral(syntax.KindIntLiteral,
		"99999999999999999999999999l", source.Span{})
	if !ok {
		t.Fatal("soft conditions must keep the constant")
	}
	if d == nil || d.Code != diag.LowWrongLongSuffix {
		t.Errorf("diag = %v, want LowWrongLongSuffix", d)
	}
}

func TestIntLiteralOutOfRange(t *testing.T) {
	cases := []string{
		"99999999999999999999999999",
		"0xFFFFFFFFFFFFFFFFFF",
		"4294967296u", // uint32 max + 1
	}
	for _, text := range cases {
		_, d, ok := lower.ParseLiteral(syntax.KindIntLiteral, text, source.Span{})
		if !ok {
			t.Errorf("%q: out-of-range must be soft", text)
			continue
		}
		if d == nil || d.Code != diag.LowIntLiteralOutOfRange {
			t.Errorf("%q: diag = %v, want LowIntLiteralOutOfRange", text, d)
		}
	}
}

func TestIllegalUnderscoreIsHard(t *testing.T) {
	cases := []string{"_1", "1_", "0x_FF", "1_u"}
	for _, text := range cases {
		_, d, ok := lower.ParseLiteral(syntax.KindIntLiteral, text, source.Span{})
		if ok {
			t.Errorf("%q: edge underscore must be a hard error", text)
			continue
		}
		if d == nil || d.Code != diag.LowIllegalUnderscore {
			t.Errorf("%q: diag = %v, want LowIllegalUnderscore", text, d)
		}
	}
}

func TestMalformedIntLiteralIsHard(t *testing.T) {
	// The lexer accepts bare base prefixes and arbitrary suffix-letter
	// runs; the residue must come back as an error, never a panic.
	cases := []string{"0x", "0b", "0xL", "1LL", "1lu", "1Lu", "1uu"}
	for _, text := range cases {
		_, d, ok := lower.ParseLiteral(syntax.KindIntLiteral, text, source.Span{})
		if ok {
			t.Errorf("%q: malformed literal must be a hard error", text)
			continue
		}
		if d == nil || d.Code != diag.LowSyntax {
			t.Errorf("%q: diag = %v, want LowSyntax", text, d)
		}
	}
}

func TestMalformedLiteralLowersToErrorNode(t *testing.T) {
	for _, input := range []string{"0x", "1LL", "0xL"} {
		unit, bag := lowerSnippet(t, input)
		if len(unit.Stmts) != 1 {
			t.Fatalf("%q: got %d statements, want 1", input, len(unit.Stmts))
		}
		if unit.Stmts[0].Kind != ir.ExprError {
			t.Errorf("%q: kind = %v, want Error", input, unit.Stmts[0].Kind)
		}
		found := false
		for _, d := range bag.Items() {
			if d.Code == diag.LowSyntax {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: no LowSyntax diagnostic, got %v", input, bag.Items())
		}
	}
}

func TestInteriorUnderscoresLegal(t *testing.T) {
	// _1 is an identifier at lex time anyway; inside the digit run even
	// doubled underscores pass.
	for _, text := range []string{"1_2", "1__2", "0xF_F"} {
		_, d, ok := lower.ParseLiteral(syntax.KindIntLiteral, text, source.Span{})
		if !ok || d != nil {
			t.Errorf("%q: ok=%v diag=%v, want clean parse", text, ok, d)
		}
	}
}

func TestFloatLiterals(t *testing.T) {
	cases := []struct {
		text string
		kind ir.ConstKind
		want float64
	}{
		{"3.14", ir.ConstDouble, 3.14},
		{"1e3", ir.ConstDouble, 1000},
		{"2.5e-1", ir.ConstDouble, 0.25},
		{"2f", ir.ConstFloat, 2},
		{"2.5F", ir.ConstFloat, 2.5},
		{"1_000.5", ir.ConstDouble, 1000.5},
	}
	for _, tc := range cases {
		v, d, ok := lower.ParseLiteral(syntax.KindFloatLiteral, tc.text, source.Span{})
		if !ok || d != nil {
			t.Errorf("%q: ok=%v diag=%v", tc.text, ok, d)
			continue
		}
		if v.Kind != tc.kind {
			t.Errorf("%q: kind = %v, want %v", tc.text, v.Kind, tc.kind)
		}
		if math.Abs(v.Float-tc.want) > 1e-9 {
			t.Errorf("%q: value = %g, want %g", tc.text, v.Float, tc.want)
		}
	}
}

func TestFloatOutOfRangeIsSoft(t *testing.T) {
	v, d, ok := lower.ParseLiteral(syntax.KindFloatLiteral, "1e99999", source.Span{})
	if !ok {
		t.Fatal("float overflow must be soft")
	}
	if v.Kind != ir.ConstNull {
		t.Errorf("kind = %v, want Null placeholder", v.Kind)
	}
	if d == nil || d.Code != diag.LowFloatLiteralOutOfRange {
		t.Errorf("diag = %v, want LowFloatLiteralOutOfRange", d)
	}
}

func TestCharAndBoolLiterals(t *testing.T) {
	v, _, ok := lower.ParseLiteral(syntax.KindCharLiteral, `'\n'`, source.Span{})
	if !ok || v.Kind != ir.ConstChar || v.Int != '\n' {
		t.Errorf("char: %v %d ok=%v", v.Kind, v.Int, ok)
	}
	v, _, ok = lower.ParseLiteral(syntax.KindCharLiteral, `'é'`, source.Span{})
	if !ok || v.Kind != ir.ConstChar || v.Int != int64('é') {
		t.Errorf("char: %v %d ok=%v", v.Kind, v.Int, ok)
	}
	v, _, ok = lower.ParseLiteral(syntax.KindBoolLiteral, "true", source.Span{})
	if !ok || v.Kind != ir.ConstBool || !v.Bool {
		t.Errorf("bool: %v %v ok=%v", v.Kind, v.Bool, ok)
	}
	v, _, ok = lower.ParseLiteral(syntax.KindNullLiteral, "null", source.Span{})
	if !ok || v.Kind != ir.ConstNull {
		t.Errorf("null: %v ok=%v", v.Kind, ok)
	}
}
