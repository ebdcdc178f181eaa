package token

import (
	"sable/internal/source"
)

// Token is a single lexical token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// AfterNewline is set when at least one line break separated this
	// token from the previous one. The parser uses it for statement
	// termination and to keep postfix ++/-- on the same line as their
	// operand.
	AfterNewline bool
}

// IsLiteral reports whether the token is a literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwTrue, KwFalse, KwNull, KwVal, KwVar, KwFun, KwClass, KwRecord,
		KwExpect, KwOperator, KwWhile, KwDo, KwBreak, KwContinue, KwReturn, KwThis:
		return true
	default:
		return false
	}
}

// IsAssign reports whether the token is `=` or a compound assignment.
func (t Token) IsAssign() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign:
		return true
	default:
		return false
	}
}
