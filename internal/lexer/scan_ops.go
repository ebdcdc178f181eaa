package lexer

import (
	"fmt"

	"sable/internal/diag"
	"sable/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation, longest match
// first.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	if b >= utf8RuneSelf {
		for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", lx.textAt(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textAt(sp)}
	}

	kind := token.Invalid
	switch b {
	case '+':
		kind = token.Plus
		switch lx.cursor.Peek() {
		case '+':
			lx.cursor.Bump()
			kind = token.PlusPlus
		case '=':
			lx.cursor.Bump()
			kind = token.PlusAssign
		}
	case '-':
		kind = token.Minus
		switch lx.cursor.Peek() {
		case '-':
			lx.cursor.Bump()
			kind = token.MinusMinus
		case '=':
			lx.cursor.Bump()
			kind = token.MinusAssign
		}
	case '*':
		kind = token.Star
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.StarAssign
		}
	case '/':
		kind = token.Slash
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.SlashAssign
		}
	case '%':
		kind = token.Percent
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			kind = token.PercentAssign
		}
	case '=':
		kind = token.Assign
	case '?':
		kind = token.Question
		if lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
			kind = token.QuestionDot
		}
	case '.':
		kind = token.Dot
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case '@':
		kind = token.At
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", rune(b)))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.textAt(sp)}
}
