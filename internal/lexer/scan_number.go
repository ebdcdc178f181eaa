package lexer

import (
	"sable/internal/token"
)

// scanNumber scans decimal, hex (0x) and binary (0b) integers, and
// decimal floats with optional fraction and exponent. Underscore
// placement and suffix validity (u, L, f and combinations) are not
// judged here: the raw text, suffixes included, travels on the token
// and literal parsing in the lowering phase owns the exact rules.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch b1 {
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
					lx.cursor.Bump()
				}
				lx.scanIntSuffix()
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.IntLit, Span: sp, Text: lx.textAt(sp)}
			case 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for lx.cursor.Peek() == '0' || lx.cursor.Peek() == '1' || lx.cursor.Peek() == '_' {
					lx.cursor.Bump()
				}
				lx.scanIntSuffix()
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.IntLit, Span: sp, Text: lx.textAt(sp)}
			}
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// Fraction only when a digit follows the dot, so `1.plus(2)` stays
	// an integer and a call.
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		if lx.hasExponentDigits() {
			kind = token.FloatLit
			lx.cursor.Bump()
			if b := lx.cursor.Peek(); b == '+' || b == '-' {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	if b := lx.cursor.Peek(); b == 'f' || b == 'F' {
		kind = token.FloatLit
		lx.cursor.Bump()
	} else {
		lx.scanIntSuffix()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.textAt(sp)}
}

// scanIntSuffix consumes trailing u/U/l/L letters. Whether the exact
// combination is legal is decided later.
func (lx *Lexer) scanIntSuffix() {
	for {
		switch lx.cursor.Peek() {
		case 'u', 'U', 'l', 'L':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

// hasExponentDigits looks past `e`/`E` and an optional sign for a digit,
// so `1e` followed by an identifier is not swallowed as an exponent.
func (lx *Lexer) hasExponentDigits() bool {
	off := lx.cursor.Off + 1
	if off < lx.cursor.Limit {
		b := lx.cursor.File.Content[off]
		if b == '+' || b == '-' {
			off++
		}
	}
	return off < lx.cursor.Limit && isDec(lx.cursor.File.Content[off])
}
