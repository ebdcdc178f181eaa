package lexer

import (
	"sable/internal/diag"
)

// skipTrivia consumes whitespace and comments before the next
// significant token and records whether a line break was crossed.
// Block comments nest; an unterminated one is reported and cut at EOF.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' {
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			lx.sawNL = true
			lx.cursor.Bump()
			continue
		}
		if b == '/' {
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' {
				return
			}
			switch b1 {
			case '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				continue
			case '*':
				lx.skipBlockComment()
				continue
			}
			return
		}
		return
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	depth := 1
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if !ok {
			break
		}
		if b0 == '/' && b1 == '*' {
			depth++
			lx.cursor.Bump()
			lx.cursor.Bump()
			continue
		}
		if b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return
			}
			continue
		}
		if b0 == '\n' {
			lx.sawNL = true
		}
		lx.cursor.Bump()
	}
	lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unterminated block comment")
	lx.cursor.Off = lx.cursor.Limit
}
