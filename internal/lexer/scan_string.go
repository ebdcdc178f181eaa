package lexer

import (
	"sable/internal/diag"
	"sable/internal/token"
)

// scanStringTemplate scans a whole `"..."` template as one raw token,
// quotes included. `${...}` runs may contain nested braces and nested
// plain strings; the scanner tracks both so the closing quote of the
// template is found correctly. Segment structure is recovered by the
// parser.
func (lx *Lexer) scanStringTemplate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	depth := 0

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexUnterminatedEscape, sp, "unterminated escape sequence")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textAt(sp)}
			}
			lx.cursor.Bump()

		case b == '"':
			lx.cursor.Bump()
			if depth > 0 {
				// nested string inside ${...}
				lx.skipNestedString(start)
				continue
			}
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.textAt(sp)}

		case b == '$':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '{' {
				lx.cursor.Bump()
				depth++
			}

		case b == '{' && depth > 0:
			lx.cursor.Bump()
			depth++

		case b == '}' && depth > 0:
			lx.cursor.Bump()
			depth--

		case b == '\n' && depth == 0:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textAt(sp)}

		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textAt(sp)}
}

// skipNestedString consumes a plain string opened inside `${...}`. The
// opening quote is already consumed. Templates do not nest further in
// this version; a `$` inside is literal text.
func (lx *Lexer) skipNestedString(templateStart Mark) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if b == '"' {
			return
		}
	}
	sp := lx.cursor.SpanFrom(templateStart)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
}

// scanChar scans a `'x'` character literal, escapes included. Content
// decoding happens in the parser.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '\'' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.CharLit, Span: sp, Text: lx.textAt(sp)}
		}
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textAt(sp)}
}
