package lexer

import (
	"golang.org/x/text/unicode/norm"

	"sable/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans an identifier, a keyword, or a `name@` label
// definition. Non-ASCII identifiers are NFC-normalized so visually
// identical spellings compare equal downstream; Token.Span still covers
// the raw source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, size := lx.cursor.PeekRune()
	if size == 0 {
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
	}

	ascii := true
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		ascii = false
		lx.cursor.BumpRune()
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b < utf8RuneSelf {
			break
		}
		r2, size2 := lx.cursor.PeekRune()
		if size2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		ascii = false
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.textAt(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	// `name@` defines a label. Folding it here keeps the parser at one
	// token of lookahead.
	if lx.cursor.Peek() == '@' {
		lx.cursor.Bump()
		return token.Token{Kind: token.LabelDef, Span: lx.cursor.SpanFrom(start), Text: text}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
