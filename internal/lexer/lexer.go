package lexer

import (
	"sable/internal/diag"
	"sable/internal/source"
	"sable/internal/token"
)

// Lexer turns one source file (or a narrowed byte range of it) into a
// token stream with single-token lookahead.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	sawNL  bool
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// SetRange narrows the lexer to [start, limit). Template parsing uses it
// to run a sub-lexer over one interpolated expression.
func (lx *Lexer) SetRange(start, limit uint32) {
	lx.cursor.Off = start
	lx.cursor.Limit = limit
	lx.look = nil
	lx.sawNL = false
}

// Next returns the next significant token. After EOF it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan(), AfterNewline: lx.takeNL()}
	}

	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanStringTemplate()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.AfterNewline = lx.takeNL()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the underlying file.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) takeNL() bool {
	nl := lx.sawNL
	lx.sawNL = false
	return nl
}

func (lx *Lexer) errLex(code diag.Code, span source.Span, msg string) {
	lx.opts.reporter().Report(diag.NewError(code, span, msg))
}

func (lx *Lexer) textAt(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
