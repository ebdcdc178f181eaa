package parser

import (
	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/source"
	"sable/internal/syntax"
	"sable/internal/token"
)

// Options configures a parse.
type Options struct {
	// MaxErrors stops the parse after that many errors; 0 means no limit.
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result is the outcome of parsing one file.
type Result struct {
	File syntax.Node
	Bag  *diag.Bag
}

// Parser holds per-file parse state.
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span
}

// ParseFile parses one file into a syntax tree. The lexer must wrap the
// same file the FileSet resolves spans against.
func ParseFile(fs *source.FileSet, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	file := p.parseFile()

	var bag *diag.Bag
	switch br := opts.Reporter.(type) {
	case diag.BagReporter:
		bag = br.Bag
	case *diag.BagReporter:
		bag = br.Bag
	}
	return Result{File: file, Bag: bag}
}

func (p *Parser) parseFile() syntax.Node {
	start := p.lx.EmptySpan()
	var decls []syntax.Node
	for !p.at(token.EOF) && !p.opts.Enough() {
		if p.eat(token.Semicolon) {
			continue
		}
		decl := p.parseTopLevel()
		if decl == nil {
			// Skip one token so a stray character cannot wedge the loop.
			p.advance()
			continue
		}
		decls = append(decls, decl)
	}
	return syntax.NewFile(start.Cover(p.lastSpan), decls)
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// eat consumes the next token when it has the given kind.
func (p *Parser) eat(k token.Kind) bool {
	if !p.at(k) {
		return false
	}
	p.advance()
	return true
}

// expect consumes a token of the given kind or reports a diagnostic at
// the offending token.
func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind != k {
		p.err(diag.SynUnexpectedToken, tok.Span, msg)
		return tok, false
	}
	return p.advance(), true
}

func (p *Parser) err(code diag.Code, span source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(diag.NewError(code, span, msg))
	}
}
