package parser

import (
	"sable/internal/syntax"
	"sable/internal/token"
)

// parseStatement parses one statement: a local binding or an expression.
func (p *Parser) parseStatement() syntax.Node {
	switch p.lx.Peek().Kind {
	case token.KwVal, token.KwVar:
		return p.parseVarDecl()
	default:
		return p.parseExpr()
	}
}

func (p *Parser) parseVarDecl() syntax.Node {
	kw := p.advance()
	mutable := kw.Kind == token.KwVar

	name, ok := p.expect(token.Ident, "expected binding name")
	if !ok {
		return nil
	}
	typeText := ""
	if p.eat(token.Colon) {
		typeText = p.parseType()
	}
	var init syntax.Node
	if p.eat(token.Assign) {
		init = p.parseExpr()
	}
	return syntax.NewVarDecl(kw.Span.Cover(p.lastSpan), name.Text, mutable, typeText, init)
}

// parseBlock parses `{ ... }`. Statements separate on newlines or
// semicolons; the trailing expression is the block's value.
func (p *Parser) parseBlock() syntax.Node {
	open := p.advance() // '{'
	var stmts []syntax.Node
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.opts.Enough() {
		if p.eat(token.Semicolon) {
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			p.advance()
			continue
		}
		stmts = append(stmts, stmt)
	}
	p.expect(token.RBrace, "expected '}' to close block")
	return syntax.NewBlock(open.Span.Cover(p.lastSpan), stmts)
}
