package parser

import (
	"strings"

	"sable/internal/diag"
	"sable/internal/syntax"
	"sable/internal/token"
)

func (p *Parser) parseTopLevel() syntax.Node {
	switch p.lx.Peek().Kind {
	case token.KwExpect, token.KwOperator, token.KwFun, token.KwClass, token.KwRecord:
		return p.parseDecl()
	default:
		return p.parseStatement()
	}
}

// parseDecl parses a function, class or record declaration with its
// leading modifiers.
func (p *Parser) parseDecl() syntax.Node {
	expect := false
	for {
		switch p.lx.Peek().Kind {
		case token.KwExpect:
			p.advance()
			expect = true
			continue
		case token.KwOperator:
			// Consumed as a marker. Operator dispatch downstream is
			// purely name-based, so the modifier carries no tree state.
			p.advance()
			continue
		}
		break
	}

	switch p.lx.Peek().Kind {
	case token.KwFun:
		return p.parseFun(expect)
	case token.KwClass, token.KwRecord:
		return p.parseClassOrRecord(expect)
	default:
		tok := p.lx.Peek()
		p.err(diag.SynUnexpectedToken, tok.Span, "expected declaration after modifier")
		return nil
	}
}

func (p *Parser) parseFun(expect bool) syntax.Node {
	kw := p.advance() // fun
	name, ok := p.expect(token.Ident, "expected function name")
	if !ok {
		return nil
	}
	typeParams := p.parseTypeParams()

	var params []syntax.Node
	if _, ok := p.expect(token.LParen, "expected '(' after function name"); ok {
		params = p.parseParams()
	}

	returnType := ""
	if p.eat(token.Colon) {
		returnType = p.parseType()
	}

	var body syntax.Node
	if p.at(token.LBrace) {
		body = p.parseBlock()
	} else if p.eat(token.Assign) {
		// Expression-body form: fun f() = expr
		body = p.parseExpr()
	}

	return syntax.NewFunDecl(kw.Span.Cover(p.lastSpan), name.Text, typeParams, params, returnType, body, expect)
}

func (p *Parser) parseClassOrRecord(expect bool) syntax.Node {
	kw := p.advance()
	record := kw.Kind == token.KwRecord

	name, ok := p.expect(token.Ident, "expected type name")
	if !ok {
		return nil
	}
	typeParams := p.parseTypeParams()

	var params []syntax.Node
	if p.at(token.LParen) {
		p.advance()
		params = p.parseParams()
	} else if record {
		p.err(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected '(' after record name")
	}

	var members []syntax.Node
	if p.eat(token.LBrace) {
		for !p.at(token.RBrace) && !p.at(token.EOF) && !p.opts.Enough() {
			if p.eat(token.Semicolon) {
				continue
			}
			member := p.parseTopLevel()
			if member == nil {
				p.advance()
				continue
			}
			members = append(members, member)
		}
		p.expect(token.RBrace, "expected '}' to close type body")
	}

	span := kw.Span.Cover(p.lastSpan)
	if record {
		return syntax.NewRecordDecl(span, name.Text, typeParams, params, members, expect)
	}
	return syntax.NewClassDecl(span, name.Text, typeParams, params, members, expect)
}

// parseTypeParams parses an optional `<T, U>` list after a declaration
// name.
func (p *Parser) parseTypeParams() []string {
	if !p.eat(token.Lt) {
		return nil
	}
	var names []string
	for !p.at(token.Gt) && !p.at(token.EOF) && !p.opts.Enough() {
		name, ok := p.expect(token.Ident, "expected type parameter name")
		if !ok {
			break
		}
		names = append(names, name.Text)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.Gt, "expected '>' to close type parameter list")
	return names
}

// parseParams parses a parameter list after the opening paren has been
// consumed, through the closing paren. A val/var marker declares a
// stored field backing the parameter.
func (p *Parser) parseParams() []syntax.Node {
	var params []syntax.Node
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.opts.Enough() {
		stored := false
		mutable := false
		switch p.lx.Peek().Kind {
		case token.KwVal:
			p.advance()
			stored = true
		case token.KwVar:
			p.advance()
			stored = true
			mutable = true
		}

		name, ok := p.expect(token.Ident, "expected parameter name")
		if !ok {
			p.advance()
			continue
		}
		typeText := ""
		if _, ok := p.expect(token.Colon, "expected ':' after parameter name"); ok {
			typeText = p.parseType()
		}
		params = append(params, syntax.NewParam(name.Span.Cover(p.lastSpan), name.Text, typeText, mutable, stored))

		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "expected ')' to close parameter list")
	return params
}

// parseType collects a dotted type path with an optional `?` suffix into
// its raw text form. Types stay textual in the surface tree; resolution
// happens downstream.
func (p *Parser) parseType() string {
	var sb strings.Builder
	name, ok := p.expect(token.Ident, "expected type name")
	if !ok {
		return ""
	}
	sb.WriteString(name.Text)
	for p.at(token.Dot) {
		p.advance()
		part, ok := p.expect(token.Ident, "expected type name after '.'")
		if !ok {
			break
		}
		sb.WriteByte('.')
		sb.WriteString(part.Text)
	}
	if p.eat(token.Lt) {
		sb.WriteByte('<')
		for {
			sb.WriteString(p.parseType())
			if !p.eat(token.Comma) {
				break
			}
			sb.WriteString(", ")
		}
		p.expect(token.Gt, "expected '>' to close type argument list")
		sb.WriteByte('>')
	}
	if p.eat(token.Question) {
		sb.WriteByte('?')
	}
	return sb.String()
}
