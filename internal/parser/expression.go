package parser

import (
	"sable/internal/diag"
	"sable/internal/syntax"
	"sable/internal/token"
)

// parseExpr is the expression entry point. Assignment binds loosest and
// associates to the right.
func (p *Parser) parseExpr() syntax.Node {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}
	tok := p.lx.Peek()
	if !tok.IsAssign() {
		return left
	}
	p.advance()
	op := assignOp(tok.Kind)
	right := p.parseExpr()
	if right == nil {
		right = p.missingExpr()
	}
	return syntax.NewBinary(left.Span().Cover(p.lastSpan), op, left, right)
}

func (p *Parser) parseAdditive() syntax.Node {
	left := p.parseMultiplicative()
	for left != nil {
		var op syntax.Op
		switch p.lx.Peek().Kind {
		case token.Plus:
			op = syntax.OpPlus
		case token.Minus:
			op = syntax.OpMinus
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			right = p.missingExpr()
		}
		left = syntax.NewBinary(left.Span().Cover(p.lastSpan), op, left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() syntax.Node {
	left := p.parseUnary()
	for left != nil {
		var op syntax.Op
		switch p.lx.Peek().Kind {
		case token.Star:
			op = syntax.OpMul
		case token.Slash:
			op = syntax.OpDiv
		case token.Percent:
			op = syntax.OpRem
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		if right == nil {
			right = p.missingExpr()
		}
		left = syntax.NewBinary(left.Span().Cover(p.lastSpan), op, left, right)
	}
	return left
}

func (p *Parser) parseUnary() syntax.Node {
	var op syntax.Op
	switch p.lx.Peek().Kind {
	case token.PlusPlus:
		op = syntax.OpInc
	case token.MinusMinus:
		op = syntax.OpDec
	case token.Minus:
		op = syntax.OpNegate
	default:
		return p.parsePostfix()
	}
	tok := p.advance()
	operand := p.parseUnary()
	return syntax.NewPrefix(tok.Span.Cover(p.lastSpan), op, operand)
}

// parsePostfix parses selector, call, subscript and step-operator
// suffixes. Suffixes must start on the operand's line, so a statement
// that begins with `(` or `[` does not glue onto the previous one.
func (p *Parser) parsePostfix() syntax.Node {
	expr := p.parsePrimary()
	for expr != nil {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.Dot, token.QuestionDot:
			p.advance()
			sel, ok := p.expect(token.Ident, "expected member name after '.'")
			if !ok {
				return expr
			}
			selector := syntax.NewReference(sel.Span, sel.Text)
			expr = syntax.NewQualified(expr.Span().Cover(sel.Span), expr, selector, tok.Kind == token.QuestionDot)

		case token.LParen:
			if tok.AfterNewline {
				return expr
			}
			p.advance()
			args := p.parseArgs()
			expr = syntax.NewCall(expr.Span().Cover(p.lastSpan), expr, args)

		case token.LBracket:
			if tok.AfterNewline {
				return expr
			}
			p.advance()
			indices := p.parseIndices()
			expr = syntax.NewArrayAccess(expr.Span().Cover(p.lastSpan), expr, indices)

		case token.PlusPlus:
			if tok.AfterNewline {
				return expr
			}
			p.advance()
			expr = syntax.NewPostfix(expr.Span().Cover(tok.Span), syntax.OpInc, expr)

		case token.MinusMinus:
			if tok.AfterNewline {
				return expr
			}
			p.advance()
			expr = syntax.NewPostfix(expr.Span().Cover(tok.Span), syntax.OpDec, expr)

		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parseArgs() []syntax.Node {
	var args []syntax.Node
	for !p.at(token.RParen) && !p.at(token.EOF) && !p.opts.Enough() {
		arg := p.parseExpr()
		if arg == nil {
			p.advance()
			continue
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, "expected ')' to close argument list")
	return args
}

func (p *Parser) parseIndices() []syntax.Node {
	var indices []syntax.Node
	for !p.at(token.RBracket) && !p.at(token.EOF) && !p.opts.Enough() {
		idx := p.parseExpr()
		if idx == nil {
			p.advance()
			continue
		}
		indices = append(indices, idx)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBracket, "expected ']' to close subscript")
	return indices
}

func (p *Parser) parsePrimary() syntax.Node {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return syntax.NewLiteral(syntax.KindIntLiteral, tok.Span, tok.Text)

	case token.FloatLit:
		p.advance()
		return syntax.NewLiteral(syntax.KindFloatLiteral, tok.Span, tok.Text)

	case token.KwTrue, token.KwFalse:
		p.advance()
		return syntax.NewLiteral(syntax.KindBoolLiteral, tok.Span, tok.Text)

	case token.KwNull:
		p.advance()
		return syntax.NewLiteral(syntax.KindNullLiteral, tok.Span, tok.Text)

	case token.CharLit:
		p.advance()
		content := charContent(tok.Text)
		r, ok := syntax.DecodeCharContent(content)
		decoded := ""
		if ok {
			decoded = string(r)
		}
		return syntax.NewCharLiteral(tok.Span, tok.Text, decoded, ok)

	case token.StringLit:
		return p.parseStringTemplate()

	case token.Ident:
		p.advance()
		return syntax.NewReference(tok.Span, tok.Text)

	case token.LabelDef:
		p.advance()
		inner := p.parseExpr()
		return syntax.NewLabeled(tok.Span.Cover(p.lastSpan), tok.Text, inner)

	case token.KwThis:
		p.advance()
		label := p.parseJumpLabel()
		return syntax.NewThis(tok.Span.Cover(p.lastSpan), label)

	case token.KwBreak:
		p.advance()
		label := p.parseJumpLabel()
		return syntax.NewBreak(tok.Span.Cover(p.lastSpan), label)

	case token.KwContinue:
		p.advance()
		label := p.parseJumpLabel()
		return syntax.NewContinue(tok.Span.Cover(p.lastSpan), label)

	case token.KwReturn:
		p.advance()
		label := p.parseJumpLabel()
		var value syntax.Node
		if next := p.lx.Peek(); !next.AfterNewline && p.canStartExpr(next) {
			value = p.parseExpr()
		}
		return syntax.NewReturn(tok.Span.Cover(p.lastSpan), label, value)

	case token.KwWhile:
		return p.parseWhile()

	case token.KwDo:
		return p.parseDoWhile()

	case token.LBrace:
		return p.parseBlock()

	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, "expected ')'")
		return syntax.NewParen(tok.Span.Cover(p.lastSpan), inner)

	case token.At:
		p.advance()
		name, ok := p.expect(token.Ident, "expected annotation name after '@'")
		if !ok {
			return nil
		}
		inner := p.parseExpr()
		return syntax.NewAnnotated(tok.Span.Cover(p.lastSpan), name.Text, inner)

	default:
		p.err(diag.SynExpectExpression, tok.Span, "expected expression")
		return nil
	}
}

// parseJumpLabel consumes `@label` after this/break/continue/return.
func (p *Parser) parseJumpLabel() string {
	tok := p.lx.Peek()
	if tok.Kind != token.At || tok.AfterNewline {
		return ""
	}
	p.advance()
	name, ok := p.expect(token.Ident, "expected label name after '@'")
	if !ok {
		return ""
	}
	return name.Text
}

func (p *Parser) parseWhile() syntax.Node {
	kw := p.advance() // while
	p.expect(token.LParen, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.expect(token.RParen, "expected ')' after loop condition")
	var body syntax.Node
	if p.canStartExpr(p.lx.Peek()) {
		body = p.parseStatement()
	}
	return syntax.NewWhile(kw.Span.Cover(p.lastSpan), cond, body)
}

func (p *Parser) parseDoWhile() syntax.Node {
	kw := p.advance() // do
	var body syntax.Node
	if p.canStartExpr(p.lx.Peek()) {
		body = p.parseStatement()
	}
	p.expect(token.KwWhile, "expected 'while' after do-while body")
	p.expect(token.LParen, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.expect(token.RParen, "expected ')' after loop condition")
	return syntax.NewDoWhile(kw.Span.Cover(p.lastSpan), cond, body)
}

// canStartExpr reports whether a token can begin an expression.
func (p *Parser) canStartExpr(tok token.Token) bool {
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwNull,
		token.Ident, token.LabelDef, token.KwThis,
		token.KwBreak, token.KwContinue, token.KwReturn,
		token.KwWhile, token.KwDo, token.KwVal, token.KwVar,
		token.LBrace, token.LParen, token.At,
		token.Minus, token.PlusPlus, token.MinusMinus:
		return true
	default:
		return false
	}
}

// missingExpr reports a missing operand and yields nil so the caller
// builds a node with a hole that lowering converts to an error node.
func (p *Parser) missingExpr() syntax.Node {
	p.err(diag.SynExpectExpression, p.lx.Peek().Span, "expected expression")
	return nil
}

func assignOp(k token.Kind) syntax.Op {
	switch k {
	case token.Assign:
		return syntax.OpAssign
	case token.PlusAssign:
		return syntax.OpPlusAssign
	case token.MinusAssign:
		return syntax.OpMinusAssign
	case token.StarAssign:
		return syntax.OpMulAssign
	case token.SlashAssign:
		return syntax.OpDivAssign
	case token.PercentAssign:
		return syntax.OpRemAssign
	default:
		return syntax.OpNone
	}
}

// charContent strips the quotes of a character literal token.
func charContent(text string) string {
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		return text[1 : len(text)-1]
	}
	return text
}
