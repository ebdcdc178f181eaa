package parser

import (
	"fmt"

	"fortio.org/safecast"

	"sable/internal/diag"
	"sable/internal/lexer"
	"sable/internal/source"
	"sable/internal/syntax"
	"sable/internal/token"
)

// parseStringTemplate splits a raw string token into ordered segments:
// literal text runs, escape sequences, `$name` references and `${expr}`
// entries. Interpolated expressions are parsed by a sub-parser over a
// narrowed lexer range of the same file, so their spans point into the
// original source.
func (p *Parser) parseStringTemplate() syntax.Node {
	tok := p.advance()
	raw := tok.Text
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		p.err(diag.SynUnexpectedToken, tok.Span, "malformed string literal")
		return syntax.NewStringTemplate(tok.Span, nil)
	}
	content := raw[1 : len(raw)-1]
	contentStart := tok.Span.Start + 1
	contentEnd := tok.Span.End - 1

	offset := func(pos int) uint32 {
		off, err := safecast.Conv[uint32](pos)
		if err != nil {
			panic(fmt.Errorf("template offset overflow: %w", err))
		}
		return contentStart + off
	}
	spanAt := func(from, to int) source.Span {
		return source.Span{File: tok.Span.File, Start: offset(from), End: offset(to)}
	}

	var segments []syntax.Node
	textStart := 0
	flushText := func(upto int) {
		if upto > textStart {
			segments = append(segments, syntax.NewTemplateText(spanAt(textStart, upto), content[textStart:upto]))
		}
	}

	for i := 0; i < len(content); {
		switch content[i] {
		case '\\':
			flushText(i)
			end := i + 2
			if i+1 < len(content) && content[i+1] == 'u' {
				end = i + 6
			}
			if end > len(content) {
				end = len(content)
			}
			escRaw := content[i:end]
			decoded, ok := syntax.DecodeEscape(escRaw)
			segments = append(segments, syntax.NewTemplateEscape(spanAt(i, end), escRaw, decoded, ok))
			i = end
			textStart = i

		case '$':
			if i+1 < len(content) && content[i+1] == '{' {
				flushText(i)
				entry, closeEnd, ok := p.parseTemplateExpr(tok.Span.File, offset(i+2), contentEnd, spanAt(i, i+2))
				if entry != nil {
					segments = append(segments, entry)
				}
				if !ok || closeEnd <= contentStart {
					// closing brace never found; stop splitting
					return syntax.NewStringTemplate(tok.Span, segments)
				}
				i = int(closeEnd - contentStart)
				textStart = i
				continue
			}
			if i+1 < len(content) && isNameStart(content[i+1]) {
				flushText(i)
				j := i + 1
				for j < len(content) && isNameContinue(content[j]) {
					j++
				}
				name := content[i+1 : j]
				ref := syntax.NewReference(spanAt(i+1, j), name)
				segments = append(segments, syntax.NewTemplateEntry(spanAt(i, j), ref))
				i = j
				textStart = i
				continue
			}
			// lone '$' is literal text
			i++

		default:
			i++
		}
	}
	flushText(len(content))

	return syntax.NewStringTemplate(tok.Span, segments)
}

// parseTemplateExpr parses one `${...}` entry through a sub-lexer
// narrowed to [start, limit). It returns the entry node (nil when the
// expression is unusable) and the absolute byte offset just past the
// closing brace; ok is false when the brace was never found.
func (p *Parser) parseTemplateExpr(file source.FileID, start, limit uint32, openSpan source.Span) (entry syntax.Node, closeEnd uint32, ok bool) {
	sub := lexer.New(p.lx.File(), lexer.Options{Reporter: p.opts.Reporter})
	sub.SetRange(start, limit)
	subParser := Parser{
		lx:       sub,
		fs:       p.fs,
		opts:     p.opts,
		lastSpan: source.Span{File: file, Start: start, End: start},
	}

	expr := subParser.parseExpr()
	p.opts.CurrentErrors = subParser.opts.CurrentErrors

	closeTok := subParser.lx.Peek()
	if closeTok.Kind != token.RBrace {
		sp := closeTok.Span
		if closeTok.Kind == token.EOF {
			sp = source.Span{File: file, Start: limit, End: limit}
		}
		p.err(diag.SynUnclosedDelimiter, sp, "expected '}' to close template expression")
		return nil, 0, false
	}

	span := openSpan.Cover(closeTok.Span)
	return syntax.NewTemplateEntry(span, expr), closeTok.Span.End, true
}

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameContinue(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}
