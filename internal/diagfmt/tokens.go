package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sable/internal/source"
	"sable/internal/token"
)

// TokenJSON is one token in the JSON token dump.
type TokenJSON struct {
	Kind         string      `json:"kind"`
	Text         string      `json:"text,omitempty"`
	Span         source.Span `json:"span"`
	AfterNewline bool        `json:"after_newline,omitempty"`
}

// FormatTokensPretty writes one line per token with resolved positions.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if tok.AfterNewline {
			fmt.Fprint(w, " (nl)")
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenJSON{
			Kind:         tok.Kind.String(),
			Text:         tok.Text,
			Span:         tok.Span,
			AfterNewline: tok.AfterNewline,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
