package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sable/internal/diag"
	"sable/internal/diagfmt"
	"sable/internal/lexer"
	"sable/internal/source"
	"sable/internal/token"
)

func lexAll(t *testing.T, input string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.sb", []byte(input))
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.NopReporter{}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, fs
}

func TestFormatTokensPretty(t *testing.T) {
	tokens, fs := lexAll(t, "val x = 1\nx")
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.Contains(out, `"val"`) && !strings.Contains(out, "val") {
		t.Errorf("keyword missing:\n%s", out)
	}
	if !strings.Contains(out, "at 1:1-1:4") {
		t.Errorf("first token position missing:\n%s", out)
	}
	// second-line identifier is marked as starting a line
	if !strings.Contains(out, "(nl)") {
		t.Errorf("after-newline marker missing:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if got := len(lines); got != len(tokens) {
		t.Errorf("got %d lines for %d tokens", got, len(tokens))
	}
	if !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Errorf("last line must be EOF:\n%s", out)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	tokens, _ := lexAll(t, "val x = 1")
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatal(err)
	}

	var out []diagfmt.TokenJSON
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out) != len(tokens) {
		t.Fatalf("got %d entries for %d tokens", len(out), len(tokens))
	}
	if out[0].Kind != "val" {
		t.Errorf("first kind = %q", out[0].Kind)
	}
	if out[1].Kind != "Ident" || out[1].Text != "x" {
		t.Errorf("second token = %+v", out[1])
	}
	if out[len(out)-1].Kind != "EOF" {
		t.Errorf("last kind = %q", out[len(out)-1].Kind)
	}
}
