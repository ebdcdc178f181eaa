package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sable/internal/diag"
	"sable/internal/source"
)

// Pretty renders a bag in human-readable form. Each diagnostic prints as
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line and a ^~~~ underline covering the span,
// then any notes in the same shape. Call bag.Sort() first for stable
// output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := d.Code.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = color.New(color.Bold).Sprint(code)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col, sev, code, d.Message)
	underline(w, fs, d.Primary, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			npos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "%s:%d:%d: note: %s\n",
				displayPath(fs, n.Span.File, opts.PathMode), npos.Line, npos.Col, n.Msg)
			underline(w, fs, n.Span, opts)
		}
	}
}

// underline prints the source line with a caret marker under the span.
// Column math uses display widths so wide runes and tabs keep the marker
// aligned.
func underline(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	file := fs.Get(span.File)
	if file == nil {
		return
	}
	pos, _ := fs.Resolve(span)
	text := file.Line(pos.Line)
	if text == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", expandTabs(text))

	col := int(pos.Col) - 1
	if col < 0 {
		col = 0
	}
	if col > len(text) {
		col = len(text)
	}
	prefix := displayWidth(text[:col])

	end := col + int(span.Len())
	if end > len(text) {
		end = len(text)
	}
	marked := displayWidth(text[col:end])
	if marked == 0 {
		marked = 1
	}

	marker := "^" + strings.Repeat("~", marked-1)
	if opts.Color {
		marker = color.New(color.FgHiRed, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", prefix), marker)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	file := fs.Get(id)
	if file == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(file.Path); err == nil {
			return abs
		}
		return file.Path
	case PathModeBasename:
		return filepath.Base(file.Path)
	case PathModeRelative:
		return file.RelPath(fs.BaseDir())
	default:
		rel := file.RelPath(fs.BaseDir())
		if strings.HasPrefix(rel, "..") {
			return file.Path
		}
		return rel
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += 4
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}
