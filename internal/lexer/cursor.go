package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"sable/internal/source"
)

// Cursor is a byte position within a file, bounded by an exclusive
// limit. Sub-lexers for interpolated template expressions narrow the
// limit to the segment they own.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

// NewCursor creates a cursor over the whole file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	return Cursor{File: f, Off: 0, Limit: limit}
}

// EOF reports whether the cursor reached its limit.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek reads the current byte, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 reads the current and next byte.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump advances one byte and returns it, or 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// PeekRune decodes the rune at the cursor. size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return 0, 0
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// BumpRune advances past one rune.
func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	off, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	c.Off += off
}

// Mark remembers a position so SpanFrom can cut a fragment span.
type Mark uint32

// Mark saves the current position.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom builds the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
