// Package testkit holds invariant checks shared by tests across
// packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sable/internal/lower"
	"sable/internal/source"
	"sable/internal/syntax"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// file:
// 1) the file span is within content bounds
// 2) every top-level node span is fully contained in the file span
// 3) the file span covers the union of top-level spans
func CheckSpanInvariants(file syntax.Node, sf *source.File) error {
	if file == nil || sf == nil {
		return fmt.Errorf("nil file node or source file")
	}
	if file.Span().File != sf.ID {
		return fmt.Errorf("file span points at file id %d, want %d", file.Span().File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}
	if file.Span().End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", file.Span().End, lenContent)
	}

	var union source.Span
	haveItem := false
	for _, item := range file.Children() {
		if item == nil {
			continue
		}
		sp := item.Span()
		if sp.File != sf.ID {
			return fmt.Errorf("node span file mismatch: got %d want %d", sp.File, sf.ID)
		}
		if sp.Start < file.Span().Start || sp.End > file.Span().End {
			return fmt.Errorf("node span %v outside file span %v", sp, file.Span())
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Cover(sp)
		}
	}
	if haveItem {
		if union.Start < file.Span().Start || union.End > file.Span().End {
			return fmt.Errorf("file span %v does not cover union %v", file.Span(), union)
		}
	}
	return nil
}

// CheckContextBalanced verifies the net-zero stack discipline: the
// depths after a lowering call must equal the depths before it.
func CheckContextBalanced(before, after lower.Depths) error {
	if before != after {
		return fmt.Errorf("context stacks not balanced: before=%+v after=%+v", before, after)
	}
	return nil
}
