// Package fqname models dot-separated qualified names and glob patterns
// over them. The lowering pass maintains the current qualified-name path
// as an FqName; tooling uses Pattern to filter dumped declarations.
package fqname

import (
	"strings"
)

// FqName is an immutable dot-separated qualified name. The zero value is
// the root (empty) name.
type FqName struct {
	segments []string
}

// Root is the empty qualified name.
var Root = FqName{}

// Parse splits a dotted string into an FqName. An empty string yields Root.
func Parse(dotted string) FqName {
	if dotted == "" {
		return Root
	}
	return FqName{segments: strings.Split(dotted, ".")}
}

// Child returns the name extended by one segment. The receiver is not
// modified; the segment slice is copied so stack-style reuse is safe.
func (f FqName) Child(segment string) FqName {
	segs := make([]string, 0, len(f.segments)+1)
	segs = append(segs, f.segments...)
	segs = append(segs, segment)
	return FqName{segments: segs}
}

// Parent returns the name with its last segment removed. Parent of Root
// is Root.
func (f FqName) Parent() FqName {
	if len(f.segments) == 0 {
		return Root
	}
	return FqName{segments: f.segments[:len(f.segments)-1]}
}

// IsRoot reports whether the name has no segments.
func (f FqName) IsRoot() bool {
	return len(f.segments) == 0
}

// ShortName returns the last segment, or "" for Root.
func (f FqName) ShortName() string {
	if len(f.segments) == 0 {
		return ""
	}
	return f.segments[len(f.segments)-1]
}

// Depth returns the number of segments.
func (f FqName) Depth() int {
	return len(f.segments)
}

// Segments returns a copy of the segment list.
func (f FqName) Segments() []string {
	out := make([]string, len(f.segments))
	copy(out, f.segments)
	return out
}

func (f FqName) String() string {
	return strings.Join(f.segments, ".")
}
