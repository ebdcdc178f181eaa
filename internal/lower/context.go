// Package lower translates surface syntax trees into IR. It desugars
// increment/decrement, compound and subscript assignment and string
// templates, and synthesizes the members implied by record declarations.
// Malformed input produces local error nodes plus diagnostics; the pass
// never aborts except on an internal contract violation.
package lower

import (
	"fmt"

	"sable/internal/fqname"
	"sable/internal/ir"
	"sable/internal/syntax"
)

// Context is the mutable state threaded through one lowering pass. It is
// scoped to a single compilation unit and a single goroutine; lowering
// separate units concurrently requires one Context each.
//
// Every Push* helper returns the matching pop. Callers defer it
// immediately so stack depths are restored on every exit path, including
// error paths. Depths must be net-zero across any top-level lowering call.
type Context struct {
	path      fqname.FqName
	expect    []bool
	receivers []string
	labels    []labelEntry
	loops     []*ir.LoopTarget
	funcs     []*ir.FuncTarget
	typeVars  [][]string

	forcedOrigin ir.Origin
	originForced bool

	tmpCounter int

	// pendingStores records the lowered RHS of a plain `a[i] = v`
	// assignment, keyed by the array-access node, so the array-access
	// lowering emits a set call without re-lowering the indices.
	pendingStores map[syntax.Node]*ir.Expr
}

type labelEntry struct {
	name string
	loop *ir.LoopTarget // non-nil when the label names a loop
	fn   *ir.FuncTarget // non-nil when the label names a function
}

// NewContext creates a fresh per-unit context.
func NewContext() *Context {
	return &Context{
		pendingStores: make(map[syntax.Node]*ir.Expr),
	}
}

// Path returns the current qualified-name path.
func (c *Context) Path() fqname.FqName {
	return c.path
}

// PushName extends the qualified-name path by one segment.
func (c *Context) PushName(segment string) func() {
	c.path = c.path.Child(segment)
	return func() { c.path = c.path.Parent() }
}

// PushExpect records whether the enclosing declaration is `expect`.
func (c *Context) PushExpect(isExpect bool) func() {
	c.expect = append(c.expect, isExpect)
	return func() { c.expect = c.expect[:len(c.expect)-1] }
}

// InExpect reports whether any enclosing declaration is `expect`.
func (c *Context) InExpect() bool {
	for _, e := range c.expect {
		if e {
			return true
		}
	}
	return false
}

// PushReceiver records the dispatch-receiver type of an enclosing class,
// innermost last. `this@Name` resolves against these entries.
func (c *Context) PushReceiver(typeName string) func() {
	c.receivers = append(c.receivers, typeName)
	return func() { c.receivers = c.receivers[:len(c.receivers)-1] }
}

// HasReceiver reports whether any dispatch receiver is in scope.
func (c *Context) HasReceiver() bool {
	return len(c.receivers) > 0
}

// HasReceiverNamed reports whether typeName is an enclosing class.
func (c *Context) HasReceiverNamed(typeName string) bool {
	for _, r := range c.receivers {
		if r == typeName {
			return true
		}
	}
	return false
}

// PushLabel records a plain expression label with no loop or function
// attached.
func (c *Context) PushLabel(name string) func() {
	return c.pushLabelEntry(labelEntry{name: name})
}

// PushLoop makes target the innermost loop. If label is non-empty the
// loop is also registered under that label.
func (c *Context) PushLoop(target *ir.LoopTarget, label string) func() {
	c.loops = append(c.loops, target)
	popLabel := func() {}
	if label != "" {
		popLabel = c.pushLabelEntry(labelEntry{name: label, loop: target})
	}
	return func() {
		popLabel()
		c.loops = c.loops[:len(c.loops)-1]
	}
}

// PushFunc makes target the innermost function. If label is non-empty
// (the function's name, or an explicit lambda label) return@label
// resolves to it.
func (c *Context) PushFunc(target *ir.FuncTarget, label string) func() {
	c.funcs = append(c.funcs, target)
	popLabel := func() {}
	if label != "" {
		popLabel = c.pushLabelEntry(labelEntry{name: label, fn: target})
	}
	return func() {
		popLabel()
		c.funcs = c.funcs[:len(c.funcs)-1]
	}
}

func (c *Context) pushLabelEntry(e labelEntry) func() {
	c.labels = append(c.labels, e)
	return func() { c.labels = c.labels[:len(c.labels)-1] }
}

// PushTypeParams captures the type parameters of an enclosing declaration.
func (c *Context) PushTypeParams(names []string) func() {
	c.typeVars = append(c.typeVars, names)
	return func() { c.typeVars = c.typeVars[:len(c.typeVars)-1] }
}

// CapturedTypeParams returns all type parameters in scope, outermost first.
func (c *Context) CapturedTypeParams() []string {
	var out []string
	for _, group := range c.typeVars {
		out = append(out, group...)
	}
	return out
}

// InnermostLoop returns the innermost loop target.
func (c *Context) InnermostLoop() (*ir.LoopTarget, bool) {
	if len(c.loops) == 0 {
		return nil, false
	}
	return c.loops[len(c.loops)-1], true
}

// InnermostFunc returns the innermost function target.
func (c *Context) InnermostFunc() (*ir.FuncTarget, bool) {
	if len(c.funcs) == 0 {
		return nil, false
	}
	return c.funcs[len(c.funcs)-1], true
}

// labelLookup classifies a labeled jump resolution.
type labelLookup uint8

const (
	labelFound labelLookup = iota
	labelUnresolved
	labelWrongKind
)

// ResolveLoopLabel finds the innermost loop registered under name.
func (c *Context) ResolveLoopLabel(name string) (*ir.LoopTarget, labelLookup) {
	for i := len(c.labels) - 1; i >= 0; i-- {
		if c.labels[i].name != name {
			continue
		}
		if c.labels[i].loop == nil {
			return nil, labelWrongKind
		}
		return c.labels[i].loop, labelFound
	}
	return nil, labelUnresolved
}

// ResolveFuncLabel finds the innermost function registered under name.
func (c *Context) ResolveFuncLabel(name string) (*ir.FuncTarget, labelLookup) {
	for i := len(c.labels) - 1; i >= 0; i-- {
		if c.labels[i].name != name {
			continue
		}
		if c.labels[i].fn == nil {
			return nil, labelWrongKind
		}
		return c.labels[i].fn, labelFound
	}
	return nil, labelUnresolved
}

// HasLabel reports whether name labels anything in scope.
func (c *Context) HasLabel(name string) bool {
	for i := len(c.labels) - 1; i >= 0; i-- {
		if c.labels[i].name == name {
			return true
		}
	}
	return false
}

// ForceOrigin makes every node built until the returned pop runs carry
// origin o, overriding the origin the builder asked for. Used when a
// whole desugared subtree must be tagged with one desugaring kind.
func (c *Context) ForceOrigin(o ir.Origin) func() {
	prev, prevForced := c.forcedOrigin, c.originForced
	c.forcedOrigin, c.originForced = o, true
	return func() { c.forcedOrigin, c.originForced = prev, prevForced }
}

// Origin resolves the effective origin for a node the engine wants to
// tag with want.
func (c *Context) Origin(want ir.Origin) ir.Origin {
	if c.originForced {
		return c.forcedOrigin
	}
	return want
}

// NewTemp mints a temporary identifier named "<hintN>", e.g.
// "<receiver0>". The angle-bracket shape is outside the user identifier
// namespace: the lexer rejects '<' in identifiers.
func (c *Context) NewTemp(hint string) ir.Ident {
	id := ir.Ident{
		Text: fmt.Sprintf("<%s%d>", hint, c.tmpCounter),
		Kind: ir.IdentTemp,
	}
	c.tmpCounter++
	return id
}

// RecordPendingStore registers the lowered RHS for a plain array-subscript
// assignment, keyed by the array-access node.
func (c *Context) RecordPendingStore(arrayAccess syntax.Node, value *ir.Expr) {
	c.pendingStores[arrayAccess] = value
}

// TakePendingStore removes and returns the pending store for the node.
func (c *Context) TakePendingStore(arrayAccess syntax.Node) (*ir.Expr, bool) {
	v, ok := c.pendingStores[arrayAccess]
	if ok {
		delete(c.pendingStores, arrayAccess)
	}
	return v, ok
}

// Depths is a snapshot of all stack depths, for invariant checks.
type Depths struct {
	Name      int
	Expect    int
	Receivers int
	Labels    int
	Loops     int
	Funcs     int
	TypeVars  int
}

// StackDepths returns the current depth of every context stack.
func (c *Context) StackDepths() Depths {
	return Depths{
		Name:      c.path.Depth(),
		Expect:    len(c.expect),
		Receivers: len(c.receivers),
		Labels:    len(c.labels),
		Loops:     len(c.loops),
		Funcs:     len(c.funcs),
		TypeVars:  len(c.typeVars),
	}
}
