// Package ir defines the typed-tree intermediate representation produced
// by lowering. Each node owns its sub-expressions; there is no sharing.
// The IR shape is final for the constructs built here: later phases
// (resolution, type checking) consume it without re-running desugaring.
package ir

// IdentKind separates user identifiers from reserved internal names.
type IdentKind uint8

const (
	// IdentSource is an identifier that appeared in source.
	IdentSource IdentKind = iota
	// IdentTemp is a synthesized temporary. Its text uses the reserved
	// "<tmpN>" shape, which the lexer can never produce, so collision
	// with user identifiers is impossible.
	IdentTemp
)

// Ident is a name in the IR.
type Ident struct {
	Text string
	Kind IdentKind
}

// SourceIdent wraps a user identifier.
func SourceIdent(text string) Ident {
	return Ident{Text: text, Kind: IdentSource}
}

// IsTemp reports whether the identifier is a synthesized temporary.
func (id Ident) IsTemp() bool {
	return id.Kind == IdentTemp
}

func (id Ident) String() string {
	return id.Text
}

// RefKind enumerates callee-reference shapes on access, assignment and
// call nodes.
type RefKind uint8

const (
	// RefNamed points at a variable, property or function by name.
	// Resolution to a declaration happens downstream.
	RefNamed RefKind = iota
	// RefThis is an implicit or labeled dispatch receiver reference.
	RefThis
	// RefError is a reference that could not be formed; the owning
	// expression carries the diagnostic.
	RefError
)

// Ref is the callee reference of access, assignment and call nodes.
type Ref struct {
	Kind  RefKind
	Name  Ident
	Label string
}

// NamedRef builds a RefNamed for a source identifier.
func NamedRef(name string) Ref {
	return Ref{Kind: RefNamed, Name: SourceIdent(name)}
}

// RefOf builds a RefNamed for an existing identifier of either kind.
func RefOf(name Ident) Ref {
	return Ref{Kind: RefNamed, Name: name}
}

// TempRef builds a RefNamed for a temporary identifier.
func TempRef(name Ident) Ref {
	return RefOf(name)
}

// ThisRef builds a RefThis with an optional label.
func ThisRef(label string) Ref {
	return Ref{Kind: RefThis, Label: label}
}

// ErrorRef builds a RefError.
func ErrorRef() Ref {
	return Ref{Kind: RefError}
}
