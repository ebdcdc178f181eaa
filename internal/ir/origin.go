package ir

// Origin tags how a node came to exist. OriginSource maps 1:1 to a
// surface node; every other value marks a node introduced by desugaring
// and names the desugaring that produced it, for diagnostics and dumps.
type Origin uint8

const (
	OriginSource Origin = iota
	OriginIncrement
	OriginDecrement
	OriginCompoundAssign
	OriginSafeAccess
	OriginStringConcat
	OriginGeneratedMember
	OriginErrorPlaceholder
)

func (o Origin) String() string {
	switch o {
	case OriginSource:
		return "source"
	case OriginIncrement:
		return "inc"
	case OriginDecrement:
		return "dec"
	case OriginCompoundAssign:
		return "compound-assign"
	case OriginSafeAccess:
		return "safe-access"
	case OriginStringConcat:
		return "string-concat"
	case OriginGeneratedMember:
		return "generated-member"
	case OriginErrorPlaceholder:
		return "error-placeholder"
	default:
		return "unknown"
	}
}

// Synthetic reports whether the node was introduced by desugaring.
func (o Origin) Synthetic() bool {
	return o != OriginSource
}
