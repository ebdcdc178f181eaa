package syntax

// Deparenthesize strips parentheses, labels and annotations, which are
// semantically transparent for lowering. Returns nil for nil input or a
// wrapper with a missing operand.
func Deparenthesize(n Node) Node {
	for n != nil {
		switch n.Kind() {
		case KindParen, KindLabeled, KindAnnotated:
			n = n.Operand()
		default:
			return n
		}
	}
	return nil
}

// IsLiteral reports whether the kind is one of the constant literal leaves.
func IsLiteral(k Kind) bool {
	switch k {
	case KindIntLiteral, KindFloatLiteral, KindCharLiteral, KindBoolLiteral, KindNullLiteral:
		return true
	default:
		return false
	}
}

// IsQualified reports plain or safe qualified access.
func IsQualified(k Kind) bool {
	return k == KindQualified || k == KindSafeQualified
}
