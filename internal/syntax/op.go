package syntax

// Op enumerates surface operators relevant to lowering.
type Op uint8

const (
	OpNone Op = iota

	// Unary
	OpInc
	OpDec
	OpNegate

	// Binary
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpRem

	// Assignment family
	OpAssign
	OpPlusAssign
	OpMinusAssign
	OpMulAssign
	OpDivAssign
	OpRemAssign
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return ""
	case OpInc:
		return "++"
	case OpDec:
		return "--"
	case OpNegate:
		return "-"
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpRem:
		return "%"
	case OpAssign:
		return "="
	case OpPlusAssign:
		return "+="
	case OpMinusAssign:
		return "-="
	case OpMulAssign:
		return "*="
	case OpDivAssign:
		return "/="
	case OpRemAssign:
		return "%="
	default:
		return "?"
	}
}

// IsAssignment reports whether the operator is `=` or a compound form.
func (o Op) IsAssignment() bool {
	switch o {
	case OpAssign, OpPlusAssign, OpMinusAssign, OpMulAssign, OpDivAssign, OpRemAssign:
		return true
	default:
		return false
	}
}

// IsCompoundAssignment reports whether the operator is a compound form.
func (o Op) IsCompoundAssignment() bool {
	return o.IsAssignment() && o != OpAssign
}
