package lower

import (
	"sable/internal/syntax"
)

// Operator call names mirror the convention the runtime resolves against:
// `a + b` lowers to `a.plus(b)`, `a += b` (non-array) to `a.plusAssign(b)`
// style assignment-operator statements, and `arr[i] += v` to a plain
// `plus` call wrapped in a `set`.

const (
	getName = "get"
	setName = "set"
	incName = "inc"
	decName = "dec"
)

// simpleOperatorName maps a binary or compound operator to its
// non-assignment call name.
func simpleOperatorName(op syntax.Op) (string, bool) {
	switch op {
	case syntax.OpPlus, syntax.OpPlusAssign:
		return "plus", true
	case syntax.OpMinus, syntax.OpMinusAssign:
		return "minus", true
	case syntax.OpMul, syntax.OpMulAssign:
		return "times", true
	case syntax.OpDiv, syntax.OpDivAssign:
		return "div", true
	case syntax.OpRem, syntax.OpRemAssign:
		return "rem", true
	default:
		return "", false
	}
}

// assignOperatorName maps a compound operator to its assignment-operator
// call name, used for non-array LValues.
func assignOperatorName(op syntax.Op) (string, bool) {
	switch op {
	case syntax.OpPlusAssign:
		return "plusAssign", true
	case syntax.OpMinusAssign:
		return "minusAssign", true
	case syntax.OpMulAssign:
		return "timesAssign", true
	case syntax.OpDivAssign:
		return "divAssign", true
	case syntax.OpRemAssign:
		return "remAssign", true
	default:
		return "", false
	}
}

// unaryOperatorName maps prefix operators other than ++/-- to call names.
func unaryOperatorName(op syntax.Op) (string, bool) {
	switch op {
	case syntax.OpNegate:
		return "unaryMinus", true
	default:
		return "", false
	}
}

// stepOperatorName maps ++/-- to inc/dec.
func stepOperatorName(op syntax.Op) (string, bool) {
	switch op {
	case syntax.OpInc:
		return incName, true
	case syntax.OpDec:
		return decName, true
	default:
		return "", false
	}
}
