package ir

import (
	"fmt"
	"strconv"
)

// ConstKind enumerates constant value kinds.
type ConstKind uint8

const (
	// ConstInt is a plain integer literal whose width is decided later
	// by context.
	ConstInt ConstKind = iota
	ConstUInt
	ConstLong
	ConstULong
	ConstFloat
	ConstDouble
	ConstChar
	ConstBool
	ConstString
	ConstNull
)

func (k ConstKind) String() string {
	switch k {
	case ConstInt:
		return "Int"
	case ConstUInt:
		return "UInt"
	case ConstLong:
		return "Long"
	case ConstULong:
		return "ULong"
	case ConstFloat:
		return "Float"
	case ConstDouble:
		return "Double"
	case ConstChar:
		return "Char"
	case ConstBool:
		return "Bool"
	case ConstString:
		return "String"
	case ConstNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// ConstValue is a typed constant payload. Only the field matching Kind
// is meaningful; ConstNull has no payload at all.
type ConstValue struct {
	Kind  ConstKind
	Int   int64   // ConstInt, ConstLong, ConstChar (code point)
	UInt  uint64  // ConstUInt, ConstULong
	Float float64 // ConstFloat, ConstDouble
	Str   string  // ConstString
	Bool  bool    // ConstBool
}

func IntValue(kind ConstKind, v int64) ConstValue {
	return ConstValue{Kind: kind, Int: v}
}

func UIntValue(kind ConstKind, v uint64) ConstValue {
	return ConstValue{Kind: kind, UInt: v}
}

func FloatValue(kind ConstKind, v float64) ConstValue {
	return ConstValue{Kind: kind, Float: v}
}

func CharValue(r rune) ConstValue {
	return ConstValue{Kind: ConstChar, Int: int64(r)}
}

func BoolValue(v bool) ConstValue {
	return ConstValue{Kind: ConstBool, Bool: v}
}

func StringValue(s string) ConstValue {
	return ConstValue{Kind: ConstString, Str: s}
}

func NullValue() ConstValue {
	return ConstValue{Kind: ConstNull}
}

func (v ConstValue) String() string {
	switch v.Kind {
	case ConstInt, ConstLong:
		return strconv.FormatInt(v.Int, 10)
	case ConstUInt, ConstULong:
		return strconv.FormatUint(v.UInt, 10)
	case ConstFloat, ConstDouble:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ConstChar:
		return strconv.QuoteRune(rune(v.Int))
	case ConstBool:
		return strconv.FormatBool(v.Bool)
	case ConstString:
		return strconv.Quote(v.Str)
	case ConstNull:
		return "null"
	default:
		return fmt.Sprintf("const?%d", v.Kind)
	}
}
