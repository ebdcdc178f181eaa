package lower

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"sable/internal/diag"
	"sable/internal/ir"
	"sable/internal/source"
	"sable/internal/syntax"
)

// ParseLiteral converts raw literal text of the given kind into a typed
// constant value. Soft conditions (overflow, wrong long suffix) return
// both a value and a diagnostic and ok=true: the constant is well formed
// and compilation continues. Hard conditions return ok=false and only
// the diagnostic; the caller substitutes an error node.
//
// An unknown kind is a parser/lowering contract violation and panics.
func ParseLiteral(kind syntax.Kind, text string, span source.Span) (v ir.ConstValue, d *diag.Diagnostic, ok bool) {
	switch kind {
	case syntax.KindIntLiteral:
		return parseIntLiteral(text, span)
	case syntax.KindFloatLiteral:
		return parseFloatLiteral(text, span)
	case syntax.KindCharLiteral:
		return parseCharLiteral(text, span)
	case syntax.KindBoolLiteral:
		return ir.BoolValue(text == "true"), nil, true
	case syntax.KindNullLiteral:
		return ir.NullValue(), nil, true
	default:
		panic(fmt.Sprintf("lower: literal of kind %v", kind))
	}
}

// parseIntLiteral classifies by suffix with fixed precedence:
// underscore-check, then uL, then L, then u, then plain. At most one
// diagnostic is produced; WrongLongSuffix wins over out-of-range.
func parseIntLiteral(text string, span source.Span) (ir.ConstValue, *diag.Diagnostic, bool) {
	digits, hasUnsigned, hasLong, wrongLong := splitIntSuffix(text)

	base, magnitudeText := splitIntBase(digits)
	if illegalUnderscore(magnitudeText) {
		d := diag.NewError(diag.LowIllegalUnderscore, span,
			fmt.Sprintf("illegal underscore placement in %q", text))
		return ir.ConstValue{}, &d, false
	}

	magnitude, rangeErr, wellFormed := parseMagnitude(magnitudeText, base)
	if !wellFormed {
		d := diag.NewError(diag.LowSyntax, span,
			fmt.Sprintf("malformed integer literal %q", text))
		return ir.ConstValue{}, &d, false
	}

	var value ir.ConstValue
	outOfRange := rangeErr
	switch {
	case hasUnsigned && hasLong:
		value = ir.UIntValue(ir.ConstULong, magnitude)
	case hasLong:
		if magnitude > math.MaxInt64 {
			outOfRange = true
		}
		value = ir.IntValue(ir.ConstLong, int64(magnitude)) //nolint:gosec // wrap is intended for out-of-range constants
	case hasUnsigned:
		if magnitude > math.MaxUint32 {
			outOfRange = true
		}
		value = ir.UIntValue(ir.ConstUInt, magnitude)
	default:
		if magnitude > math.MaxInt64 {
			outOfRange = true
		}
		value = ir.IntValue(ir.ConstInt, int64(magnitude)) //nolint:gosec // wrap is intended for out-of-range constants
	}

	if wrongLong {
		d := diag.NewError(diag.LowWrongLongSuffix, span,
			"use 'L' instead of 'l' for long literals")
		return value, &d, true
	}
	if outOfRange {
		d := diag.NewError(diag.LowIntLiteralOutOfRange, span,
			fmt.Sprintf("integer literal %q out of range", text))
		return value, &d, true
	}
	return value, nil, true
}

// splitIntSuffix strips the [uU][lL] suffix. wrongLong is set when the
// long marker is lowercase; the long flag is still consumed.
func splitIntSuffix(text string) (digits string, hasUnsigned, hasLong, wrongLong bool) {
	digits = text
	if n := len(digits); n > 0 {
		switch digits[n-1] {
		case 'L':
			hasLong = true
			digits = digits[:n-1]
		case 'l':
			hasLong = true
			wrongLong = true
			digits = digits[:n-1]
		}
	}
	if n := len(digits); n > 0 && (digits[n-1] == 'u' || digits[n-1] == 'U') {
		hasUnsigned = true
		digits = digits[:n-1]
	}
	return digits, hasUnsigned, hasLong, wrongLong
}

func splitIntBase(digits string) (base int, magnitude string) {
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		return 16, digits[2:]
	case strings.HasPrefix(digits, "0b"), strings.HasPrefix(digits, "0B"):
		return 2, digits[2:]
	default:
		return 10, digits
	}
}

// illegalUnderscore reports underscores at the edges of the digit run,
// including right after a base prefix. Underscores between digits are
// fine, consecutive ones included.
func illegalUnderscore(magnitude string) bool {
	if magnitude == "" {
		return false
	}
	return magnitude[0] == '_' || magnitude[len(magnitude)-1] == '_'
}

// parseMagnitude parses the digit run with underscores removed.
// rangeErr is set when the value exceeds 64 bits; the returned magnitude
// is then saturated. ok is false for an empty run or stray suffix
// letters the token kept (the lexer consumes `0x` and runs of u/l
// without judging them).
func parseMagnitude(magnitude string, base int) (v uint64, rangeErr, ok bool) {
	cleaned := strings.ReplaceAll(magnitude, "_", "")
	v, err := strconv.ParseUint(cleaned, base, 64)
	if err != nil {
		if errIsRange(err) {
			return math.MaxUint64, true, true
		}
		return 0, false, false
	}
	return v, false, true
}

func parseFloatLiteral(text string, span source.Span) (ir.ConstValue, *diag.Diagnostic, bool) {
	cleaned := strings.ReplaceAll(text, "_", "")
	kind := ir.ConstDouble
	bits := 64
	if n := len(cleaned); n > 0 && (cleaned[n-1] == 'f' || cleaned[n-1] == 'F') {
		kind = ir.ConstFloat
		bits = 32
		cleaned = cleaned[:n-1]
	}

	v, err := strconv.ParseFloat(cleaned, bits)
	if err != nil && !errIsRange(err) {
		d := diag.NewError(diag.LowSyntax, span,
			fmt.Sprintf("malformed floating-point literal %q", text))
		return ir.ConstValue{}, &d, false
	}
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		// Out-of-range floats keep a structurally valid constant node
		// with a null payload.
		d := diag.NewError(diag.LowFloatLiteralOutOfRange, span,
			fmt.Sprintf("floating-point literal %q out of range", text))
		return ir.NullValue(), &d, true
	}
	return ir.FloatValue(kind, v), nil, true
}

func parseCharLiteral(text string, span source.Span) (ir.ConstValue, *diag.Diagnostic, bool) {
	content := text
	if len(content) >= 2 && content[0] == '\'' && content[len(content)-1] == '\'' {
		content = content[1 : len(content)-1]
	}
	r, ok := syntax.DecodeCharContent(content)
	if !ok {
		d := diag.NewError(diag.LowIllegalConstExpression, span,
			fmt.Sprintf("invalid character literal %q", text))
		return ir.ConstValue{}, &d, false
	}
	return ir.CharValue(r), nil, true
}

func errIsRange(err error) bool {
	var ne *strconv.NumError
	if ok := asNumError(err, &ne); !ok {
		return false
	}
	return ne.Err == strconv.ErrRange
}

func asNumError(err error, target **strconv.NumError) bool {
	ne, ok := err.(*strconv.NumError) //nolint:errorlint // ParseUint/ParseFloat return it directly
	if !ok {
		return false
	}
	*target = ne
	return true
}
