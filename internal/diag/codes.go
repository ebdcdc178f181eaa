package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Ranges are reserved per phase:
// 1xxx lexer, 2xxx parser, 3xxx lowering.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumber          Code = 1004
	LexUnterminatedEscape Code = 1005

	// Parser
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004

	// Lowering
	LowSyntax                  Code = 3001
	LowVariableExpected        Code = 3002
	LowExpressionExpected      Code = 3003
	LowIllegalUnderscore       Code = 3004
	LowIllegalConstExpression  Code = 3005
	LowIntLiteralOutOfRange    Code = 3006
	LowWrongLongSuffix         Code = 3007
	LowFloatLiteralOutOfRange  Code = 3008
	LowJumpOutsideLoop         Code = 3009
	LowNotLoopLabel            Code = 3010
	LowReturnNotAllowed        Code = 3011
	LowNotAFunctionLabel       Code = 3012
	LowUnresolvedLabel         Code = 3013

	// Driver
	IOLoadFile Code = 4001
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "UNKNOWN"
	case LexUnknownChar:
		return "LEX_UNKNOWN_CHAR"
	case LexUnterminatedString:
		return "LEX_UNTERMINATED_STRING"
	case LexUnterminatedChar:
		return "LEX_UNTERMINATED_CHAR"
	case LexBadNumber:
		return "LEX_BAD_NUMBER"
	case LexUnterminatedEscape:
		return "LEX_UNTERMINATED_ESCAPE"
	case SynUnexpectedToken:
		return "SYN_UNEXPECTED_TOKEN"
	case SynUnclosedDelimiter:
		return "SYN_UNCLOSED_DELIMITER"
	case SynExpectIdentifier:
		return "SYN_EXPECT_IDENTIFIER"
	case SynExpectExpression:
		return "SYN_EXPECT_EXPRESSION"
	case LowSyntax:
		return "LOW_SYNTAX"
	case LowVariableExpected:
		return "LOW_VARIABLE_EXPECTED"
	case LowExpressionExpected:
		return "LOW_EXPRESSION_EXPECTED"
	case LowIllegalUnderscore:
		return "LOW_ILLEGAL_UNDERSCORE"
	case LowIllegalConstExpression:
		return "LOW_ILLEGAL_CONST_EXPRESSION"
	case LowIntLiteralOutOfRange:
		return "LOW_INT_LITERAL_OUT_OF_RANGE"
	case LowWrongLongSuffix:
		return "LOW_WRONG_LONG_SUFFIX"
	case LowFloatLiteralOutOfRange:
		return "LOW_FLOAT_LITERAL_OUT_OF_RANGE"
	case LowJumpOutsideLoop:
		return "LOW_JUMP_OUTSIDE_LOOP"
	case LowNotLoopLabel:
		return "LOW_NOT_LOOP_LABEL"
	case LowReturnNotAllowed:
		return "LOW_RETURN_NOT_ALLOWED"
	case LowNotAFunctionLabel:
		return "LOW_NOT_A_FUNCTION_LABEL"
	case LowUnresolvedLabel:
		return "LOW_UNRESOLVED_LABEL"
	case IOLoadFile:
		return "IO_LOAD_FILE"
	default:
		return fmt.Sprintf("CODE_%04d", uint16(c))
	}
}
