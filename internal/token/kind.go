package token

// Kind enumerates lexical token kinds.
type Kind uint8

const (
	EOF Kind = iota
	Invalid

	Ident
	// LabelDef is `name@`, an identifier immediately followed by '@'.
	// The lexer folds the pair into one token so the parser never needs
	// two-token lookahead to tell a label from a plain reference.
	LabelDef

	IntLit
	FloatLit
	CharLit
	// StringLit is a whole string template, quotes included. Segment
	// structure (text, escapes, $name, ${expr}) is recovered by the
	// parser from the raw text.
	StringLit

	// Keywords
	KwTrue
	KwFalse
	KwNull
	KwVal
	KwVar
	KwFun
	KwClass
	KwRecord
	KwExpect
	KwOperator
	KwWhile
	KwDo
	KwBreak
	KwContinue
	KwReturn
	KwThis

	// Operators and punctuation
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	PlusPlus
	MinusMinus
	Dot
	Question
	QuestionDot
	Comma
	Colon
	Semicolon
	At
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	// Lt and Gt delimit type-parameter and type-argument lists; the
	// surface language has no comparison operators.
	Lt
	Gt
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Invalid:
		return "Invalid"
	case Ident:
		return "Ident"
	case LabelDef:
		return "LabelDef"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case CharLit:
		return "CharLit"
	case StringLit:
		return "StringLit"
	case KwTrue:
		return "true"
	case KwFalse:
		return "false"
	case KwNull:
		return "null"
	case KwVal:
		return "val"
	case KwVar:
		return "var"
	case KwFun:
		return "fun"
	case KwClass:
		return "class"
	case KwRecord:
		return "record"
	case KwExpect:
		return "expect"
	case KwOperator:
		return "operator"
	case KwWhile:
		return "while"
	case KwDo:
		return "do"
	case KwBreak:
		return "break"
	case KwContinue:
		return "continue"
	case KwReturn:
		return "return"
	case KwThis:
		return "this"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case Assign:
		return "="
	case PlusAssign:
		return "+="
	case MinusAssign:
		return "-="
	case StarAssign:
		return "*="
	case SlashAssign:
		return "/="
	case PercentAssign:
		return "%="
	case PlusPlus:
		return "++"
	case MinusMinus:
		return "--"
	case Dot:
		return "."
	case Question:
		return "?"
	case QuestionDot:
		return "?."
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case At:
		return "@"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Lt:
		return "<"
	case Gt:
		return ">"
	default:
		return "Unknown"
	}
}
