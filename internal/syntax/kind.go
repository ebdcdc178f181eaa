// Package syntax defines the capability interface the lowering engine
// reads surface trees through, plus a concrete tree implementation used
// by the parser and by tests. The engine never mutates nodes; any tree
// representation that implements Node can be lowered.
package syntax

// Kind enumerates surface element kinds. The vocabulary is closed: the
// parser guarantees it never produces a kind outside this set, and every
// lowering dispatch switches over it exhaustively.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Leaves
	KindReference
	KindThis
	KindIntLiteral
	KindFloatLiteral
	KindCharLiteral
	KindBoolLiteral
	KindNullLiteral

	// String templates
	KindStringTemplate
	KindTemplateText
	KindTemplateEscape
	KindTemplateEntry

	// Composite expressions
	KindCall
	KindQualified
	KindSafeQualified
	KindArrayAccess
	KindParen
	KindLabeled
	KindAnnotated
	KindPrefix
	KindPostfix
	KindBinary

	// Statements
	KindBreak
	KindContinue
	KindReturn
	KindBlock
	KindWhile
	KindDoWhile
	KindVarDecl

	// Declarations
	KindParam
	KindFunDecl
	KindClassDecl
	KindRecordDecl
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindReference:
		return "Reference"
	case KindThis:
		return "This"
	case KindIntLiteral:
		return "IntLiteral"
	case KindFloatLiteral:
		return "FloatLiteral"
	case KindCharLiteral:
		return "CharLiteral"
	case KindBoolLiteral:
		return "BoolLiteral"
	case KindNullLiteral:
		return "NullLiteral"
	case KindStringTemplate:
		return "StringTemplate"
	case KindTemplateText:
		return "TemplateText"
	case KindTemplateEscape:
		return "TemplateEscape"
	case KindTemplateEntry:
		return "TemplateEntry"
	case KindCall:
		return "Call"
	case KindQualified:
		return "Qualified"
	case KindSafeQualified:
		return "SafeQualified"
	case KindArrayAccess:
		return "ArrayAccess"
	case KindParen:
		return "Paren"
	case KindLabeled:
		return "Labeled"
	case KindAnnotated:
		return "Annotated"
	case KindPrefix:
		return "Prefix"
	case KindPostfix:
		return "Postfix"
	case KindBinary:
		return "Binary"
	case KindBreak:
		return "Break"
	case KindContinue:
		return "Continue"
	case KindReturn:
		return "Return"
	case KindBlock:
		return "Block"
	case KindWhile:
		return "While"
	case KindDoWhile:
		return "DoWhile"
	case KindVarDecl:
		return "VarDecl"
	case KindParam:
		return "Param"
	case KindFunDecl:
		return "FunDecl"
	case KindClassDecl:
		return "ClassDecl"
	case KindRecordDecl:
		return "RecordDecl"
	case KindFile:
		return "File"
	default:
		return "Unknown"
	}
}
