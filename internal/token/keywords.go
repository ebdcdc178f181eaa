package token

var keywords = map[string]Kind{
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
	"val":      KwVal,
	"var":      KwVar,
	"fun":      KwFun,
	"class":    KwClass,
	"record":   KwRecord,
	"expect":   KwExpect,
	"operator": KwOperator,
	"while":    KwWhile,
	"do":       KwDo,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"this":     KwThis,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
// Keywords are case sensitive.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}
