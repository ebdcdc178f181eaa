package lexer

import (
	"sable/internal/diag"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. nil drops them; invalid
	// tokens still surface to the parser.
	Reporter diag.Reporter
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}
