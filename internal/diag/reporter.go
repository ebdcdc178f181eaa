package diag

import "sable/internal/source"

// Reporter is the minimal sink contract phases report diagnostics to.
// Implementations: BagReporter (collects into a Bag), NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter collects diagnostics into a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}

// ReportError is a shortcut for emitting an error-severity diagnostic.
func ReportError(r Reporter, code Code, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(NewError(code, primary, msg))
}

// ReportWarning is a shortcut for emitting a warning-severity diagnostic.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(New(SevWarning, code, primary, msg))
}
