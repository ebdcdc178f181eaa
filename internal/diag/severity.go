package diag

// Severity classifies how serious a diagnostic is. Soft findings (wrong
// literal suffix, out-of-range constant) report as errors too but leave
// a usable node behind; the severity scale is about reporting, not
// recovery.
type Severity uint8

const (
	// SevInfo is purely informational.
	SevInfo Severity = iota
	// SevWarning flags suspicious but accepted input.
	SevWarning
	// SevError marks input the pipeline could not accept as written.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
