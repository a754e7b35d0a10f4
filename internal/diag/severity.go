package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevIgnored diagnostics are dropped before any policy is applied.
	SevIgnored Severity = iota
	SevNote
	SevWarning
	SevError
	// SevFatal is an error that is reported even past the error cutoff.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevIgnored:
		return "IGNORED"
	case SevNote:
		return "NOTE"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// Label is the lowercase form used in one-line output.
func (s Severity) Label() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal"
	}
	return "ignored"
}

// IsError reports whether s counts as an error.
func (s Severity) IsError() bool { return s >= SevError }
