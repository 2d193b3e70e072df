package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevNote is for informational diagnostics.
	SevNote Severity = iota
	// SevWarning is for warning diagnostics. Warnings never block later phases.
	SevWarning
	SevError
	// SevFatal is an error after which the producing phase stops.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "note"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	case SevFatal:
		return "fatal error"
	}
	return "unknown"
}

// IsError reports whether the severity counts as an error.
func (s Severity) IsError() bool {
	return s >= SevError
}
