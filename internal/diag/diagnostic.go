package diag

import (
	"xypher/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Suggestion is an optional hint attached to a diagnostic. Span and NewText
// are empty when the hint is prose only.
type Suggestion struct {
	Title   string
	Span    source.Span
	NewText string
}

type Diagnostic struct {
	Severity    Severity
	Code        Code
	Message     string
	Primary     source.Span
	Notes       []Note
	Suggestions []Suggestion
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy with the note appended; the receiver is untouched.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithSuggestion(s Suggestion) Diagnostic {
	d.Suggestions = append(append([]Suggestion(nil), d.Suggestions...), s)
	return d
}
