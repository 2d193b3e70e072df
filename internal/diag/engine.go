package diag

import (
	"sync"

	"xypher/internal/source"
)

// Engine is the diagnostics sink of one compilation unit. It keeps the
// ordered record list together with running error and warning counts.
// Once an error is seen HasErrors stays true until Clear.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu        sync.Mutex
	items     []Diagnostic
	errors    int
	warnings  int
	hasErrors bool
}

func NewEngine() *Engine {
	return &Engine{}
}

// Report implements Reporter.
func (e *Engine) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, suggestions []Suggestion) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = append(e.items, Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     msg,
		Primary:     primary,
		Notes:       notes,
		Suggestions: suggestions,
	})
	switch {
	case sev.IsError():
		e.errors++
		e.hasErrors = true
	case sev == SevWarning:
		e.warnings++
	}
}

func (e *Engine) Note(code Code, sp source.Span, msg string) {
	e.Report(code, SevNote, sp, msg, nil, nil)
}

func (e *Engine) Warning(code Code, sp source.Span, msg string) {
	e.Report(code, SevWarning, sp, msg, nil, nil)
}

func (e *Engine) Error(code Code, sp source.Span, msg string) {
	e.Report(code, SevError, sp, msg, nil, nil)
}

func (e *Engine) Fatal(code Code, sp source.Span, msg string) {
	e.Report(code, SevFatal, sp, msg, nil, nil)
}

// Items returns a copy of the recorded diagnostics in report order.
func (e *Engine) Items() []Diagnostic {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Diagnostic, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

func (e *Engine) ErrorCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errors
}

func (e *Engine) WarningCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warnings
}

func (e *Engine) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasErrors
}

// Clear drops every record and resets both counters and the sticky flag.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = nil
	e.errors = 0
	e.warnings = 0
	e.hasErrors = false
}

// Bag copies the records into a Bag for sorting and rendering.
func (e *Engine) Bag() *Bag {
	items := e.Items()
	b := NewBag(0)
	b.items = append(b.items, items...)
	return b
}
