package diag

import (
	"sync"

	"xypher/internal/source"
)

// dedupKey ignores notes and suggestions: two reports at the same span with
// the same code and text are the same diagnostic for the user.
type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter forwards each distinct diagnostic to next once and counts
// the repeats it swallowed. Safe for concurrent use.
type DedupReporter struct {
	next       Reporter
	mu         sync.Mutex
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, suggestions []Suggestion) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, span: primary, msg: msg}
	r.mu.Lock()
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		r.mu.Unlock()
		return
	}
	r.seen[key] = struct{}{}
	r.mu.Unlock()

	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, suggestions)
	}
}

// Suppressed returns how many duplicates were dropped so far.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}
