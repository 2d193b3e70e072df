package observ

import (
	"strings"
	"testing"
)

func TestTimerReportOrderAndNotes(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	tm.End(lex, "42 tokens")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "lex" || r.Phases[1].Name != "parse" {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if r.Phases[0].Note != "42 tokens" {
		t.Errorf("note = %q", r.Phases[0].Note)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f below a phase", r.TotalMS)
	}
}

func TestTimerMerge(t *testing.T) {
	tm := NewTimer()
	tm.Merge(Report{Phases: []PhaseReport{{Name: "lex", DurationMS: 1}, {Name: "sema", DurationMS: 2}}})
	tm.Merge(Report{Phases: []PhaseReport{{Name: "lex", DurationMS: 3}}})

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if got := r.Phases[0].DurationMS; got < 3.99 || got > 4.01 {
		t.Errorf("lex = %.3f, want 4", got)
	}
	if r.TotalMS < 5.99 || r.TotalMS > 6.01 {
		t.Errorf("total = %.3f, want 6", r.TotalMS)
	}

	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") || !strings.Contains(s, "sema") || !strings.Contains(s, "total") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("report = %+v", r)
	}
}
