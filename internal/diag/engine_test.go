package diag

import (
	"sync"
	"testing"

	"xypher/internal/source"
)

func TestEngineCounters(t *testing.T) {
	e := NewEngine()
	sp := source.Span{File: 0, Start: 0, End: 1}

	e.Note(SemaInfo, sp, "just saying")
	e.Warning(SemaNonBoolCondition, sp, "condition is not bool")
	if e.HasErrors() {
		t.Fatalf("warnings must not set HasErrors")
	}
	e.Error(SemaTypeMismatch, sp, "mismatch")
	e.Fatal(SynTooManyErrors, sp, "too many errors")

	if got := e.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount = %d, want 2", got)
	}
	if got := e.WarningCount(); got != 1 {
		t.Errorf("WarningCount = %d, want 1", got)
	}
	if !e.HasErrors() {
		t.Errorf("HasErrors must be set")
	}

	items := e.Items()
	if len(items) != 4 {
		t.Fatalf("Items len = %d, want 4", len(items))
	}
	wantSev := []Severity{SevNote, SevWarning, SevError, SevFatal}
	for i, d := range items {
		if d.Severity != wantSev[i] {
			t.Errorf("item %d severity = %v, want %v", i, d.Severity, wantSev[i])
		}
	}

	e.Clear()
	if e.HasErrors() || e.ErrorCount() != 0 || e.WarningCount() != 0 || e.Len() != 0 {
		t.Errorf("Clear must reset everything")
	}
}

func TestEngineConcurrentReport(t *testing.T) {
	e := NewEngine()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				e.Error(SemaError, source.Span{Start: uint32(n), End: uint32(j)}, "boom")
			}
		}(i)
	}
	wg.Wait()
	if e.ErrorCount() != 800 || e.Len() != 800 {
		t.Fatalf("lost reports: errors=%d len=%d", e.ErrorCount(), e.Len())
	}
}

func TestBuilderEmitsOnce(t *testing.T) {
	e := NewEngine()
	b := ReportError(e, SemaDuplicateSymbol, source.Span{Start: 4, End: 5}, "duplicate 'x'").
		WithNote(source.Span{Start: 0, End: 1}, "previous declaration here").
		WithSuggestion("rename", source.Span{Start: 4, End: 5}, "y")
	b.Emit()
	b.Emit()

	items := e.Items()
	if len(items) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(items))
	}
	if len(items[0].Notes) != 1 || len(items[0].Suggestions) != 1 {
		t.Errorf("notes/suggestions lost: %+v", items[0])
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexUnknownChar, SevError, sp, "unknown character '$'", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "unknown character '$'", nil, nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 3, End: 4}, "unknown character '$'", nil, nil)
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Errorf("Suppressed = %d, want 1", r.Suppressed())
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(SemaError, source.Span{Start: 9, End: 10}, "late")) {
		t.Fatal("first add refused")
	}
	bag.Add(New(SevWarning, SemaNonBoolCondition, source.Span{Start: 1, End: 2}, "early"))
	if bag.Add(NewError(SemaError, source.Span{}, "overflow")) {
		t.Fatal("limit ignored")
	}
	bag.Sort()
	if bag.Items()[0].Message != "early" {
		t.Errorf("sort by position failed: %+v", bag.Items())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Errorf("HasErrors/HasWarnings wrong")
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:       "LEX1001",
		SynUnexpectedToken:   "SYN2001",
		SemaUnresolvedSymbol: "SEM3003",
		IOLoadFileError:      "IO4001",
		UnknownCode:          "E0000",
	}
	for c, want := range tests {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", c, got, want)
		}
	}
	if SemaTypeMismatch.Title() != "Type mismatch" {
		t.Errorf("unexpected title %q", SemaTypeMismatch.Title())
	}
}
