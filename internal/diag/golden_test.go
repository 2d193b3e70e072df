package diag

import (
	"testing"

	"xypher/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("main.xyp", []byte("let x: bool = 5;\nfoo();\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SemaTypeMismatch,
			Message:  "type mismatch in variable declaration",
			Primary:  source.Span{File: file, Start: 14, End: 15},
		},
		{
			Severity: SevWarning,
			Code:     SemaNonBoolCondition,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 17, End: 20},
			Notes:    []Note{{Span: source.Span{File: file, Start: 4, End: 5}, Msg: "declared here"}},
		},
	}

	want := "main.xyp:1:15: error: type mismatch in variable declaration\n" +
		"main.xyp:2:1: warning: first line second\n" +
		"main.xyp:1:5: note: declared here"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	golden := "error SEM3004 main.xyp:1:15 type mismatch in variable declaration\n" +
		"warning SEM3017 main.xyp:2:1 first line second"
	if got := FormatGoldenDiagnostics(diags, fs, false); got != golden {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", golden, got)
	}
}
