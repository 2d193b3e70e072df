package diag

import (
	"fmt"
	"sort"
	"strings"

	"xypher/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics in report order, one
// `file:line:column: level: message` record per line. Notes follow their
// diagnostic when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	rendered := collect(diags, fs, includeNotes)
	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s:%d:%d: %s: %s", d.Path, d.Line, d.Column, d.Severity, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatGoldenDiagnostics renders diagnostics into a stable representation
// suitable for golden comparisons: sorted by position, with the code ID.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	rendered := collect(diags, fs, includeNotes)
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func collect(diags []Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	if fs == nil || len(diags) == 0 {
		return nil
	}
	out := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		pos := fs.Position(d.Primary)
		out = append(out, goldenDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     pos.Path,
			Line:     pos.Line,
			Column:   pos.Col,
			Message:  sanitizeMessage(d.Message),
		})
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			npos := fs.Position(note.Span)
			out = append(out, goldenDiagnostic{
				Severity: SevNote.String(),
				Code:     d.Code.ID(),
				Path:     npos.Path,
				Line:     npos.Line,
				Column:   npos.Col,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
