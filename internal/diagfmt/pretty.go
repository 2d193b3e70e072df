package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"xypher/internal/diag"
	"xypher/internal/source"
)

type palette struct {
	err, warn, note, code, gutter, caret, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		fix:    color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.note, p.code, p.gutter, p.caret, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError, diag.SevFatal:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.note
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Suggestions.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	loc := formatLocation(d.Primary, fs, opts.PathMode, opts.BaseDir)
	sev := pal.severity(d.Severity).Sprint(strings.ToUpper(d.Severity.String()))
	fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sev, pal.code.Sprint(d.Code.ID()), d.Message) //nolint:errcheck

	writeSnippet(w, d.Primary, fs, opts.Context, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), formatLocation(n.Span, fs, opts.PathMode, opts.BaseDir), n.Msg) //nolint:errcheck
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, s := range d.Suggestions {
		fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprintf("fix #%d:", i+1), s.Title) //nolint:errcheck
		if s.Span == (source.Span{}) && s.NewText == "" {
			continue
		}
		fmt.Fprintf(w, "    apply=%q at %s\n", s.NewText, formatLocation(s.Span, fs, opts.PathMode, opts.BaseDir)) //nolint:errcheck
		if !opts.ShowPreview {
			continue
		}
		preview, err := buildFixEditPreview(fs, s.Span, s.NewText)
		if err != nil {
			continue
		}
		fmt.Fprintln(w, "    preview:") //nolint:errcheck
		for _, line := range preview.before {
			fmt.Fprintf(w, "      - %s\n", line) //nolint:errcheck
		}
		for _, line := range preview.after {
			fmt.Fprintf(w, "      + %s\n", line) //nolint:errcheck
		}
	}
}

// writeSnippet prints the primary line with context and underlines the span.
// Multi-line spans are underlined up to the end of their first line.
func writeSnippet(w io.Writer, span source.Span, fs *source.FileSet, context int8, pal palette) {
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, _ := fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	lastLine := uint32(len(f.LineIdx)) + 1
	last = min(last, lastLine)

	gutterWidth := len(fmt.Sprint(last))
	blank := strings.Repeat(" ", gutterWidth)
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text) //nolint:errcheck
		if ln != start.Line {
			continue
		}
		lineStart := lineStartOffset(f, ln)
		prefixEnd := min(span.Start-lineStart, uint32(len(text)))
		prefix := text[:prefixEnd]
		underlineEnd := min(span.End-lineStart, uint32(len(text)))
		marked := ""
		if underlineEnd > prefixEnd {
			marked = text[prefixEnd:underlineEnd]
		}
		width := max(runewidth.StringWidth(marked), 1)
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprint(blank+" |"), padFor(prefix), pal.caret.Sprint(underline)) //nolint:errcheck
	}
}

// padFor returns whitespace of the same display width as s, keeping tabs.
func padFor(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
