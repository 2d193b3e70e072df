package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"xypher/internal/diag"
	"xypher/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.xyp", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.xyp"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.xyp:1:9"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.xyp:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{
				Context:  1,
				PathMode: tt.mode,
				BaseDir:  "/home/user/project",
			})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output, got:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "test.xyp", expected: "test.xyp:1:9"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.xyp", expected: "file.xyp:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			fileID := fs.AddVirtual(tt.path, []byte("let x = 42\n"))

			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()

			if !strings.HasPrefix(output, tt.expected) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("u.xyp", []byte("let x: bool = 5;\n"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaTypeMismatch, source.Span{File: fileID, Start: 7, End: 11}, "mismatch"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, source and underline, got:\n%s", buf.String())
	}
	if lines[1] != "1 | let x: bool = 5;" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "  |        ^~~~" {
		t.Errorf("underline = %q", lines[2])
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("import math xystd\n")
	fileID := fs.AddVirtual("test.xyp", content)

	primary := source.Span{File: fileID, Start: 7, End: 11}
	d := diag.New(diag.SevError, diag.SynExpectFrom, primary, "expected 'from'")
	d = d.WithNote(source.Span{File: fileID, Start: 12, End: 17}, "library name is here")
	d = d.WithSuggestion(diag.Suggestion{
		Title:   "insert 'from'",
		Span:    source.Span{File: fileID, Start: primary.End, End: primary.End},
		NewText: " from",
	})
	d = d.WithSuggestion(diag.Suggestion{Title: "see the import syntax"})

	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:  PathModeBasename,
		ShowNotes: true,
		ShowFixes: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: test.xyp:1:13: library name is here",
		"fix #1: insert 'from'",
		`apply=" from" at test.xyp:1:12`,
		"fix #2: see the import syntax",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "preview:") {
		t.Error("preview must be off unless requested")
	}
}

func TestPrettyFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.xyp", []byte("let a = 42 // missing semicolon"))

	insertSpan := source.Span{File: fileID, Start: 10, End: 10}
	d := diag.New(diag.SevError, diag.SynExpectSemicolon, insertSpan, "missing semicolon")
	d = d.WithSuggestion(diag.Suggestion{Title: "insert semicolon", Span: insertSpan, NewText: ";"})

	bag := diag.NewBag(2)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"preview:",
		"- let a = 42 // missing semicolon",
		"+ let a = 42; // missing semicolon",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestPrettyColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.xyp", []byte("x\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: 0, End: 1}, "undefined"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output must not contain escape sequences")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("colored output must contain escape sequences")
	}
}
