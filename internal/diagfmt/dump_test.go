package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/parser"
	"xypher/internal/source"
	"xypher/internal/token"
)

func parseForDump(t *testing.T, input string) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("dump.xyp", []byte(input)))
	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(context.Background(), fs, lexer.New(file, lexer.Options{Reporter: reporter}), builder, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %d", bag.Len())
	}
	return builder, res.File, fs
}

func TestDumpAST(t *testing.T) {
	b, file, fs := parseForDump(t, "import math from xystd;\nfunc main() {\n\tlet x = 1 + 2;\n\tsay(x);\n}\n")

	var buf bytes.Buffer
	if err := DumpAST(&buf, b, file, fs); err != nil {
		t.Fatalf("DumpAST: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"File (span: 1:1-",
		"├─ Decl[0]: Import math from xystd (span: 1:1-",
		"└─ Decl[1]: Func main()",
		"├─ Return: Type void",
		"Stmt[0]: Let x",
		"└─ Init: Binary +",
		"├─ Left: IntLit 1",
		"└─ Right: IntLit 2",
		"└─ Arg[0]: Ident x",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump is missing %q:\n%s", want, out)
		}
	}
}

func TestDumpASTUnknownFile(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	if err := DumpAST(&bytes.Buffer{}, b, ast.FileID(7), nil); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("tok.xyp", []byte("let n = 4;")))
	toks := lexer.Tokenize(lexer.New(file, lexer.Options{}))

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `"n" at 1:5-1:6`) {
		t.Errorf("pretty tokens:\n%s", pretty.String())
	}

	var raw bytes.Buffer
	if err := FormatTokensJSON(&raw, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(raw.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(out), len(toks))
	}
	if out[0].Class != "keyword" || out[1].Class != "ident" || out[3].Class != "literal" {
		t.Errorf("unexpected classes %+v", out[:4])
	}
	if last := out[len(out)-1]; last.Kind != token.EOF.String() || last.Class != "eof" {
		t.Errorf("last token = %+v", last)
	}
}

func TestDiagnosticsJSON(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.xyp", []byte("let x\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: fileID, Start: 5, End: 5}, "expected ';'").
		WithSuggestion(diag.Suggestion{Title: "insert ';'", Span: source.Span{File: fileID, Start: 5, End: 5}, NewText: ";"}))
	bag.Add(diag.New(diag.SevWarning, diag.SemaNonBoolCondition, source.Span{File: fileID, Start: 4, End: 5}, "cond"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeFixes: true, IncludePreviews: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || out.Errors != 1 || out.Warnings != 1 {
		t.Fatalf("counts = %d/%d/%d", out.Count, out.Errors, out.Warnings)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2002" || d.Location.StartLine != 1 || d.Location.StartCol != 6 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].AfterLines) != 1 || d.Fixes[0].AfterLines[0] != "let x;" {
		t.Errorf("unexpected fixes %+v", d.Fixes)
	}
}
