package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	b, res, bag := parseSourceWithOptions(t, context.Background(), input, Options{MaxErrors: 100})
	return b, res.File, bag
}

func parseSourceWithOptions(t *testing.T, ctx context.Context, input string, opts Options) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.xyp", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	opts.Reporter = reporter

	return builder, ParseFile(ctx, fs, lx, builder, opts), bag
}

func decls(t *testing.T, b *ast.Builder, file ast.FileID) []ast.StmtID {
	t.Helper()
	f := b.Files.Get(file)
	if f == nil {
		t.Fatal("file node is missing")
	}
	return f.Decls
}

// firstExpr returns the expression of the single top-level expression statement.
func firstExpr(t *testing.T, input string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, file, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	ds := decls(t, b, file)
	if len(ds) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(ds))
	}
	stmt, ok := b.Stmts.Expr(ds[0])
	if !ok {
		t.Fatalf("expected expression statement, got %v", b.Stmts.Get(ds[0]).Kind)
	}
	return b, stmt.Expr
}

// render prints an expression in fully parenthesized form.
func render(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return b.Name(d.Name)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return "(" + render(b, d.Left) + " " + d.Op.String() + " " + render(b, d.Right) + ")"
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		op := map[ast.UnaryOp]string{ast.OpNot: "!", ast.OpNeg: "-", ast.OpBitNot: "~"}[d.Op]
		return op + render(b, d.Operand)
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = render(b, a)
		}
		return render(b, d.Callee) + "(" + strings.Join(args, ", ") + ")"
	default:
		d, _ := b.Exprs.Literal(id)
		return b.Name(d.Raw)
	}
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"1 * 2 + 3;", "((1 * 2) + 3)"},
		{"a - b - c;", "((a - b) - c)"},
		{"a = b = 1;", "(a = (b = 1))"},
		{"x += y * 2;", "(x += (y * 2))"},
		{"a || b && c;", "(a || (b && c))"},
		{"a == b < c;", "(a == (b < c))"},
		{"a | b ^ c & d;", "(a | (b ^ (c & d)))"},
		{"1 << 2 + 3;", "(1 << (2 + 3))"},
		{"-!x;", "-!x"},
		{"-a * b;", "(-a * b)"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"f(1, g(2)) + 1;", "(f(1, g(2)) + 1)"},
		{"f()();", "f()()"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, expr := firstExpr(t, tt.input)
			if got := render(b, expr); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseFunctionDecl(t *testing.T) {
	b, file, bag := parseSource(t, "func add(a: i32, b: i32) -> i32 { return a + b; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	ds := decls(t, b, file)
	if len(ds) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(ds))
	}
	fn, ok := b.Stmts.FuncDecl(ds[0])
	if !ok {
		t.Fatal("expected function declaration")
	}
	if b.Name(fn.Name) != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected signature: %s/%d", b.Name(fn.Name), len(fn.Params))
	}
	if b.Name(fn.Params[1].Name) != "b" || b.TypeName(fn.Params[1].Type) != "i32" {
		t.Errorf("unexpected second param")
	}
	if b.TypeName(fn.Return) != "i32" {
		t.Errorf("return type = %q", b.TypeName(fn.Return))
	}
	body, ok := b.Stmts.Block(fn.Body)
	if !ok || len(body.Stmts) != 1 {
		t.Fatal("expected body with one statement")
	}
	ret, ok := b.Stmts.Return(body.Stmts[0])
	if !ok {
		t.Fatal("expected return statement")
	}
	if got := render(b, ret.Value); got != "(a + b)" {
		t.Errorf("return value = %s", got)
	}
}

func TestFunctionWithoutArrowReturnsVoid(t *testing.T) {
	b, file, bag := parseSource(t, "func main() { say(\"hi\"); }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	fn, ok := b.Stmts.FuncDecl(decls(t, b, file)[0])
	if !ok {
		t.Fatal("expected function declaration")
	}
	if b.TypeName(fn.Return) != "void" {
		t.Errorf("return type = %q, want void", b.TypeName(fn.Return))
	}
}

func TestParseImportAndVarDecls(t *testing.T) {
	src := `import math from xystd;
let a: i32 = 1;
const b = 2.5;
own c: str;
`
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	ds := decls(t, b, file)
	if len(ds) != 4 {
		t.Fatalf("expected 4 decls, got %d", len(ds))
	}
	imp, ok := b.Stmts.Import(ds[0])
	if !ok || b.Name(imp.Module) != "math" || b.Name(imp.Library) != "xystd" {
		t.Fatal("unexpected import")
	}

	a, _ := b.Stmts.VarDecl(ds[1])
	if b.TypeName(a.Type) != "i32" || !a.Init.IsValid() || a.IsConst {
		t.Error("unexpected let")
	}
	c, _ := b.Stmts.VarDecl(ds[2])
	if !c.IsConst || c.Type.IsValid() {
		t.Error("unexpected const")
	}
	o, _ := b.Stmts.VarDecl(ds[3])
	if !o.IsOwned || o.Init.IsValid() || b.TypeName(o.Type) != "str" {
		t.Error("unexpected own")
	}
}

func TestForLoopDesugarsToBlock(t *testing.T) {
	b, file, bag := parseSource(t, "for (let i = 0; i < 3; i += 1) say(i);")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	outer, ok := b.Stmts.Block(decls(t, b, file)[0])
	if !ok || len(outer.Stmts) != 2 {
		t.Fatal("expected Block{init, loop}")
	}
	if _, ok := b.Stmts.VarDecl(outer.Stmts[0]); !ok {
		t.Error("first statement must be the initializer")
	}
	loop, ok := b.Stmts.Loop(outer.Stmts[1])
	if !ok || loop.Form != ast.LoopFor {
		t.Fatal("second statement must be the lowered loop")
	}
	if got := render(b, loop.Cond); got != "(i < 3)" {
		t.Errorf("cond = %s", got)
	}
	inner, ok := b.Stmts.Block(loop.Body)
	if !ok || len(inner.Stmts) != 2 {
		t.Fatal("loop body must be Block{body, step}")
	}
	if _, ok := b.Stmts.Say(inner.Stmts[0]); !ok {
		t.Error("original body must come first")
	}
	step, ok := b.Stmts.Expr(inner.Stmts[1])
	if !ok || render(b, step.Expr) != "(i += 1)" {
		t.Error("step must follow the body")
	}
}

func TestForWithoutConditionLoopsOnTrue(t *testing.T) {
	b, file, bag := parseSource(t, "for (;;) { break; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	outer, _ := b.Stmts.Block(decls(t, b, file)[0])
	if len(outer.Stmts) != 1 {
		t.Fatalf("expected only the loop, got %d statements", len(outer.Stmts))
	}
	loop, _ := b.Stmts.Loop(outer.Stmts[0])
	lit, ok := b.Exprs.Literal(loop.Cond)
	if !ok || !lit.Bool {
		t.Fatal("missing condition must be the literal true")
	}
}

func TestControlFlowStatements(t *testing.T) {
	src := `func main() {
	if (x > 1) { trace(x); } else say(1, 2);
	loopwhile (x) x = x - 1;
	while (true) { continue; }
	return;
}`
	b, file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	fn, _ := b.Stmts.FuncDecl(decls(t, b, file)[0])
	body, _ := b.Stmts.Block(fn.Body)
	want := []ast.StmtKind{ast.StmtIf, ast.StmtLoop, ast.StmtLoop, ast.StmtReturn}
	if len(body.Stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(body.Stmts))
	}
	for i, k := range want {
		if got := b.Stmts.Get(body.Stmts[i]).Kind; got != k {
			t.Errorf("stmt %d: got %v, want %v", i, got, k)
		}
	}
	ifs, _ := b.Stmts.If(body.Stmts[0])
	if !ifs.Else.IsValid() {
		t.Error("else branch missing")
	}
	lw, _ := b.Stmts.Loop(body.Stmts[1])
	w, _ := b.Stmts.Loop(body.Stmts[2])
	if lw.Form != ast.LoopWhile || w.Form != ast.While {
		t.Error("loop forms not recorded")
	}
	ret, _ := b.Stmts.Return(body.Stmts[3])
	if ret.Value.IsValid() {
		t.Error("bare return must have no value")
	}
}

func TestStringAndCharLiteralsAreDecoded(t *testing.T) {
	b, file, bag := parseSource(t, `say("a\tb\"", 'x', '\n', "é");`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	say, _ := b.Stmts.Say(decls(t, b, file)[0])
	if len(say.Args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(say.Args))
	}
	wants := []string{"a\tb\"", "x", "\n", "é"}
	for i, want := range wants {
		lit, _ := b.Exprs.Literal(say.Args[i])
		if got := b.Name(lit.Value); got != want {
			t.Errorf("arg %d: got %q, want %q", i, got, want)
		}
	}
	raw, _ := b.Exprs.Literal(say.Args[0])
	if b.Name(raw.Raw) != `"a\tb\""` {
		t.Errorf("raw text not preserved: %s", b.Name(raw.Raw))
	}
}

func TestRecoveryContinuesAfterBadStatement(t *testing.T) {
	b, file, bag := parseSource(t, "let x = ;\nlet y = 2;")
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %s", diagnosticsSummary(bag))
	}
	if bag.Items()[0].Code != diag.SynExpectExpression {
		t.Errorf("unexpected code: %s", diagnosticsSummary(bag))
	}
	ds := decls(t, b, file)
	if len(ds) != 1 {
		t.Fatalf("expected the second declaration to survive, got %d decls", len(ds))
	}
	v, _ := b.Stmts.VarDecl(ds[0])
	if b.Name(v.Name) != "y" {
		t.Errorf("got %s", b.Name(v.Name))
	}
}

func TestMissingSemicolonStopsAtNextDeclaration(t *testing.T) {
	b, file, bag := parseSource(t, "let x = 1\nlet y = 2;")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynExpectSemicolon {
		t.Fatalf("expected one missing ';', got %s", diagnosticsSummary(bag))
	}
	d := bag.Items()[0]
	if len(d.Suggestions) != 1 || d.Suggestions[0].NewText != ";" {
		t.Error("missing ';' must carry an insertion suggestion")
	}
	if len(decls(t, b, file)) != 1 {
		t.Error("declaration after the error must still be parsed")
	}
}

func TestMissingTypeFallsBackToVoid(t *testing.T) {
	b, file, bag := parseSource(t, "let x: = 1;")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynExpectType {
		t.Fatalf("expected one type error, got %s", diagnosticsSummary(bag))
	}
	v, ok := b.Stmts.VarDecl(decls(t, b, file)[0])
	if !ok || b.TypeName(v.Type) != "void" || !v.Init.IsValid() {
		t.Fatal("declaration must survive with a void type")
	}
}

func TestUnclosedBlockReportsOpening(t *testing.T) {
	_, _, bag := parseSource(t, "func main() { say(1);")
	var found bool
	for _, d := range bag.Items() {
		if d.Code == diag.SynUnclosedBrace {
			found = len(d.Notes) == 1
		}
	}
	if !found {
		t.Fatalf("expected unclosed brace with a note, got %s", diagnosticsSummary(bag))
	}
}

func TestErrorCapStopsParse(t *testing.T) {
	_, res, bag := parseSourceWithOptions(t, context.Background(), strings.Repeat("$ ", 500), Options{})
	if !res.Stopped {
		t.Fatal("parse must stop at the error cap")
	}
	if res.Errors != DefaultMaxErrors {
		t.Errorf("errors = %d, want %d", res.Errors, DefaultMaxErrors)
	}
	last := bag.Items()[bag.Len()-1]
	if last.Code != diag.SynTooManyErrors || last.Severity != diag.SevFatal {
		t.Errorf("last diagnostic must be the stop notice, got %s", diagnosticsSummary(bag))
	}
	if bag.Len() > DefaultMaxErrors+2 {
		t.Errorf("too many diagnostics after the cap: %d", bag.Len())
	}
}

func TestCancelledContextStopsParse(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b, res, _ := parseSourceWithOptions(t, ctx, "let a = 1; let b = 2;", Options{})
	if !res.Stopped || len(decls(t, b, res.File)) != 0 {
		t.Fatal("cancelled parse must not produce declarations")
	}
}

func TestStrayClosingBraceAtTopLevel(t *testing.T) {
	b, file, bag := parseSource(t, "} let a = 1;")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynUnexpectedToken {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	if len(decls(t, b, file)) != 1 {
		t.Error("parse must continue after a stray '}'")
	}
}

func TestStallGuardForcesProgress(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("stall.xyp", []byte("x y")))
	bag := diag.NewBag(0)
	rep := &diag.BagReporter{Bag: bag}
	p := Parser{lx: lexer.New(file, lexer.Options{}), opts: Options{MaxErrors: 10, Reporter: rep}}

	var g stallGuard
	for i := 0; i < stallLimit; i++ {
		if g.observe(&p) {
			t.Fatalf("guard fired early at observation %d", i+1)
		}
	}
	if !g.observe(&p) {
		t.Fatal("guard must fire after the limit")
	}
	if tok := p.lx.Peek(); tok.Text != "y" {
		t.Errorf("guard must skip one token, now at %q", tok.Text)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynStalled {
		t.Errorf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
}
