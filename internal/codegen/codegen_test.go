package codegen

import (
	"context"
	"strings"
	"testing"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/parser"
	"xypher/internal/sema"
	"xypher/internal/source"
)

func generate(t *testing.T, input string) string {
	t.Helper()

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("gen.xyp", []byte(input)))
	bag := diag.NewBag(0)
	reporter := &diag.BagReporter{Bag: bag}

	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(context.Background(), fs, lexer.New(file, lexer.Options{Reporter: reporter}), builder, parser.Options{Reporter: reporter})
	checked := sema.Check(builder, parsed.File, sema.Options{Reporter: reporter})
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("front end reported %d diagnostics", bag.Len())
	}

	res := Generate(builder, parsed.File, Options{Reporter: reporter, ExprTypes: checked.ExprTypes, SourceName: "gen.xyp", Source: file.Content})
	if res.Errors != 0 || bag.HasErrors() {
		t.Fatalf("codegen reported %d errors", res.Errors)
	}
	return res.Module.String()
}

func expectIR(t *testing.T, ir string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(ir, want) {
			t.Errorf("IR is missing %q:\n%s", want, ir)
		}
	}
}

func TestFunctionsAndCalls(t *testing.T) {
	ir := generate(t, `
func add(a: i32, b: i32) -> i32 {
	return a + b;
}

func main() {
	say(add(1, 2));
}
`)
	expectIR(t, ir,
		"define i32 @add(i32 %a, i32 %b)",
		"add i32",
		"define i32 @main()",
		"call i32 @add(i32 1, i32 2)",
		"call void @xy_say_i32(",
		"call void @xy_say_newline()",
		"ret i32 0",
	)
	if strings.Contains(ir, InitFuncName) {
		t.Error("no init function expected without top-level statements")
	}
}

func TestTopLevelStatementsRunFromSynthesizedMain(t *testing.T) {
	ir := generate(t, "let counter = 5;\nconst limit: i64 = -3;\nsay(counter);\n")
	expectIR(t, ir,
		"@counter = internal global i32 5",
		"@limit = internal constant i64 -3",
		"define void @__xy_init()",
		"define i32 @main()",
		"call void @__xy_init()",
	)
}

func TestDynamicGlobalInitializedInInit(t *testing.T) {
	ir := generate(t, `
func seed() -> i32 { return 7; }
let g = seed();
func main() { say(g); }
`)
	expectIR(t, ir,
		"@g = internal global i32 0",
		"call i32 @seed()",
		"call void @__xy_init()",
	)
}

func TestLoopsAndContinue(t *testing.T) {
	ir := generate(t, `
func main() {
	for (let i = 0; i < 3; i += 1) {
		if (i == 1) {
			continue;
		}
		say(i);
	}
	loopwhile (false) {
		break;
	}
}
`)
	expectIR(t, ir,
		"loop.cond.",
		"loop.step.",
		"loop.end.",
		"icmp slt i32",
		"icmp eq i32",
		"br label %loop.step.",
	)
}

func TestShortCircuit(t *testing.T) {
	ir := generate(t, "func both(a: bool, b: bool) -> bool { return a && b; }")
	expectIR(t, ir,
		"define i1 @both(i1 %a, i1 %b)",
		"logic.rhs.",
		"phi i1 [ false, %entry ]",
	)
}

func TestNumericConversions(t *testing.T) {
	ir := generate(t, `
func scale(x: i32) -> f64 { return x * 2.5; }
func half(a: u32, b: u32) -> u32 { return a / b; }
func widen(x: i8) -> i64 { return x; }
`)
	expectIR(t, ir,
		"sitofp i32",
		"fmul double",
		"udiv i32",
		"sext i8",
	)
}

func TestStringsAndRuntimeImports(t *testing.T) {
	ir := generate(t, `
import math from xystd;
func main() {
	let s: str = "hi";
	if (s == "hi") {
		say(s, xy_sqrt(2.0));
	}
}
`)
	expectIR(t, ir,
		`c"hi\00"`,
		"private unnamed_addr constant",
		"call i32 @xy_strcmp(",
		"declare double @xy_sqrt(double",
		"call void @xy_say_str(",
		"call void @xy_say_f64(",
	)
}

func TestTraceUsesRuntimeHelpers(t *testing.T) {
	ir := generate(t, "func main() { let n = 4; let ok = true; trace(n); trace(ok); }")
	expectIR(t, ir,
		"call void @xy_trace_i32(i32",
		"call void @xy_trace_bool(i32",
		`c"n\00"`,
		`c"ok\00"`,
	)
}

func TestTraceLabelIsSourceText(t *testing.T) {
	ir := generate(t, "func main() { let n = 4; trace(1 + 2); trace(n * (n - 1)); }")
	expectIR(t, ir,
		`c"1 + 2\00"`,
		`c"n * (n - 1)\00"`,
	)
	if strings.Contains(ir, "<expr>") {
		t.Errorf("trace labels must come from the source:\n%s", ir)
	}
}

func TestMixedComparisonsWiden(t *testing.T) {
	ir := generate(t, `func f(a: i32, b: bool) -> bool { return a == b; }
func g(s: str, c: char) -> bool { return s != c; }`)
	expectIR(t, ir,
		"sext i32",
		"zext i1",
		"icmp eq i64",
		"ret i1 true",
	)
}

func TestCodeAfterReturnGoesToDeadBlock(t *testing.T) {
	ir := generate(t, "func f() -> i32 { return 1; say(2); }")
	expectIR(t, ir, "ret i32 1", "dead.")
}

func TestParseIntLit(t *testing.T) {
	tests := []struct {
		raw  string
		want uint64
	}{
		{"42", 42},
		{"1_000", 1000},
		{"0x1F", 31},
		{"0b101", 5},
		{"007", 7},
	}
	for _, tt := range tests {
		got, err := parseIntLit(tt.raw)
		if err != nil || got != tt.want {
			t.Errorf("parseIntLit(%q) = %d, %v; want %d", tt.raw, got, err, tt.want)
		}
	}
}
