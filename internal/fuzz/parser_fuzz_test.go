package fuzztests

import (
	"context"
	"testing"
	"time"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/parser"
	"xypher/internal/sema"
	"xypher/internal/source"
	"xypher/internal/testkit"
)

// parseTimeout is the maximum time allowed for a single input.
// If the front end takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func frontEnd(ctx context.Context, input []byte) error {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.xyp", input))

	bag := diag.NewBag(128)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(ctx, fs, lx, builder, parser.Options{
		Reporter:  reporter,
		MaxErrors: 128,
	})
	if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
		return err
	}
	if !res.Stopped {
		sema.Check(builder, res.File, sema.Options{Reporter: reporter})
	}
	return nil
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if err := frontEnd(context.Background(), clampSeed(input)); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the front end doesn't hang on any input.
// It uses a timeout to detect infinite loops in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("func test() { let x: i32 = 1\nlet y: i32 = 2; }")) // missing semicolon
	f.Add([]byte("func test() { x + y\nlet z: i32 = 3; }"))           // expression without semicolon
	f.Add([]byte("{ let x = 1 }"))                                    // block without semicolons
	f.Add([]byte("func f() { { { { } } } }"))                         // deeply nested blocks
	f.Add([]byte("func f() { for (let i = 0 i < 10 i = i + 1) {} }")) // for without semicolons
	f.Add([]byte("}}}}"))                                             // stray closers
	f.Add([]byte("say(((((((((1"))                                    // unclosed parens
	f.Add([]byte("func f() { func g() { } }"))                        // nested function

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- frontEnd(ctx, input)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatal(err)
			}
		case <-ctx.Done():
			t.Fatalf("front end hang detected: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
