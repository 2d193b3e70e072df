package fuzztests

import (
	"testing"

	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/source"
	"xypher/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.xyp", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		toks := lexer.Tokenize(lx)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream must end with EOF, got %d tokens", len(toks))
		}
		end := uint32(len(file.Content))
		var prev uint32
		for _, tok := range toks {
			if tok.Span.Start < prev || tok.Span.End < tok.Span.Start || tok.Span.End > end {
				t.Fatalf("bad token span %v after offset %d (input %d bytes)", tok.Span, prev, end)
			}
			prev = tok.Span.End
		}
	})
}
