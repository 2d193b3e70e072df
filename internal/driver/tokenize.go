package driver

import (
	"context"
	"fmt"

	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/source"
	"xypher/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path to EOF. The token list always ends with EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	u, err := openUnit(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	var tokens []token.Token
	u.phase(StageLex, func() string {
		lx := lexer.New(u.file, lexer.Options{Reporter: u.reporter})
		tokens = lexer.Tokenize(lx)
		return fmt.Sprintf("%d tokens", len(tokens))
	})
	u.finish("")

	return &TokenizeResult{
		FileSet: u.fs,
		File:    u.file,
		Tokens:  tokens,
		Bag:     u.bag(),
	}, nil
}
