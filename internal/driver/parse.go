package driver

import (
	"context"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	// Stopped is set when the error cap ended the parse early.
	Stopped bool
}

func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	u, err := openUnit(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	builder, res, err := u.parse()
	if err != nil {
		u.finish("error")
		return nil, err
	}
	u.finish("")

	return &ParseResult{
		FileSet: u.fs,
		File:    u.file,
		Builder: builder,
		FileID:  res.File,
		Bag:     u.bag(),
		Stopped: res.Stopped,
	}, nil
}
