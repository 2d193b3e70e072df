package driver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/llir/llvm/ir"

	"xypher/internal/codegen"
)

type EmitResult struct {
	*CheckResult
	// Module is nil when the front end reported errors.
	Module *ir.Module
}

// Emit checks path and lowers it to LLVM IR. The cache is bypassed: the
// IR needs the AST and the expression types.
func Emit(ctx context.Context, path string, opts Options) (*EmitResult, error) {
	opts.Cache = nil
	u, err := openUnit(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	checked, err := u.check()
	if err != nil {
		u.finish("error")
		return nil, err
	}
	out := &EmitResult{CheckResult: checked}
	if !checked.OK() {
		u.finish("")
		return out, nil
	}

	var res codegen.Result
	u.phase(StageEmit, func() string {
		res = codegen.Generate(checked.Builder, checked.FileID, codegen.Options{
			Reporter:   u.reporter,
			Registry:   u.opts.registry(),
			ExprTypes:  checked.Sema.ExprTypes,
			SourceName: filepath.Base(path),
			Source:     checked.File.Content,
		})
		return fmt.Sprintf("%d functions", len(res.Module.Funcs))
	})
	checked.Bag = u.bag()
	checked.Timing = u.timer.Report()
	if res.Errors == 0 {
		out.Module = res.Module
	}
	u.finish("")
	return out, nil
}
