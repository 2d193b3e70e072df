package driver

import (
	"context"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/observ"
	"xypher/internal/project"
	"xypher/internal/sema"
	"xypher/internal/source"
	"xypher/internal/trace"
)

// CheckResult is one analysed unit. Builder and Sema are nil when the
// diagnostics were restored from the disk cache.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Sema    *sema.Result
	Bag     *diag.Bag
	// Errors counts every reported error, including those past
	// MaxDiagnostics that Bag dropped.
	Errors int
	Timing observ.Report
	Cached bool
	// Err is set by CheckFiles when the unit could not be loaded.
	Err error
}

// OK reports whether the unit loaded and produced no errors.
func (r *CheckResult) OK() bool {
	return r != nil && r.Err == nil && r.Errors == 0 && (r.Bag == nil || !r.Bag.HasErrors())
}

// Check parses and analyses path. With opts.Cache set, an unchanged file
// checked under the same options is answered from the cache.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	u, err := openUnit(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	res, err := u.check()
	switch {
	case err != nil:
		u.finish("error")
	case res.Cached:
		u.finish("cached")
	default:
		u.finish("")
	}
	return res, err
}

func (u *unit) check() (*CheckResult, error) {
	key := cacheKey(u.file, u.opts)
	if res, ok := u.fromCache(key); ok {
		return res, nil
	}

	builder, parsed, err := u.parse()
	if err != nil {
		return nil, err
	}
	semaRes := u.analyze(builder, parsed.File)

	bag := u.bag()
	if u.opts.Cache != nil {
		if err := u.opts.Cache.Put(key, newDiskPayload(u.file, bag, u.engine.ErrorCount())); err != nil {
			// кэш не критичен: предупреждаем и продолжаем
			diag.ReportWarning(u.reporter, diag.IOCacheError, source.Span{File: u.file.ID}, "failed to write diagnostics cache: "+err.Error()).Emit()
			bag = u.bag()
		}
	}

	return &CheckResult{
		Path:    u.path,
		FileSet: u.fs,
		File:    u.file,
		Builder: builder,
		FileID:  parsed.File,
		Sema:    semaRes,
		Bag:     bag,
		Errors:  u.engine.ErrorCount(),
		Timing:  u.timer.Report(),
	}, nil
}

func (u *unit) fromCache(key project.Digest) (*CheckResult, bool) {
	if u.opts.Cache == nil {
		return nil, false
	}
	var payload DiskPayload
	hit, err := u.opts.Cache.Get(key, &payload)
	if err != nil {
		trace.Point(u.tracer, trace.ScopeUnit, "cache", "unreadable: "+err.Error(), u.span.ID())
		return nil, false
	}
	if !hit || !payload.matches(u.file) {
		trace.Point(u.tracer, trace.ScopeUnit, "cache", "miss", u.span.ID())
		return nil, false
	}
	trace.Point(u.tracer, trace.ScopeUnit, "cache", "hit", u.span.ID())
	emit(u.opts.Progress, Event{File: u.path, Stage: StageAnalyze, Status: StatusCached})

	return &CheckResult{
		Path:    u.path,
		FileSet: u.fs,
		File:    u.file,
		Bag:     payload.restore(u.file.ID, u.opts.MaxDiagnostics),
		Errors:  payload.Errors,
		Timing:  u.timer.Report(),
		Cached:  true,
	}, true
}
