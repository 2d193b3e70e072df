package driver

import (
	"context"
	"fmt"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/observ"
	"xypher/internal/parser"
	"xypher/internal/sema"
	"xypher/internal/source"
	"xypher/internal/trace"
)

// unit is the state of one file flowing through the phases. Every unit owns
// its FileSet, Engine and symbol table, so units never share mutable state.
type unit struct {
	ctx      context.Context
	opts     Options
	path     string
	fs       *source.FileSet
	file     *source.File
	engine   *diag.Engine
	reporter *diag.DedupReporter
	timer    *observ.Timer
	tracer   trace.Tracer
	span     *trace.Span
}

func openUnit(ctx context.Context, path string, opts Options) (*unit, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, "unit", trace.ParentSpan(ctx)).WithExtra("path", path)
	u := &unit{
		ctx:    ctx,
		opts:   opts,
		path:   path,
		fs:     source.NewFileSet(),
		engine: diag.NewEngine(),
		timer:  observ.NewTimer(),
		tracer: tracer,
		span:   span,
	}
	u.reporter = diag.NewDedupReporter(u.engine)

	var loadErr error
	u.phase(StageLoad, func() string {
		id, err := u.fs.Load(path)
		if err != nil {
			loadErr = err
			return "error"
		}
		u.file = u.fs.Get(id)
		return fmt.Sprintf("%d bytes", len(u.file.Content))
	})
	if loadErr != nil {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
		span.End("error")
		return nil, fmt.Errorf("failed to load %s: %w", path, loadErr)
	}
	return u, nil
}

// phase runs fn as one timed, traced stage. fn returns a short note.
func (u *unit) phase(stage Stage, fn func() string) {
	emit(u.opts.Progress, Event{File: u.path, Stage: stage, Status: StatusWorking})
	sp := trace.Begin(u.tracer, trace.ScopePass, string(stage), u.span.ID())
	idx := u.timer.Begin(string(stage))
	note := fn()
	u.timer.End(idx, note)
	elapsed := sp.End(note)
	if stage != StageLoad {
		emit(u.opts.Progress, Event{File: u.path, Stage: stage, Status: StatusDone, Elapsed: elapsed})
	}
}

func (u *unit) parse() (*ast.Builder, parser.Result, error) {
	popts, err := u.opts.parserOptions()
	if err != nil {
		return nil, parser.Result{}, err
	}
	popts.Reporter = u.reporter

	builder := ast.NewBuilder(ast.Hints{}, nil)
	var res parser.Result
	u.phase(StageParse, func() string {
		lx := lexer.New(u.file, lexer.Options{Reporter: u.reporter})
		res = parser.ParseFile(u.ctx, u.fs, lx, builder, popts)
		if res.Stopped {
			return fmt.Sprintf("stopped after %d errors", res.Errors)
		}
		return fmt.Sprintf("%d errors", res.Errors)
	})
	return builder, res, nil
}

func (u *unit) analyze(builder *ast.Builder, file ast.FileID) *sema.Result {
	var res sema.Result
	u.phase(StageAnalyze, func() string {
		res = sema.Check(builder, file, sema.Options{
			Reporter: u.reporter,
			Registry: u.opts.registry(),
		})
		return fmt.Sprintf("%d errors", res.Errors)
	})
	return &res
}

// bag snapshots the engine into a sorted Bag bounded by MaxDiagnostics.
func (u *unit) bag() *diag.Bag {
	items := u.engine.Items()
	bag := diag.NewBag(u.opts.MaxDiagnostics)
	for _, d := range items {
		if !bag.Add(d) {
			break
		}
	}
	bag.Sort()
	return bag
}

func (u *unit) finish(detail string) {
	u.span.
		WithExtra("errors", fmt.Sprint(u.engine.ErrorCount())).
		WithExtra("warnings", fmt.Sprint(u.engine.WarningCount())).
		WithExtra("duplicates", fmt.Sprint(u.reporter.Suppressed())).
		End(detail)
}
