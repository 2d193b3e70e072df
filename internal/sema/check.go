package sema

import (
	"fmt"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/modules"
	"xypher/internal/source"
	"xypher/internal/symbols"
	"xypher/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	// Registry resolves imports; nil means the standard registry.
	Registry *modules.Registry
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	// ExprTypes holds the inferred type of every visited expression.
	// Ill-typed expressions are recorded as void.
	ExprTypes map[ast.ExprID]types.Type
	// Table keeps every scope of the file; all scopes are closed on return.
	Table  *symbols.Table
	Errors int
	OK     bool
}

// Check resolves names and types of one parsed file. Diagnostics go to
// opts.Reporter; the pass never stops early, an erroneous subtree degrades
// to void and the walk continues.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		ExprTypes: make(map[ast.ExprID]types.Type),
	}
	if builder == nil {
		res.OK = true
		return res
	}
	res.Table = symbols.NewTable(symbols.Hints{}, builder.StringsInterner)
	if opts.Registry == nil {
		opts.Registry = modules.NewRegistry()
	}

	checker := typeChecker{
		builder:  builder,
		fileID:   fileID,
		reporter: opts.Reporter,
		registry: opts.Registry,
		table:    res.Table,
		result:   &res,
		failed:   make(map[ast.ExprID]struct{}),
		hoisted:  make(map[ast.StmtID]struct{}),
	}
	ast.AcceptFile[types.Type](builder, fileID, &checker)

	res.OK = res.Errors == 0
	return res
}

type fnContext struct {
	name   string
	result types.Type
}

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	registry *modules.Registry
	table    *symbols.Table
	result   *Result

	fns       []fnContext
	loopDepth int
	// failed — выражения, чей void вызван уже выданной ошибкой;
	// по ним повторно не рапортуем.
	failed  map[ast.ExprID]struct{}
	hoisted map[ast.StmtID]struct{}
}

var _ ast.Visitor[types.Type] = (*typeChecker)(nil)

func (tc *typeChecker) report(code diag.Code, sp source.Span, format string, args ...any) {
	tc.result.Errors++
	diag.ReportError(tc.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (tc *typeChecker) warn(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportWarning(tc.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// reportWith — ошибка с заметкой, указывающей на связанное место.
func (tc *typeChecker) reportWith(code diag.Code, sp source.Span, noteSpan source.Span, note string, format string, args ...any) {
	tc.result.Errors++
	diag.ReportError(tc.reporter, code, sp, fmt.Sprintf(format, args...)).
		WithNote(noteSpan, note).
		Emit()
}

// expr visits an expression and records its type.
func (tc *typeChecker) expr(id ast.ExprID) types.Type {
	if !id.IsValid() {
		return types.Void
	}
	t := ast.AcceptExpr[types.Type](tc.builder, id, tc)
	tc.result.ExprTypes[id] = t
	return t
}

// fail marks id as erroneous after a diagnostic was issued for it.
func (tc *typeChecker) fail(id ast.ExprID) types.Type {
	tc.failed[id] = struct{}{}
	return types.Void
}

func (tc *typeChecker) hasFailed(ids ...ast.ExprID) bool {
	for _, id := range ids {
		if _, ok := tc.failed[id]; ok {
			return true
		}
	}
	return false
}

func (tc *typeChecker) stmt(id ast.StmtID) {
	ast.AcceptStmt[types.Type](tc.builder, id, tc)
}

func (tc *typeChecker) name(id source.StringID) string {
	return tc.builder.Name(id)
}

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	return tc.builder.ExprSpan(id)
}

func (tc *typeChecker) currentFn() (fnContext, bool) {
	if len(tc.fns) == 0 {
		return fnContext{}, false
	}
	return tc.fns[len(tc.fns)-1], true
}
