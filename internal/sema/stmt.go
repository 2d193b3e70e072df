package sema

import (
	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/symbols"
	"xypher/internal/types"
)

func (tc *typeChecker) VisitExprStmt(_ ast.StmtID, s *ast.ExprStmtData) types.Type {
	tc.expr(s.Expr)
	return types.Void
}

func (tc *typeChecker) VisitBlock(id ast.StmtID, s *ast.BlockData) types.Type {
	tc.table.EnterScope(symbols.ScopeBlock, id, tc.builder.StmtSpan(id))
	tc.stmts(s.Stmts)
	tc.table.ExitScope()
	return types.Void
}

func (tc *typeChecker) stmts(ids []ast.StmtID) {
	for _, id := range ids {
		tc.stmt(id)
	}
}

func (tc *typeChecker) VisitReturn(id ast.StmtID, s *ast.ReturnData) types.Type {
	sp := tc.builder.StmtSpan(id)
	fn, ok := tc.currentFn()
	if !ok {
		tc.expr(s.Value)
		tc.report(diag.SemaReturnOutsideFunction, sp, "return statement outside of a function")
		return types.Void
	}
	if !s.Value.IsValid() {
		if !fn.result.IsVoid() {
			tc.report(diag.SemaMissingReturnValue, sp, "function '%s' must return a value of type %s", fn.name, fn.result)
		}
		return types.Void
	}
	t := tc.expr(s.Value)
	switch {
	case tc.hasFailed(s.Value):
	case fn.result.IsVoid():
		tc.report(diag.SemaUnexpectedReturnValue, tc.exprSpan(s.Value), "void function '%s' cannot return a value", fn.name)
	case !types.Compatible(fn.result, t):
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(s.Value),
			"return type mismatch in '%s': expected %s, got %s", fn.name, fn.result, t)
	}
	return types.Void
}

// checkCond warns when a condition is not bool; the value is still
// truth-tested at run time.
func (tc *typeChecker) checkCond(cond ast.ExprID, what string) {
	t := tc.expr(cond)
	if tc.hasFailed(cond) || t.IsBool() {
		return
	}
	tc.warn(diag.SemaNonBoolCondition, tc.exprSpan(cond), "%s condition has type %s, expected bool", what, t)
}

func (tc *typeChecker) VisitIf(_ ast.StmtID, s *ast.IfData) types.Type {
	tc.checkCond(s.Cond, "if")
	tc.stmt(s.Then)
	tc.stmt(s.Else)
	return types.Void
}

func (tc *typeChecker) VisitLoop(_ ast.StmtID, s *ast.LoopData) types.Type {
	tc.checkCond(s.Cond, s.Form.String())
	tc.loopDepth++
	tc.stmt(s.Body)
	tc.loopDepth--
	return types.Void
}

func (tc *typeChecker) VisitSay(_ ast.StmtID, s *ast.SayData) types.Type {
	for _, arg := range s.Args {
		t := tc.expr(arg)
		if t.IsVoid() && !tc.hasFailed(arg) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(arg), "cannot print a value of type void")
		}
	}
	return types.Void
}

func (tc *typeChecker) VisitTrace(_ ast.StmtID, s *ast.TraceData) types.Type {
	t := tc.expr(s.Expr)
	if t.IsVoid() && !tc.hasFailed(s.Expr) {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(s.Expr), "cannot trace a value of type void")
	}
	return types.Void
}

func (tc *typeChecker) VisitBreak(id ast.StmtID) types.Type {
	if tc.loopDepth == 0 {
		tc.report(diag.SemaBreakOutsideLoop, tc.builder.StmtSpan(id), "'break' outside of a loop")
	}
	return types.Void
}

func (tc *typeChecker) VisitContinue(id ast.StmtID) types.Type {
	if tc.loopDepth == 0 {
		tc.report(diag.SemaBreakOutsideLoop, tc.builder.StmtSpan(id), "'continue' outside of a loop")
	}
	return types.Void
}
