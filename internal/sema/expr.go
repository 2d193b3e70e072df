package sema

import (
	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/symbols"
	"xypher/internal/types"
)

func (tc *typeChecker) VisitIntLit(ast.ExprID, *ast.ExprLiteralData) types.Type    { return types.I32 }
func (tc *typeChecker) VisitFloatLit(ast.ExprID, *ast.ExprLiteralData) types.Type  { return types.F64 }
func (tc *typeChecker) VisitStringLit(ast.ExprID, *ast.ExprLiteralData) types.Type { return types.Str }
func (tc *typeChecker) VisitCharLit(ast.ExprID, *ast.ExprLiteralData) types.Type   { return types.Char }
func (tc *typeChecker) VisitBoolLit(ast.ExprID, *ast.ExprLiteralData) types.Type   { return types.Bool }

func (tc *typeChecker) VisitIdent(id ast.ExprID, ident *ast.ExprIdentData) types.Type {
	symID, ok := tc.table.Lookup(ident.Name)
	if !ok {
		tc.report(diag.SemaUnresolvedSymbol, tc.exprSpan(id), "undefined identifier '%s'", tc.name(ident.Name))
		return tc.fail(id)
	}
	sym := tc.table.Get(symID)
	switch sym.Kind {
	case symbols.SymbolType:
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(id), "'%s' is a type, not a value", tc.name(ident.Name))
		return tc.fail(id)
	case symbols.SymbolFunction:
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(id), "function '%s' must be called", tc.name(ident.Name))
		return tc.fail(id)
	}
	if sym.Type.IsVoid() {
		// тип переменной не вывели из-за ошибки в объявлении
		return tc.fail(id)
	}
	return sym.Type
}

func (tc *typeChecker) VisitBinary(id ast.ExprID, bin *ast.ExprBinaryData) types.Type {
	if bin.Op.IsAssignment() {
		return tc.checkAssignment(id, bin)
	}
	l := tc.expr(bin.Left)
	r := tc.expr(bin.Right)
	if tc.hasFailed(bin.Left, bin.Right) {
		return tc.fail(id)
	}
	res := types.BinaryResult(bin.Op, l, r)
	if res.IsVoid() {
		tc.report(diag.SemaInvalidBinaryOperands, tc.exprSpan(id),
			"invalid binary operation '%s' between types %s and %s", bin.Op, l, r)
		return tc.fail(id)
	}
	return res
}

// checkAssignment handles `=` and compound assignments. The target must be
// a mutable variable or parameter.
func (tc *typeChecker) checkAssignment(id ast.ExprID, bin *ast.ExprBinaryData) types.Type {
	targetOK := tc.checkAssignTarget(bin.Left)
	l := tc.expr(bin.Left)
	r := tc.expr(bin.Right)
	if !targetOK || tc.hasFailed(bin.Left, bin.Right) {
		return tc.fail(id)
	}
	res := types.BinaryResult(bin.Op, l, r)
	if !res.IsVoid() {
		return res
	}
	if bin.Op == ast.OpAssign {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(id), "cannot assign a value of type %s to a variable of type %s", r, l)
	} else {
		tc.report(diag.SemaInvalidBinaryOperands, tc.exprSpan(id),
			"invalid binary operation '%s' between types %s and %s", bin.Op, l, r)
	}
	return tc.fail(id)
}

func (tc *typeChecker) checkAssignTarget(target ast.ExprID) bool {
	ident, ok := tc.builder.Exprs.Ident(target)
	if !ok {
		tc.report(diag.SemaInvalidAssignTarget, tc.exprSpan(target), "invalid assignment target: expected a variable name")
		return false
	}
	symID, ok := tc.table.Lookup(ident.Name)
	if !ok {
		// undefined name is reported when the target itself is visited
		return true
	}
	sym := tc.table.Get(symID)
	switch {
	case sym.Kind != symbols.SymbolVariable && sym.Kind != symbols.SymbolParam:
		tc.report(diag.SemaInvalidAssignTarget, tc.exprSpan(target), "cannot assign to %s '%s'", sym.Kind, tc.name(ident.Name))
		return false
	case sym.IsConst():
		tc.reportWith(diag.SemaAssignToConst, tc.exprSpan(target), sym.Span, "declared as const here",
			"cannot assign to constant '%s'", tc.name(ident.Name))
		return false
	}
	return true
}

func (tc *typeChecker) VisitUnary(id ast.ExprID, un *ast.ExprUnaryData) types.Type {
	t := tc.expr(un.Operand)
	if tc.hasFailed(un.Operand) {
		return tc.fail(id)
	}
	res := types.UnaryResult(un.Op, t)
	if res.IsVoid() {
		tc.report(diag.SemaInvalidUnaryOperand, tc.exprSpan(id), "invalid unary operation '%s' on type %s", un.Op, t)
		return tc.fail(id)
	}
	return res
}

// VisitCall resolves the callee by name. Arguments are always visited so
// their own diagnostics surface even when the callee is bad.
func (tc *typeChecker) VisitCall(id ast.ExprID, call *ast.ExprCallData) types.Type {
	argTypes := make([]types.Type, len(call.Args))
	for i, arg := range call.Args {
		argTypes[i] = tc.expr(arg)
	}

	ident, ok := tc.builder.Exprs.Ident(call.Callee)
	if !ok {
		tc.expr(call.Callee)
		tc.report(diag.SemaNotCallable, tc.exprSpan(call.Callee), "callee must be a function name")
		return tc.fail(id)
	}
	name := tc.name(ident.Name)
	symID, ok := tc.table.Lookup(ident.Name)
	if !ok {
		tc.report(diag.SemaUnresolvedSymbol, tc.exprSpan(call.Callee), "undefined function '%s'", name)
		return tc.fail(id)
	}
	sym := tc.table.Get(symID)
	if sym.Kind != symbols.SymbolFunction {
		tc.reportWith(diag.SemaNotCallable, tc.exprSpan(call.Callee), sym.Span, "declared here",
			"'%s' is a %s, not a function", name, sym.Kind)
		return tc.fail(id)
	}
	tc.result.ExprTypes[call.Callee] = sym.Type

	sig := sym.Signature
	if sig == nil || !sig.Checked {
		return sym.Type
	}
	if len(call.Args) != len(sig.Params) {
		tc.report(diag.SemaArgCountMismatch, tc.exprSpan(id),
			"function '%s' expects %d argument(s), got %d", name, len(sig.Params), len(call.Args))
		return sym.Type
	}
	for i, arg := range call.Args {
		if tc.hasFailed(arg) || types.Compatible(sig.Params[i], argTypes[i]) {
			continue
		}
		tc.report(diag.SemaArgTypeMismatch, tc.exprSpan(arg),
			"argument %d of '%s': expected %s, got %s", i+1, name, sig.Params[i], argTypes[i])
	}
	return sym.Type
}

func (tc *typeChecker) VisitTypeName(id ast.TypeID, t *ast.TypeName) types.Type {
	typ, _ := tc.resolveType(id)
	return typ
}

// resolveType maps a written type to its descriptor. Unknown names are
// reported once and yield (void, false) so callers skip dependent checks.
func (tc *typeChecker) resolveType(id ast.TypeID) (types.Type, bool) {
	tn := tc.builder.Types.Get(id)
	if tn == nil {
		return types.Void, true
	}
	name := tc.name(tn.Name)
	if typ := types.FromName(name); !typ.IsNamed() {
		return typ, true
	}
	if symID, ok := tc.table.Lookup(tn.Name); ok {
		if sym := tc.table.Get(symID); sym.Kind == symbols.SymbolType {
			return sym.Type, true
		}
	}
	tc.report(diag.SemaUnknownType, tn.Span, "unknown type '%s'", name)
	return types.Void, false
}
