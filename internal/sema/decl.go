package sema

import (
	"strings"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/modules"
	"xypher/internal/source"
	"xypher/internal/symbols"
	"xypher/internal/types"
)

// VisitFile opens the global scope, seeds it with built-in types and core
// runtime functions, hoists every top-level function and then walks the
// declarations in order.
func (tc *typeChecker) VisitFile(_ ast.FileID, f *ast.File) types.Type {
	tc.table.EnterScope(symbols.ScopeGlobal, ast.NoStmtID, f.Span)
	tc.table.DeclarePrelude()
	tc.declareRuntime(tc.registry.Core(), symbols.SymbolFlagBuiltin)

	for _, id := range f.Decls {
		fn, ok := tc.builder.Stmts.FuncDecl(id)
		if !ok {
			continue
		}
		tc.hoisted[id] = struct{}{}
		tc.declareFunction(fn)
	}

	tc.stmts(f.Decls)
	tc.table.ExitScope()
	return types.Void
}

// declareRuntime declares registry functions in the current scope. Names
// that are already visible in it are left alone.
func (tc *typeChecker) declareRuntime(fns []modules.Function, flags symbols.SymbolFlags) {
	for _, f := range fns {
		tc.table.Declare(symbols.Symbol{
			Name:  tc.table.Strings.Intern(f.Name),
			Kind:  symbols.SymbolFunction,
			Type:  f.Result,
			Flags: flags,
			Signature: &symbols.FunctionSignature{
				Params:  f.Params,
				Result:  f.Result,
				Checked: f.Checked,
			},
		})
	}
}

func (tc *typeChecker) declareFunction(fn *ast.FuncDeclData) {
	sig := symbols.BuildFunctionSignature(tc.builder, fn)
	tc.declare(symbols.Symbol{
		Name:      fn.Name,
		Kind:      symbols.SymbolFunction,
		Type:      sig.Result,
		Span:      fn.NameSpan,
		Signature: sig,
	})
}

// declare adds sym to the current scope, reporting a redeclaration.
func (tc *typeChecker) declare(sym symbols.Symbol) bool {
	prevID, ok := tc.table.Declare(sym)
	if ok {
		return true
	}
	prev := tc.table.Get(prevID)
	if prev.Span == (source.Span{}) {
		tc.report(diag.SemaDuplicateSymbol, sym.Span, "'%s' redeclares a built-in %s", tc.name(sym.Name), prev.Kind)
		return false
	}
	tc.reportWith(diag.SemaDuplicateSymbol, sym.Span, prev.Span, "previous declaration is here",
		"'%s' is already declared in this scope", tc.name(sym.Name))
	return false
}

func (tc *typeChecker) VisitVarDecl(_ ast.StmtID, s *ast.VarDeclData) types.Type {
	name := tc.name(s.Name)
	if !s.Type.IsValid() && !s.Init.IsValid() {
		tc.report(diag.SemaMissingTypeOrInit, s.NameSpan, "variable '%s' needs a type or an initializer", name)
	}
	if s.IsConst && !s.Init.IsValid() {
		tc.report(diag.SemaConstWithoutInit, s.NameSpan, "constant '%s' must be initialized", name)
	}

	var declared types.Type
	typeOK := true
	if s.Type.IsValid() {
		declared, typeOK = tc.resolveType(s.Type)
		if typeOK && declared.IsVoid() {
			tc.report(diag.SemaTypeMismatch, tc.builder.Types.Get(s.Type).Span, "variable '%s' cannot have type void", name)
			typeOK = false
		}
	}
	initT := tc.expr(s.Init)
	initOK := s.Init.IsValid() && !tc.hasFailed(s.Init)

	varType := declared
	switch {
	case s.Type.IsValid():
		if typeOK && initOK && !types.Compatible(declared, initT) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(s.Init),
				"cannot initialize '%s' of type %s with a value of type %s", name, declared, initT)
		}
	case s.Init.IsValid():
		varType = initT
		if initOK && initT.IsVoid() {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(s.Init), "cannot infer the type of '%s' from a void expression", name)
		}
	}

	var flags symbols.SymbolFlags
	if s.IsConst {
		flags |= symbols.SymbolFlagConst
	}
	if s.IsOwned {
		flags |= symbols.SymbolFlagOwned
	}
	tc.declare(symbols.Symbol{
		Name:  s.Name,
		Kind:  symbols.SymbolVariable,
		Type:  varType,
		Span:  s.NameSpan,
		Flags: flags,
	})
	return types.Void
}

func (tc *typeChecker) VisitFuncDecl(id ast.StmtID, fn *ast.FuncDeclData) types.Type {
	name := tc.name(fn.Name)
	if _, ok := tc.hoisted[id]; !ok {
		// тело всё равно проверяем, но имя не объявляем
		tc.report(diag.SemaError, fn.NameSpan, "function '%s' must be declared at the top level", name)
	}

	result, _ := tc.resolveType(fn.Return)
	tc.table.EnterScope(symbols.ScopeFunction, id, tc.builder.StmtSpan(id))
	for _, p := range fn.Params {
		pt, ok := tc.resolveType(p.Type)
		if ok && pt.IsVoid() {
			tc.report(diag.SemaTypeMismatch, p.Span, "parameter '%s' cannot have type void", tc.name(p.Name))
		}
		tc.declare(symbols.Symbol{
			Name: p.Name,
			Kind: symbols.SymbolParam,
			Type: pt,
			Span: p.Span,
		})
	}

	tc.fns = append(tc.fns, fnContext{name: name, result: result})
	savedLoops := tc.loopDepth
	tc.loopDepth = 0
	// параметры и верхний уровень тела живут в одной области
	if body, ok := tc.builder.Stmts.Block(fn.Body); ok {
		tc.stmts(body.Stmts)
	} else {
		tc.stmt(fn.Body)
	}
	tc.loopDepth = savedLoops
	tc.fns = tc.fns[:len(tc.fns)-1]
	tc.table.ExitScope()
	return types.Void
}

func (tc *typeChecker) VisitImport(_ ast.StmtID, s *ast.ImportData) types.Type {
	module, lib := tc.name(s.Module), tc.name(s.Library)
	if !modules.SupportsLibrary(lib) {
		tc.report(diag.SemaUnsupportedLibrary, s.LibrarySpan,
			"unsupported library '%s', only '%s' is available", lib, modules.StdLibrary)
		return types.Void
	}
	if !tc.registry.Has(module) {
		tc.reportWith(diag.SemaUnknownModule, s.ModuleSpan, s.ModuleSpan,
			"available modules: "+strings.Join(tc.registry.Names(), ", "),
			"unknown module '%s' in library '%s'", module, lib)
		return types.Void
	}
	tc.declareRuntime(tc.registry.Functions(module), symbols.SymbolFlagImported)
	return types.Void
}
