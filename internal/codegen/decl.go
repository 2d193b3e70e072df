package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"xypher/internal/ast"
	"xypher/internal/symbols"
	"xypher/internal/types"
)

// VisitFile declares every function first so bodies can call forward, then
// lowers declarations in source order.
func (g *generator) VisitFile(_ ast.FileID, f *ast.File) value.Value {
	for _, decl := range f.Decls {
		if fn, ok := g.b.Stmts.FuncDecl(decl); ok {
			g.declareFunc(fn)
		}
	}
	for _, decl := range f.Decls {
		switch g.b.Stmts.Get(decl).Kind {
		case ast.StmtFuncDecl, ast.StmtVarDecl, ast.StmtImport:
			g.stmt(decl)
		default:
			g.inInit(func() { g.stmt(decl) })
		}
	}
	g.finishInit()
	return nil
}

func (g *generator) declareFunc(fn *ast.FuncDeclData) {
	name := g.b.Name(fn.Name)
	if _, dup := g.funcs[name]; dup {
		return
	}
	sig := symbols.BuildFunctionSignature(g.b, fn)
	params := make([]*ir.Param, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = ir.NewParam(g.b.Name(sig.ParamNames[i]), llType(p))
	}
	ret := llType(sig.Result)
	if name == "main" && sig.Result.IsVoid() {
		ret = lltypes.I32
	}
	irFn := g.m.NewFunc(name, ret, params...)
	if name == "main" {
		g.userMain = irFn
	}
	g.funcs[name] = irFn
	g.sigs[name] = sig
}

func (g *generator) VisitFuncDecl(id ast.StmtID, s *ast.FuncDeclData) value.Value {
	name := g.b.Name(s.Name)
	fn := g.funcs[name]
	if g.fn != nil || fn == nil {
		g.report(g.b.StmtSpan(id), "function %q must be declared at the top level", name)
		return nil
	}
	if len(fn.Blocks) > 0 {
		g.report(g.b.StmtSpan(id), "function %q is defined more than once", name)
		return nil
	}
	sig := g.sigs[name]

	entry := fn.NewBlock("entry")
	restore := g.enterFunc(fn, entry, entry, sig.Result)
	defer restore()

	g.pushScope()
	for i, prm := range fn.Params {
		slot := g.local(sig.ParamNames[i], sig.Params[i])
		entry.NewStore(prm, slot.ptr)
	}
	// параметры и тело живут в одной области видимости
	if body, ok := g.b.Stmts.Block(s.Body); ok {
		for _, st := range body.Stmts {
			g.stmt(st)
		}
	}
	g.popScope()
	g.terminate(fn)
	return nil
}

// terminate closes every open block of fn with the default return.
func (g *generator) terminate(fn *ir.Func) {
	for _, blk := range fn.Blocks {
		if blk.Term == nil {
			g.cur = blk
			g.ret(nil)
		}
	}
}

// VisitImport declares nothing: runtime functions are declared on first call.
func (g *generator) VisitImport(ast.StmtID, *ast.ImportData) value.Value {
	return nil
}

// global lowers a top-level variable. Literal initializers become the
// global's constant; anything else is stored by the init function.
func (g *generator) global(s *ast.VarDeclData, typ types.Type) {
	name := g.b.Name(s.Name)
	var init constant.Constant
	if s.Init.IsValid() {
		init = g.constInit(s.Init, typ)
	}
	dynamic := s.Init.IsValid() && init == nil
	if init == nil {
		init = g.zero(typ)
	}
	glob := g.m.NewGlobalDef(name, init)
	glob.Linkage = enum.LinkageInternal
	glob.Immutable = s.IsConst && !dynamic

	v := &variable{ptr: glob, elem: llType(typ), typ: typ}
	if dynamic {
		g.inInit(func() {
			g.cur.NewStore(g.convert(g.expr(s.Init), g.typeOf(s.Init), typ), glob)
		})
	}
	g.globals[s.Name] = v
}

// constInit folds a literal, or a negated numeric literal, into typ.
func (g *generator) constInit(id ast.ExprID, typ types.Type) constant.Constant {
	if un, ok := g.b.Exprs.Unary(id); ok && un.Op == ast.OpNeg && typ.IsNumeric() {
		c, ok := g.literal(un.Operand, typ)
		if !ok {
			return nil
		}
		if ci, ok := c.(*constant.Int); ok {
			return constant.NewInt(ci.Typ, -ci.X.Int64())
		}
		return constant.NewFNeg(c)
	}
	if !types.Compatible(g.typeOf(id), typ) {
		return nil
	}
	c, ok := g.literal(id, typ)
	if !ok {
		return nil
	}
	return c
}

// finishInit closes the init function and makes main run it first. Without
// a user main, one that only runs init is synthesized.
func (g *generator) finishInit() {
	if g.initFn != nil {
		for _, blk := range g.initFn.Blocks {
			if blk.Term == nil {
				blk.NewRet(nil)
			}
		}
	}
	if g.userMain != nil {
		if g.initFn != nil && len(g.userMain.Blocks) > 0 {
			entry := g.userMain.Blocks[0]
			entry.Insts = append([]ir.Instruction{ir.NewCall(g.initFn)}, entry.Insts...)
		}
		return
	}
	main := g.m.NewFunc("main", lltypes.I32)
	entry := main.NewBlock("entry")
	if g.initFn != nil {
		entry.NewCall(g.initFn)
	}
	entry.NewRet(constant.NewInt(lltypes.I32, 0))
}
