package codegen

import (
	"github.com/llir/llvm/ir/value"

	"xypher/internal/ast"
	"xypher/internal/types"
)

func (g *generator) VisitExprStmt(_ ast.StmtID, s *ast.ExprStmtData) value.Value {
	g.expr(s.Expr)
	return nil
}

func (g *generator) VisitVarDecl(id ast.StmtID, s *ast.VarDeclData) value.Value {
	typ := g.typeOf(s.Init)
	if s.Type.IsValid() {
		typ = types.FromName(g.b.TypeName(s.Type))
	}
	if typ.IsVoid() {
		g.report(g.b.StmtSpan(id), "variable %q has no storable type", g.b.Name(s.Name))
		return nil
	}
	if g.fn == nil {
		g.global(s, typ)
		return nil
	}

	// инициализатор вычисляется до объявления: `let x = x + 1` видит внешний x
	var init value.Value
	if s.Init.IsValid() {
		init = g.convert(g.expr(s.Init), g.typeOf(s.Init), typ)
	}
	if init == nil {
		init = g.zero(typ)
	}
	slot := g.local(s.Name, typ)
	g.cur.NewStore(init, slot.ptr)
	return nil
}

func (g *generator) VisitBlock(_ ast.StmtID, s *ast.BlockData) value.Value {
	g.pushScope()
	for _, st := range s.Stmts {
		g.stmt(st)
	}
	g.popScope()
	return nil
}

func (g *generator) VisitReturn(_ ast.StmtID, s *ast.ReturnData) value.Value {
	if !s.Value.IsValid() {
		g.ret(nil)
		return nil
	}
	v := g.expr(s.Value)
	g.ret(g.convert(v, g.typeOf(s.Value), g.result))
	return nil
}

// ret terminates the current block. A void main still returns i32 0.
func (g *generator) ret(v value.Value) {
	switch {
	case g.fn == g.userMain && g.result.IsVoid():
		g.cur.NewRet(g.zero(types.I32))
	case g.result.IsVoid() || v == nil:
		g.cur.NewRet(g.defaultResult())
	default:
		g.cur.NewRet(v)
	}
}

func (g *generator) defaultResult() value.Value {
	if g.fn == g.userMain && g.result.IsVoid() {
		return g.zero(types.I32)
	}
	if g.result.IsVoid() {
		return nil
	}
	return g.zero(g.result)
}

func (g *generator) cond(id ast.ExprID) value.Value {
	return g.truth(g.expr(id), g.typeOf(id))
}

func (g *generator) VisitIf(_ ast.StmtID, s *ast.IfData) value.Value {
	c := g.cond(s.Cond)
	then := g.newBlock("if.then")
	merge := g.newBlock("if.end")
	els := merge
	if s.Else.IsValid() {
		els = g.newBlock("if.else")
	}
	g.cur.NewCondBr(c, then, els)

	g.cur = then
	g.stmt(s.Then)
	if g.cur.Term == nil {
		g.cur.NewBr(merge)
	}
	if s.Else.IsValid() {
		g.cur = els
		g.stmt(s.Else)
		if g.cur.Term == nil {
			g.cur.NewBr(merge)
		}
	}
	g.cur = merge
	return nil
}

// VisitLoop emits cond -> body -> cond. A lowered `for` keeps its step in a
// separate block so that `continue` still runs it.
func (g *generator) VisitLoop(_ ast.StmtID, s *ast.LoopData) value.Value {
	condBlock := g.newBlock("loop.cond")
	body := g.newBlock("loop.body")
	after := g.newBlock("loop.end")
	g.cur.NewBr(condBlock)

	g.cur = condBlock
	c := g.cond(s.Cond)
	g.cur.NewCondBr(c, body, after)

	inner, _ := g.b.Stmts.Block(s.Body)
	g.cur = body
	if s.Form == ast.LoopFor && inner != nil && len(inner.Stmts) == 2 {
		step := g.newBlock("loop.step")
		g.loops = append(g.loops, loopTarget{cont: step, brk: after})
		g.pushScope()
		g.stmt(inner.Stmts[0])
		if g.cur.Term == nil {
			g.cur.NewBr(step)
		}
		g.cur = step
		g.stmt(inner.Stmts[1])
		g.popScope()
	} else {
		g.loops = append(g.loops, loopTarget{cont: condBlock, brk: after})
		g.stmt(s.Body)
	}
	g.loops = g.loops[:len(g.loops)-1]
	if g.cur.Term == nil {
		g.cur.NewBr(condBlock)
	}
	g.cur = after
	return nil
}

func (g *generator) VisitBreak(id ast.StmtID) value.Value {
	if len(g.loops) == 0 {
		g.report(g.b.StmtSpan(id), "'break' outside of a loop")
		return nil
	}
	g.cur.NewBr(g.loops[len(g.loops)-1].brk)
	return nil
}

func (g *generator) VisitContinue(id ast.StmtID) value.Value {
	if len(g.loops) == 0 {
		g.report(g.b.StmtSpan(id), "'continue' outside of a loop")
		return nil
	}
	g.cur.NewBr(g.loops[len(g.loops)-1].cont)
	return nil
}

func (g *generator) VisitSay(_ ast.StmtID, s *ast.SayData) value.Value {
	for i, arg := range s.Args {
		if i > 0 {
			g.cur.NewCall(g.runtime("xy_say_str"), g.str(" "))
		}
		g.say(g.expr(arg), g.typeOf(arg))
	}
	g.cur.NewCall(g.runtime("xy_say_newline"))
	return nil
}

func (g *generator) VisitTrace(_ ast.StmtID, s *ast.TraceData) value.Value {
	g.trace(g.expr(s.Expr), g.typeOf(s.Expr), g.sourceText(s.Expr))
	return nil
}

// sourceText returns the expression as written, or "<expr>" without source.
func (g *generator) sourceText(id ast.ExprID) string {
	sp := g.b.ExprSpan(id)
	if sp.Start >= sp.End || int(sp.End) > len(g.opts.Source) {
		return "<expr>"
	}
	return string(g.opts.Source[sp.Start:sp.End])
}
