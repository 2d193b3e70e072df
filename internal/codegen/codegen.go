// Package codegen lowers a checked file to LLVM IR. It is the third visitor
// over the AST, after the dumper and the semantic analyzer, and relies on the
// expression types the analyzer recorded.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/modules"
	"xypher/internal/source"
	"xypher/internal/symbols"
	"xypher/internal/types"
)

// InitFuncName runs top-level statements and non-constant global
// initializers. main calls it first; without a user main one is synthesized.
const InitFuncName = "__xy_init"

type Options struct {
	Reporter diag.Reporter
	Registry *modules.Registry
	// ExprTypes comes from sema.Result; every expression must be present.
	ExprTypes map[ast.ExprID]types.Type
	// SourceName is recorded as the module's source_filename.
	SourceName string
	// Source is the file content; trace labels are sliced from it.
	Source []byte
}

type Result struct {
	Module *ir.Module
	Errors int
}

// Generate lowers fileID. Constructs that cannot be lowered are reported and
// skipped; the returned module is still well formed.
func Generate(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	if opts.Registry == nil {
		opts.Registry = modules.NewRegistry()
	}
	m := ir.NewModule()
	m.SourceFilename = opts.SourceName

	g := &generator{
		b:        builder,
		m:        m,
		opts:     opts,
		funcs:    make(map[string]*ir.Func),
		sigs:     make(map[string]*symbols.FunctionSignature),
		strs:     make(map[string]constant.Constant),
		globals:  make(map[source.StringID]*variable),
		reporter: opts.Reporter,
	}
	ast.AcceptFile[value.Value](builder, fileID, g)
	return Result{Module: m, Errors: g.errors}
}

type variable struct {
	ptr  value.Value
	elem lltypes.Type
	typ  types.Type
}

type loopTarget struct {
	cont, brk *ir.Block
}

type generator struct {
	b        *ast.Builder
	m        *ir.Module
	opts     Options
	reporter diag.Reporter
	errors   int

	funcs map[string]*ir.Func
	sigs  map[string]*symbols.FunctionSignature
	strs  map[string]constant.Constant

	// текущая функция
	fn       *ir.Func
	entry    *ir.Block
	cur      *ir.Block
	result   types.Type
	scopes   []map[source.StringID]*variable
	loops    []loopTarget
	blockSeq int

	globals  map[source.StringID]*variable
	initFn   *ir.Func
	initCur  *ir.Block
	userMain *ir.Func
}

var _ ast.Visitor[value.Value] = (*generator)(nil)

func (g *generator) report(sp source.Span, format string, args ...any) {
	g.errors++
	diag.ReportError(g.reporter, diag.IOEmitError, sp, fmt.Sprintf(format, args...)).Emit()
}

func (g *generator) typeOf(id ast.ExprID) types.Type {
	return g.opts.ExprTypes[id]
}

func (g *generator) expr(id ast.ExprID) value.Value {
	if !id.IsValid() {
		return nil
	}
	return ast.AcceptExpr[value.Value](g.b, id, g)
}

// stmt emits one statement. Code following a terminator goes to a fresh
// block without predecessors.
func (g *generator) stmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	if g.cur != nil && g.cur.Term != nil {
		g.cur = g.newBlock("dead")
	}
	ast.AcceptStmt[value.Value](g.b, id, g)
}

func (g *generator) newBlock(name string) *ir.Block {
	g.blockSeq++
	return g.fn.NewBlock(fmt.Sprintf("%s.%d", name, g.blockSeq))
}

func (g *generator) pushScope() {
	g.scopes = append(g.scopes, make(map[source.StringID]*variable))
}

func (g *generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

func (g *generator) lookup(name source.StringID) (*variable, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if v, ok := g.scopes[i][name]; ok {
			return v, true
		}
	}
	v, ok := g.globals[name]
	return v, ok
}

// local allocates a stack slot in the entry block so loops do not grow the stack.
func (g *generator) local(name source.StringID, typ types.Type) *variable {
	elem := llType(typ)
	slot := g.entry.NewAlloca(elem)
	slot.SetName(fmt.Sprintf("%s.addr.%d", g.b.Name(name), len(g.entry.Insts)))
	v := &variable{ptr: slot, elem: elem, typ: typ}
	g.scopes[len(g.scopes)-1][name] = v
	return v
}

func (g *generator) load(v *variable) value.Value {
	return g.cur.NewLoad(v.elem, v.ptr)
}

// enterFunc switches emission into fn. Callers restore the previous state
// with the returned closure.
func (g *generator) enterFunc(fn *ir.Func, entry *ir.Block, cur *ir.Block, result types.Type) func() {
	saved := struct {
		fn           *ir.Func
		entry, cur   *ir.Block
		result       types.Type
		scopes       []map[source.StringID]*variable
		loops        []loopTarget
	}{g.fn, g.entry, g.cur, g.result, g.scopes, g.loops}

	g.fn, g.entry, g.cur, g.result = fn, entry, cur, result
	g.scopes, g.loops = nil, nil
	return func() {
		g.fn, g.entry, g.cur, g.result = saved.fn, saved.entry, saved.cur, saved.result
		g.scopes, g.loops = saved.scopes, saved.loops
	}
}

// inInit runs emit inside the init function, creating it on first use.
func (g *generator) inInit(emit func()) {
	if g.initFn == nil {
		g.initFn = g.m.NewFunc(InitFuncName, lltypes.Void)
		g.initCur = g.initFn.NewBlock("entry")
	}
	restore := g.enterFunc(g.initFn, g.initFn.Blocks[0], g.initCur, types.Void)
	g.pushScope()
	emit()
	g.popScope()
	g.initCur = g.cur
	restore()
}
