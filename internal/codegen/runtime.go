package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"xypher/internal/modules"
	"xypher/internal/types"
)

// str interns s as a private NUL-terminated global and returns an i8*.
func (g *generator) str(s string) constant.Constant {
	if c, ok := g.strs[s]; ok {
		return c
	}
	data := constant.NewCharArrayFromString(s + "\x00")
	glob := g.m.NewGlobalDef(fmt.Sprintf(".str.%d", len(g.strs)), data)
	glob.Immutable = true
	glob.Linkage = enum.LinkagePrivate
	glob.UnnamedAddr = enum.UnnamedAddrUnnamedAddr

	zero := constant.NewInt(lltypes.I64, 0)
	ptr := constant.NewGetElementPtr(data.Typ, glob, zero, zero)
	ptr.InBounds = true
	g.strs[s] = ptr
	return ptr
}

// runtime returns the external declaration of a registry function, adding
// it to the module on first use. Unchecked functions are declared variadic.
func (g *generator) runtime(name string) *ir.Func {
	if fn, ok := g.funcs[name]; ok {
		return fn
	}
	f, ok := g.opts.Registry.Lookup(name)
	if !ok {
		f, ok = traceFuncs[name]
	}
	if !ok {
		panic(fmt.Sprintf("codegen: unknown runtime function %q", name))
	}
	params := make([]*ir.Param, len(f.Params))
	for i, p := range f.Params {
		params[i] = ir.NewParam("", llType(p))
	}
	fn := g.m.NewFunc(name, llType(f.Result), params...)
	fn.Sig.Variadic = !f.Checked
	g.funcs[name] = fn
	return fn
}

// say prints one value without a trailing newline. Narrow integers widen to
// the nearest printer; u32 goes through i64 to keep its sign.
func (g *generator) say(v value.Value, t types.Type) {
	if v == nil {
		return
	}
	name, arg := g.printer("xy_say", v, t)
	if name == "" {
		g.cur.NewCall(g.runtime("xy_say_str"), g.str("<"+t.String()+">"))
		return
	}
	g.cur.NewCall(g.runtime(name), arg)
}

// trace calls xy_trace_<kind>(value, label); the runtime prints the
// "[TRACE] label: type = value" line.
func (g *generator) trace(v value.Value, t types.Type, label string) {
	if v == nil {
		return
	}
	if t.IsChar() {
		v, t = g.cur.NewZExt(v, lltypes.I32), types.I32
	}
	name, arg := g.printer("xy_trace", v, t)
	if name == "" {
		return
	}
	if t.IsBool() {
		arg = g.cur.NewZExt(arg, lltypes.I32)
	}
	g.cur.NewCall(g.runtime(name), arg, g.str(label))
}

func (g *generator) printer(prefix string, v value.Value, t types.Type) (string, value.Value) {
	switch {
	case t.IsBool():
		return prefix + "_bool", v
	case t.IsChar():
		return prefix + "_char", v
	case t.IsString():
		return prefix + "_str", v
	case t.IsFloat() && t.Width == types.Width32:
		return prefix + "_f32", v
	case t.IsFloat():
		return prefix + "_f64", v
	case t == types.I64 || t == types.U64:
		return prefix + "_i64", v
	case t == types.U32:
		return prefix + "_i64", g.convert(v, t, types.I64)
	case t.IsInteger():
		return prefix + "_i32", g.convert(v, t, types.I32)
	}
	return "", nil
}

// traceFuncs are emitted by `trace` only and cannot be called by name.
var traceFuncs = map[string]modules.Function{
	"xy_trace_i32":  traceFunc("xy_trace_i32", types.I32),
	"xy_trace_i64":  traceFunc("xy_trace_i64", types.I64),
	"xy_trace_f32":  traceFunc("xy_trace_f32", types.F32),
	"xy_trace_f64":  traceFunc("xy_trace_f64", types.F64),
	"xy_trace_str":  traceFunc("xy_trace_str", types.Str),
	"xy_trace_bool": traceFunc("xy_trace_bool", types.I32),
}

func traceFunc(name string, arg types.Type) modules.Function {
	return modules.Function{Name: name, Params: []types.Type{arg, types.Str}, Result: types.Void, Checked: true}
}
