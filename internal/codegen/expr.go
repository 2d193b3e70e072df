package codegen

import (
	"strconv"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"xypher/internal/ast"
	"xypher/internal/types"
)

// parseIntLit decodes an integer lexeme: decimal, 0x, 0o, 0b and '_'
// separators. Leading zeros are decimal, not octal.
func parseIntLit(raw string) (uint64, error) {
	s := strings.ReplaceAll(raw, "_", "")
	if len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9' {
		return strconv.ParseUint(s, 10, 64)
	}
	return strconv.ParseUint(s, 0, 64)
}

func parseFloatLit(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
}

// literal builds the constant for a literal expression in type t. Integer
// literals fold directly into any numeric type.
func (g *generator) literal(id ast.ExprID, t types.Type) (constant.Constant, bool) {
	lit, ok := g.b.Exprs.Literal(id)
	if !ok {
		return nil, false
	}
	switch g.b.Exprs.Get(id).Kind {
	case ast.ExprIntLit:
		v, err := parseIntLit(g.b.Name(lit.Raw))
		if err != nil {
			g.report(g.b.ExprSpan(id), "integer literal %s is out of range", g.b.Name(lit.Raw))
			return nil, false
		}
		if t.IsFloat() {
			return constant.NewFloat(floatType(t), float64(v)), true
		}
		if t.IsInteger() {
			return constant.NewInt(intType(t.Width), int64(v)), true
		}
	case ast.ExprFloatLit:
		v, err := parseFloatLit(g.b.Name(lit.Raw))
		if err != nil {
			g.report(g.b.ExprSpan(id), "invalid float literal %s", g.b.Name(lit.Raw))
			return nil, false
		}
		if t.IsFloat() {
			return constant.NewFloat(floatType(t), v), true
		}
	case ast.ExprStringLit:
		if t.IsString() {
			return g.str(g.b.Name(lit.Value)), true
		}
	case ast.ExprCharLit:
		if t.IsChar() {
			return charConst(g.b.Name(lit.Value)), true
		}
	case ast.ExprBoolLit:
		if t.IsBool() {
			return constant.NewBool(lit.Bool), true
		}
	}
	return nil, false
}

func charConst(text string) constant.Constant {
	var c byte
	if text != "" {
		c = text[0]
	}
	return constant.NewInt(lltypes.I8, int64(int8(c)))
}

func (g *generator) literalOrZero(id ast.ExprID) value.Value {
	if c, ok := g.literal(id, g.typeOf(id)); ok {
		return c
	}
	return g.zero(g.typeOf(id))
}

func (g *generator) VisitIntLit(id ast.ExprID, _ *ast.ExprLiteralData) value.Value {
	return g.literalOrZero(id)
}

func (g *generator) VisitFloatLit(id ast.ExprID, _ *ast.ExprLiteralData) value.Value {
	return g.literalOrZero(id)
}

func (g *generator) VisitStringLit(id ast.ExprID, _ *ast.ExprLiteralData) value.Value {
	return g.literalOrZero(id)
}

func (g *generator) VisitCharLit(id ast.ExprID, _ *ast.ExprLiteralData) value.Value {
	return g.literalOrZero(id)
}

func (g *generator) VisitBoolLit(_ ast.ExprID, lit *ast.ExprLiteralData) value.Value {
	return constant.NewBool(lit.Bool)
}

func (g *generator) VisitIdent(id ast.ExprID, ident *ast.ExprIdentData) value.Value {
	v, ok := g.lookup(ident.Name)
	if !ok {
		g.report(g.b.ExprSpan(id), "no storage for %q", g.b.Name(ident.Name))
		return g.zero(g.typeOf(id))
	}
	return g.load(v)
}

func (g *generator) VisitBinary(id ast.ExprID, bin *ast.ExprBinaryData) value.Value {
	switch {
	case bin.Op.IsAssignment():
		return g.assign(id, bin)
	case bin.Op.IsLogical():
		return g.logical(bin)
	}

	lt, rt := g.typeOf(bin.Left), g.typeOf(bin.Right)
	l := g.expr(bin.Left)
	r := g.expr(bin.Right)
	if l == nil || r == nil {
		return g.zero(g.typeOf(id))
	}
	if bin.Op.IsComparison() {
		return g.compare(bin.Op, l, lt, r, rt)
	}
	result := g.typeOf(id)
	return g.arith(bin.Op, g.convert(l, lt, result), g.convert(r, rt, result), result)
}

// arith emits op on operands already converted to t.
func (g *generator) arith(op ast.BinaryOp, l, r value.Value, t types.Type) value.Value {
	b := g.cur
	if t.IsFloat() {
		switch op {
		case ast.OpAdd:
			return b.NewFAdd(l, r)
		case ast.OpSub:
			return b.NewFSub(l, r)
		case ast.OpMul:
			return b.NewFMul(l, r)
		case ast.OpDiv:
			return b.NewFDiv(l, r)
		case ast.OpMod:
			return b.NewFRem(l, r)
		}
		return l
	}
	signed := t.IsSigned()
	switch op {
	case ast.OpAdd:
		return b.NewAdd(l, r)
	case ast.OpSub:
		return b.NewSub(l, r)
	case ast.OpMul:
		return b.NewMul(l, r)
	case ast.OpDiv:
		if signed {
			return b.NewSDiv(l, r)
		}
		return b.NewUDiv(l, r)
	case ast.OpMod:
		if signed {
			return b.NewSRem(l, r)
		}
		return b.NewURem(l, r)
	case ast.OpBitAnd:
		return b.NewAnd(l, r)
	case ast.OpBitOr:
		return b.NewOr(l, r)
	case ast.OpBitXor:
		return b.NewXor(l, r)
	case ast.OpShl:
		return b.NewShl(l, r)
	case ast.OpShr:
		if signed {
			return b.NewAShr(l, r)
		}
		return b.NewLShr(l, r)
	}
	return l
}

// compare lowers any of the six comparisons. Operands of different kinds
// are widened to a shared representation: i64 for bool, char and integers,
// double once a float is involved. A string never equals a non-string.
func (g *generator) compare(op ast.BinaryOp, l value.Value, lt types.Type, r value.Value, rt types.Type) value.Value {
	idx := int(op - ast.OpEq)
	switch {
	case lt.IsString() && rt.IsString():
		cmp := g.cur.NewCall(g.runtime("xy_strcmp"), l, r)
		return g.cur.NewICmp(intPred(idx, true), cmp, constant.NewInt(lltypes.I32, 0))
	case lt.IsString() || rt.IsString() || lt.IsVoid() || rt.IsVoid():
		return constant.NewBool(op == ast.OpNe)
	case lt.IsNumeric() && rt.IsNumeric():
		common := types.CommonType(lt, rt)
		l, r = g.convert(l, lt, common), g.convert(r, rt, common)
		if common.IsFloat() {
			return g.cur.NewFCmp(floatPreds[idx], l, r)
		}
		return g.cur.NewICmp(intPred(idx, common.IsSigned()), l, r)
	case lt.IsFloat() || rt.IsFloat():
		return g.cur.NewFCmp(floatPreds[idx], g.toDouble(l, lt), g.toDouble(r, rt))
	case lt == rt:
		// bool и char сравниваются как беззнаковые
		return g.cur.NewICmp(intPred(idx, false), l, r)
	}
	return g.cur.NewICmp(intPred(idx, lt.IsSigned() && rt.IsSigned()), g.toI64(l, lt), g.toI64(r, rt))
}

// toI64 widens a bool, char or integer value; only signed integers extend
// their sign.
func (g *generator) toI64(v value.Value, t types.Type) value.Value {
	if t == types.I64 || t == types.U64 {
		return v
	}
	if t.IsInteger() && t.IsSigned() {
		return g.cur.NewSExt(v, lltypes.I64)
	}
	return g.cur.NewZExt(v, lltypes.I64)
}

func (g *generator) toDouble(v value.Value, t types.Type) value.Value {
	switch {
	case t.IsFloat():
		return g.convert(v, t, types.F64)
	case t.IsInteger() && t.IsSigned():
		return g.cur.NewSIToFP(v, lltypes.Double)
	}
	return g.cur.NewUIToFP(v, lltypes.Double)
}

// logical short-circuits && and || through a phi in the merge block.
func (g *generator) logical(bin *ast.ExprBinaryData) value.Value {
	isOr := bin.Op == ast.OpLogicalOr
	lhs := g.truth(g.expr(bin.Left), g.typeOf(bin.Left))
	lhsEnd := g.cur

	rhsBlock := g.newBlock("logic.rhs")
	merge := g.newBlock("logic.end")
	if isOr {
		g.cur.NewCondBr(lhs, merge, rhsBlock)
	} else {
		g.cur.NewCondBr(lhs, rhsBlock, merge)
	}

	g.cur = rhsBlock
	rhs := g.truth(g.expr(bin.Right), g.typeOf(bin.Right))
	rhsEnd := g.cur
	g.cur.NewBr(merge)

	g.cur = merge
	return merge.NewPhi(ir.NewIncoming(constant.NewBool(isOr), lhsEnd), ir.NewIncoming(rhs, rhsEnd))
}

// assign stores into an identifier target. `=` yields the right operand;
// compound forms yield the stored value.
func (g *generator) assign(id ast.ExprID, bin *ast.ExprBinaryData) value.Value {
	ident, ok := g.b.Exprs.Ident(bin.Left)
	if !ok {
		g.report(g.b.ExprSpan(bin.Left), "assignment target must be a variable")
		return g.zero(g.typeOf(id))
	}
	target, ok := g.lookup(ident.Name)
	if !ok {
		g.report(g.b.ExprSpan(bin.Left), "no storage for %q", g.b.Name(ident.Name))
		return g.zero(g.typeOf(id))
	}
	rt := g.typeOf(bin.Right)

	base, compound := bin.Op.Arithmetic()
	if !compound {
		rv := g.expr(bin.Right)
		if rv == nil {
			return g.zero(rt)
		}
		g.cur.NewStore(g.convert(rv, rt, target.typ), target.ptr)
		return rv
	}

	cur := g.load(target)
	rv := g.expr(bin.Right)
	if rv == nil {
		return cur
	}
	common := types.CommonType(target.typ, rt)
	res := g.arith(base, g.convert(cur, target.typ, common), g.convert(rv, rt, common), common)
	stored := g.convert(res, common, target.typ)
	g.cur.NewStore(stored, target.ptr)
	return stored
}

func (g *generator) VisitUnary(id ast.ExprID, un *ast.ExprUnaryData) value.Value {
	t := g.typeOf(un.Operand)
	v := g.expr(un.Operand)
	if v == nil {
		return g.zero(g.typeOf(id))
	}
	switch un.Op {
	case ast.OpNeg:
		if t.IsFloat() {
			return g.cur.NewFNeg(v)
		}
		return g.cur.NewSub(constant.NewInt(intType(t.Width), 0), v)
	case ast.OpNot:
		return g.cur.NewXor(g.truth(v, t), constant.True)
	case ast.OpBitNot:
		return g.cur.NewXor(v, constant.NewInt(intType(t.Width), -1))
	}
	return v
}

func (g *generator) VisitCall(id ast.ExprID, call *ast.ExprCallData) value.Value {
	ident, ok := g.b.Exprs.Ident(call.Callee)
	if !ok {
		g.report(g.b.ExprSpan(call.Callee), "only named functions can be called")
		return g.zero(g.typeOf(id))
	}
	name := g.b.Name(ident.Name)

	var (
		callee *ir.Func
		params []types.Type
	)
	if fn, ok := g.funcs[name]; ok {
		callee, params = fn, g.sigs[name].Params
	} else if f, ok := g.opts.Registry.Lookup(name); ok {
		callee = g.runtime(name)
		if f.Checked {
			params = f.Params
		}
	} else {
		g.report(g.b.ExprSpan(call.Callee), "call to unknown function %q", name)
		return g.zero(g.typeOf(id))
	}

	args := make([]value.Value, 0, len(call.Args))
	for i, a := range call.Args {
		v := g.expr(a)
		if v == nil {
			continue
		}
		if i < len(params) {
			v = g.convert(v, g.typeOf(a), params[i])
		}
		args = append(args, v)
	}
	return g.cur.NewCall(callee, args...)
}

// VisitTypeName is never reached: type references are resolved by name.
func (g *generator) VisitTypeName(ast.TypeID, *ast.TypeName) value.Value {
	return nil
}
