package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"xypher/internal/types"
)

// llType maps a language type to its IR representation. Signedness lives in
// the instructions, so iN and uN share a type.
func llType(t types.Type) lltypes.Type {
	switch t.Kind {
	case types.KindVoid:
		return lltypes.Void
	case types.KindBool:
		return lltypes.I1
	case types.KindChar:
		return lltypes.I8
	case types.KindString:
		return lltypes.I8Ptr
	case types.KindInt, types.KindUint:
		return intType(t.Width)
	case types.KindFloat:
		if t.Width == types.Width32 {
			return lltypes.Float
		}
		return lltypes.Double
	}
	return lltypes.I32
}

func intType(w types.Width) *lltypes.IntType {
	switch w {
	case types.Width8:
		return lltypes.I8
	case types.Width16:
		return lltypes.I16
	case types.Width64:
		return lltypes.I64
	}
	return lltypes.I32
}

func floatType(t types.Type) *lltypes.FloatType {
	if t.Width == types.Width32 {
		return lltypes.Float
	}
	return lltypes.Double
}

// zero returns the default value of t; str defaults to "".
func (g *generator) zero(t types.Type) constant.Constant {
	switch {
	case t.IsBool():
		return constant.False
	case t.IsChar():
		return constant.NewInt(lltypes.I8, 0)
	case t.IsString():
		return g.str("")
	case t.IsFloat():
		return constant.NewFloat(floatType(t), 0)
	case t.IsInteger(), t.IsNamed():
		return constant.NewInt(intType(t.Width), 0)
	}
	return nil
}

// convert applies the implicit numeric conversion from -> to. Non-numeric
// values are returned unchanged.
func (g *generator) convert(v value.Value, from, to types.Type) value.Value {
	if v == nil || from == to || !from.IsNumeric() || !to.IsNumeric() {
		return v
	}
	switch {
	case from.IsInteger() && to.IsInteger():
		switch {
		case to.Width > from.Width && from.IsSigned():
			return g.cur.NewSExt(v, llType(to))
		case to.Width > from.Width:
			return g.cur.NewZExt(v, llType(to))
		case to.Width < from.Width:
			return g.cur.NewTrunc(v, llType(to))
		}
		return v
	case from.IsInteger():
		if from.IsSigned() {
			return g.cur.NewSIToFP(v, llType(to))
		}
		return g.cur.NewUIToFP(v, llType(to))
	case to.IsInteger():
		if to.IsSigned() {
			return g.cur.NewFPToSI(v, llType(to))
		}
		return g.cur.NewFPToUI(v, llType(to))
	}
	switch {
	case to.Width > from.Width:
		return g.cur.NewFPExt(v, llType(to))
	case to.Width < from.Width:
		return g.cur.NewFPTrunc(v, llType(to))
	}
	return v
}

// truth turns a condition of any scalar type into i1.
func (g *generator) truth(v value.Value, t types.Type) value.Value {
	switch {
	case t.IsBool():
		return v
	case t.IsFloat():
		return g.cur.NewFCmp(enum.FPredONE, v, constant.NewFloat(floatType(t), 0))
	case t.IsString():
		return g.cur.NewICmp(enum.IPredNE, v, constant.NewNull(lltypes.I8Ptr))
	}
	return g.cur.NewICmp(enum.IPredNE, v, constant.NewInt(intType(t.Width), 0))
}

func intPred(op int, signed bool) enum.IPred {
	preds := [...][2]enum.IPred{
		{enum.IPredEQ, enum.IPredEQ},
		{enum.IPredNE, enum.IPredNE},
		{enum.IPredULT, enum.IPredSLT},
		{enum.IPredULE, enum.IPredSLE},
		{enum.IPredUGT, enum.IPredSGT},
		{enum.IPredUGE, enum.IPredSGE},
	}
	if signed {
		return preds[op][1]
	}
	return preds[op][0]
}

var floatPreds = [...]enum.FPred{
	enum.FPredOEQ,
	enum.FPredONE,
	enum.FPredOLT,
	enum.FPredOLE,
	enum.FPredOGT,
	enum.FPredOGE,
}
