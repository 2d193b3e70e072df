package types

import "xypher/internal/ast"

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyAny  FamilyMask = 1 << iota
	FamilyBool
	FamilySignedInt
	FamilyUnsignedInt
	FamilyFloat
	FamilyString
	FamilyChar
)

const (
	FamilyIntegral = FamilySignedInt | FamilyUnsignedInt
	FamilyNumeric  = FamilyIntegral | FamilyFloat
	// FamilyValue is every type that has a runtime value: not void, not named.
	FamilyValue = FamilyBool | FamilyNumeric | FamilyString | FamilyChar
)

// Family returns the mask bit of t. Void and named types belong to no family.
func (t Type) Family() FamilyMask {
	switch t.Kind {
	case KindBool:
		return FamilyBool
	case KindInt:
		return FamilySignedInt
	case KindUint:
		return FamilyUnsignedInt
	case KindFloat:
		return FamilyFloat
	case KindString:
		return FamilyString
	case KindChar:
		return FamilyChar
	}
	return FamilyNone
}

func (m FamilyMask) accepts(t Type) bool {
	if m&FamilyAny != 0 {
		return true
	}
	return m&t.Family() != 0
}

// BinaryResultKind describes how to derive the result type for an operator.
type BinaryResultKind uint8

const (
	BinaryResultUnknown BinaryResultKind = iota
	BinaryResultLeft
	BinaryResultRight
	BinaryResultBool
	BinaryResultCommon
)

// BinaryFlags annotate special handling for binary operators.
type BinaryFlags uint16

const (
	BinaryFlagNone       BinaryFlags = 0
	BinaryFlagAssignment BinaryFlags = 1 << iota
	BinaryFlagShortCircuit
)

// BinarySpec lists operand families and expected result for an operation.
type BinarySpec struct {
	Left   FamilyMask
	Right  FamilyMask
	Result BinaryResultKind
	Flags  BinaryFlags
}

// UnaryResultKind indicates how to derive the resulting type.
type UnaryResultKind uint8

const (
	UnaryResultUnknown UnaryResultKind = iota
	UnaryResultSame
	UnaryResultBool
)

// UnarySpec describes operand expectations for unary operators.
type UnarySpec struct {
	Operand FamilyMask
	Result  UnaryResultKind
}

var (
	arith    = BinarySpec{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultCommon}
	compare  = BinarySpec{Left: FamilyAny, Right: FamilyAny, Result: BinaryResultBool}
	logical  = BinarySpec{Left: FamilyBool, Right: FamilyBool, Result: BinaryResultBool, Flags: BinaryFlagShortCircuit}
	bitwise  = BinarySpec{Left: FamilyIntegral, Right: FamilyIntegral, Result: BinaryResultCommon}
	compound = BinarySpec{Left: FamilyNumeric, Right: FamilyNumeric, Result: BinaryResultLeft, Flags: BinaryFlagAssignment}
)

var binarySpecTable = map[ast.BinaryOp]BinarySpec{
	ast.OpAdd:        arith,
	ast.OpSub:        arith,
	ast.OpMul:        arith,
	ast.OpDiv:        arith,
	ast.OpMod:        arith,
	ast.OpEq:         compare,
	ast.OpNe:         compare,
	ast.OpLt:         compare,
	ast.OpLe:         compare,
	ast.OpGt:         compare,
	ast.OpGe:         compare,
	ast.OpLogicalAnd: logical,
	ast.OpLogicalOr:  logical,
	ast.OpBitAnd:     bitwise,
	ast.OpBitOr:      bitwise,
	ast.OpBitXor:     bitwise,
	ast.OpShl:        bitwise,
	ast.OpShr:        bitwise,
	ast.OpAssign:     {Left: FamilyValue, Right: FamilyValue, Result: BinaryResultRight, Flags: BinaryFlagAssignment},
	ast.OpAddAssign:  compound,
	ast.OpSubAssign:  compound,
	ast.OpMulAssign:  compound,
	ast.OpDivAssign:  compound,
}

var unarySpecTable = map[ast.UnaryOp]UnarySpec{
	ast.OpNeg:    {Operand: FamilyNumeric, Result: UnaryResultSame},
	ast.OpNot:    {Operand: FamilyBool, Result: UnaryResultBool},
	ast.OpBitNot: {Operand: FamilyIntegral, Result: UnaryResultSame},
}

// BinarySpecFor returns the operand rules of op.
func BinarySpecFor(op ast.BinaryOp) (BinarySpec, bool) {
	spec, ok := binarySpecTable[op]
	return spec, ok
}

// UnarySpecFor returns the operand rules of op.
func UnarySpecFor(op ast.UnaryOp) (UnarySpec, bool) {
	spec, ok := unarySpecTable[op]
	return spec, ok
}

// BinaryResult computes the type of `l op r`. Void means the operation is
// ill-typed for these operands.
//   - arithmetic: both numeric, common type
//   - comparison: always bool
//   - && ||: both bool
//   - bitwise and shifts: both integer, common type
//   - `=`: the right type when compatible with the left
//   - compound assignment: both numeric, the left type
func BinaryResult(op ast.BinaryOp, l, r Type) Type {
	spec, ok := binarySpecTable[op]
	if !ok || !spec.Left.accepts(l) || !spec.Right.accepts(r) {
		return Void
	}
	if spec.Flags&BinaryFlagAssignment != 0 && !Compatible(l, r) {
		return Void
	}
	switch spec.Result {
	case BinaryResultLeft:
		return l
	case BinaryResultRight:
		return r
	case BinaryResultBool:
		return Bool
	case BinaryResultCommon:
		return CommonType(l, r)
	}
	return Void
}

// UnaryResult computes the type of `op t`; Void when ill-typed.
func UnaryResult(op ast.UnaryOp, t Type) Type {
	spec, ok := unarySpecTable[op]
	if !ok || !spec.Operand.accepts(t) {
		return Void
	}
	switch spec.Result {
	case UnaryResultSame:
		return t
	case UnaryResultBool:
		return Bool
	}
	return Void
}
