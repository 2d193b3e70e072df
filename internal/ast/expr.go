package ast

import (
	"xypher/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprFloatLit
	ExprStringLit
	ExprCharLit
	ExprBoolLit
	ExprIdent
	ExprBinary
	ExprUnary
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntLit:
		return "IntLit"
	case ExprFloatLit:
		return "FloatLit"
	case ExprStringLit:
		return "StringLit"
	case ExprCharLit:
		return "CharLit"
	case ExprBoolLit:
		return "BoolLit"
	case ExprIdent:
		return "Ident"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	}
	return "Expr(?)"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates binary operator kinds. Assignment is a binary
// operator too; codegen treats it specially.
type BinaryOp uint8

const (
	// Арифметические
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	// Сравнения
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Логические
	OpLogicalAnd
	OpLogicalOr

	// Битовые
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr

	// Присваивания
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
)

var binaryOpText = [...]string{
	OpAdd:        "+",
	OpSub:        "-",
	OpMul:        "*",
	OpDiv:        "/",
	OpMod:        "%",
	OpEq:         "==",
	OpNe:         "!=",
	OpLt:         "<",
	OpLe:         "<=",
	OpGt:         ">",
	OpGe:         ">=",
	OpLogicalAnd: "&&",
	OpLogicalOr:  "||",
	OpBitAnd:     "&",
	OpBitOr:      "|",
	OpBitXor:     "^",
	OpShl:        "<<",
	OpShr:        ">>",
	OpAssign:     "=",
	OpAddAssign:  "+=",
	OpSubAssign:  "-=",
	OpMulAssign:  "*=",
	OpDivAssign:  "/=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

func (op BinaryOp) IsArithmetic() bool { return op <= OpMod }
func (op BinaryOp) IsComparison() bool { return op >= OpEq && op <= OpGe }
func (op BinaryOp) IsLogical() bool    { return op == OpLogicalAnd || op == OpLogicalOr }
func (op BinaryOp) IsBitwise() bool    { return op >= OpBitAnd && op <= OpShr }
func (op BinaryOp) IsAssignment() bool { return op >= OpAssign }

// Arithmetic returns the operator a compound assignment applies before
// storing; plain '=' yields false.
func (op BinaryOp) Arithmetic() (BinaryOp, bool) {
	switch op {
	case OpAddAssign:
		return OpAdd, true
	case OpSubAssign:
		return OpSub, true
	case OpMulAssign:
		return OpMul, true
	case OpDivAssign:
		return OpDiv, true
	}
	return op, false
}

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	OpNot UnaryOp = iota // !
	OpNeg                // -
	OpBitNot             // ~
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	case OpBitNot:
		return "~"
	}
	return "?"
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData covers every literal kind. Raw is the lexeme as written;
// Value is the decoded text for string and char literals.
type ExprLiteralData struct {
	Raw   source.StringID
	Value source.StringID
	Bool  bool
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}
