package parser

import (
	"xypher/internal/ast"
	"xypher/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1  // = += -= *= /=
	precLogicalOr      = 2  // ||
	precLogicalAnd     = 3  // &&
	precEquality       = 4  // == !=
	precComparison     = 5  // < <= > >=
	precBitwiseOr      = 6  // |
	precBitwiseXor     = 7  // ^
	precBitwiseAnd     = 8  // &
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func (p *Parser) getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	// Присваивание (правоассоциативно)
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign:
		return precAssignment, true

	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false

	case token.EqEq, token.BangEq:
		return precEquality, false

	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false

	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false

	case token.Shl, token.Shr:
		return precShift, false

	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false

	default:
		return -1, false // не бинарный оператор
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:        ast.OpAdd,
	token.Minus:       ast.OpSub,
	token.Star:        ast.OpMul,
	token.Slash:       ast.OpDiv,
	token.Percent:     ast.OpMod,
	token.EqEq:        ast.OpEq,
	token.BangEq:      ast.OpNe,
	token.Lt:          ast.OpLt,
	token.LtEq:        ast.OpLe,
	token.Gt:          ast.OpGt,
	token.GtEq:        ast.OpGe,
	token.AndAnd:      ast.OpLogicalAnd,
	token.OrOr:        ast.OpLogicalOr,
	token.Amp:         ast.OpBitAnd,
	token.Pipe:        ast.OpBitOr,
	token.Caret:       ast.OpBitXor,
	token.Shl:         ast.OpShl,
	token.Shr:         ast.OpShr,
	token.Assign:      ast.OpAssign,
	token.PlusAssign:  ast.OpAddAssign,
	token.MinusAssign: ast.OpSubAssign,
	token.StarAssign:  ast.OpMulAssign,
	token.SlashAssign: ast.OpDivAssign,
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func (p *Parser) tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	op, ok := binaryOps[kind]
	if !ok {
		panic("parser: token " + kind.String() + " is not a binary operator")
	}
	return op
}

// getUnaryOperator возвращает префиксный оператор для токена
func (p *Parser) getUnaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Bang:
		return ast.OpNot, true
	case token.Minus:
		return ast.OpNeg, true
	case token.Tilde:
		return ast.OpBitNot, true
	}
	return 0, false
}
