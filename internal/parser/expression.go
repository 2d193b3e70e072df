package parser

import (
	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/source"
	"xypher/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
// Возвращает ExprID и флаг успеха
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0) // минимальный приоритет = 0
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()

		prec, isRightAssoc := p.getBinaryOperatorPrec(tok.Kind)
		if prec < minPrec {
			break // приоритет слишком низкий
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		// правую часть уже отрапортовал parsePrimaryExpr
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		op := p.tokenKindToBinaryOp(opTok.Kind)
		finalSpan := p.arenas.ExprSpan(left).Cover(p.arenas.ExprSpan(right))
		left = p.arenas.Exprs.NewBinary(finalSpan, op, left, right)
	}

	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.UnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		op, ok := p.getUnaryOperator(p.lx.Peek().Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		finalSpan := prefixes[i].span.Cover(p.arenas.ExprSpan(expr))
		expr = p.arenas.Exprs.NewUnary(finalSpan, prefixes[i].op, expr)
	}

	return expr, true
}

// parsePostfixExpr обрабатывает постфиксные операторы; сейчас это только вызов.
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for p.at(token.LParen) {
		expr, ok = p.parseCallExpr(expr)
		if !ok {
			return ast.NoExprID, false
		}
	}
	return expr, true
}

// parseCallExpr парсит `callee(arg, ...)`. Callee может быть любым
// выражением; вызываемость проверяет семантика.
func (p *Parser) parseCallExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // съедаем '('

	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance() // съедаем ','
		}
	}

	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments", nil)
	if !ok {
		return ast.NoExprID, false
	}

	span := p.arenas.ExprSpan(target).Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, target, args), true
}

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	switch tok := p.lx.Peek(); tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprIntLit, p.rawLiteral(tok)), true

	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprFloatLit, p.rawLiteral(tok)), true

	case token.StringLit:
		return p.parseStringLiteral()

	case token.CharLit:
		return p.parseCharLiteral()

	case token.KwTrue, token.KwFalse:
		p.advance()
		lit := p.rawLiteral(tok)
		lit.Bool = tok.Kind == token.KwTrue
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprBoolLit, lit), true

	case token.LParen:
		return p.parseParenExpr()

	case token.Invalid:
		// лексер уже выдал диагностику
		p.advance()
		return ast.NoExprID, false

	default:
		p.err(diag.SynExpectExpression, p.withFound("expected expression"))
		return ast.NoExprID, false
	}
}

// parseParenExpr — `( expr )`. Скобки не порождают узла, span расширяется.
func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after expression", func(b *diag.ReportBuilder) {
		b.WithNote(openTok.Span, "to match this '('")
	})
	if !ok {
		return ast.NoExprID, false
	}
	if e := p.arenas.Exprs.Get(inner); e != nil {
		e.Span = openTok.Span.Cover(closeTok.Span)
	}
	return inner, true
}

func (p *Parser) rawLiteral(tok token.Token) ast.ExprLiteralData {
	raw := p.arenas.StringsInterner.Intern(tok.Text)
	return ast.ExprLiteralData{Raw: raw, Value: raw}
}
