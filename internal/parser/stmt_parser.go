package parser

import (
	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/source"
	"xypher/internal/token"
)

// parseStatement — диспетчер statement'ов по первому токену.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwLoopWhile, token.KwWhile:
		return p.parseLoopStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwSay:
		return p.parseSayStmt()
	case token.KwTrace:
		return p.parseTraceStmt()
	case token.KwBreak, token.KwContinue:
		return p.parseJumpStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock — `{ decl* }`. Ошибочные statement'ы пропускаются через
// synchronize, блок при этом остаётся валидным.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	openTok, ok := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{'", nil)
	if !ok {
		return ast.NoStmtID, false
	}

	var stmts []ast.StmtID
	var stall stallGuard
	for !p.stopped && !p.at_or(token.RBrace, token.EOF) {
		if stall.observe(p) {
			continue
		}
		stmt, ok := p.parseDeclaration()
		if !ok {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	if p.stopped {
		return ast.NoStmtID, false
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' after block", func(b *diag.ReportBuilder) {
		b.WithNote(openTok.Span, "block opened here")
	})
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBlock(openTok.Span.Cover(closeTok.Span), stmts), true
}

// parseParenCond — `( expr )` после if/while/loopwhile.
func (p *Parser) parseParenCond(keyword string) (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after '"+keyword+"'", nil); !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after condition", nil); !ok {
		return ast.NoExprID, false
	}
	return cond, true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseParenCond("if")
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	span := ifTok.Span.Cover(p.arenas.StmtSpan(then))

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els, ok = p.parseStatement()
		if !ok {
			return ast.NoStmtID, false
		}
		span = span.Cover(p.arenas.StmtSpan(els))
	}
	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

// parseLoopStmt — loopwhile и while: оба проверяют условие перед телом.
func (p *Parser) parseLoopStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	form := ast.While
	if kwTok.Kind == token.KwLoopWhile {
		form = ast.LoopWhile
	}
	cond, ok := p.parseParenCond(kwTok.Text)
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewLoop(kwTok.Span.Cover(p.arenas.StmtSpan(body)), form, cond, body), true
}

// parseForStmt разворачивает `for (init; cond; step) body` в
// Block{init, Loop(cond, Block{body, step;})}. Пустое условие означает true.
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	forTok := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after 'for'", nil); !ok {
		return ast.NoStmtID, false
	}

	init := ast.NoStmtID
	if p.at(token.Semicolon) {
		p.advance()
	} else {
		var ok bool
		if p.at_or(token.KwLet, token.KwConst, token.KwOwn) {
			init, ok = p.parseVarDecl()
		} else {
			init, ok = p.parseExprStmt()
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}

	var cond ast.ExprID
	if p.at(token.Semicolon) {
		cond = p.syntheticTrue(p.lx.Peek().Span)
	} else {
		var ok bool
		if cond, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon("expected ';' after loop condition") {
		return ast.NoStmtID, false
	}

	step := ast.NoExprID
	if !p.at(token.RParen) {
		var ok bool
		if step, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after for clauses", nil); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStatement()
	if !ok {
		return ast.NoStmtID, false
	}
	span := forTok.Span.Cover(p.arenas.StmtSpan(body))

	loopStmts := []ast.StmtID{body}
	if step.IsValid() {
		loopStmts = append(loopStmts, p.arenas.Stmts.NewExpr(p.arenas.ExprSpan(step), step))
	}
	loopBody := p.arenas.Stmts.NewBlock(p.arenas.StmtSpan(body), loopStmts)
	loop := p.arenas.Stmts.NewLoop(span, ast.LoopFor, cond, loopBody)

	outer := make([]ast.StmtID, 0, 2)
	if init.IsValid() {
		outer = append(outer, init)
	}
	outer = append(outer, loop)
	return p.arenas.Stmts.NewBlock(span, outer), true
}

func (p *Parser) syntheticTrue(sp source.Span) ast.ExprID {
	raw := p.arenas.StringsInterner.Intern("true")
	return p.arenas.Exprs.NewLiteral(sp, ast.ExprBoolLit, ast.ExprLiteralData{Raw: raw, Value: raw, Bool: true})
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon("expected ';' after return statement") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(p.lastSpan), value), true
}

func (p *Parser) parseSayStmt() (ast.StmtID, bool) {
	sayTok := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after 'say'", nil); !ok {
		return ast.NoStmtID, false
	}
	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoStmtID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments", nil); !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon("expected ';' after say statement") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewSay(sayTok.Span.Cover(p.lastSpan), args), true
}

func (p *Parser) parseTraceStmt() (ast.StmtID, bool) {
	traceTok := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after 'trace'", nil); !ok {
		return ast.NoStmtID, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after expression", nil); !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon("expected ';' after trace statement") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewTrace(traceTok.Span.Cover(p.lastSpan), expr), true
}

// parseJumpStmt — break; и continue;
func (p *Parser) parseJumpStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	if !p.expectSemicolon("expected ';' after '" + kwTok.Text + "'") {
		return ast.NoStmtID, false
	}
	span := kwTok.Span.Cover(p.lastSpan)
	if kwTok.Kind == token.KwBreak {
		return p.arenas.Stmts.NewBreak(span), true
	}
	return p.arenas.Stmts.NewContinue(span), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon("expected ';' after expression") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(p.arenas.ExprSpan(expr).Cover(p.lastSpan), expr), true
}
