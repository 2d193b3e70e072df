package parser

import (
	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/token"
)

// parseImport — `import <module> from <library>;`
func (p *Parser) parseImport() (ast.StmtID, bool) {
	importTok := p.advance()

	modTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected module name after 'import'", nil)
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.KwFrom, diag.SynExpectFrom, "expected 'from' after module name", func(b *diag.ReportBuilder) {
		b.WithSuggestion("add the source library", p.lastSpan.AtEnd(), " from xystd")
	}); !ok {
		return ast.NoStmtID, false
	}
	libTok, ok := p.expect(token.Ident, diag.SynExpectLibrary, "expected source library name after 'from'", nil)
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon("expected ';' after import statement") {
		return ast.NoStmtID, false
	}

	intern := p.arenas.StringsInterner.Intern
	return p.arenas.Stmts.NewImport(importTok.Span.Cover(p.lastSpan), ast.ImportData{
		Module:      intern(modTok.Text),
		ModuleSpan:  modTok.Span,
		Library:     intern(libTok.Text),
		LibrarySpan: libTok.Span,
	}), true
}

// parseFuncDecl — `func name(p: T, ...) [-> T] { ... }`.
// Без стрелки тип результата — void.
func (p *Parser) parseFuncDecl() (ast.StmtID, bool) {
	funcTok := p.advance()

	name, nameSpan, ok := p.parseIdent("expected function name")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after function name", nil); !ok {
		return ast.NoStmtID, false
	}

	params, ok := p.parseParams()
	if !ok {
		return ast.NoStmtID, false
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters", nil)
	if !ok {
		return ast.NoStmtID, false
	}

	var ret ast.TypeID
	if p.at(token.Arrow) {
		p.advance()
		ret = p.parseType()
	} else {
		ret = p.voidType(closeTok.Span.AtEnd())
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynExpectLBrace, p.withFound("expected '{' before function body"))
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.Stmts.NewFuncDecl(funcTok.Span.Cover(p.arenas.StmtSpan(body)), ast.FuncDeclData{
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Return:   ret,
		Body:     body,
	}), true
}

// parseParams — список `name: Type` через запятую, без закрывающей скобки.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	if p.at(token.RParen) {
		return params, true
	}
	for {
		name, span, ok := p.parseIdent("expected parameter name")
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.Colon, diag.SynExpectColon, "expected ':' after parameter name", nil); !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: name, Span: span, Type: p.parseType()})
		if !p.at(token.Comma) {
			return params, true
		}
		p.advance()
	}
}

// parseVarDecl — `let|const|own name [: T] [= expr];`
func (p *Parser) parseVarDecl() (ast.StmtID, bool) {
	kwTok := p.advance()

	name, nameSpan, ok := p.parseIdent("expected variable name")
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.VarDeclData{
		Name:     name,
		NameSpan: nameSpan,
		IsConst:  kwTok.Kind == token.KwConst,
		IsOwned:  kwTok.Kind == token.KwOwn,
	}

	if p.at(token.Colon) {
		p.advance()
		data.Type = p.parseType()
	}
	if p.at(token.Assign) {
		p.advance()
		if data.Init, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	if !p.expectSemicolon("expected ';' after variable declaration") {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVarDecl(kwTok.Span.Cover(p.lastSpan), data), true
}
