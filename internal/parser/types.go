package parser

import (
	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/source"
	"xypher/internal/token"
)

// parseType — примитивный тип (ключевое слово) или идентификатор.
// При ошибке рапортуем и подставляем void, чтобы разбор продолжился.
func (p *Parser) parseType() ast.TypeID {
	tok := p.lx.Peek()
	if tok.IsTypeKeyword() || tok.Kind == token.Ident {
		p.advance()
		return p.arenas.Types.New(tok.Span, p.arenas.StringsInterner.Intern(tok.Text))
	}
	sp := p.getDiagnosticSpan()
	p.err(diag.SynExpectType, p.withFound("expected type name"))
	return p.voidType(sp)
}

func (p *Parser) voidType(sp source.Span) ast.TypeID {
	return p.arenas.Types.New(sp, p.arenas.StringsInterner.Intern("void"))
}
