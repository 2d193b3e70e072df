package parser

import (
	"fmt"

	"xypher/internal/diag"
	"xypher/internal/source"
	"xypher/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan.
// Invalid-токены уже отрапортованы лексером, но идут в счётчик ошибок.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	switch tok.Kind {
	case token.EOF:
	case token.Invalid:
		p.opts.CurrentErrors++
		p.checkLimit(tok.Span)
	default:
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.AtEnd()
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string, decorate func(*diag.ReportBuilder)) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, p.withFound(msg), decorate)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// expectSemicolon — `;` с подсказкой вставить его после предыдущего токена.
func (p *Parser) expectSemicolon(msg string) bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, msg, func(b *diag.ReportBuilder) {
		b.WithSuggestion("insert ';'", p.lastSpan.AtEnd(), ";")
	})
	return ok
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.getDiagnosticSpan(), msg, nil)
}

func (p *Parser) withFound(msg string) string {
	peek := p.lx.Peek()
	switch peek.Kind {
	case token.EOF:
		return msg + ", found end of file"
	case token.Invalid:
		return msg
	}
	return fmt.Sprintf("%s, found '%s'", msg, peek.Text)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, decorate func(*diag.ReportBuilder)) {
	if p.stopped {
		return
	}
	if sev.IsError() {
		p.opts.CurrentErrors++
	}
	b := diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
	if decorate != nil {
		decorate(b)
	}
	b.Emit()
	p.checkLimit(sp)
}

// checkLimit останавливает разбор при достижении лимита ошибок.
// Итоговая диагностика выдаётся всегда, даже сверх лимита.
func (p *Parser) checkLimit(sp source.Span) {
	if p.stopped || !p.opts.Enough() {
		return
	}
	p.stopped = true
	diag.ReportFatal(p.opts.Reporter, diag.SynTooManyErrors, sp, "too many errors, stopping parse").Emit()
}

// synchronize — пропускаем токены до `;` (съедаем его), начала декларации
// или `}`. Продукции, начинающиеся с ключевого слова декларации, всегда
// съедают его, так что остановка на нём не зацикливает разбор.
func (p *Parser) synchronize() {
	for !p.stopped {
		tok := p.lx.Peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == token.RBrace, tok.IsDeclStart():
			return
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		}
		p.advance()
	}
}

// stallLimit — сколько раз подряд можно увидеть один и тот же токен
// в начале statement'а.
const stallLimit = 3

// stallGuard ловит циклы восстановления, которые не двигают поток токенов.
type stallGuard struct {
	last  source.Span
	seen  int
	valid bool
}

// observe возвращает true, если пришлось насильно пропустить токен.
func (g *stallGuard) observe(p *Parser) bool {
	tok := p.lx.Peek()
	if g.valid && tok.Span == g.last {
		g.seen++
	} else {
		g.last, g.seen, g.valid = tok.Span, 1, true
	}
	if g.seen <= stallLimit {
		return false
	}
	p.report(diag.SynStalled, diag.SevError, tok.Span, "parser stuck, skipping to next token", nil)
	p.advance()
	g.valid = false
	return true
}
