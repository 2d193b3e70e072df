package parser

import (
	"context"
	"slices"

	"xypher/internal/ast"
	"xypher/internal/diag"
	"xypher/internal/lexer"
	"xypher/internal/source"
	"xypher/internal/token"
)

// DefaultMaxErrors is the error cap used when Options.MaxErrors is zero.
const DefaultMaxErrors = 10

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	// Errors counts syntax errors plus invalid tokens the parser consumed.
	Errors uint
	// Stopped is set when the error cap or a cancelled context ended the
	// parse before EOF.
	Stopped bool
}

// Parser — состояние парсера на один файл
type Parser struct {
	ctx      context.Context
	lx       *lexer.Lexer    // поток токенов (Peek/Next)
	arenas   *ast.Builder    // построитель аренных узлов
	file     ast.FileID      // текущий FileID (в AST)
	fs       *source.FileSet // нужен только для спанов/путей при надобности
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	stopped  bool
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	if opts.MaxErrors == 0 {
		opts.MaxErrors = DefaultMaxErrors
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	start := source.Span{File: lx.File().ID}
	p := Parser{
		ctx:      ctx,
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(start),
		fs:       fs,
		opts:     opts,
		lastSpan: start,
	}

	p.parseProgram()

	if f := arenas.Files.Get(p.file); f != nil {
		f.Span = start.Cover(p.lastSpan)
	}
	return Result{
		File:    p.file,
		Errors:  p.opts.CurrentErrors,
		Stopped: p.stopped,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseProgram — верхний уровень: декларации и statement'ы до EOF.
func (p *Parser) parseProgram() {
	var stall stallGuard
	for !p.stopped && !p.at(token.EOF) {
		if p.ctx != nil && p.ctx.Err() != nil {
			p.stopped = true
			return
		}
		if p.at(token.RBrace) {
			tok := p.advance()
			p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected '}' at top level", nil)
			continue
		}
		if stall.observe(p) {
			continue
		}

		id, ok := p.parseDeclaration()
		if !ok {
			p.synchronize()
			continue
		}
		p.arenas.PushDecl(p.file, id)
	}
}

// parseDeclaration — import/func/let/const/own, иначе statement.
func (p *Parser) parseDeclaration() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwFunc:
		return p.parseFuncDecl()
	case token.KwLet, token.KwConst, token.KwOwn:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

// parseIdent — ожидает идентификатор и интернирует его.
func (p *Parser) parseIdent(msg string) (source.StringID, source.Span, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, msg, nil)
	if !ok {
		return source.NoStringID, tok.Span, false
	}
	return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
}
