package parser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"xypher/internal/ast"
	"xypher/internal/diag"
)

// parseStringLiteral снимает кавычки, раскрывает escape-последовательности
// и приводит текст к NFC, чтобы одинаковые строки интернировались одинаково.
func (p *Parser) parseStringLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	lit := p.rawLiteral(tok)
	value := norm.NFC.String(unescape(strings.TrimSuffix(strings.TrimPrefix(tok.Text, `"`), `"`)))
	lit.Value = p.arenas.StringsInterner.Intern(value)
	return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprStringLit, lit), true
}

// parseCharLiteral — как строка, но ровно один символ после раскрытия.
func (p *Parser) parseCharLiteral() (ast.ExprID, bool) {
	tok := p.advance()
	lit := p.rawLiteral(tok)
	value := norm.NFC.String(unescape(strings.TrimSuffix(strings.TrimPrefix(tok.Text, "'"), "'")))
	if utf8.RuneCountInString(value) != 1 {
		p.report(diag.LexBadChar, diag.SevError, tok.Span, "character literal must contain exactly one character", nil)
	}
	lit.Value = p.arenas.StringsInterner.Intern(value)
	return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprCharLit, lit), true
}

// unescape раскрывает \n \t \r \\ \" \' \0. Неизвестная последовательность
// остаётся как есть, вместе с обратным слэшем.
func unescape(raw string) string {
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			sb.WriteByte(c)
			continue
		}
		switch raw[i+1] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case '0':
			sb.WriteByte(0)
		default:
			sb.WriteByte(c)
			continue
		}
		i++
	}
	return sb.String()
}
