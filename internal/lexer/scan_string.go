package lexer

import (
	"xypher/internal/diag"
	"xypher/internal/token"
)

// "..." с escape через '\'. Escape не валидируем, раскрывает их парсер.
// Незакрытая строка — Invalid токен до конца файла, сканирование продолжается.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '"' {
			return lx.emit(token.StringLit, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string")
	return tok
}

// 'x' или '\n'. Пустой или незакрытый литерал — Invalid.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	switch lx.cursor.Peek() {
	case '\'':
		lx.cursor.Bump()
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadChar, tok.Span, "empty character literal")
		return tok
	case '\\':
		lx.cursor.Bump()
		lx.cursor.Bump()
	default:
		if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.bumpRune()
		}
	}

	if !lx.cursor.Eat('\'') {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadChar, tok.Span, "unterminated character literal")
		return tok
	}
	return lx.emit(token.CharLit, start)
}
