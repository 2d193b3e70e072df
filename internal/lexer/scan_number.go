package lexer

import (
	"xypher/internal/diag"
	"xypher/internal/token"
)

// Поддержка: 123, 1.5, 1e10, 2.5E-3.
// Значение не разбирается, в Token.Text остаётся сырая лексема.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть только если после точки цифра: "1.foo" это Int, Dot, Ident
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexBadNumber, tok.Span, "expected digit after exponent")
			return tok
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	return lx.emit(kind, start)
}
