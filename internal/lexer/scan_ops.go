package lexer

import (
	"fmt"
	"unicode/utf8"

	"xypher/internal/diag"
	"xypher/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.try2('<', '<'):
		return lx.emit(token.Shl, start)
	case lx.try2('>', '>'):
		return lx.emit(token.Shr, start)
	case lx.try2('&', '&'):
		return lx.emit(token.AndAnd, start)
	case lx.try2('|', '|'):
		return lx.emit(token.OrOr, start)
	case lx.try2('-', '>'):
		return lx.emit(token.Arrow, start)
	case lx.try2('=', '>'):
		return lx.emit(token.FatArrow, start)
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('+', '='):
		return lx.emit(token.PlusAssign, start)
	case lx.try2('-', '='):
		return lx.emit(token.MinusAssign, start)
	case lx.try2('*', '='):
		return lx.emit(token.StarAssign, start)
	case lx.try2('/', '='):
		return lx.emit(token.SlashAssign, start)
	}

	// односимвольные
	var k token.Kind
	switch lx.cursor.Peek() {
	case '+':
		k = token.Plus
	case '-':
		k = token.Minus
	case '*':
		k = token.Star
	case '/':
		k = token.Slash
	case '%':
		k = token.Percent
	case '=':
		k = token.Assign
	case '!':
		k = token.Bang
	case '<':
		k = token.Lt
	case '>':
		k = token.Gt
	case '&':
		k = token.Amp
	case '|':
		k = token.Pipe
	case '^':
		k = token.Caret
	case '~':
		k = token.Tilde
	case '?':
		k = token.Question
	case ':':
		k = token.Colon
	case ';':
		k = token.Semicolon
	case ',':
		k = token.Comma
	case '.':
		k = token.Dot
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case '{':
		k = token.LBrace
	case '}':
		k = token.RBrace
	case '[':
		k = token.LBracket
	case ']':
		k = token.RBracket
	case '@':
		k = token.At
	default:
		// неизвестный символ: целиком одна руна, чтобы не резать UTF-8
		r := lx.bumpRune()
		tok := lx.emit(token.Invalid, start)
		if r == utf8.RuneError {
			lx.errLex(diag.LexUnknownChar, tok.Span, "invalid UTF-8 byte")
		} else {
			lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", r))
		}
		return tok
	}
	lx.cursor.Bump()
	return lx.emit(k, start)
}
