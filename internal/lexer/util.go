package lexer

import (
	"unicode/utf8"
)

// классы байтов ASCII; всё, что выше 0x7F, не входит ни в один класс
const (
	classIdentStart uint8 = 1 << iota
	classDigit
)

var byteClass = func() (t [256]uint8) {
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= classIdentStart
		t[b-'a'+'A'] |= classIdentStart
	}
	t['_'] |= classIdentStart
	for b := '0'; b <= '9'; b++ {
		t[b] |= classDigit
	}
	return t
}()

func isIdentStartByte(b byte) bool    { return byteClass[b]&classIdentStart != 0 }
func isIdentContinueByte(b byte) bool { return byteClass[b]&(classIdentStart|classDigit) != 0 }
func isDec(b byte) bool               { return byteClass[b]&classDigit != 0 }

// bumpRune consumes one whole rune and returns it. Invalid UTF-8 consumes a
// single byte and yields utf8.RuneError; at EOF nothing moves.
func (lx *Lexer) bumpRune() rune {
	if lx.cursor.EOF() {
		return utf8.RuneError
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		lx.cursor.Bump()
		return rune(b)
	}
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	for range size {
		lx.cursor.Bump()
	}
	return r
}

// try2 consumes the two-byte operator ab when it is next.
func (lx *Lexer) try2(a, b byte) bool {
	if lx.cursor.Peek() != a || lx.cursor.PeekAt(1) != b {
		return false
	}
	lx.cursor.Off += 2
	return true
}
