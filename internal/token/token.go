package token

import (
	"xypher/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, character or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= At
}

// IsKeyword reports whether the token is a language keyword, type keywords included.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFunc && t.Kind <= KwVoid
}

// IsTypeKeyword reports whether the token names a primitive type.
func (t Token) IsTypeKeyword() bool {
	return t.Kind >= KwI8 && t.Kind <= KwVoid
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsDeclStart reports whether the token may begin a new declaration or
// statement; the parser resynchronises on these.
func (t Token) IsDeclStart() bool {
	switch t.Kind {
	case KwFunc, KwImport, KwLet, KwConst, KwOwn, KwIf, KwWhile, KwLoopWhile, KwFor, KwReturn:
		return true
	default:
		return false
	}
}
