package ast

import (
	"xypher/internal/source"
)

// TypeName is a written type reference: a primitive keyword or an identifier.
type TypeName struct {
	Span source.Span
	Name source.StringID
}

type Types struct {
	Arena *Arena[TypeName]
}

func NewTypes(capHint uint) *Types {
	return &Types{Arena: NewArena[TypeName](capHint)}
}

func (t *Types) New(span source.Span, name source.StringID) TypeID {
	return TypeID(t.Arena.Allocate(TypeName{Span: span, Name: name}))
}

func (t *Types) Get(id TypeID) *TypeName {
	return t.Arena.Get(uint32(id))
}
