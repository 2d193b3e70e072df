package types

import "fmt"

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindChar
	KindString
	KindInt
	KindUint
	KindFloat
	KindNamed // имя, не известное как примитив; пользовательских типов пока нет
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Type is a compact, comparable descriptor. Void doubles as the
// "ill-typed" sentinel returned by the operator rules.
type Type struct {
	Kind  Kind
	Width Width  // for numeric primitives
	Name  string // for KindNamed
}

var (
	Void = Type{Kind: KindVoid}
	Bool = Type{Kind: KindBool}
	Char = Type{Kind: KindChar}
	Str  = Type{Kind: KindString}

	I8  = MakeInt(Width8)
	I16 = MakeInt(Width16)
	I32 = MakeInt(Width32)
	I64 = MakeInt(Width64)
	U8  = MakeUint(Width8)
	U16 = MakeUint(Width16)
	U32 = MakeUint(Width32)
	U64 = MakeUint(Width64)
	F32 = MakeFloat(Width32)
	F64 = MakeFloat(Width64)
)

// MakeInt describes a signed integer of the given width.
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// Named is a placeholder for a non-primitive type name.
func Named(name string) Type {
	return Type{Kind: KindNamed, Name: name}
}

var primitives = map[string]Type{
	"void": Void,
	"bool": Bool,
	"char": Char,
	"str":  Str,
	"i8":   I8,
	"i16":  I16,
	"i32":  I32,
	"i64":  I64,
	"u8":   U8,
	"u16":  U16,
	"u32":  U32,
	"u64":  U64,
	"f32":  F32,
	"f64":  F64,
}

// FromName maps a written type name to its descriptor. The empty name is
// void; unknown names become Named placeholders.
func FromName(name string) Type {
	if name == "" {
		return Void
	}
	if t, ok := primitives[name]; ok {
		return t
	}
	return Named(name)
}

// IsPrimitiveName reports whether name is one of the built-in type keywords.
func IsPrimitiveName(name string) bool {
	_, ok := primitives[name]
	return ok
}

// String renders the type the way it is written in source.
func (t Type) String() string {
	switch t.Kind {
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "str"
	case KindInt:
		return fmt.Sprintf("i%d", t.Width)
	case KindUint:
		return fmt.Sprintf("u%d", t.Width)
	case KindFloat:
		return fmt.Sprintf("f%d", t.Width)
	case KindNamed:
		return t.Name
	}
	return t.Kind.String()
}

func (t Type) IsInteger() bool { return t.Kind == KindInt || t.Kind == KindUint }
func (t Type) IsSigned() bool  { return t.Kind == KindInt }
func (t Type) IsFloat() bool   { return t.Kind == KindFloat }
func (t Type) IsNumeric() bool { return t.IsInteger() || t.IsFloat() }
func (t Type) IsBool() bool    { return t.Kind == KindBool }
func (t Type) IsString() bool  { return t.Kind == KindString }
func (t Type) IsChar() bool    { return t.Kind == KindChar }
func (t Type) IsVoid() bool    { return t.Kind == KindVoid }
func (t Type) IsNamed() bool   { return t.Kind == KindNamed }
