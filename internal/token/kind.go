package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown character, unterminated literal).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit
	// CharLit represents the character literal token.
	CharLit

	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwLoopWhile represents the 'loopwhile' keyword.
	KwLoopWhile // loopwhile
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwSay represents the 'say' output keyword.
	KwSay // say
	// KwGrab represents the 'grab' input keyword.
	KwGrab // grab
	// KwLink represents the 'link' keyword.
	KwLink // link
	// KwFall represents the 'fall' keyword.
	KwFall // fall
	// KwOwn represents the 'own' keyword.
	KwOwn // own
	// KwTrace represents the 'trace' debug keyword.
	KwTrace // trace
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwType represents the 'type' keyword.
	KwType // type
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwAsync represents the 'async' keyword.
	KwAsync // async
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwSpawn represents the 'spawn' keyword.
	KwSpawn // spawn
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwNull represents the 'null' keyword.
	KwNull // null
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwFrom represents the 'from' keyword.
	KwFrom // from

	// primitive type keywords
	KwI8   // i8
	KwI16  // i16
	KwI32  // i32
	KwI64  // i64
	KwU8   // u8
	KwU16  // u16
	KwU32  // u32
	KwU64  // u64
	KwF32  // f32
	KwF64  // f64
	KwBool // bool
	KwChar // char
	KwStr  // str
	KwVoid // void

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// EqEq represents the eq eq operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the bang eq operator token.
	BangEq // !=
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// Shl represents the shl operator token.
	Shl // <<
	// Shr represents the shr operator token.
	Shr // >>
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// Tilde represents the bitwise not operator token.
	Tilde // ~
	// AndAnd represents the and and operator token.
	AndAnd // &&
	// OrOr represents the or or operator token.
	OrOr // ||
	// Question represents the question operator token.
	Question // ?
	// Colon represents the colon operator token.
	Colon // :
	// ColonColon represents the colon colon operator token.
	ColonColon // ::
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// Dot represents the dot operator token.
	Dot // .
	// Arrow represents the arrow operator token.
	Arrow // ->
	// FatArrow represents the fat arrow operator token.
	FatArrow // =>
	// LParen represents the left parenthesis operator token.
	LParen // (
	// RParen represents the right parenthesis operator token.
	RParen // )
	// LBrace represents the left brace operator token.
	LBrace // {
	// RBrace represents the right brace operator token.
	RBrace // }
	// LBracket represents the left bracket operator token.
	LBracket // [
	// RBracket represents the right bracket operator token.
	RBracket // ]
	// At represents the at operator token.
	At // @

	kindCount
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	CharLit:     "CharLit",
	KwFunc:      "KwFunc",
	KwReturn:    "KwReturn",
	KwIf:        "KwIf",
	KwElse:      "KwElse",
	KwLoopWhile: "KwLoopWhile",
	KwBreak:     "KwBreak",
	KwContinue:  "KwContinue",
	KwSay:       "KwSay",
	KwGrab:      "KwGrab",
	KwLink:      "KwLink",
	KwFall:      "KwFall",
	KwOwn:       "KwOwn",
	KwTrace:     "KwTrace",
	KwLet:       "KwLet",
	KwConst:     "KwConst",
	KwType:      "KwType",
	KwStruct:    "KwStruct",
	KwEnum:      "KwEnum",
	KwImpl:      "KwImpl",
	KwTrait:     "KwTrait",
	KwFor:       "KwFor",
	KwIn:        "KwIn",
	KwWhile:     "KwWhile",
	KwMatch:     "KwMatch",
	KwAsync:     "KwAsync",
	KwAwait:     "KwAwait",
	KwSpawn:     "KwSpawn",
	KwTrue:      "KwTrue",
	KwFalse:     "KwFalse",
	KwNull:      "KwNull",
	KwAs:        "KwAs",
	KwIs:        "KwIs",
	KwImport:    "KwImport",
	KwFrom:      "KwFrom",
	KwI8:        "KwI8",
	KwI16:       "KwI16",
	KwI32:       "KwI32",
	KwI64:       "KwI64",
	KwU8:        "KwU8",
	KwU16:       "KwU16",
	KwU32:       "KwU32",
	KwU64:       "KwU64",
	KwF32:       "KwF32",
	KwF64:       "KwF64",
	KwBool:      "KwBool",
	KwChar:      "KwChar",
	KwStr:       "KwStr",
	KwVoid:      "KwVoid",
	Plus:        "Plus",
	Minus:       "Minus",
	Star:        "Star",
	Slash:       "Slash",
	Percent:     "Percent",
	Assign:      "Assign",
	PlusAssign:  "PlusAssign",
	MinusAssign: "MinusAssign",
	StarAssign:  "StarAssign",
	SlashAssign: "SlashAssign",
	EqEq:        "EqEq",
	Bang:        "Bang",
	BangEq:      "BangEq",
	Lt:          "Lt",
	LtEq:        "LtEq",
	Gt:          "Gt",
	GtEq:        "GtEq",
	Shl:         "Shl",
	Shr:         "Shr",
	Amp:         "Amp",
	Pipe:        "Pipe",
	Caret:       "Caret",
	Tilde:       "Tilde",
	AndAnd:      "AndAnd",
	OrOr:        "OrOr",
	Question:    "Question",
	Colon:       "Colon",
	ColonColon:  "ColonColon",
	Semicolon:   "Semicolon",
	Comma:       "Comma",
	Dot:         "Dot",
	Arrow:       "Arrow",
	FatArrow:    "FatArrow",
	LParen:      "LParen",
	RParen:      "RParen",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	LBracket:    "LBracket",
	RBracket:    "RBracket",
	At:          "At",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
