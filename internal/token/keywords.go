package token

var keywords = map[string]Kind{
	"func":      KwFunc,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"loopwhile": KwLoopWhile,
	"break":     KwBreak,
	"continue":  KwContinue,
	"say":       KwSay,
	"grab":      KwGrab,
	"link":      KwLink,
	"fall":      KwFall,
	"own":       KwOwn,
	"trace":     KwTrace,
	"let":       KwLet,
	"const":     KwConst,
	"type":      KwType,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"impl":      KwImpl,
	"trait":     KwTrait,
	"for":       KwFor,
	"in":        KwIn,
	"while":     KwWhile,
	"match":     KwMatch,
	"async":     KwAsync,
	"await":     KwAwait,
	"spawn":     KwSpawn,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
	"as":        KwAs,
	"is":        KwIs,
	"import":    KwImport,
	"from":      KwFrom,

	"i8":   KwI8,
	"i16":  KwI16,
	"i32":  KwI32,
	"i64":  KwI64,
	"u8":   KwU8,
	"u16":  KwU16,
	"u32":  KwU32,
	"u64":  KwU64,
	"f32":  KwF32,
	"f64":  KwF64,
	"bool": KwBool,
	"char": KwChar,
	"str":  KwStr,
	"void": KwVoid,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
