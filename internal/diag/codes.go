package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadChar                  Code = 1005

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynExpectColon      Code = 2006
	SynExpectLParen     Code = 2007
	SynUnclosedParen    Code = 2008
	SynExpectLBrace     Code = 2009
	SynUnclosedBrace    Code = 2010
	SynExpectFrom       Code = 2011
	SynExpectLibrary    Code = 2012
	SynTooManyErrors    Code = 2013
	SynStalled          Code = 2014

	// Семантические
	SemaInfo                  Code = 3000
	SemaError                 Code = 3001
	SemaDuplicateSymbol       Code = 3002
	SemaUnresolvedSymbol      Code = 3003
	SemaTypeMismatch          Code = 3004
	SemaInvalidBinaryOperands Code = 3005
	SemaInvalidUnaryOperand   Code = 3006
	SemaNotCallable           Code = 3007
	SemaArgCountMismatch      Code = 3008
	SemaArgTypeMismatch       Code = 3009
	SemaInvalidAssignTarget   Code = 3010
	SemaAssignToConst         Code = 3011
	SemaMissingTypeOrInit     Code = 3012
	SemaConstWithoutInit      Code = 3013
	SemaMissingReturnValue    Code = 3014
	SemaUnexpectedReturnValue Code = 3015
	SemaReturnOutsideFunction Code = 3016
	SemaNonBoolCondition      Code = 3017
	SemaBreakOutsideLoop      Code = 3018
	SemaUnknownModule         Code = 3019
	SemaUnsupportedLibrary    Code = 3020
	SemaUnknownType           Code = 3021

	// Окружение: файлы, кэш, манифест, кодоген
	IOLoadFileError Code = 4001
	IOManifestError Code = 4002
	IOCacheError    Code = 4003
	IOEmitError     Code = 4004
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexBadChar:                  "Malformed character literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Missing semicolon",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type name",
	SynExpectExpression:         "Expected expression",
	SynExpectColon:              "Expected colon",
	SynExpectLParen:             "Expected opening parenthesis",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynExpectLBrace:             "Expected opening brace",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectFrom:               "Expected 'from' in import",
	SynExpectLibrary:            "Expected library name in import",
	SynTooManyErrors:            "Too many errors",
	SynStalled:                  "Parser made no progress",
	SemaInfo:                    "Semantic information",
	SemaError:                   "Semantic error",
	SemaDuplicateSymbol:         "Duplicate symbol",
	SemaUnresolvedSymbol:        "Unresolved symbol",
	SemaTypeMismatch:            "Type mismatch",
	SemaInvalidBinaryOperands:   "Invalid binary operands",
	SemaInvalidUnaryOperand:     "Invalid unary operand",
	SemaNotCallable:             "Callee is not a function",
	SemaArgCountMismatch:        "Argument count mismatch",
	SemaArgTypeMismatch:         "Argument type mismatch",
	SemaInvalidAssignTarget:     "Invalid assignment target",
	SemaAssignToConst:           "Assignment to constant",
	SemaMissingTypeOrInit:       "Missing type and initializer",
	SemaConstWithoutInit:        "Constant without initializer",
	SemaMissingReturnValue:      "Missing return value",
	SemaUnexpectedReturnValue:   "Unexpected return value",
	SemaReturnOutsideFunction:   "Return outside function",
	SemaNonBoolCondition:        "Non-boolean condition",
	SemaBreakOutsideLoop:        "Loop control outside loop",
	SemaUnknownModule:           "Unknown module",
	SemaUnsupportedLibrary:      "Unsupported library",
	SemaUnknownType:             "Unknown type",
	IOLoadFileError:             "I/O load file error",
	IOManifestError:             "Manifest error",
	IOCacheError:                "Cache error",
	IOEmitError:                 "Code generation error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
