package symbols

import (
	"xypher/internal/ast"
	"xypher/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // верхний уровень программы, сюда же core и импорты
	ScopeFunction           // параметры и тело функции
	ScopeBlock              // generic block scope
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy. Scopes stay
// in the arena after ExitScope so the final table can still be dumped.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ast.StmtID // функция или блок; NoStmtID для глобального
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}
