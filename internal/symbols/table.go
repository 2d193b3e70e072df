package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"xypher/internal/ast"
	"xypher/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table is a stack of lexical scopes over arena storage. EnterScope and
// ExitScope must be balanced by the caller.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	stack   []ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// EnterScope pushes a new scope nested in the current one.
func (t *Table) EnterScope(kind ScopeKind, owner ast.StmtID, span source.Span) ScopeID {
	id := t.Scopes.New(kind, t.Current(), owner, span)
	t.stack = append(t.stack, id)
	return id
}

// ExitScope pops the innermost scope. Popping an empty stack is a no-op
// returning NoScopeID.
func (t *Table) ExitScope() ScopeID {
	if len(t.stack) == 0 {
		return NoScopeID
	}
	top := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return top
}

// Current returns the innermost open scope.
func (t *Table) Current() ScopeID {
	if len(t.stack) == 0 {
		return NoScopeID
	}
	return t.stack[len(t.stack)-1]
}

// Depth reports how many scopes are open.
func (t *Table) Depth() int {
	return len(t.stack)
}

// Declare adds sym to the current scope. A name already declared in the
// same scope is rejected: the existing symbol is returned with false.
// Outer declarations are shadowed silently.
func (t *Table) Declare(sym Symbol) (SymbolID, bool) {
	scope := t.Scopes.Get(t.Current())
	if scope == nil {
		panic("symbols: Declare outside of any scope")
	}
	if prev, ok := scope.NameIndex[sym.Name]; ok {
		return prev, false
	}
	sym.Scope = t.Current()
	id := t.Symbols.New(&sym)
	scope.NameIndex[sym.Name] = id
	scope.Symbols = append(scope.Symbols, id)
	return id, true
}

// Lookup searches open scopes from innermost to outermost.
func (t *Table) Lookup(name source.StringID) (SymbolID, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if id, ok := t.Scopes.Get(t.stack[i]).NameIndex[name]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// LookupInCurrentScope restricts the search to the innermost scope.
func (t *Table) LookupInCurrentScope(name source.StringID) (SymbolID, bool) {
	scope := t.Scopes.Get(t.Current())
	if scope == nil {
		return NoSymbolID, false
	}
	id, ok := scope.NameIndex[name]
	return id, ok
}

// LookupName is Lookup by text; names never interned cannot be declared.
func (t *Table) LookupName(name string) (SymbolID, bool) {
	id, ok := t.Strings.Find(name)
	if !ok {
		return NoSymbolID, false
	}
	return t.Lookup(id)
}

// Get returns the stored symbol, nil for invalid IDs.
func (t *Table) Get(id SymbolID) *Symbol {
	return t.Symbols.Get(id)
}

// NameOf resolves the symbol's interned name.
func (t *Table) NameOf(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}
