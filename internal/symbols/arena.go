package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"xypher/internal/ast"
	"xypher/internal/source"
)

type (
	// ScopeID identifies a scope; zero means none.
	ScopeID uint32
	// SymbolID identifies a symbol; zero means none.
	SymbolID uint32
)

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// slab is an append-only 1-based store; slot 0 is the sentinel.
type slab[T any] struct {
	items []T
	what  string
}

func newSlab[T any](what string, capacity, fallback uint32) slab[T] {
	if capacity == 0 {
		capacity = fallback
	}
	return slab[T]{items: make([]T, 1, capacity+1), what: what}
}

func (s *slab[T]) push(v T) uint32 {
	idx, err := safecast.Conv[uint32](len(s.items))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", s.what, err))
	}
	s.items = append(s.items, v)
	return idx
}

func (s *slab[T]) at(idx uint32) *T {
	if idx == 0 || int(idx) >= len(s.items) {
		return nil
	}
	return &s.items[idx]
}

func (s *slab[T]) count() int { return len(s.items) - 1 }

// Scopes keeps every scope ever entered, linked to its parent, so the
// table can be dumped after analysis.
type Scopes struct {
	slab slab[Scope]
}

func NewScopes(capacity uint32) *Scopes {
	return &Scopes{slab: newSlab[Scope]("scopes", capacity, 32)}
}

// New allocates a scope and registers it as a child of parent.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ast.StmtID, span source.Span) ScopeID {
	id := ScopeID(s.slab.push(Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID),
	}))
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

func (s *Scopes) Get(id ScopeID) *Scope { return s.slab.at(uint32(id)) }

// Len excludes the sentinel.
func (s *Scopes) Len() int { return s.slab.count() }

// Symbols stores declared symbols by value.
type Symbols struct {
	slab slab[Symbol]
}

func NewSymbols(capacity uint32) *Symbols {
	return &Symbols{slab: newSlab[Symbol]("symbols", capacity, 64)}
}

// New copies sym into the arena.
func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return SymbolID(s.slab.push(*sym))
}

func (s *Symbols) Get(id SymbolID) *Symbol { return s.slab.at(uint32(id)) }

// Len excludes the sentinel.
func (s *Symbols) Len() int { return s.slab.count() }
