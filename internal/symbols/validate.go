package symbols

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks the structural invariants of the arenas and the open
// scope stack, joining every problem it finds.
func (t *Table) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	for idx := 1; idx <= t.Scopes.Len(); idx++ {
		id := ScopeID(idx)
		scope := t.Scopes.Get(id)
		if scope.Kind == ScopeInvalid {
			bad("scope %d has invalid kind", id)
		}
		if scope.Parent.IsValid() {
			parent := t.Scopes.Get(scope.Parent)
			switch {
			case parent == nil || scope.Parent == id:
				bad("scope %d has invalid parent %d", id, scope.Parent)
			case !slices.Contains(parent.Children, id):
				bad("scope %d parent %d missing backlink", id, scope.Parent)
			}
		}
		for _, childID := range scope.Children {
			if child := t.Scopes.Get(childID); child == nil || child.Parent != id {
				bad("scope %d child %d missing parent backlink", id, childID)
			}
		}
		// индекс имён и список символов описывают одно множество
		if len(scope.NameIndex) != len(scope.Symbols) {
			bad("scope %d indexes %d names for %d symbols", id, len(scope.NameIndex), len(scope.Symbols))
		}
		for name, symID := range scope.NameIndex {
			if !slices.Contains(scope.Symbols, symID) {
				bad("scope %d name index %d references missing symbol %d", id, name, symID)
			}
		}
	}

	for idx := 1; idx <= t.Symbols.Len(); idx++ {
		id := SymbolID(idx)
		sym := t.Symbols.Get(id)
		scope := t.Scopes.Get(sym.Scope)
		if scope == nil {
			bad("symbol %d has invalid scope %d", id, sym.Scope)
			continue
		}
		if !slices.Contains(scope.Symbols, id) {
			bad("symbol %d is missing from scope %d list", id, sym.Scope)
		}
	}

	for i, id := range t.stack {
		scope := t.Scopes.Get(id)
		if scope == nil {
			bad("open scope %d does not exist", id)
			continue
		}
		if i > 0 && scope.Parent != t.stack[i-1] {
			bad("open scope %d is not nested in %d", id, t.stack[i-1])
		}
	}
	return errors.Join(errs...)
}
