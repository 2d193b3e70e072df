package symbols

import (
	"xypher/internal/source"
	"xypher/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
	SymbolType
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	case SymbolParam:
		return "param"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagConst SymbolFlags = 1 << iota
	SymbolFlagOwned
	SymbolFlagImported
	SymbolFlagBuiltin
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagConst != 0 {
		labels = append(labels, "const")
	}
	if f&SymbolFlagOwned != 0 {
		labels = append(labels, "owned")
	}
	if f&SymbolFlagImported != 0 {
		labels = append(labels, "imported")
	}
	if f&SymbolFlagBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	return labels
}

// Symbol describes a named entity available in a scope. Declare copies it
// into the arena; the caller's value is never aliased.
type Symbol struct {
	Name      source.StringID
	Kind      SymbolKind
	Type      types.Type // для функций — тип результата
	Scope     ScopeID    // заполняется при Declare
	Span      source.Span
	Flags     SymbolFlags
	Signature *FunctionSignature // только для функций
}

func (s *Symbol) IsConst() bool { return s.Flags&SymbolFlagConst != 0 }
func (s *Symbol) IsOwned() bool { return s.Flags&SymbolFlagOwned != 0 }
