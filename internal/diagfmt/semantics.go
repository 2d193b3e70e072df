package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"

	"xypher/internal/source"
	"xypher/internal/symbols"
)

// SemanticsOutput is a flat dump of a symbol table.
type SemanticsOutput struct {
	Scopes  []ScopeJSON  `json:"scopes"`
	Symbols []SymbolJSON `json:"symbols"`
}

type ScopeJSON struct {
	ID     uint32      `json:"id"`
	Kind   string      `json:"kind"`
	Parent uint32      `json:"parent,omitempty"`
	Owner  uint32      `json:"owner_stmt,omitempty"`
	Span   source.Span `json:"span"`
}

type SymbolJSON struct {
	ID        uint32      `json:"id"`
	Name      string      `json:"name"`
	Kind      string      `json:"kind"`
	Type      string      `json:"type"`
	Signature string      `json:"signature,omitempty"`
	Scope     uint32      `json:"scope"`
	Span      source.Span `json:"span"`
	Flags     []string    `json:"flags,omitempty"`
}

// BuildSemanticsOutput collects scopes and symbols. Built-in symbols are
// skipped unless includeBuiltins is set.
func BuildSemanticsOutput(table *symbols.Table, includeBuiltins bool) SemanticsOutput {
	var out SemanticsOutput
	if table == nil {
		return out
	}
	out.Scopes = make([]ScopeJSON, 0, table.Scopes.Len())
	for i := 1; i <= table.Scopes.Len(); i++ {
		id := symbols.ScopeID(mustU32(i))
		sc := table.Scopes.Get(id)
		out.Scopes = append(out.Scopes, ScopeJSON{
			ID:     uint32(id),
			Kind:   sc.Kind.String(),
			Parent: uint32(sc.Parent),
			Owner:  uint32(sc.Owner),
			Span:   sc.Span,
		})
	}
	for i := 1; i <= table.Symbols.Len(); i++ {
		id := symbols.SymbolID(mustU32(i))
		sym := table.Get(id)
		if sym.Flags&symbols.SymbolFlagBuiltin != 0 && !includeBuiltins {
			continue
		}
		sj := SymbolJSON{
			ID:    uint32(id),
			Name:  table.NameOf(id),
			Kind:  sym.Kind.String(),
			Type:  sym.Type.String(),
			Scope: uint32(sym.Scope),
			Span:  sym.Span,
			Flags: sym.Flags.Strings(),
		}
		if sym.Signature != nil {
			sj.Signature = sym.Signature.String()
		}
		out.Symbols = append(out.Symbols, sj)
	}
	return out
}

// SemanticsJSON writes the symbol table dump as indented JSON.
func SemanticsJSON(w io.Writer, table *symbols.Table, includeBuiltins bool) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSemanticsOutput(table, includeBuiltins))
}

// FormatSymbolsPretty prints one symbol per line, grouped by scope.
func FormatSymbolsPretty(w io.Writer, table *symbols.Table, fs *source.FileSet) error {
	out := BuildSemanticsOutput(table, false)
	for _, sc := range out.Scopes {
		if _, err := fmt.Fprintf(w, "scope #%d %s (parent #%d, span: %s)\n", sc.ID, sc.Kind, sc.Parent, formatSpan(sc.Span, fs)); err != nil {
			return err
		}
		for _, sym := range out.Symbols {
			if sym.Scope != sc.ID {
				continue
			}
			typ := sym.Type
			if sym.Signature != "" {
				typ = sym.Signature
			}
			fmt.Fprintf(w, "  %-8s %-16s %s", sym.Kind, sym.Name, typ) //nolint:errcheck
			if len(sym.Flags) > 0 {
				fmt.Fprintf(w, " %v", sym.Flags) //nolint:errcheck
			}
			fmt.Fprintln(w) //nolint:errcheck
		}
	}
	return nil
}

func mustU32(i int) uint32 {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("index overflow: %w", err))
	}
	return v
}
