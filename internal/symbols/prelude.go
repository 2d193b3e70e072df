package symbols

import "xypher/internal/types"

// builtinTypes are declared as SymbolType in the global scope so a type
// name used as a value resolves to something meaningful.
var builtinTypes = []types.Type{
	types.Void, types.Bool, types.Char, types.Str,
	types.I8, types.I16, types.I32, types.I64,
	types.U8, types.U16, types.U32, types.U64,
	types.F32, types.F64,
}

// DeclarePrelude declares the built-in type names in the current scope.
func (t *Table) DeclarePrelude() {
	for _, typ := range builtinTypes {
		t.Declare(Symbol{
			Name:  t.Strings.Intern(typ.String()),
			Kind:  SymbolType,
			Type:  typ,
			Flags: SymbolFlagBuiltin,
		})
	}
}
