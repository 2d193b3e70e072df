package symbols

import (
	"testing"

	"xypher/internal/ast"
	"xypher/internal/source"
	"xypher/internal/types"
)

func declareVar(t *testing.T, table *Table, name string, typ types.Type) (SymbolID, bool) {
	t.Helper()
	return table.Declare(Symbol{
		Name: table.Strings.Intern(name),
		Kind: SymbolVariable,
		Type: typ,
	})
}

func TestShadowingAcrossScopes(t *testing.T) {
	table := NewTable(Hints{}, nil)
	table.EnterScope(ScopeGlobal, ast.NoStmtID, source.Span{})

	outer, ok := declareVar(t, table, "x", types.I32)
	if !ok {
		t.Fatal("first declaration must succeed")
	}

	table.EnterScope(ScopeBlock, ast.NoStmtID, source.Span{})
	inner, ok := declareVar(t, table, "x", types.Bool)
	if !ok {
		t.Fatal("shadowing an outer declaration must succeed")
	}
	if got, _ := table.LookupName("x"); got != inner {
		t.Fatalf("lookup must find the innermost symbol, got %d", got)
	}

	prev, ok := declareVar(t, table, "x", types.F64)
	if ok {
		t.Fatal("redeclaration in the same scope must be rejected")
	}
	if prev != inner {
		t.Errorf("rejection must return the existing symbol, got %d", prev)
	}

	table.ExitScope()
	if got, _ := table.LookupName("x"); got != outer {
		t.Fatalf("after exit the outer symbol must be visible, got %d", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLookupInCurrentScope(t *testing.T) {
	table := NewTable(Hints{}, nil)
	table.EnterScope(ScopeGlobal, ast.NoStmtID, source.Span{})
	declareVar(t, table, "g", types.I32)
	table.EnterScope(ScopeFunction, ast.NoStmtID, source.Span{})

	name := table.Strings.Intern("g")
	if _, ok := table.LookupInCurrentScope(name); ok {
		t.Error("outer symbol must not be visible in current-scope lookup")
	}
	if _, ok := table.Lookup(name); !ok {
		t.Error("outer symbol must be visible in full lookup")
	}
	if _, ok := table.LookupName("never-interned"); ok {
		t.Error("unknown names must not resolve")
	}
	if table.Depth() != 2 {
		t.Errorf("depth = %d", table.Depth())
	}
}

func TestSymbolsAreCopiedOnDeclare(t *testing.T) {
	table := NewTable(Hints{}, nil)
	table.EnterScope(ScopeGlobal, ast.NoStmtID, source.Span{})

	sym := Symbol{Name: table.Strings.Intern("c"), Kind: SymbolVariable, Type: types.I64, Flags: SymbolFlagConst}
	id, _ := table.Declare(sym)
	sym.Type = types.Bool

	stored := table.Get(id)
	if stored.Type != types.I64 || !stored.IsConst() || stored.IsOwned() {
		t.Fatalf("stored symbol changed with the caller's copy: %+v", stored)
	}
	if stored.Scope != table.Current() {
		t.Error("scope must be filled in on declare")
	}
	if table.NameOf(id) != "c" {
		t.Errorf("NameOf = %q", table.NameOf(id))
	}
}

func TestScopesOutliveExit(t *testing.T) {
	table := NewTable(Hints{}, nil)
	global := table.EnterScope(ScopeGlobal, ast.NoStmtID, source.Span{})
	fn := table.EnterScope(ScopeFunction, ast.StmtID(3), source.Span{})
	table.ExitScope()
	table.ExitScope()

	if table.ExitScope() != NoScopeID {
		t.Error("popping an empty stack must be a no-op")
	}
	if table.Scopes.Len() != 2 {
		t.Fatalf("scopes must be retained, got %d", table.Scopes.Len())
	}
	g := table.Scopes.Get(global)
	if len(g.Children) != 1 || g.Children[0] != fn {
		t.Error("child link missing")
	}
	if table.Scopes.Get(fn).Owner != ast.StmtID(3) {
		t.Error("owner not recorded")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestBuildFunctionSignature(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	intern := b.StringsInterner.Intern
	fn := &ast.FuncDeclData{
		Name: intern("add"),
		Params: []ast.Param{
			{Name: intern("a"), Type: b.Types.New(source.Span{}, intern("i32"))},
			{Name: intern("b"), Type: b.Types.New(source.Span{}, intern("f64"))},
		},
		Return: b.Types.New(source.Span{}, intern("i64")),
	}
	sig := BuildFunctionSignature(b, fn)
	if !sig.Checked || len(sig.Params) != 2 || sig.Params[1] != types.F64 || sig.Result != types.I64 {
		t.Fatalf("unexpected signature %s", sig)
	}
	if got := sig.String(); got != "(i32, f64) -> i64" {
		t.Errorf("String() = %q", got)
	}
}

func TestDeclarePrelude(t *testing.T) {
	table := NewTable(Hints{}, nil)
	table.EnterScope(ScopeGlobal, ast.NoStmtID, source.Span{})
	table.DeclarePrelude()

	id, ok := table.LookupName("f32")
	if !ok {
		t.Fatal("f32 must be declared")
	}
	sym := table.Get(id)
	if sym.Kind != SymbolType || sym.Type != types.F32 || sym.Flags&SymbolFlagBuiltin == 0 {
		t.Errorf("unexpected prelude symbol %+v", sym)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
