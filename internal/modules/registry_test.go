package modules

import (
	"slices"
	"testing"

	"xypher/internal/types"
)

func TestRegistryKnowsStandardModules(t *testing.T) {
	r := NewRegistry()
	want := []string{"core", "hashmap", "math", "memory", "string", "time"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for _, name := range want {
		if !r.Has(name) || len(r.Functions(name)) == 0 {
			t.Errorf("module %q missing or empty", name)
		}
	}
	if r.Has("network") || r.Functions("network") != nil {
		t.Error("unknown module must be absent")
	}
}

func TestCoreFunctions(t *testing.T) {
	core := NewRegistry().Core()
	if core[0].Name != "xy_say_i32" {
		t.Errorf("core must keep registration order, first is %s", core[0].Name)
	}
	idx := slices.IndexFunc(core, func(f Function) bool { return f.Name == "xy_grab_i64" })
	if idx < 0 || core[idx].Result != types.I64 || len(core[idx].Params) != 0 {
		t.Fatal("xy_grab_i64 must return i64 and take no arguments")
	}
}

func TestLookupAndCheckedSignatures(t *testing.T) {
	r := NewRegistry()
	pow, ok := r.Lookup("xy_pow")
	if !ok || !pow.Checked || len(pow.Params) != 2 || pow.Result != types.F64 {
		t.Fatalf("unexpected xy_pow: %+v", pow)
	}
	alloc, ok := r.Lookup("xy_alloc")
	if !ok || alloc.Checked {
		t.Fatal("pointer-taking functions stay unchecked")
	}
	if _, ok := r.Lookup("printf"); ok {
		t.Error("unknown function resolved")
	}
}

func TestExtendAddsAndReplaces(t *testing.T) {
	r := NewRegistry()
	r.Extend("game", Function{Name: "g_tick", Result: types.Void, Checked: true})
	if !r.Has("game") {
		t.Fatal("Extend must create the module")
	}
	r.Extend("math", Function{Name: "xy_sqrt", Result: types.F32, Params: []types.Type{types.F32}, Checked: true})
	sqrt, _ := r.Lookup("xy_sqrt")
	if sqrt.Result != types.F32 {
		t.Error("Extend must replace an existing function")
	}
	if n := len(r.Functions("math")); n != 14 {
		t.Errorf("math has %d functions after replace, want 14", n)
	}
}

func TestFunctionsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	fns := r.Functions("time")
	fns[0].Name = "mutated"
	if r.Functions("time")[0].Name != "xy_time_ns" {
		t.Error("callers must not alias registry storage")
	}
}

func TestSupportsLibrary(t *testing.T) {
	if !SupportsLibrary("xystd") || SupportsLibrary("libc") {
		t.Error("only xystd is supported")
	}
}
