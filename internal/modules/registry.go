// Package modules holds the import registry: the closed set of runtime
// modules a program can import and the functions each one exposes.
package modules

import (
	"slices"
	"sync"

	"xypher/internal/types"
)

const (
	// Core is always available without an import.
	Core = "core"
	// StdLibrary is the only source library accepted by `import ... from`.
	StdLibrary = "xystd"
)

// Function is one runtime entry point. Unchecked functions take raw
// pointers the language cannot spell, so only their result is typed.
type Function struct {
	Name    string
	Params  []types.Type
	Result  types.Type
	Checked bool
}

func fn(name string, result types.Type, params ...types.Type) Function {
	return Function{Name: name, Params: params, Result: result, Checked: true}
}

func unchecked(name string, result types.Type) Function {
	return Function{Name: name, Result: result}
}

// Registry maps module names to their functions. It is safe for concurrent
// reads; Extend takes the write lock.
type Registry struct {
	mu      sync.RWMutex
	modules map[string][]Function
}

// NewRegistry returns a registry preloaded with the standard modules.
func NewRegistry() *Registry {
	r := &Registry{modules: make(map[string][]Function)}
	r.modules[Core] = []Function{
		fn("xy_say_i32", types.Void, types.I32),
		fn("xy_say_i64", types.Void, types.I64),
		fn("xy_say_f32", types.Void, types.F32),
		fn("xy_say_f64", types.Void, types.F64),
		fn("xy_say_str", types.Void, types.Str),
		fn("xy_say_bool", types.Void, types.Bool),
		fn("xy_say_char", types.Void, types.Char),
		fn("xy_say_newline", types.Void),
		fn("xy_grab_i32", types.I32),
		fn("xy_grab_i64", types.I64),
		fn("xy_grab_str", types.Str),
	}
	r.modules["math"] = []Function{
		fn("xy_sqrt", types.F64, types.F64),
		fn("xy_pow", types.F64, types.F64, types.F64),
		fn("xy_sin", types.F64, types.F64),
		fn("xy_cos", types.F64, types.F64),
		fn("xy_tan", types.F64, types.F64),
		fn("xy_abs_f64", types.F64, types.F64),
		fn("xy_abs_i32", types.I32, types.I32),
		fn("xy_floor", types.F64, types.F64),
		fn("xy_ceil", types.F64, types.F64),
		fn("xy_round", types.F64, types.F64),
		fn("xy_min_i32", types.I32, types.I32, types.I32),
		fn("xy_max_i32", types.I32, types.I32, types.I32),
		fn("xy_min_f64", types.F64, types.F64, types.F64),
		fn("xy_max_f64", types.F64, types.F64, types.F64),
	}
	r.modules["string"] = []Function{
		fn("xy_strlen", types.I64, types.Str),
		fn("xy_strcat", types.Str, types.Str, types.Str),
		fn("xy_strcmp", types.I32, types.Str, types.Str),
	}
	r.modules["hashmap"] = []Function{
		unchecked("xy_hashmap_create", types.Void),
		unchecked("xy_hashmap_destroy", types.Void),
		unchecked("xy_hashmap_insert", types.I32),
		unchecked("xy_hashmap_get", types.Void),
		unchecked("xy_hashmap_remove", types.I32),
		unchecked("xy_hashmap_contains", types.I32),
		unchecked("xy_hashmap_size", types.I64),
		unchecked("xy_hashmap_clear", types.Void),
	}
	r.modules["time"] = []Function{
		fn("xy_time_ns", types.I64),
		fn("xy_time_us", types.I64),
		fn("xy_time_ms", types.I64),
		fn("xy_time_s", types.I64),
		fn("xy_sleep_ms", types.Void, types.I32),
	}
	r.modules["memory"] = []Function{
		unchecked("xy_alloc", types.Void),
		unchecked("xy_free", types.Void),
	}
	return r
}

// Functions returns a copy of the module's functions in registration
// order, or nil when the module is unknown.
func (r *Registry) Functions(module string) []Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.modules[module])
}

// Core returns the implicitly available functions.
func (r *Registry) Core() []Function {
	return r.Functions(Core)
}

// Has reports whether module can be imported.
func (r *Registry) Has(module string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modules[module]
	return ok
}

// Names lists the known modules, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup finds a function by name across all modules.
func (r *Registry) Lookup(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, fns := range r.modules {
		for _, f := range fns {
			if f.Name == name {
				return f, true
			}
		}
	}
	return Function{}, false
}

// Extend registers extra functions, creating the module when needed.
// A function whose name is already present in the module replaces it.
func (r *Registry) Extend(module string, fns ...Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.modules[module]
	for _, f := range fns {
		idx := slices.IndexFunc(existing, func(e Function) bool { return e.Name == f.Name })
		if idx >= 0 {
			existing[idx] = f
			continue
		}
		existing = append(existing, f)
	}
	r.modules[module] = existing
}

// SupportsLibrary reports whether `import ... from lib` names a known library.
func SupportsLibrary(lib string) bool {
	return lib == StdLibrary
}
