package symbols

import (
	"strings"

	"xypher/internal/ast"
	"xypher/internal/source"
	"xypher/internal/types"
)

// FunctionSignature captures a simplified view of a function signature.
// Unchecked signatures (runtime functions taking raw pointers) only carry
// the result type; calls to them are not matched argument by argument.
type FunctionSignature struct {
	Params     []types.Type
	ParamNames []source.StringID
	Result     types.Type
	Checked    bool
}

// BuildFunctionSignature derives the signature of a parsed function.
func BuildFunctionSignature(builder *ast.Builder, fn *ast.FuncDeclData) *FunctionSignature {
	if builder == nil || fn == nil {
		return nil
	}
	sig := &FunctionSignature{
		Params:     make([]types.Type, 0, len(fn.Params)),
		ParamNames: make([]source.StringID, 0, len(fn.Params)),
		Result:     types.FromName(builder.TypeName(fn.Return)),
		Checked:    true,
	}
	for _, p := range fn.Params {
		sig.Params = append(sig.Params, types.FromName(builder.TypeName(p.Type)))
		sig.ParamNames = append(sig.ParamNames, p.Name)
	}
	return sig
}

// String renders the signature as `(i32, f64) -> i32`.
func (s *FunctionSignature) String() string {
	if s == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	if !s.Checked {
		sb.WriteString("...")
	}
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(s.Result.String())
	return sb.String()
}
