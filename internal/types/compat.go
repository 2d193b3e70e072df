package types

// Compatible: identical types, or both numeric. Numeric coercion is
// implicit; bool, char and str never convert.
func Compatible(a, b Type) bool {
	if a == b {
		return true
	}
	return a.IsNumeric() && b.IsNumeric()
}

// CommonType returns the promoted type of two operands.
//   - any float wins over integers; f64 wins over f32
//   - integers: i64, then u64, then i32, then u32; narrower pairs give i32
//
// Non-numeric mismatches return a unchanged; callers check Compatible first.
func CommonType(a, b Type) Type {
	if a == b {
		return a
	}
	if a.IsFloat() || b.IsFloat() {
		if a == F64 || b == F64 {
			return F64
		}
		return F32
	}
	if a.IsInteger() && b.IsInteger() {
		for _, t := range [...]Type{I64, U64, I32, U32} {
			if a == t || b == t {
				return t
			}
		}
		return I32
	}
	return a
}

// CanImplicitlyCast: identity or numeric to numeric.
func CanImplicitlyCast(from, to Type) bool {
	if from == to {
		return true
	}
	return from.IsNumeric() && to.IsNumeric()
}

// CanExplicitlyCast currently accepts exactly what CanImplicitlyCast does.
func CanExplicitlyCast(from, to Type) bool {
	return CanImplicitlyCast(from, to)
}
