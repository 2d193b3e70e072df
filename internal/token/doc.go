// Package token defines lexical token kinds for the Xypher compiler.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Primitive type names (i32, f64, str, ...) are keywords, everything
//     else that looks like a name is an Ident.
//   - Comments and whitespace never appear in the token stream.
package token
