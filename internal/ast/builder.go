package ast

import (
	"xypher/internal/source"
)

type Hints struct{ Files, Stmts, Exprs, Types uint }

// Builder owns every arena of one parse. Nodes reference children only by
// ID, so the tree has no back-references and no sharing.
type Builder struct {
	Files           *Files
	Stmts           *Stmts
	Exprs           *Exprs
	Types           *Types
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		Types:           NewTypes(hints.Types),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// PushDecl appends a top-level declaration to the file.
func (b *Builder) PushDecl(file FileID, decl StmtID) {
	f := b.Files.Get(file)
	if f == nil || !decl.IsValid() {
		return
	}
	f.Decls = append(f.Decls, decl)
}

// Name resolves an interned identifier or literal text.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}

// ExprSpan returns the span of an expression, zero span for absent ones.
func (b *Builder) ExprSpan(id ExprID) source.Span {
	if e := b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

// StmtSpan returns the span of a statement, zero span for absent ones.
func (b *Builder) StmtSpan(id StmtID) source.Span {
	if s := b.Stmts.Get(id); s != nil {
		return s.Span
	}
	return source.Span{}
}

// TypeName resolves a type reference to its written name, "" when absent.
func (b *Builder) TypeName(id TypeID) string {
	if t := b.Types.Get(id); t != nil {
		return b.Name(t.Name)
	}
	return ""
}
