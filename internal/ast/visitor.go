package ast

import "fmt"

// Visitor has exactly one method per node kind. Every traversal (dump,
// analysis, code generation) implements it in full, so adding a node kind
// breaks compilation of every visitor until it is handled.
//
// R is the per-traversal result: a type for the analyzer, an IR value for
// codegen, nothing for printers.
type Visitor[R any] interface {
	VisitIntLit(id ExprID, lit *ExprLiteralData) R
	VisitFloatLit(id ExprID, lit *ExprLiteralData) R
	VisitStringLit(id ExprID, lit *ExprLiteralData) R
	VisitCharLit(id ExprID, lit *ExprLiteralData) R
	VisitBoolLit(id ExprID, lit *ExprLiteralData) R
	VisitIdent(id ExprID, ident *ExprIdentData) R
	VisitBinary(id ExprID, bin *ExprBinaryData) R
	VisitUnary(id ExprID, un *ExprUnaryData) R
	VisitCall(id ExprID, call *ExprCallData) R

	VisitTypeName(id TypeID, t *TypeName) R

	VisitExprStmt(id StmtID, s *ExprStmtData) R
	VisitVarDecl(id StmtID, s *VarDeclData) R
	VisitBlock(id StmtID, s *BlockData) R
	VisitReturn(id StmtID, s *ReturnData) R
	VisitIf(id StmtID, s *IfData) R
	VisitLoop(id StmtID, s *LoopData) R
	VisitSay(id StmtID, s *SayData) R
	VisitTrace(id StmtID, s *TraceData) R
	VisitFuncDecl(id StmtID, s *FuncDeclData) R
	VisitImport(id StmtID, s *ImportData) R
	VisitBreak(id StmtID) R
	VisitContinue(id StmtID) R

	VisitFile(id FileID, f *File) R
}

// AcceptExpr dispatches an expression to v. Absent IDs yield the zero R
// without calling v.
func AcceptExpr[R any](b *Builder, id ExprID, v Visitor[R]) R {
	var zero R
	e := b.Exprs.Get(id)
	if e == nil {
		return zero
	}
	switch e.Kind {
	case ExprIntLit:
		return v.VisitIntLit(id, b.Exprs.Literals.Get(uint32(e.Payload)))
	case ExprFloatLit:
		return v.VisitFloatLit(id, b.Exprs.Literals.Get(uint32(e.Payload)))
	case ExprStringLit:
		return v.VisitStringLit(id, b.Exprs.Literals.Get(uint32(e.Payload)))
	case ExprCharLit:
		return v.VisitCharLit(id, b.Exprs.Literals.Get(uint32(e.Payload)))
	case ExprBoolLit:
		return v.VisitBoolLit(id, b.Exprs.Literals.Get(uint32(e.Payload)))
	case ExprIdent:
		return v.VisitIdent(id, b.Exprs.Idents.Get(uint32(e.Payload)))
	case ExprBinary:
		return v.VisitBinary(id, b.Exprs.Binaries.Get(uint32(e.Payload)))
	case ExprUnary:
		return v.VisitUnary(id, b.Exprs.Unaries.Get(uint32(e.Payload)))
	case ExprCall:
		return v.VisitCall(id, b.Exprs.Calls.Get(uint32(e.Payload)))
	}
	panic(fmt.Sprintf("ast: unhandled expression kind %v", e.Kind))
}

// AcceptType dispatches a type reference to v.
func AcceptType[R any](b *Builder, id TypeID, v Visitor[R]) R {
	var zero R
	t := b.Types.Get(id)
	if t == nil {
		return zero
	}
	return v.VisitTypeName(id, t)
}

// AcceptStmt dispatches a statement to v. Absent IDs yield the zero R.
func AcceptStmt[R any](b *Builder, id StmtID, v Visitor[R]) R {
	var zero R
	s := b.Stmts.Get(id)
	if s == nil {
		return zero
	}
	p := uint32(s.Payload)
	switch s.Kind {
	case StmtExpr:
		return v.VisitExprStmt(id, b.Stmts.Exprs.Get(p))
	case StmtVarDecl:
		return v.VisitVarDecl(id, b.Stmts.VarDecls.Get(p))
	case StmtBlock:
		return v.VisitBlock(id, b.Stmts.Blocks.Get(p))
	case StmtReturn:
		return v.VisitReturn(id, b.Stmts.Returns.Get(p))
	case StmtIf:
		return v.VisitIf(id, b.Stmts.Ifs.Get(p))
	case StmtLoop:
		return v.VisitLoop(id, b.Stmts.Loops.Get(p))
	case StmtSay:
		return v.VisitSay(id, b.Stmts.Says.Get(p))
	case StmtTrace:
		return v.VisitTrace(id, b.Stmts.Traces.Get(p))
	case StmtFuncDecl:
		return v.VisitFuncDecl(id, b.Stmts.FuncDecls.Get(p))
	case StmtImport:
		return v.VisitImport(id, b.Stmts.Imports.Get(p))
	case StmtBreak:
		return v.VisitBreak(id)
	case StmtContinue:
		return v.VisitContinue(id)
	}
	panic(fmt.Sprintf("ast: unhandled statement kind %v", s.Kind))
}

// AcceptFile dispatches the program root to v.
func AcceptFile[R any](b *Builder, id FileID, v Visitor[R]) R {
	var zero R
	f := b.Files.Get(id)
	if f == nil {
		return zero
	}
	return v.VisitFile(id, f)
}
