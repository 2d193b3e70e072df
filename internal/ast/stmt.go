package ast

import (
	"xypher/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtVarDecl
	StmtBlock
	StmtReturn
	StmtIf
	StmtLoop
	StmtSay
	StmtTrace
	StmtFuncDecl
	StmtImport
	StmtBreak
	StmtContinue
)

func (k StmtKind) String() string {
	switch k {
	case StmtExpr:
		return "ExprStmt"
	case StmtVarDecl:
		return "VarDecl"
	case StmtBlock:
		return "Block"
	case StmtReturn:
		return "Return"
	case StmtIf:
		return "If"
	case StmtLoop:
		return "Loop"
	case StmtSay:
		return "Say"
	case StmtTrace:
		return "Trace"
	case StmtFuncDecl:
		return "FuncDecl"
	case StmtImport:
		return "Import"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	}
	return "Stmt(?)"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type ExprStmtData struct {
	Expr ExprID
}

// VarDeclData is shared by let, const and own declarations.
type VarDeclData struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID // NoTypeID when inferred
	Init     ExprID // NoExprID when absent
	IsConst  bool
	IsOwned  bool
}

type BlockData struct {
	Stmts []StmtID
}

type ReturnData struct {
	Value ExprID // NoExprID for bare `return;`
}

type IfData struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

// LoopForm records which surface syntax produced the loop.
type LoopForm uint8

const (
	LoopWhile LoopForm = iota // loopwhile (...)
	While                     // while (...)
	LoopFor                   // lowered from for (init; cond; step)
)

func (f LoopForm) String() string {
	switch f {
	case LoopWhile:
		return "loopwhile"
	case While:
		return "while"
	case LoopFor:
		return "for"
	}
	return "?"
}

// LoopData is a pre-test loop: the condition is checked before every
// iteration, body included.
type LoopData struct {
	Form LoopForm
	Cond ExprID
	Body StmtID
}

type SayData struct {
	Args []ExprID
}

type TraceData struct {
	Expr ExprID
}

type Param struct {
	Name source.StringID
	Span source.Span
	Type TypeID
}

type FuncDeclData struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []Param
	Return   TypeID // всегда задан: без стрелки парсер ставит void
	Body     StmtID
}

type ImportData struct {
	Module      source.StringID
	ModuleSpan  source.Span
	Library     source.StringID
	LibrarySpan source.Span
}
