package ast

import (
	"xypher/internal/source"
)

// Stmts manages allocation of statements and their payloads.
type Stmts struct {
	Arena     *Arena[Stmt]
	Exprs     *Arena[ExprStmtData]
	VarDecls  *Arena[VarDeclData]
	Blocks    *Arena[BlockData]
	Returns   *Arena[ReturnData]
	Ifs       *Arena[IfData]
	Loops     *Arena[LoopData]
	Says      *Arena[SayData]
	Traces    *Arena[TraceData]
	FuncDecls *Arena[FuncDeclData]
	Imports   *Arena[ImportData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Exprs:     NewArena[ExprStmtData](capHint / 2),
		VarDecls:  NewArena[VarDeclData](capHint / 2),
		Blocks:    NewArena[BlockData](capHint / 4),
		Returns:   NewArena[ReturnData](small),
		Ifs:       NewArena[IfData](small),
		Loops:     NewArena[LoopData](small),
		Says:      NewArena[SayData](small),
		Traces:    NewArena[TraceData](small),
		FuncDecls: NewArena[FuncDeclData](small),
		Imports:   NewArena[ImportData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// payload returns the payload index when id refers to a statement of kind k.
func (s *Stmts) payload(id StmtID, k StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != k {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	p := s.Exprs.Allocate(ExprStmtData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(p))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmtData, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewVarDecl(span source.Span, data VarDeclData) StmtID {
	p := s.VarDecls.Allocate(data)
	return s.new(StmtVarDecl, span, PayloadID(p))
}

func (s *Stmts) VarDecl(id StmtID) (*VarDeclData, bool) {
	p, ok := s.payload(id, StmtVarDecl)
	if !ok {
		return nil, false
	}
	return s.VarDecls.Get(p), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	p := s.Blocks.Allocate(BlockData{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, span, PayloadID(p))
}

func (s *Stmts) Block(id StmtID) (*BlockData, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	p := s.Returns.Allocate(ReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(p))
}

func (s *Stmts) Return(id StmtID) (*ReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	p := s.Ifs.Allocate(IfData{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, span, PayloadID(p))
}

func (s *Stmts) If(id StmtID) (*IfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewLoop(span source.Span, form LoopForm, cond ExprID, body StmtID) StmtID {
	p := s.Loops.Allocate(LoopData{Form: form, Cond: cond, Body: body})
	return s.new(StmtLoop, span, PayloadID(p))
}

func (s *Stmts) Loop(id StmtID) (*LoopData, bool) {
	p, ok := s.payload(id, StmtLoop)
	if !ok {
		return nil, false
	}
	return s.Loops.Get(p), true
}

func (s *Stmts) NewSay(span source.Span, args []ExprID) StmtID {
	p := s.Says.Allocate(SayData{Args: append([]ExprID(nil), args...)})
	return s.new(StmtSay, span, PayloadID(p))
}

func (s *Stmts) Say(id StmtID) (*SayData, bool) {
	p, ok := s.payload(id, StmtSay)
	if !ok {
		return nil, false
	}
	return s.Says.Get(p), true
}

func (s *Stmts) NewTrace(span source.Span, expr ExprID) StmtID {
	p := s.Traces.Allocate(TraceData{Expr: expr})
	return s.new(StmtTrace, span, PayloadID(p))
}

func (s *Stmts) Trace(id StmtID) (*TraceData, bool) {
	p, ok := s.payload(id, StmtTrace)
	if !ok {
		return nil, false
	}
	return s.Traces.Get(p), true
}

func (s *Stmts) NewFuncDecl(span source.Span, data FuncDeclData) StmtID {
	data.Params = append([]Param(nil), data.Params...)
	p := s.FuncDecls.Allocate(data)
	return s.new(StmtFuncDecl, span, PayloadID(p))
}

func (s *Stmts) FuncDecl(id StmtID) (*FuncDeclData, bool) {
	p, ok := s.payload(id, StmtFuncDecl)
	if !ok {
		return nil, false
	}
	return s.FuncDecls.Get(p), true
}

func (s *Stmts) NewImport(span source.Span, data ImportData) StmtID {
	p := s.Imports.Allocate(data)
	return s.new(StmtImport, span, PayloadID(p))
}

func (s *Stmts) Import(id StmtID) (*ImportData, bool) {
	p, ok := s.payload(id, StmtImport)
	if !ok {
		return nil, false
	}
	return s.Imports.Get(p), true
}

func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}
