package ast

import (
	"testing"

	"xypher/internal/source"
)

// kindRecorder returns the name of the handler that was invoked.
type kindRecorder struct{}

func (kindRecorder) VisitIntLit(ExprID, *ExprLiteralData) string    { return "IntLit" }
func (kindRecorder) VisitFloatLit(ExprID, *ExprLiteralData) string  { return "FloatLit" }
func (kindRecorder) VisitStringLit(ExprID, *ExprLiteralData) string { return "StringLit" }
func (kindRecorder) VisitCharLit(ExprID, *ExprLiteralData) string   { return "CharLit" }
func (kindRecorder) VisitBoolLit(ExprID, *ExprLiteralData) string   { return "BoolLit" }
func (kindRecorder) VisitIdent(ExprID, *ExprIdentData) string       { return "Ident" }
func (kindRecorder) VisitBinary(ExprID, *ExprBinaryData) string     { return "Binary" }
func (kindRecorder) VisitUnary(ExprID, *ExprUnaryData) string       { return "Unary" }
func (kindRecorder) VisitCall(ExprID, *ExprCallData) string         { return "Call" }
func (kindRecorder) VisitTypeName(TypeID, *TypeName) string         { return "TypeName" }
func (kindRecorder) VisitExprStmt(StmtID, *ExprStmtData) string     { return "ExprStmt" }
func (kindRecorder) VisitVarDecl(StmtID, *VarDeclData) string       { return "VarDecl" }
func (kindRecorder) VisitBlock(StmtID, *BlockData) string           { return "Block" }
func (kindRecorder) VisitReturn(StmtID, *ReturnData) string         { return "Return" }
func (kindRecorder) VisitIf(StmtID, *IfData) string                 { return "If" }
func (kindRecorder) VisitLoop(StmtID, *LoopData) string             { return "Loop" }
func (kindRecorder) VisitSay(StmtID, *SayData) string               { return "Say" }
func (kindRecorder) VisitTrace(StmtID, *TraceData) string           { return "Trace" }
func (kindRecorder) VisitFuncDecl(StmtID, *FuncDeclData) string     { return "FuncDecl" }
func (kindRecorder) VisitImport(StmtID, *ImportData) string         { return "Import" }
func (kindRecorder) VisitBreak(StmtID) string                       { return "Break" }
func (kindRecorder) VisitContinue(StmtID) string                    { return "Continue" }
func (kindRecorder) VisitFile(FileID, *File) string                 { return "File" }

func TestAcceptDispatchesEveryExprKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{}
	one := b.Exprs.NewLiteral(sp, ExprIntLit, ExprLiteralData{Raw: b.StringsInterner.Intern("1")})
	x := b.Exprs.NewIdent(sp, b.StringsInterner.Intern("x"))

	exprs := map[ExprID]string{
		one: "IntLit",
		b.Exprs.NewLiteral(sp, ExprFloatLit, ExprLiteralData{}):         "FloatLit",
		b.Exprs.NewLiteral(sp, ExprStringLit, ExprLiteralData{}):        "StringLit",
		b.Exprs.NewLiteral(sp, ExprCharLit, ExprLiteralData{}):          "CharLit",
		b.Exprs.NewLiteral(sp, ExprBoolLit, ExprLiteralData{Bool: true}): "BoolLit",
		x:                                 "Ident",
		b.Exprs.NewBinary(sp, OpAdd, x, one): "Binary",
		b.Exprs.NewUnary(sp, OpNeg, one):     "Unary",
		b.Exprs.NewCall(sp, x, []ExprID{one}): "Call",
	}
	for id, want := range exprs {
		if got := AcceptExpr[string](b, id, kindRecorder{}); got != want {
			t.Errorf("expr %d: got %q, want %q", id, got, want)
		}
	}
	if got := AcceptExpr[string](b, NoExprID, kindRecorder{}); got != "" {
		t.Errorf("absent expression must not be visited, got %q", got)
	}
}

func TestAcceptDispatchesEveryStmtKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{}
	e := b.Exprs.NewIdent(sp, b.StringsInterner.Intern("x"))
	body := b.Stmts.NewBlock(sp, nil)

	stmts := map[StmtID]string{
		b.Stmts.NewExpr(sp, e):                       "ExprStmt",
		b.Stmts.NewVarDecl(sp, VarDeclData{Init: e}): "VarDecl",
		body:                                         "Block",
		b.Stmts.NewReturn(sp, NoExprID):              "Return",
		b.Stmts.NewIf(sp, e, body, NoStmtID):         "If",
		b.Stmts.NewLoop(sp, While, e, body):          "Loop",
		b.Stmts.NewSay(sp, []ExprID{e}):              "Say",
		b.Stmts.NewTrace(sp, e):                      "Trace",
		b.Stmts.NewFuncDecl(sp, FuncDeclData{Body: body}): "FuncDecl",
		b.Stmts.NewImport(sp, ImportData{}):          "Import",
		b.Stmts.NewBreak(sp):                         "Break",
		b.Stmts.NewContinue(sp):                     "Continue",
	}
	for id, want := range stmts {
		if got := AcceptStmt[string](b, id, kindRecorder{}); got != want {
			t.Errorf("stmt %d: got %q, want %q", id, got, want)
		}
	}

	file := b.NewFile(sp)
	if got := AcceptFile[string](b, file, kindRecorder{}); got != "File" {
		t.Errorf("file: got %q", got)
	}
	typ := b.Types.New(sp, b.StringsInterner.Intern("i32"))
	if got := AcceptType[string](b, typ, kindRecorder{}); got != "TypeName" {
		t.Errorf("type: got %q", got)
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{Start: 3, End: 9}
	x := b.Exprs.NewIdent(sp, b.StringsInterner.Intern("x"))

	if _, ok := b.Exprs.Binary(x); ok {
		t.Fatal("Binary accessor accepted an identifier")
	}
	if data, ok := b.Exprs.Ident(x); !ok || b.Name(data.Name) != "x" {
		t.Fatal("Ident accessor failed")
	}
	if b.ExprSpan(x) != sp || b.ExprSpan(NoExprID) != (source.Span{}) {
		t.Fatal("ExprSpan mismatch")
	}

	ret := b.Stmts.NewReturn(sp, x)
	if _, ok := b.Stmts.Block(ret); ok {
		t.Fatal("Block accessor accepted a return")
	}
	if r, ok := b.Stmts.Return(ret); !ok || r.Value != x {
		t.Fatal("Return accessor failed")
	}

	file := b.NewFile(sp)
	b.PushDecl(file, ret)
	b.PushDecl(file, NoStmtID)
	if decls := b.Files.Get(file).Decls; len(decls) != 1 || decls[0] != ret {
		t.Fatalf("PushDecl mismatch: %v", decls)
	}
}

func TestBinaryOpClassification(t *testing.T) {
	if !OpMod.IsArithmetic() || OpEq.IsArithmetic() {
		t.Error("arithmetic classification")
	}
	if !OpGe.IsComparison() || OpLogicalAnd.IsComparison() {
		t.Error("comparison classification")
	}
	if !OpShr.IsBitwise() || OpAssign.IsBitwise() {
		t.Error("bitwise classification")
	}
	if !OpDivAssign.IsAssignment() || OpShr.IsAssignment() {
		t.Error("assignment classification")
	}
	if op, ok := OpSubAssign.Arithmetic(); !ok || op != OpSub {
		t.Error("compound assignment operator")
	}
	if _, ok := OpAssign.Arithmetic(); ok {
		t.Error("plain assignment has no arithmetic part")
	}
}
