package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"xypher/internal/ast"
	"xypher/internal/source"
)

// DumpAST writes an indented tree of the file to w. Nodes are printed with
// their resolved span; absent optional children are omitted.
func DumpAST(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	if builder == nil || builder.Files.Get(fileID) == nil {
		return fmt.Errorf("file not found")
	}
	p := &astPrinter{w: w, b: builder, fs: fs}
	ast.AcceptFile[struct{}](builder, fileID, p)
	return p.err
}

type astChild struct {
	label string
	visit func()
}

type astPrinter struct {
	w      io.Writer
	b      *ast.Builder
	fs     *source.FileSet
	prefix string
	err    error
}

var _ ast.Visitor[struct{}] = (*astPrinter)(nil)

func (p *astPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *astPrinter) head(label string, sp source.Span) {
	p.printf("%s (span: %s)\n", label, formatSpan(sp, p.fs))
}

// children рисует ветки ├─ / └─ и сдвигает префикс для вложенных узлов.
func (p *astPrinter) children(kids ...astChild) {
	for i, k := range kids {
		conn, ext := "├─ ", "│  "
		if i == len(kids)-1 {
			conn, ext = "└─ ", "   "
		}
		p.printf("%s%s", p.prefix, conn)
		if k.label != "" {
			p.printf("%s: ", k.label)
		}
		saved := p.prefix
		p.prefix += ext
		k.visit()
		p.prefix = saved
	}
}

func (p *astPrinter) exprChild(label string, id ast.ExprID) astChild {
	return astChild{label: label, visit: func() { ast.AcceptExpr[struct{}](p.b, id, p) }}
}

func (p *astPrinter) stmtChild(label string, id ast.StmtID) astChild {
	return astChild{label: label, visit: func() { ast.AcceptStmt[struct{}](p.b, id, p) }}
}

func (p *astPrinter) typeChild(label string, id ast.TypeID) astChild {
	return astChild{label: label, visit: func() { ast.AcceptType[struct{}](p.b, id, p) }}
}

func (p *astPrinter) exprList(label string, ids []ast.ExprID) []astChild {
	kids := make([]astChild, len(ids))
	for i, id := range ids {
		kids[i] = p.exprChild(fmt.Sprintf("%s[%d]", label, i), id)
	}
	return kids
}

func (p *astPrinter) stmtList(label string, ids []ast.StmtID) []astChild {
	kids := make([]astChild, len(ids))
	for i, id := range ids {
		kids[i] = p.stmtChild(fmt.Sprintf("%s[%d]", label, i), id)
	}
	return kids
}

func (p *astPrinter) literal(kind string, id ast.ExprID, text string) struct{} {
	p.head(kind+" "+text, p.b.ExprSpan(id))
	return struct{}{}
}

func (p *astPrinter) VisitIntLit(id ast.ExprID, lit *ast.ExprLiteralData) struct{} {
	return p.literal("IntLit", id, p.b.Name(lit.Raw))
}

func (p *astPrinter) VisitFloatLit(id ast.ExprID, lit *ast.ExprLiteralData) struct{} {
	return p.literal("FloatLit", id, p.b.Name(lit.Raw))
}

func (p *astPrinter) VisitStringLit(id ast.ExprID, lit *ast.ExprLiteralData) struct{} {
	return p.literal("StringLit", id, fmt.Sprintf("%q", p.b.Name(lit.Value)))
}

func (p *astPrinter) VisitCharLit(id ast.ExprID, lit *ast.ExprLiteralData) struct{} {
	return p.literal("CharLit", id, fmt.Sprintf("%q", p.b.Name(lit.Value)))
}

func (p *astPrinter) VisitBoolLit(id ast.ExprID, lit *ast.ExprLiteralData) struct{} {
	return p.literal("BoolLit", id, fmt.Sprint(lit.Bool))
}

func (p *astPrinter) VisitIdent(id ast.ExprID, ident *ast.ExprIdentData) struct{} {
	p.head("Ident "+p.b.Name(ident.Name), p.b.ExprSpan(id))
	return struct{}{}
}

func (p *astPrinter) VisitBinary(id ast.ExprID, bin *ast.ExprBinaryData) struct{} {
	p.head("Binary "+bin.Op.String(), p.b.ExprSpan(id))
	p.children(p.exprChild("Left", bin.Left), p.exprChild("Right", bin.Right))
	return struct{}{}
}

func (p *astPrinter) VisitUnary(id ast.ExprID, un *ast.ExprUnaryData) struct{} {
	p.head("Unary "+un.Op.String(), p.b.ExprSpan(id))
	p.children(p.exprChild("Operand", un.Operand))
	return struct{}{}
}

func (p *astPrinter) VisitCall(id ast.ExprID, call *ast.ExprCallData) struct{} {
	p.head("Call", p.b.ExprSpan(id))
	kids := append([]astChild{p.exprChild("Callee", call.Callee)}, p.exprList("Arg", call.Args)...)
	p.children(kids...)
	return struct{}{}
}

func (p *astPrinter) VisitTypeName(_ ast.TypeID, t *ast.TypeName) struct{} {
	p.head("Type "+p.b.Name(t.Name), t.Span)
	return struct{}{}
}

func (p *astPrinter) VisitExprStmt(id ast.StmtID, s *ast.ExprStmtData) struct{} {
	p.head("ExprStmt", p.b.StmtSpan(id))
	p.children(p.exprChild("", s.Expr))
	return struct{}{}
}

func (p *astPrinter) VisitVarDecl(id ast.StmtID, s *ast.VarDeclData) struct{} {
	kw := "Let"
	switch {
	case s.IsConst:
		kw = "Const"
	case s.IsOwned:
		kw = "Own"
	}
	p.head(kw+" "+p.b.Name(s.Name), p.b.StmtSpan(id))
	var kids []astChild
	if s.Type.IsValid() {
		kids = append(kids, p.typeChild("Type", s.Type))
	}
	if s.Init.IsValid() {
		kids = append(kids, p.exprChild("Init", s.Init))
	}
	p.children(kids...)
	return struct{}{}
}

func (p *astPrinter) VisitBlock(id ast.StmtID, s *ast.BlockData) struct{} {
	p.head("Block", p.b.StmtSpan(id))
	p.children(p.stmtList("Stmt", s.Stmts)...)
	return struct{}{}
}

func (p *astPrinter) VisitReturn(id ast.StmtID, s *ast.ReturnData) struct{} {
	p.head("Return", p.b.StmtSpan(id))
	if s.Value.IsValid() {
		p.children(p.exprChild("Value", s.Value))
	}
	return struct{}{}
}

func (p *astPrinter) VisitIf(id ast.StmtID, s *ast.IfData) struct{} {
	p.head("If", p.b.StmtSpan(id))
	kids := []astChild{p.exprChild("Cond", s.Cond), p.stmtChild("Then", s.Then)}
	if s.Else.IsValid() {
		kids = append(kids, p.stmtChild("Else", s.Else))
	}
	p.children(kids...)
	return struct{}{}
}

func (p *astPrinter) VisitLoop(id ast.StmtID, s *ast.LoopData) struct{} {
	p.head("Loop "+s.Form.String(), p.b.StmtSpan(id))
	p.children(p.exprChild("Cond", s.Cond), p.stmtChild("Body", s.Body))
	return struct{}{}
}

func (p *astPrinter) VisitSay(id ast.StmtID, s *ast.SayData) struct{} {
	p.head("Say", p.b.StmtSpan(id))
	p.children(p.exprList("Arg", s.Args)...)
	return struct{}{}
}

func (p *astPrinter) VisitTrace(id ast.StmtID, s *ast.TraceData) struct{} {
	p.head("Trace", p.b.StmtSpan(id))
	p.children(p.exprChild("", s.Expr))
	return struct{}{}
}

func (p *astPrinter) VisitFuncDecl(id ast.StmtID, s *ast.FuncDeclData) struct{} {
	params := make([]string, len(s.Params))
	for i, prm := range s.Params {
		params[i] = p.b.Name(prm.Name) + ": " + p.b.TypeName(prm.Type)
	}
	p.head(fmt.Sprintf("Func %s(%s)", p.b.Name(s.Name), strings.Join(params, ", ")), p.b.StmtSpan(id))
	p.children(p.typeChild("Return", s.Return), p.stmtChild("Body", s.Body))
	return struct{}{}
}

func (p *astPrinter) VisitImport(id ast.StmtID, s *ast.ImportData) struct{} {
	p.head(fmt.Sprintf("Import %s from %s", p.b.Name(s.Module), p.b.Name(s.Library)), p.b.StmtSpan(id))
	return struct{}{}
}

func (p *astPrinter) VisitBreak(id ast.StmtID) struct{} {
	p.head("Break", p.b.StmtSpan(id))
	return struct{}{}
}

func (p *astPrinter) VisitContinue(id ast.StmtID) struct{} {
	p.head("Continue", p.b.StmtSpan(id))
	return struct{}{}
}

func (p *astPrinter) VisitFile(_ ast.FileID, f *ast.File) struct{} {
	p.head("File", f.Span)
	p.children(p.stmtList("Decl", f.Decls)...)
	return struct{}{}
}
