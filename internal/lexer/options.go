package lexer

import (
	"xypher/internal/diag"
	"xypher/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки только копятся в Errors()
}

// Error is a lexical problem recorded while scanning. The same record is
// forwarded to Options.Reporter when one is set.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e Error) Error() string {
	return e.Msg
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errs = append(lx.errs, Error{Code: code, Span: sp, Msg: msg})
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
