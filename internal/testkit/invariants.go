// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"xypher/internal/ast"
	"xypher/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span points at sf and stays within its content
// 2) every declaration span belongs to sf and lies inside the content
// 3) declarations appear in source order
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End < f.Span.Start || f.Span.End > lenContent {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}

	var prev source.Span
	for i, id := range f.Decls {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil declaration for id=%d", id)
		}
		sp := st.Span
		if sp.File != sf.ID {
			return fmt.Errorf("declaration span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("declaration span %v outside content of %d bytes", sp, lenContent)
		}
		if i > 0 && sp.Start < prev.Start {
			return fmt.Errorf("declaration %v starts before previous %v", sp, prev)
		}
		prev = sp
	}
	return nil
}

// CheckCoverage additionally requires a non-empty file span covering every
// declaration. Only meaningful for inputs that parse without errors.
func CheckCoverage(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if err := CheckSpanInvariants(b, fileID, sf); err != nil {
		return err
	}
	f := b.Files.Get(fileID)
	if len(f.Decls) == 0 {
		return nil
	}
	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	for _, id := range f.Decls {
		sp := b.StmtSpan(id)
		if sp.End <= sp.Start {
			return fmt.Errorf("empty declaration span: %v", sp)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("declaration span %v is outside file span %v", sp, f.Span)
		}
	}
	return nil
}
