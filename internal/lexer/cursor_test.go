package lexer

import (
	"testing"

	"xypher/internal/source"
)

func newTestCursor(content string) Cursor {
	fs := source.NewFileSet()
	return NewCursor(fs.Get(fs.AddVirtual("cursor.xyp", []byte(content))))
}

func TestCursorBasics(t *testing.T) {
	c := newTestCursor("ab")
	if c.EOF() {
		t.Fatal("fresh cursor at EOF")
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %c %c %v", b0, b1, ok)
	}
	m := c.Mark()
	if c.Bump() != 'a' || c.PeekAt(0) != 'b' || c.PeekAt(1) != 0 {
		t.Fatal("Bump/PeekAt mismatch")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 1 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	if c.Eat('x') || !c.Eat('b') {
		t.Fatal("Eat mismatch")
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatal("EOF handling broken")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 past end must fail")
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset failed, off=%d", c.Off)
	}
}
