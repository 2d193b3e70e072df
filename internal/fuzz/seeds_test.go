package fuzztests

import (
	"bytes"
	"testing"
)

func TestClampSeed(t *testing.T) {
	short := []byte("let x = 1;")
	got := clampSeed(short)
	if !bytes.Equal(got, short) {
		t.Fatalf("short seed changed: %q", got)
	}
	got[0] = 'X'
	if short[0] != 'l' {
		t.Error("clampSeed must copy its input")
	}

	long := bytes.Repeat([]byte("a"), maxFuzzInput+10)
	if got := clampSeed(long); len(got) != maxFuzzInput {
		t.Errorf("len = %d, want %d", len(got), maxFuzzInput)
	}
}
