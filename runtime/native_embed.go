// Package runtimeembed provides the embedded native runtime that programs
// emitted by xyc link against.
package runtimeembed

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

//go:embed native/*.c native/*.h
var nativeRuntimeFS embed.FS

// NativeRuntimeFS exposes embedded runtime sources rooted at native/.
func NativeRuntimeFS() fs.FS {
	return nativeRuntimeFS
}

// Files lists the embedded runtime sources, sorted.
func Files() ([]string, error) {
	return fs.Glob(nativeRuntimeFS, "native/*")
}

// WriteTo copies the runtime sources into dir, creating it when needed, and
// returns the written paths.
func WriteTo(dir string) ([]string, error) {
	names, err := Files()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("runtime dir: %w", err)
	}
	written := make([]string, 0, len(names))
	for _, name := range names {
		data, err := nativeRuntimeFS.ReadFile(name)
		if err != nil {
			return written, err
		}
		dst := filepath.Join(dir, path.Base(name))
		if err := os.WriteFile(dst, data, 0o600); err != nil {
			return written, fmt.Errorf("runtime file: %w", err)
		}
		written = append(written, dst)
	}
	return written, nil
}
