// Package driver runs the front-end phases over files: one unit at a time
// for tokenize/parse/emit, and concurrently for check.
package driver

import (
	"fortio.org/safecast"

	"xypher/internal/modules"
	"xypher/internal/parser"
)

// Options configure every driver entry point.
type Options struct {
	// MaxDiagnostics bounds the per-unit Bag; 0 keeps everything.
	MaxDiagnostics int
	// MaxErrors is the parser's syntax error cap; 0 means parser.DefaultMaxErrors.
	MaxErrors int
	// Registry resolves imports; nil means the standard registry.
	Registry *modules.Registry
	// Cache stores diagnostics of checked units; nil disables caching.
	Cache    *DiskCache
	Progress ProgressSink
	// Jobs bounds CheckFiles concurrency; 0 means GOMAXPROCS.
	Jobs int
}

func (o Options) registry() *modules.Registry {
	if o.Registry == nil {
		return modules.NewRegistry()
	}
	return o.Registry
}

func (o Options) parserOptions() (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](o.MaxErrors)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{MaxErrors: maxErrors}, nil
}
