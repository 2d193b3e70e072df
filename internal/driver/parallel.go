package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"xypher/internal/project"
	"xypher/internal/trace"
)

// ExpandPaths turns the CLI arguments into a sorted, duplicate-free list of
// source files. Directories contribute every *.xyp file below them.
func ExpandPaths(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		clean := filepath.Clean(p)
		if _, dup := seen[clean]; dup {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && path != p && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckFiles checks every file concurrently, at most opts.Jobs at a time.
// Results come back in input order; a file that cannot be loaded yields a
// result with Err set instead of failing the run. The returned error is
// only the context's.
func CheckFiles(ctx context.Context, files []string, opts Options) ([]*CheckResult, error) {
	results := make([]*CheckResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", trace.ParentSpan(ctx)).
		WithExtra("files", fmt.Sprint(len(files)))
	ctx = trace.WithParent(ctx, span)

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Check(gctx, path, opts)
			if err != nil {
				res = &CheckResult{Path: path, Err: err}
			}
			final := Event{File: path, Stage: StageFinished, Status: StatusDone, Err: res.Err}
			if !res.OK() {
				final.Status = StatusError
			}
			emit(opts.Progress, final)
			// индекс i уникален, мьютекс не нужен
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	failed := 0
	for _, r := range results {
		if r != nil && !r.OK() {
			failed++
		}
	}
	span.WithExtra("failed", fmt.Sprint(failed)).End("")
	return results, err
}
