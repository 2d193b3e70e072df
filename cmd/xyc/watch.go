package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"xypher/internal/driver"
	"xypher/internal/project"
)

const watchDebounce = 150 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var f checkFlags
	cmd := &cobra.Command{
		Use:   "watch [flags] [path...]",
		Short: "Re-check files whenever a source file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "pretty", "diagnostics format (pretty|short)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "files checked in parallel (0 = GOMAXPROCS)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string, f checkFlags) error {
	if f.format != "pretty" && f.format != "short" {
		return fmt.Errorf("unknown format: %s", f.format)
	}
	inputs, m, err := checkInputs(args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return err
	}
	opts.Jobs = f.jobs

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	for _, dir := range watchDirs(inputs) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	ctx := cmd.Context()
	recheck := func() error {
		files, err := driver.ExpandPaths(inputs)
		if err != nil {
			return err
		}
		results, err := driver.CheckFiles(ctx, files, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "[%s] ", time.Now().Format("15:04:05"))
		_, err = reportCheck(cmd, results, f)
		return err
	}
	if err := recheck(); err != nil {
		return err
	}
	return watchLoop(ctx, watcher, func(path string) error {
		// новые каталоги тоже наблюдаем
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			_ = watcher.Add(path)
		}
		return recheck()
	})
}

// watchLoop calls onChange once per burst of source-file events.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, onChange func(path string) error) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			pending = ev.Name
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-fire:
			fire = nil
			if err := onChange(pending); err != nil {
				return err
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasSuffix(ev.Name, project.SourceExt) {
		return true
	}
	// создание каталога может принести новые файлы
	info, err := os.Stat(ev.Name)
	return err == nil && info.IsDir() && ev.Op&fsnotify.Create != 0
}

// watchDirs lists every directory to subscribe to. fsnotify is not
// recursive, so directory inputs contribute their whole subtree.
func watchDirs(inputs []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(d string) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		dirs = append(dirs, d)
	}
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(in))
			continue
		}
		_ = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			if path != in && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
	}
	return dirs
}
