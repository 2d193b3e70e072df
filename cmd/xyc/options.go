package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xypher/internal/diag"
	"xypher/internal/diagfmt"
	"xypher/internal/driver"
	"xypher/internal/modules"
	"xypher/internal/observ"
	"xypher/internal/project"
	"xypher/internal/source"
	"xypher/internal/version"
)

var errNoInput = errors.New("no input file and no " + project.ManifestName + " found\nplease pass a file, e.g.:\n  xyc check path/to/main.xyp")

func useColor(cmd *cobra.Command, w io.Writer) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(w)
	}
}

// applyColor configures fatih/color globally for stdout.
func applyColor(cmd *cobra.Command) {
	color.NoColor = !useColor(cmd, cmd.OutOrStdout())
}

func isQuiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}

// loadProject returns the manifest governing start (a file or directory),
// or nil when there is none.
func loadProject(start string) (*project.Manifest, error) {
	dir := start
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		dir = filepath.Dir(start)
	}
	m, ok, err := project.Load(dir)
	if err != nil || !ok {
		return nil, err
	}
	if err := m.Config.CheckLanguage(version.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Path, err)
	}
	return m, nil
}

// singleInput picks the file of a one-file command: the argument, or the
// manifest's [package].main.
func singleInput(args []string) (string, *project.Manifest, error) {
	if len(args) > 0 {
		m, err := loadProject(args[0])
		return args[0], m, err
	}
	m, err := loadProject(".")
	if err != nil {
		return "", nil, err
	}
	if m == nil {
		return "", nil, errNoInput
	}
	path, err := m.MainPath()
	return path, m, err
}

// driverOptions merges the global flags with the manifest. Flags given on
// the command line win.
func driverOptions(cmd *cobra.Command, m *project.Manifest) (driver.Options, error) {
	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Registry:       modules.NewRegistry(),
	}
	if m == nil {
		return opts, nil
	}

	d := m.Config.Diagnostics
	if d.MaxDiagnostics > 0 && !flags.Changed("max-diagnostics") {
		if opts.MaxDiagnostics, err = safecast.Conv[int](d.MaxDiagnostics); err != nil {
			return driver.Options{}, fmt.Errorf("%s: max_diagnostics: %w", m.Path, err)
		}
	}
	if d.MaxErrors > 0 {
		if opts.MaxErrors, err = safecast.Conv[int](d.MaxErrors); err != nil {
			return driver.Options{}, fmt.Errorf("%s: max_errors: %w", m.Path, err)
		}
	}
	m.Config.ApplyModules(opts.Registry)
	return opts, nil
}

func printDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	switch format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, w),
			Context:   1,
			ShowNotes: true,
			ShowFixes: true,
		})
	case "short":
		if out := diag.FormatShortDiagnostics(bag.Items(), fs, true); out != "" {
			fmt.Fprintln(w, out)
		}
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	return nil
}

func printTimings(cmd *cobra.Command, reports ...observ.Report) {
	if on, _ := cmd.Root().PersistentFlags().GetBool("timings"); !on {
		return
	}
	timer := observ.NewTimer()
	for _, r := range reports {
		timer.Merge(r)
	}
	fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
}
