package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"xypher/internal/diag"
	"xypher/internal/diagfmt"
	"xypher/internal/driver"
	"xypher/internal/observ"
	"xypher/internal/project"
	"xypher/internal/ui"
)

type checkFlags struct {
	format      string
	jobs        int
	ui          bool
	noCache     bool
	dumpSymbols bool
}

func newCheckCmd() *cobra.Command {
	var f checkFlags
	cmd := &cobra.Command{
		Use:   "check [flags] [path...]",
		Short: "Check files or directories and report diagnostics",
		Long: `check runs the lexer, parser and semantic analyzer over every given file;
directories contribute all *.xyp files below them. Without arguments the
project containing the working directory is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.format, "format", "pretty", "diagnostics format (pretty|short|json)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "files checked in parallel (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.ui, "ui", false, "show an interactive progress view")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "do not read or write the diagnostics cache")
	cmd.Flags().BoolVar(&f.dumpSymbols, "dump-symbols", false, "print the symbol table of every file")
	return cmd
}

func checkInputs(args []string) ([]string, *project.Manifest, error) {
	if len(args) > 0 {
		m, err := loadProject(args[0])
		return args, m, err
	}
	m, err := loadProject(".")
	if err != nil {
		return nil, nil, err
	}
	if m == nil {
		return nil, nil, errNoInput
	}
	return []string{m.Root}, m, nil
}

func runCheck(cmd *cobra.Command, args []string, f checkFlags) error {
	switch f.format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", f.format)
	}
	inputs, m, err := checkInputs(args)
	if err != nil {
		return err
	}
	files, err := driver.ExpandPaths(inputs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", project.SourceExt)
	}

	opts, err := driverOptions(cmd, m)
	if err != nil {
		return err
	}
	opts.Jobs = f.jobs
	// таблица символов не кэшируется
	if !f.noCache && !f.dumpSymbols {
		cache, err := driver.OpenDiskCache("xypher")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: diagnostics cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	var results []*driver.CheckResult
	if f.ui && f.format == "pretty" && isTerminal(cmd.OutOrStdout()) {
		results, err = runCheckWithUI(cmd.Context(), files, opts)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	failed, err := reportCheck(cmd, results, f)
	if err != nil {
		return err
	}
	if failed > 0 {
		return errDiagnostics
	}
	return nil
}

// reportCheck prints every result in input order and returns how many
// files failed.
func reportCheck(cmd *cobra.Command, results []*driver.CheckResult, f checkFlags) (int, error) {
	out := cmd.OutOrStdout()
	failed, errs, warns := 0, 0, 0
	timings := make([]observ.Report, 0, len(results))

	jsonOut := make(map[string]diagfmt.DiagnosticsOutput, len(results))
	for _, r := range results {
		if !r.OK() {
			failed++
		}
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", r.Err)
			continue
		}
		timings = append(timings, r.Timing)
		shown := 0
		for _, d := range r.Bag.Items() {
			switch {
			case d.Severity.IsError():
				shown++
			case d.Severity == diag.SevWarning:
				warns++
			}
		}
		// Bag обрезан по --max-diagnostics, r.Errors нет
		errs += max(shown, r.Errors)

		if f.format == "json" {
			jsonOut[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, r.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
				IncludeFixes:     true,
			})
		} else if err := printDiagnostics(cmd, out, r.Bag, r.FileSet, f.format); err != nil {
			return failed, err
		}
		if f.dumpSymbols && r.Sema != nil {
			if err := dumpSymbols(out, r, f.format); err != nil {
				return failed, err
			}
		}
	}

	if f.format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(jsonOut); err != nil {
			return failed, fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	} else if !isQuiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s): %d error(s), %d warning(s)\n", len(results), errs, warns)
	}
	printTimings(cmd, timings...)
	return failed, nil
}

func dumpSymbols(w io.Writer, r *driver.CheckResult, format string) error {
	if format == "json" {
		return diagfmt.SemanticsJSON(w, r.Sema.Table, false)
	}
	fmt.Fprintf(w, "symbols of %s:\n", r.Path)
	return diagfmt.FormatSymbolsPretty(w, r.Sema.Table, r.FileSet)
}

type checkOutcome struct {
	results []*driver.CheckResult
	err     error
}

func runCheckWithUI(ctx context.Context, files []string, opts driver.Options) ([]*driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.CheckFiles(ctx, files, opts)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking", files, events)
	_, uiErr := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	// UI могла выйти раньше (ctrl+c): дочитываем события, чтобы проверка не встала
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
