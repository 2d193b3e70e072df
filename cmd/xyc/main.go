package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"xypher/internal/trace"
	"xypher/internal/version"
)

// errDiagnostics ends a command whose diagnostics were already printed.
var errDiagnostics = errors.New("compilation failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xyc",
		Short:         "Xypher compiler front end",
		Long:          `xyc lexes, parses and checks Xypher programs and lowers them to LLVM IR`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			applyColor(cmd)
			if err := setupTracing(cmd); err != nil {
				return err
			}
			return setupProfiling(cmd)
		},
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	flags.String("trace", "", "trace output file ('-' for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpuprofile", "", "write a CPU profile to file")
	flags.String("memprofile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newCheckCmd(),
		newEmitCmd(),
		newWatchCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newRootCmd(), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs root and maps the outcome to an exit status. On a panic the
// ring tracer, if any, is dumped before the panic continues.
func execute(ctx context.Context, root *cobra.Command, args []string, stdout, stderr io.Writer) (code int) {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "xyc: internal error: %v\n", r)
			dumpRing(root.Context(), stderr)
			closeTracer(root.Context(), stderr)
			stopProfiling(root.Context(), stderr)
			panic(r)
		}
	}()

	err := root.ExecuteContext(ctx)
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		dumpRing(root.Context(), stderr)
		code = 1
	}
	stopProfiling(root.Context(), stderr)
	closeTracer(root.Context(), stderr)
	return code
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func dumpRing(ctx context.Context, w io.Writer) {
	if ctx == nil {
		return
	}
	ring, ok := trace.Ring(trace.FromContext(ctx))
	if !ok {
		return
	}
	fmt.Fprintln(w, "--- last trace events ---")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

func closeTracer(ctx context.Context, w io.Writer) {
	if ctx == nil {
		return
	}
	tracer := trace.FromContext(ctx)
	if tracer == trace.Nop {
		return
	}
	if err := tracer.Flush(); err != nil {
		fmt.Fprintf(w, "trace: flush error: %v\n", err)
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(w, "trace: close error: %v\n", err)
	}
}
