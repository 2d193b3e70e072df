package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xypher/internal/driver"
	runtimeembed "xypher/runtime"
)

func newEmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emit-llvm [flags] [file.xyp]",
		Short: "Check a source file and write its LLVM IR",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEmit,
	}
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	cmd.Flags().String("runtime-dir", "", "also write the native runtime sources to this directory")
	return cmd
}

func runEmit(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	runtimeDir, err := cmd.Flags().GetString("runtime-dir")
	if err != nil {
		return fmt.Errorf("failed to get runtime-dir flag: %w", err)
	}
	path, m, err := singleInput(args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return err
	}

	result, err := driver.Emit(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("emit failed: %w", err)
	}
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}
	printTimings(cmd, result.Timing)
	if result.Module == nil {
		return errDiagnostics
	}

	if runtimeDir != "" {
		written, err := runtimeembed.WriteTo(runtimeDir)
		if err != nil {
			return err
		}
		for _, p := range written {
			reportWritten(cmd, p)
		}
	}

	ir := result.Module.String()
	if output == "" || output == "-" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), ir)
		return err
	}
	if err := os.WriteFile(output, []byte(ir), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	reportWritten(cmd, output)
	return nil
}

func reportWritten(cmd *cobra.Command, path string) {
	if !isQuiet(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	}
}
