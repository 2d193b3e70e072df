package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xypher/internal/diagfmt"
	"xypher/internal/driver"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file.xyp]",
		Short: "Parse a source file and dump its AST",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	path, m, err := singleInput(args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}
	if err := diagfmt.DumpAST(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
