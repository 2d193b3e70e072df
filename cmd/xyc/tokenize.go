package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xypher/internal/diagfmt"
	"xypher/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [file.xyp]",
		Short: "Print the token stream of a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	path, m, err := singleInput(args)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, m)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// диагностика в stderr, токены в stdout
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	} else {
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
