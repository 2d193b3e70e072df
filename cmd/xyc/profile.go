package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"xypher/internal/prof"
)

type profileKey struct{}

// setupProfiling starts the pprof profiles named by the flags and keeps the
// session in the command context; execute stops it.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if cfg.Runtime, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	ctx := context.WithValue(cmd.Context(), profileKey{}, session)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	return nil
}

func stopProfiling(ctx context.Context, w io.Writer) {
	if ctx == nil {
		return
	}
	session, ok := ctx.Value(profileKey{}).(*prof.Session)
	if !ok {
		return
	}
	if err := session.Stop(); err != nil {
		fmt.Fprintf(w, "profile: %v\n", err)
	}
}
