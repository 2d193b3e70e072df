package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xypher/internal/project"
	"xypher/internal/version"
)

func newInitCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create " + project.ManifestName + " and a main.xyp entry file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := project.Init(dir, name, version.Version)
			if err != nil {
				return fmt.Errorf("init failed: %w", err)
			}
			if !isQuiet(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "package name (default: directory name)")
	return cmd
}
