package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize verby storage",
		Long:  "Create the configuration and data directories, then initialize the notebook.\nOn first run the notebook is seeded with a demo entry unless seed is false.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, dataDir, err := a.attachNotebook()
			if err != nil {
				return err
			}
			if err := nb.Detach(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "verby initialized in %s\n", dataDir)
			return nil
		},
	}
}
