package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/verby/internal/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Open the interactive matching grid",
		Long:  "Play shows every form of every entry in a grid. Pick the three forms of one\nentry to clear them. Press e to edit entries and q to save and quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			nb, _, err := a.attachNotebook()
			if err != nil {
				return err
			}
			defer func() {
				if derr := nb.Detach(); derr != nil && err == nil {
					err = sysError(fmt.Errorf("detach notebook: %w", derr))
				}
			}()

			s, err := a.openSession(nb)
			if err != nil {
				return err
			}
			if _, err := tui.Run(cmd.Context(), tui.New(s, tui.Options{Notebook: nb, Logger: a.logger})); err != nil {
				return sysError(err)
			}
			return nil
		},
	}
}
