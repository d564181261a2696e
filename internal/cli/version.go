package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/verby/pkg/verby"
)

const modulePath = "github.com/mesh-intelligence/verby"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the verby version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "verby v%s\nmodule: %s\n", verby.Version, modulePath)
			return nil
		},
	}
}
