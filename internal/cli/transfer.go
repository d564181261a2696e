// Export and import commands move entries as JSONL.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/verby/internal/sqlite"
	"github.com/mesh-intelligence/verby/pkg/verbs"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write all entries to stdout as JSONL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *verbs.Session) (bool, error) {
				if err := sqlite.EncodeEntries(cmd.OutOrStdout(), s.Export()); err != nil {
					return false, sysError(err)
				}
				return false, nil
			})
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Append entries from a JSONL file",
		Long:  "Import appends the entries of a JSONL file (as written by export) to the notebook.\nEntries that are empty or already stored are skipped. Use - to read stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return userError(fmt.Errorf("open import file: %w", err))
				}
				defer f.Close()
				r = f
			}
			entries, err := sqlite.DecodeEntries(r)
			if err != nil {
				return userError(fmt.Errorf("read import file: %w", err))
			}

			return a.withSession(func(s *verbs.Session) (bool, error) {
				skipped := s.Import(entries)
				added := len(entries) - skipped
				a.logger.Info("import finished", zap.Int("added", added), zap.Int("skipped", skipped))
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d skipped)\n", added, skipped)
				return added > 0, nil
			})
		},
	}
}
