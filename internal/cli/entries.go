// Entry commands: add, delete, list.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/verby/pkg/types"
	"github.com/mesh-intelligence/verby/pkg/verbs"
)

func newAddCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "add <first> <second> <third>",
		Short: "Append a verb entry",
		Long: `Add appends an entry of three forms to the notebook.

Empty forms and exact duplicates are rejected. A form shorter than
min_form_length is accepted with a warning. With --dry-run the entry is
only assessed: the result is printed as ok, short, or invalid.

Example:
  verby add go went gone
  verby add --dry-run be was been`,
		Args: cobra.ExactArgs(types.FormCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := types.NewEntry(args[0], args[1], args[2])
			return a.withSession(func(s *verbs.Session) (bool, error) {
				assessment := s.Store().Assess(e.First, e.Second, e.Third)

				if dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e, assessment)
					if assessment == verbs.AssessInvalid {
						return false, userError(rejection(s.Store(), e))
					}
					return false, nil
				}

				if err := s.Insert(e.First, e.Second, e.Third); err != nil {
					return false, classify(err)
				}
				if assessment == verbs.AssessShort {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s has a form shorter than %d characters\n", e, a.settings.MinFormLength)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", e)
				return true, nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "assess the entry without adding it")
	return cmd
}

// rejection explains why store would refuse e.
func rejection(store *verbs.EntryStore, e types.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrValidationRejected, err)
	}
	if store.Contains(e) {
		return fmt.Errorf("%w: %w", types.ErrValidationRejected, types.ErrDuplicateEntry)
	}
	return types.ErrValidationRejected
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <number>",
		Short: "Remove the entry with the given list number",
		Long:  "Delete removes one entry. Entries are numbered from 1 as shown by `verby list`;\nlater entries move up by one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return userError(fmt.Errorf("invalid entry number %q", args[0]))
			}
			return a.withSession(func(s *verbs.Session) (bool, error) {
				e, err := s.Store().At(n - 1)
				if err != nil {
					return false, userError(fmt.Errorf("entry %d: %w", n, err))
				}
				if err := s.DeleteAt(n - 1); err != nil {
					return false, classify(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", e)
				return true, nil
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored entries in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(s *verbs.Session) (bool, error) {
				entries := s.Export()
				if jsonOut {
					data, err := json.MarshalIndent(entries, "", "  ")
					if err != nil {
						return false, sysError(fmt.Errorf("marshal entries: %w", err))
					}
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return false, nil
				}

				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No entries. Add one with `verby add <first> <second> <third>`.")
					return false, nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "#\tFIRST\tSECOND\tTHIRD")
				fmt.Fprintln(w, "-\t-----\t------\t-----")
				for i, e := range entries {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, e.First, e.Second, e.Third)
				}
				if err := w.Flush(); err != nil {
					return false, sysError(err)
				}
				return false, nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
