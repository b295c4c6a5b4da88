package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [assignment-id]",
	Short: "Toggle an assignment's completion",
	Long: `Mark an assignment completed, or reopen it if it already is.

Examples:
  classtrack done 1731234567890`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	if err := tr.Assignments.ToggleComplete(id); err != nil {
		return err
	}

	a, _ := tr.Assignments.FindByID(id)
	if a.Completed {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Completed: %q\n", a.Title)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "○ Reopened: %q\n", a.Title)
	}
	return nil
}
