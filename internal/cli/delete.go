package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [assignment-id]",
	Aliases: []string{"rm"},
	Short:   "Delete an assignment",
	Long: `Delete an assignment by its ID.

Examples:
  classtrack delete 1731234567890
  classtrack rm 1731234567890 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	a, ok := tr.Assignments.FindByID(id)
	if !ok {
		return fmt.Errorf("assignment not found: %d", id)
	}

	if cfg.ConfirmDelete && !deleteForce {
		if !confirm(cmd, fmt.Sprintf("Delete %q?", a.Title)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := tr.Assignments.Delete(id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted: %q\n", a.Title)
	return nil
}
