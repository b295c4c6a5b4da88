package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all courses and assignments",
	Long: `Remove every course and assignment from local storage.
Run 'classtrack export' first if you may want them back.`,
	RunE: runClear,
}

var clearForce bool

func init() {
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "Do not ask for confirmation")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearForce && !confirm(cmd, "Are you sure you want to clear all data?") {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	fmt.Fprintln(cmd.OutOrStdout(), "🧹 Clearing local data...")
	if err := tr.Reset(); err != nil {
		return fmt.Errorf("failed to clear local data: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Local data cleared.")
	return nil
}
