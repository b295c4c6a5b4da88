package cli

import (
	"fmt"
	"time"

	"github.com/existflow/classtrack/internal/backup"
	"github.com/existflow/classtrack/internal/config"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write all courses and assignments to a JSON snapshot",
	Long: `Write a snapshot of every course and assignment.
Without a path the snapshot goes to ~/.classtrack/backups/.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Replace all data with a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importForce bool

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Do not ask for confirmation")
}

func runExport(cmd *cobra.Command, args []string) error {
	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	snap := backup.New(tr.Courses.All(), tr.Assignments.All())

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		path = backup.DefaultPath(dir, time.Now())
	}

	if err := backup.Export(path, snap); err != nil {
		return err
	}

	logger.Info("Snapshot exported", logger.F("id", snap.ID), logger.F("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d courses and %d assignments to %s\n",
		len(snap.Courses), len(snap.Assignments), path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	snap, err := backup.Import(args[0])
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Replace all data with %d courses and %d assignments from %s?",
		len(snap.Courses), len(snap.Assignments), snap.CreatedAt.Format("Jan 2, 2006 15:04"))
	if !importForce && !confirm(cmd, prompt) {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	if err := tr.Restore(snap.Courses, snap.Assignments); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported snapshot %s\n", snap.ID)
	return nil
}
