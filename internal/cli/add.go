package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new assignment",
	Long: `Add a new assignment to a course.

Examples:
  classtrack add "Essay draft" --course 1731234567890 --due 2025-11-15
  classtrack add "Lab 3" -c 1731234567890 -d "Nov 20, 2025" -p high --points 30`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addCourse      string
	addDue         string
	addPriority    string
	addPoints      string
	addDescription string
)

func init() {
	addCmd.Flags().StringVarP(&addCourse, "course", "c", "", "Course id")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date (e.g., '2025-11-15', 'Nov 15, 2025')")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(model.PriorityMedium), "Priority (high, medium, low)")
	addCmd.Flags().StringVar(&addPoints, "points", "0", "Points the assignment is worth")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Longer description")
}

func runAdd(cmd *cobra.Command, args []string) error {
	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	a, err := tr.Assignments.Create(model.AssignmentInput{
		CourseID:    addCourse,
		Title:       strings.Join(args, " "),
		Description: addDescription,
		DueDate:     addDue,
		Priority:    strings.ToLower(addPriority),
		Points:      addPoints,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added to [%s]: %q due %s (%s, %d pts, id: %d)\n",
		courseLabel(tr, a.CourseID), a.Title, dates.Format(a.DueDate), a.Priority, a.Points, a.ID)
	return nil
}
