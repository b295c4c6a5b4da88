package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/classtrack/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [assignment-id]",
	Short: "Edit an assignment",
	Long: `Change assignment fields. Only the flags given are changed.

Examples:
  classtrack edit 1731234567890 --due 2025-11-22
  classtrack edit 1731234567890 --priority high --points 40`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editDue         string
	editPriority    string
	editPoints      int
	editCourse      string
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "New description")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority")
	editCmd.Flags().IntVar(&editPoints, "points", 0, "New points")
	editCmd.Flags().StringVarP(&editCourse, "course", "c", "", "Move to another course id")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var u model.AssignmentUpdate
	flags := cmd.Flags()
	if flags.Changed("title") {
		u.Title = &editTitle
	}
	if flags.Changed("description") {
		u.Description = &editDescription
	}
	if flags.Changed("due") {
		u.DueDate = &editDue
	}
	if flags.Changed("priority") {
		p := model.Priority(strings.ToLower(editPriority))
		u.Priority = &p
	}
	if flags.Changed("points") {
		u.Points = &editPoints
	}
	if flags.Changed("course") {
		courseID, err := parseID(editCourse)
		if err != nil {
			return err
		}
		u.CourseID = &courseID
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	a, err := tr.Assignments.Update(id, u)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated: %q\n", a.Title)
	return nil
}
