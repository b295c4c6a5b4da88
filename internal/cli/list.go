package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
	"github.com/existflow/classtrack/internal/tracker"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List assignments",
	Long: `List assignments, optionally filtered and sorted.

Examples:
  classtrack list
  classtrack list --course 1731234567890 --status incomplete
  classtrack list --status overdue --sort priority
  classtrack list --search essay`,
	RunE: runList,
}

var (
	listCourse   string
	listStatus   string
	listPriority string
	listSearch   string
	listSort     string
)

func init() {
	listCmd.Flags().StringVarP(&listCourse, "course", "c", query.All, "Course id, or 'all'")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", string(query.StatusAll), "all, incomplete, complete or overdue")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", query.All, "high, medium, low or 'all'")
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Match title or description")
	listCmd.Flags().StringVar(&listSort, "sort", query.SortDueDate, "due, priority or points")
}

func runList(cmd *cobra.Command, args []string) error {
	if !validStatus(listStatus) {
		return fmt.Errorf("unknown status %q", listStatus)
	}
	if !validSortKey(listSort) {
		return fmt.Errorf("unknown sort key %q", listSort)
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	list := query.Filter(tr.Assignments.All(), query.Criteria{
		CourseID:   listCourse,
		Status:     query.Status(listStatus),
		Priority:   strings.ToLower(listPriority),
		SearchTerm: listSearch,
	})
	list = query.Sort(list, listSort)

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No assignments found. Add one with: classtrack add \"Title\" --course ID --due DATE")
		return nil
	}

	printAssignments(out, tr, list)
	return nil
}

func validStatus(s string) bool {
	for _, st := range query.Statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

func validSortKey(s string) bool {
	for _, k := range query.SortKeys {
		if k == s {
			return true
		}
	}
	return false
}

func printAssignments(out io.Writer, tr *tracker.Tracker, list []model.Assignment) {
	pending := 0
	for _, a := range list {
		if !a.Completed {
			pending++
		}
	}

	fmt.Fprintf(out, "\n📚 %d assignments (%d pending)\n", len(list), pending)
	fmt.Fprintln(out, strings.Repeat("─", 86))
	for _, a := range list {
		printAssignment(out, tr, a)
	}
	fmt.Fprintln(out)
}

func printAssignment(out io.Writer, tr *tracker.Tracker, a model.Assignment) {
	icon := "[ ]"
	if a.Completed {
		icon = "[x]"
	}

	due := fmt.Sprintf("%-12s", dates.Format(a.DueDate))
	switch {
	case a.Completed:
		due = doneStyle.Render(due)
	case a.IsOverdue():
		due = overdueStyle.Render(due)
	}

	fmt.Fprintf(out, "  %s  %-14d  %-9s  %-30s  %s  %-8s  %3d pts\n",
		icon, a.ID, courseLabel(tr, a.CourseID), truncate(a.Title, 30), due, priorityLabel(a.Priority), a.Points)
}
