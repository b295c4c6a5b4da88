package cli

import (
	"fmt"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/query"
	"github.com/spf13/cobra"
)

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "List incomplete assignments due soon",
	Long: `List incomplete assignments due between today and the next N days.

Examples:
  classtrack upcoming
  classtrack upcoming --days 14`,
	RunE: runUpcoming,
}

var upcomingDays int

func init() {
	upcomingCmd.Flags().IntVarP(&upcomingDays, "days", "n", 0, "Look-ahead window in days (default from config)")
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	days := cfg.UpcomingDays
	if cmd.Flags().Changed("days") {
		days = upcomingDays
	}
	if days < 0 {
		return fmt.Errorf("days cannot be negative")
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	out := cmd.OutOrStdout()
	list := query.SortByDueDate(query.Upcoming(tr.Assignments.All(), days))
	if len(list) == 0 {
		fmt.Fprintf(out, "Nothing due in the next %d days.\n", days)
		return nil
	}

	fmt.Fprintf(out, "\n⏰ Due in the next %d days\n", days)
	for _, a := range list {
		left, _ := dates.DaysUntil(a.DueDate)
		when := fmt.Sprintf("in %d days", left)
		switch left {
		case 0:
			when = "today"
		case 1:
			when = "tomorrow"
		}
		fmt.Fprintf(out, "  %-12s %-9s  %-30s  %s\n",
			dates.Format(a.DueDate), courseLabel(tr, a.CourseID), truncate(a.Title, 30), mutedStyle.Render(when))
	}
	fmt.Fprintln(out)
	return nil
}
