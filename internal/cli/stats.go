package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/existflow/classtrack/internal/query"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Long: `Show completed, overdue and points statistics, for all assignments or one course.

Examples:
  classtrack stats
  classtrack stats --course 1731234567890
  classtrack stats --json`,
	RunE: runStats,
}

var (
	statsCourse string
	statsJSON   bool
)

func init() {
	statsCmd.Flags().StringVarP(&statsCourse, "course", "c", query.All, "Course id, or 'all'")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print the summary as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	list := query.Filter(tr.Assignments.All(), query.Criteria{CourseID: statsCourse})
	summary := query.Summarize(list)

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

// runSummary is the non-interactive fallback of the root command
func runSummary(cmd *cobra.Command, args []string) error {
	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d courses\n", len(tr.Courses.Active()))
	printSummary(out, tr.Summary())
	return nil
}

func printSummary(out io.Writer, s query.Summary) {
	fmt.Fprintln(out, titleStyle.Render("Progress"))
	fmt.Fprintf(out, "  Assignments:  %d (%d completed, %d remaining)\n", s.Total, s.Completed, s.Incomplete)
	fmt.Fprintf(out, "  Completion:   %.1f%% %s\n", s.CompletionRate, bar(s.CompletionRate, 20))

	overdue := fmt.Sprintf("%d", s.OverdueCount)
	if s.OverdueCount > 0 {
		overdue = overdueStyle.Render(overdue)
	}
	fmt.Fprintf(out, "  Overdue:      %s\n", overdue)
	fmt.Fprintf(out, "  Points:       %d / %d\n", s.PointsEarned, s.TotalPoints)
	fmt.Fprintf(out, "  Priority:     high %d, medium %d, low %d\n",
		s.ByPriority.High, s.ByPriority.Medium, s.ByPriority.Low)
}

// bar renders a percentage as a fixed-width text bar
func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
