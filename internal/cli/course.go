package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:     "course",
	Aliases: []string{"courses"},
	Short:   "Manage courses",
	Long:    `Create, list, edit and delete the courses assignments belong to.`,
}

var courseAddCmd = &cobra.Command{
	Use:   "add [name] [code]",
	Short: "Create a new course",
	Long: `Create a new course. Codes are 3-5 letters, an optional space and 3 digits.

Examples:
  classtrack course add "Applied Programming" "CSE 310"
  classtrack course add "Intro to Geology" GESCI110 --credits 4 --color "#FF6B6B"`,
	Args: cobra.ExactArgs(2),
	RunE: runCourseAdd,
}

var courseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List courses with assignment counts",
	RunE:    runCourseList,
}

var courseShowCmd = &cobra.Command{
	Use:   "show [course-id]",
	Short: "Show a course and its assignments",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseShow,
}

var courseEditCmd = &cobra.Command{
	Use:   "edit [course-id]",
	Short: "Edit a course",
	Long: `Change course fields. Only the flags given are changed.

Examples:
  classtrack course edit 1731234567890 --name "Applied Programming II"
  classtrack course edit 1731234567890 --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runCourseEdit,
}

var courseDeleteCmd = &cobra.Command{
	Use:     "delete [course-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a course and all of its assignments",
	Args:    cobra.ExactArgs(1),
	RunE:    runCourseDelete,
}

var (
	courseColor    string
	courseCredits  int
	courseSemester string
	courseName     string
	courseCode     string
	courseArchive  bool
	courseRestore  bool
	courseAll      bool
	courseForce    bool
)

func init() {
	courseAddCmd.Flags().StringVarP(&courseColor, "color", "c", "", "Course color (hex)")
	courseAddCmd.Flags().IntVar(&courseCredits, "credits", 0, "Credit hours")
	courseAddCmd.Flags().StringVarP(&courseSemester, "semester", "s", "", "Semester")

	courseEditCmd.Flags().StringVarP(&courseName, "name", "n", "", "New name")
	courseEditCmd.Flags().StringVar(&courseCode, "code", "", "New code")
	courseEditCmd.Flags().StringVarP(&courseColor, "color", "c", "", "New color (hex)")
	courseEditCmd.Flags().IntVar(&courseCredits, "credits", 0, "New credit hours")
	courseEditCmd.Flags().StringVarP(&courseSemester, "semester", "s", "", "New semester")
	courseEditCmd.Flags().BoolVar(&courseArchive, "archive", false, "Hide the course from listings")
	courseEditCmd.Flags().BoolVar(&courseRestore, "unarchive", false, "Show an archived course again")

	courseListCmd.Flags().BoolVarP(&courseAll, "all", "a", false, "Include archived courses")

	courseDeleteCmd.Flags().BoolVarP(&courseForce, "force", "f", false, "Do not ask for confirmation")

	courseCmd.AddCommand(courseAddCmd)
	courseCmd.AddCommand(courseListCmd)
	courseCmd.AddCommand(courseShowCmd)
	courseCmd.AddCommand(courseEditCmd)
	courseCmd.AddCommand(courseDeleteCmd)
}

func runCourseAdd(cmd *cobra.Command, args []string) error {
	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	c, err := tr.Courses.Create(model.CourseInput{
		Name:     args[0],
		Code:     args[1],
		Color:    courseColor,
		Credits:  courseCredits,
		Semester: courseSemester,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created course: %s %s (id: %d)\n", c.Code, c.Name, c.ID)
	return nil
}

func runCourseList(cmd *cobra.Command, args []string) error {
	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	courses := tr.Courses.Active()
	if courseAll {
		courses = tr.Courses.All()
	}

	out := cmd.OutOrStdout()
	if len(courses) == 0 {
		fmt.Fprintln(out, "No courses found. Add one with: classtrack course add \"Name\" \"CODE 101\"")
		return nil
	}

	all := tr.Assignments.All()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-14s  %-9s  %-28s  %-10s  %s\n", "ID", "Code", "Name", "Semester", "Done")
	fmt.Fprintln(out, strings.Repeat("─", 78))

	totalOverdue := 0
	for _, c := range courses {
		counts := query.CountsForCourse(all, c.ID)
		totalOverdue += counts.Overdue

		done := fmt.Sprintf("%d/%d", counts.Completed, counts.Total)
		if counts.Overdue > 0 {
			done += overdueStyle.Render(fmt.Sprintf(" (%d overdue)", counts.Overdue))
		}
		name := truncate(c.Name, 28)
		if c.Archived {
			name = mutedStyle.Render(name + " (archived)")
		}
		fmt.Fprintf(out, "  %-14d  %-9s  %-28s  %-10s  %s\n", c.ID, c.Code, name, c.Semester, done)
	}

	fmt.Fprintln(out, strings.Repeat("─", 78))
	fmt.Fprintf(out, "  %d courses, %d overdue assignments\n\n", len(courses), totalOverdue)
	return nil
}

func runCourseShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	c, ok := tr.Courses.FindByID(id)
	if !ok {
		return fmt.Errorf("course not found: %d", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", titleStyle.Render(c.Code+"  "+c.Name))
	fmt.Fprintf(out, "  Semester: %s   Credits: %d   Color: %s\n", c.Semester, c.Credits, c.Color)
	fmt.Fprintf(out, "  Created:  %s\n", c.CreatedAt.Format(dates.DisplayLayout))

	assignments := query.SortByDueDate(tr.Assignments.ByCourse(c.ID))
	stats := query.CalculateStats(assignments)
	fmt.Fprintf(out, "  Progress: %d/%d done, %.1f%%, %d/%d points\n\n",
		stats.CompletedCount, len(assignments), stats.CompletionRate, stats.PointsEarned, stats.TotalPoints)

	if len(assignments) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("  No assignments yet."))
		return nil
	}
	printAssignments(out, tr, assignments)
	return nil
}

func runCourseEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var u model.CourseUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		u.Name = &courseName
	}
	if flags.Changed("code") {
		u.Code = &courseCode
	}
	if flags.Changed("color") {
		u.Color = &courseColor
	}
	if flags.Changed("credits") {
		u.Credits = &courseCredits
	}
	if flags.Changed("semester") {
		u.Semester = &courseSemester
	}
	if flags.Changed("archive") && flags.Changed("unarchive") {
		return fmt.Errorf("--archive and --unarchive cannot be combined")
	}
	if flags.Changed("archive") {
		archived := true
		u.Archived = &archived
	}
	if flags.Changed("unarchive") {
		archived := false
		u.Archived = &archived
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	c, err := tr.Courses.Update(id, u)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated course: %s %s\n", c.Code, c.Name)
	return nil
}

func runCourseDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tr, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer closeTracker(tr)

	c, ok := tr.Courses.FindByID(id)
	if !ok {
		return fmt.Errorf("course not found: %d", id)
	}

	if cfg.ConfirmDelete && !courseForce {
		n := len(tr.Assignments.ByCourse(id))
		prompt := fmt.Sprintf("Delete %s %s and its %d assignments?", c.Code, c.Name, n)
		if !confirm(cmd, prompt) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := tr.Courses.Delete(id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted course: %s %s\n", c.Code, c.Name)
	return nil
}
