package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
	"github.com/existflow/classtrack/internal/tracker"
	"github.com/existflow/classtrack/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLASSTRACK_STORAGE_PATH", filepath.Join(home, "data", "classtrack.db"))
	t.Setenv("CLASSTRACK_LOG_FILE", filepath.Join(home, "classtrack.log"))

	prev := dates.Now
	dates.Now = func() time.Time { return time.Date(2025, 11, 10, 12, 0, 0, 0, time.Local) }
	t.Cleanup(func() { dates.Now = prev })
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// inspect opens the store the commands wrote to
func inspect(t *testing.T) *tracker.Tracker {
	t.Helper()
	tr, err := tracker.Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func createCourse(t *testing.T, name, code string) int64 {
	t.Helper()
	_, _, err := run(t, "", "course", "add", name, code)
	require.NoError(t, err)

	tr, err := tracker.Open(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = tr.Close() }()
	for _, c := range tr.Courses.All() {
		if c.Code == model.NormalizeCode(code) {
			return c.ID
		}
	}
	t.Fatalf("course %s not stored", code)
	return 0
}

func TestCourseAdd_DuplicateIsReported(t *testing.T) {
	setup(t)
	createCourse(t, "Applied Programming", "cse 310")

	_, stderr, err := run(t, "", "course", "add", "Other", "CSE 310")
	require.Error(t, err)
	assert.True(t, validation.IsKind(err, validation.DuplicateCode))
	assert.Contains(t, stderr, "⚠️  Course CSE 310 already exists")
}

func TestAddListDone(t *testing.T) {
	setup(t)
	cid := strconv.FormatInt(createCourse(t, "Applied Programming", "CSE 310"), 10)

	out, _, err := run(t, "", "add", "Essay", "draft", "--course", cid, "--due", "2025-11-15", "-p", "HIGH", "--points", "20")
	require.NoError(t, err)
	assert.Contains(t, out, `"Essay draft"`)
	assert.Contains(t, out, "Nov 15, 2025")

	_, stderr, err := run(t, "", "add", "No date", "--course", cid)
	require.Error(t, err)
	assert.Contains(t, stderr, "⚠️")

	out, _, err = run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Essay draft")
	assert.Contains(t, out, "CSE 310")

	a := inspect(t).Assignments.All()
	require.Len(t, a, 1)
	assert.Equal(t, model.PriorityHigh, a[0].Priority)

	out, _, err = run(t, "", "done", strconv.FormatInt(a[0].ID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	out, _, err = run(t, "", "list", "--status", "incomplete")
	require.NoError(t, err)
	assert.Contains(t, out, "No assignments found")

	out, _, err = run(t, "", "done", strconv.FormatInt(a[0].ID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, "Reopened")
}

func TestList_RejectsUnknownFlags(t *testing.T) {
	setup(t)
	_, _, err := run(t, "", "list", "--status", "late")
	assert.ErrorContains(t, err, "unknown status")

	_, _, err = run(t, "", "list", "--sort", "color")
	assert.ErrorContains(t, err, "unknown sort key")
}

func TestStatsJSON(t *testing.T) {
	setup(t)
	cid := strconv.FormatInt(createCourse(t, "Calculus", "MATH 101"), 10)
	for _, pts := range []string{"10", "20", "30"} {
		_, _, err := run(t, "", "add", "Set "+pts, "-c", cid, "-d", "2025-12-01", "--points", pts)
		require.NoError(t, err)
	}
	all := inspect(t).Assignments.All()
	for _, i := range []int{0, 2} {
		_, _, err := run(t, "", "done", strconv.FormatInt(all[i].ID, 10))
		require.NoError(t, err)
	}

	out, _, err := run(t, "", "stats", "--json")
	require.NoError(t, err)

	var s query.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 40, s.PointsEarned)
	assert.Equal(t, 60, s.TotalPoints)
	assert.Equal(t, 66.7, s.CompletionRate)
}

func TestCourseDelete_ConfirmAndCascade(t *testing.T) {
	setup(t)
	id := createCourse(t, "Applied Programming", "CSE 310")
	sid := strconv.FormatInt(id, 10)
	_, _, err := run(t, "", "add", "Lab", "-c", sid, "-d", "2025-11-20")
	require.NoError(t, err)

	out, _, err := run(t, "n\n", "course", "delete", sid)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, inspect(t).Courses.All(), 1)

	out, _, err = run(t, "y\n", "course", "delete", sid)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted course: CSE 310")

	tr := inspect(t)
	assert.Empty(t, tr.Courses.All())
	assert.Empty(t, tr.Assignments.All())
}

func TestCourseEdit(t *testing.T) {
	setup(t)
	id := strconv.FormatInt(createCourse(t, "Applied Programming", "CSE 310"), 10)

	_, _, err := run(t, "", "course", "edit", id, "--code", "cse 311", "--archive")
	require.NoError(t, err)

	tr := inspect(t)
	assert.Empty(t, tr.Courses.Active())
	require.Len(t, tr.Courses.All(), 1)
	assert.Equal(t, "CSE 311", tr.Courses.All()[0].Code)

	_, _, err = run(t, "", "course", "edit", id, "--code", "bad")
	assert.True(t, validation.IsKind(err, validation.InvalidCodeFormat))

	_, _, err = run(t, "", "course", "edit", "12345", "--name", "x")
	assert.Error(t, err)
}

func TestExportClearImport(t *testing.T) {
	setup(t)
	id := strconv.FormatInt(createCourse(t, "Applied Programming", "CSE 310"), 10)
	_, _, err := run(t, "", "add", "Lab", "-c", id, "-d", "2025-11-20")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snap.json")
	out, _, err := run(t, "", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 courses and 1 assignments")

	_, _, err = run(t, "", "clear", "--force")
	require.NoError(t, err)
	assert.Empty(t, inspect(t).Courses.All())

	_, _, err = run(t, "", "import", path, "--force")
	require.NoError(t, err)

	tr := inspect(t)
	assert.Len(t, tr.Courses.All(), 1)
	assert.Len(t, tr.Assignments.All(), 1)
}

func TestUpcoming(t *testing.T) {
	setup(t)
	id := strconv.FormatInt(createCourse(t, "Applied Programming", "CSE 310"), 10)
	for _, due := range []string{"2025-11-10", "2025-11-11", "2025-11-30"} {
		_, _, err := run(t, "", "add", "Due "+due, "-c", id, "-d", due)
		require.NoError(t, err)
	}

	out, _, err := run(t, "", "upcoming")
	require.NoError(t, err)
	assert.Contains(t, out, "today")
	assert.Contains(t, out, "tomorrow")
	assert.NotContains(t, out, "Due 2025-11-30")

	out, _, err = run(t, "", "upcoming", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Due 2025-11-30")
}

func TestRoot_PrintsSummaryWithoutTerminal(t *testing.T) {
	setup(t)
	out, _, err := run(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "0 courses")
	assert.Contains(t, out, "Assignments:  0")
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "-1", "0"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
