package tracker

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/existflow/classtrack/internal/config"
	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
	"github.com/existflow/classtrack/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTracker(t *testing.T, driver string) (*Tracker, *config.Config, *[]string) {
	t.Helper()
	prev := dates.Now
	dates.Now = func() time.Time { return time.Date(2025, 11, 10, 12, 0, 0, 0, time.Local) }
	t.Cleanup(func() { dates.Now = prev })

	cfg := config.DefaultConfig()
	cfg.Storage.Driver = driver
	cfg.Storage.Path = filepath.Join(t.TempDir(), "classtrack."+driver)

	var reported []string
	tr, err := Open(cfg, validation.ReporterFunc(func(msg string) { reported = append(reported, msg) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Close() })
	return tr, cfg, &reported
}

func TestTracker_Scenario(t *testing.T) {
	for _, driver := range []string{config.DriverSQLite, config.DriverBolt} {
		t.Run(driver, func(t *testing.T) {
			tr, _, reported := openTracker(t, driver)

			c, err := tr.Courses.Create(model.CourseInput{Name: "Applied Programming", Code: "cse 310"})
			require.NoError(t, err)
			assert.Equal(t, "CSE 310", c.Code)

			_, err = tr.Courses.Create(model.CourseInput{Name: "Dup", Code: "CSE 310"})
			assert.True(t, validation.IsKind(err, validation.DuplicateCode))
			assert.Len(t, *reported, 1)

			cid := strconv.FormatInt(c.ID, 10)
			for _, in := range []model.AssignmentInput{
				{CourseID: cid, Title: "A", DueDate: "2025-12-01", Points: "10"},
				{CourseID: cid, Title: "B", DueDate: "2025-12-01", Points: "20"},
				{CourseID: cid, Title: "C", DueDate: "2025-12-01", Points: "30"},
			} {
				_, err := tr.Assignments.Create(in)
				require.NoError(t, err)
			}
			all := tr.Assignments.All()
			require.NoError(t, tr.Assignments.ToggleComplete(all[0].ID))
			require.NoError(t, tr.Assignments.ToggleComplete(all[2].ID))

			s := tr.Summary()
			assert.Equal(t, 40, s.PointsEarned)
			assert.Equal(t, 60, s.TotalPoints)
			assert.Equal(t, 66.7, s.CompletionRate)
			assert.Equal(t, 3, s.ByPriority.Medium)

			assert.Equal(t, "Applied Programming", tr.CourseName(c.ID))
			require.NoError(t, tr.Courses.Delete(c.ID))
			assert.Empty(t, tr.Courses.Active())
			assert.Empty(t, tr.Assignments.All())
			assert.Equal(t, "Unknown Course", tr.CourseName(c.ID))
		})
	}
}

func TestTracker_ResetAndRestore(t *testing.T) {
	tr, cfg, _ := openTracker(t, config.DriverSQLite)

	c, err := tr.Courses.Create(model.CourseInput{Name: "Calculus", Code: "MATH 101"})
	require.NoError(t, err)
	_, err = tr.Assignments.Create(model.AssignmentInput{CourseID: strconv.FormatInt(c.ID, 10), Title: "Set 1", DueDate: "2025-11-20"})
	require.NoError(t, err)

	courses, assignments := tr.Courses.All(), tr.Assignments.All()

	require.NoError(t, tr.Reset())
	assert.Empty(t, tr.Courses.Active())
	assert.Empty(t, tr.Assignments.All())

	require.NoError(t, tr.Restore(courses, assignments))
	require.NoError(t, tr.Close())

	reopened, err := Open(cfg, nil)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	assert.Len(t, reopened.Courses.Active(), 1)
	assert.Len(t, reopened.Assignments.All(), 1)
	assert.Equal(t, query.CourseCounts{Total: 1}, query.CountsForCourse(reopened.Assignments.All(), c.ID))
}

func TestTracker_RestoreRejectsInvalidSnapshot(t *testing.T) {
	valid := model.Assignment{ID: 10, CourseID: 1, Title: "Lab", DueDate: "2025-11-20", Priority: model.PriorityLow}

	tests := []struct {
		name        string
		courses     []model.Course
		assignments []model.Assignment
		kind        validation.Kind
	}{
		{
			name:    "blank course name",
			courses: []model.Course{{ID: 1, Name: "", Code: "CSE 310"}},
			kind:    validation.EmptyField,
		},
		{
			name: "codes collide after normalizing",
			courses: []model.Course{
				{ID: 1, Name: "Applied Programming", Code: "CSE 310"},
				{ID: 2, Name: "Other", Code: " cse 310"},
			},
			kind: validation.DuplicateCode,
		},
		{
			name:        "negative points",
			courses:     []model.Course{{ID: 1, Name: "Applied Programming", Code: "CSE 310"}},
			assignments: []model.Assignment{valid, {ID: 11, CourseID: 1, Title: "Quiz", DueDate: "2025-11-21", Priority: model.PriorityLow, Points: -5}},
			kind:        validation.NegativePoints,
		},
		{
			name:        "unknown priority",
			courses:     []model.Course{{ID: 1, Name: "Applied Programming", Code: "CSE 310"}},
			assignments: []model.Assignment{{ID: 11, CourseID: 1, Title: "Quiz", DueDate: "2025-11-21", Priority: "urgent"}},
			kind:        validation.InvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _, reported := openTracker(t, config.DriverSQLite)
			existing, err := tr.Courses.Create(model.CourseInput{Name: "Calculus", Code: "MATH 101"})
			require.NoError(t, err)

			err = tr.Restore(tt.courses, tt.assignments)
			require.Error(t, err)
			assert.True(t, validation.IsKind(err, tt.kind), "got %v", err)
			assert.Len(t, *reported, 1)

			require.Len(t, tr.Courses.All(), 1, "nothing replaced")
			assert.Equal(t, existing.ID, tr.Courses.All()[0].ID)
			tr.Reload()
			assert.Len(t, tr.Courses.All(), 1, "nothing written")
		})
	}

	t.Run("duplicate ids", func(t *testing.T) {
		tr, _, _ := openTracker(t, config.DriverBolt)
		err := tr.Restore(nil, []model.Assignment{valid, valid})
		assert.ErrorContains(t, err, "duplicate assignment id")
	})
}

func TestTracker_RestoreNormalizesRecords(t *testing.T) {
	tr, _, _ := openTracker(t, config.DriverBolt)
	stale := time.Date(2025, 10, 1, 9, 0, 0, 0, time.Local)

	err := tr.Restore(
		[]model.Course{{ID: 1, Name: "Applied Programming", Code: " cse 310 "}},
		[]model.Assignment{
			{ID: 10, CourseID: 1, Title: "Done, no date", DueDate: "2025-11-20", Priority: model.PriorityLow, Completed: true},
			{ID: 11, CourseID: 1, Title: "Open, stale date", DueDate: "2025-11-21", Priority: model.PriorityHigh, CompletedDate: &stale},
		},
	)
	require.NoError(t, err)

	c, ok := tr.Courses.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "CSE 310", c.Code)

	done, _ := tr.Assignments.FindByID(10)
	require.NotNil(t, done.CompletedDate)
	assert.Equal(t, dates.Now(), *done.CompletedDate)

	open, _ := tr.Assignments.FindByID(11)
	assert.False(t, open.Completed)
	assert.Nil(t, open.CompletedDate)
}
