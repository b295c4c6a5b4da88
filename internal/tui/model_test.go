package tui

import (
	"path/filepath"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
	"github.com/existflow/classtrack/internal/storage"
	"github.com/existflow/classtrack/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *tracker.Tracker) {
	t.Helper()
	prev := dates.Now
	dates.Now = func() time.Time { return time.Date(2025, 11, 10, 12, 0, 0, 0, time.Local) }
	t.Cleanup(func() { dates.Now = prev })

	b, err := storage.OpenBolt(filepath.Join(t.TempDir(), "tui.bolt"))
	require.NoError(t, err)
	notice := &Notice{}
	tr := tracker.New(storage.NewGateway(b, 0), notice, model.DefaultCourseDefaults())
	t.Cleanup(func() { _ = tr.Close() })

	c, err := tr.Courses.Create(model.CourseInput{Name: "Applied Programming", Code: "CSE 310"})
	require.NoError(t, err)
	cid := strconv.FormatInt(c.ID, 10)
	for _, in := range []model.AssignmentInput{
		{CourseID: cid, Title: "Late essay", DueDate: "2025-11-01", Priority: "high", Points: "10"},
		{CourseID: cid, Title: "Lab", DueDate: "2025-11-20", Priority: "low", Points: "30"},
	} {
		_, err := tr.Assignments.Create(in)
		require.NoError(t, err)
	}

	m := NewModel(tr, notice)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, tr
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = send(m, msg)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_ListsSortedByDueDate(t *testing.T) {
	m, _ := newTestModel(t)
	require.Len(t, m.items, 2)
	assert.Equal(t, "Late essay", m.items[0].Title)
	assert.Contains(t, m.View(), "CSE 310")
}

func TestModel_ToggleAndStatusCycle(t *testing.T) {
	m, tr := newTestModel(t)

	m = press(m, "x")
	done, _ := tr.Assignments.FindByID(m.items[0].ID)
	assert.True(t, done.Completed)

	// all -> incomplete
	m = press(m, "s")
	assert.Equal(t, query.StatusIncomplete, query.Statuses[m.status])
	require.Len(t, m.items, 1)
	assert.Equal(t, "Lab", m.items[0].Title)
}

func TestModel_SortCycle(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "o")
	assert.Equal(t, query.SortPriority, query.SortKeys[m.sortBy])
	assert.Equal(t, "Late essay", m.items[0].Title)

	m = press(m, "o")
	assert.Equal(t, "Lab", m.items[0].Title, "most points first")
}

func TestModel_Search(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "/")
	m = typeText(m, "lab")
	require.Len(t, m.items, 1)
	m = press(m, "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "lab", m.searchTerm)

	m = press(m, "esc")
	assert.Len(t, m.items, 2)
}

func TestModel_AddCourseReportsValidation(t *testing.T) {
	m, tr := newTestModel(t)

	m = press(m, "c")
	m = typeText(m, "Duplicate; cse 310")
	m = press(m, "enter")
	assert.Contains(t, m.message, "Course CSE 310 already exists")
	assert.Len(t, tr.Courses.Active(), 1)

	m = press(m, "c")
	m = typeText(m, "Calculus; MATH 101")
	m = press(m, "enter")
	assert.Equal(t, "Course MATH 101 added", m.message)
	assert.Len(t, m.courses, 2)
}

func TestModel_AddAssignment(t *testing.T) {
	m, tr := newTestModel(t)

	m = press(m, "a")
	m = typeText(m, "Quiz; 2025-11-12; medium; 5")
	m = press(m, "enter")
	assert.Len(t, tr.Assignments.All(), 3)
	assert.Len(t, m.items, 3)

	m = press(m, "a")
	m = typeText(m, "No date")
	m = press(m, "enter")
	assert.Contains(t, m.message, "⚠️")
	assert.Len(t, tr.Assignments.All(), 3)
}

func TestModel_DeleteCourseCascades(t *testing.T) {
	m, tr := newTestModel(t)

	m = press(m, "h", "j")
	require.NotNil(t, m.currentCourse())
	m = press(m, "d")

	assert.Empty(t, tr.Courses.Active())
	assert.Empty(t, tr.Assignments.All())
	assert.Empty(t, m.items)
	assert.Equal(t, 0, m.courseCursor)
}

func TestModel_SetPriority(t *testing.T) {
	m, tr := newTestModel(t)
	id := m.items[1].ID

	m = press(m, "j", "1")
	a, _ := tr.Assignments.FindByID(id)
	assert.Equal(t, model.PriorityHigh, a.Priority)
}
