package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
	"github.com/existflow/classtrack/internal/tracker"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneSidebar Pane = iota
	PaneList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddAssignment
	ModeAddCourse
	ModeSearch
	ModeHelp
)

// Notice collects validation messages for the status bar
type Notice struct {
	last string
}

// Report implements validation.Reporter
func (n *Notice) Report(message string) {
	n.last = message
}

func (n *Notice) take() string {
	if n == nil {
		return ""
	}
	s := n.last
	n.last = ""
	return s
}

// Model is the main TUI model
type Model struct {
	tracker *tracker.Tracker
	notice  *Notice

	courses []model.Course
	items   []model.Assignment

	// UI state
	width        int
	height       int
	pane         Pane
	mode         Mode
	courseCursor int // 0 is "All courses"
	itemCursor   int

	input textinput.Model

	status     int
	sortBy     int
	searchTerm string

	message string
}

// NewModel creates a TUI model over an open tracker. Validation messages
// reported to notice are shown in the status bar.
func NewModel(t *tracker.Tracker, notice *Notice) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		tracker: t,
		notice:  notice,
		pane:    PaneList,
		input:   ti,
	}
	m.loadData()
	logger.Debug("TUI model initialized",
		logger.F("courses", len(m.courses)),
		logger.F("assignments", len(m.items)))
	return m
}

func (m *Model) criteria() query.Criteria {
	c := query.Criteria{
		CourseID:   query.All,
		Status:     query.Statuses[m.status],
		Priority:   query.All,
		SearchTerm: m.searchTerm,
	}
	if course := m.currentCourse(); course != nil {
		c.CourseID = strconv.FormatInt(course.ID, 10)
	}
	return c
}

func (m *Model) loadData() {
	m.courses = m.tracker.Courses.Active()
	if m.courseCursor > len(m.courses) {
		m.courseCursor = 0
	}

	filtered := query.Filter(m.tracker.Assignments.All(), m.criteria())
	m.items = query.Sort(filtered, query.SortKeys[m.sortBy])

	if m.itemCursor >= len(m.items) {
		m.itemCursor = len(m.items) - 1
	}
	if m.itemCursor < 0 {
		m.itemCursor = 0
	}
}

// currentCourse returns the selected course, nil when "All courses" is selected
func (m *Model) currentCourse() *model.Course {
	if m.courseCursor > 0 && m.courseCursor <= len(m.courses) {
		return &m.courses[m.courseCursor-1]
	}
	return nil
}

func (m *Model) currentItem() *model.Assignment {
	if m.itemCursor < len(m.items) {
		return &m.items[m.itemCursor]
	}
	return nil
}
