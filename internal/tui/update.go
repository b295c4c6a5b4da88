package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddAssignment, ModeAddCourse:
			return m.updateInput(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneSidebar {
			m.pane = PaneList
		} else {
			m.pane = PaneSidebar
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneSidebar

	case key.Matches(msg, keys.Right):
		m.pane = PaneList

	case key.Matches(msg, keys.Up):
		m.handleUp()

	case key.Matches(msg, keys.Down):
		m.handleDown()

	case key.Matches(msg, keys.Priority):
		m.handlePriority(msg.String())

	case key.Matches(msg, keys.Add):
		return m.startInput(ModeAddAssignment, "Title; due date; priority; points")

	case key.Matches(msg, keys.Course):
		return m.startInput(ModeAddCourse, "Name; CODE 123")

	case key.Matches(msg, keys.Done), key.Matches(msg, keys.Enter):
		m.handleToggleDone()

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Status):
		m.status = (m.status + 1) % len(query.Statuses)
		m.itemCursor = 0
		m.loadData()
		m.message = fmt.Sprintf("Status: %s", query.Statuses[m.status])

	case key.Matches(msg, keys.Sort):
		m.sortBy = (m.sortBy + 1) % len(query.SortKeys)
		m.loadData()
		m.message = fmt.Sprintf("Sorted by %s", query.SortKeys[m.sortBy])

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.input.SetValue(m.searchTerm)
		m.input.Placeholder = "search title or description"
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Escape):
		if m.searchTerm != "" {
			m.searchTerm = ""
			m.loadData()
			m.message = "Search cleared"
		}

	case key.Matches(msg, keys.Refresh):
		m.tracker.Reload()
		m.loadData()
		m.message = "Reloaded from storage"

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleUp() {
	if m.pane == PaneSidebar {
		if m.courseCursor > 0 {
			m.courseCursor--
			m.itemCursor = 0
			m.loadData()
		}
	} else if m.itemCursor > 0 {
		m.itemCursor--
	}
}

func (m *Model) handleDown() {
	if m.pane == PaneSidebar {
		if m.courseCursor < len(m.courses) {
			m.courseCursor++
			m.itemCursor = 0
			m.loadData()
		}
	} else if m.itemCursor < len(m.items)-1 {
		m.itemCursor++
	}
}

func (m *Model) handlePriority(k string) {
	item := m.currentItem()
	if m.pane != PaneList || item == nil {
		return
	}

	p := model.PriorityLow
	switch k {
	case "1":
		p = model.PriorityHigh
	case "2":
		p = model.PriorityMedium
	}

	if _, err := m.tracker.Assignments.Update(item.ID, model.AssignmentUpdate{Priority: &p}); err != nil {
		m.fail(err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Priority set to %s", p)
}

func (m *Model) handleToggleDone() {
	item := m.currentItem()
	if m.pane != PaneList || item == nil {
		return
	}

	title := item.Title
	if err := m.tracker.Assignments.ToggleComplete(item.ID); err != nil {
		m.fail(err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Toggled %q", title)
}

func (m *Model) handleDelete() {
	if m.pane == PaneSidebar {
		course := m.currentCourse()
		if course == nil {
			return
		}
		name := course.Name
		if err := m.tracker.Courses.Delete(course.ID); err != nil {
			m.fail(err)
			return
		}
		m.courseCursor = 0
		m.loadData()
		m.message = fmt.Sprintf("Deleted course %s and its assignments", name)
		return
	}

	item := m.currentItem()
	if item == nil {
		return
	}
	title := item.Title
	if err := m.tracker.Assignments.Delete(item.ID); err != nil {
		m.fail(err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Deleted %q", title)
}

func (m Model) startInput(mode Mode, placeholder string) (tea.Model, tea.Cmd) {
	if mode == ModeAddAssignment && len(m.courses) == 0 {
		m.message = "Add a course first (c)"
		return m, nil
	}
	m.mode = mode
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := m.input.Value()
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		if mode == ModeAddCourse {
			m.submitCourse(value)
		} else {
			m.submitAssignment(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submitCourse(line string) {
	f := splitFields(line, 2)
	c, err := m.tracker.Courses.Create(model.CourseInput{Name: f[0], Code: f[1]})
	if err != nil {
		m.fail(err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Course %s added", c.Code)
}

// submitAssignment adds to the selected course, or the first course when
// "All courses" is selected.
func (m *Model) submitAssignment(line string) {
	course := m.currentCourse()
	if course == nil {
		course = &m.courses[0]
	}

	f := splitFields(line, 4)
	a, err := m.tracker.Assignments.Create(model.AssignmentInput{
		CourseID: strconv.FormatInt(course.ID, 10),
		Title:    f[0],
		DueDate:  f[1],
		Priority: f[2],
		Points:   f[3],
	})
	if err != nil {
		m.fail(err)
		return
	}
	m.loadData()
	m.message = fmt.Sprintf("Added %q to %s", a.Title, course.Code)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.searchTerm = m.input.Value()
	m.itemCursor = 0
	m.loadData()
	return m, cmd
}

// fail shows the reported validation message, or the error itself
func (m *Model) fail(err error) {
	logger.Warn("TUI action failed", logger.F("error", err))
	if msg := m.notice.take(); msg != "" {
		m.message = "⚠️ " + msg
		return
	}
	m.message = "Error: " + err.Error()
}
