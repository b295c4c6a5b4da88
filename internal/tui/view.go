package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
)

const sidebarWidth = 26

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderList())

	switch m.mode {
	case ModeAddAssignment, ModeAddCourse:
		main = lipgloss.Place(
			m.width, m.height-4,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		main = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStats(), m.renderStatusBar())
}

func (m Model) renderSidebar() string {
	var s string
	s += HeaderStyle.Render("ClassTrack") + "\n"
	s += HelpStyle.Render(dates.Now().Format(dates.DisplayLayout)) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", sidebarWidth-4)) + "\n\n"

	all := m.tracker.Assignments.All()
	s += m.sidebarItem(0, "  All courses", "") + "\n"
	for i, c := range m.courses {
		counts := query.CountsForCourse(all, c.ID)
		mark := ""
		if counts.Overdue > 0 {
			mark = OverdueStyle.Render(" !")
		}
		label := fmt.Sprintf("%s %-9s %d/%d", courseSwatch(c), truncate(c.Code, 9), counts.Completed, counts.Total)
		s += m.sidebarItem(i+1, label, mark) + "\n"
	}

	s += "\n" + HelpStyle.Render("c new course  d delete")
	return SidebarStyle.Width(sidebarWidth).Height(m.height - 4).Render(s)
}

func (m Model) sidebarItem(i int, label, mark string) string {
	cursor := "  "
	style := ItemStyle
	if i == m.courseCursor {
		cursor = "❯ "
		if m.pane == PaneSidebar {
			style = ItemSelectedStyle
		}
	}
	return style.Render(cursor+label) + mark
}

func (m Model) renderList() string {
	width := m.width - sidebarWidth - 2
	var s string

	title := "All courses"
	if c := m.currentCourse(); c != nil {
		title = fmt.Sprintf("%s  %s", c.Code, c.Name)
	}
	header := fmt.Sprintf("%s  [%s, by %s]", title, query.Statuses[m.status], query.SortKeys[m.sortBy])
	s += HeaderStyle.Render(header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(repeat("─", width-4)) + "\n\n"

	if len(m.items) == 0 {
		s += HelpStyle.Render("  No assignments. Press 'a' to add one.")
	}

	titleWidth := width - 40
	for i, a := range m.items {
		cursor := "  "
		style := ItemStyle
		if i == m.itemCursor && m.pane == PaneList {
			cursor = "❯ "
			style = ItemSelectedStyle
		}

		icon := "[ ]"
		if a.Completed {
			icon = "[x]"
			style = DoneStyle
		}

		line := style.Render(fmt.Sprintf("%s%s %-*s", cursor, icon, titleWidth, truncate(a.Title, titleWidth)))
		s += line + " " + dueLabel(a) + "  " + FormatPriority(a.Priority) + fmt.Sprintf("  %3d pts", a.Points) + "\n"
	}

	return ListStyle.Width(width).Height(m.height - 4).Render(s)
}

// dueLabel renders the due date with a relative hint
func dueLabel(a model.Assignment) string {
	label := fmt.Sprintf("%-12s", dates.Format(a.DueDate))
	if a.Completed {
		return CompleteStyle.Render(label)
	}
	if a.IsOverdue() {
		return OverdueStyle.Render(label)
	}
	return label
}

func (m Model) renderStats() string {
	s := m.tracker.Summary()
	line := fmt.Sprintf("%d/%d done  %.1f%%  %d overdue  %d/%d pts  high %d  medium %d  low %d",
		s.Completed, s.Total, s.CompletionRate, s.OverdueCount,
		s.PointsEarned, s.TotalPoints,
		s.ByPriority.High, s.ByPriority.Medium, s.ByPriority.Low)
	return StatsStyle.Width(m.width).Render(line)
}

func (m Model) renderStatusBar() string {
	if m.mode == ModeSearch {
		return StatusBarStyle.Width(m.width).Render("/" + m.input.View() + fmt.Sprintf("  [%d matches]", len(m.items)))
	}

	help := "a:add  c:course  x:done  d:del  s:status  o:sort  /:search  ?:help  q:quit"
	switch {
	case m.message != "":
		help = m.message
	case m.searchTerm != "":
		help = fmt.Sprintf("/%s  [%d matches]  Esc:clear", m.searchTerm, len(m.items))
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "New Course"
	if m.mode == ModeAddAssignment {
		course := m.currentCourse()
		if course == nil {
			course = &m.courses[0]
		}
		title = fmt.Sprintf("Add Assignment to: %s", course.Code)
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Fields are separated by ';'  Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│  h/l    Switch pane      │
│  Tab    Switch pane      │
│                          │
│  Actions                 │
│  ───────                 │
│  a       Add assignment  │
│  c       New course      │
│  x/Enter Toggle done     │
│  d       Delete          │
│  1-3     Set priority    │
│                          │
│  View                    │
│  ────                    │
│  s       Cycle status    │
│  o       Cycle sort      │
│  /       Search          │
│  r       Reload          │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, help)
}
