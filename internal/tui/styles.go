package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/classtrack/internal/model"
)

// Color palette
var (
	// Priority colors
	PriorityHighColor   = lipgloss.Color("#FF6B6B")
	PriorityMediumColor = lipgloss.Color("#FFB347")
	PriorityLowColor    = lipgloss.Color("#4ECDC4")

	// Status colors
	Completed = lipgloss.Color("#95E1A3")
	Overdue   = lipgloss.Color("#FF6B6B")

	// UI colors
	Primary   = lipgloss.Color("#0062B8")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Highlight = lipgloss.Color("#4ECDC4")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight)

	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	OverdueStyle  = lipgloss.NewStyle().Foreground(Overdue).Bold(true)
	CompleteStyle = lipgloss.NewStyle().Foreground(Completed)

	StatsStyle = lipgloss.NewStyle().
			Foreground(Highlight).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// PriorityStyle returns the badge style for a priority
func PriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(PriorityMediumColor)
	default:
		return lipgloss.NewStyle().Foreground(PriorityLowColor)
	}
}

// FormatPriority renders a fixed-width priority badge
func FormatPriority(p model.Priority) string {
	label := "LOW"
	switch p {
	case model.PriorityHigh:
		label = "HIGH"
	case model.PriorityMedium:
		label = "MED"
	}
	return PriorityStyle(p).Render(label)
}

// courseSwatch renders a block in the course color
func courseSwatch(c model.Course) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■")
}
