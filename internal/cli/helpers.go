package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/tracker"
	"github.com/existflow/classtrack/internal/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
)

// stderrReporter prints validation failures the way a user sees them
func stderrReporter(w io.Writer) validation.Reporter {
	return validation.ReporterFunc(func(message string) {
		fmt.Fprintf(w, "⚠️  %s\n", message)
	})
}

// openTracker opens the configured store, reporting validation failures on stderr
func openTracker(cmd *cobra.Command) (*tracker.Tracker, error) {
	return openTrackerWith(stderrReporter(cmd.ErrOrStderr()))
}

func openTrackerWith(reporter validation.Reporter) (*tracker.Tracker, error) {
	tr, err := tracker.Open(cfg, reporter)
	if err != nil {
		logger.Error("Failed to open storage", logger.F("error", err))
		return nil, err
	}
	return tr, nil
}

func closeTracker(tr *tracker.Tracker) {
	if err := tr.Close(); err != nil {
		logger.Warn("Failed to close storage", logger.F("error", err))
	}
}

// parseID reads a numeric record id argument
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

// confirm asks a yes/no question on the command's streams
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func courseLabel(tr *tracker.Tracker, id int64) string {
	if c, ok := tr.Courses.FindByID(id); ok {
		return c.Code
	}
	return "Unknown Course"
}

func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "▲ high"
	case model.PriorityMedium:
		return "  medium"
	default:
		return "  low"
	}
}

// truncate shortens s to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
