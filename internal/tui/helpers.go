package tui

import (
	"strings"
	"unicode/utf8"
)

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	if max < 4 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// repeat creates a string by repeating s n times
func repeat(s string, n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(s, n)
}

// splitFields splits a "a; b; c" form line into trimmed parts
func splitFields(line string, n int) []string {
	parts := strings.SplitN(line, ";", n)
	out := make([]string, n)
	for i := range out {
		if i < len(parts) {
			out[i] = strings.TrimSpace(parts[i])
		}
	}
	return out
}
