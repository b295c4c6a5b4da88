// Package dates holds the calendar helpers shared by the query layer and the
// renderers: due-date parsing, overdue arithmetic and display formatting.
package dates

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DisplayLayout renders dates as "Nov 15, 2025"
const DisplayLayout = "Jan 2, 2006"

// ErrEmpty is returned by Parse for blank input
var ErrEmpty = errors.New("empty date")

// Now is the clock every helper reads. Tests replace it.
var Now = time.Now

// Parse reads a due date in local time. Date-only values ("2025-11-15") land on
// local midnight; values carrying a zone keep it.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	return dateparse.ParseIn(s, time.Local)
}

// Valid reports whether s parses to a real calendar date
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Midnight zeroes the time of day of t in its own location
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns the current day at local midnight
func Today() time.Time {
	return Midnight(Now())
}

// DaysUntil returns whole calendar days from today to dueDate; negative when past.
func DaysUntil(dueDate string) (int, error) {
	due, err := Parse(dueDate)
	if err != nil {
		return 0, err
	}
	return daysBetween(Now(), due), nil
}

// daysBetween compares calendar days in UTC so DST shifts never add a partial day
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(from.Location()).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(b.Sub(a).Hours() / 24))
}

// Format renders dateString as "Mon D, YYYY", or returns it unchanged when it
// does not parse.
func Format(dateString string) string {
	t, err := Parse(dateString)
	if err != nil {
		return dateString
	}
	return t.Format(DisplayLayout)
}

// Before reports whether dateString falls strictly before the current moment.
// Unparseable input is never before anything.
func Before(dateString string, now time.Time) bool {
	t, err := Parse(dateString)
	if err != nil {
		return false
	}
	return t.Before(now)
}
