// Package query filters, sorts and summarizes assignment lists for display.
package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
)

// All disables a criterion
const All = "all"

// Status filter values
type Status string

const (
	StatusAll        Status = "all"
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
	StatusOverdue    Status = "overdue"
)

// Statuses lists the status filters in display order
var Statuses = []Status{StatusAll, StatusIncomplete, StatusComplete, StatusOverdue}

// Criteria narrows an assignment list. Empty or "all" fields match everything.
type Criteria struct {
	CourseID   string
	Status     Status
	Priority   string
	SearchTerm string
}

// Filter returns the assignments matching every criterion. The input is not modified.
func Filter(list []model.Assignment, c Criteria) []model.Assignment {
	now := dates.Now()
	out := make([]model.Assignment, 0, len(list))

	courseAll := c.CourseID == "" || c.CourseID == All
	courseID, courseErr := strconv.ParseInt(strings.TrimSpace(c.CourseID), 10, 64)
	term := strings.ToLower(strings.TrimSpace(c.SearchTerm))

	for _, a := range list {
		if !courseAll && (courseErr != nil || a.CourseID != courseID) {
			continue
		}
		if !matchStatus(a, c.Status, now) {
			continue
		}
		if c.Priority != "" && c.Priority != All && string(a.Priority) != c.Priority {
			continue
		}
		if term != "" && !matchTerm(a, term) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchStatus(a model.Assignment, s Status, now time.Time) bool {
	switch s {
	case StatusComplete:
		return a.Completed
	case StatusIncomplete:
		return !a.Completed
	case StatusOverdue:
		return a.IsOverdueAt(now)
	default:
		return true
	}
}

func matchTerm(a model.Assignment, term string) bool {
	return strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Description), term)
}
