package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/existflow/classtrack/internal/dates"
)

// Priority of an assignment
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every valid priority, highest first
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities: high 3, medium 2, low 1, anything else 0
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of low, medium, high
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Assignment is a gradable task linked to a course by id only
type Assignment struct {
	ID            int64      `json:"id"`
	CourseID      int64      `json:"courseId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	DueDate       string     `json:"dueDate"`
	Priority      Priority   `json:"priority"`
	Points        int        `json:"points"`
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completedDate"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// AssignmentInput is raw form data; numeric fields arrive as text
type AssignmentInput struct {
	CourseID    string
	Title       string
	Description string
	DueDate     string
	Priority    string
	Points      string
}

// AssignmentUpdate carries the fields to change; nil means keep
type AssignmentUpdate struct {
	CourseID    *int64
	Title       *string
	Description *string
	DueDate     *string
	Priority    *Priority
	Points      *int
}

// NewAssignment builds an incomplete assignment from form input. Unparseable
// numbers coerce to zero.
func NewAssignment(id int64, in AssignmentInput, now time.Time) Assignment {
	courseID, _ := strconv.ParseInt(strings.TrimSpace(in.CourseID), 10, 64)
	points, _ := strconv.Atoi(strings.TrimSpace(in.Points))

	priority := Priority(in.Priority)
	if priority == "" {
		priority = PriorityMedium
	}

	return Assignment{
		ID:          id,
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Points:      points,
		CreatedAt:   now,
	}
}

// Apply returns a copy of a with the update merged in. Identifier and
// completion state are left alone.
func (a Assignment) Apply(u AssignmentUpdate) Assignment {
	if u.CourseID != nil {
		a.CourseID = *u.CourseID
	}
	if u.Title != nil {
		a.Title = *u.Title
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.DueDate != nil {
		a.DueDate = *u.DueDate
	}
	if u.Priority != nil {
		a.Priority = *u.Priority
	}
	if u.Points != nil {
		a.Points = *u.Points
	}
	return a
}

// SetCompleted keeps CompletedDate non-nil exactly when Completed is true
func (a *Assignment) SetCompleted(done bool, at time.Time) {
	a.Completed = done
	if done {
		a.CompletedDate = &at
	} else {
		a.CompletedDate = nil
	}
}

// IsOverdue returns true if the assignment is incomplete and its due date has passed
func (a *Assignment) IsOverdue() bool {
	return a.IsOverdueAt(dates.Now())
}

// IsOverdueAt is IsOverdue against an explicit moment
func (a *Assignment) IsOverdueAt(now time.Time) bool {
	if a.Completed {
		return false
	}
	return dates.Before(a.DueDate, now)
}

// DaysUntilDue returns calendar days to the due date, negative when past
func (a *Assignment) DaysUntilDue() (int, error) {
	return dates.DaysUntil(a.DueDate)
}
