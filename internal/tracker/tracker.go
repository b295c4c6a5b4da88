// Package tracker wires storage, validation and the two repositories into one
// handle for the command line and the TUI.
package tracker

import (
	"fmt"
	"time"

	"github.com/existflow/classtrack/internal/config"
	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/query"
	"github.com/existflow/classtrack/internal/repository"
	"github.com/existflow/classtrack/internal/storage"
	"github.com/existflow/classtrack/internal/validation"
)

// Tracker owns the store and both collections
type Tracker struct {
	Courses     *repository.Courses
	Assignments *repository.Assignments

	store     *storage.Gateway
	validator *validation.Validator
}

// Open opens the configured store and loads both collections
func Open(cfg *config.Config, reporter validation.Reporter) (*Tracker, error) {
	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	defaults := model.CourseDefaults{
		Color:    cfg.Courses.Color,
		Credits:  cfg.Courses.Credits,
		Semester: cfg.Courses.Semester,
	}
	return New(store, reporter, defaults), nil
}

// New builds a tracker over an already open gateway
func New(store *storage.Gateway, reporter validation.Reporter, defaults model.CourseDefaults) *Tracker {
	v := validation.New(reporter)
	ids := repository.NewIDSource()
	assignments := repository.NewAssignments(store, v, ids)
	courses := repository.NewCourses(store, v, ids, assignments, defaults)

	return &Tracker{
		Courses:     courses,
		Assignments: assignments,
		store:       store,
		validator:   v,
	}
}

// CourseName resolves a course id for display
func (t *Tracker) CourseName(id int64) string {
	if c, ok := t.Courses.FindByID(id); ok {
		return c.Name
	}
	return "Unknown Course"
}

// Summary returns the chart summary over every assignment
func (t *Tracker) Summary() query.Summary {
	return query.Summarize(t.Assignments.All())
}

// Reload re-reads both collections from storage, the recovery path after a
// failed write.
func (t *Tracker) Reload() {
	t.Assignments.Reload()
	t.Courses.Reload()
}

// Reset clears both persisted collections and empties memory
func (t *Tracker) Reset() error {
	for _, key := range []string{storage.KeyCourses, storage.KeyAssignments} {
		if err := t.store.Clear(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	t.Reload()
	logger.Info("All data cleared")
	return nil
}

// Restore replaces both collections with a snapshot. Every record is
// validated first; nothing is written when any of them fails.
func (t *Tracker) Restore(courses []model.Course, assignments []model.Assignment) error {
	accepted, err := t.checkCourses(courses)
	if err != nil {
		return err
	}
	checked, err := t.checkAssignments(assignments)
	if err != nil {
		return err
	}

	if err := t.Assignments.Replace(checked); err != nil {
		return fmt.Errorf("failed to restore assignments: %w", err)
	}
	if err := t.Courses.Replace(accepted); err != nil {
		return fmt.Errorf("failed to restore courses: %w", err)
	}
	logger.Info("Data restored",
		logger.F("courses", len(accepted)),
		logger.F("assignments", len(checked)))
	return nil
}

// checkCourses normalizes codes and validates each course against the ones
// accepted before it
func (t *Tracker) checkCourses(courses []model.Course) ([]model.Course, error) {
	accepted := make([]model.Course, 0, len(courses))
	seen := make(map[int64]bool, len(courses))
	for _, c := range courses {
		if seen[c.ID] {
			return nil, fmt.Errorf("snapshot has duplicate course id %d", c.ID)
		}
		seen[c.ID] = true

		c.Code = model.NormalizeCode(c.Code)
		if err := t.validator.Course(c, accepted); err != nil {
			return nil, fmt.Errorf("snapshot course %d: %w", c.ID, err)
		}
		accepted = append(accepted, c)
	}
	return accepted, nil
}

// checkAssignments validates each assignment and keeps completedDate set
// exactly when the assignment is completed
func (t *Tracker) checkAssignments(assignments []model.Assignment) ([]model.Assignment, error) {
	checked := make([]model.Assignment, 0, len(assignments))
	seen := make(map[int64]bool, len(assignments))
	for _, a := range assignments {
		if seen[a.ID] {
			return nil, fmt.Errorf("snapshot has duplicate assignment id %d", a.ID)
		}
		seen[a.ID] = true

		if err := t.validator.Assignment(a); err != nil {
			return nil, fmt.Errorf("snapshot assignment %d: %w", a.ID, err)
		}
		switch {
		case a.Completed && a.CompletedDate == nil:
			a.SetCompleted(true, dates.Now())
		case !a.Completed:
			a.SetCompleted(false, time.Time{})
		}
		checked = append(checked, a)
	}
	return checked, nil
}

// Close closes the store
func (t *Tracker) Close() error {
	return t.store.Close()
}
