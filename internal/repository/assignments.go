package repository

import (
	"fmt"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/storage"
	"github.com/existflow/classtrack/internal/validation"
)

// Assignments is the assignment collection
type Assignments struct {
	store     Store
	validator *validation.Validator
	ids       *IDSource
	items     []model.Assignment
}

// NewAssignments creates the repository and loads the stored collection
func NewAssignments(store Store, v *validation.Validator, ids *IDSource) *Assignments {
	r := &Assignments{store: store, validator: v, ids: ids}
	r.Reload()
	return r
}

// Reload replaces the in-memory collection with the stored one
func (r *Assignments) Reload() {
	var items []model.Assignment
	if !r.store.Load(storage.KeyAssignments, &items) || items == nil {
		items = []model.Assignment{}
	}
	for _, a := range items {
		r.ids.Observe(a.ID)
	}
	r.items = items
	logger.Info("Loaded assignments from storage", logger.F("count", len(items)))
}

// Create validates and stores a new, incomplete assignment
func (r *Assignments) Create(in model.AssignmentInput) (model.Assignment, error) {
	a := model.NewAssignment(r.ids.Next(), in, dates.Now())

	if err := r.validator.Assignment(a); err != nil {
		return model.Assignment{}, err
	}

	r.items = append(r.items, a)
	if err := r.save(); err != nil {
		return model.Assignment{}, err
	}

	logger.Info("Assignment created", logger.F("id", a.ID), logger.F("course", a.CourseID))
	return a, nil
}

// All returns a copy of the collection in stored order
func (r *Assignments) All() []model.Assignment {
	return append([]model.Assignment(nil), r.items...)
}

// ByCourse returns the assignments linked to courseID
func (r *Assignments) ByCourse(courseID int64) []model.Assignment {
	var out []model.Assignment
	for _, a := range r.items {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out
}

// FindByID returns the assignment with id
func (r *Assignments) FindByID(id int64) (model.Assignment, bool) {
	if i := r.index(id); i >= 0 {
		return r.items[i], true
	}
	return model.Assignment{}, false
}

// ToggleComplete flips the completion state, stamping or clearing the completion date
func (r *Assignments) ToggleComplete(id int64) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("assignment %d: %w", id, ErrNotFound)
	}

	a := &r.items[i]
	a.SetCompleted(!a.Completed, dates.Now())

	if err := r.save(); err != nil {
		return err
	}

	logger.Info("Assignment toggled", logger.F("id", id), logger.F("completed", a.Completed))
	return nil
}

// Update merges u into the assignment with id. Nothing is written when validation fails.
func (r *Assignments) Update(id int64, u model.AssignmentUpdate) (model.Assignment, error) {
	i := r.index(id)
	if i < 0 {
		return model.Assignment{}, fmt.Errorf("assignment %d: %w", id, ErrNotFound)
	}

	updated := r.items[i].Apply(u)
	if err := r.validator.Assignment(updated); err != nil {
		return model.Assignment{}, err
	}

	r.items[i] = updated
	if err := r.save(); err != nil {
		return model.Assignment{}, err
	}

	logger.Info("Assignment updated", logger.F("id", id))
	return updated, nil
}

// Delete removes the assignment with id; a missing id is a no-op
func (r *Assignments) Delete(id int64) error {
	r.removeWhere(func(a model.Assignment) bool { return a.ID == id })
	if err := r.save(); err != nil {
		return err
	}
	logger.Info("Assignment deleted", logger.F("id", id))
	return nil
}

// DeleteByCourse removes every assignment linked to courseID
func (r *Assignments) DeleteByCourse(courseID int64) error {
	removed := r.removeWhere(func(a model.Assignment) bool { return a.CourseID == courseID })
	if err := r.save(); err != nil {
		return err
	}
	logger.Info("Deleted all assignments for course", logger.F("course", courseID), logger.F("count", removed))
	return nil
}

// Replace swaps in a whole collection, as a restore does
func (r *Assignments) Replace(items []model.Assignment) error {
	if items == nil {
		items = []model.Assignment{}
	}
	for _, a := range items {
		r.ids.Observe(a.ID)
	}
	r.items = append([]model.Assignment(nil), items...)
	return r.save()
}

func (r *Assignments) removeWhere(match func(model.Assignment) bool) int {
	kept := make([]model.Assignment, 0, len(r.items))
	for _, a := range r.items {
		if !match(a) {
			kept = append(kept, a)
		}
	}
	removed := len(r.items) - len(kept)
	r.items = kept
	return removed
}

func (r *Assignments) save() error {
	if err := r.store.Save(storage.KeyAssignments, r.items); err != nil {
		return fmt.Errorf("failed to save assignments: %w", err)
	}
	return nil
}

func (r *Assignments) index(id int64) int {
	for i, a := range r.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}
