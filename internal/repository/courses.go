package repository

import (
	"fmt"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/existflow/classtrack/internal/model"
	"github.com/existflow/classtrack/internal/storage"
	"github.com/existflow/classtrack/internal/validation"
)

// AssignmentCascade removes the assignments of a deleted course
type AssignmentCascade interface {
	DeleteByCourse(courseID int64) error
}

// Courses is the course collection
type Courses struct {
	store     Store
	validator *validation.Validator
	ids       *IDSource
	cascade   AssignmentCascade
	defaults  model.CourseDefaults
	items     []model.Course
}

// NewCourses creates the repository and loads the stored collection
func NewCourses(store Store, v *validation.Validator, ids *IDSource, cascade AssignmentCascade, defaults model.CourseDefaults) *Courses {
	r := &Courses{
		store:     store,
		validator: v,
		ids:       ids,
		cascade:   cascade,
		defaults:  defaults,
	}
	r.Reload()
	return r
}

// Reload replaces the in-memory collection with the stored one
func (r *Courses) Reload() {
	var items []model.Course
	if !r.store.Load(storage.KeyCourses, &items) || items == nil {
		items = []model.Course{}
	}
	for _, c := range items {
		r.ids.Observe(c.ID)
	}
	r.items = items
	logger.Info("Loaded courses from storage", logger.F("count", len(items)))
}

// Create validates and stores a new course
func (r *Courses) Create(in model.CourseInput) (model.Course, error) {
	course := model.NewCourse(r.ids.Next(), in, r.defaults, dates.Now())

	if err := r.validator.Course(course, r.items); err != nil {
		return model.Course{}, err
	}

	r.items = append(r.items, course)
	if err := r.store.Save(storage.KeyCourses, r.items); err != nil {
		return model.Course{}, fmt.Errorf("failed to save course: %w", err)
	}

	logger.Info("Course created", logger.F("id", course.ID), logger.F("code", course.Code))
	return course, nil
}

// Active returns the courses that are not archived, in insertion order
func (r *Courses) Active() []model.Course {
	out := make([]model.Course, 0, len(r.items))
	for _, c := range r.items {
		if !c.Archived {
			out = append(out, c)
		}
	}
	return out
}

// All returns every course including archived ones
func (r *Courses) All() []model.Course {
	return append([]model.Course(nil), r.items...)
}

// FindByID returns the course with id
func (r *Courses) FindByID(id int64) (model.Course, bool) {
	if i := r.index(id); i >= 0 {
		return r.items[i], true
	}
	return model.Course{}, false
}

// Update merges u into the course with id. Nothing is written when validation fails.
func (r *Courses) Update(id int64, u model.CourseUpdate) (model.Course, error) {
	i := r.index(id)
	if i < 0 {
		return model.Course{}, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}

	updated := r.items[i].Apply(u)
	if err := r.validator.Course(updated, r.items); err != nil {
		return model.Course{}, err
	}

	r.items[i] = updated
	if err := r.store.Save(storage.KeyCourses, r.items); err != nil {
		return model.Course{}, fmt.Errorf("failed to save course: %w", err)
	}

	logger.Info("Course updated", logger.F("id", id), logger.F("code", updated.Code))
	return updated, nil
}

// Delete removes the course with id and then every assignment that
// references it. The two writes are independent; a failure between them
// leaves orphaned assignments behind.
func (r *Courses) Delete(id int64) error {
	kept := make([]model.Course, 0, len(r.items))
	for _, c := range r.items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	r.items = kept

	if r.cascade != nil {
		if err := r.cascade.DeleteByCourse(id); err != nil {
			return fmt.Errorf("failed to delete assignments of course %d: %w", id, err)
		}
	}

	if err := r.store.Save(storage.KeyCourses, r.items); err != nil {
		return fmt.Errorf("failed to save courses: %w", err)
	}

	logger.Info("Course deleted", logger.F("id", id))
	return nil
}

// Replace swaps in a whole collection, as a restore does
func (r *Courses) Replace(items []model.Course) error {
	if items == nil {
		items = []model.Course{}
	}
	for _, c := range items {
		r.ids.Observe(c.ID)
	}
	r.items = append([]model.Course(nil), items...)
	return r.store.Save(storage.KeyCourses, r.items)
}

func (r *Courses) index(id int64) int {
	for i, c := range r.items {
		if c.ID == id {
			return i
		}
	}
	return -1
}
