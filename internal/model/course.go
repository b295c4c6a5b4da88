package model

import (
	"strings"
	"time"
)

// Default values for optional course fields
const (
	DefaultCourseColor = "#0062B8"
	DefaultCredits     = 3
	DefaultSemester    = "Fall 2025"
)

// Course is an academic class that assignments are tracked against
type Course struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Color     string    `json:"color"`
	Credits   int       `json:"credits"`
	Semester  string    `json:"semester"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
}

// CourseDefaults fills the optional fields of a new course
type CourseDefaults struct {
	Color    string
	Credits  int
	Semester string
}

// DefaultCourseDefaults returns the built-in defaults
func DefaultCourseDefaults() CourseDefaults {
	return CourseDefaults{
		Color:    DefaultCourseColor,
		Credits:  DefaultCredits,
		Semester: DefaultSemester,
	}
}

// CourseInput is the data a user supplies to create a course
type CourseInput struct {
	Name     string
	Code     string
	Color    string
	Credits  int
	Semester string
}

// CourseUpdate carries the fields to change; nil means keep
type CourseUpdate struct {
	Name     *string
	Code     *string
	Color    *string
	Credits  *int
	Semester *string
	Archived *bool
}

// NormalizeCode trims and upper-cases a course code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCourse builds a course from user input, applying defaults
func NewCourse(id int64, in CourseInput, defaults CourseDefaults, now time.Time) Course {
	c := Course{
		ID:        id,
		Name:      in.Name,
		Code:      NormalizeCode(in.Code),
		Color:     in.Color,
		Credits:   in.Credits,
		Semester:  in.Semester,
		CreatedAt: now,
	}
	if c.Color == "" {
		c.Color = defaults.Color
	}
	if c.Credits == 0 {
		c.Credits = defaults.Credits
	}
	if c.Semester == "" {
		c.Semester = defaults.Semester
	}
	return c
}

// Apply returns a copy of c with the update merged in. The identifier never changes.
func (c Course) Apply(u CourseUpdate) Course {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Code != nil {
		c.Code = NormalizeCode(*u.Code)
	}
	if u.Color != nil {
		c.Color = *u.Color
	}
	if u.Credits != nil {
		c.Credits = *u.Credits
	}
	if u.Semester != nil {
		c.Semester = *u.Semester
	}
	if u.Archived != nil {
		c.Archived = *u.Archived
	}
	return c
}
