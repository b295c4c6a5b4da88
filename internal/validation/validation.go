// Package validation checks course and assignment records before they are
// persisted. Every failure is reported to the user-facing channel and then
// returned to the caller.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/logger"
	"github.com/existflow/classtrack/internal/model"
	"github.com/go-playground/validator/v10"
)

// Kind names the rule a record broke
type Kind string

const (
	EmptyField        Kind = "EmptyField"
	InvalidCodeFormat Kind = "InvalidCodeFormat"
	DuplicateCode     Kind = "DuplicateCode"
	MissingCourse     Kind = "MissingCourse"
	MissingDueDate    Kind = "MissingDueDate"
	InvalidDate       Kind = "InvalidDate"
	NegativePoints    Kind = "NegativePoints"
	InvalidPriority   Kind = "InvalidPriority"
)

// Error is a failed validation with a message fit for the user
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsKind reports whether err is a validation failure of the given kind
func IsKind(err error, kind Kind) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Kind == kind
}

// Reporter is the user-facing error channel
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(message string)

// Report calls f
func (f ReporterFunc) Report(message string) { f(message) }

var codePattern = regexp.MustCompile(`^[A-Za-z]{3,5}\s?\d{3}$`)

// Field order matters: the first failing field decides the error.
type courseFields struct {
	Name string `validate:"notblank"`
	Code string `validate:"notblank,coursecode"`
}

type assignmentFields struct {
	Title    string `validate:"notblank"`
	CourseID int64  `validate:"required"`
	DueDate  string `validate:"notblank,calendardate"`
	Points   int    `validate:"gte=0"`
	Priority string `validate:"oneof=low medium high"`
}

type rule struct {
	kind    Kind
	message string
}

// rules maps "Field.tag" to the failure it means
var rules = map[string]rule{
	"Name.notblank":        {EmptyField, "Course name is required"},
	"Code.notblank":        {EmptyField, "Course code is required"},
	"Code.coursecode":      {InvalidCodeFormat, "Course code must be 3-5 letters + 3 numbers (e.g., CSE 310, GESCI 110)"},
	"Title.notblank":       {EmptyField, "Assignment title is required"},
	"CourseID.required":    {MissingCourse, "Please select a course for this assignment"},
	"DueDate.notblank":     {MissingDueDate, "Due date is required"},
	"DueDate.calendardate": {InvalidDate, "Invalid due date format"},
	"Points.gte":           {NegativePoints, "Points cannot be negative"},
	"Priority.oneof":       {InvalidPriority, "Priority must be low, medium, or high"},
}

// Validator runs the course and assignment checks
type Validator struct {
	validate *validator.Validate
	reporter Reporter
}

// New creates a Validator reporting failures to reporter. A nil reporter
// sends them to the log only.
func New(reporter Reporter) *Validator {
	v := validator.New()
	tags := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"coursecode": func(fl validator.FieldLevel) bool {
			return codePattern.MatchString(fl.Field().String())
		},
		"calendardate": func(fl validator.FieldLevel) bool {
			return dates.Valid(fl.Field().String())
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %q: %v", tag, err))
		}
	}
	return &Validator{validate: v, reporter: reporter}
}

// Course checks c against the stored collection. A stored course with the
// same id as c is the record being updated and never counts as a duplicate.
func (v *Validator) Course(c model.Course, existing []model.Course) error {
	if err := v.check(courseFields{Name: c.Name, Code: c.Code}); err != nil {
		return err
	}

	for _, other := range existing {
		if other.ID != c.ID && strings.EqualFold(other.Code, c.Code) {
			return v.fail(&Error{
				Kind:    DuplicateCode,
				Field:   "Code",
				Message: fmt.Sprintf("Course %s already exists", c.Code),
			})
		}
	}
	return nil
}

// Assignment checks a single assignment record
func (v *Validator) Assignment(a model.Assignment) error {
	return v.check(assignmentFields{
		Title:    a.Title,
		CourseID: a.CourseID,
		DueDate:  a.DueDate,
		Points:   a.Points,
		Priority: string(a.Priority),
	})
}

func (v *Validator) check(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	r, ok := rules[fe.Field()+"."+fe.Tag()]
	if !ok {
		r = rule{EmptyField, fmt.Sprintf("%s is invalid", fe.Field())}
	}
	return v.fail(&Error{Kind: r.kind, Field: fe.Field(), Message: r.message})
}

func (v *Validator) fail(e *Error) error {
	logger.Warn("Validation error", logger.F("kind", e.Kind), logger.F("message", e.Message))
	if v.reporter != nil {
		v.reporter.Report(e.Message)
	}
	return e
}
