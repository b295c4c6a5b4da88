package validation

import (
	"testing"

	"github.com/existflow/classtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	messages []string
}

func (r *recorder) Report(message string) {
	r.messages = append(r.messages, message)
}

func validAssignment() model.Assignment {
	return model.Assignment{
		ID:       1,
		CourseID: 10,
		Title:    "Essay",
		DueDate:  "2025-11-15",
		Priority: model.PriorityMedium,
		Points:   10,
	}
}

func TestValidator_Course(t *testing.T) {
	existing := []model.Course{{ID: 1, Name: "Applied Programming", Code: "CSE 310"}}

	tests := []struct {
		name   string
		course model.Course
		want   Kind
	}{
		{"blank name", model.Course{ID: 2, Name: "   ", Code: "MATH 101"}, EmptyField},
		{"blank code", model.Course{ID: 2, Name: "Calculus", Code: " "}, EmptyField},
		{"too few letters", model.Course{ID: 2, Name: "Calculus", Code: "MA 101"}, InvalidCodeFormat},
		{"too many digits", model.Course{ID: 2, Name: "Calculus", Code: "MATH 1011"}, InvalidCodeFormat},
		{"two spaces", model.Course{ID: 2, Name: "Calculus", Code: "MATH  101"}, InvalidCodeFormat},
		{"duplicate ignoring case", model.Course{ID: 2, Name: "Other", Code: "cse 310"}, DuplicateCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			err := New(rec).Course(tt.course, existing)
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.want), "got %v", err)
			require.Len(t, rec.messages, 1, "failure is reported once")
			assert.Equal(t, err.Error(), rec.messages[0])
		})
	}
}

func TestValidator_CourseAccepts(t *testing.T) {
	existing := []model.Course{{ID: 1, Name: "Applied Programming", Code: "CSE 310"}}
	rec := &recorder{}
	v := New(rec)

	for _, code := range []string{"GESCI 110", "PUBH210", "abc 123"} {
		assert.NoError(t, v.Course(model.Course{ID: 2, Name: "x", Code: code}, existing), code)
	}
	assert.NoError(t, v.Course(model.Course{ID: 1, Name: "Renamed", Code: "CSE 310"}, existing),
		"a course never collides with itself")
	assert.Empty(t, rec.messages)
}

func TestValidator_Assignment(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *model.Assignment)
		want   Kind
	}{
		{"blank title", func(a *model.Assignment) { a.Title = "  " }, EmptyField},
		{"no course", func(a *model.Assignment) { a.CourseID = 0 }, MissingCourse},
		{"no due date", func(a *model.Assignment) { a.DueDate = "" }, MissingDueDate},
		{"whitespace due date", func(a *model.Assignment) { a.DueDate = "   " }, MissingDueDate},
		{"bad due date", func(a *model.Assignment) { a.DueDate = "not-a-date" }, InvalidDate},
		{"negative points", func(a *model.Assignment) { a.Points = -5 }, NegativePoints},
		{"unknown priority", func(a *model.Assignment) { a.Priority = "urgent" }, InvalidPriority},
		{"first failure wins", func(a *model.Assignment) { a.Title = ""; a.Points = -1 }, EmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssignment()
			tt.mutate(&a)

			rec := &recorder{}
			err := New(rec).Assignment(a)
			require.Error(t, err)
			assert.True(t, IsKind(err, tt.want), "got %v", err)
			assert.Len(t, rec.messages, 1)
		})
	}
}

func TestValidator_AssignmentAccepts(t *testing.T) {
	v := New(nil)
	a := validAssignment()
	assert.NoError(t, v.Assignment(a))

	a.Points = 0
	a.Priority = model.PriorityLow
	assert.NoError(t, v.Assignment(a))
}

func TestIsKind(t *testing.T) {
	err := &Error{Kind: DuplicateCode, Message: "dup"}
	assert.True(t, IsKind(err, DuplicateCode))
	assert.False(t, IsKind(err, EmptyField))
	assert.False(t, IsKind(assert.AnError, DuplicateCode))
}

func TestNew_RegistersCustomTags(t *testing.T) {
	assert.NotPanics(t, func() { New(nil) })
}
