package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCourse_AppliesDefaults(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	c := NewCourse(7, CourseInput{Name: "Applied Programming", Code: " cse 310 "}, DefaultCourseDefaults(), now)

	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "CSE 310", c.Code)
	assert.Equal(t, DefaultCourseColor, c.Color)
	assert.Equal(t, DefaultCredits, c.Credits)
	assert.Equal(t, DefaultSemester, c.Semester)
	assert.False(t, c.Archived)
	assert.Equal(t, now, c.CreatedAt)
}

func TestCourse_ApplyKeepsID(t *testing.T) {
	c := Course{ID: 1, Name: "Old", Code: "CSE 310"}
	name, code := "New", "math 101"
	got := c.Apply(CourseUpdate{Name: &name, Code: &code})

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "MATH 101", got.Code)
	assert.Equal(t, "Old", c.Name, "receiver is not modified")
}

func TestNewAssignment_CoercesInput(t *testing.T) {
	now := time.Now()

	a := NewAssignment(1, AssignmentInput{CourseID: "42", Title: "Essay", DueDate: "2025-11-15", Points: " 25 "}, now)
	assert.Equal(t, int64(42), a.CourseID)
	assert.Equal(t, 25, a.Points)
	assert.Equal(t, PriorityMedium, a.Priority)
	assert.False(t, a.Completed)
	assert.Nil(t, a.CompletedDate)

	b := NewAssignment(2, AssignmentInput{CourseID: "abc", Points: "lots", Priority: "high"}, now)
	assert.Zero(t, b.CourseID)
	assert.Zero(t, b.Points)
	assert.Equal(t, PriorityHigh, b.Priority)
}

func TestAssignment_SetCompleted(t *testing.T) {
	var a Assignment
	at := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

	a.SetCompleted(true, at)
	assert.True(t, a.Completed)
	if assert.NotNil(t, a.CompletedDate) {
		assert.Equal(t, at, *a.CompletedDate)
	}

	a.SetCompleted(false, at)
	assert.False(t, a.Completed)
	assert.Nil(t, a.CompletedDate)
}

func TestAssignment_IsOverdueAt(t *testing.T) {
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.Local)

	past := Assignment{DueDate: "2025-11-09"}
	future := Assignment{DueDate: "2025-11-11"}
	donePast := Assignment{DueDate: "2025-11-01", Completed: true}

	assert.True(t, past.IsOverdueAt(now))
	assert.False(t, future.IsOverdueAt(now))
	assert.False(t, donePast.IsOverdueAt(now))
}

func TestPriority_Rank(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())
	assert.False(t, Priority("").Valid())
}
