package query

import (
	"math"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
)

// Stats aggregates an assignment list
type Stats struct {
	CompletedCount int     `json:"completedCount"`
	OverdueCount   int     `json:"overdueCount"`
	PointsEarned   int     `json:"pointsEarned"`
	TotalPoints    int     `json:"totalPoints"`
	CompletionRate float64 `json:"completionRate"` // percent, one decimal
}

// PriorityCounts buckets assignments by priority
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Summary is everything a chart needs
type Summary struct {
	Stats
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	Incomplete int            `json:"incomplete"`
	ByPriority PriorityCounts `json:"byPriority"`
}

// CourseCounts summarizes one course's assignments for its card
type CourseCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// CalculateStats walks list once
func CalculateStats(list []model.Assignment) Stats {
	now := dates.Now()
	var s Stats
	for i := range list {
		a := &list[i]
		if a.Completed {
			s.CompletedCount++
			s.PointsEarned += a.Points
		}
		s.TotalPoints += a.Points
		if a.IsOverdueAt(now) {
			s.OverdueCount++
		}
	}
	s.CompletionRate = completionRate(s.CompletedCount, len(list))
	return s
}

func completionRate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(done)*1000/float64(total)) / 10
}

// Summarize adds raw counts and priority buckets to the stats
func Summarize(list []model.Assignment) Summary {
	sum := Summary{Stats: CalculateStats(list), Total: len(list)}
	sum.Completed = sum.CompletedCount
	sum.Incomplete = sum.Total - sum.Completed

	for _, a := range list {
		switch a.Priority {
		case model.PriorityHigh:
			sum.ByPriority.High++
		case model.PriorityMedium:
			sum.ByPriority.Medium++
		case model.PriorityLow:
			sum.ByPriority.Low++
		}
	}
	return sum
}

// CountsForCourse counts the assignments linked to courseID
func CountsForCourse(list []model.Assignment, courseID int64) CourseCounts {
	now := dates.Now()
	var c CourseCounts
	for i := range list {
		a := &list[i]
		if a.CourseID != courseID {
			continue
		}
		c.Total++
		if a.Completed {
			c.Completed++
		}
		if a.IsOverdueAt(now) {
			c.Overdue++
		}
	}
	return c
}

// Upcoming returns incomplete assignments due between today and today+days,
// both ends inclusive, comparing calendar days.
func Upcoming(list []model.Assignment, days int) []model.Assignment {
	today := dates.Today()
	last := today.AddDate(0, 0, days)

	var out []model.Assignment
	for _, a := range list {
		if a.Completed {
			continue
		}
		due, err := dates.Parse(a.DueDate)
		if err != nil {
			continue
		}
		day := dates.Midnight(due.In(today.Location()))
		if !day.Before(today) && !day.After(last) {
			out = append(out, a)
		}
	}
	return out
}

// HasOverdue reports whether any assignment is overdue
func HasOverdue(list []model.Assignment) bool {
	now := dates.Now()
	for i := range list {
		if list[i].IsOverdueAt(now) {
			return true
		}
	}
	return false
}
