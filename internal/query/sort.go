package query

import (
	"sort"
	"time"

	"github.com/existflow/classtrack/internal/dates"
	"github.com/existflow/classtrack/internal/model"
)

// Sort keys accepted by Sort
const (
	SortDueDate  = "due"
	SortPriority = "priority"
	SortPoints   = "points"
)

// SortKeys lists the canonical sort keys
var SortKeys = []string{SortDueDate, SortPriority, SortPoints}

// SortByDueDate orders list in place, earliest first, and returns it.
// Unparseable due dates sort last.
func SortByDueDate(list []model.Assignment) []model.Assignment {
	type keyed struct {
		a   model.Assignment
		due time.Time
		ok  bool
	}
	ks := make([]keyed, len(list))
	for i, a := range list {
		t, err := dates.Parse(a.DueDate)
		ks[i] = keyed{a: a, due: t, ok: err == nil}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		if !ks[i].ok || !ks[j].ok {
			return ks[i].ok && !ks[j].ok
		}
		return ks[i].due.Before(ks[j].due)
	})

	for i := range ks {
		list[i] = ks[i].a
	}
	return list
}

// SortByPriority orders list in place, high first, and returns it
func SortByPriority(list []model.Assignment) []model.Assignment {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority.Rank() > list[j].Priority.Rank()
	})
	return list
}

// SortByPoints orders list in place, most points first, and returns it
func SortByPoints(list []model.Assignment) []model.Assignment {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Points > list[j].Points
	})
	return list
}

// Sort orders list in place by the named key: due, priority or points.
// Unknown keys leave the order alone.
func Sort(list []model.Assignment, by string) []model.Assignment {
	switch by {
	case SortDueDate, "dueDate", "date":
		return SortByDueDate(list)
	case SortPriority:
		return SortByPriority(list)
	case SortPoints:
		return SortByPoints(list)
	}
	return list
}
