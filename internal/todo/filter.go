// ABOUTME: Pure filtering of the todo collection by status, priority, and due date
// ABOUTME: All criteria are intersected; day comparison is truncated to local midnight

package todo

import (
	"time"

	"github.com/ahermansen/todochat/internal/domain"
)

// FilterAll is the wildcard for the status and priority criteria.
const FilterAll = "All"

// DueFilter selects todos by due date relative to the current day.
type DueFilter string

const (
	DueAll      DueFilter = "all"
	DueToday    DueFilter = "today"
	DueUpcoming DueFilter = "upcoming"
	DueOverdue  DueFilter = "overdue"
)

// Criteria combines the three filter dimensions.
type Criteria struct {
	Status   string
	Priority string
	Due      DueFilter
}

// DefaultCriteria matches every todo.
func DefaultCriteria() Criteria {
	return Criteria{Status: FilterAll, Priority: FilterAll, Due: DueAll}
}

// Active reports whether any dimension narrows the collection.
func (c Criteria) Active() bool {
	return c.Status != FilterAll || c.Priority != FilterAll || c.Due != DueAll
}

// Filter returns the todos matching all three criteria. The source slice
// is never mutated. now anchors the day boundary for the due filter.
func Filter(todos []domain.Todo, c Criteria, now time.Time) []domain.Todo {
	today := truncateDay(now)

	result := make([]domain.Todo, 0, len(todos))
	for _, t := range todos {
		if c.Status != FilterAll && t.Status != c.Status {
			continue
		}
		if c.Priority != FilterAll && t.Priority != c.Priority {
			continue
		}
		if c.Due != DueAll && !matchesDue(t, c.Due, today) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// matchesDue compares the todo's date, truncated to day, against today.
// Todos with a missing or unparseable date only pass the all filter.
func matchesDue(t domain.Todo, due DueFilter, today time.Time) bool {
	parsed, ok := t.DueTime()
	if !ok {
		return false
	}
	day := truncateDay(parsed)

	switch due {
	case DueToday:
		return day.Equal(today)
	case DueUpcoming:
		return day.After(today)
	case DueOverdue:
		return day.Before(today)
	}
	return true
}

// truncateDay normalizes to a calendar day. Parsed dates land in UTC
// while now is local, so comparison has to ignore the location.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
