// ABOUTME: Tests for todo filtering
// ABOUTME: Covers status/priority intersection and day-boundary due matching

package todo

import (
	"testing"
	"time"

	"github.com/ahermansen/todochat/internal/domain"
)

func day(t time.Time, offset int) string {
	return t.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestFilter_DefaultMatchesEverything(t *testing.T) {
	todos := []domain.Todo{
		{ID: 1, Status: domain.StatusPending, Priority: domain.PriorityLow},
		{ID: 2, Status: domain.StatusCompleted, Priority: domain.PriorityHigh},
		{ID: 3}, // no status, no date
	}

	got := Filter(todos, DefaultCriteria(), time.Now())
	if len(got) != 3 {
		t.Errorf("expected all 3 todos, got %d", len(got))
	}
}

func TestFilter_ByStatus(t *testing.T) {
	todos := []domain.Todo{
		{ID: 1, Status: domain.StatusPending},
		{ID: 2, Status: domain.StatusCompleted},
		{ID: 3, Status: domain.StatusPending},
	}

	c := DefaultCriteria()
	c.Status = domain.StatusPending
	got := Filter(todos, c, time.Now())
	if len(got) != 2 {
		t.Fatalf("expected 2 pending todos, got %d", len(got))
	}
	for _, todo := range got {
		if todo.Status != domain.StatusPending {
			t.Errorf("unexpected todo %+v", todo)
		}
	}
}

func TestFilter_StatusAndPriorityIntersect(t *testing.T) {
	todos := []domain.Todo{
		{ID: 1, Status: domain.StatusPending, Priority: domain.PriorityHigh},
		{ID: 2, Status: domain.StatusPending, Priority: domain.PriorityLow},
		{ID: 3, Status: domain.StatusCompleted, Priority: domain.PriorityHigh},
	}

	c := DefaultCriteria()
	c.Status = domain.StatusPending
	c.Priority = domain.PriorityHigh
	got := Filter(todos, c, time.Now())
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only todo 1, got %+v", got)
	}
}

func TestFilter_DueToday(t *testing.T) {
	now := time.Now()
	todos := []domain.Todo{
		{ID: 1, Date: day(now, -1)},
		{ID: 2, Date: day(now, 0)},
		{ID: 3, Date: day(now, 1)},
		{ID: 4}, // undated
	}

	c := DefaultCriteria()
	c.Due = DueToday
	got := Filter(todos, c, now)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only today's todo, got %+v", got)
	}
}

func TestFilter_DueUpcoming(t *testing.T) {
	now := time.Now()
	todos := []domain.Todo{
		{ID: 1, Date: day(now, -1)},
		{ID: 2, Date: day(now, 0)},
		{ID: 3, Date: day(now, 1)},
		{ID: 4, Date: day(now, 30)},
	}

	c := DefaultCriteria()
	c.Due = DueUpcoming
	got := Filter(todos, c, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming todos, got %+v", got)
	}
	if got[0].ID != 3 || got[1].ID != 4 {
		t.Errorf("unexpected todos %+v", got)
	}
}

func TestFilter_DueOverdue(t *testing.T) {
	now := time.Now()
	todos := []domain.Todo{
		{ID: 1, Date: day(now, -10)},
		{ID: 2, Date: day(now, 0)},
		{ID: 3, Date: day(now, 1)},
	}

	c := DefaultCriteria()
	c.Due = DueOverdue
	got := Filter(todos, c, now)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only the overdue todo, got %+v", got)
	}
}

func TestFilter_UnparseableDateOnlyPassesAll(t *testing.T) {
	now := time.Now()
	todos := []domain.Todo{{ID: 1, Date: "next tuesday"}}

	for _, due := range []DueFilter{DueToday, DueUpcoming, DueOverdue} {
		c := DefaultCriteria()
		c.Due = due
		if got := Filter(todos, c, now); len(got) != 0 {
			t.Errorf("due=%s: expected no match for unparseable date, got %+v", due, got)
		}
	}

	if got := Filter(todos, DefaultCriteria(), now); len(got) != 1 {
		t.Errorf("expected unparseable date to pass the all filter, got %+v", got)
	}
}

func TestFilter_DoesNotMutateSource(t *testing.T) {
	todos := []domain.Todo{
		{ID: 1, Status: domain.StatusPending},
		{ID: 2, Status: domain.StatusCompleted},
	}

	c := DefaultCriteria()
	c.Status = domain.StatusCompleted
	Filter(todos, c, time.Now())

	if todos[0].ID != 1 || todos[1].ID != 2 {
		t.Errorf("source slice mutated: %+v", todos)
	}
}

func TestCriteria_Active(t *testing.T) {
	if DefaultCriteria().Active() {
		t.Error("default criteria should not be active")
	}

	c := DefaultCriteria()
	c.Due = DueOverdue
	if !c.Active() {
		t.Error("narrowed criteria should be active")
	}
}
