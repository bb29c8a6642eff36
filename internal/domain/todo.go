// ABOUTME: Core todo types shared by the API client, controller, and TUI
// ABOUTME: Mirrors the backend's todo schema; the client never assigns IDs

package domain

import "time"

// Status values as the backend serializes them.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Priority values as the backend serializes them.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Todo represents a single todo item owned by the backend.
type Todo struct {
	ID       int    `json:"id"`
	Notes    string `json:"notes"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	UserID   int    `json:"user_id,omitempty"`
}

// TodoInput represents the fields sent when creating or updating a todo.
// Pointers distinguish "unset" from zero values for PATCH bodies.
type TodoInput struct {
	Notes    *string `json:"notes,omitempty"`
	Date     *string `json:"date,omitempty"`
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

// dateLayouts are the formats the backend has been observed to emit.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DueTime parses the todo's date string. The second return is false when
// the date is empty or unparseable.
func (t Todo) DueTime() (time.Time, bool) {
	if t.Date == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, t.Date); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
