package domain

import (
	"strings"
	"time"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the known priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities() {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// Task represents a task in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID           string
	Title        string
	Description  string
	Category     string
	Priority     Priority
	DueDate      *time.Time // local midnight, nil when unscheduled
	Completed    bool
	CreatedAt    time.Time
	TimerSeconds int
	TimerRunning bool
	Tags         []string
}

// Clone returns a copy of t that shares no mutable state with it.
func (t Task) Clone() Task {
	clone := t
	if t.DueDate != nil {
		due := *t.DueDate
		clone.DueDate = &due
	}
	if t.Tags != nil {
		clone.Tags = append([]string(nil), t.Tags...)
	}
	return clone
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != ""
}

// HasDueDate reports whether the task is scheduled.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// CloneTasks deep-copies a task slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, task := range tasks {
		out[i] = task.Clone()
	}
	return out
}

// DateOf truncates t to midnight of its calendar day in local time.
func DateOf(t time.Time) time.Time {
	local := t.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// NewDate returns local midnight of the given calendar day.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
