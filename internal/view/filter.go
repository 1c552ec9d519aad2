// Package view derives filtered, sorted and summarised task lists from a
// store snapshot. Every function is pure: the input slice is never modified
// and the result is a fresh copy.
package view

import (
	"strings"
	"time"

	"taskflow/internal/domain"
)

// All is the passthrough value for category and priority filters.
const All = "All"

// Scope is a navigation filter applied before any other criteria.
type Scope string

const (
	ScopeDashboard Scope = "dashboard"
	ScopeMyTasks   Scope = "my-tasks"
	ScopeToday     Scope = "today"
	ScopeUpcoming  Scope = "upcoming"
	ScopeCompleted Scope = "completed"
)

// Scopes lists the navigation scopes in menu order.
func Scopes() []Scope {
	return []Scope{ScopeDashboard, ScopeMyTasks, ScopeToday, ScopeUpcoming, ScopeCompleted}
}

// ParseScope matches s case-insensitively. An empty string is the dashboard.
func ParseScope(s string) (Scope, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ScopeDashboard, true
	}
	for _, scope := range Scopes() {
		if string(scope) == s {
			return scope, true
		}
	}
	return "", false
}

func filter(tasks []domain.Task, keep func(domain.Task) bool) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			out = append(out, task.Clone())
		}
	}
	return out
}

// FilterByQuery keeps tasks whose title, description or space-joined tags
// contain text, ignoring case. Blank text keeps everything.
func FilterByQuery(tasks []domain.Task, text string) []domain.Task {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return domain.CloneTasks(tasks)
	}
	return filter(tasks, func(task domain.Task) bool {
		return strings.Contains(strings.ToLower(task.Title), query) ||
			strings.Contains(strings.ToLower(task.Description), query) ||
			strings.Contains(strings.ToLower(strings.Join(task.Tags, " ")), query)
	})
}

// FilterByCategory keeps exact category matches. "" and All keep everything.
func FilterByCategory(tasks []domain.Task, category string) []domain.Task {
	if category == "" || category == All {
		return domain.CloneTasks(tasks)
	}
	return filter(tasks, func(task domain.Task) bool {
		return task.Category == category
	})
}

// FilterByPriority keeps exact priority matches. "" and All keep everything.
func FilterByPriority(tasks []domain.Task, priority string) []domain.Task {
	if priority == "" || priority == All {
		return domain.CloneTasks(tasks)
	}
	return filter(tasks, func(task domain.Task) bool {
		return string(task.Priority) == priority
	})
}

// FilterTimerRunning keeps tasks with a running timer.
func FilterTimerRunning(tasks []domain.Task) []domain.Task {
	return filter(tasks, func(task domain.Task) bool { return task.TimerRunning })
}

// FilterHighPriority keeps High priority tasks.
func FilterHighPriority(tasks []domain.Task) []domain.Task {
	return filter(tasks, func(task domain.Task) bool { return task.Priority == domain.PriorityHigh })
}

// NavFilter applies a navigation scope. Due dates are compared by local
// calendar day against now. An unknown scope behaves like the dashboard.
func NavFilter(tasks []domain.Task, scope Scope, now time.Time) []domain.Task {
	today := domain.DateOf(now)
	switch scope {
	case ScopeMyTasks:
		return filter(tasks, func(task domain.Task) bool { return !task.Completed })
	case ScopeToday:
		return filter(tasks, func(task domain.Task) bool {
			return task.DueDate != nil && domain.DateOf(*task.DueDate).Equal(today)
		})
	case ScopeUpcoming:
		return filter(tasks, func(task domain.Task) bool {
			return task.DueDate != nil && domain.DateOf(*task.DueDate).After(today)
		})
	case ScopeCompleted:
		return filter(tasks, func(task domain.Task) bool { return task.Completed })
	default:
		return domain.CloneTasks(tasks)
	}
}
