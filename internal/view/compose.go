package view

import (
	"strings"
	"time"

	"taskflow/internal/domain"
)

// Criteria is what the presentation layer asks for. Scope always applies.
// After that exactly one stage runs: filters if any filter is set, else the
// search query if not blank, else the sort.
type Criteria struct {
	Scope    Scope
	Query    string
	Category string
	Priority string
	// HighPriority and TimerRunning are the checkbox filters.
	HighPriority bool
	TimerRunning bool
	Sort         SortMode
}

// HasFilters reports whether any filter criterion is set.
func (c Criteria) HasFilters() bool {
	return c.HighPriority || c.TimerRunning ||
		(c.Category != "" && c.Category != All) ||
		(c.Priority != "" && c.Priority != All)
}

// Compose applies criteria to a snapshot.
func Compose(tasks []domain.Task, c Criteria, now time.Time) []domain.Task {
	result := NavFilter(tasks, c.Scope, now)

	switch {
	case c.HasFilters():
		result = FilterByCategory(result, c.Category)
		result = FilterByPriority(result, c.Priority)
		if c.HighPriority {
			result = FilterHighPriority(result)
		}
		if c.TimerRunning {
			result = FilterTimerRunning(result)
		}
	case strings.TrimSpace(c.Query) != "":
		result = FilterByQuery(result, c.Query)
	default:
		result = SortTasks(result, c.Sort)
	}
	return result
}
