package view

import (
	"sort"
	"strings"

	"taskflow/internal/domain"
)

// SortMode names a list ordering.
type SortMode string

const (
	SortNewest   SortMode = "newest"
	SortDue      SortMode = "due"
	SortPriority SortMode = "priority"
)

// ParseSortMode matches s case-insensitively.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortNewest:
		return SortNewest, true
	case SortDue:
		return SortDue, true
	case SortPriority:
		return SortPriority, true
	}
	return "", false
}

var priorityRank = map[domain.Priority]int{
	domain.PriorityHigh:   0,
	domain.PriorityMedium: 1,
	domain.PriorityLow:    2,
}

func rank(p domain.Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return 99
}

// SortTasks returns a sorted copy. All orderings are stable. Tasks without a
// due date sort after every dated task; unknown priorities sort last. An
// unknown mode keeps input order.
func SortTasks(tasks []domain.Task, mode SortMode) []domain.Task {
	out := domain.CloneTasks(tasks)
	switch mode {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortDue:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].DueDate, out[j].DueDate
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return a.Before(*b)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return rank(out[i].Priority) < rank(out[j].Priority)
		})
	}
	return out
}
