package view

import (
	"fmt"
	"time"

	"taskflow/internal/domain"
)

// StreakWindow is how far back completed tasks count toward the streak.
const StreakWindow = 7 * 24 * time.Hour

// Stats summarises a snapshot.
type Stats struct {
	Total     int
	Completed int
	// Streak counts completed tasks created strictly after now minus StreakWindow.
	Streak int
	// TrackedSeconds sums timerSeconds over all tasks.
	TrackedSeconds int
}

// Summarize computes Stats for tasks as of now.
func Summarize(tasks []domain.Task, now time.Time) Stats {
	stats := Stats{Total: len(tasks)}
	cutoff := now.Add(-StreakWindow)
	for _, task := range tasks {
		stats.TrackedSeconds += task.TimerSeconds
		if !task.Completed {
			continue
		}
		stats.Completed++
		if task.CreatedAt.After(cutoff) {
			stats.Streak++
		}
	}
	return stats
}

// FormatElapsed renders seconds as HH:MM:SS. Hours grow past two digits
// rather than wrapping; negative input renders as zero.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}
