package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/view"
)

// shortIDLength is how many id characters lists show. Any unique prefix is
// accepted back as a task reference.
const shortIDLength = 8

// Renderer formats tasks for the terminal using the active theme.
type Renderer struct {
	palette    Palette
	timeFormat string
	dateFormat string
	now        func() time.Time

	header  lipgloss.Style
	faint   lipgloss.Style
	text    lipgloss.Style
	accent  lipgloss.Style
	done    lipgloss.Style
	running lipgloss.Style
	overdue lipgloss.Style
	r       *lipgloss.Renderer
}

// NewRenderer builds styles bound to out, so colour is only emitted when out
// is a terminal.
func NewRenderer(out io.Writer, theme domain.Theme, display config.DisplayConfig, now func() time.Time) *Renderer {
	r := lipgloss.NewRenderer(out)
	palette := PaletteFor(theme)
	if now == nil {
		now = time.Now
	}
	return &Renderer{
		palette:    palette,
		timeFormat: display.TimeFormat,
		dateFormat: display.DateFormat,
		now:        now,
		header:     r.NewStyle().Bold(true).Foreground(palette.Header),
		faint:      r.NewStyle().Foreground(palette.Faint),
		text:       r.NewStyle().Foreground(palette.Text),
		accent:     r.NewStyle().Foreground(palette.Accent),
		done:       r.NewStyle().Foreground(palette.Done),
		running:    r.NewStyle().Foreground(palette.Running),
		overdue:    r.NewStyle().Foreground(palette.Overdue),
		r:          r,
	}
}

// ShortID truncates id for display.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) <= shortIDLength {
		return id
	}
	return string(runes[:shortIDLength])
}

// TaskList renders one line per task under a header.
func (r *Renderer) TaskList(tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf("    %-8s  %-6s  %-10s  %-12s  %-8s  %s", "ID", "PRI", "CATEGORY", "DUE", "TRACKED", "TITLE")))
	b.WriteString("\n")
	for _, task := range tasks {
		b.WriteString(r.taskLine(task))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) taskLine(task domain.Task) string {
	check := "[ ]"
	if task.Completed {
		check = r.done.Render("[x]")
	}

	priority := r.r.NewStyle().Foreground(r.palette.PriorityColor(task.Priority)).
		Render(fmt.Sprintf("%-6s", task.Priority))

	due := fmt.Sprintf("%-12s", "-")
	if task.DueDate != nil {
		due = fmt.Sprintf("%-12s", task.DueDate.Format(r.dateFormat))
		if r.isOverdue(task) {
			due = r.overdue.Render(due)
		}
	}

	tracked := fmt.Sprintf("%-8s", view.FormatElapsed(task.TimerSeconds))
	if task.TimerRunning {
		tracked = r.running.Render(tracked)
	}

	title := r.text.Render(task.Title)
	if task.Completed {
		title = r.faint.Render(task.Title)
	}

	return fmt.Sprintf("%s %s  %s  %s  %s  %s  %s",
		check,
		r.accent.Render(fmt.Sprintf("%-8s", ShortID(task.ID))),
		priority,
		fmt.Sprintf("%-10s", task.Category),
		due,
		tracked,
		title)
}

// TaskDetail renders every field of task.
func (r *Renderer) TaskDetail(task domain.Task) string {
	now := r.now()
	var b strings.Builder
	b.WriteString(r.header.Render(task.Title))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(r.faint.Render(fmt.Sprintf("  %-10s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("ID", task.ID)
	status := "Open"
	if task.Completed {
		status = r.done.Render("Completed")
	}
	row("Status", status)
	row("Priority", r.r.NewStyle().Foreground(r.palette.PriorityColor(task.Priority)).Render(string(task.Priority)))
	row("Category", task.Category)
	if task.DueDate != nil {
		rel := humanize.RelTime(*task.DueDate, domain.DateOf(now), "ago", "from now")
		if domain.DateOf(*task.DueDate).Equal(domain.DateOf(now)) {
			rel = "today"
		}
		due := fmt.Sprintf("%s (%s)", task.DueDate.Format(r.dateFormat), rel)
		if r.isOverdue(task) {
			due = r.overdue.Render(due)
		}
		row("Due", due)
	}
	if !task.CreatedAt.IsZero() {
		row("Created", fmt.Sprintf("%s (%s)", task.CreatedAt.In(time.Local).Format(r.timeFormat),
			humanize.RelTime(task.CreatedAt, now, "ago", "from now")))
	}
	tracked := view.FormatElapsed(task.TimerSeconds)
	if task.TimerRunning {
		tracked = r.running.Render(tracked + " (running)")
	}
	row("Tracked", tracked)
	if len(task.Tags) > 0 {
		row("Tags", strings.Join(task.Tags, ", "))
	}
	if strings.TrimSpace(task.Description) != "" {
		b.WriteString("\n")
		b.WriteString(task.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// Stats renders the summary counters.
func (r *Renderer) Stats(stats view.Stats) string {
	var b strings.Builder
	b.WriteString(r.header.Render("Summary"))
	b.WriteString("\n")
	line := func(label string, value string) {
		b.WriteString(r.faint.Render(fmt.Sprintf("  %-10s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	line("Tasks", fmt.Sprintf("%d", stats.Total))
	line("Completed", r.done.Render(fmt.Sprintf("%d", stats.Completed)))
	line("Streak", fmt.Sprintf("%d completed in the last %d days", stats.Streak, int(view.StreakWindow/(24*time.Hour))))
	line("Tracked", view.FormatElapsed(stats.TrackedSeconds))
	return b.String()
}

// Elapsed renders a timer line.
func (r *Renderer) Elapsed(seconds int, label string) string {
	return fmt.Sprintf("%s  %s", r.running.Render(view.FormatElapsed(seconds)), label)
}

func (r *Renderer) isOverdue(task domain.Task) bool {
	return task.DueDate != nil && !task.Completed &&
		domain.DateOf(*task.DueDate).Before(domain.DateOf(r.now()))
}
