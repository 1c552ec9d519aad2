package cli

import (
	"context"
	"time"

	"taskflow/internal/view"
)

// PomodoroCommand runs a focus countdown in the foreground
type PomodoroCommand struct {
	app *App
	// Length overrides the configured pomodoro length when positive.
	Length time.Duration
}

// NewPomodoroCommand creates a new pomodoro command handler
func NewPomodoroCommand(app *App) *PomodoroCommand {
	return &PomodoroCommand{app: app}
}

// Execute runs the pomodoro command
func (c *PomodoroCommand) Execute(ctx context.Context, args []string) error {
	length := c.Length
	if length <= 0 {
		length = c.app.config.Timer.PomodoroLength
	}
	renderer := c.app.renderer(ctx)

	p, err := c.app.api.StartPomodoro(ctx, length, func(remaining int) {
		c.app.printf("\r%s", renderer.Elapsed(remaining, "remaining"))
	}, nil)
	if err != nil {
		return err
	}

	select {
	case <-p.Done():
		c.app.printf("\nPomodoro complete. Take a break.\n")
	case <-ctx.Done():
		p.Stop()
		c.app.printf("\nPomodoro stopped with %s left\n", view.FormatElapsed(p.Remaining()))
	}
	return nil
}
