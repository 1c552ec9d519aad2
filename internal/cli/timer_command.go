package cli

import (
	"context"
	"time"

	"taskflow/internal/errors"
	"taskflow/internal/view"
)

// TimerCommand handles timer start, stop and reset
type TimerCommand struct {
	app *App
	// For stops a foreground timer after this long. Zero runs until the
	// context is cancelled.
	For time.Duration
}

// NewTimerCommand creates a new timer command handler
func NewTimerCommand(app *App) *TimerCommand {
	return &TimerCommand{app: app}
}

// Execute runs the timer command
func (c *TimerCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "timer", "usage: taskflow timer start|stop|reset <task-id>")
	}
	action, ref := args[0], args[1]
	task, err := c.app.api.ResolveTask(ctx, ref)
	if err != nil {
		return err
	}

	switch action {
	case "start":
		return c.run(ctx, task.ID)
	case "stop":
		stopped, err := c.app.api.StopTimer(ctx, task.ID)
		if err != nil {
			return err
		}
		c.app.printf("Stopped %s at %s\n", stopped.Title, view.FormatElapsed(stopped.TimerSeconds))
		return nil
	case "reset":
		if _, err := c.app.api.ResetTimer(ctx, task.ID); err != nil {
			return err
		}
		c.app.printf("Reset timer for %s\n", task.Title)
		return nil
	default:
		return errors.NewInvalidInputError("action", action, "must be start, stop or reset")
	}
}

// run keeps the timer ticking in the foreground until ctx is done or the
// optional duration elapses, then stops it.
func (c *TimerCommand) run(ctx context.Context, id string) error {
	renderer := c.app.renderer(ctx)
	started, err := c.app.api.StartTimer(ctx, id, func(id string) {
		if task, err := c.app.api.GetTask(ctx, id); err == nil {
			c.app.printf("\r%s", renderer.Elapsed(task.TimerSeconds, task.Title))
		}
	})
	if err != nil {
		return err
	}
	c.app.printf("%s", renderer.Elapsed(started.TimerSeconds, started.Title))

	var deadline <-chan time.Time
	if c.For > 0 {
		deadline = c.app.clock.After(c.For)
	}
	select {
	case <-ctx.Done():
	case <-deadline:
	}

	// ctx may already be cancelled; the stop must still happen.
	stopped, err := c.app.api.StopTimer(context.Background(), id)
	if err != nil {
		return err
	}
	c.app.printf("\nStopped %s at %s\n", stopped.Title, view.FormatElapsed(stopped.TimerSeconds))
	return nil
}
