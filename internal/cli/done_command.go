package cli

import (
	"context"

	"taskflow/internal/errors"
)

// DoneCommand toggles completion
type DoneCommand struct {
	app *App
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "done", "usage: taskflow done <task-id>")
	}
	ref, err := c.app.api.ResolveTask(ctx, args[0])
	if err != nil {
		return err
	}
	task, err := c.app.api.ToggleComplete(ctx, ref.ID)
	if err != nil {
		return err
	}
	if task.Completed {
		c.app.printf("Completed task: %s\n", task.Title)
	} else {
		c.app.printf("Reopened task: %s\n", task.Title)
	}
	return nil
}
