package cli

import (
	"context"

	"taskflow/internal/api"
	"taskflow/internal/errors"
)

// EditCommand handles the edit command. Only fields set by flags change.
type EditCommand struct {
	app   *App
	Input api.TaskInput
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "edit", "usage: taskflow edit <task-id> [flags]")
	}
	ref, err := c.app.api.ResolveTask(ctx, args[0])
	if err != nil {
		return err
	}
	task, err := c.app.api.UpdateTask(ctx, ref.ID, c.Input)
	if err != nil {
		return err
	}
	c.app.printf("Updated task %s: %s\n", ShortID(task.ID), task.Title)
	return nil
}
