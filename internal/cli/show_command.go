package cli

import (
	"context"

	"taskflow/internal/errors"
)

// ShowCommand selects a task and prints its details
type ShowCommand struct {
	app *App
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: taskflow show <task-id>")
	}
	ref, err := c.app.api.ResolveTask(ctx, args[0])
	if err != nil {
		return err
	}
	task, err := c.app.api.SelectTask(ctx, ref.ID)
	if err != nil {
		return err
	}
	c.app.printf("%s", c.app.renderer(ctx).TaskDetail(*task))
	return nil
}
