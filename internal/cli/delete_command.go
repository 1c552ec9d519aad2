package cli

import (
	"bufio"
	"context"
	"strings"

	"taskflow/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	// Yes skips the confirmation prompt.
	Yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: taskflow delete <task-id> [--yes]")
	}
	task, err := c.app.api.ResolveTask(ctx, args[0])
	if err != nil {
		return err
	}

	if !c.Yes {
		c.app.printf("Delete task %q? This cannot be undone. [y/N]: ", task.Title)
		reader := bufio.NewReader(c.app.in)
		input, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
		default:
			c.app.printf("Delete cancelled.\n")
			return nil
		}
	}

	if err := c.app.api.DeleteTask(ctx, task.ID); err != nil {
		return err
	}
	c.app.printf("Deleted task: %s\n", task.Title)
	return nil
}
