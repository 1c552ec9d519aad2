package cli

import (
	"context"
	"strings"

	"taskflow/internal/api"
)

// ListCommand handles the list command
type ListCommand struct {
	app   *App
	Query api.ListQuery
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute prints the composed task list. Positional args form the search text.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	query := c.Query
	if len(args) > 0 {
		query.Query = strings.Join(args, " ")
	}

	tasks, err := c.app.api.ListTasks(ctx, query)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}
	c.app.printf("%s", c.app.renderer(ctx).TaskList(tasks))
	return nil
}
