package cli

import (
	"context"
)

// StatsCommand prints the task summary
type StatsCommand struct {
	app *App
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	c.app.printf("%s", c.app.renderer(ctx).Stats(c.app.api.Stats(ctx)))
	return nil
}
