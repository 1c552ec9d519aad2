package cli

import (
	"context"

	"taskflow/internal/errors"
)

// ThemeCommand shows or changes the colour theme
type ThemeCommand struct {
	app *App
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app}
}

// Execute runs the theme command: no args or "get" prints, "set <theme>"
// and "toggle" change it.
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	action := "get"
	if len(args) > 0 {
		action = args[0]
	}

	switch {
	case action == "get" && len(args) <= 1:
		c.app.printf("Theme: %s\n", c.app.api.Theme(ctx))
		return nil
	case action == "toggle" && len(args) == 1:
		theme, err := c.app.api.ToggleTheme(ctx)
		if err != nil {
			return err
		}
		c.app.printf("Theme set to %s\n", theme)
		return nil
	case action == "set" && len(args) == 2:
		theme, err := c.app.api.SetTheme(ctx, args[1])
		if err != nil {
			return err
		}
		c.app.printf("Theme set to %s\n", theme)
		return nil
	default:
		return errors.NewInvalidInputError("command", "theme", "usage: taskflow theme [get|toggle|set light|dark]")
	}
}
