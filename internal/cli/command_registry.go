package cli

import (
	"context"
	"sort"
	"strings"

	"taskflow/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry creates a new command registry with every command at
// its default options
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		commands: make(map[string]Command),
	}

	registry.Register("add", NewAddCommand(app))
	registry.Register("list", NewListCommand(app))
	registry.Register("show", NewShowCommand(app))
	registry.Register("edit", NewEditCommand(app))
	registry.Register("done", NewDoneCommand(app))
	registry.Register("delete", NewDeleteCommand(app))
	registry.Register("timer", NewTimerCommand(app))
	registry.Register("pomodoro", NewPomodoroCommand(app))
	registry.Register("theme", NewThemeCommand(app))
	registry.Register("stats", NewStatsCommand(app))
	registry.Register("output", NewOutputCommand(app))

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

// Execute runs the specified command with the given arguments
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return "usage: taskflow <command> [args]\ncommands: " + strings.Join(names, ", ")
}
