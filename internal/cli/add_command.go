package cli

import (
	"context"
	"strings"

	"taskflow/internal/api"
	"taskflow/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App

	Description string
	Category    string
	Priority    string
	Due         string
	Tags        []string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task titled with the joined args
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return errors.NewValidationError("Please enter a task title", nil)
	}

	input := api.TaskInput{Title: &title}
	if len(c.Tags) > 0 {
		tags := c.Tags
		input.Tags = &tags
	}
	if c.Description != "" {
		input.Description = &c.Description
	}
	if c.Category != "" {
		input.Category = &c.Category
	}
	if c.Priority != "" {
		input.Priority = &c.Priority
	}
	if c.Due != "" {
		input.Due = &c.Due
	}

	task, err := c.app.api.AddTask(ctx, input)
	if err != nil {
		return err
	}
	c.app.printf("Added task %s: %s\n", ShortID(task.ID), task.Title)
	return nil
}
