package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"taskflow/internal/api"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/repository"
)

// OutputCommand exports tasks
type OutputCommand struct {
	app *App
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App) *OutputCommand {
	return &OutputCommand{app: app}
}

// Execute runs the output command
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 || !strings.HasPrefix(args[0], "format=") {
		return errors.NewInvalidInputError("command", "output", "usage: taskflow output format=csv|json")
	}

	tasks, err := c.app.api.ListTasks(ctx, api.ListQuery{})
	if err != nil {
		return err
	}

	switch format := strings.TrimPrefix(args[0], "format="); format {
	case "csv":
		return c.outputCSV(tasks)
	case "json":
		return c.outputJSON(tasks)
	default:
		return errors.NewInvalidInputError("format", format, "unsupported format")
	}
}

// outputCSV writes one row per task
func (c *OutputCommand) outputCSV(tasks []domain.Task) error {
	writer := csv.NewWriter(c.app.out)

	header := []string{"ID", "Title", "Category", "Priority", "Due", "Completed", "Created", "Tracked Seconds", "Tags"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range tasks {
		due := repository.FormatDate(task.DueDate)
		row := []string{
			task.ID,
			task.Title,
			task.Category,
			string(task.Priority),
			"",
			strconv.FormatBool(task.Completed),
			repository.FormatTimestamp(task.CreatedAt),
			strconv.Itoa(task.TimerSeconds),
			strings.Join(task.Tags, " "),
		}
		if due != nil {
			row[4] = *due
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// outputJSON writes the tasks in the persisted record format
func (c *OutputCommand) outputJSON(tasks []domain.Task) error {
	raw, err := repository.EncodeTaskRecords(domain.NewTaskMapper().ToRecordSlice(tasks))
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	c.app.printf("%s\n", raw)
	return nil
}
