package domain

import (
	"taskflow/internal/logging"
	"taskflow/internal/repository"
)

// TaskMapper handles conversion between domain and persisted task records.
// Decoding is lenient: unparseable dates are dropped rather than failing the
// whole task list.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to its persisted form.
func (m *TaskMapper) ToRecord(task Task) repository.TaskRecord {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}
	return repository.TaskRecord{
		ID:           repository.RecordID(task.ID),
		Title:        task.Title,
		Description:  task.Description,
		Category:     task.Category,
		Priority:     string(task.Priority),
		DueDate:      repository.FormatDate(task.DueDate),
		Completed:    task.Completed,
		CreatedAt:    repository.FormatTimestamp(task.CreatedAt),
		TimerSeconds: task.TimerSeconds,
		TimerRunning: task.TimerRunning,
		Tags:         append([]string{}, tags...),
	}
}

// FromRecord converts a persisted record to a domain Task.
func (m *TaskMapper) FromRecord(record repository.TaskRecord) Task {
	task := Task{
		ID:           string(record.ID),
		Title:        record.Title,
		Description:  record.Description,
		Category:     record.Category,
		Priority:     Priority(record.Priority),
		Completed:    record.Completed,
		TimerSeconds: record.TimerSeconds,
		TimerRunning: record.TimerRunning,
	}
	if p, ok := ParsePriority(record.Priority); ok {
		task.Priority = p
	}
	if task.TimerSeconds < 0 {
		task.TimerSeconds = 0
	}
	if record.DueDate != nil && *record.DueDate != "" {
		if due, err := repository.ParseDate(*record.DueDate); err == nil {
			task.DueDate = &due
		} else {
			logging.Debugf("task %s: ignoring due date %q: %v", task.ID, *record.DueDate, err)
		}
	}
	if record.CreatedAt != "" {
		if created, err := repository.ParseTimestamp(record.CreatedAt); err == nil {
			task.CreatedAt = created
		} else {
			logging.Debugf("task %s: ignoring created time %q: %v", task.ID, record.CreatedAt, err)
		}
	}
	if record.Tags != nil {
		task.Tags = append([]string{}, record.Tags...)
	}
	return task
}

// ToRecordSlice converts a slice of domain Tasks to records.
func (m *TaskMapper) ToRecordSlice(tasks []Task) []repository.TaskRecord {
	records := make([]repository.TaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecordSlice converts a slice of records to domain Tasks.
func (m *TaskMapper) FromRecordSlice(records []repository.TaskRecord) []Task {
	tasks := make([]Task, len(records))
	for i, record := range records {
		tasks[i] = m.FromRecord(record)
	}
	return tasks
}
