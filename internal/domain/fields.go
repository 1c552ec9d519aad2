package domain

import "time"

// TaskFields is a partial task used for creation and shallow-merge updates.
// Nil fields are left untouched. Identity, creation time and timer state are
// owned by the store and cannot be set here.
type TaskFields struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *Priority
	DueDate     *time.Time
	// ClearDueDate removes the due date. It wins over DueDate.
	ClearDueDate bool
	Completed    *bool
	Tags         *[]string
}

// Ptr returns a pointer to v. Handy for filling TaskFields.
func Ptr[T any](v T) *T {
	return &v
}

// IsEmpty reports whether no field is set.
func (f TaskFields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Category == nil &&
		f.Priority == nil && f.DueDate == nil && !f.ClearDueDate &&
		f.Completed == nil && f.Tags == nil
}

// ApplyTo merges the set fields over task.
func (f TaskFields) ApplyTo(task *Task) {
	if f.Title != nil {
		task.Title = *f.Title
	}
	if f.Description != nil {
		task.Description = *f.Description
	}
	if f.Category != nil {
		task.Category = *f.Category
	}
	if f.Priority != nil {
		task.Priority = *f.Priority
	}
	if f.ClearDueDate {
		task.DueDate = nil
	} else if f.DueDate != nil {
		due := DateOf(*f.DueDate)
		task.DueDate = &due
	}
	if f.Completed != nil {
		task.Completed = *f.Completed
	}
	if f.Tags != nil {
		task.Tags = append([]string{}, (*f.Tags)...)
	}
}
