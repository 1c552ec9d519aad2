package api

import (
	"strings"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/validation"
	"taskflow/internal/view"
)

// TaskInput carries raw user input for creating or editing a task. Nil
// fields are left unchanged on update.
type TaskInput struct {
	Title       *string
	Description *string
	Category    *string
	// Priority is parsed case-insensitively.
	Priority *string
	// Due accepts YYYY-MM-DD, today, tomorrow or an offset such as 3d.
	Due      *string
	ClearDue bool
	Tags     *[]string
	Done     *bool
}

func (in TaskInput) toFields(v *validation.TaskValidator, now time.Time) (domain.TaskFields, error) {
	fields := domain.TaskFields{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		ClearDueDate: in.ClearDue,
		Completed:    in.Done,
	}
	problems := validation.NewValidationError()

	if in.Priority != nil {
		p, err := v.ParsePriority(*in.Priority)
		problems.Merge(err)
		fields.Priority = &p
	}
	if in.Due != nil && !in.ClearDue {
		due, err := v.ParseDueDate(*in.Due, now)
		problems.Merge(err)
		fields.DueDate = &due
	}
	if in.Tags != nil {
		tags := normalizeTags(*in.Tags)
		fields.Tags = &tags
	}

	if problems.HasErrors() {
		return domain.TaskFields{}, errors.NewValidationError(problems.GetUserFriendlyMessage(), problems)
	}
	return fields, nil
}

// normalizeTags trims, drops empties and removes duplicates keeping order.
func normalizeTags(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// ListQuery is the raw form of view.Criteria.
type ListQuery struct {
	Scope        string
	Query        string
	Category     string
	Priority     string
	HighPriority bool
	TimerRunning bool
	Sort         string
}

func (q ListQuery) toCriteria(defaultSort view.SortMode) (view.Criteria, error) {
	scope, ok := view.ParseScope(q.Scope)
	if !ok {
		return view.Criteria{}, errors.NewInvalidInputError("scope", q.Scope, "unknown scope")
	}

	sortMode := defaultSort
	if strings.TrimSpace(q.Sort) != "" {
		if sortMode, ok = view.ParseSortMode(q.Sort); !ok {
			return view.Criteria{}, errors.NewInvalidInputError("sort", q.Sort, "must be newest, due or priority")
		}
	}

	priority := strings.TrimSpace(q.Priority)
	if priority != "" && !strings.EqualFold(priority, view.All) {
		p, ok := domain.ParsePriority(priority)
		if !ok {
			return view.Criteria{}, errors.NewInvalidInputError("priority", q.Priority, "must be High, Medium, Low or All")
		}
		priority = string(p)
	} else if priority != "" {
		priority = view.All
	}

	category := strings.TrimSpace(q.Category)
	if strings.EqualFold(category, view.All) {
		category = view.All
	}

	return view.Criteria{
		Scope:        scope,
		Query:        q.Query,
		Category:     category,
		Priority:     priority,
		HighPriority: q.HighPriority,
		TimerRunning: q.TimerRunning,
		Sort:         sortMode,
	}, nil
}
