package validation

import (
	"time"

	"taskflow/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithLimits creates a task validator with a title bound
func NewTaskValidatorWithLimits(titleMaxLength int) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithLimits(titleMaxLength),
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	if !tv.validator.IsValidTitleLength(trimmed) {
		validationError.AddInvalidLengthError("title", trimmed, 1, tv.validator.TitleMaxLength())
	}

	return errOrNil(validationError)
}

// ValidateFields checks a partial task. When creating, the title must be
// present; on update only the supplied fields are checked.
func (tv *TaskValidator) ValidateFields(fields domain.TaskFields, creating bool) error {
	validationError := NewValidationError()

	if fields.Title != nil {
		validationError.Merge(tv.ValidateTitle(*fields.Title))
	} else if creating {
		validationError.AddRequiredError("title")
	}

	if fields.Priority != nil && !fields.Priority.IsValid() {
		validationError.AddInvalidValueError("priority", string(*fields.Priority), "must be one of High, Medium, Low")
	}

	return errOrNil(validationError)
}

// ParsePriority converts user input into a Priority
func (tv *TaskValidator) ParsePriority(input string) (domain.Priority, error) {
	if p, ok := domain.ParsePriority(input); ok {
		return p, nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidValueError("priority", input, "must be one of High, Medium, Low")
	return "", validationError
}

// ParseDueDate converts user input into a due date
func (tv *TaskValidator) ParseDueDate(input string, now time.Time) (time.Time, error) {
	if d, ok := tv.validator.ParseRelativeDate(input, now); ok {
		return d, nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidFormatError("due", input, "YYYY-MM-DD, today, tomorrow or an offset like 3d, 2w, 1mo")
	return time.Time{}, validationError
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
