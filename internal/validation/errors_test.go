package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
		contains    bool
	}{
		{"No errors", []FieldError{}, "validation error", false},
		{"Single error", []FieldError{{Field: "title", Message: "is required"}}, "validation error for field 'title': is required", false},
		{"Multiple errors", []FieldError{
			{Field: "title", Message: "is required"},
			{Field: "priority", Message: "is unknown"},
		}, "multiple validation errors", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.contains {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else if result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_AddRequiredError(t *testing.T) {
	ve := NewValidationError()

	ve.AddRequiredError("title")

	if len(ve.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(ve.Errors))
	}
	if ve.Errors[0].Type != ErrorTypeRequired {
		t.Errorf("Expected error type %v, got %v", ErrorTypeRequired, ve.Errors[0].Type)
	}
	if ve.Errors[0].Message != "title is required" {
		t.Errorf("Unexpected message %q", ve.Errors[0].Message)
	}
}

func TestValidationError_AddInvalidFormatError(t *testing.T) {
	ve := NewValidationError()

	ve.AddInvalidFormatError("due", "2023-13-01", "YYYY-MM-DD")

	if ve.Errors[0].Type != ErrorTypeInvalidFormat {
		t.Errorf("Expected error type %v, got %v", ErrorTypeInvalidFormat, ve.Errors[0].Type)
	}
	if !strings.Contains(ve.Errors[0].Message, "YYYY-MM-DD") {
		t.Errorf("Expected message to contain expected format, got %s", ve.Errors[0].Message)
	}
}

func TestValidationError_AddInvalidLengthError(t *testing.T) {
	tests := []struct {
		min, max int
		expected string
	}{
		{1, 50, "between 1 and 50"},
		{2, 0, "at least 2"},
		{0, 9, "at most 9"},
		{0, 0, "invalid length"},
	}

	for _, tt := range tests {
		ve := NewValidationError()
		ve.AddInvalidLengthError("title", "x", tt.min, tt.max)
		if !strings.Contains(ve.Errors[0].Message, tt.expected) {
			t.Errorf("AddInvalidLengthError(%d, %d) message = %q, expected to contain %q", tt.min, tt.max, ve.Errors[0].Message, tt.expected)
		}
	}
}

func TestValidationError_Merge(t *testing.T) {
	ve := NewValidationError()
	inner := NewValidationError()
	inner.AddRequiredError("title")

	ve.Merge(inner)
	ve.Merge(nil)
	ve.Merge(fmt.Errorf("plain"))

	if len(ve.Errors) != 1 {
		t.Errorf("Expected 1 merged error, got %d", len(ve.Errors))
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()

	ve.AddRequiredError("title")
	ve.AddInvalidLengthError("title", "a", 2, 50)
	ve.AddInvalidValueError("priority", "Urgent", "unknown")

	if n := len(ve.GetFieldErrors("title")); n != 2 {
		t.Errorf("Expected 2 title errors, got %d", n)
	}
	if n := len(ve.GetFieldErrors("missing")); n != 0 {
		t.Errorf("Expected 0 missing errors, got %d", n)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if msg := ve.GetUserFriendlyMessage(); msg != "Input validation failed" {
		t.Errorf("Unexpected empty message %q", msg)
	}

	ve.AddRequiredError("title")
	if msg := ve.GetUserFriendlyMessage(); msg != "title is required" {
		t.Errorf("Unexpected single message %q", msg)
	}

	ve.AddInvalidValueError("priority", "x", "unknown")
	msg := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(msg, "Multiple validation errors occurred:") || !strings.Contains(msg, "- title is required") {
		t.Errorf("Unexpected multi message %q", msg)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	if !IsValidationError(ve) {
		t.Error("Expected ValidationError to be detected")
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", ve)) {
		t.Error("Expected wrapped ValidationError to be detected")
	}
	if IsValidationError(fmt.Errorf("other")) {
		t.Error("Expected plain error not to be a ValidationError")
	}
}
