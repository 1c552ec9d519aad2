package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("title is required")
	err := NewValidationError("invalid task", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "abc123")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: abc123" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: abc123")
	}

	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "abc123" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("save tasks", cause)

	if err.Type != ErrorTypeStorage {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Code != "STORAGE_ERROR" {
		t.Errorf("NewStorageError code = %v, want %v", err.Code, "STORAGE_ERROR")
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewStorageError should unwrap to its cause")
	}
}

func TestNewMalformedDataError(t *testing.T) {
	err := NewMalformedDataError("taskflow_tasks", errors.New("unexpected EOF"))

	if err.Type != ErrorTypeMalformedData {
		t.Errorf("NewMalformedDataError type = %v, want %v", err.Type, ErrorTypeMalformedData)
	}
	key, ok := err.GetContext("key")
	if !ok || key != "taskflow_tasks" {
		t.Errorf("NewMalformedDataError should set key context")
	}
}

func TestNewListenerError(t *testing.T) {
	err := NewListenerError(3, fmt.Errorf("boom"))

	if err.Type != ErrorTypeListener {
		t.Errorf("NewListenerError type = %v, want %v", err.Type, ErrorTypeListener)
	}
	if err.Message != "listener 3 failed" {
		t.Errorf("NewListenerError message = %v", err.Message)
	}
}

func TestIsErrorType(t *testing.T) {
	wrapped := fmt.Errorf("update: %w", NewNotFoundError("task", "x"))

	if !IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should see through fmt.Errorf wrapping")
	}
	if !IsNotFound(wrapped) {
		t.Errorf("IsNotFound should see through fmt.Errorf wrapping")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeNotFound) {
		t.Errorf("IsErrorType should be false for plain errors")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", NewNotFoundError("task", "1"), "task not found: 1"},
		{"storage", NewStorageError("save", nil), "Saving to local storage failed. Changes are kept in memory only."},
		{"malformed", NewMalformedDataError("k", nil), "Stored data could not be read and was ignored."},
		{"listener", NewListenerError(1, nil), "An unexpected error occurred. Please try again."},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.want {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(NewInvalidInputError("scope", "later", "unknown scope")); code != "INVALID_INPUT" {
		t.Errorf("GetErrorCode() = %v, want INVALID_INPUT", code)
	}
	if code := GetErrorCode(errors.New("x")); code != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN_ERROR", code)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", NewValidationError("bad", nil), false},
		{"not found", NewNotFoundError("task", "1"), false},
		{"storage", NewStorageError("save", nil), true},
		{"listener", NewListenerError(1, nil), true},
		{"plain", errors.New("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.want {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.want)
			}
		})
	}
}
