package sqlite

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskflow/internal/errors"
)

func TestHandleDatabaseError(t *testing.T) {
	originalErr := stderrors.New("database connection failed")
	result := HandleDatabaseError("test operation", originalErr)

	assert.NotNil(t, result)
	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeStorage))
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
}

func TestHandleDatabaseError_Deadline(t *testing.T) {
	err := fmt.Errorf("query: %w", context.DeadlineExceeded)
	result := HandleDatabaseError("get k", err)

	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeTimeout))
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := withTimeout(context.Background(), 0)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)

	bounded, cancelBounded := withTimeout(context.Background(), time.Minute)
	defer cancelBounded()
	_, hasDeadline = bounded.Deadline()
	assert.True(t, hasDeadline)
}
