package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/errors"
)

func TestAPI_TimerLifecycle(t *testing.T) {
	env := setupTestAPI(t)
	ctx := context.Background()
	task, err := env.api.AddTask(ctx, TaskInput{Title: str("Focus")})
	require.NoError(t, err)

	ticks := 0
	started, err := env.api.StartTimer(ctx, task.ID, func(id string) {
		assert.Equal(t, task.ID, id)
		ticks++
	})
	require.NoError(t, err)
	assert.True(t, started.TimerRunning)

	env.clock.Advance(3 * time.Second)
	assert.Equal(t, 3, ticks)

	stopped, err := env.api.StopTimer(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, stopped.TimerRunning)
	assert.Equal(t, 3, stopped.TimerSeconds)

	env.clock.Advance(5 * time.Second)
	got, _ := env.api.GetTask(ctx, task.ID)
	assert.Equal(t, 3, got.TimerSeconds)

	reset, err := env.api.ResetTimer(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.TimerSeconds)
}

func TestAPI_TimerErrors(t *testing.T) {
	env := setupTestAPI(t)
	ctx := context.Background()

	_, err := env.api.StartTimer(ctx, "missing", nil)
	assert.True(t, errors.IsNotFound(err))
	_, err = env.api.StopTimer(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
	_, err = env.api.ResetTimer(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	task, err := env.api.AddTask(ctx, TaskInput{Title: str("Done already")})
	require.NoError(t, err)
	_, err = env.api.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)

	_, err = env.api.StartTimer(ctx, task.ID, nil)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	assert.Equal(t, 0, env.clock.PendingCount())
}

func TestAPI_CompletingStopsTimer(t *testing.T) {
	env := setupTestAPI(t)
	ctx := context.Background()
	task, err := env.api.AddTask(ctx, TaskInput{Title: str("Short job")})
	require.NoError(t, err)
	_, err = env.api.StartTimer(ctx, task.ID, nil)
	require.NoError(t, err)
	env.clock.Advance(2 * time.Second)

	done, err := env.api.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	env.clock.Advance(2 * time.Second)

	assert.False(t, done.TimerRunning)
	got, _ := env.api.GetTask(ctx, task.ID)
	assert.Equal(t, 2, got.TimerSeconds)
}

func TestAPI_CloseStopsTimersAndPersists(t *testing.T) {
	env := setupTestAPI(t)
	ctx := context.Background()
	task, err := env.api.AddTask(ctx, TaskInput{Title: str("Running")})
	require.NoError(t, err)
	_, err = env.api.StartTimer(ctx, task.ID, nil)
	require.NoError(t, err)
	env.clock.Advance(4 * time.Second)

	require.NoError(t, env.api.Close())

	reloaded := setupTestAPIWithStore(t, env.kv)
	got, err := reloaded.api.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, got.TimerRunning)
	assert.Equal(t, 4, got.TimerSeconds)
}

func TestAPI_Pomodoro(t *testing.T) {
	env := setupTestAPI(t)
	var remaining []int
	completed := 0

	p, err := env.api.StartPomodoro(context.Background(), 3*time.Second,
		func(r int) { remaining = append(remaining, r) },
		func() { completed++ })
	require.NoError(t, err)
	assert.Equal(t, 3, p.Length())

	env.clock.Advance(10 * time.Second)

	assert.Equal(t, []int{3, 2, 1, 0}, remaining)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, p.Remaining())
	select {
	case <-p.Done():
	default:
		t.Fatal("expected Done to be closed")
	}
}

func TestAPI_PomodoroStop(t *testing.T) {
	env := setupTestAPI(t)
	completed := false

	p, err := env.api.StartPomodoro(context.Background(), 5*time.Second, nil, func() { completed = true })
	require.NoError(t, err)
	env.clock.Advance(2 * time.Second)
	p.Stop()
	env.clock.Advance(10 * time.Second)

	assert.False(t, completed)
	assert.Equal(t, 3, p.Remaining())
}

func TestAPI_PomodoroDefaultLength(t *testing.T) {
	env := setupTestAPI(t)

	p, err := env.api.StartPomodoro(context.Background(), 0, nil, nil)
	require.NoError(t, err)
	defer p.Stop()

	assert.Equal(t, int(DefaultPomodoroLength/time.Second), p.Length())
	assert.Equal(t, int(DefaultPomodoroLength/time.Second), p.Remaining())
}

func TestAPI_PomodoroTooShort(t *testing.T) {
	env := setupTestAPI(t)

	_, err := env.api.StartPomodoro(context.Background(), 500*time.Millisecond, nil, nil)

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
