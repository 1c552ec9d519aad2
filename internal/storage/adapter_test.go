package storage

import (
	"bytes"
	"context"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/logging"
	"taskflow/internal/repository/memory"
	"taskflow/internal/repository/sqlite"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	previous := logging.SetOutput(buf)
	t.Cleanup(func() { logging.SetOutput(previous) })
	return buf
}

func sampleTasks() []domain.Task {
	due := domain.NewDate(2025, time.April, 1)
	return []domain.Task{
		{ID: "b", Title: "Second", Category: "Work", Priority: domain.PriorityHigh, DueDate: &due,
			CreatedAt: time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC), TimerSeconds: 12, Tags: []string{"x"}},
		{ID: "a", Title: "First", Category: "Personal", Priority: domain.PriorityLow, Completed: true,
			CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), Tags: []string{}},
	}
}

func TestLoadTasks_Absent(t *testing.T) {
	adapter := New(memory.New(), DefaultKeys())

	tasks := adapter.LoadTasks(context.Background())

	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestSaveAndLoadTasks(t *testing.T) {
	adapter := New(memory.New(), DefaultKeys())
	ctx := context.Background()

	require.NoError(t, adapter.SaveTasks(ctx, sampleTasks()))
	loaded := adapter.LoadTasks(ctx)

	require.Len(t, loaded, 2)
	assert.Equal(t, "b", loaded[0].ID)
	assert.Equal(t, "a", loaded[1].ID)
	assert.Equal(t, 12, loaded[0].TimerSeconds)
	assert.True(t, loaded[1].Completed)
	require.NotNil(t, loaded[0].DueDate)
	assert.True(t, domain.NewDate(2025, time.April, 1).Equal(*loaded[0].DueDate))
	assert.Nil(t, loaded[1].DueDate)
}

func TestSaveTasks_Format(t *testing.T) {
	kv := memory.New()
	adapter := New(kv, DefaultKeys())
	ctx := context.Background()

	require.NoError(t, adapter.SaveTasks(ctx, sampleTasks()[1:]))

	raw, found, err := kv.Get(ctx, DefaultTasksKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[{"id":"a","title":"First","description":"","category":"Personal","priority":"Low",
		"dueDate":null,"completed":true,"createdAt":"2025-03-01T08:00:00.000Z","timerSeconds":0,
		"timerRunning":false,"tags":[]}]`, raw)

	require.NoError(t, adapter.SaveTasks(ctx, nil))
	raw, _, _ = kv.Get(ctx, DefaultTasksKey)
	assert.Equal(t, "[]", raw)
}

func TestLoadTasks_Malformed(t *testing.T) {
	logs := captureLogs(t)
	kv := memory.New()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, DefaultTasksKey, `{"not":"an array"}`))

	tasks := New(kv, DefaultKeys()).LoadTasks(ctx)

	assert.Empty(t, tasks)
	assert.Contains(t, logs.String(), "malformed data")
}

func TestLoadTasks_LegacyNumericIDs(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, DefaultTasksKey, `[{"id":1712345678901,"title":"Old","priority":"High","createdAt":"2024-04-05T10:00:00Z"}]`))

	tasks := New(kv, DefaultKeys()).LoadTasks(ctx)

	require.Len(t, tasks, 1)
	assert.Equal(t, "1712345678901", tasks[0].ID)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
}

func TestLoadTasks_ReadFailure(t *testing.T) {
	logs := captureLogs(t)
	kv := memory.New()
	kv.FailReads = stderrors.New("locked")

	tasks := New(kv, DefaultKeys()).LoadTasks(context.Background())

	assert.Empty(t, tasks)
	assert.Contains(t, logs.String(), "locked")
}

func TestSaveTasks_WriteFailure(t *testing.T) {
	kv := memory.New()
	kv.FailWrites = stderrors.New("read-only")

	err := New(kv, DefaultKeys()).SaveTasks(context.Background(), sampleTasks())

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
	assert.Contains(t, err.Error(), "read-only")
}

func TestClearTasks(t *testing.T) {
	adapter := New(memory.New(), DefaultKeys())
	ctx := context.Background()
	require.NoError(t, adapter.SaveTasks(ctx, sampleTasks()))

	require.NoError(t, adapter.ClearTasks(ctx))

	assert.Empty(t, adapter.LoadTasks(ctx))
}

func TestTheme(t *testing.T) {
	kv := memory.New()
	adapter := New(kv, DefaultKeys())
	ctx := context.Background()

	assert.Equal(t, domain.ThemeDark, adapter.LoadTheme(ctx))

	require.NoError(t, adapter.SaveTheme(ctx, domain.ThemeLight))
	assert.Equal(t, domain.ThemeLight, adapter.LoadTheme(ctx))

	require.NoError(t, kv.Set(ctx, DefaultThemeKey, "sepia"))
	assert.Equal(t, domain.ThemeDark, adapter.LoadTheme(ctx))

	err := adapter.SaveTheme(ctx, domain.Theme("sepia"))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestCustomKeys(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	adapter := New(kv, Keys{Tasks: "custom_tasks"})

	require.NoError(t, adapter.SaveTasks(ctx, sampleTasks()))
	require.NoError(t, adapter.SaveTheme(ctx, domain.ThemeLight))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"custom_tasks", DefaultThemeKey}, keys)
}

func TestSQLiteBackedAdapter(t *testing.T) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "taskflow.db"))
	require.NoError(t, err)
	defer repo.Close()
	adapter := New(repo, DefaultKeys())
	ctx := context.Background()

	require.NoError(t, adapter.SaveTasks(ctx, sampleTasks()))
	require.NoError(t, adapter.SaveTheme(ctx, domain.ThemeLight))

	assert.Len(t, adapter.LoadTasks(ctx), 2)
	assert.Equal(t, domain.ThemeLight, adapter.LoadTheme(ctx))
}
