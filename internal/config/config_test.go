package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TF_CONFIG", "")
	return home
}

func TestNewConfigDefaults(t *testing.T) {
	home := isolate(t)

	cfg := NewConfig()

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, ".taskflow", "taskflow.db"), cfg.GetDatabasePath())
	assert.Equal(t, "taskflow_tasks", cfg.Storage.TasksKey)
	assert.Equal(t, "taskflow_theme", cfg.Storage.ThemeKey)
	assert.Equal(t, "Personal", cfg.Tasks.DefaultCategory)
	assert.Equal(t, "Medium", cfg.Tasks.DefaultPriority)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, 25*time.Minute, cfg.Timer.PomodoroLength)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("TF_STORAGE_BACKEND", "memory")
	t.Setenv("TF_STORAGE_DIR", "/tmp/tf")
	t.Setenv("TF_STORAGE_QUERY_TIMEOUT", "2s")
	t.Setenv("TF_STORAGE_DIR_PERMISSIONS", "700")
	t.Setenv("TF_TASKS_DEFAULT_PRIORITY", "Low")
	t.Setenv("TF_TASKS_CATEGORIES", "Work, Home ,,Errands")
	t.Setenv("TF_TIMER_POMODORO_LENGTH", "50m")
	t.Setenv("TF_APP_VERBOSE", "true")
	t.Setenv("TF_APP_TIMEOUT", "not-a-duration")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/tf", cfg.Storage.Dir)
	assert.Equal(t, 2*time.Second, cfg.Storage.QueryTimeout)
	assert.Equal(t, uint32(0700), cfg.Storage.DirPermissions)
	assert.Equal(t, "Low", cfg.Tasks.DefaultPriority)
	assert.Equal(t, []string{"Work", "Home", "Errands"}, cfg.Tasks.Categories)
	assert.Equal(t, 50*time.Minute, cfg.Timer.PomodoroLength)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 30*time.Second, cfg.Application.Timeout, "unparseable values keep the default")
}

func TestLoadFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  backend: memory
  tasks_key: my_tasks
tasks:
  default_category: Work
  categories: [Work, Gym]
timer:
  pomodoro_length: 15m
display:
  default_sort: due
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "my_tasks", cfg.Storage.TasksKey)
	assert.Equal(t, "taskflow_theme", cfg.Storage.ThemeKey, "missing keys keep defaults")
	assert.Equal(t, "Work", cfg.Tasks.DefaultCategory)
	assert.Equal(t, []string{"Work", "Gym"}, cfg.Tasks.Categories)
	assert.Equal(t, 15*time.Minute, cfg.Timer.PomodoroLength)
	assert.Equal(t, "due", cfg.Display.DefaultSort)
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0644))

	err := NewConfig().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend"},
		{"empty dir", func(c *Config) { c.Storage.Dir = "" }, "storage.dir"},
		{"same keys", func(c *Config) { c.Storage.ThemeKey = c.Storage.TasksKey }, "storage.keys"},
		{"zero query timeout", func(c *Config) { c.Storage.QueryTimeout = 0 }, "storage.query_timeout"},
		{"bad priority", func(c *Config) { c.Tasks.DefaultPriority = "Urgent" }, "tasks.default_priority"},
		{"blank category", func(c *Config) { c.Tasks.DefaultCategory = " " }, "tasks.default_category"},
		{"zero title length", func(c *Config) { c.Tasks.TitleMaxLength = 0 }, "tasks.title_max_length"},
		{"zero tick", func(c *Config) { c.Timer.TickInterval = 0 }, "timer.tick_interval"},
		{"short pomodoro", func(c *Config) { c.Timer.PomodoroLength = time.Millisecond }, "timer.pomodoro_length"},
		{"bad sort", func(c *Config) { c.Display.DefaultSort = "alpha" }, "display.default_sort"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestValidate_MemoryBackendIgnoresPath(t *testing.T) {
	cfg := NewConfig()
	cfg.Storage.Backend = BackendMemory
	cfg.Storage.Dir = ""

	assert.NoError(t, cfg.Validate())
}
