package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all configuration options for the task manager
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	Tasks       TasksConfig       `yaml:"tasks"`
	Timer       TimerConfig       `yaml:"timer"`
	Display     DisplayConfig     `yaml:"display"`
	Application ApplicationConfig `yaml:"application"`
}

// StorageConfig holds key-value store configuration
type StorageConfig struct {
	Backend        string        `yaml:"backend" env:"TF_STORAGE_BACKEND"`
	Dir            string        `yaml:"dir" env:"TF_STORAGE_DIR"`
	Filename       string        `yaml:"filename" env:"TF_STORAGE_FILENAME"`
	// TasksKey overrides taskflow_tasks. The legacy v1 migration always folds
	// into taskflow_tasks, so custom keys start without legacy data.
	TasksKey       string        `yaml:"tasks_key" env:"TF_STORAGE_TASKS_KEY"`
	ThemeKey       string        `yaml:"theme_key" env:"TF_STORAGE_THEME_KEY"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TF_STORAGE_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TF_STORAGE_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TF_STORAGE_DIR_PERMISSIONS"`
}

// TasksConfig holds defaults and limits for new tasks
type TasksConfig struct {
	DefaultCategory string   `yaml:"default_category" env:"TF_TASKS_DEFAULT_CATEGORY"`
	DefaultPriority string   `yaml:"default_priority" env:"TF_TASKS_DEFAULT_PRIORITY"`
	Categories      []string `yaml:"categories" env:"TF_TASKS_CATEGORIES"`
	TitleMaxLength  int      `yaml:"title_max_length" env:"TF_TASKS_TITLE_MAX"`
}

// TimerConfig holds timer configuration
type TimerConfig struct {
	TickInterval   time.Duration `yaml:"tick_interval" env:"TF_TIMER_TICK_INTERVAL"`
	PomodoroLength time.Duration `yaml:"pomodoro_length" env:"TF_TIMER_POMODORO_LENGTH"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat  string `yaml:"time_format" env:"TF_DISPLAY_TIME_FORMAT"`
	DateFormat  string `yaml:"date_format" env:"TF_DISPLAY_DATE_FORMAT"`
	DefaultSort string `yaml:"default_sort" env:"TF_DISPLAY_DEFAULT_SORT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TF_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TF_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			Dir:            filepath.Join(homeDir, ".taskflow"),
			Filename:       "taskflow.db",
			TasksKey:       "taskflow_tasks",
			ThemeKey:       "taskflow_theme",
			QueryTimeout:   5 * time.Second,
			WriteTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Tasks: TasksConfig{
			DefaultCategory: "Personal",
			DefaultPriority: "Medium",
			Categories:      []string{"Work", "Study", "Personal"},
			TitleMaxLength:  255,
		},
		Timer: TimerConfig{
			TickInterval:   time.Second,
			PomodoroLength: 25 * time.Minute,
		},
		Display: DisplayConfig{
			TimeFormat:  "2006-01-02 15:04",
			DateFormat:  "Jan 2, 2006",
			DefaultSort: "newest",
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// DefaultConfigPath is ~/.taskflow/config.yaml.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".taskflow", "config.yaml")
}

// LoadFromFile merges a YAML file over the current values. Keys missing from
// the file keep their current value.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored.
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("TF_STORAGE_BACKEND"); backend != "" {
		c.Storage.Backend = backend
	}
	if dir := os.Getenv("TF_STORAGE_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TF_STORAGE_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if key := os.Getenv("TF_STORAGE_TASKS_KEY"); key != "" {
		c.Storage.TasksKey = key
	}
	if key := os.Getenv("TF_STORAGE_THEME_KEY"); key != "" {
		c.Storage.ThemeKey = key
	}
	if timeout := os.Getenv("TF_STORAGE_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if timeout := os.Getenv("TF_STORAGE_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}
	if perms := os.Getenv("TF_STORAGE_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Task defaults
	if category := os.Getenv("TF_TASKS_DEFAULT_CATEGORY"); category != "" {
		c.Tasks.DefaultCategory = category
	}
	if priority := os.Getenv("TF_TASKS_DEFAULT_PRIORITY"); priority != "" {
		c.Tasks.DefaultPriority = priority
	}
	if categories := os.Getenv("TF_TASKS_CATEGORIES"); categories != "" {
		c.Tasks.Categories = splitList(categories)
	}
	if maxLen := os.Getenv("TF_TASKS_TITLE_MAX"); maxLen != "" {
		c.Tasks.TitleMaxLength = ParseIntWithFallback(maxLen, c.Tasks.TitleMaxLength)
	}

	// Timer configuration
	if interval := os.Getenv("TF_TIMER_TICK_INTERVAL"); interval != "" {
		c.Timer.TickInterval = ParseDurationWithFallback(interval, c.Timer.TickInterval)
	}
	if length := os.Getenv("TF_TIMER_POMODORO_LENGTH"); length != "" {
		c.Timer.PomodoroLength = ParseDurationWithFallback(length, c.Timer.PomodoroLength)
	}

	// Display configuration
	if format := os.Getenv("TF_DISPLAY_TIME_FORMAT"); format != "" {
		c.Display.TimeFormat = format
	}
	if format := os.Getenv("TF_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if sort := os.Getenv("TF_DISPLAY_DEFAULT_SORT"); sort != "" {
		c.Display.DefaultSort = sort
	}

	// Application configuration
	if timeout := os.Getenv("TF_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TF_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Storage
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.Dir == "" {
			return &ConfigError{Field: "storage.dir", Message: "storage directory cannot be empty"}
		}
		if c.Storage.Filename == "" {
			return &ConfigError{Field: "storage.filename", Message: "storage filename cannot be empty"}
		}
	case BackendMemory:
	default:
		return &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q (want sqlite or memory)", c.Storage.Backend)}
	}
	if c.Storage.TasksKey == "" || c.Storage.ThemeKey == "" {
		return &ConfigError{Field: "storage.keys", Message: "storage keys cannot be empty"}
	}
	if c.Storage.TasksKey == c.Storage.ThemeKey {
		return &ConfigError{Field: "storage.keys", Message: "tasks and theme keys must differ"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	// Tasks
	if strings.TrimSpace(c.Tasks.DefaultCategory) == "" {
		return &ConfigError{Field: "tasks.default_category", Message: "default category cannot be empty"}
	}
	switch c.Tasks.DefaultPriority {
	case "Low", "Medium", "High":
	default:
		return &ConfigError{Field: "tasks.default_priority", Message: "default priority must be Low, Medium or High"}
	}
	if c.Tasks.TitleMaxLength < 1 {
		return &ConfigError{Field: "tasks.title_max_length", Message: "title maximum length must be at least 1"}
	}

	// Timer
	if c.Timer.TickInterval <= 0 {
		return &ConfigError{Field: "timer.tick_interval", Message: "tick interval must be positive"}
	}
	if c.Timer.PomodoroLength < time.Second {
		return &ConfigError{Field: "timer.pomodoro_length", Message: "pomodoro length must be at least one second"}
	}

	// Display
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	switch c.Display.DefaultSort {
	case "newest", "due", "priority":
	default:
		return &ConfigError{Field: "display.default_sort", Message: "default sort must be newest, due or priority"}
	}

	// Application
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
