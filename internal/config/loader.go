package config

import (
	"errors"
	"io/fs"
	"os"
	"time"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment reads TF_ENV. Unknown or unset values mean production.
func GetEnvironment() Environment {
	switch Environment(os.Getenv("TF_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	// ConfigPath overrides TF_CONFIG and the default file location.
	ConfigPath string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Merge the YAML file (explicit path, TF_CONFIG, or ~/.taskflow/config.yaml)
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile merges the config file. An explicitly named file must exist; the
// default location is optional.
func (l *Loader) loadFile() error {
	path := l.ConfigPath
	if path == "" {
		path = os.Getenv("TF_CONFIG")
	}
	if path != "" {
		return l.config.LoadFromFile(path)
	}

	err := l.config.LoadFromFile(DefaultConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if overrides != nil && overrides.ConfigFile != nil {
		l.ConfigPath = *overrides.ConfigFile
	}

	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Storage overrides
	StorageBackend  *string
	StorageDir      *string
	StorageFilename *string
	QueryTimeout    *time.Duration
	WriteTimeout    *time.Duration

	// Task overrides
	DefaultCategory *string
	DefaultPriority *string

	// Timer overrides
	PomodoroLength *time.Duration

	// Display overrides
	DefaultSort *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.StorageBackend != nil {
		config.Storage.Backend = *overrides.StorageBackend
	}
	if overrides.StorageDir != nil {
		config.Storage.Dir = *overrides.StorageDir
	}
	if overrides.StorageFilename != nil {
		config.Storage.Filename = *overrides.StorageFilename
	}
	if overrides.QueryTimeout != nil {
		config.Storage.QueryTimeout = *overrides.QueryTimeout
	}
	if overrides.WriteTimeout != nil {
		config.Storage.WriteTimeout = *overrides.WriteTimeout
	}

	if overrides.DefaultCategory != nil {
		config.Tasks.DefaultCategory = *overrides.DefaultCategory
	}
	if overrides.DefaultPriority != nil {
		config.Tasks.DefaultPriority = *overrides.DefaultPriority
	}

	if overrides.PomodoroLength != nil {
		config.Timer.PomodoroLength = *overrides.PomodoroLength
	}

	if overrides.DefaultSort != nil {
		config.Display.DefaultSort = *overrides.DefaultSort
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
