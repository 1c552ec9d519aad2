package config

import (
	"fmt"
	"os"

	"taskflow/internal/repository"
	"taskflow/internal/repository/memory"
	"taskflow/internal/repository/sqlite"
)

// CreateRepository creates the key-value store selected by the configuration
func CreateRepository(config *Config) (repository.KeyValueStore, error) {
	switch config.Storage.Backend {
	case BackendMemory:
		return memory.New(), nil
	case BackendSQLite:
		repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), SQLiteOptions(config))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Storage.Backend)
	}
}

// SQLiteOptions maps storage settings onto sqlite options
func SQLiteOptions(config *Config) sqlite.Options {
	return sqlite.Options{
		QueryTimeout:   config.Storage.QueryTimeout,
		WriteTimeout:   config.Storage.WriteTimeout,
		DirPermissions: os.FileMode(config.Storage.DirPermissions),
	}
}

// CreateTestRepository creates an in-memory store for testing
func CreateTestRepository() (repository.KeyValueStore, error) {
	return memory.New(), nil
}
