package main

import (
	"fmt"

	"taskflow/internal/config"
	"taskflow/internal/repository"
	"taskflow/internal/repository/memory"
	"taskflow/internal/repository/sqlite"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env config.Environment
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env config.Environment) *RepositoryFactory {
	return &RepositoryFactory{env: env}
}

// CreateRepository creates a key-value store for the current environment
func (rf *RepositoryFactory) CreateRepository(cfg *config.Config) (repository.KeyValueStore, error) {
	switch rf.env {
	case config.Development:
		return rf.createDevelopmentRepository(cfg)
	case config.Testing:
		// Nothing outlives the process
		return memory.New(), nil
	default:
		return config.CreateRepository(cfg)
	}
}

// createDevelopmentRepository keeps a database next to the working directory
func (rf *RepositoryFactory) createDevelopmentRepository(cfg *config.Config) (repository.KeyValueStore, error) {
	repo, err := sqlite.NewWithOptions("taskflow-dev.db", config.SQLiteOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}
