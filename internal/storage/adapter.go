// Package storage translates the task collection and theme preference to and
// from the key-value store. Reads never fail: absent, unreadable or malformed
// data falls back to an empty collection or the default theme.
package storage

import (
	"context"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/logging"
	"taskflow/internal/repository"
)

// Default keys.
const (
	DefaultTasksKey = "taskflow_tasks"
	DefaultThemeKey = "taskflow_theme"
)

// Keys names the records the adapter owns.
type Keys struct {
	Tasks string
	Theme string
}

// DefaultKeys returns the standard record keys.
func DefaultKeys() Keys {
	return Keys{Tasks: DefaultTasksKey, Theme: DefaultThemeKey}
}

// Adapter is the persistent store adapter. It implements store.Persister.
type Adapter struct {
	kv     repository.KeyValueStore
	keys   Keys
	mapper *domain.TaskMapper
}

// New wraps kv. Empty keys fall back to the defaults.
func New(kv repository.KeyValueStore, keys Keys) *Adapter {
	if keys.Tasks == "" {
		keys.Tasks = DefaultTasksKey
	}
	if keys.Theme == "" {
		keys.Theme = DefaultThemeKey
	}
	return &Adapter{kv: kv, keys: keys, mapper: domain.NewTaskMapper()}
}

// LoadTasks returns the persisted collection in stored order.
func (a *Adapter) LoadTasks(ctx context.Context) []domain.Task {
	raw, found, err := a.kv.Get(ctx, a.keys.Tasks)
	if err != nil {
		logging.Warnf("%v", errors.NewStorageError("load tasks", err))
		return []domain.Task{}
	}
	if !found {
		return []domain.Task{}
	}

	records, err := repository.DecodeTaskRecords(raw)
	if err != nil {
		logging.Warnf("%v", errors.NewMalformedDataError(a.keys.Tasks, err))
		return []domain.Task{}
	}
	return a.mapper.FromRecordSlice(records)
}

// SaveTasks writes the full collection, replacing the previous value.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	raw, err := repository.EncodeTaskRecords(a.mapper.ToRecordSlice(tasks))
	if err != nil {
		return errors.NewStorageError("encode tasks", err)
	}
	if err := a.kv.Set(ctx, a.keys.Tasks, raw); err != nil {
		return errors.NewStorageError("save tasks", err)
	}
	logging.Debugf("saved %d tasks", len(tasks))
	return nil
}

// ClearTasks removes the persisted collection.
func (a *Adapter) ClearTasks(ctx context.Context) error {
	if err := a.kv.Delete(ctx, a.keys.Tasks); err != nil {
		return errors.NewStorageError("clear tasks", err)
	}
	return nil
}

// LoadTheme returns the saved theme, or the default when absent or invalid.
func (a *Adapter) LoadTheme(ctx context.Context) domain.Theme {
	raw, found, err := a.kv.Get(ctx, a.keys.Theme)
	if err != nil {
		logging.Warnf("%v", errors.NewStorageError("load theme", err))
		return domain.DefaultTheme
	}
	if !found {
		return domain.DefaultTheme
	}
	theme, ok := domain.ParseTheme(raw)
	if !ok {
		logging.Debugf("ignoring unknown theme %q", raw)
		return domain.DefaultTheme
	}
	return theme
}

// SaveTheme persists theme.
func (a *Adapter) SaveTheme(ctx context.Context, theme domain.Theme) error {
	if _, ok := domain.ParseTheme(string(theme)); !ok {
		return errors.NewInvalidInputError("theme", string(theme), "must be light or dark")
	}
	if err := a.kv.Set(ctx, a.keys.Theme, string(theme)); err != nil {
		return errors.NewStorageError("save theme", err)
	}
	return nil
}
