// Package api is the task-management surface used by the command line. It
// wires the task store to persistence and turns raw user input into store
// operations.
package api

import (
	"context"
	"strings"
	"time"

	"taskflow/internal/clock"
	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/repository"
	"taskflow/internal/storage"
	"taskflow/internal/store"
	"taskflow/internal/validation"
	"taskflow/internal/view"
)

// API defines every operation the presentation layer can perform.
//
// Task and timer mutations persist through the store with its own write
// timeout (Options.PersistTimeout), so cancelling ctx does not abandon a
// write already in progress. Theme reads and writes use ctx directly.
type API interface {
	// Task operations
	AddTask(ctx context.Context, input TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ResolveTask(ctx context.Context, ref string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, input TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleComplete(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, query ListQuery) ([]domain.Task, error)
	SelectTask(ctx context.Context, id string) (*domain.Task, error)
	SelectedTask(ctx context.Context) (*domain.Task, error)

	// Timer operations
	StartTimer(ctx context.Context, id string, onTick store.TickFunc) (*domain.Task, error)
	StopTimer(ctx context.Context, id string) (*domain.Task, error)
	ResetTimer(ctx context.Context, id string) (*domain.Task, error)
	StartPomodoro(ctx context.Context, length time.Duration, onTick func(remaining int), onComplete func()) (*Pomodoro, error)

	// Preferences and reporting
	Stats(ctx context.Context) view.Stats
	Theme(ctx context.Context) domain.Theme
	SetTheme(ctx context.Context, theme string) (domain.Theme, error)
	ToggleTheme(ctx context.Context) (domain.Theme, error)

	Subscribe(listener store.Listener) (unsubscribe func())
	Close() error
}

// Options configures New. Zero values select the defaults.
type Options struct {
	Keys            storage.Keys
	Clock           clock.Clock
	TickInterval    time.Duration
	DefaultCategory string
	DefaultPriority domain.Priority
	DefaultSort     view.SortMode
	PomodoroLength  time.Duration
	PersistTimeout  time.Duration
	TitleMaxLength  int
	NewID           func() string
}

// DefaultPomodoroLength is used when Options.PomodoroLength is unset.
const DefaultPomodoroLength = 25 * time.Minute

// OptionsFromConfig maps the loaded configuration onto API options.
func OptionsFromConfig(cfg *config.Config) Options {
	priority, _ := domain.ParsePriority(cfg.Tasks.DefaultPriority)
	sortMode, _ := view.ParseSortMode(cfg.Display.DefaultSort)
	return Options{
		Keys:            storage.Keys{Tasks: cfg.Storage.TasksKey, Theme: cfg.Storage.ThemeKey},
		TickInterval:    cfg.Timer.TickInterval,
		DefaultCategory: cfg.Tasks.DefaultCategory,
		DefaultPriority: priority,
		DefaultSort:     sortMode,
		PomodoroLength:  cfg.Timer.PomodoroLength,
		PersistTimeout:  cfg.Storage.WriteTimeout,
		TitleMaxLength:  cfg.Tasks.TitleMaxLength,
	}
}

type apiImpl struct {
	store          *store.Store
	storage        *storage.Adapter
	clock          clock.Clock
	tickInterval   time.Duration
	validator      *validation.TaskValidator
	defaultSort    view.SortMode
	pomodoroLength time.Duration
}

// New loads the persisted tasks from kv and returns a ready API. The caller
// keeps ownership of kv and closes it after Close.
func New(ctx context.Context, kv repository.KeyValueStore, opts Options) API {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.PomodoroLength <= 0 {
		opts.PomodoroLength = DefaultPomodoroLength
	}
	if opts.DefaultSort == "" {
		opts.DefaultSort = view.SortNewest
	}
	validator := validation.NewTaskValidatorWithLimits(opts.TitleMaxLength)

	adapter := storage.New(kv, opts.Keys)
	s := store.New(adapter, store.Options{
		Clock:           opts.Clock,
		TickInterval:    opts.TickInterval,
		DefaultCategory: opts.DefaultCategory,
		DefaultPriority: opts.DefaultPriority,
		PersistTimeout:  opts.PersistTimeout,
		Validator:       validator,
		NewID:           opts.NewID,
	})
	s.Load(adapter.LoadTasks(ctx))

	return &apiImpl{
		store:          s,
		storage:        adapter,
		clock:          opts.Clock,
		tickInterval:   opts.TickInterval,
		validator:      validator,
		defaultSort:    opts.DefaultSort,
		pomodoroLength: opts.PomodoroLength,
	}
}

// Task operations
func (a *apiImpl) AddTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	fields, err := input.toFields(a.validator, a.clock.Now())
	if err != nil {
		return nil, err
	}
	task, err := a.store.Add(fields)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, ok := a.store.GetByID(id)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	return &task, nil
}

// ResolveTask finds a task by exact id or by a unique id prefix.
func (a *apiImpl) ResolveTask(ctx context.Context, ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.NewInvalidInputError("task", ref, "a task id is required")
	}
	if task, ok := a.store.GetByID(ref); ok {
		return &task, nil
	}

	var matches []domain.Task
	for _, task := range a.store.GetAll() {
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errors.NewNotFoundError("task", ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, errors.NewInvalidInputError("task", ref, "id prefix matches more than one task")
	}
}

func (a *apiImpl) UpdateTask(ctx context.Context, id string, input TaskInput) (*domain.Task, error) {
	fields, err := input.toFields(a.validator, a.clock.Now())
	if err != nil {
		return nil, err
	}
	if fields.IsEmpty() {
		return nil, errors.NewInvalidInputError("task", id, "nothing to update")
	}
	task, err := a.store.Update(id, fields)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *apiImpl) DeleteTask(ctx context.Context, id string) error {
	if _, ok := a.store.GetByID(id); !ok {
		return errors.NewNotFoundError("task", id)
	}
	a.store.Remove(id)
	return nil
}

func (a *apiImpl) ToggleComplete(ctx context.Context, id string) (*domain.Task, error) {
	task, err := a.store.ToggleComplete(id)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks composes the visible list. An empty sort falls back to the
// configured default.
func (a *apiImpl) ListTasks(ctx context.Context, query ListQuery) ([]domain.Task, error) {
	criteria, err := query.toCriteria(a.defaultSort)
	if err != nil {
		return nil, err
	}
	return view.Compose(a.store.GetAll(), criteria, a.clock.Now()), nil
}

func (a *apiImpl) SelectTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := a.store.Select(id); err != nil {
		return nil, err
	}
	return a.SelectedTask(ctx)
}

func (a *apiImpl) SelectedTask(ctx context.Context) (*domain.Task, error) {
	task, ok := a.store.Selected()
	if !ok {
		return nil, errors.NewNotFoundError("selection", "none")
	}
	return &task, nil
}

func (a *apiImpl) Subscribe(listener store.Listener) func() {
	return a.store.Subscribe(listener)
}

// Close stops all timers and persists their final state.
func (a *apiImpl) Close() error {
	a.store.Close()
	return nil
}
