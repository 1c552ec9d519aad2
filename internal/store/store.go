// Package store owns the authoritative in-memory task collection. Every
// mutation is persisted through a Persister and then announced to
// subscribers with a fresh snapshot.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/clock"
	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/logging"
	"taskflow/internal/timer"
	"taskflow/internal/validation"
)

// Persister writes the full task collection. Failures are logged by the
// store and never undo the in-memory mutation.
type Persister interface {
	SaveTasks(ctx context.Context, tasks []domain.Task) error
}

// Options configures a Store. Zero values select the defaults.
type Options struct {
	Clock           clock.Clock
	TickInterval    time.Duration
	DefaultCategory string
	DefaultPriority domain.Priority
	PersistTimeout  time.Duration
	Validator       *validation.TaskValidator
	// NewID generates task ids. Defaults to random UUIDs.
	NewID func() string
}

const (
	DefaultCategory       = "Personal"
	DefaultPriority       = domain.PriorityMedium
	defaultPersistTimeout = 10 * time.Second
)

// Store is safe for concurrent use. Timer ticks arrive on clock goroutines
// and are serialised with the public operations by mu.
type Store struct {
	persister       Persister
	clock           clock.Clock
	tickInterval    time.Duration
	defaultCategory string
	defaultPriority domain.Priority
	persistTimeout  time.Duration
	validator       *validation.TaskValidator
	newID           func() string

	mu         sync.Mutex
	tasks      []domain.Task
	timers     map[string]*timer.Engine
	selectedID string
	listeners  []listenerEntry
	nextID     int

	notifier notifier
}

// New creates an empty store. A nil persister keeps tasks in memory only.
func New(persister Persister, opts Options) *Store {
	s := &Store{
		persister:       persister,
		clock:           opts.Clock,
		tickInterval:    opts.TickInterval,
		defaultCategory: strings.TrimSpace(opts.DefaultCategory),
		defaultPriority: opts.DefaultPriority,
		persistTimeout:  opts.PersistTimeout,
		validator:       opts.Validator,
		newID:           opts.NewID,
		tasks:           []domain.Task{},
		timers:          make(map[string]*timer.Engine),
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.tickInterval <= 0 {
		s.tickInterval = timer.DefaultInterval
	}
	if s.defaultCategory == "" {
		s.defaultCategory = DefaultCategory
	}
	if !s.defaultPriority.IsValid() {
		s.defaultPriority = DefaultPriority
	}
	if s.persistTimeout <= 0 {
		s.persistTimeout = defaultPersistTimeout
	}
	if s.validator == nil {
		s.validator = validation.NewTaskValidator()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Load replaces the collection with previously persisted tasks. No timer
// survives a restart, so timerRunning is cleared. Records with a duplicate
// id are dropped and records without one get a fresh id. Subscribers are
// notified; nothing is written back.
func (s *Store) Load(tasks []domain.Task) {
	s.mu.Lock()
	s.stopAllTimersLocked()

	seen := make(map[string]bool, len(tasks))
	loaded := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		task = task.Clone()
		if task.ID == "" {
			task.ID = s.uniqueIDLocked(seen)
		}
		if seen[task.ID] {
			logging.Warnf("dropping task with duplicate id %s", task.ID)
			continue
		}
		seen[task.ID] = true
		task.TimerRunning = false
		if task.Tags == nil {
			task.Tags = []string{}
		}
		loaded = append(loaded, task)
	}
	s.tasks = loaded
	s.selectedID = ""
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
}

// GetAll returns a deep copy of the collection in store order.
func (s *Store) GetAll() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneTasks(s.tasks)
}

// GetByID returns a copy of the task with id.
func (s *Store) GetByID(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Add creates a task from fields, filling defaults, and inserts it at the
// front of the collection. Completion and timer state always start cleared.
func (s *Store) Add(fields domain.TaskFields) (domain.Task, error) {
	if err := s.validator.ValidateFields(fields, true); err != nil {
		return domain.Task{}, validationError(err)
	}

	s.mu.Lock()
	task := domain.Task{
		ID:        s.uniqueIDLocked(nil),
		Category:  s.defaultCategory,
		Priority:  s.defaultPriority,
		CreatedAt: s.clock.Now(),
		Tags:      []string{},
	}
	fields.Completed = nil
	fields.ApplyTo(&task)
	s.normalizeLocked(&task)

	s.tasks = append([]domain.Task{task}, s.tasks...)
	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	return task.Clone(), nil
}

// Update shallow-merges fields over the task. Completing a task through
// Update stops its timer first.
func (s *Store) Update(id string, fields domain.TaskFields) (domain.Task, error) {
	if err := s.validator.ValidateFields(fields, false); err != nil {
		return domain.Task{}, validationError(err)
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Task{}, errors.NewNotFoundError("task", id)
	}

	task := &s.tasks[i]
	if fields.Completed != nil && *fields.Completed {
		s.stopTimerLocked(task)
	}
	fields.ApplyTo(task)
	s.normalizeLocked(task)
	updated := task.Clone()

	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	return updated, nil
}

// Remove deletes the task, stopping its timer first. Removing an unknown id
// is a no-op and does not notify.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	s.stopTimerLocked(&s.tasks[i])
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
	}

	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
}

// ToggleComplete flips completion. Completing stops a running timer first.
func (s *Store) ToggleComplete(id string) (domain.Task, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Task{}, errors.NewNotFoundError("task", id)
	}

	task := &s.tasks[i]
	if !task.Completed {
		s.stopTimerLocked(task)
	}
	task.Completed = !task.Completed
	updated := task.Clone()

	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	return updated, nil
}

// Select marks a task as the detail-view selection.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		return errors.NewNotFoundError("task", id)
	}
	s.selectedID = id
	return nil
}

// Selected returns the selected task, if any.
func (s *Store) Selected() (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return domain.Task{}, false
	}
	i := s.indexLocked(s.selectedID)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// ClearSelection drops the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueIDLocked draws ids until one is free in the collection and in extra.
func (s *Store) uniqueIDLocked(extra map[string]bool) string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 && !extra[id] {
			return id
		}
	}
}

func (s *Store) normalizeLocked(task *domain.Task) {
	task.Title = strings.TrimSpace(task.Title)
	task.Category = strings.TrimSpace(task.Category)
	if task.Category == "" {
		task.Category = s.defaultCategory
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()
	if err := s.persister.SaveTasks(ctx, s.tasks); err != nil {
		logging.Warnf("keeping changes in memory only: %v", err)
	}
}

func validationError(err error) error {
	message := err.Error()
	if ve, ok := err.(*validation.ValidationError); ok {
		message = ve.GetUserFriendlyMessage()
	}
	return errors.NewValidationError(message, err)
}
