package store

import (
	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/timer"
)

// TickFunc is told which task ticked.
type TickFunc func(id string)

// StartTimer starts a count-up engine for the task. It is a no-op for an
// unknown, completed or already running task. Each tick adds one second to
// timerSeconds, persists, notifies, then calls onTick.
func (s *Store) StartTimer(id string, onTick TickFunc) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 || s.tasks[i].Completed || s.tasks[i].TimerRunning || s.timers[id] != nil {
		s.mu.Unlock()
		return
	}

	var engine *timer.Engine
	engine = timer.New(timer.Config{
		Initial:  s.tasks[i].TimerSeconds,
		Mode:     timer.CountUp,
		Interval: s.tickInterval,
		Clock:    s.clock,
		OnTick: func(value int) {
			s.handleTick(id, engine, value, onTick)
		},
	})
	s.timers[id] = engine
	s.tasks[i].TimerRunning = true

	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	engine.Start()

	// The timer may have been stopped between releasing the lock and Start.
	s.mu.Lock()
	stale := s.timers[id] != engine
	s.mu.Unlock()
	if stale {
		engine.Pause()
	}
}

// StopTimer tears down the task's engine. No-op without a running timer.
func (s *Store) StopTimer(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 || !s.stopTimerLocked(&s.tasks[i]) {
		s.mu.Unlock()
		return
	}

	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
}

// ResetTimer stops the task's timer and zeroes its tracked time.
func (s *Store) ResetTimer(id string) (domain.Task, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Task{}, errors.NewNotFoundError("task", id)
	}

	task := &s.tasks[i]
	s.stopTimerLocked(task)
	task.TimerSeconds = 0
	updated := task.Clone()

	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	return updated, nil
}

// IsTimerActive reports whether an engine is live for id.
func (s *Store) IsTimerActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[id] != nil
}

// Close stops every engine and persists the cleared running flags.
// Subscribers are not notified.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopAllTimersLocked() {
		s.persistLocked()
	}
}

// handleTick applies an engine tick. Ticks from an engine that is no longer
// registered, and the immediate start tick, are ignored.
func (s *Store) handleTick(id string, engine *timer.Engine, value int, onTick TickFunc) {
	s.mu.Lock()
	if s.timers[id] != engine {
		s.mu.Unlock()
		return
	}
	i := s.indexLocked(id)
	if i < 0 || value <= s.tasks[i].TimerSeconds {
		s.mu.Unlock()
		return
	}

	s.tasks[i].TimerSeconds = value
	s.persistLocked()
	s.enqueueLocked()
	s.mu.Unlock()

	s.flush()
	if onTick != nil {
		onTick(id)
	}
}

// stopTimerLocked cancels the engine for task and clears its running flag.
// Returns false if nothing was running.
func (s *Store) stopTimerLocked(task *domain.Task) bool {
	engine, ok := s.timers[task.ID]
	if !ok && !task.TimerRunning {
		return false
	}
	if ok {
		delete(s.timers, task.ID)
		engine.Pause()
	}
	task.TimerRunning = false
	return true
}

func (s *Store) stopAllTimersLocked() bool {
	stopped := false
	for i := range s.tasks {
		if s.stopTimerLocked(&s.tasks[i]) {
			stopped = true
		}
	}
	for id, engine := range s.timers {
		delete(s.timers, id)
		engine.Pause()
	}
	return stopped
}
