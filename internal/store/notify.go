package store

import (
	"fmt"
	"sync"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/logging"
)

// Listener receives a snapshot after every mutation. A returned error or a
// panic is logged and does not affect other listeners.
type Listener func(tasks []domain.Task) error

type listenerEntry struct {
	id int
	fn Listener
}

// notifier delivers queued snapshots one at a time, in mutation order. A
// listener that mutates the store enqueues its own notification, which the
// active delivery loop picks up after the current one finishes.
type notifier struct {
	mu         sync.Mutex
	queue      [][]domain.Task
	delivering bool
}

// Subscribe registers listener and returns a function that removes it.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: listener})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, entry := range s.listeners {
				if entry.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// enqueueLocked captures the current collection for delivery. Must be
// called with s.mu held, right after the mutation and persistence.
func (s *Store) enqueueLocked() {
	snapshot := domain.CloneTasks(s.tasks)
	s.notifier.mu.Lock()
	s.notifier.queue = append(s.notifier.queue, snapshot)
	s.notifier.mu.Unlock()
}

// flush delivers queued snapshots unless another call is already doing so.
// Must be called without s.mu held.
func (s *Store) flush() {
	n := &s.notifier
	n.mu.Lock()
	if n.delivering {
		n.mu.Unlock()
		return
	}
	n.delivering = true
	for len(n.queue) > 0 {
		snapshot := n.queue[0]
		n.queue = n.queue[1:]
		n.mu.Unlock()

		s.deliver(snapshot)

		n.mu.Lock()
	}
	n.delivering = false
	n.mu.Unlock()
}

func (s *Store) deliver(snapshot []domain.Task) {
	s.mu.Lock()
	listeners := append([]listenerEntry(nil), s.listeners...)
	s.mu.Unlock()

	for _, entry := range listeners {
		if err := callListener(entry.fn, domain.CloneTasks(snapshot)); err != nil {
			logging.Warnf("%v", errors.NewListenerError(entry.id, err))
		}
	}
}

func callListener(fn Listener, tasks []domain.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(tasks)
}
