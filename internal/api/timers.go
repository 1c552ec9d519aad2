package api

import (
	"context"
	"sync"
	"time"

	"taskflow/internal/domain"
	"taskflow/internal/errors"
	"taskflow/internal/store"
	"taskflow/internal/timer"
)

func (a *apiImpl) StartTimer(ctx context.Context, id string, onTick store.TickFunc) (*domain.Task, error) {
	task, ok := a.store.GetByID(id)
	if !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	if task.Completed {
		return nil, errors.NewInvalidInputError("task", id, "completed tasks cannot be timed")
	}
	a.store.StartTimer(id, onTick)
	return a.GetTask(ctx, id)
}

func (a *apiImpl) StopTimer(ctx context.Context, id string) (*domain.Task, error) {
	if _, ok := a.store.GetByID(id); !ok {
		return nil, errors.NewNotFoundError("task", id)
	}
	a.store.StopTimer(id)
	return a.GetTask(ctx, id)
}

func (a *apiImpl) ResetTimer(ctx context.Context, id string) (*domain.Task, error) {
	task, err := a.store.ResetTimer(id)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Pomodoro is a running focus countdown. It is not attached to any task.
type Pomodoro struct {
	engine *timer.Engine
	length int
	done   chan struct{}
	once   sync.Once
}

// StartPomodoro begins a countdown of length, or the configured length when
// length is not positive. onTick receives the remaining seconds, starting
// with the full length. onComplete runs once when the countdown reaches zero.
func (a *apiImpl) StartPomodoro(ctx context.Context, length time.Duration, onTick func(remaining int), onComplete func()) (*Pomodoro, error) {
	if length <= 0 {
		length = a.pomodoroLength
	}
	seconds := int(length / time.Second)
	if seconds <= 0 {
		return nil, errors.NewInvalidInputError("length", length.String(), "must be at least one second")
	}

	p := &Pomodoro{length: seconds, done: make(chan struct{})}
	p.engine = timer.New(timer.Config{
		Initial:  seconds,
		Mode:     timer.CountDown,
		Interval: a.tickInterval,
		Clock:    a.clock,
		OnTick:   onTick,
		OnComplete: func() {
			p.finish()
			if onComplete != nil {
				onComplete()
			}
		},
	})
	p.engine.Start()
	return p, nil
}

// Remaining returns the seconds left.
func (p *Pomodoro) Remaining() int {
	return p.engine.Remaining()
}

// Length returns the full countdown in seconds.
func (p *Pomodoro) Length() int {
	return p.length
}

// Done is closed when the countdown completes.
func (p *Pomodoro) Done() <-chan struct{} {
	return p.done
}

// Stop abandons the countdown without completing it.
func (p *Pomodoro) Stop() {
	p.engine.Pause()
}

func (p *Pomodoro) finish() {
	p.once.Do(func() { close(p.done) })
}
