// Package timer provides a task-agnostic ticking primitive that counts up or
// down once per interval.
package timer

import (
	"sync"
	"time"

	"taskflow/internal/clock"
)

// Mode selects the tick direction.
type Mode int

const (
	// CountUp increments the value on every tick and never completes.
	CountUp Mode = iota
	// CountDown decrements the value and completes when it reaches zero.
	CountDown
)

// DefaultInterval is the tick period when Config.Interval is unset.
const DefaultInterval = time.Second

// Config describes one ticking session.
type Config struct {
	// Initial is the starting value in ticks. Negative values clamp to zero.
	Initial int
	Mode    Mode
	// Interval defaults to DefaultInterval.
	Interval time.Duration
	// Clock defaults to clock.Real().
	Clock clock.Clock
	// OnTick receives the current value immediately on start and after each
	// tick. Optional.
	OnTick func(value int)
	// OnComplete runs once when a countdown reaches zero. Optional.
	OnComplete func()
}

// Engine is one countdown or count-up session. Callbacks are invoked without
// the engine lock held, so they may call back into the engine.
type Engine struct {
	clock      clock.Clock
	interval   time.Duration
	mode       Mode
	onTick     func(int)
	onComplete func()

	mu      sync.Mutex
	value   int
	running bool
	// generation invalidates ticks scheduled before the latest start or pause.
	generation uint64
	pending    *clock.Timer
}

// New builds a stopped engine.
func New(cfg Config) *Engine {
	e := &Engine{
		clock:      cfg.Clock,
		interval:   cfg.Interval,
		mode:       cfg.Mode,
		onTick:     cfg.OnTick,
		onComplete: cfg.OnComplete,
		value:      clamp(cfg.Initial),
	}
	if e.clock == nil {
		e.clock = clock.Real()
	}
	if e.interval <= 0 {
		e.interval = DefaultInterval
	}
	return e
}

// Start begins ticking from the current value. Calling Start on a running
// engine restarts its schedule.
func (e *Engine) Start() {
	e.start(nil)
}

// StartFrom reassigns the value, then starts.
func (e *Engine) StartFrom(value int) {
	e.start(&value)
}

func (e *Engine) start(value *int) {
	e.mu.Lock()
	if value != nil {
		e.value = clamp(*value)
	}
	e.cancelLocked()
	e.running = true
	e.generation++
	generation := e.generation
	current := e.value
	finished := e.mode == CountDown && current == 0
	if finished {
		e.running = false
	}
	e.mu.Unlock()

	e.tick(current)
	if finished {
		e.complete()
		return
	}

	e.mu.Lock()
	if e.generation == generation && e.running {
		e.scheduleLocked(generation)
	}
	e.mu.Unlock()
}

// Pause stops ticking without touching the value. Pausing a stopped engine
// is a no-op.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	e.cancelLocked()
}

// Reset pauses, assigns value and reports it through OnTick once.
func (e *Engine) Reset(value int) {
	e.mu.Lock()
	e.running = false
	e.cancelLocked()
	e.value = clamp(value)
	current := e.value
	e.mu.Unlock()

	e.tick(current)
}

// IsRunning reports whether ticks are scheduled.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Remaining returns the current value: seconds left for a countdown, seconds
// elapsed for a count-up.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// cancelLocked drops the pending tick and invalidates any tick already in
// flight. Must be called with e.mu held.
func (e *Engine) cancelLocked() {
	e.generation++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) scheduleLocked(generation uint64) {
	e.pending = e.clock.AfterFunc(e.interval, func() { e.fire(generation) })
}

func (e *Engine) fire(generation uint64) {
	e.mu.Lock()
	if generation != e.generation || !e.running {
		e.mu.Unlock()
		return
	}

	finished := false
	switch e.mode {
	case CountDown:
		e.value--
		if e.value <= 0 {
			e.value = 0
			e.running = false
			e.pending = nil
			finished = true
		}
	default:
		e.value++
	}
	if !finished {
		e.scheduleLocked(generation)
	}
	current := e.value
	e.mu.Unlock()

	e.tick(current)
	if finished {
		e.complete()
	}
}

func (e *Engine) tick(value int) {
	if e.onTick != nil {
		e.onTick(value)
	}
}

func (e *Engine) complete() {
	if e.onComplete != nil {
		e.onComplete()
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
