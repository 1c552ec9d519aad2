package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/clock"
)

type recorder struct {
	mu        sync.Mutex
	ticks     []int
	completes int
}

func (r *recorder) onTick(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, v)
}

func (r *recorder) onComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completes++
}

func (r *recorder) snapshot() ([]int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.ticks...), r.completes
}

func newEngine(c *clock.FakeClock, initial int, mode Mode) (*Engine, *recorder) {
	rec := &recorder{}
	e := New(Config{
		Initial:    initial,
		Mode:       mode,
		Clock:      c,
		OnTick:     rec.onTick,
		OnComplete: rec.onComplete,
	})
	return e, rec
}

func TestCountUp(t *testing.T) {
	c := clock.Fake(time.Now())
	e, rec := newEngine(c, 10, CountUp)

	e.Start()
	assert.True(t, e.IsRunning())
	c.Advance(3 * time.Second)

	ticks, completes := rec.snapshot()
	assert.Equal(t, []int{10, 11, 12, 13}, ticks)
	assert.Zero(t, completes)
	assert.Equal(t, 13, e.Remaining())
}

func TestCountDownCompletesOnce(t *testing.T) {
	c := clock.Fake(time.Now())
	e, rec := newEngine(c, 3, CountDown)

	e.Start()
	c.Advance(10 * time.Second)

	ticks, completes := rec.snapshot()
	assert.Equal(t, []int{3, 2, 1, 0}, ticks)
	assert.Equal(t, 1, completes)
	assert.False(t, e.IsRunning())
	assert.Zero(t, c.PendingCount())
}

func TestCountDownFromZero(t *testing.T) {
	c := clock.Fake(time.Now())
	e, rec := newEngine(c, 0, CountDown)

	e.Start()

	ticks, completes := rec.snapshot()
	assert.Equal(t, []int{0}, ticks)
	assert.Equal(t, 1, completes)
	assert.False(t, e.IsRunning())
	assert.Zero(t, c.PendingCount())
}

func TestPause(t *testing.T) {
	c := clock.Fake(time.Now())
	e, rec := newEngine(c, 0, CountUp)

	e.Start()
	c.Advance(2 * time.Second)
	e.Pause()
	e.Pause()
	c.Advance(5 * time.Second)

	ticks, _ := rec.snapshot()
	assert.Equal(t, []int{0, 1, 2}, ticks)
	assert.False(t, e.IsRunning())
	assert.Equal(t, 2, e.Remaining())
	assert.Zero(t, c.PendingCount())
}

func TestRestartDoesNotDoubleSchedule(t *testing.T) {
	c := clock.Fake(time.Now())
	e, rec := newEngine(c, 0, CountUp)

	e.Start()
	e.Start()
	e.Start()
	assert.Equal(t, 1, c.PendingCount())

	c.Advance(2 * time.Second)

	ticks, _ := rec.snapshot()
	assert.Equal(t, []int{0, 0, 0, 1, 2}, ticks)
}

func TestStartFrom(t *testing.T) {
	c := clock.Fake(time.Now())
	e, rec := newEngine(c, 100, CountDown)

	e.StartFrom(-5)

	ticks, completes := rec.snapshot()
	assert.Equal(t, []int{0}, ticks)
	assert.Equal(t, 1, completes)

	e.StartFrom(2)
	c.Advance(2 * time.Second)
	ticks, completes = rec.snapshot()
	assert.Equal(t, []int{0, 2, 1, 0}, ticks)
	assert.Equal(t, 2, completes)
}

func TestReset(t *testing.T) {
	c := clock.Fake(time.Now())
	e, rec := newEngine(c, 5, CountDown)

	e.Start()
	c.Advance(time.Second)
	e.Reset(60)

	assert.False(t, e.IsRunning())
	assert.Equal(t, 60, e.Remaining())
	c.Advance(5 * time.Second)

	ticks, completes := rec.snapshot()
	assert.Equal(t, []int{5, 4, 60}, ticks)
	assert.Zero(t, completes)

	e.Reset(-1)
	assert.Equal(t, 0, e.Remaining())
}

func TestCustomInterval(t *testing.T) {
	c := clock.Fake(time.Now())
	rec := &recorder{}
	e := New(Config{Mode: CountUp, Interval: 500 * time.Millisecond, Clock: c, OnTick: rec.onTick})

	e.Start()
	c.Advance(time.Second)

	ticks, _ := rec.snapshot()
	assert.Equal(t, []int{0, 1, 2}, ticks)
}

func TestCallbackMayPause(t *testing.T) {
	c := clock.Fake(time.Now())
	var e *Engine
	count := 0
	e = New(Config{Mode: CountUp, Clock: c, OnTick: func(v int) {
		count++
		if v == 2 {
			e.Pause()
		}
	}})

	e.Start()
	c.Advance(10 * time.Second)

	assert.Equal(t, 3, count)
	assert.Equal(t, 2, e.Remaining())
}

func TestNilCallbacksAndDefaults(t *testing.T) {
	e := New(Config{Initial: -3})

	require.NotPanics(t, func() {
		e.Reset(1)
		e.Pause()
	})
	assert.Equal(t, 1, e.Remaining())
	assert.Equal(t, DefaultInterval, e.interval)
}
