package battle

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultAutoPlayInterval is the fast-forward period between steps.
const DefaultAutoPlayInterval = time.Second

// ErrBattleReset is returned by Wait when the battle it was waiting on is
// reset before it ends.
var ErrBattleReset = errors.New("battle: reset before the end")

// watch is the completion signal of one battle. A Reset retires it.
type watch struct {
	done  chan struct{}
	fired bool
	reset bool
}

func newWatch() *watch {
	return &watch{done: make(chan struct{})}
}

// finish closes the watch once; reset records why.
func (w *watch) finish(reset bool) {
	if w.fired {
		return
	}
	w.fired = true
	w.reset = reset
	close(w.done)
}

// Driver owns a battle state and applies transitions to it one at a time,
// either on demand or from a repeating auto-play timer.
//
// At most one timer is pending at any moment. Stopping is idempotent and
// waits for a step that is already running. Reset and Close always disarm
// the timer, so a tick scheduled for an old state never lands on a new one.
type Driver struct {
	mu       sync.Mutex
	state    State
	interval time.Duration
	timer    *time.Timer
	gen      uint64 // Bumped on every disarm; stale timers compare against it
	closed   bool
	watch    *watch
	onChange func(State)
	logger   *log.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithOnChange registers a callback invoked after every applied transition.
// The callback runs with the driver locked and must not call back into it.
func WithOnChange(fn func(State)) DriverOption {
	return func(d *Driver) {
		d.onChange = fn
	}
}

// WithLogger sets the logger used for auto-play lifecycle events.
func WithLogger(logger *log.Logger) DriverOption {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDriver creates a driver for the given state. A non-positive interval
// falls back to DefaultAutoPlayInterval.
func NewDriver(state State, interval time.Duration, opts ...DriverOption) *Driver {
	if interval <= 0 {
		interval = DefaultAutoPlayInterval
	}

	d := &Driver{
		state:    state,
		interval: interval,
		watch:    newWatch(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	if state.Ended {
		d.watch.finish(false)
	}
	return d
}

// State returns the current snapshot.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Dispatch applies an action and returns the resulting state.
// Reset disarms auto-play; it must be started again for the new battle.
// Callers blocked in Wait on the replaced battle get ErrBattleReset.
func (d *Driver) Dispatch(a Action) State {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return d.state
	}

	if _, ok := a.(Reset); ok {
		d.disarmLocked()
		d.watch.finish(true)
		d.watch = newWatch()
	}
	d.applyLocked(a)
	return d.state
}

// Step is shorthand for Dispatch(Step{}).
func (d *Driver) Step() State {
	return d.Dispatch(Step{})
}

// StartAutoPlay arms the repeating timer. It returns false when the battle
// is already over, the driver is closed, or auto-play is already running.
func (d *Driver) StartAutoPlay() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.state.Ended || d.timer != nil {
		return false
	}

	d.logger.Debug("auto-play started", "interval", d.interval, "step", d.state.Steps)
	d.armLocked()
	return true
}

// StopAutoPlay cancels the pending tick, if any.
func (d *Driver) StopAutoPlay() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.logger.Debug("auto-play stopped", "step", d.state.Steps)
	}
	d.disarmLocked()
}

// AutoPlaying reports whether a tick is currently scheduled.
func (d *Driver) AutoPlaying() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Close disarms the timer and rejects further transitions.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.disarmLocked()
	d.closed = true
}

// Wait blocks until the current battle ends, is reset, or ctx is cancelled.
// After a reset it returns the fresh state with ErrBattleReset.
func (d *Driver) Wait(ctx context.Context) (State, error) {
	d.mu.Lock()
	w := d.watch
	d.mu.Unlock()

	select {
	case <-w.done:
		d.mu.Lock()
		defer d.mu.Unlock()
		if w.reset {
			return d.state, ErrBattleReset
		}
		return d.state, nil
	case <-ctx.Done():
		return d.State(), ctx.Err()
	}
}

// armLocked schedules the next tick for the current generation.
func (d *Driver) armLocked() {
	gen := d.gen
	d.timer = time.AfterFunc(d.interval, func() {
		d.fire(gen)
	})
}

// disarmLocked cancels the pending tick and invalidates any that already fired.
func (d *Driver) disarmLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// fire runs one auto-play tick and re-arms while the battle continues.
func (d *Driver) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || gen != d.gen || d.timer == nil {
		return
	}
	d.timer = nil

	d.applyLocked(Step{})

	if d.state.Ended {
		d.logger.Debug("auto-play finished", "step", d.state.Steps, "winner", d.state.Winner)
		return
	}
	d.armLocked()
}

// applyLocked reduces the state and publishes the change. Reaching the end
// disarms auto-play and releases waiters.
func (d *Driver) applyLocked(a Action) {
	d.state = Reduce(d.state, a)

	if d.state.Ended {
		d.disarmLocked()
		d.watch.finish(false)
	}
	if d.onChange != nil {
		d.onChange(d.state)
	}
}
