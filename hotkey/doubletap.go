package hotkey

import (
	"context"
	"sync/atomic"
	"time"

	"baro/log"
)

// DefaultWindow is the longest gap between releasing the modifier and
// pressing it again that still counts as a double-tap.
const DefaultWindow = 500 * time.Millisecond

type State int

const (
	StateIdle State = iota
	StateAwaitingSecondTap
	StateCooldown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSecondTap:
		return "awaiting_second_tap"
	case StateCooldown:
		return "cooldown"
	}
	return "invalid"
}

// DoubleTap classifies a key event stream into double-taps of one
// modifier key. Timeouts are evaluated lazily when the next event
// arrives; nothing happens while the stream is quiet.
//
// Feed and State must be called from a single goroutine (the one
// running Run, or the test). SetEnabled is safe from anywhere.
type DoubleTap struct {
	modifier Key
	window   time.Duration
	enabled  atomic.Bool
	now      func() time.Time

	state         State
	lastRelease   time.Time
	cooldownUntil time.Time
}

// NewDoubleTap builds a detector for mod. A non-positive window falls
// back to DefaultWindow. The detector starts enabled.
func NewDoubleTap(mod Key, window time.Duration) *DoubleTap {
	if window <= 0 {
		window = DefaultWindow
	}
	d := &DoubleTap{
		modifier: mod,
		window:   window,
		now:      time.Now,
	}
	d.enabled.Store(true)
	return d
}

func (d *DoubleTap) Modifier() Key         { return d.modifier }
func (d *DoubleTap) Window() time.Duration { return d.window }
func (d *DoubleTap) State() State          { return d.state }
func (d *DoubleTap) Enabled() bool         { return d.enabled.Load() }
func (d *DoubleTap) SetEnabled(on bool)    { d.enabled.Store(on) }

// SetClock replaces the time source used by Run.
func (d *DoubleTap) SetClock(fn func() time.Time) { d.now = fn }

// Feed advances the state machine by one event observed at now and
// reports whether the gesture fired. The enabled flag is not consulted
// here; Run applies it when deciding whether to emit.
func (d *DoubleTap) Feed(ev KeyEvent, now time.Time) bool {
	d.expire(now)

	if ev.Key != d.modifier {
		// any other key cancels a pending first tap
		if d.state == StateAwaitingSecondTap {
			d.state = StateIdle
			d.lastRelease = time.Time{}
		}
		return false
	}

	switch ev.Type {
	case KeyDown:
		if d.state != StateAwaitingSecondTap {
			return false
		}
		d.state = StateCooldown
		d.lastRelease = time.Time{}
		d.cooldownUntil = now.Add(d.window)
		return true

	case KeyUp:
		if d.state == StateCooldown {
			// release of the second tap itself
			d.state = StateIdle
			d.cooldownUntil = time.Time{}
			return false
		}
		d.state = StateAwaitingSecondTap
		d.lastRelease = now
	}
	return false
}

func (d *DoubleTap) expire(now time.Time) {
	switch d.state {
	case StateAwaitingSecondTap:
		if now.Sub(d.lastRelease) > d.window {
			d.state = StateIdle
			d.lastRelease = time.Time{}
		}
	case StateCooldown:
		if !now.Before(d.cooldownUntil) {
			d.state = StateIdle
			d.cooldownUntil = time.Time{}
		}
	}
}

// Run consumes l until ctx is done or the listener's channel closes,
// calling emit each time the gesture fires while enabled.
func (d *DoubleTap) Run(ctx context.Context, l Listener, emit func()) {
	events := l.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if d.Feed(ev, d.now()) && d.Enabled() {
				d.fire(emit)
			}
		}
	}
}

func (d *DoubleTap) fire(emit func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("gesture emit panic: %v", r)
		}
	}()
	emit()
}
