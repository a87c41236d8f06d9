// Package window owns the launcher window's visibility, focus and
// repaint scheduling. Everything here runs on the UI goroutine.
package window

import (
	"errors"
	"fmt"
	"time"

	"baro/event"
)

var ErrQuit = errors.New("window: quit requested")

type RepaintMode int

const (
	// ModeWait parks until input or an external signal arrives.
	ModeWait RepaintMode = iota
	// ModePoll repaints continuously.
	ModePoll
	// ModeWaitUntil parks until a deadline.
	ModeWaitUntil
)

func (m RepaintMode) String() string {
	switch m {
	case ModeWait:
		return "wait"
	case ModePoll:
		return "poll"
	case ModeWaitUntil:
		return "wait_until"
	}
	return "invalid"
}

// Surface is the toolkit side of the window.
type Surface interface {
	Show()
	Hide()
	Focus()
	// RequestRepaint replaces any previously scheduled repaint. at is
	// only meaningful for ModeWaitUntil.
	RequestRepaint(mode RepaintMode, at time.Time)
	FilesDropped(paths []string)
}

type Controller struct {
	surface Surface
	summon  *SummonFlag
	now     func() time.Time

	visible  bool
	mode     RepaintMode
	deadline time.Time
	hovering []string

	onToggleGesture func(on bool)
}

// NewController starts hidden, in ModeWait.
func NewController(s Surface, flag *SummonFlag) *Controller {
	return &Controller{
		surface: s,
		summon:  flag,
		now:     time.Now,
	}
}

func (c *Controller) OnToggleGesture(fn func(on bool)) { c.onToggleGesture = fn }
func (c *Controller) SetClock(fn func() time.Time)     { c.now = fn }

func (c *Controller) Visible() bool                     { return c.visible }
func (c *Controller) Repaint() (RepaintMode, time.Time) { return c.mode, c.deadline }
func (c *Controller) Hovering() bool                    { return len(c.hovering) > 0 }

func (c *Controller) Handle(sig event.Signal) error {
	switch sig.Kind {
	case event.KindSummon, event.KindTrayClick:
		c.Summon()
	case event.KindDismiss:
		c.Dismiss()
	case event.KindRepaintAfter:
		c.RepaintAfter(sig.Delay)
	case event.KindFileHovered:
		if c.visible {
			c.hovering = sig.Paths
			c.RepaintAfter(0)
		}
	case event.KindFileHoverCancelled:
		c.hovering = nil
		if c.visible {
			c.RepaintAfter(0)
		}
	case event.KindFileDropped:
		c.hovering = nil
		if c.visible && len(sig.Paths) > 0 {
			c.surface.FilesDropped(sig.Paths)
			c.RepaintAfter(0)
		}
	case event.KindToggleGesture:
		if c.onToggleGesture != nil {
			c.onToggleGesture(sig.On)
		}
	case event.KindQuit:
		return ErrQuit
	default:
		return fmt.Errorf("window: unhandled signal %s", sig)
	}
	return nil
}

// Summon brings the window to the front. It is idempotent for
// visibility; focus and the summon flag are re-requested every time.
func (c *Controller) Summon() {
	if !c.visible {
		c.visible = true
		c.surface.Show()
	}
	c.surface.Focus()
	c.RepaintAfter(0)
	c.summon.Set()
}

// Dismiss hides the window. Nothing is torn down.
func (c *Controller) Dismiss() {
	if c.visible {
		c.visible = false
		c.surface.Hide()
	}
	c.hovering = nil
	c.park()
}

// CloseRequested handles the window's close button: hide, then let the
// loop spin once so the toolkit processes the hide.
func (c *Controller) CloseRequested() {
	c.Dismiss()
	c.RepaintAfter(0)
}

func (c *Controller) RepaintAfter(d time.Duration) {
	if !c.visible {
		c.park()
		return
	}
	if d <= 0 {
		c.mode = ModePoll
		c.deadline = time.Time{}
	} else {
		c.mode = ModeWaitUntil
		c.deadline = c.now().Add(d)
	}
	c.surface.RequestRepaint(c.mode, c.deadline)
}

func (c *Controller) park() {
	c.mode = ModeWait
	c.deadline = time.Time{}
	c.surface.RequestRepaint(ModeWait, time.Time{})
}

// Frame is called by the surface before it repaints on its own
// initiative (animation timers and the like) and reports whether that
// repaint may go ahead. Hidden windows never repaint. A poll request is
// served once and then parks.
func (c *Controller) Frame() bool {
	if !c.visible {
		return false
	}
	switch c.mode {
	case ModePoll:
		c.mode = ModeWait
		return true
	case ModeWaitUntil:
		if c.now().Before(c.deadline) {
			return false
		}
		c.mode = ModeWait
		c.deadline = time.Time{}
		return true
	}
	return false
}

// TakeSummon is read once per frame by the search box: when true it
// clears its text and takes keyboard focus.
func (c *Controller) TakeSummon() bool {
	return c.summon.Take()
}
