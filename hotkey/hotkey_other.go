//go:build darwin || windows

package hotkey

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"
)

// comboListener can only observe registered combinations, so it
// registers modifier+Space and reports the combo's keydown/keyup as
// presses and releases of the modifier. Double-tapping the combo then
// reads as a double-tap of the modifier.
type comboListener struct {
	mod    Key
	hk     *hotkey.Hotkey
	events chan KeyEvent
	stop   chan struct{}
	once   sync.Once
}

// New creates a listener using golang.design/x/hotkey (Cocoa/Win32).
func New(mod Key) Listener {
	return &comboListener{
		mod:    mod,
		hk:     hotkey.New([]hotkey.Modifier{platformModifier(mod)}, hotkey.KeySpace),
		events: make(chan KeyEvent, 64),
		stop:   make(chan struct{}),
	}
}

func (h *comboListener) Register() error {
	if err := h.hk.Register(); err != nil {
		return fmt.Errorf("registering %s+space: %w", h.mod, err)
	}
	go h.forward(h.hk.Keydown(), KeyDown)
	go h.forward(h.hk.Keyup(), KeyUp)
	return nil
}

func (h *comboListener) forward(src <-chan hotkey.Event, t EventType) {
	for {
		select {
		case <-h.stop:
			return
		case <-src:
		}
		select {
		case h.events <- KeyEvent{Key: h.mod, Type: t}:
		case <-h.stop:
			return
		}
	}
}

func (h *comboListener) Unregister() {
	h.once.Do(func() {
		close(h.stop)
		h.hk.Unregister()
	})
}

func (h *comboListener) Events() <-chan KeyEvent {
	return h.events
}

// Diagnose checks hotkey availability and returns a status message.
func Diagnose() (string, error) {
	return "hotkey support available (double-tap <modifier>+Space)", nil
}
