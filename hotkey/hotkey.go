package hotkey

import (
	"fmt"
	"strings"
)

// Key identifies a key as far as gesture detection cares: the four
// modifier families, plus everything else.
type Key int

const (
	KeyUnknown Key = iota
	KeyAlt
	KeyCtrl
	KeyShift
	KeySuper
	KeyOther
)

func (k Key) String() string {
	switch k {
	case KeyAlt:
		return "alt"
	case KeyCtrl:
		return "ctrl"
	case KeyShift:
		return "shift"
	case KeySuper:
		return "super"
	case KeyOther:
		return "other"
	}
	return "unknown"
}

// ParseKey maps a config name to a modifier key.
func ParseKey(name string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alt", "option":
		return KeyAlt, nil
	case "ctrl", "control":
		return KeyCtrl, nil
	case "shift":
		return KeyShift, nil
	case "super", "win", "cmd", "meta":
		return KeySuper, nil
	}
	return KeyUnknown, fmt.Errorf("unknown modifier %q (use alt, ctrl, shift or super)", name)
}

type EventType int

const (
	KeyDown EventType = iota + 1
	KeyUp
)

func (t EventType) String() string {
	switch t {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	}
	return "invalid"
}

type KeyEvent struct {
	Key  Key
	Type EventType
	// Code is the raw platform scan code, 0 when the backend has none.
	Code uint16
}

func Press(k Key) KeyEvent   { return KeyEvent{Key: k, Type: KeyDown} }
func Release(k Key) KeyEvent { return KeyEvent{Key: k, Type: KeyUp} }

// Listener delivers OS-wide key press/release events. Repeats are
// filtered out by the backends.
type Listener interface {
	Register() error
	Unregister()
	Events() <-chan KeyEvent
}
