//go:build !linux && !darwin && !windows

package hotkey

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New("global key listening is not supported on " + runtime.GOOS)

type unsupportedListener struct{ events chan KeyEvent }

func New(_ Key) Listener { return &unsupportedListener{events: make(chan KeyEvent)} }

func (h *unsupportedListener) Register() error         { return errUnsupported }
func (h *unsupportedListener) Unregister()             {}
func (h *unsupportedListener) Events() <-chan KeyEvent { return h.events }

func Diagnose() (string, error) { return "", errUnsupported }
