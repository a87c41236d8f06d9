package main

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"baro/config"
	"baro/iconcache"
	"baro/log"
	"baro/session"
	"baro/window"
)

// frontend is the toolkit half of the launcher: it draws the session,
// owns the UI goroutine and runs scheduled work on it.
type frontend interface {
	window.Surface
	iconcache.Forgetter
	Name() string
	// Do runs fn on the UI goroutine.
	Do(fn func())
	// Run blocks until Quit is called or ctx is done.
	Run(ctx context.Context) error
	Quit()
}

var errNoGUI = errors.New("built without GUI support (rebuild with -tags gui)")

func newFrontend(kind surfaceFlag, sess *session.Session, cfg *config.Config) (frontend, error) {
	isTTY := term.IsTerminal(int(os.Stdin.Fd()))
	switch kind {
	case surfaceGUI:
		if !guiBuild {
			return nil, errNoGUI
		}
		return newGUIFrontend(sess, cfg)
	case surfaceTUI:
		if !isTTY {
			return nil, errors.New("the terminal surface needs an interactive terminal")
		}
		return newTUI(sess, cfg), nil
	case surfaceHeadless:
		return newHeadless(sess), nil
	}

	switch {
	case guiBuild:
		return newGUIFrontend(sess, cfg)
	case isTTY:
		return newTUI(sess, cfg), nil
	}
	return newHeadless(sess), nil
}

// headless has no window. It keeps the controller, the icon cache and the
// IPC surface working so baro can run as a service and be driven by
// "baro show" and friends.
type headless struct {
	sess  *session.Session
	calls chan func()
	quit  chan struct{}
	once  sync.Once

	timer  *time.Timer
	frames int
}

func newHeadless(sess *session.Session) *headless {
	return &headless{
		sess:  sess,
		calls: make(chan func()),
		quit:  make(chan struct{}),
	}
}

func (h *headless) Name() string { return "headless" }

func (h *headless) Show()  { log.Info("window_show") }
func (h *headless) Hide()  { log.Info("window_hide") }
func (h *headless) Focus() {}

func (h *headless) RequestRepaint(mode window.RepaintMode, at time.Time) {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if mode == window.ModeWaitUntil {
		h.timer = time.AfterFunc(time.Until(at), func() { h.Do(func() {}) })
	}
}

func (h *headless) FilesDropped(paths []string) {
	l, err := h.sess.AddDropped(paths)
	if err != nil {
		log.Warnf("drop: %v", err)
		return
	}
	log.Infof("link_added: %s", l.DisplayName())
}

func (h *headless) ForgetImage(key string) error {
	return h.sess.Icons.ForgetImage(key)
}

func (h *headless) Do(fn func()) {
	select {
	case h.calls <- fn:
	case <-h.quit:
	}
}

func (h *headless) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.quit:
			return nil
		case fn := <-h.calls:
			fn()
			h.frame()
		}
	}
}

func (h *headless) Quit() {
	h.once.Do(func() { close(h.quit) })
}

// frame renders nothing but walks the same per-frame steps a window
// would, so icon bookkeeping stays exercised.
func (h *headless) frame() {
	ctrl := h.sess.Controller()
	if ctrl == nil || !ctrl.Frame() {
		return
	}
	h.sess.BeginFrame()
	h.sess.Visible("", "")
	h.sess.EndFrame(h)
	h.frames++
}
