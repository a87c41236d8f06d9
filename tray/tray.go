// Package tray holds the tray menu state. It is toolkit independent: the
// gui package renders Menu() and calls OnRefresh's hook when the state
// changes.
package tray

import (
	"sync"
	"time"
)

var (
	quitCh    = make(chan struct{})
	closeOnce sync.Once

	mu        sync.Mutex
	showFn    func()
	gestureOn bool
	gestureCb func(bool)
	refreshFn func()
	notice    string
	warning   bool
)

// errorDisplay is how long SetError keeps the warning up.
var errorDisplay = 10 * time.Second

type Item struct {
	Label     string
	Checkable bool
	Checked   bool
	Separator bool
	Disabled  bool
	Action    func()
}

func OnShow(fn func())        { mu.Lock(); showFn = fn; mu.Unlock() }
func OnGesture(fn func(bool)) { mu.Lock(); gestureCb = fn; mu.Unlock() }
func OnRefresh(fn func())     { mu.Lock(); refreshFn = fn; mu.Unlock() }

// SetGesture mirrors the detector state into the menu without calling
// the gesture callback.
func SetGesture(on bool) {
	mu.Lock()
	gestureOn = on
	mu.Unlock()
	refresh()
}

func Gesture() bool {
	mu.Lock()
	defer mu.Unlock()
	return gestureOn
}

// ToggleGesture flips the checkbox and reports the new state to the
// gesture callback.
func ToggleGesture() {
	mu.Lock()
	gestureOn = !gestureOn
	on, cb := gestureOn, gestureCb
	mu.Unlock()
	if cb != nil {
		cb(on)
	}
	refresh()
}

func Show() {
	mu.Lock()
	fn := showFn
	mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetError shows msg at the top of the menu with the warning icon, then
// reverts.
func SetError(msg string) {
	mu.Lock()
	notice = msg
	warning = true
	mu.Unlock()
	refresh()

	time.AfterFunc(errorDisplay, func() {
		mu.Lock()
		notice = ""
		warning = false
		mu.Unlock()
		refresh()
	})
}

func Warning() bool {
	mu.Lock()
	defer mu.Unlock()
	return warning
}

// Menu returns the current menu model, top to bottom.
func Menu() []Item {
	mu.Lock()
	on, msg := gestureOn, notice
	mu.Unlock()
	var items []Item
	if msg != "" {
		items = append(items, Item{Label: msg, Disabled: true}, Item{Separator: true})
	}
	return append(items,
		Item{Label: "Show", Action: Show},
		Item{Label: "Double-tap summon", Checkable: true, Checked: on, Action: ToggleGesture},
		Item{Separator: true},
		Item{Label: "Quit", Action: Quit},
	)
}

func Done() <-chan struct{} { return quitCh }

func Quit() {
	closeOnce.Do(func() { close(quitCh) })
}

func refresh() {
	mu.Lock()
	fn := refreshFn
	mu.Unlock()
	if fn != nil {
		fn()
	}
}
