package tray

import (
	"bytes"
	"image/png"
	"sync/atomic"
	"testing"
	"time"
)

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		OnShow(nil)
		OnGesture(nil)
		OnRefresh(nil)
		SetGesture(false)
	})
}

func TestMenuReflectsGesture(t *testing.T) {
	reset(t)
	SetGesture(true)

	menu := Menu()
	if len(menu) != 4 {
		t.Fatalf("menu has %d items", len(menu))
	}
	toggle := menu[1]
	if !toggle.Checkable || !toggle.Checked || toggle.Label != "Double-tap summon" {
		t.Fatalf("toggle item = %+v", toggle)
	}
	if !menu[2].Separator || menu[3].Label != "Quit" {
		t.Errorf("menu tail = %+v", menu[2:])
	}
}

func TestToggleGestureCallsBack(t *testing.T) {
	reset(t)
	SetGesture(true)

	var got []bool
	OnGesture(func(on bool) { got = append(got, on) })
	var refreshes atomic.Int32
	OnRefresh(func() { refreshes.Add(1) })

	Menu()[1].Action()
	Menu()[1].Action()

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Fatalf("callbacks = %v", got)
	}
	if refreshes.Load() != 2 {
		t.Errorf("refreshes = %d, want 2", refreshes.Load())
	}
}

func TestSetGestureDoesNotCallBack(t *testing.T) {
	reset(t)
	called := false
	OnGesture(func(bool) { called = true })
	SetGesture(true)
	if called {
		t.Fatal("SetGesture invoked the callback")
	}
	if !Gesture() {
		t.Fatal("state not updated")
	}
}

func TestShowItem(t *testing.T) {
	reset(t)
	shown := 0
	OnShow(func() { shown++ })
	Menu()[0].Action()
	if shown != 1 {
		t.Fatalf("shown = %d", shown)
	}
}

func TestSetErrorReverts(t *testing.T) {
	reset(t)
	errorDisplay = 20 * time.Millisecond
	t.Cleanup(func() { errorDisplay = 10 * time.Second })

	SetError("links file repaired")
	menu := Menu()
	if !Warning() || len(menu) != 6 || menu[0].Label != "links file repaired" || !menu[0].Disabled || !menu[1].Separator {
		t.Fatalf("warning = %v menu = %+v", Warning(), menu)
	}

	deadline := time.After(time.Second)
	for Warning() {
		select {
		case <-deadline:
			t.Fatal("warning never cleared")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if menu := Menu(); len(menu) != 4 || menu[0].Label != "Show" {
		t.Errorf("menu after revert = %+v", menu)
	}
}

func TestIconIsPNG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(Icon()))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 44 {
		t.Errorf("size = %d", img.Bounds().Dx())
	}
}

func TestQuitIdempotent(t *testing.T) {
	Quit()
	Quit()
	select {
	case <-Done():
	default:
		t.Fatal("Done not closed")
	}
}
