// Package event carries signals from background goroutines (key
// listener, tray, IPC, OS callbacks) to the single UI goroutine.
package event

import (
	"fmt"
	"time"
)

type Kind int

const (
	KindSummon Kind = iota + 1
	KindDismiss
	KindRepaintAfter
	KindTrayClick
	KindFileHovered
	KindFileHoverCancelled
	KindFileDropped
	KindToggleGesture
	KindQuit
)

var kindNames = map[Kind]string{
	KindSummon:             "summon",
	KindDismiss:            "dismiss",
	KindRepaintAfter:       "repaint_after",
	KindTrayClick:          "tray_click",
	KindFileHovered:        "file_hovered",
	KindFileHoverCancelled: "file_hover_cancelled",
	KindFileDropped:        "file_dropped",
	KindToggleGesture:      "toggle_gesture",
	KindQuit:               "quit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Signal is a value type. Paths is copied by the constructors and must
// not be modified after sending.
type Signal struct {
	Kind   Kind
	Delay  time.Duration
	Paths  []string
	On     bool
	Source string
}

func (s Signal) String() string {
	switch s.Kind {
	case KindRepaintAfter:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Delay)
	case KindFileHovered, KindFileDropped:
		return fmt.Sprintf("%s(%d files)", s.Kind, len(s.Paths))
	case KindToggleGesture:
		return fmt.Sprintf("%s(%v)", s.Kind, s.On)
	}
	if s.Source != "" {
		return s.Kind.String() + "[" + s.Source + "]"
	}
	return s.Kind.String()
}

func Summon(source string) Signal { return Signal{Kind: KindSummon, Source: source} }
func Dismiss() Signal             { return Signal{Kind: KindDismiss} }
func TrayClick() Signal           { return Signal{Kind: KindTrayClick, Source: "tray"} }
func FileHoverCancelled() Signal  { return Signal{Kind: KindFileHoverCancelled} }
func Quit(source string) Signal   { return Signal{Kind: KindQuit, Source: source} }

func RepaintAfter(d time.Duration) Signal {
	if d < 0 {
		d = 0
	}
	return Signal{Kind: KindRepaintAfter, Delay: d}
}

func FileHovered(paths []string) Signal {
	return Signal{Kind: KindFileHovered, Paths: append([]string(nil), paths...)}
}

func FileDropped(paths []string) Signal {
	return Signal{Kind: KindFileDropped, Paths: append([]string(nil), paths...)}
}

func ToggleGesture(on bool, source string) Signal {
	return Signal{Kind: KindToggleGesture, On: on, Source: source}
}
