//go:build !linux

package main

import (
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	// fyne runs the platform event loop itself; without it the hotkey
	// package needs mainthread to own the main OS thread.
	if guiBuild {
		execute()
		return
	}
	mainthread.Init(execute)
}
