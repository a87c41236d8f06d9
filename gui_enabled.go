//go:build gui

package main

import (
	"baro/config"
	"baro/gui"
	"baro/session"
)

const guiBuild = true

func newGUIFrontend(sess *session.Session, cfg *config.Config) (frontend, error) {
	return gui.New(sess, gui.Options{Width: cfg.Window.Width, Height: cfg.Window.Height}), nil
}
