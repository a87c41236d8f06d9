//go:build !gui

package main

import (
	"baro/config"
	"baro/session"
)

const guiBuild = false

func newGUIFrontend(*session.Session, *config.Config) (frontend, error) {
	return nil, errNoGUI
}
