// Package login registers baro to start with the desktop session.
package login

import (
	"errors"
	"os"
)

var ErrUnsupported = errors.New("start at login is not supported on this platform")

// Enabled reports whether a login entry exists.
func Enabled() bool {
	path := entryPath()
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// Path is the login entry file, empty where there is none.
func Path() string { return entryPath() }
