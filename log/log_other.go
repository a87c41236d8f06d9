//go:build !windows

package log

import (
	"os"
	"path/filepath"
	"runtime"
)

func getDefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "baro"), nil
	}

	// XDG base dirs: logs are state, not config
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "baro", "logs"), nil
	}
	return filepath.Join(home, ".local", "state", "baro", "logs"), nil
}
