// Package instance keeps a single baro daemon per user with a pid file.
package instance

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrRunning = errors.New("baro is already running")

type Lock struct {
	path string
	pid  int
}

// Acquire creates path holding our pid. The file is created
// exclusively, so of two daemons starting together only one wins. An
// existing file is removed and the create retried only when the pid it
// names is dead or unreadable.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create pid directory: %w", err)
	}
	pid := os.Getpid()

	for attempt := 0; attempt < 3; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(pid))
			if err := errors.Join(werr, f.Close()); err != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write pid file: %w", err)
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to create pid file: %w", err)
		}

		if owner, held := owned(path); held {
			return nil, fmt.Errorf("%w (pid %d)", ErrRunning, owner)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale pid file: %w", err)
		}
	}
	return nil, fmt.Errorf("%w (pid file %s keeps reappearing)", ErrRunning, path)
}

// owned reports whether the pid file at path belongs to a live process.
// A file that is still empty is one a starting daemon has just created.
func owned(path string) (int, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return 0, time.Since(info.ModTime()) < time.Second
	}
	pid, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return pid, pid == os.Getpid() || alive(pid)
}

// Release removes the pid file if it still names this process.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return
	}
	if strings.TrimSpace(string(data)) == strconv.Itoa(l.pid) {
		os.Remove(l.path)
	}
}

func (l *Lock) Path() string { return l.path }
