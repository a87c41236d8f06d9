package instance

import "os"

// FindProcess opens a handle on Windows and fails for dead pids.
func alive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	p.Release()
	return true
}
