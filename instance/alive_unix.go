//go:build !windows

package instance

import (
	"errors"
	"os"
	"syscall"
)

func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	// EPERM: the process exists but belongs to someone else
	return err == nil || errors.Is(err, syscall.EPERM)
}
