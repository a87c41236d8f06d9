//go:build !windows

package shutdown

import (
	"os"
	"syscall"
)

// SIGHUP too: closing the terminal baro was started from ends it cleanly.
var signals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
