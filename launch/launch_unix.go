//go:build !darwin && !windows

package launch

import (
	"os"
	"os/exec"
	"syscall"
)

// CommandLine builds argv for req. Elevated links go through pkexec;
// NewWindow links run inside a terminal emulator.
func CommandLine(req Request, terminal string) []string {
	argv := append([]string{req.Command}, req.Args...)
	if req.Elevated {
		argv = append([]string{"pkexec"}, argv...)
	}
	if req.NewWindow {
		argv = append([]string{resolveTerminal(terminal), "-e"}, argv...)
	}
	return argv
}

func resolveTerminal(terminal string) string {
	if terminal != "" {
		return terminal
	}
	if env := os.Getenv("TERMINAL"); env != "" {
		return env
	}
	return "x-terminal-emulator"
}

// detach puts the child in its own session so it outlives baro.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
