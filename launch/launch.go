// Package launch starts the programs behind links.
package launch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"baro/log"
)

var ErrEmptyCommand = errors.New("link has no command")

// Launcher starts a program and returns once it is running. It does not
// wait for the program to exit.
type Launcher interface {
	Spawn(ctx context.Context, command string, args []string, elevated, newWindow bool) error
}

// Request is a fully resolved spawn: the binary, its argv, and how to
// wrap it for privilege or a terminal.
type Request struct {
	Command   string
	Args      []string
	Elevated  bool
	NewWindow bool
}

// Exec launches through os/exec. Terminal overrides the terminal emulator
// used for NewWindow links on Linux; empty means $TERMINAL, then
// x-terminal-emulator.
type Exec struct {
	Terminal string
}

func (e Exec) Spawn(ctx context.Context, command string, args []string, elevated, newWindow bool) error {
	req := Request{Command: strings.TrimSpace(command), Args: args, Elevated: elevated, NewWindow: newWindow}
	if req.Command == "" {
		return ErrEmptyCommand
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// not CommandContext: launched programs outlive the daemon
	argv := CommandLine(req, e.Terminal)
	cmd := exec.Command(argv[0], argv[1:]...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", req.Command, err)
	}

	// reap it; the exit status is only worth a log line
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warnf("%s exited: %v", req.Command, err)
		}
	}()
	return nil
}

// Recorder is a Launcher that remembers requests instead of running them.
type Recorder struct {
	Requests []Request
	Err      error
}

func (r *Recorder) Spawn(_ context.Context, command string, args []string, elevated, newWindow bool) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}
	r.Requests = append(r.Requests, Request{Command: command, Args: args, Elevated: elevated, NewWindow: newWindow})
	return r.Err
}
