package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"baro/clipboard"
	"baro/config"
	"baro/hotkey"
	"baro/links"
	"baro/shutdown"
)

type Options struct {
	ConfigPath string
	// Synthetic drives the gesture check with generated key events
	// instead of asking the user to double-tap.
	Synthetic bool
}

const totalChecks = 5

// Run executes diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(opts Options) int {
	resetTerminal()
	stop := setupInterruptHandler()
	defer stop()

	w := os.Stdout
	fmt.Fprintln(w, "baro doctor - system diagnostics")
	fmt.Fprintln(w, "================================")

	allPass := true

	cfg, ok := checkConfig(w, opts.ConfigPath)
	if !ok {
		allPass = false
		cfg = &config.DefaultConfig
	}
	if !checkLinks(w, cfg.Links.Path) {
		allPass = false
	}
	if !checkKeyboard(w) {
		allPass = false
	}
	if allPass && !checkGesture(w, cfg.Gesture, opts.Synthetic) {
		allPass = false
	}
	if !checkClipboard(w) {
		allPass = false
	}

	fmt.Fprintln(w)
	if allPass {
		fmt.Fprintln(w, "All checks passed!")
		return 0
	}
	fmt.Fprintln(w, "Some checks failed. See details above.")
	return 1
}

func header(w io.Writer, n int, title string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "[%d/%d] %s\n", n, totalChecks, title)
}

func checkConfig(w io.Writer, path string) (*config.Config, bool) {
	header(w, 1, "Configuration")
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.LoadAndValidateConfig(path)
	if err != nil {
		fmt.Fprintf(w, "  FAIL: %v\n", err)
		return nil, false
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  PASS: no config at %s, using defaults\n", path)
	} else {
		fmt.Fprintf(w, "  PASS: %s\n", path)
	}
	return cfg, true
}

func checkLinks(w io.Writer, path string) bool {
	header(w, 2, "Links file")

	c, repaired, err := links.LoadOrRepair(path)
	if err != nil {
		fmt.Fprintf(w, "  FAIL: %v\n", err)
		return false
	}

	var missingIcons, missingCommands int
	for _, l := range c.Links {
		if l.IconPath != "" {
			if _, err := os.Stat(l.IconPath); err != nil {
				fmt.Fprintf(w, "  WARN: %s: icon %s not found\n", l.DisplayName(), l.IconPath)
				missingIcons++
			}
		}
		if _, err := exec.LookPath(l.RunCommand); err != nil {
			fmt.Fprintf(w, "  WARN: %s: command %q not found\n", l.DisplayName(), l.RunCommand)
			missingCommands++
		}
	}

	if repaired {
		fmt.Fprintf(w, "  FAIL: %s needed repair; baro will not save over it (run: baro links repair --write)\n", path)
		return false
	}
	fmt.Fprintf(w, "  PASS: %d link(s), %d tag(s), %d missing icon(s), %d missing command(s)\n",
		len(c.Links), len(c.Tags), missingIcons, missingCommands)
	return true
}

func checkKeyboard(w io.Writer) bool {
	header(w, 3, "Keyboard access")
	msg, err := hotkey.Diagnose()
	if err != nil {
		fmt.Fprintf(w, "  FAIL: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  PASS: %s\n", msg)
	return true
}

func checkGesture(w io.Writer, g config.GestureConfig, synthetic bool) bool {
	header(w, 4, "Double-tap gesture")

	mod, err := g.Key()
	if err != nil {
		fmt.Fprintf(w, "  FAIL: %v\n", err)
		return false
	}

	// the virtual keyboard must exist before the listener scans devices
	var tap *tapper
	if synthetic {
		tap, err = newTapper(mod)
		if err != nil {
			fmt.Fprintf(w, "  FAIL: cannot synthesize key events: %v\n", err)
			return false
		}
	}

	l := hotkey.New(mod)
	if err := l.Register(); err != nil {
		fmt.Fprintf(w, "  FAIL: could not start key listener: %v\n", err)
		return false
	}
	defer l.Unregister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fired := make(chan struct{}, 1)
	d := hotkey.NewDoubleTap(mod, g.Window())
	go d.Run(ctx, l, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	if tap != nil {
		fmt.Fprintf(w, "Synthesizing a double-tap of %s...\n", describeGesture(mod))
		go func() {
			if err := tap.doubleTap(d.Window() / 4); err != nil {
				fmt.Fprintf(w, "  WARN: synthetic tap: %v\n", err)
			}
		}()
	} else {
		fmt.Fprintf(w, "Double-tap %s...\n", describeGesture(mod))
	}

	select {
	case <-fired:
		resetTerminal()
		fmt.Fprintln(w, "  PASS: gesture detected")
		return true
	case <-ctx.Done():
		fmt.Fprintln(w, "  FAIL: timeout waiting for gesture")
		return false
	}
}

func checkClipboard(w io.Writer) bool {
	header(w, 5, "Clipboard")

	testStr := fmt.Sprintf("baro-doctor-%d", time.Now().UnixNano())

	type cbResult struct {
		readback string
		err      error
		phase    string
	}
	ch := make(chan cbResult, 1)
	go func() {
		if err := clipboard.Copy(testStr); err != nil {
			ch <- cbResult{err: err, phase: "write"}
			return
		}
		got, err := clipboard.Read()
		if err != nil {
			ch <- cbResult{err: err, phase: "read"}
			return
		}
		ch <- cbResult{readback: got}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			fmt.Fprintf(w, "  FAIL: clipboard %s failed: %v\n", res.phase, res.err)
			return false
		}
		if res.readback != testStr {
			fmt.Fprintf(w, "  FAIL: clipboard mismatch: wrote %q, got %q\n", testStr, res.readback)
			return false
		}
		fmt.Fprintln(w, "  PASS: clipboard write/read verified")
		return true
	case <-time.After(3 * time.Second):
		fmt.Fprintln(w, "  FAIL: clipboard timed out (no xclip/xsel/wl-clipboard?)")
		return false
	}
}

func setupInterruptHandler() func() {
	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			println("\nInterrupted")
			os.Exit(1)
		case <-done:
		}
	}()
	return func() {
		shutdown.Stop(sigChan)
		close(done)
	}
}
