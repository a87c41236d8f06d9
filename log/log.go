package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	diagLog    zerolog.Logger
	diagFile   *os.File
	launchFile *os.File
	logMu      sync.Mutex
	logReady   bool
	pid        int
	dir        string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: --logpath flag
	if flagPath != "" {
		return absFromWd(flagPath)
	}

	// Priority 2: BARO_LOG_PATH environment variable
	if envPath := os.Getenv("BARO_LOG_PATH"); envPath != "" {
		return absFromWd(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absFromWd(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagPath := filepath.Join(dir, "diagnostics_log.txt")
	diagFile, err = os.OpenFile(diagPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	launchPath := filepath.Join(dir, "launch_log.txt")
	launchFile, err = os.OpenFile(launchPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if launchFile != nil {
		launchFile.Close()
		launchFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func SessionStart(version, surface, modifier string, gestureOn bool, links int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("version", version).
		Str("surface", surface).
		Str("modifier", modifier).
		Bool("gesture", gestureOn).
		Int("links", links).
		Msg("session_start")
}

func SessionEnd(launches int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("launches", launches).
		Msg("session_end")
}

func Summon(source string) {
	if !logReady {
		return
	}
	if source == "" {
		source = "unknown"
	}
	diagLog.Info().Str("source", source).Msg("summon")
}

func Sweep(evicted []string, remaining int) {
	if !logReady || len(evicted) == 0 {
		return
	}
	diagLog.Info().
		Strs("evicted", evicted).
		Int("cached", remaining).
		Msg("icon_sweep")
}

// Launch records a spawn attempt in the diagnostics log and, when it
// succeeded, appends a line to launch_log.txt.
func Launch(name, command string, args []string, elevated bool, err error) {
	if !logReady {
		return
	}
	ev := diagLog.Info()
	if err != nil {
		ev = diagLog.Error().Err(err)
	}
	ev.Str("name", name).
		Str("command", command).
		Int("args", len(args)).
		Bool("elevated", elevated).
		Msg("launch")

	if err != nil {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	if launchFile == nil {
		return
	}
	cmdline := strings.TrimSpace(command + " " + strings.Join(args, " "))
	line := fmt.Sprintf("%s\t[%d]\t%s\t%s\n", time.Now().Format("2006-01-02 15:04:05"), pid, name, cmdline)
	launchFile.WriteString(line)
}
