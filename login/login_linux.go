//go:build linux

package login

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// entryPath follows the XDG autostart spec.
func entryPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", "baro.desktop")
}

func Enable() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	path := entryPath()
	if path == "" {
		return fmt.Errorf("cannot locate autostart directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(desktopEntry(exe)), 0644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

func Disable() error {
	path := entryPath()
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

func desktopEntry(exe string) string {
	// Exec field quoting: backslash, quote, backtick and dollar are escaped
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return "[Desktop Entry]\n" +
		"Type=Application\n" +
		"Name=baro\n" +
		"Comment=Quick launcher summoned by double-tapping a modifier key\n" +
		"Exec=\"" + r.Replace(exe) + "\" run\n" +
		"Terminal=false\n" +
		"X-GNOME-Autostart-enabled=true\n"
}
