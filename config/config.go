package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"baro/hotkey"
)

type Config struct {
	PidFile string        `toml:"pid_file"`
	Gesture GestureConfig `toml:"gesture"`
	Links   LinksConfig   `toml:"links"`
	Icons   IconsConfig   `toml:"icons"`
	Window  WindowConfig  `toml:"window"`
	IPC     IPCConfig     `toml:"ipc"`
}

type GestureConfig struct {
	Enabled  bool   `toml:"enabled"`
	Modifier string `toml:"modifier"`
	WindowMs int    `toml:"window_ms"`
}

type LinksConfig struct {
	Path string `toml:"path"`
}

type IconsConfig struct {
	CacheSize int    `toml:"cache_size"`
	Fallback  string `toml:"fallback"`
}

type WindowConfig struct {
	Width   int `toml:"width"`
	Height  int `toml:"height"`
	Columns int `toml:"columns"`
	// Terminal is the emulator for links marked new_window (Linux).
	Terminal string `toml:"terminal"`
}

type IPCConfig struct {
	SocketPath string `toml:"socket_path"`
}

var DefaultConfig = Config{
	PidFile: "~/.baro/baro.pid",
	Gesture: GestureConfig{
		Enabled:  true,
		Modifier: "alt",
		WindowMs: 500,
	},
	Links: LinksConfig{
		Path: "~/.baro/links.json",
	},
	Icons: IconsConfig{
		CacheSize: 200,
	},
	Window: WindowConfig{
		Width:   800,
		Height:  500,
		Columns: 6,
	},
	IPC: IPCConfig{
		SocketPath: DefaultSocketPath(),
	},
}

// DefaultPath is where baro looks for config.toml when no --config flag
// is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return expandPath("~/.config/baro/config.toml")
	}
	return filepath.Join(dir, "baro", "config.toml")
}

func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("baro-%d.sock", os.Getuid()))
}

// LoadConfig reads path over the defaults, so a file only needs the keys
// it changes. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig
	expandedPath := expandPath(path)

	data, err := os.ReadFile(expandedPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg.expand()
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", expandedPath, err)
	}
	cfg.expand()
	return &cfg, nil
}

func LoadAndValidateConfig(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) expand() {
	c.PidFile = expandPath(c.PidFile)
	c.Links.Path = expandPath(c.Links.Path)
	c.Icons.Fallback = expandPath(c.Icons.Fallback)
	c.IPC.SocketPath = expandPath(c.IPC.SocketPath)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		usr, err := user.Current()
		if err == nil {
			return filepath.Join(usr.HomeDir, path[1:])
		}
	}
	return path
}

func SaveConfig(cfg *Config, path string) error {
	expandedPath := expandPath(path)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(expandedPath, data, 0644)
}

// Window returns the double-tap window as a duration.
func (g GestureConfig) Window() time.Duration {
	return time.Duration(g.WindowMs) * time.Millisecond
}

// Key parses the configured modifier.
func (g GestureConfig) Key() (hotkey.Key, error) {
	return hotkey.ParseKey(g.Modifier)
}

func (c *Config) Validate() error {
	if err := c.validateGesture(); err != nil {
		return err
	}
	if err := c.validateLinks(); err != nil {
		return err
	}
	if err := c.validateIcons(); err != nil {
		return err
	}
	if err := c.validateWindow(); err != nil {
		return err
	}
	if err := c.validateIPC(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGesture() error {
	g := c.Gesture
	if _, err := g.Key(); err != nil {
		return fmt.Errorf("invalid gesture modifier: %w", err)
	}
	if g.WindowMs < 100 || g.WindowMs > 2000 {
		return fmt.Errorf("invalid window_ms: %d (must be 100-2000ms)", g.WindowMs)
	}
	return nil
}

func (c *Config) validateLinks() error {
	if c.Links.Path == "" {
		return fmt.Errorf("links path is empty")
	}
	return nil
}

func (c *Config) validateIcons() error {
	i := c.Icons
	if i.CacheSize < 10 || i.CacheSize > 10000 {
		return fmt.Errorf("invalid cache_size: %d (must be 10-10000)", i.CacheSize)
	}
	if i.Fallback != "" {
		if _, err := os.Stat(i.Fallback); err != nil {
			return fmt.Errorf("invalid icon fallback: %w", err)
		}
	}
	return nil
}

func (c *Config) validateWindow() error {
	w := c.Window
	if w.Width < 200 || w.Width > 4000 {
		return fmt.Errorf("invalid window width: %d (must be 200-4000)", w.Width)
	}
	if w.Height < 150 || w.Height > 4000 {
		return fmt.Errorf("invalid window height: %d (must be 150-4000)", w.Height)
	}
	if w.Columns < 1 || w.Columns > 12 {
		return fmt.Errorf("invalid columns: %d (must be 1-12)", w.Columns)
	}
	return nil
}

func (c *Config) validateIPC() error {
	if c.IPC.SocketPath == "" {
		return fmt.Errorf("ipc socket_path is empty")
	}
	if c.PidFile == "" {
		return fmt.Errorf("pid_file is empty")
	}
	return nil
}

func ValidateConfig(path string) error {
	_, err := LoadAndValidateConfig(path)
	return err
}
