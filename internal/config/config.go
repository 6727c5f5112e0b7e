package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/jaskboard/internal/drag"
)

// Config holds application configuration.
type Config struct {
	Board   BoardConfig
	Markers MarkerConfig
	Drag    DragConfig
	Notify  NotifyConfig
	Log     LogConfig
}

// BoardConfig locates the board file. An empty path uses the built-in board.
type BoardConfig struct {
	Path  string
	Watch bool
}

// MarkerConfig names the attributes used to discover the container, its
// draggable items and their handles. An empty handle lets the whole item
// start a drag.
type MarkerConfig struct {
	Container string
	Item      string
	Handle    string
}

// DragConfig holds engine settings.
type DragConfig struct {
	Strategy string
}

// NotifyConfig selects extra receivers for layout changes. Changes are
// always written to the log.
type NotifyConfig struct {
	Desktop bool
}

// LogConfig holds log settings. Logs go to a file because the terminal is
// owned by the board.
type LogConfig struct {
	Path  string
	Level string
}

// Defaults used when neither the config file nor the environment sets a key.
const (
	DefaultContainerMarker = "data-board"
	DefaultItemMarker      = "data-draggable"
	DefaultHandleMarker    = "data-drag-handle"
)

func configHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "jaskboard")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "jaskboard")
}

// Path returns the config file location: JASKBOARD_CONFIG or
// <user config dir>/jaskboard/config.toml.
func Path() string {
	if p := os.Getenv("JASKBOARD_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("board.path", "")
	v.SetDefault("board.watch", true)
	v.SetDefault("markers.container", DefaultContainerMarker)
	v.SetDefault("markers.item", DefaultItemMarker)
	v.SetDefault("markers.handle", DefaultHandleMarker)
	v.SetDefault("drag.strategy", "movement")
	v.SetDefault("notify.desktop", false)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "jaskboard", "jaskboard.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	v.SetEnvPrefix("JASKBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix
// JASKBOARD_. A missing config file is not an error.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Defaults returns the configuration used when no file or env var sets a
// key.
func Defaults() Config {
	var c Config
	_ = newViper().Unmarshal(&c)
	return c
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Markers.Item) == "" {
		return errors.New("config: markers.item must not be empty")
	}
	if _, err := drag.ParseStrategy(c.Drag.Strategy); err != nil {
		return fmt.Errorf("config: drag.strategy: %w", err)
	}
	return nil
}

// Strategy returns the parsed drag strategy. Validate has already rejected
// unknown names.
func (c Config) Strategy() drag.Strategy {
	s, _ := drag.ParseStrategy(c.Drag.Strategy)
	return s
}

// Save writes cfg to path, creating the directory if needed. It backs
// `jaskboard config init`.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("board.path", cfg.Board.Path)
	v.Set("board.watch", cfg.Board.Watch)
	v.Set("markers.container", cfg.Markers.Container)
	v.Set("markers.item", cfg.Markers.Item)
	v.Set("markers.handle", cfg.Markers.Handle)
	v.Set("drag.strategy", cfg.Drag.Strategy)
	v.Set("notify.desktop", cfg.Notify.Desktop)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
