package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HistoryConfig represents selection history configuration
type HistoryConfig struct {
	// Enabled enables recording and ranking of past selections
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database (empty = default location)
	DBPath string `yaml:"db_path"`

	// Limit is the maximum number of historical choices used for ranking
	Limit int `yaml:"limit"`

	// KeepDays is the number of days to keep selection records (0 = forever)
	KeepDays int `yaml:"keep_days"`
}

// MenuConfig holds the base values for the menu tool's options. Zero values
// mean "unset": the option is omitted from the command line entirely.
type MenuConfig struct {
	// Executable is the menu binary to invoke (default: dmenu)
	Executable string `yaml:"executable"`

	// Bottom places the menu at the bottom of the screen
	Bottom bool `yaml:"bottom"`

	// CaseInsensitive matches menu items case insensitively
	CaseInsensitive bool `yaml:"case_insensitive"`

	// Lines lists items vertically with the given number of lines
	Lines *int `yaml:"lines"`

	// Monitor displays the menu on the given monitor, counted from 0
	Monitor *int `yaml:"monitor"`

	// Prompt is displayed to the left of the input field
	Prompt string `yaml:"prompt"`

	// Font is the font or font set to use
	Font string `yaml:"font"`

	// NormalBG is the normal background color (#RGB, #RRGGBB or X color name)
	NormalBG string `yaml:"normal_bg"`

	// NormalFG is the normal foreground color
	NormalFG string `yaml:"normal_fg"`

	// SelectedBG is the selected background color
	SelectedBG string `yaml:"selected_bg"`

	// SelectedFG is the selected foreground color
	SelectedFG string `yaml:"selected_fg"`
}

// Config represents xmenu configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Menu contains base values for the menu tool's options
	Menu MenuConfig `yaml:"menu"`

	// History contains selection history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Menu: MenuConfig{
			Executable: "dmenu",
		},
		History: HistoryConfig{
			Enabled:  true,
			DBPath:   "",
			Limit:    50,
			KeepDays: 365,
		},
	}
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/xmenu/xmenu.yaml or ~/.config/xmenu/xmenu.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "xmenu", "xmenu.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".xmenu", "xmenu.yaml")
	}
	return filepath.Join(home, ".config", "xmenu", "xmenu.yaml")
}

// DefaultDBPath returns the default history database location,
// $XDG_DATA_HOME/xmenu/history.db or ~/.local/share/xmenu/history.db.
func DefaultDBPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "xmenu", "history.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".xmenu", "history.db")
	}
	return filepath.Join(home, ".local", "share", "xmenu", "history.db")
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	if c.Menu.Lines != nil && *c.Menu.Lines < 0 {
		return fmt.Errorf("menu.lines must not be negative, got %d", *c.Menu.Lines)
	}
	if c.Menu.Monitor != nil && *c.Menu.Monitor < 0 {
		return fmt.Errorf("menu.monitor must not be negative, got %d", *c.Menu.Monitor)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if c.History.KeepDays < 0 {
		return fmt.Errorf("history.keep_days must not be negative, got %d", c.History.KeepDays)
	}
	return nil
}

// Values converts the menu section into the option map consumed by the
// registry. Only explicitly set fields appear; everything else stays unset
// so the corresponding option emits no tokens.
func (c *Config) Values() map[string]any {
	values := make(map[string]any)

	if c.Menu.Executable != "" {
		values["dmenu"] = c.Menu.Executable
	}
	if c.Menu.Bottom {
		values["bottom"] = true
	}
	if c.Menu.CaseInsensitive {
		values["insensitive"] = true
	}
	if c.Menu.Lines != nil {
		values["lines"] = *c.Menu.Lines
	}
	if c.Menu.Monitor != nil {
		values["monitor"] = *c.Menu.Monitor
	}
	if c.Menu.Prompt != "" {
		values["prompt"] = c.Menu.Prompt
	}
	if c.Menu.Font != "" {
		values["font"] = c.Menu.Font
	}
	if c.Menu.NormalBG != "" {
		values["normal_bg_color"] = c.Menu.NormalBG
	}
	if c.Menu.NormalFG != "" {
		values["normal_fg_color"] = c.Menu.NormalFG
	}
	if c.Menu.SelectedBG != "" {
		values["selected_bg_color"] = c.Menu.SelectedBG
	}
	if c.Menu.SelectedFG != "" {
		values["selected_fg_color"] = c.Menu.SelectedFG
	}

	return values
}

// HistoryDBPath resolves the history database path, falling back to the
// default location when unset.
func (c *Config) HistoryDBPath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return DefaultDBPath()
}
