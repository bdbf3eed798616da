// Package config loads the leap configuration file and resolves keybindings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	configRelPath = "leap/config.toml"
	logRelPath    = "leap/leap.log"

	// DefaultTabWidth is the number of cells a tab expands to.
	DefaultTabWidth = 4
)

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Jump        JumpConfig        `toml:"jump"`
	Editor      EditorConfig      `toml:"editor"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// JumpConfig controls candidate scanning.
type JumpConfig struct {
	// ScanRadius is the number of lines scanned on each side of the cursor.
	ScanRadius int `toml:"scan_radius"`
	// Pattern is the regular expression whose match starts become jump
	// targets.
	Pattern string `toml:"pattern"`
}

// EditorConfig controls editing behaviour.
type EditorConfig struct {
	TabWidth int  `toml:"tab_width"`
	Watch    bool `toml:"watch"`
}

// AppearanceConfig controls rendering.
type AppearanceConfig struct {
	Theme       string `toml:"theme"`
	LineNumbers bool   `toml:"line_numbers"`
	StatusBar   bool   `toml:"status_bar"`
}

// KeybindingsConfig maps actions to keys, grouped the way the help screen
// shows them.
type KeybindingsConfig struct {
	Jump       map[string][]string `toml:"jump"`
	Navigation map[string][]string `toml:"navigation"`
	Editing    map[string][]string `toml:"editing"`
	System     map[string][]string `toml:"system"`
}

// Sections returns the keybinding groups in display order.
func (k KeybindingsConfig) Sections() []map[string][]string {
	return []map[string][]string{k.Jump, k.Navigation, k.Editing, k.System}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Jump: JumpConfig{
			ScanRadius: jump.DefaultScanRadius,
			Pattern:    jump.DefaultPatternExpr,
		},
		Editor: EditorConfig{
			TabWidth: DefaultTabWidth,
			Watch:    true,
		},
		Appearance: AppearanceConfig{
			LineNumbers: true,
			StatusBar:   true,
		},
		Keybindings: KeybindingsConfig{
			Jump: map[string][]string{
				"jump":      {"ctrl+g", "alt+j"},
				"jump_exit": {"esc"},
			},
			Navigation: map[string][]string{
				"cursor_up":    {"up"},
				"cursor_down":  {"down"},
				"cursor_left":  {"left"},
				"cursor_right": {"right"},
				"line_start":   {"home", "ctrl+a"},
				"line_end":     {"end", "ctrl+e"},
				"page_up":      {"pgup"},
				"page_down":    {"pgdown"},
				"doc_start":    {"ctrl+home"},
				"doc_end":      {"ctrl+end"},
			},
			Editing: map[string][]string{
				"newline":          {"enter"},
				"backspace":        {"backspace"},
				"delete":           {"delete"},
				"insert_tab":       {"tab"},
				"toggle_selection": {"alt+v"},
			},
			System: map[string][]string{
				"save":        {"ctrl+s"},
				"quit":        {"ctrl+q", "ctrl+c"},
				"toggle_help": {"f1"},
			},
		},
	}
}

// GetConfigPath returns the path of the configuration file, creating its
// parent directory if needed.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return path, nil
}

// GetLogPath returns the path of the debug log file.
func GetLogPath() (string, error) {
	path, err := xdg.StateFile(logRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve log path: %w", err)
	}
	return path, nil
}

// LoadUserConfig reads the configuration file. On first use the file is
// created with the defaults.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration at path, writing the defaults there if
// it does not exist. Settings missing from the file keep their defaults.
func LoadFile(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := WriteFile(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a configuration document on top of the defaults.
func Parse(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	defaults := DefaultConfig()

	// Decode into empty maps so a section in the file does not merge with
	// the default section of the same name key by key.
	cfg.Keybindings = KeybindingsConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	fillMissingBindings(&cfg.Keybindings, defaults.Keybindings)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillMissingBindings restores default keys for actions the file does not
// mention.
func fillMissingBindings(dst *KeybindingsConfig, defaults KeybindingsConfig) {
	fill := func(section *map[string][]string, def map[string][]string) {
		if *section == nil {
			*section = make(map[string][]string, len(def))
		}
		for action, keys := range def {
			if _, ok := (*section)[action]; !ok {
				(*section)[action] = keys
			}
		}
	}
	fill(&dst.Jump, defaults.Jump)
	fill(&dst.Navigation, defaults.Navigation)
	fill(&dst.Editing, defaults.Editing)
	fill(&dst.System, defaults.System)
}

// Validate checks value ranges, the scan pattern and every bound key.
func (c *UserConfig) Validate() error {
	var errs []error
	if c.Jump.ScanRadius <= 0 {
		errs = append(errs, fmt.Errorf("jump.scan_radius must be positive, got %d", c.Jump.ScanRadius))
	}
	if _, err := jump.CompilePattern(c.Jump.Pattern); err != nil {
		errs = append(errs, fmt.Errorf("jump.pattern: %w", err))
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", c.Editor.TabWidth))
	}

	normalizer := NewKeyNormalizer()
	for _, section := range c.Keybindings.Sections() {
		for action, keys := range section {
			if _, ok := ActionDescriptions[action]; !ok {
				errs = append(errs, fmt.Errorf("unknown action %q", action))
				continue
			}
			for _, key := range keys {
				if ok, reason := normalizer.ValidateKey(key); !ok {
					errs = append(errs, fmt.Errorf("%s: key %q: %s", action, key, reason))
					continue
				}
				if jumpModeActions[action] && isLetterKey(key) {
					errs = append(errs, fmt.Errorf("%s: key %q: letters are label characters while jumping", action, key))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// jumpModeActions keep their bindings while labels are shown.
var jumpModeActions = map[string]bool{"jump": true, "jump_exit": true}

// isLetterKey reports whether key is a plain or shifted letter, which the
// jump controller reads as part of a label.
func isLetterKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.TrimPrefix(key, "shift+")
	return len(key) == 1 && key[0] >= 'a' && key[0] <= 'z'
}

// WriteFile writes cfg to path with a short header.
func WriteFile(path string, cfg *UserConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# leap configuration file\n")
	sb.WriteString("#\n")
	sb.WriteString("# [jump] scan_radius: lines scanned above and below the cursor\n")
	sb.WriteString("# [jump] pattern: regular expression marking jump targets\n")
	sb.WriteString("# [keybindings.*]: each action takes a list of keys\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n\n")
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Overrides carries command line flags that take precedence over the file.
// Zero values leave the file setting alone.
type Overrides struct {
	ThemeName     string
	ScanRadius    int
	NoLineNumbers bool
	NoWatch       bool
}

// ApplyOverrides applies flag values to cfg.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	if cfg == nil {
		return
	}
	if o.ThemeName != "" {
		cfg.Appearance.Theme = o.ThemeName
	}
	if o.ScanRadius > 0 {
		cfg.Jump.ScanRadius = o.ScanRadius
	}
	if o.NoLineNumbers {
		cfg.Appearance.LineNumbers = false
	}
	if o.NoWatch {
		cfg.Editor.Watch = false
	}
}
