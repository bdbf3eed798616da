package config

import (
	"slices"
	"strings"
)

// ActionDescriptions maps every bindable action to a human readable
// description.
var ActionDescriptions = map[string]string{
	"jump":      "Show jump labels",
	"jump_exit": "Cancel jump / clear selection",

	"cursor_up":    "Cursor up",
	"cursor_down":  "Cursor down",
	"cursor_left":  "Cursor left",
	"cursor_right": "Cursor right",
	"line_start":   "Start of line",
	"line_end":     "End of line",
	"page_up":      "Page up",
	"page_down":    "Page down",
	"doc_start":    "Start of document",
	"doc_end":      "End of document",

	"newline":          "Insert newline",
	"backspace":        "Delete backward",
	"delete":           "Delete forward",
	"insert_tab":       "Insert tab",
	"toggle_selection": "Toggle selection anchor",

	"save":        "Save file",
	"quit":        "Quit",
	"toggle_help": "Toggle help",
}

// KeybindRegistry resolves keys to actions and back.
type KeybindRegistry struct {
	actionKeys map[string][]string
	keyAction  map[string]string
	normalizer *KeyNormalizer
}

// NewKeybindRegistry builds a registry from cfg. When two actions claim the
// same key the one listed first in HelpSections wins.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		actionKeys: make(map[string][]string),
		keyAction:  make(map[string]string),
		normalizer: NewKeyNormalizer(),
	}
	for _, section := range cfg.Keybindings.Sections() {
		for action, keys := range section {
			r.actionKeys[action] = keys
		}
	}
	for _, hs := range HelpSections {
		for _, action := range hs.Actions {
			for _, key := range r.actionKeys[action] {
				for _, k := range r.normalizer.NormalizeKey(key) {
					if _, taken := r.keyAction[k]; !taken {
						r.keyAction[k] = action
					}
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionKeys[action]
}

// GetAction returns the action bound to key, or "" when the key is unbound.
func (r *KeybindRegistry) GetAction(key string) string {
	if action, ok := r.keyAction[key]; ok {
		return action
	}
	for _, k := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyAction[k]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay returns the keys of action formatted for the help screen.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actionKeys[action]
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = FormatKey(k)
	}
	return strings.Join(display, ", ")
}

// FormatKey turns "ctrl+g" into "Ctrl+G".
func FormatKey(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch {
		case p == "pgup":
			parts[i] = "PgUp"
		case p == "pgdown":
			parts[i] = "PgDn"
		case p == "esc":
			parts[i] = "Esc"
		case len(p) == 1:
			parts[i] = strings.ToUpper(p)
		case p != "":
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

var modifierOrder = []string{"ctrl", "alt", "shift", "meta", "super", "hyper"}

var modifierAliases = map[string]string{
	"control": "ctrl",
	"opt":     "alt",
	"option":  "alt",
	"cmd":     "super",
	"command": "super",
	"win":     "super",
}

var keyAliases = map[string][]string{
	"esc":      {"escape"},
	"escape":   {"esc"},
	"enter":    {"return"},
	"return":   {"enter"},
	"pgup":     {"pageup"},
	"pageup":   {"pgup"},
	"pgdown":   {"pagedown"},
	"pagedown": {"pgdown"},
	"del":      {"delete"},
	"delete":   {"del"},
	"space":    {" "},
	" ":        {"space"},
}

var namedKeys = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "insert": true,
	"tab": true, "backspace": true,
}

// KeyNormalizer converts key strings written by users into the form
// bubbletea reports.
type KeyNormalizer struct{}

// NewKeyNormalizer returns a KeyNormalizer.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{}
}

// NormalizeKey lowercases key, orders its modifiers canonically and returns
// it together with its aliases.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	if key == "" {
		return nil
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		key = " "
	}

	mods, base := splitKey(key)
	prefix := ""
	for _, m := range modifierOrder {
		if slices.Contains(mods, m) {
			prefix += m + "+"
		}
	}

	out := []string{prefix + base}
	for _, alias := range keyAliases[base] {
		out = append(out, prefix+alias)
	}
	return out
}

// ValidateKey reports whether key names a usable key, with a reason when
// it does not.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	if strings.TrimSpace(key) == "" && key != " " {
		return false, "empty key"
	}
	key = strings.ToLower(key)
	if key == "+" {
		return true, ""
	}
	parts := strings.Split(key, "+")
	base := parts[len(parts)-1]
	if base == "" {
		return false, "missing key after modifier"
	}
	for _, m := range parts[:len(parts)-1] {
		if alias, ok := modifierAliases[m]; ok {
			m = alias
		}
		if !slices.Contains(modifierOrder, m) {
			return false, "unknown modifier " + m
		}
	}
	if len([]rune(base)) == 1 || namedKeys[base] || keyAliases[base] != nil || isFunctionKey(base) {
		return true, ""
	}
	return false, "unknown key " + base
}

func splitKey(key string) ([]string, string) {
	if key == "+" || !strings.Contains(key, "+") {
		return nil, key
	}
	parts := strings.Split(key, "+")
	base := parts[len(parts)-1]
	if base == "" {
		// "ctrl++"
		base = "+"
		parts = parts[:len(parts)-1]
	}
	mods := make([]string, 0, len(parts)-1)
	for _, m := range parts[:len(parts)-1] {
		if m == "" {
			continue
		}
		if alias, ok := modifierAliases[m]; ok {
			m = alias
		}
		mods = append(mods, m)
	}
	return mods, base
}

func isFunctionKey(s string) bool {
	if len(s) < 2 || len(s) > 3 || s[0] != 'f' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
