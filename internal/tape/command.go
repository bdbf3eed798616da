package tape

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CommandType represents the type of a tape command
type CommandType string

const (
	// Basic commands
	CommandType_Type      CommandType = "Type"
	CommandType_Sleep     CommandType = "Sleep"
	CommandType_Enter     CommandType = "Enter"
	CommandType_Space     CommandType = "Space"
	CommandType_Backspace CommandType = "Backspace"
	CommandType_Delete    CommandType = "Delete"
	CommandType_Tab       CommandType = "Tab"
	CommandType_Escape    CommandType = "Escape"

	// Navigation keys
	CommandType_Up       CommandType = "Up"
	CommandType_Down     CommandType = "Down"
	CommandType_Left     CommandType = "Left"
	CommandType_Right    CommandType = "Right"
	CommandType_Home     CommandType = "Home"
	CommandType_End      CommandType = "End"
	CommandType_PageUp   CommandType = "PageUp"
	CommandType_PageDown CommandType = "PageDown"

	// Key combinations (Ctrl+G, Alt+J, etc.)
	CommandType_KeyCombo CommandType = "KeyCombo"

	// Jump
	CommandType_Jump     CommandType = "Jump"
	CommandType_JumpExit CommandType = "JumpExit"
	CommandType_Label    CommandType = "Label"

	// Named editor action, bypassing key bindings
	CommandType_Action CommandType = "Action"

	// Assertions
	CommandType_ExpectCursor CommandType = "ExpectCursor"
	CommandType_ExpectMode   CommandType = "ExpectMode"
	CommandType_ExpectLine   CommandType = "ExpectLine"
)

// Command represents a parsed tape command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Delay after this command
	Line   int           // Source line number
	Column int           // Source column number
	Raw    string        // Original raw command text
}

// String returns a string representation of the command
func (c *Command) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return fmt.Sprintf("%s %s", c.Type, strings.Join(c.Args, " "))
}

// Repeat returns how many times a key command presses its key. Commands
// without a count press once.
func (c *Command) Repeat() int {
	if !c.Type.IsKey() || len(c.Args) == 0 {
		return 1
	}
	n, err := strconv.Atoi(c.Args[len(c.Args)-1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// IsKey returns true for commands that press a single named key
func (ct CommandType) IsKey() bool {
	switch ct {
	case CommandType_Enter, CommandType_Space, CommandType_Backspace,
		CommandType_Delete, CommandType_Tab, CommandType_Escape,
		CommandType_Up, CommandType_Down, CommandType_Left, CommandType_Right,
		CommandType_Home, CommandType_End, CommandType_PageUp, CommandType_PageDown:
		return true
	}
	return false
}

// IsAssertion returns true for commands that check editor state instead of
// changing it
func (ct CommandType) IsAssertion() bool {
	switch ct {
	case CommandType_ExpectCursor, CommandType_ExpectMode, CommandType_ExpectLine:
		return true
	}
	return false
}

// ParseDuration parses a duration string (e.g., "500ms", "1s")
func ParseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}

// KeyCombo represents a key combination (e.g., Ctrl+G, Alt+J)
type KeyCombo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Key   string // The key itself (g, Home, etc.)
}

// String returns a string representation of the key combo
func (kc *KeyCombo) String() string {
	var sb strings.Builder
	if kc.Ctrl {
		sb.WriteString("Ctrl+")
	}
	if kc.Alt {
		sb.WriteString("Alt+")
	}
	if kc.Shift {
		sb.WriteString("Shift+")
	}
	sb.WriteString(kc.Key)
	return sb.String()
}

// ParseKeyCombo parses a key combo string like "Ctrl+G" or "Ctrl+Shift+Home"
func ParseKeyCombo(s string) (*KeyCombo, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '+' })
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty key combo")
	}

	kc := &KeyCombo{Key: parts[len(parts)-1]}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "Ctrl":
			kc.Ctrl = true
		case "Alt":
			kc.Alt = true
		case "Shift":
			kc.Shift = true
		default:
			return nil, fmt.Errorf("unknown modifier: %s", mod)
		}
	}

	return kc, nil
}
