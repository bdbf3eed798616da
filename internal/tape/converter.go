package tape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// namedKeyCodes maps script key names to bubbletea key codes.
var namedKeyCodes = map[string]rune{
	"Enter":     tea.KeyEnter,
	"Return":    tea.KeyEnter,
	"Space":     tea.KeySpace,
	"Tab":       tea.KeyTab,
	"Escape":    tea.KeyEscape,
	"Esc":       tea.KeyEscape,
	"Backspace": tea.KeyBackspace,
	"Delete":    tea.KeyDelete,
	"Up":        tea.KeyUp,
	"Down":      tea.KeyDown,
	"Left":      tea.KeyLeft,
	"Right":     tea.KeyRight,
	"Home":      tea.KeyHome,
	"End":       tea.KeyEnd,
	"PageUp":    tea.KeyPgUp,
	"PageDown":  tea.KeyPgDown,
}

// KeyPress builds the key press message for a script key name such as
// "Enter", "PageDown" or a single character.
func KeyPress(name string) (tea.KeyPressMsg, error) {
	if code, ok := namedKeyCodes[name]; ok {
		key := tea.Key{Code: code}
		if code == tea.KeySpace {
			key.Text = " "
		}
		return tea.KeyPressMsg(key), nil
	}

	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) {
		return tea.KeyPressMsg{}, fmt.Errorf("unknown key %q", name)
	}
	return tea.KeyPressMsg(tea.Key{Code: r, Text: name}), nil
}

// ComboPress builds the key press message for a combination like "Ctrl+G".
// Modified letters are reported lowercase without text, the way terminals
// deliver them.
func ComboPress(combo string) (tea.KeyPressMsg, error) {
	kc, err := ParseKeyCombo(combo)
	if err != nil {
		return tea.KeyPressMsg{}, err
	}

	msg, err := KeyPress(kc.Key)
	if err != nil {
		return tea.KeyPressMsg{}, err
	}
	key := tea.Key(msg)

	var mod tea.KeyMod
	if kc.Ctrl {
		mod |= tea.ModCtrl
	}
	if kc.Alt {
		mod |= tea.ModAlt
	}
	if kc.Shift {
		mod |= tea.ModShift
	}
	if mod != 0 {
		key.Mod = mod
		key.Text = ""
		if utf8.RuneCountInString(kc.Key) == 1 {
			key.Code = []rune(strings.ToLower(kc.Key))[0]
		}
	}
	return tea.KeyPressMsg(key), nil
}

// TypeMessages converts text into one key press per rune. Newlines become
// Enter and tabs become Tab.
func TypeMessages(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		switch r {
		case '\n':
			msgs = append(msgs, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
		case '\t':
			msgs = append(msgs, tea.KeyPressMsg(tea.Key{Code: tea.KeyTab}))
		case ' ':
			msgs = append(msgs, tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "}))
		default:
			msgs = append(msgs, tea.KeyPressMsg(tea.Key{Code: r, Text: string(r)}))
		}
	}
	return msgs
}

// CommandMessages converts an input command into the messages it stands
// for. Commands that do not produce input (Sleep, Jump, assertions) return
// nil.
func CommandMessages(cmd *Command) ([]tea.Msg, error) {
	switch {
	case cmd.Type == CommandType_Type:
		if len(cmd.Args) == 0 {
			return nil, fmt.Errorf("line %d: Type without text", cmd.Line)
		}
		return TypeMessages(cmd.Args[0]), nil

	case cmd.Type == CommandType_Label:
		if len(cmd.Args) == 0 {
			return nil, fmt.Errorf("line %d: Label without text", cmd.Line)
		}
		return TypeMessages(cmd.Args[0]), nil

	case cmd.Type.IsKey():
		msg, err := KeyPress(string(cmd.Type))
		if err != nil {
			return nil, err
		}
		n := cmd.Repeat()
		msgs := make([]tea.Msg, n)
		for i := range msgs {
			msgs[i] = msg
		}
		return msgs, nil

	case cmd.Type == CommandType_KeyCombo:
		if len(cmd.Args) == 0 {
			return nil, fmt.Errorf("line %d: empty key combo", cmd.Line)
		}
		msg, err := ComboPress(cmd.Args[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", cmd.Line, err)
		}
		return []tea.Msg{msg}, nil
	}

	return nil, nil
}
