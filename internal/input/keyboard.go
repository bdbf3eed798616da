// Package input implements keyboard and mouse handling for leap.
package input

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/app"
	"github.com/Gaurav-Gosain/leap/internal/jump"
)

// HandleInput routes key, mouse and action messages to the editor. It is
// registered with app.SetInputHandler.
func HandleInput(msg tea.Msg, e *app.Editor) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if e.JumpMode {
			return HandleJumpModeKey(msg, e)
		}
		return HandleEditModeKey(msg, e)

	case tea.PasteMsg:
		return handlePaste(msg, e)

	case tea.MouseClickMsg:
		return handleMouseClick(msg, e)

	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, e)

	case app.ActionMsg:
		cmd, err := RunAction(msg.Action, e)
		if err != nil {
			e.Logger.Warn("action failed", "action", msg.Action, "err", err)
			e.SetError(err)
		}
		return e, cmd
	}
	return e, nil
}

// HandleJumpModeKey handles a key while labels are shown. Only the jump
// and jump_exit bindings keep their meaning; every other key is offered to
// the controller as a label character and never reaches the document.
func HandleJumpModeKey(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	switch action := e.KeybindRegistry.GetAction(msg.String()); action {
	case "jump", "jump_exit":
		return globalDispatcher.Dispatch(action, msg, e)
	}

	feedJump(msg.Text, e)
	return e, nil
}

// feedJump offers text to the jump controller as one key event.
func feedJump(text string, e *app.Editor) {
	result := e.Jump.HandleKey(text)
	e.Logger.Debug("jump key", "text", text, "result", result)
	if result == jump.KeyCancelled {
		e.SetStatus("Jump cancelled")
	}
}

// handlePaste treats pasted text as a single key event while labels are
// shown, and inserts it otherwise.
func handlePaste(msg tea.PasteMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	if e.JumpMode {
		feedJump(msg.Content, e)
		return e, nil
	}
	if e.ShowHelp || msg.Content == "" {
		return e, nil
	}

	text := strings.ReplaceAll(msg.Content, "\r\n", "\n")
	e.InsertText(strings.ReplaceAll(text, "\r", "\n"))
	return e, nil
}

// HandleEditModeKey handles a key in normal editing. Bound keys run their
// action; other printable keys are typed into the document.
func HandleEditModeKey(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	key := msg.String()
	action := e.KeybindRegistry.GetAction(key)

	// Help menu takes priority over everything else
	if e.ShowHelp {
		switch {
		case action == "toggle_help", key == "esc", key == "q":
			e.ShowHelp = false
			return e, nil
		case action == "quit", action == "jump":
			return globalDispatcher.Dispatch(action, msg, e)
		}
		return e, nil
	}

	if action != "" {
		return globalDispatcher.Dispatch(action, msg, e)
	}

	if isTypedText(msg) {
		e.InsertText(msg.Text)
	}
	return e, nil
}

// isTypedText reports whether msg carries text to insert. Keys held with
// ctrl or alt are shortcuts, not text.
func isTypedText(msg tea.KeyPressMsg) bool {
	if msg.Text == "" {
		return false
	}
	if msg.Mod.Contains(tea.ModCtrl) || msg.Mod.Contains(tea.ModAlt) {
		return false
	}
	for _, r := range msg.Text {
		if r < ' ' || r == 0x7f {
			return false
		}
	}
	return true
}
