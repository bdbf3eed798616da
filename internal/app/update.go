package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/tape"
)

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, m *Editor) (tea.Model, tea.Cmd)

// ActionRunner runs a named action against an editor.
type ActionRunner func(action string, m *Editor) (tea.Cmd, error)

var (
	inputHandler InputHandler
	actionRunner ActionRunner
)

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// SetActionRunner registers the function that runs named actions for
// scripts.
func SetActionRunner(runner ActionRunner) {
	actionRunner = runner
}

// Init asks for the terminal background so labels use the right glyph
// variant, and starts file watching and script playback.
func (m *Editor) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.RequestBackgroundColor}
	if m.Watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.Watcher))
	}
	if m.ScriptPlayer != nil {
		cmds = append(cmds, ScriptTickCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles terminal and editor events. Keys and actions go to the
// registered input handler.
func (m *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.RevealPosition(m.Cursor)
		return m, nil

	case tea.BackgroundColorMsg:
		m.Overlay.SetDarkBackground(msg.IsDark())
		m.Logger.Debug("terminal background", "dark", msg.IsDark())
		return m, nil

	case FileChangedMsg:
		m.handleFileChanged()
		return m, WatchFileCmd(m.Watcher)

	case FileWatchErrorMsg:
		m.Logger.Warn("file watcher error", "err", msg.Err)
		return m, WatchFileCmd(m.Watcher)

	case ScriptTickMsg:
		return m, m.stepScript(time.Time(msg))

	case ScriptCommandMsg:
		if err := m.ScriptExecutor.Execute(msg.Command); err != nil {
			m.ScriptErrors = append(m.ScriptErrors, err)
			m.Logger.Warn("script command failed", "command", msg.Command.String(), "err", err)
			m.SetError(fmt.Errorf("script: %w", err))
		}
		if m.ScriptPlayer != nil && m.ScriptPlayer.IsFinished() {
			m.finishScript()
		}
		return m, nil
	}

	if inputHandler != nil {
		return inputHandler(msg, m)
	}
	return m, nil
}

// handleFileChanged reloads a clean document after an external change. An
// active jump session is cancelled first since its bindings point into the
// old text.
func (m *Editor) handleFileChanged() {
	m.Jump.Exit()

	if m.Doc.Dirty() {
		m.Logger.Info("file changed on disk, keeping unsaved edits", "path", m.Doc.Path())
		m.SetStatus("File changed on disk; unsaved edits kept")
		return
	}

	changed, err := m.Doc.Reload()
	if err != nil {
		m.Logger.Error("reload failed", "path", m.Doc.Path(), "err", err)
		m.SetError(err)
		return
	}
	if !changed {
		return
	}

	m.Anchor = nil
	m.moveTo(m.Cursor.Line, m.Cursor.Character, false)
	m.Logger.Info("reloaded", "path", m.Doc.Path())
	m.SetStatus("Reloaded from disk")
}

// stepScript advances playback by one command per tick. Sleep commands hold
// the player until their deadline.
func (m *Editor) stepScript(now time.Time) tea.Cmd {
	player := m.ScriptPlayer
	if player == nil || player.IsFinished() {
		return nil
	}
	if player.IsPaused() || now.Before(m.ScriptSleepUntil) {
		return ScriptTickCmd()
	}
	m.ScriptSleepUntil = time.Time{}

	next := player.NextCommand()
	player.Advance()

	if next.Type == tape.CommandType_Sleep {
		if player.IsFinished() {
			m.finishScript()
			return nil
		}
		m.ScriptSleepUntil = now.Add(next.Delay)
		return ScriptTickCmd()
	}
	if next.Delay > 0 {
		m.ScriptSleepUntil = now.Add(next.Delay)
	}

	cmds := []tea.Cmd{func() tea.Msg { return ScriptCommandMsg{Command: next} }}
	if !player.IsFinished() {
		cmds = append(cmds, ScriptTickCmd())
	}
	return tea.Sequence(cmds...)
}

func (m *Editor) finishScript() {
	m.Logger.Info("script finished", "errors", len(m.ScriptErrors))
	if len(m.ScriptErrors) == 0 {
		m.SetStatus("Script finished")
	}
}
