package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/buffer"
	"github.com/Gaurav-Gosain/leap/internal/tape"
)

// ActionMsg asks the input handler to run a named action, bypassing key
// bindings.
type ActionMsg struct {
	Action string
}

// FileChangedMsg signals that the document's file changed on disk.
type FileChangedMsg struct{}

// FileWatchErrorMsg carries a watcher failure.
type FileWatchErrorMsg struct {
	Err error
}

// ScriptTickMsg drives script playback.
type ScriptTickMsg time.Time

// ScriptCommandMsg represents a command from a tape script to be executed.
// This allows tape commands to be processed through the normal message handling flow.
type ScriptCommandMsg struct {
	Command *tape.Command
}

// scriptTickInterval paces playback so each step is rendered.
const scriptTickInterval = 30 * time.Millisecond

// WatchFileCmd waits for the next change reported by w. It returns nil once
// the watcher has stopped.
func WatchFileCmd(w *buffer.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Events():
			return FileChangedMsg{}
		case err := <-w.Errors():
			return FileWatchErrorMsg{Err: err}
		case <-w.Done():
			return nil
		}
	}
}

// ScriptTickCmd schedules the next playback step.
func ScriptTickCmd() tea.Cmd {
	return tea.Tick(scriptTickInterval, func(t time.Time) tea.Msg {
		return ScriptTickMsg(t)
	})
}

// ActionCmd returns a command that sends ActionMsg.
func ActionCmd(action string) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: action}
	}
}
