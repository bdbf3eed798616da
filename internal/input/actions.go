package input

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/app"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Jump actions
	d.Register("jump", handleJump)
	d.Register("jump_exit", handleJumpExit)

	// Navigation actions
	d.Register("cursor_up", handleCursorUp)
	d.Register("cursor_down", handleCursorDown)
	d.Register("cursor_left", handleCursorLeft)
	d.Register("cursor_right", handleCursorRight)
	d.Register("line_start", handleLineStart)
	d.Register("line_end", handleLineEnd)
	d.Register("page_up", handlePageUp)
	d.Register("page_down", handlePageDown)
	d.Register("doc_start", handleDocStart)
	d.Register("doc_end", handleDocEnd)

	// Editing actions
	d.Register("newline", handleNewline)
	d.Register("backspace", handleBackspace)
	d.Register("delete", handleDelete)
	d.Register("insert_tab", handleInsertTab)
	d.Register("toggle_selection", handleToggleSelection)

	// System actions
	d.Register("save", handleSave)
	d.Register("quit", handleQuit)
	d.Register("toggle_help", handleToggleHelp)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, e)
	}
	return e, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// RunAction runs a named action without a key event. It is registered with
// app.SetActionRunner so scripts can call actions by name.
func RunAction(action string, e *app.Editor) (tea.Cmd, error) {
	if !globalDispatcher.HasAction(action) {
		return nil, fmt.Errorf("unknown action %q", action)
	}
	_, cmd := globalDispatcher.Dispatch(action, tea.KeyPressMsg{}, e)
	return cmd, nil
}

// ============================================================================
// Jump Action Handlers
// ============================================================================

// handleJump starts a jump session. Triggering while labels are already
// shown rescans from the current cursor.
func handleJump(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.ShowHelp = false
	e.Jump.Enter()
	if n := len(e.Jump.Bindings()); n == 0 {
		e.SetStatus("No jump targets")
	} else {
		e.Status = ""
	}
	return e, nil
}

// handleJumpExit cancels a jump session, or clears the selection when no
// session is active.
func handleJumpExit(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	if e.Jump.Active() {
		e.Jump.Exit()
		return e, nil
	}
	e.ClearSelection()
	e.QuitPending = false
	return e, nil
}

// ============================================================================
// Navigation Action Handlers
// ============================================================================

func handleCursorUp(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.MoveUp(1)
	return e, nil
}

func handleCursorDown(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.MoveDown(1)
	return e, nil
}

func handleCursorLeft(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.MoveLeft()
	return e, nil
}

func handleCursorRight(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.MoveRight()
	return e, nil
}

func handleLineStart(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.LineStart()
	return e, nil
}

func handleLineEnd(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.LineEnd()
	return e, nil
}

func handlePageUp(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.PageUp()
	return e, nil
}

func handlePageDown(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.PageDown()
	return e, nil
}

func handleDocStart(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.DocStart()
	return e, nil
}

func handleDocEnd(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.DocEnd()
	return e, nil
}

// ============================================================================
// Editing Action Handlers
// ============================================================================

func handleNewline(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.Newline()
	return e, nil
}

func handleBackspace(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.Backspace()
	return e, nil
}

func handleDelete(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.DeleteForward()
	return e, nil
}

func handleInsertTab(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.InsertTab()
	return e, nil
}

func handleToggleSelection(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.ToggleSelection()
	return e, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleSave(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	// Save reports failures in the status bar
	_ = e.Save()
	return e, nil
}

func handleQuit(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	return e, e.RequestQuit()
}

func handleToggleHelp(msg tea.KeyPressMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	e.ToggleHelp()
	return e, nil
}
