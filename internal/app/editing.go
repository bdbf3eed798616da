package app

import (
	"fmt"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/jump"
)

// MoveUp moves the cursor n lines up, keeping the goal column.
func (m *Editor) MoveUp(n int) {
	m.moveTo(m.Cursor.Line-n, m.WantCol, false)
}

// MoveDown moves the cursor n lines down, keeping the goal column.
func (m *Editor) MoveDown(n int) {
	m.moveTo(m.Cursor.Line+n, m.WantCol, false)
}

// MoveLeft moves one character left, wrapping to the end of the previous
// line.
func (m *Editor) MoveLeft() {
	if m.Cursor.Character > 0 {
		m.moveTo(m.Cursor.Line, m.Cursor.Character-1, true)
		return
	}
	if m.Cursor.Line > 0 {
		m.moveTo(m.Cursor.Line-1, m.Doc.LineLen(m.Cursor.Line-1), true)
	}
}

// MoveRight moves one character right, wrapping to the start of the next
// line.
func (m *Editor) MoveRight() {
	if m.Cursor.Character < m.Doc.LineLen(m.Cursor.Line) {
		m.moveTo(m.Cursor.Line, m.Cursor.Character+1, true)
		return
	}
	if m.Cursor.Line < m.Doc.LineCount()-1 {
		m.moveTo(m.Cursor.Line+1, 0, true)
	}
}

func (m *Editor) LineStart() {
	m.moveTo(m.Cursor.Line, 0, true)
}

func (m *Editor) LineEnd() {
	m.moveTo(m.Cursor.Line, m.Doc.LineLen(m.Cursor.Line), true)
}

// PageUp moves the cursor and the view up by one screen.
func (m *Editor) PageUp() {
	rows := m.textHeight()
	m.ScrollY = max(m.ScrollY-rows, 0)
	m.MoveUp(rows)
}

// PageDown moves the cursor and the view down by one screen.
func (m *Editor) PageDown() {
	rows := m.textHeight()
	m.ScrollY = max(min(m.ScrollY+rows, m.Doc.LineCount()-rows), 0)
	m.MoveDown(rows)
}

func (m *Editor) DocStart() {
	m.moveTo(0, 0, true)
}

func (m *Editor) DocEnd() {
	last := m.Doc.LineCount() - 1
	m.moveTo(last, m.Doc.LineLen(last), true)
}

// ScrollBy scrolls the view n lines without moving the cursor.
func (m *Editor) ScrollBy(n int) {
	limit := max(m.Doc.LineCount()-m.textHeight(), 0)
	m.ScrollY = max(min(m.ScrollY+n, limit), 0)
}

// deleteSelection removes the selected text and reports whether there was
// any.
func (m *Editor) deleteSelection() bool {
	start, end, ok := m.Selection()
	if !ok {
		m.Anchor = nil
		return false
	}
	line, col := m.Doc.DeleteRange(start.Line, start.Character, end.Line, end.Character)
	m.SetCursor(jump.Position{Line: line, Character: col})
	return true
}

// InsertText inserts text at the cursor, replacing the selection.
func (m *Editor) InsertText(text string) {
	m.deleteSelection()
	line, col := m.Doc.InsertText(m.Cursor.Line, m.Cursor.Character, text)
	m.moveTo(line, col, true)
	m.edited()
}

// Newline splits the line at the cursor.
func (m *Editor) Newline() {
	m.InsertText("\n")
}

// InsertTab inserts a tab character.
func (m *Editor) InsertTab() {
	m.InsertText("\t")
}

// Backspace deletes the selection or the character before the cursor.
func (m *Editor) Backspace() {
	if !m.deleteSelection() {
		line, col := m.Doc.DeleteBackward(m.Cursor.Line, m.Cursor.Character)
		m.moveTo(line, col, true)
	}
	m.edited()
}

// DeleteForward deletes the selection or the character under the cursor.
func (m *Editor) DeleteForward() {
	if !m.deleteSelection() {
		line, col := m.Doc.DeleteForward(m.Cursor.Line, m.Cursor.Character)
		m.moveTo(line, col, true)
	}
	m.edited()
}

func (m *Editor) edited() {
	m.QuitPending = false
	m.Status = ""
}

// ToggleSelection drops the selection anchor at the cursor, or removes it.
func (m *Editor) ToggleSelection() {
	if m.Anchor != nil {
		m.Anchor = nil
		return
	}
	anchor := m.Cursor
	m.Anchor = &anchor
}

// ClearSelection removes the selection anchor.
func (m *Editor) ClearSelection() {
	m.Anchor = nil
}

// ToggleHelp shows or hides the key binding overlay.
func (m *Editor) ToggleHelp() {
	m.ShowHelp = !m.ShowHelp
}

// Save writes the document and reports the result in the status bar.
func (m *Editor) Save() error {
	if err := m.Doc.Save(); err != nil {
		m.Logger.Error("save failed", "path", m.Doc.Path(), "err", err)
		m.SetError(err)
		return err
	}
	m.QuitPending = false
	m.Logger.Info("saved", "path", m.Doc.Path())
	m.SetStatus(fmt.Sprintf("Saved %s", filepath.Base(m.Doc.Path())))
	return nil
}

// RequestQuit quits, asking for confirmation once when there are unsaved
// edits.
func (m *Editor) RequestQuit() tea.Cmd {
	if m.Doc.Dirty() && !m.QuitPending {
		m.QuitPending = true
		keys := m.KeybindRegistry.GetKeysForDisplay("quit")
		m.SetStatus(fmt.Sprintf("Unsaved changes. Press %s again to discard them", keys))
		return nil
	}
	m.Jump.Exit()
	return tea.Quit
}
