package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/app"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// handleMouseClick moves the cursor to the clicked character. A click
// while labels are shown cancels the jump first.
func handleMouseClick(msg tea.MouseClickMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft || e.ShowHelp {
		return e, nil
	}
	if !isInTextArea(mouse.X, mouse.Y, e) {
		return e, nil
	}

	if e.Jump.Active() {
		e.Jump.Exit()
	}
	e.SetCursor(e.PositionAt(mouse.X, mouse.Y))
	return e, nil
}

// handleMouseWheel scrolls the view. Labels are bound to the text around
// the cursor, so scrolling leaves an active jump alone.
func handleMouseWheel(msg tea.MouseWheelMsg, e *app.Editor) (*app.Editor, tea.Cmd) {
	switch msg.Mouse().Button {
	case tea.MouseWheelUp:
		e.ScrollBy(-wheelLines)
	case tea.MouseWheelDown:
		e.ScrollBy(wheelLines)
	}
	return e, nil
}

// isInTextArea reports whether a screen cell lies over document rows,
// excluding the status bar.
func isInTextArea(x, y int, e *app.Editor) bool {
	rows := e.Height
	if e.Config.Appearance.StatusBar {
		rows--
	}
	return x >= 0 && y >= 0 && x < e.Width && y < rows
}
