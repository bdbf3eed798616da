package jump

// Viewport gives the controller read access to the editor's document and
// cursor line.
type Viewport interface {
	CursorLine() int
	LineCount() int
	LineText(i int) string
}

// Cursor moves the editor's cursor. SetCursor collapses any selection to
// pos; RevealPosition scrolls pos into view.
type Cursor interface {
	SetCursor(pos Position)
	RevealPosition(pos Position)
}

// ModeNotifier is told when jump mode starts and stops so the host can
// route keys to the controller instead of inserting them.
type ModeNotifier interface {
	SetModeFlag(active bool)
}

// Host is the editor side of a jump.
type Host interface {
	Viewport
	Cursor
	ModeNotifier
}

// Overlay draws labels over the text.
type Overlay interface {
	RenderOverlay(pos Position, label string)
	ClearOverlays()
}
