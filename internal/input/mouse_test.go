package input

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/jump"
)

func TestIsInTextArea(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{name: "origin", x: 0, y: 0, want: true},
		{name: "inside", x: 10, y: 5, want: true},
		{name: "last text row", x: 5, y: 22, want: true},
		{name: "status bar", x: 5, y: 23, want: false},
		{name: "negative x", x: -1, y: 5, want: false},
		{name: "negative y", x: 5, y: -1, want: false},
		{name: "right edge", x: 80, y: 5, want: false},
	}

	e := newTestEditor(t, "abc")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isInTextArea(tt.x, tt.y, e); got != tt.want {
				t.Errorf("isInTextArea(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHandleMouseClick(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want jump.Position
	}{
		// The gutter is four cells wide: "  1 ".
		{name: "first character", x: 4, y: 0, want: jump.Position{Line: 0, Character: 0}},
		{name: "middle of word", x: 6, y: 1, want: jump.Position{Line: 1, Character: 2}},
		{name: "past line end", x: 40, y: 0, want: jump.Position{Line: 0, Character: 7}},
		{name: "on the gutter", x: 1, y: 1, want: jump.Position{Line: 1, Character: 0}},
		{name: "below the document", x: 4, y: 10, want: jump.Position{Line: 2, Character: 0}},
		{name: "inside a tab", x: 6, y: 2, want: jump.Position{Line: 2, Character: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, "foo bar\nbaz qux\n\tx")
			send(e, tea.MouseClickMsg{X: tt.x, Y: tt.y, Button: tea.MouseLeft})
			if e.Cursor != tt.want {
				t.Errorf("cursor = %v, want %v", e.Cursor, tt.want)
			}
		})
	}
}

func TestHandleMouseClick_CancelsJump(t *testing.T) {
	e := newTestEditor(t, "foo bar")
	send(e, keyCtrl('g'))
	send(e, tea.MouseClickMsg{X: 8, Y: 0, Button: tea.MouseLeft})

	if e.JumpMode || e.Overlay.Len() != 0 {
		t.Error("a click should cancel the jump")
	}
	if e.Cursor != (jump.Position{Character: 4}) {
		t.Errorf("cursor = %v, want 0:4", e.Cursor)
	}
}

func TestHandleMouseWheel(t *testing.T) {
	e := newTestEditor(t, strings.Repeat("line\n", 100))

	send(e, tea.MouseWheelMsg{Button: tea.MouseWheelDown})
	if e.ScrollY != wheelLines {
		t.Errorf("ScrollY = %d, want %d", e.ScrollY, wheelLines)
	}
	send(e, tea.MouseWheelMsg{Button: tea.MouseWheelUp}, tea.MouseWheelMsg{Button: tea.MouseWheelUp})
	if e.ScrollY != 0 {
		t.Errorf("ScrollY = %d, want 0", e.ScrollY)
	}
	if e.Cursor != (jump.Position{}) {
		t.Errorf("scrolling moved the cursor to %v", e.Cursor)
	}
}
