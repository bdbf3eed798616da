package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/leap/internal/buffer"
	"github.com/Gaurav-Gosain/leap/internal/config"
	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/tape"
	"github.com/charmbracelet/x/ansi"
)

func newTestEditor(t *testing.T, text string) *Editor {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Editor.Watch = false
	m, err := NewEditor(EditorOptions{Doc: buffer.FromString(text), Config: cfg})
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 6})
	return m
}

func TestNewEditor_RequiresDocument(t *testing.T) {
	if _, err := NewEditor(EditorOptions{}); err == nil {
		t.Error("expected an error without a document")
	}
}

func TestNewEditor_InvalidPattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Jump.Pattern = "("
	if _, err := NewEditor(EditorOptions{Doc: buffer.FromString("x"), Config: cfg}); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}

func TestEditor_SetCursorClampsAndCollapses(t *testing.T) {
	m := newTestEditor(t, "foo bar\nbaz")
	m.ToggleSelection()
	m.SetCursor(jump.Position{Line: 9, Character: 9})

	if m.Cursor != (jump.Position{Line: 1, Character: 3}) {
		t.Errorf("cursor = %v, want 1:3", m.Cursor)
	}
	if m.Anchor != nil {
		t.Error("SetCursor should collapse the selection")
	}
}

func TestEditor_RevealPosition(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	m := newTestEditor(t, strings.Join(lines, "\n"))
	rows := m.textHeight() // 5 with the status bar

	m.RevealPosition(jump.Position{Line: 20})
	if m.ScrollY != 20-rows+1 {
		t.Errorf("scrolling down: ScrollY = %d, want %d", m.ScrollY, 20-rows+1)
	}

	// Already visible: no scroll.
	before := m.ScrollY
	m.RevealPosition(jump.Position{Line: 18})
	if m.ScrollY != before {
		t.Errorf("visible line scrolled the view to %d", m.ScrollY)
	}

	m.RevealPosition(jump.Position{Line: 3})
	if m.ScrollY != 3 {
		t.Errorf("scrolling up: ScrollY = %d, want 3", m.ScrollY)
	}
}

func TestEditor_RevealPositionHorizontal(t *testing.T) {
	m := newTestEditor(t, strings.Repeat("x", 200))
	m.RevealPosition(jump.Position{Character: 150})

	width := m.textWidth()
	if m.ScrollX != 150-width+1 {
		t.Errorf("ScrollX = %d, want %d", m.ScrollX, 150-width+1)
	}
	m.RevealPosition(jump.Position{Character: 0})
	if m.ScrollX != 0 {
		t.Errorf("ScrollX = %d, want 0", m.ScrollX)
	}
}

func TestEditor_Movement(t *testing.T) {
	m := newTestEditor(t, "long line here\nab\nanother long line")

	m.LineEnd()
	if m.Cursor.Character != 14 {
		t.Fatalf("LineEnd: %v", m.Cursor)
	}
	m.MoveDown(1)
	if m.Cursor != (jump.Position{Line: 1, Character: 2}) {
		t.Errorf("MoveDown clamps to short line: %v", m.Cursor)
	}
	m.MoveDown(1)
	if m.Cursor != (jump.Position{Line: 2, Character: 14}) {
		t.Errorf("MoveDown restores goal column: %v", m.Cursor)
	}

	m.LineStart()
	m.MoveLeft()
	if m.Cursor != (jump.Position{Line: 1, Character: 2}) {
		t.Errorf("MoveLeft wraps to previous line end: %v", m.Cursor)
	}
	m.MoveRight()
	if m.Cursor != (jump.Position{Line: 2, Character: 0}) {
		t.Errorf("MoveRight wraps to next line start: %v", m.Cursor)
	}

	m.DocStart()
	if m.Cursor != (jump.Position{}) {
		t.Errorf("DocStart: %v", m.Cursor)
	}
	m.DocEnd()
	if m.Cursor != (jump.Position{Line: 2, Character: 17}) {
		t.Errorf("DocEnd: %v", m.Cursor)
	}
}

func TestEditor_Editing(t *testing.T) {
	m := newTestEditor(t, "foo bar")

	m.InsertText("x")
	m.Newline()
	m.InsertTab()
	if m.Doc.Line(0) != "x" || m.Doc.Line(1) != "\tfoo bar" {
		t.Errorf("lines = %q, %q", m.Doc.Line(0), m.Doc.Line(1))
	}

	m.Backspace()
	m.Backspace()
	if m.Doc.LineCount() != 1 || m.Doc.Line(0) != "xfoo bar" {
		t.Errorf("after backspaces: %q", m.Doc.Line(0))
	}

	m.DeleteForward()
	if m.Doc.Line(0) != "xoo bar" || m.Cursor.Character != 1 {
		t.Errorf("after delete: %q at %v", m.Doc.Line(0), m.Cursor)
	}
}

func TestEditor_SelectionReplace(t *testing.T) {
	m := newTestEditor(t, "foo bar baz")
	m.SetCursor(jump.Position{Character: 4})
	m.ToggleSelection()
	for range 3 {
		m.MoveRight()
	}

	start, end, ok := m.Selection()
	if !ok || start.Character != 4 || end.Character != 7 {
		t.Fatalf("selection = %v..%v (%v)", start, end, ok)
	}

	m.InsertText("qux")
	if m.Doc.Line(0) != "foo qux baz" {
		t.Errorf("line = %q", m.Doc.Line(0))
	}
	if m.Anchor != nil {
		t.Error("typing should clear the selection")
	}
}

func TestEditor_QuitConfirmation(t *testing.T) {
	m := newTestEditor(t, "foo")
	if cmd := m.RequestQuit(); cmd == nil {
		t.Error("a clean document should quit at once")
	}

	m = newTestEditor(t, "foo")
	m.InsertText("x")
	if cmd := m.RequestQuit(); cmd != nil {
		t.Error("a dirty document should ask first")
	}
	if !m.QuitPending || m.Status == "" {
		t.Error("expected a pending quit with a status message")
	}
	if cmd := m.RequestQuit(); cmd == nil {
		t.Error("second quit should go through")
	}
}

func TestEditor_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	doc := buffer.New(path)
	cfg := config.DefaultConfig()
	cfg.Editor.Watch = false
	m, err := NewEditor(EditorOptions{Doc: doc, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}

	m.InsertText("hello")
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "hello\n" {
		t.Errorf("file = %q", data)
	}
	if !strings.Contains(m.Status, "doc.txt") {
		t.Errorf("status = %q", m.Status)
	}

	unnamed := newTestEditor(t, "x")
	if err := unnamed.Save(); err == nil || !unnamed.StatusIsError {
		t.Error("saving an unnamed document should report an error")
	}
}

func TestEditor_JumpLifecycle(t *testing.T) {
	m := newTestEditor(t, "foo bar\nbaz qux")

	m.Jump.Enter()
	if !m.JumpMode {
		t.Fatal("entering jump should set the mode flag")
	}
	if m.Overlay.Len() != 4 {
		t.Errorf("overlay has %d marks, want 4", m.Overlay.Len())
	}

	if r := m.Jump.HandleKey("a"); r != jump.KeyPending {
		t.Fatalf("first key: %v", r)
	}
	if r := m.Jump.HandleKey("d"); r != jump.KeyJumped {
		t.Fatalf("second key: %v", r)
	}

	// "ad" is the fourth label: baz qux -> "qux".
	if m.Cursor != (jump.Position{Line: 1, Character: 4}) {
		t.Errorf("cursor = %v, want 1:4", m.Cursor)
	}
	if m.JumpMode || m.Overlay.Len() != 0 {
		t.Error("jump should clean up after landing")
	}
}

func TestEditor_FileChangeCancelsJumpAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("one two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := buffer.New(path)
	if err := doc.Load(); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Editor.Watch = false
	m, err := NewEditor(EditorOptions{Doc: doc, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}

	m.Jump.Enter()
	os.WriteFile(path, []byte("three\n"), 0o644)
	m.Update(FileChangedMsg{})

	if m.Jump.Active() || m.Overlay.Len() != 0 {
		t.Error("a file change should cancel the jump")
	}
	if m.Doc.Line(0) != "three" {
		t.Errorf("document not reloaded: %q", m.Doc.Line(0))
	}

	// Unsaved edits are kept.
	m.InsertText("!")
	os.WriteFile(path, []byte("four\n"), 0o644)
	m.Update(FileChangedMsg{})
	if m.Doc.Line(0) != "!three" {
		t.Errorf("dirty document was reloaded: %q", m.Doc.Line(0))
	}
}

func TestEditor_BackgroundColor(t *testing.T) {
	m := newTestEditor(t, "foo")
	m.Update(tea.BackgroundColorMsg{Color: lightGray{}})
	if m.Overlay.DarkBackground() {
		t.Error("a light background should select the light glyphs")
	}
}

type lightGray struct{}

func (lightGray) RGBA() (r, g, b, a uint32) { return 0xeeee, 0xeeee, 0xeeee, 0xffff }

func TestEditor_Render(t *testing.T) {
	m := newTestEditor(t, "foo bar\nbaz qux")

	screen := ansi.Strip(m.Render())
	rows := strings.Split(screen, "\n")
	if len(rows) != 6 {
		t.Fatalf("rendered %d rows, want 6", len(rows))
	}
	if !strings.Contains(rows[0], "1 foo bar") {
		t.Errorf("first row = %q", rows[0])
	}
	if !strings.HasSuffix(strings.TrimRight(rows[2], " "), "~") {
		t.Errorf("rows past the end should show ~, got %q", rows[2])
	}
	if !strings.Contains(rows[5], "EDIT") || !strings.Contains(rows[5], "Ln 1, Col 1") {
		t.Errorf("status bar = %q", rows[5])
	}

	m.Jump.Enter()
	screen = ansi.Strip(m.Render())
	rows = strings.Split(screen, "\n")
	if !strings.Contains(rows[0], "aao abr") {
		t.Errorf("labels not drawn: %q", rows[0])
	}
	if !strings.Contains(rows[5], "JUMP") {
		t.Errorf("status bar = %q", rows[5])
	}

	m.Jump.HandleKey("a")
	if !strings.Contains(ansi.Strip(m.Render()), "JUMP  a_") {
		t.Errorf("pending letter missing from status bar")
	}
}

func TestEditor_RenderTabs(t *testing.T) {
	m := newTestEditor(t, "\tx")
	row := strings.Split(ansi.Strip(m.Render()), "\n")[0]
	if !strings.Contains(row, "1     x") {
		t.Errorf("tab not expanded to 4 cells: %q", row)
	}
}

func TestEditor_RenderHelp(t *testing.T) {
	m := newTestEditor(t, "foo")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	m.ToggleHelp()

	screen := ansi.Strip(m.Render())
	for _, want := range []string{"Jump", "Show jump labels", "Ctrl+G", "Close help"} {
		if !strings.Contains(screen, want) {
			t.Errorf("help screen missing %q", want)
		}
	}
}

func TestDisplayColumns(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"ab", []int{0, 1, 2}},
		{"\ta", []int{0, 4, 5}},
		{"a\tb", []int{0, 1, 4, 5}},
		{"日本", []int{0, 2, 4}},
		{"", []int{0}},
	}
	for _, tc := range tests {
		got := displayColumns(tc.text, 4)
		if len(got) != len(tc.want) {
			t.Errorf("displayColumns(%q) = %v, want %v", tc.text, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("displayColumns(%q) = %v, want %v", tc.text, got, tc.want)
				break
			}
		}
	}
}

func TestEditor_ScriptPlayback(t *testing.T) {
	cmds, errs := tape.ParseFile("Jump\nSleep 1ms\nExpectMode jump\n")
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	cfg := config.DefaultConfig()
	cfg.Editor.Watch = false
	m, err := NewEditor(EditorOptions{Doc: buffer.FromString("foo bar"), Config: cfg, Script: cmds})
	if err != nil {
		t.Fatal(err)
	}
	SetActionRunner(func(action string, e *Editor) (tea.Cmd, error) {
		if action == "jump" {
			e.Jump.Enter()
		}
		return nil, nil
	})
	defer SetActionRunner(nil)

	now := time.Now()
	for i := 0; i < 10 && !m.ScriptPlayer.IsFinished(); i++ {
		next := m.ScriptPlayer.NextCommand()
		m.stepScript(now)
		if next.Type != tape.CommandType_Sleep {
			m.Update(ScriptCommandMsg{Command: next})
		}
		now = now.Add(10 * time.Millisecond)
	}

	if !m.ScriptPlayer.IsFinished() {
		t.Fatal("script did not finish")
	}
	if len(m.ScriptErrors) != 0 {
		t.Errorf("script errors: %v", m.ScriptErrors)
	}
	if !m.JumpMode {
		t.Error("Jump command did not enter jump mode")
	}
}
