// Package app implements the leap editor as a bubbletea model.
//
// The Editor owns a document, a cursor and a jump controller. It implements
// jump.Host so the controller can read lines and move the cursor, and it
// draws the controller's labels through an overlay.Presenter.
package app

import (
	"errors"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/leap/internal/buffer"
	"github.com/Gaurav-Gosain/leap/internal/config"
	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/overlay"
	"github.com/Gaurav-Gosain/leap/internal/tape"
	"github.com/google/uuid"
)

// Editor is the main bubbletea model.
type Editor struct {
	// ID identifies the editor in logs, one per process or SSH session.
	ID string

	Doc *buffer.Document

	Cursor jump.Position
	// WantCol is the column vertical movement tries to return to.
	WantCol int
	// Anchor is the fixed end of the selection, nil when nothing is selected.
	Anchor *jump.Position

	ScrollY int
	ScrollX int
	Width   int
	Height  int

	// JumpMode mirrors the controller's mode flag.
	JumpMode bool

	Jump            *jump.Controller
	Overlay         *overlay.Presenter
	KeybindRegistry *config.KeybindRegistry
	Config          *config.UserConfig
	Logger          *log.Logger
	Watcher         *buffer.Watcher

	ShowHelp      bool
	Status        string
	StatusIsError bool
	// QuitPending is set after a quit request on a dirty document; a second
	// request quits without saving.
	QuitPending bool

	// Script playback
	ScriptPlayer     *tape.Player
	ScriptExecutor   *tape.CommandExecutor
	ScriptErrors     []error
	ScriptSleepUntil time.Time
}

// EditorOptions configures NewEditor. Only Doc is required.
type EditorOptions struct {
	Doc    *buffer.Document
	Config *config.UserConfig
	// Space and Glyphs may be shared between editors.
	Space  *jump.LabelSpace
	Glyphs *overlay.GlyphCache
	Logger *log.Logger
	// Line is the zero-based line the cursor starts on.
	Line int
	// Script, when set, is played back through the update loop.
	Script []tape.Command
}

// NewEditor creates an editor for opts.Doc. When the configuration enables
// watching and the document has a file, the file is watched for external
// changes.
func NewEditor(opts EditorOptions) (*Editor, error) {
	if opts.Doc == nil {
		return nil, errors.New("editor needs a document")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	space := opts.Space
	if space == nil {
		space = jump.DefaultLabelSpace()
	}
	glyphs := opts.Glyphs
	if glyphs == nil {
		glyphs = overlay.NewGlyphCache(space.Labels(), overlay.ThemePalette())
	}
	pattern, err := jump.CompilePattern(cfg.Jump.Pattern)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	m := &Editor{
		ID:              id,
		Doc:             opts.Doc,
		Overlay:         overlay.NewPresenter(glyphs),
		KeybindRegistry: config.NewKeybindRegistry(cfg),
		Config:          cfg,
		Logger:          logger.With("editor", id[:8]),
	}
	m.Jump = jump.NewController(m, m.Overlay, jump.Options{
		Space:   space,
		Pattern: pattern,
		Radius:  cfg.Jump.ScanRadius,
		Logger:  m.Logger,
	})
	m.SetCursor(jump.Position{Line: opts.Line})

	if cfg.Editor.Watch && opts.Doc.Path() != "" {
		w, err := buffer.Watch(opts.Doc.Path())
		if err != nil {
			m.Logger.Warn("file watching disabled", "err", err)
		} else {
			m.Watcher = w
		}
	}

	if len(opts.Script) > 0 {
		m.ScriptPlayer = tape.NewPlayer(opts.Script)
		m.ScriptExecutor = tape.NewCommandExecutor(m)
	}

	return m, nil
}

// Close releases the file watcher.
func (m *Editor) Close() error {
	if m.Watcher == nil {
		return nil
	}
	return m.Watcher.Close()
}

// CursorLine returns the line the cursor is on.
func (m *Editor) CursorLine() int {
	return m.Cursor.Line
}

// LineCount returns the number of lines in the document.
func (m *Editor) LineCount() int {
	return m.Doc.LineCount()
}

// LineText returns the text of line i.
func (m *Editor) LineText(i int) string {
	return m.Doc.Line(i)
}

// SetCursor moves the cursor to pos, clamped to the document, and collapses
// the selection.
func (m *Editor) SetCursor(pos jump.Position) {
	m.Anchor = nil
	m.moveTo(pos.Line, pos.Character, true)
}

// RevealPosition scrolls as little as possible to bring pos on screen.
func (m *Editor) RevealPosition(pos jump.Position) {
	line, col := m.Doc.ClampPosition(pos.Line, pos.Character)

	rows := m.textHeight()
	switch {
	case line < m.ScrollY:
		m.ScrollY = line
	case line >= m.ScrollY+rows:
		m.ScrollY = line - rows + 1
	}

	cols := m.textWidth()
	x := displayColumn(m.Doc.Line(line), col, m.tabWidth())
	switch {
	case x < m.ScrollX:
		m.ScrollX = x
	case x >= m.ScrollX+cols:
		m.ScrollX = x - cols + 1
	}
}

// SetModeFlag records whether a jump session is active.
func (m *Editor) SetModeFlag(active bool) {
	m.JumpMode = active
}

// moveTo places the cursor and scrolls it into view. Horizontal moves reset
// the goal column; vertical ones keep it.
func (m *Editor) moveTo(line, col int, horizontal bool) {
	line, col = m.Doc.ClampPosition(line, col)
	m.Cursor = jump.Position{Line: line, Character: col}
	if horizontal {
		m.WantCol = col
	}
	m.RevealPosition(m.Cursor)
}

// Selection returns the selected range in document order.
func (m *Editor) Selection() (start, end jump.Position, ok bool) {
	if m.Anchor == nil || *m.Anchor == m.Cursor {
		return jump.Position{}, jump.Position{}, false
	}
	start, end = *m.Anchor, m.Cursor
	if end.Less(start) {
		start, end = end, start
	}
	return start, end, true
}

// SetStatus shows an informational message in the status bar.
func (m *Editor) SetStatus(msg string) {
	m.Status = msg
	m.StatusIsError = false
}

// SetError shows err in the status bar.
func (m *Editor) SetError(err error) {
	m.Status = err.Error()
	m.StatusIsError = true
}

// textHeight is the number of document rows on screen.
func (m *Editor) textHeight() int {
	h := m.Height
	if m.Config.Appearance.StatusBar {
		h--
	}
	return max(h, 1)
}

// textWidth is the number of document columns on screen.
func (m *Editor) textWidth() int {
	return max(m.Width-m.gutterWidth(), 1)
}

func (m *Editor) tabWidth() int {
	if m.Config.Editor.TabWidth > 0 {
		return m.Config.Editor.TabWidth
	}
	return config.DefaultTabWidth
}

// Dispatch feeds msg through Update, dropping any returned command. It lets
// scripts drive the editor without a program.
func (m *Editor) Dispatch(msg tea.Msg) {
	m.Update(msg)
}

// CursorPosition returns the cursor as (line, column).
func (m *Editor) CursorPosition() (int, int) {
	return m.Cursor.Line, m.Cursor.Character
}

// JumpActive reports whether labels are shown.
func (m *Editor) JumpActive() bool {
	return m.Jump.Active()
}

// RunAction runs a named action through the registered action runner.
func (m *Editor) RunAction(action string) error {
	if actionRunner == nil {
		return errors.New("no action runner registered")
	}
	_, err := actionRunner(action, m)
	return err
}

var _ jump.Host = (*Editor)(nil)
var _ tape.Executor = (*Editor)(nil)
