package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/pool"
	"github.com/Gaurav-Gosain/leap/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// View renders the editor.
func (m *Editor) View() tea.View {
	var view tea.View
	view.SetContent(m.Render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	if path := m.Doc.Path(); path != "" {
		view.WindowTitle = "leap: " + filepath.Base(path)
	}
	return view
}

// Render returns the full screen as a string. It is empty until the
// terminal size is known.
func (m *Editor) Render() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	if m.ShowHelp {
		return m.RenderHelp(m.Width, m.Height)
	}

	rows := pool.GetRowSlice()
	defer pool.PutRowSlice(rows)

	for row := range m.textHeight() {
		*rows = append(*rows, m.renderLine(m.ScrollY+row))
	}
	if m.Config.Appearance.StatusBar {
		*rows = append(*rows, m.renderStatusBar())
	}
	return strings.Join(*rows, "\n")
}

// gutterWidth is the width of the line number column including its
// trailing space.
func (m *Editor) gutterWidth() int {
	if !m.Config.Appearance.LineNumbers {
		return 0
	}
	return max(len(strconv.Itoa(m.Doc.LineCount())), 3) + 1
}

func (m *Editor) renderGutter(line int) string {
	width := m.gutterWidth()
	if width == 0 {
		return ""
	}
	if line >= m.Doc.LineCount() {
		return strings.Repeat(" ", width)
	}

	style := lipgloss.NewStyle().Foreground(theme.LineNumber())
	if line == m.Cursor.Line {
		style = lipgloss.NewStyle().Foreground(theme.LineNumberCurrent()).Bold(true)
	}
	return style.Render(fmt.Sprintf("%*d", width-1, line+1)) + " "
}

// renderLine draws one document line with its labels, cursor and
// selection, cut to the horizontal scroll window.
func (m *Editor) renderLine(line int) string {
	gutter := m.renderGutter(line)
	if line >= m.Doc.LineCount() {
		return gutter + lipgloss.NewStyle().Foreground(theme.LineNumber()).Render("~")
	}

	text := m.Doc.Line(line)
	cols := displayColumns(text, m.tabWidth())

	cursorBg, cursorFg := theme.CursorColors()
	cursorStyle := lipgloss.NewStyle().Background(cursorBg).Foreground(cursorFg)
	selBg, selFg := theme.SelectionColors()
	selStyle := lipgloss.NewStyle().Background(selBg).Foreground(selFg)

	selStart, selEnd, hasSel := m.Selection()
	selected := func(i int) bool {
		if !hasSel {
			return false
		}
		p := jump.Position{Line: line, Character: i}
		return !p.Less(selStart) && p.Less(selEnd)
	}
	onCursorLine := line == m.Cursor.Line

	cell := func(i int, r rune) string {
		s := string(r)
		switch {
		case r == '\t':
			s = strings.Repeat(" ", cols[i+1]-cols[i])
		case r < ' ' || r == 0x7f:
			s = "?"
		}
		switch {
		case onCursorLine && i == m.Cursor.Character:
			return cursorStyle.Render(s)
		case selected(i):
			return selStyle.Render(s)
		}
		return s
	}

	body := m.Overlay.DecorateLine(line, text, cell)
	if onCursorLine && m.Cursor.Character >= len(cols)-1 {
		body += cursorStyle.Render(" ")
	}
	if m.ScrollX > 0 || cols[len(cols)-1]+1 > m.textWidth() {
		body = ansi.Cut(body, m.ScrollX, m.ScrollX+m.textWidth())
	}
	return gutter + body
}

// renderStatusBar draws the mode badge, file name, messages and cursor
// position on a single row.
func (m *Editor) renderStatusBar() string {
	base := lipgloss.NewStyle().
		Background(theme.StatusBarBg()).
		Foreground(theme.StatusBarFg())

	modeBg, modeFg := theme.StatusModeColors(m.JumpMode)
	modeStyle := lipgloss.NewStyle().Background(modeBg).Foreground(modeFg).Bold(true)
	mode := modeStyle.Render(" EDIT ")
	if m.JumpMode {
		mode = modeStyle.Render(" JUMP ")
		if r, ok := m.Jump.Pending(); ok {
			mode = modeStyle.Render(" JUMP ") +
				base.Foreground(theme.LabelAccent()).Bold(true).Render(" "+string(r)+"_")
		}
	}

	name := "[No Name]"
	if path := m.Doc.Path(); path != "" {
		name = filepath.Base(path)
	}
	left := mode + base.Render(" "+name)
	if m.Doc.Dirty() {
		left += base.Foreground(theme.StatusDirty()).Render(" [+]")
	}
	if m.Status != "" {
		style := base
		if m.StatusIsError {
			style = base.Foreground(theme.StatusError())
		}
		left += base.Render("  ") + style.Render(m.Status)
	}

	right := fmt.Sprintf("Ln %d, Col %d ", m.Cursor.Line+1, m.Cursor.Character+1)
	if m.JumpMode {
		right = fmt.Sprintf("%d targets  ", len(m.Jump.Bindings())) + right
	}
	if p := m.ScriptPlayer; p != nil && !p.IsFinished() {
		right = fmt.Sprintf("▶ %d%%  ", p.Progress()) + right
	}
	right = base.Render(right)

	avail := m.Width - lipgloss.Width(right)
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, max(avail-1, 0), "…")
	}
	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", gap)) + right
}

// PositionAt maps a screen cell to the document position drawn there.
// Cells past the end of a line map to the line end.
func (m *Editor) PositionAt(x, y int) jump.Position {
	line := max(min(m.ScrollY+y, m.Doc.LineCount()-1), 0)
	target := x - m.gutterWidth() + m.ScrollX
	cols := displayColumns(m.Doc.Line(line), m.tabWidth())

	col := 0
	for i := range len(cols) - 1 {
		if cols[i] > target {
			break
		}
		col = i
		if cols[i+1] > target {
			break
		}
		col = i + 1
	}
	return jump.Position{Line: line, Character: col}
}

// displayColumns returns the screen column at which each rune of text
// starts, followed by the column just past the end. Tabs advance to the
// next multiple of tabWidth.
func displayColumns(text string, tabWidth int) []int {
	cols := make([]int, 0, len(text)+1)
	x := 0
	for _, r := range text {
		cols = append(cols, x)
		switch {
		case r == '\t':
			x += tabWidth - x%tabWidth
		case r < ' ' || r == 0x7f:
			x++
		default:
			x += max(ansi.StringWidth(string(r)), 1)
		}
	}
	return append(cols, x)
}

// displayColumn returns the screen column of rune col in text.
func displayColumn(text string, col, tabWidth int) int {
	cols := displayColumns(text, tabWidth)
	col = max(0, min(col, len(cols)-1))
	return cols[col]
}
