// Package buffer holds the text of a document as a slice of lines.
package buffer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// Document is the editable content of one file. Positions are (line,
// column) pairs where column counts runes, not bytes.
type Document struct {
	path  string
	lines []string
	dirty bool

	crlf            bool
	trailingNewline bool
	mode            fs.FileMode
}

// New returns an empty document bound to path. Call Load to read it.
func New(path string) *Document {
	return &Document{
		path:            path,
		lines:           []string{""},
		trailingNewline: true,
		mode:            0o644,
	}
}

// FromString returns an unnamed document holding text.
func FromString(text string) *Document {
	d := New("")
	d.setText(text)
	d.dirty = false
	return d
}

// Path returns the file the document is bound to.
func (d *Document) Path() string {
	return d.path
}

// Load reads the file. A missing file yields an empty document that will be
// created on the first save.
func (d *Document) Load() error {
	if d.path == "" {
		return nil
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.lines = []string{""}
			d.dirty = false
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", d.path, err)
	}
	if info, err := os.Stat(d.path); err == nil {
		d.mode = info.Mode().Perm()
	}
	d.setText(string(data))
	d.dirty = false
	return nil
}

// Reload re-reads the file and reports whether the content changed. Unsaved
// edits are overwritten; callers check Dirty first.
func (d *Document) Reload() (bool, error) {
	before := d.Text()
	if err := d.Load(); err != nil {
		return false, err
	}
	return d.Text() != before, nil
}

// Save writes the document back to its file.
func (d *Document) Save() error {
	if d.path == "" {
		return errors.New("document has no file name")
	}
	if err := os.WriteFile(d.path, []byte(d.Text()), d.mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	d.dirty = false
	return nil
}

func (d *Document) setText(text string) {
	d.crlf = strings.Contains(text, "\r\n")
	if d.crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	d.trailingNewline = strings.HasSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	d.lines = strings.Split(text, "\n")
}

// Text returns the document content using its original line endings.
func (d *Document) Text() string {
	sep := "\n"
	if d.crlf {
		sep = "\r\n"
	}
	text := strings.Join(d.lines, sep)
	if d.trailingNewline {
		text += sep
	}
	return text
}

// Dirty reports whether the document has unsaved edits.
func (d *Document) Dirty() bool {
	return d.dirty
}

// LineCount returns the number of lines. It is never zero.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns line i, or "" when i is out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

// LineLen returns the rune length of line i.
func (d *Document) LineLen(i int) int {
	return len([]rune(d.Line(i)))
}

// ClampPosition moves (line, col) onto the nearest valid position.
func (d *Document) ClampPosition(line, col int) (int, int) {
	line = max(0, min(line, len(d.lines)-1))
	col = max(0, min(col, d.LineLen(line)))
	return line, col
}

// InsertText inserts text at (line, col) and returns the position just
// after it. Newlines in text split the line.
func (d *Document) InsertText(line, col int, text string) (int, int) {
	line, col = d.ClampPosition(line, col)
	if text == "" {
		return line, col
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	runes := []rune(d.lines[line])
	head, tail := string(runes[:col]), string(runes[col:])
	parts := strings.Split(text, "\n")

	if len(parts) == 1 {
		d.lines[line] = head + text + tail
		d.dirty = true
		return line, col + len([]rune(text))
	}

	inserted := make([]string, len(parts))
	inserted[0] = head + parts[0]
	copy(inserted[1:], parts[1:])
	last := len(parts) - 1
	inserted[last] = parts[last] + tail

	d.lines = slices.Replace(d.lines, line, line+1, inserted...)
	d.dirty = true
	return line + last, len([]rune(parts[last]))
}

// SplitLine breaks the line at (line, col) and returns the start of the new
// line.
func (d *Document) SplitLine(line, col int) (int, int) {
	return d.InsertText(line, col, "\n")
}

// DeleteBackward removes the character before (line, col), joining with the
// previous line at column zero. It returns the new position.
func (d *Document) DeleteBackward(line, col int) (int, int) {
	line, col = d.ClampPosition(line, col)
	if col > 0 {
		runes := []rune(d.lines[line])
		d.lines[line] = string(runes[:col-1]) + string(runes[col:])
		d.dirty = true
		return line, col - 1
	}
	if line == 0 {
		return 0, 0
	}
	prevLen := d.LineLen(line - 1)
	d.joinLines(line - 1)
	return line - 1, prevLen
}

// DeleteForward removes the character at (line, col), joining with the
// next line at the end of a line. The position does not change.
func (d *Document) DeleteForward(line, col int) (int, int) {
	line, col = d.ClampPosition(line, col)
	runes := []rune(d.lines[line])
	if col < len(runes) {
		d.lines[line] = string(runes[:col]) + string(runes[col+1:])
		d.dirty = true
		return line, col
	}
	d.joinLines(line)
	return line, col
}

func (d *Document) joinLines(idx int) {
	if idx < 0 || idx+1 >= len(d.lines) {
		return
	}
	d.lines[idx] += d.lines[idx+1]
	d.lines = slices.Delete(d.lines, idx+1, idx+2)
	d.dirty = true
}

// DeleteRange removes the text between two positions, in either order, and
// returns the start of the removed span.
func (d *Document) DeleteRange(fromLine, fromCol, toLine, toCol int) (int, int) {
	fromLine, fromCol = d.ClampPosition(fromLine, fromCol)
	toLine, toCol = d.ClampPosition(toLine, toCol)
	if toLine < fromLine || (toLine == fromLine && toCol < fromCol) {
		fromLine, fromCol, toLine, toCol = toLine, toCol, fromLine, fromCol
	}
	if fromLine == toLine && fromCol == toCol {
		return fromLine, fromCol
	}

	head := string([]rune(d.lines[fromLine])[:fromCol])
	tail := string([]rune(d.lines[toLine])[toCol:])
	d.lines = slices.Replace(d.lines, fromLine, toLine+1, head+tail)
	d.dirty = true
	return fromLine, fromCol
}
