package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/leap/internal/buffer"
	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/theme"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// labelContextWidth is how much of the line after a target is shown.
const labelContextWidth = 24

// labelRow is one label with the target it selects. Line and Column are
// 1-based.
type labelRow struct {
	Label   string
	Line    int
	Column  int
	Context string
}

// collectLabels computes the bindings a jump would create with the cursor
// on line (0-based).
func collectLabels(doc *buffer.Document, pattern jump.Pattern, radius, line, limit int) []labelRow {
	space := jump.DefaultLabelSpace()
	start, end := jump.Window(line, doc.LineCount(), radius)

	lines := make(jump.StringLines, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, doc.Line(i))
	}

	bindings := jump.Bind(space.Labels(), jump.Scan(space.Len(), start, lines, pattern))
	if limit > 0 && len(bindings) > limit {
		bindings = bindings[:limit]
	}

	rows := make([]labelRow, len(bindings))
	for i, b := range bindings {
		text := []rune(doc.Line(b.Position.Line))
		rows[i] = labelRow{
			Label:   b.Label,
			Line:    b.Position.Line + 1,
			Column:  b.Position.Character + 1,
			Context: ansi.Truncate(string(text[b.Position.Character:]), labelContextWidth, "…"),
		}
	}
	return rows
}

func printLabels(path string, line, limit int) error {
	logger := newConsoleLogger()
	userConfig := loadConfig(logger)

	doc, err := openDocument(path)
	if err != nil {
		return err
	}
	pattern, err := jump.CompilePattern(userConfig.Jump.Pattern)
	if err != nil {
		return err
	}

	rows := collectLabels(doc, pattern, userConfig.Jump.ScanRadius, max(line-1, 0), limit)
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no jump targets")
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return writeLabelsTSV(os.Stdout, rows)
	}

	w := colorprofile.NewWriter(os.Stdout, os.Environ())
	_, err = fmt.Fprintln(w, renderLabelsTable(rows))
	return err
}

// writeLabelsTSV writes one tab separated row per label.
func writeLabelsTSV(w io.Writer, rows []labelRow) error {
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", r.Label, r.Line, r.Column, r.Context); err != nil {
			return err
		}
	}
	return nil
}

func renderLabelsTable(rows []labelRow) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableHeader()).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.CLITableKey()).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	dimStyle := cellStyle.Foreground(theme.CLITableDim())

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.Label, strconv.Itoa(r.Line), strconv.Itoa(r.Column), r.Context}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers("Label", "Line", "Col", "Target").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			case col == 1 || col == 2:
				return dimStyle
			}
			return cellStyle
		}).
		Render()
}
