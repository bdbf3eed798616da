package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/leap/internal/config"
	"github.com/Gaurav-Gosain/leap/internal/theme"
)

// formatKeysWithStyle styles individual key combos with pill-shaped background
func formatKeysWithStyle(keys string) string {
	// Unicode half circles for pill shape
	const (
		LeftHalfCircle  = string(rune(0xe0b6))
		RightHalfCircle = string(rune(0xe0b4))
	)

	edge := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge())
	label := lipgloss.NewStyle().
		Background(theme.HelpKeyBadge()).
		Foreground(theme.HelpKeyBadgeBg())

	var styledKeys []string
	for key := range strings.SplitSeq(keys, ", ") {
		styledKeys = append(styledKeys,
			edge.Render(LeftHalfCircle)+label.Render(" "+key+" ")+edge.Render(RightHalfCircle))
	}
	return strings.Join(styledKeys, " ")
}

// helpRows flattens the keybinding sections into table rows, with a title
// row before each section.
func helpRows(sections []config.KeybindingSection) (rows [][]string, titleRows map[int]bool) {
	titleRows = make(map[int]bool)
	for i, section := range sections {
		if i > 0 {
			rows = append(rows, []string{"", ""})
		}
		titleRows[len(rows)] = true
		rows = append(rows, []string{section.Title, ""})
		for _, b := range section.Bindings {
			rows = append(rows, []string{formatKeysWithStyle(b.Key), b.Description})
		}
	}
	return rows, titleRows
}

// RenderHelp draws the key binding overlay centered in a width x height
// area.
func (m *Editor) RenderHelp(width, height int) string {
	rows, titleRows := helpRows(config.GetKeybindings(m.KeybindRegistry))

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HelpTableHeader()).
		Padding(0, 1)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.HelpGray())).
		Headers("Keys", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case titleRows[row]:
				return titleStyle
			}
			return cellStyle
		})

	footer := lipgloss.NewStyle().
		Foreground(theme.HelpGray()).
		Italic(true).
		Render(strings.Join([]string{
			m.KeybindRegistry.GetKeysForDisplay("toggle_help") + ": Close help",
			m.KeybindRegistry.GetKeysForDisplay("jump") + ": Jump",
		}, "  •  "))

	content := lipgloss.JoinVertical(lipgloss.Center, t.Render(), "", footer)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpBox)
}
