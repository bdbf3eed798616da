// Package theme provides color themes and styling for the leap editor.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}

	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// LabelColors returns the glyph colors for jump labels. The dark variant
// is drawn on dark terminal backgrounds and the light variant on light ones.
func LabelColors(dark bool) (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		if dark {
			return lipgloss.Color("#ffffff"), lipgloss.Color("#000000")
		}
		return lipgloss.Color("#000000"), lipgloss.Color("#ffffff")
	}
	if dark {
		return t.BrightWhite, t.Black
	}
	return t.Black, t.BrightWhite
}

// LabelAccent colors the first character of a label once it has been typed.
func LabelAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff00ff")
	}
	return t.BrightPurple
}

func CursorColors() (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00ff00"), lipgloss.Color("#000000")
	}
	return t.Cursor, t.Black
}

func SelectionColors() (bg color.Color, fg color.Color) {
	return lipgloss.Color("62"), lipgloss.Color("15")
}

func LineNumber() color.Color {
	return lipgloss.Color("8")
}

func LineNumberCurrent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("11")
	}
	return t.Yellow
}

// Status bar colors
func StatusBarBg() color.Color {
	return lipgloss.Color("236")
}

func StatusBarFg() color.Color {
	return lipgloss.Color("252")
}

// StatusModeColors returns the badge colors for the mode indicator.
func StatusModeColors(jumping bool) (bg color.Color, fg color.Color) {
	t := Current()
	if t == nil {
		if jumping {
			return lipgloss.Color("#ff00ff"), lipgloss.Color("#000000")
		}
		return lipgloss.Color("#5c5cff"), lipgloss.Color("#ffffff")
	}
	if jumping {
		return t.BrightPurple, t.Black
	}
	return t.Blue, t.BrightWhite
}

func StatusDirty() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffff00")
	}
	return t.Yellow
}

func StatusError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ff0000")
	}
	return t.BrightRed
}

// Help menu colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5") // Purple/magenta
}

func HelpKeyBadgeBg() color.Color {
	return lipgloss.Color("0")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpTableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}
