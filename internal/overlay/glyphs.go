// Package overlay draws jump labels on top of document text.
//
// Label glyphs are rendered once per label and background variant into a
// GlyphCache. The cache is read-only after construction, so a single cache
// can back every editor in the process.
package overlay

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/leap/internal/theme"
)

// Palette holds the glyph colors for both background variants.
type Palette struct {
	DarkBg, DarkFg   color.Color
	LightBg, LightFg color.Color
}

// ThemePalette returns the palette of the active theme.
func ThemePalette() Palette {
	var p Palette
	p.DarkBg, p.DarkFg = theme.LabelColors(true)
	p.LightBg, p.LightFg = theme.LabelColors(false)
	return p
}

// GlyphCache maps every label to its pre-rendered glyph.
type GlyphCache struct {
	dark  map[string]string
	light map[string]string
}

// NewGlyphCache renders a glyph for each label in both variants.
func NewGlyphCache(labels []string, palette Palette) *GlyphCache {
	darkStyle := lipgloss.NewStyle().
		Background(palette.DarkBg).
		Foreground(palette.DarkFg).
		Bold(true)
	lightStyle := lipgloss.NewStyle().
		Background(palette.LightBg).
		Foreground(palette.LightFg).
		Bold(true)

	c := &GlyphCache{
		dark:  make(map[string]string, len(labels)),
		light: make(map[string]string, len(labels)),
	}
	for _, label := range labels {
		c.dark[label] = darkStyle.Render(label)
		c.light[label] = lightStyle.Render(label)
	}
	return c
}

// Glyph returns the rendered glyph for label.
func (c *GlyphCache) Glyph(label string, dark bool) (string, bool) {
	if dark {
		g, ok := c.dark[label]
		return g, ok
	}
	g, ok := c.light[label]
	return g, ok
}

// Len returns the number of labels in the cache.
func (c *GlyphCache) Len() int {
	return len(c.dark)
}
