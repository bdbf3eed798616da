package overlay

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/pool"
)

// Mark is one label drawn at a character offset of a line.
type Mark struct {
	Character int
	Label     string
}

// Presenter implements jump.Overlay for one editor.
type Presenter struct {
	cache *GlyphCache
	dark  bool
	marks map[int][]Mark
	count int
}

var _ jump.Overlay = (*Presenter)(nil)

// NewPresenter returns a presenter drawing glyphs from cache. Dark
// background glyphs are used until SetDarkBackground says otherwise.
func NewPresenter(cache *GlyphCache) *Presenter {
	return &Presenter{
		cache: cache,
		dark:  true,
		marks: make(map[int][]Mark),
	}
}

// SetDarkBackground selects the glyph variant.
func (p *Presenter) SetDarkBackground(dark bool) {
	p.dark = dark
}

// DarkBackground reports the selected glyph variant.
func (p *Presenter) DarkBackground() bool {
	return p.dark
}

// RenderOverlay records a label at pos. Marks on a line stay sorted by
// character offset; a second mark at the same offset replaces the first.
func (p *Presenter) RenderOverlay(pos jump.Position, label string) {
	line := p.marks[pos.Line]
	i, found := slices.BinarySearchFunc(line, pos.Character, func(m Mark, c int) int {
		return cmp.Compare(m.Character, c)
	})
	if found {
		line[i].Label = label
		return
	}
	p.marks[pos.Line] = slices.Insert(line, i, Mark{Character: pos.Character, Label: label})
	p.count++
}

// ClearOverlays removes every mark.
func (p *Presenter) ClearOverlays() {
	clear(p.marks)
	p.count = 0
}

// Len returns the number of marks.
func (p *Presenter) Len() int {
	return p.count
}

// Marks returns the marks on line in character order.
func (p *Presenter) Marks(line int) []Mark {
	return p.marks[line]
}

// DecorateLine renders text, the content of document line, with the label
// glyphs of that line drawn over the first two characters of each target.
// Characters not covered by a glyph are rendered by cell; a nil cell writes
// them unchanged. A mark covered by the glyph before it is skipped.
func (p *Presenter) DecorateLine(line int, text string, cell func(i int, r rune) string) string {
	marks := p.marks[line]
	if len(marks) == 0 && cell == nil {
		return text
	}

	b := pool.GetStringBuilder()
	defer pool.PutStringBuilder(b)
	b.Grow(len(text))

	next := 0
	skip := 0
	i := 0
	for _, r := range text {
		for next < len(marks) && marks[next].Character < i {
			next++
		}
		if skip > 0 {
			skip--
			i++
			continue
		}
		if next < len(marks) && marks[next].Character == i {
			b.WriteString(p.glyph(marks[next].Label))
			skip = utf8.RuneCountInString(marks[next].Label) - 1
			next++
			i++
			continue
		}
		if cell != nil {
			b.WriteString(cell(i, r))
		} else {
			b.WriteRune(r)
		}
		i++
	}

	// A mark may sit right after the last character.
	for next < len(marks) && marks[next].Character < i {
		next++
	}
	if skip == 0 && next < len(marks) && marks[next].Character == i {
		b.WriteString(p.glyph(marks[next].Label))
	}
	return b.String()
}

func (p *Presenter) glyph(label string) string {
	if p.cache == nil {
		return label
	}
	if g, ok := p.cache.Glyph(label, p.dark); ok {
		return g
	}
	return label
}
