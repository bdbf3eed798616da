package jump

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// DefaultScanRadius is how many lines before and after the cursor line a
// jump scans.
const DefaultScanRadius = 10000

// DefaultPatternExpr matches runs of two or more word characters.
const DefaultPatternExpr = `\w{2,}`

// DefaultPattern is the matching rule used when none is configured.
var DefaultPattern = MustCompilePattern(DefaultPatternExpr)

// Position is a zero-based location in the document. Line is relative to
// the whole document and Character counts runes, not bytes.
type Position struct {
	Line      int
	Character int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Less reports whether p comes before q in document order.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Character < q.Character
}

// Lines is a lazily read sequence of line texts.
type Lines interface {
	Len() int
	Line(i int) string
}

// StringLines adapts a slice of strings to Lines.
type StringLines []string

func (l StringLines) Len() int { return len(l) }
func (l StringLines) Line(i int) string { return l[i] }

// Pattern finds candidate starts within a single line.
type Pattern interface {
	// Starts returns up to n non-overlapping match start offsets, in runes,
	// scanning left to right. n < 0 means no limit.
	Starts(line string, n int) []int
}

// RegexpPattern is a Pattern backed by a regular expression.
type RegexpPattern struct {
	re *regexp.Regexp
}

// CompilePattern compiles expr into a RegexpPattern.
func CompilePattern(expr string) (*RegexpPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	return &RegexpPattern{re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(expr string) *RegexpPattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *RegexpPattern) String() string {
	return p.re.String()
}

// Starts implements Pattern.
func (p *RegexpPattern) Starts(line string, n int) []int {
	if n == 0 {
		return nil
	}
	matches := p.re.FindAllStringIndex(line, n)
	if len(matches) == 0 {
		return nil
	}

	starts := make([]int, len(matches))
	// Matches are ascending, so byte offsets convert to rune offsets in one pass.
	runeIdx, byteIdx := 0, 0
	for i, m := range matches {
		runeIdx += utf8.RuneCountInString(line[byteIdx:m[0]])
		byteIdx = m[0]
		starts[i] = runeIdx
	}
	return starts
}

// Scan walks lines in order and records the start of every pattern match
// as a Position. windowStart is the document line of lines.Line(0). Scanning
// stops, including within the current line, as soon as maxCandidates
// positions have been collected; later lines are never read.
func Scan(maxCandidates, windowStart int, lines Lines, pattern Pattern) []Position {
	if maxCandidates <= 0 || lines == nil || pattern == nil {
		return nil
	}

	var positions []Position
	n := lines.Len()
	for i := 0; i < n && len(positions) < maxCandidates; i++ {
		remaining := maxCandidates - len(positions)
		for _, start := range pattern.Starts(lines.Line(i), remaining) {
			positions = append(positions, Position{Line: windowStart + i, Character: start})
		}
	}
	if len(positions) > maxCandidates {
		positions = positions[:maxCandidates]
	}
	return positions
}

// Window returns the half-open range of document lines to scan: radius
// lines on either side of cursorLine, clipped to the document.
func Window(cursorLine, lineCount, radius int) (start, end int) {
	if lineCount <= 0 {
		return 0, 0
	}
	if radius < 0 {
		radius = 0
	}
	cursorLine = max(0, min(cursorLine, lineCount-1))

	start = max(0, cursorLine-radius)
	end = lineCount
	if lineCount-cursorLine >= radius {
		end = cursorLine + radius
	}
	if end <= start {
		// A zero radius still scans the cursor line.
		end = min(lineCount, start+1)
	}
	return start, end
}

// windowLines exposes a slice of a Viewport as Lines, reading each line
// only when the scanner asks for it.
type windowLines struct {
	view       Viewport
	start, end int
}

func (w windowLines) Len() int { return w.end - w.start }
func (w windowLines) Line(i int) string { return w.view.LineText(w.start + i) }
