package jump

import (
	"strings"
	"testing"
)

// countingLines records how many times each line is read.
type countingLines struct {
	lines []string
	reads int
	max   int // highest index read, -1 if none
}

func newCountingLines(lines ...string) *countingLines {
	return &countingLines{lines: lines, max: -1}
}

func (c *countingLines) Len() int { return len(c.lines) }

func (c *countingLines) Line(i int) string {
	c.reads++
	if i > c.max {
		c.max = i
	}
	return c.lines[i]
}

func TestScan_DocumentOrder(t *testing.T) {
	lines := StringLines{"foo bar", "baz qux"}
	got := Scan(100, 0, lines, DefaultPattern)
	want := []Position{{0, 0}, {0, 4}, {1, 0}, {1, 4}}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScan_NonDecreasingOrder(t *testing.T) {
	lines := StringLines{
		"func main() {",
		"",
		"\tx := foo_bar(1, 22, abc)",
		"   // a b cc dd",
		"end",
	}
	got := Scan(1000, 40, lines, DefaultPattern)
	if len(got) == 0 {
		t.Fatal("expected candidates")
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Less(got[i]) {
			t.Errorf("candidates out of order: %v then %v", got[i-1], got[i])
		}
	}
	if got[0].Line != 40 {
		t.Errorf("first candidate line = %d, want window start 40", got[0].Line)
	}
}

func TestScan_WindowStartOffsetsLines(t *testing.T) {
	got := Scan(10, 7, StringLines{"x", "hello"}, DefaultPattern)
	if len(got) != 1 || got[0] != (Position{Line: 8, Character: 0}) {
		t.Errorf("got %v, want [8:0]", got)
	}
}

func TestScan_DefaultPatternRules(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []int
	}{
		{"single letters skipped", "a b c", nil},
		{"underscore and digits", "_x 42 a1_b", []int{0, 3, 6}},
		{"punctuation splits", "foo.bar(baz)", []int{0, 4, 8}},
		{"greedy run", "abcdefgh", []int{0}},
		{"multibyte offsets are runes", "héé foo", []int{4}},
		{"empty", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DefaultPattern.Starts(tc.line, -1)
			if len(got) != len(tc.want) {
				t.Fatalf("Starts(%q) = %v, want %v", tc.line, got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("Starts(%q)[%d] = %d, want %d", tc.line, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestScan_CapStopsEarly(t *testing.T) {
	lines := newCountingLines(
		"one two three",
		"four five",
		"six seven",
		"eight nine",
	)

	got := Scan(4, 0, lines, DefaultPattern)
	if len(got) != 4 {
		t.Fatalf("got %d candidates, want 4", len(got))
	}
	if got[3] != (Position{Line: 1, Character: 0}) {
		t.Errorf("last candidate = %v, want 1:0", got[3])
	}
	if lines.max != 1 {
		t.Errorf("scanner read up to line %d, want it to stop at line 1", lines.max)
	}
	if lines.reads != 2 {
		t.Errorf("scanner read %d lines, want 2", lines.reads)
	}
}

func TestScan_CapWithinLine(t *testing.T) {
	got := Scan(2, 0, StringLines{"aa bb cc dd"}, DefaultPattern)
	if len(got) != 2 || got[1] != (Position{0, 3}) {
		t.Errorf("got %v, want [0:0 0:3]", got)
	}
}

func TestScan_NeverExceedsCap(t *testing.T) {
	line := strings.Repeat("word ", 50)
	lines := make(StringLines, 100)
	for i := range lines {
		lines[i] = line
	}

	for _, limit := range []int{0, 1, 49, 50, 51, 676, 10000} {
		got := Scan(limit, 0, lines, DefaultPattern)
		want := min(limit, 5000)
		if len(got) != want {
			t.Errorf("Scan(%d) returned %d candidates, want %d", limit, len(got), want)
		}
	}
}

func TestScan_NoCandidates(t *testing.T) {
	lines := newCountingLines("", "  ", "- + =", "a b")
	if got := Scan(676, 0, lines, DefaultPattern); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
	if lines.reads != 4 {
		t.Errorf("expected every line to be scanned, got %d reads", lines.reads)
	}
}

func TestCompilePattern(t *testing.T) {
	p, err := CompilePattern(`[A-Z]\w+`)
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}
	got := Scan(10, 0, StringLines{"type Foo struct { Bar int }"}, p)
	if len(got) != 2 || got[0].Character != 5 || got[1].Character != 18 {
		t.Errorf("got %v", got)
	}

	if _, err := CompilePattern(`(`); err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		cursor, count, r   int
		wantStart, wantEnd int
	}{
		{"small document", 3, 10, 10000, 0, 10},
		{"clipped at start", 5, 100000, 10000, 0, 10005},
		{"clipped at end", 95000, 100000, 10000, 85000, 100000},
		{"centered", 50000, 100000, 10000, 40000, 60000},
		{"exactly radius from end", 90000, 100000, 10000, 80000, 100000},
		{"empty document", 0, 0, 10, 0, 0},
		{"cursor past end", 50, 10, 3, 6, 10},
		{"zero radius", 4, 10, 0, 4, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := Window(tc.cursor, tc.count, tc.r)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Errorf("Window(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tc.cursor, tc.count, tc.r, start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func BenchmarkScan(b *testing.B) {
	lines := make(StringLines, 20000)
	for i := range lines {
		lines[i] = "the quick brown fox jumps over the lazy dog"
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Scan(DefaultLabelSpace().Len(), 0, lines, DefaultPattern)
	}
}
