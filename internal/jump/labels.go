// Package jump implements the label engine behind leap's jump-to-word mode.
//
// A jump scans a bounded window of lines around the cursor for candidate
// positions, pairs each candidate with a two-letter label in a fixed order,
// and resolves a typed label back to its position. The Controller drives the
// whole exchange as a small state machine on top of the Host and Overlay
// collaborators.
package jump

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultAlphabet is the alphabet labels are drawn from.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// LabelLength is the number of characters in every label.
const LabelLength = 2

// ErrInvalidAlphabet is returned when an alphabet cannot produce a label space.
var ErrInvalidAlphabet = errors.New("jump: invalid alphabet")

// LabelSpace is the ordered, immutable set of labels for one alphabet.
// It is generated once and shared by every jump session.
type LabelSpace struct {
	alphabet string
	labels   []string
	pos      [128]int8 // alphabet position per lowercase ASCII letter, -1 if absent
}

var defaultSpace = mustLabelSpace(DefaultAlphabet)

// DefaultLabelSpace returns the shared a-z label space (676 labels).
func DefaultLabelSpace() *LabelSpace {
	return defaultSpace
}

// NewLabelSpace validates alphabet and generates its labels.
// The alphabet must be non-empty ASCII letters without duplicates; letters
// are folded to lowercase.
func NewLabelSpace(alphabet string) (*LabelSpace, error) {
	if alphabet == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAlphabet)
	}
	alphabet = strings.ToLower(alphabet)

	s := &LabelSpace{alphabet: alphabet}
	for i := range s.pos {
		s.pos[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c < 'a' || c > 'z' {
			return nil, fmt.Errorf("%w: %q is not an ASCII letter", ErrInvalidAlphabet, c)
		}
		if s.pos[c] >= 0 {
			return nil, fmt.Errorf("%w: duplicate letter %q", ErrInvalidAlphabet, c)
		}
		s.pos[c] = int8(i)
	}

	s.labels = GenerateLabels(alphabet)
	return s, nil
}

func mustLabelSpace(alphabet string) *LabelSpace {
	s, err := NewLabelSpace(alphabet)
	if err != nil {
		panic(err)
	}
	return s
}

// GenerateLabels returns every two-character label over alphabet in
// row-major order: for each first character ascending, each second
// character ascending. The Nth candidate of a scan always receives the Nth
// label of this sequence.
func GenerateLabels(alphabet string) []string {
	n := len(alphabet)
	labels := make([]string, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			labels = append(labels, string([]byte{alphabet[i], alphabet[j]}))
		}
	}
	return labels
}

// Alphabet returns the (lowercased) alphabet of the space.
func (s *LabelSpace) Alphabet() string {
	return s.alphabet
}

// Labels returns the ordered labels. Callers must not modify the slice.
func (s *LabelSpace) Labels() []string {
	return s.labels
}

// Len returns the number of labels, alphabet size squared.
func (s *LabelSpace) Len() int {
	return len(s.labels)
}

// Label returns the label at index i.
func (s *LabelSpace) Label(i int) (string, bool) {
	if i < 0 || i >= len(s.labels) {
		return "", false
	}
	return s.labels[i], true
}

// Contains reports whether r is a letter of the alphabet, ignoring case.
func (s *LabelSpace) Contains(r rune) bool {
	return s.position(r) >= 0
}

// Index returns the position of label in the label sequence:
//
//	index = pos(label[0])*n + pos(label[1])
//
// where pos is a letter's position in the alphabet and n the alphabet size.
// For the default alphabet pos(c) is c-'a'. It reports false for labels of
// the wrong length or containing letters outside the alphabet.
func (s *LabelSpace) Index(label string) (int, bool) {
	if len(label) != LabelLength {
		return -1, false
	}
	first := s.position(rune(label[0]))
	second := s.position(rune(label[1]))
	if first < 0 || second < 0 {
		return -1, false
	}
	return first*len(s.alphabet) + second, true
}

func (s *LabelSpace) position(r rune) int {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 0 || r >= rune(len(s.pos)) {
		return -1
	}
	return int(s.pos[r])
}

// LabelIndex computes the index of label within the default label space,
// returning -1 when the label is not part of it.
func LabelIndex(label string) int {
	idx, ok := defaultSpace.Index(label)
	if !ok {
		return -1
	}
	return idx
}
