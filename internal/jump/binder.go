package jump

import (
	"errors"
	"fmt"
)

// ErrLabelNotFound is returned when a label does not address a binding.
var ErrLabelNotFound = errors.New("jump: label not bound")

// Binding pairs a label with the candidate position it selects.
type Binding struct {
	Label    string
	Position Position
}

// Bind pairs candidates[i] with labels[i]. Candidates beyond the number of
// labels are dropped.
func Bind(labels []string, candidates []Position) []Binding {
	n := min(len(labels), len(candidates))
	bindings := make([]Binding, n)
	for i := 0; i < n; i++ {
		bindings[i] = Binding{Label: labels[i], Position: candidates[i]}
	}
	return bindings
}

// Resolve returns the position bound to label. The label's index in space
// selects the binding directly; a label outside the alphabet, or one whose
// slot lies past the end of bindings, yields ErrLabelNotFound.
func Resolve(space *LabelSpace, bindings []Binding, label string) (Position, error) {
	idx, ok := space.Index(label)
	if !ok {
		return Position{}, fmt.Errorf("%w: %q is not a label", ErrLabelNotFound, label)
	}
	if idx >= len(bindings) {
		return Position{}, fmt.Errorf("%w: %q (slot %d of %d)", ErrLabelNotFound, label, idx, len(bindings))
	}
	return bindings[idx].Position, nil
}
