package jump

import (
	"errors"
	"testing"
)

func TestBind_PairsInOrder(t *testing.T) {
	labels := GenerateLabels("ab")
	candidates := []Position{{0, 0}, {0, 4}, {1, 0}, {1, 4}}

	bindings := Bind(labels, candidates)
	if len(bindings) != 4 {
		t.Fatalf("got %d bindings, want 4", len(bindings))
	}
	for i, b := range bindings {
		if b.Label != labels[i] || b.Position != candidates[i] {
			t.Errorf("binding %d = %+v, want {%s %v}", i, b, labels[i], candidates[i])
		}
	}
}

func TestBind_DropsExcessCandidates(t *testing.T) {
	space, _ := NewLabelSpace("ab")
	candidates := []Position{{0, 0}, {0, 4}, {1, 0}, {1, 4}, {2, 0}}

	bindings := Bind(space.Labels(), candidates)
	if len(bindings) != 4 {
		t.Fatalf("got %d bindings, want 4", len(bindings))
	}
	for _, label := range space.Labels() {
		pos, err := Resolve(space, bindings, label)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", label, err)
		}
		if pos == (Position{2, 0}) {
			t.Errorf("label %q resolved to the dropped candidate", label)
		}
	}
}

func TestBind_FewerCandidatesThanLabels(t *testing.T) {
	bindings := Bind(DefaultLabelSpace().Labels(), []Position{{3, 1}})
	if len(bindings) != 1 || bindings[0].Label != "aa" {
		t.Errorf("got %+v, want single aa binding", bindings)
	}
	if got := Bind(nil, []Position{{0, 0}}); len(got) != 0 {
		t.Errorf("Bind with no labels = %+v, want empty", got)
	}
}

func TestResolve_RecoversEveryCandidate(t *testing.T) {
	space := DefaultLabelSpace()
	candidates := make([]Position, 700)
	for i := range candidates {
		candidates[i] = Position{Line: i / 7, Character: (i % 7) * 3}
	}

	bindings := Bind(space.Labels(), candidates)
	n := min(space.Len(), len(candidates))
	for i := 0; i < n; i++ {
		label := space.Labels()[i]
		pos, err := Resolve(space, bindings, label)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", label, err)
		}
		if pos != candidates[i] {
			t.Fatalf("Resolve(%q) = %v, want %v", label, pos, candidates[i])
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	space := DefaultLabelSpace()
	bindings := Bind(space.Labels(), []Position{{0, 0}, {0, 4}, {1, 0}})

	tests := []struct {
		name  string
		label string
	}{
		{"slot past binding set", "ad"},
		{"far slot", "xq"},
		{"outside alphabet", "a1"},
		{"too short", "a"},
		{"too long", "aab"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(space, bindings, tc.label)
			if !errors.Is(err, ErrLabelNotFound) {
				t.Errorf("Resolve(%q) error = %v, want ErrLabelNotFound", tc.label, err)
			}
		})
	}
}

func TestResolve_EmptyBindings(t *testing.T) {
	_, err := Resolve(DefaultLabelSpace(), nil, "aa")
	if !errors.Is(err, ErrLabelNotFound) {
		t.Errorf("error = %v, want ErrLabelNotFound", err)
	}
}
