package input

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/tape"
)

func runScript(t *testing.T, text, script string) (*tape.HeadlessRunner, error) {
	t.Helper()
	cmds, errs := tape.ParseFile(script)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	e := newTestEditor(t, text)
	runner := tape.NewHeadlessRunner(cmds, e)
	runner.SetNoDelay(true)
	return runner, runner.Run(context.Background())
}

func TestScript_JumpAndEdit(t *testing.T) {
	script := `
# jump to "baz" and type in front of it
Jump
ExpectMode jump
Label "ac"
ExpectMode edit
ExpectCursor 0 8
Type "new "
ExpectLine 0 "foo bar new baz"

# keys pressed while labels are shown never reach the document
Ctrl+G
Type "1"
ExpectMode edit
ExpectLine 0 "foo bar new baz"

Down 2
End
ExpectCursor 2 5
`
	runner, err := runScript(t, "foo bar baz\nqux\nquux!", script)
	if err != nil {
		t.Fatalf("script failed: %v\n%s", err, runner.GetOutput())
	}
	stats := runner.Stats()
	if !stats.Success || stats.FailedChecks != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestScript_CancelAndActions(t *testing.T) {
	script := `
Jump
Label "a"
JumpExit
ExpectMode edit
ExpectCursor 0 0
Action doc_end
ExpectCursor 1 3
Escape
Jump
Label "ab"
ExpectCursor 0 4
`
	runner, err := runScript(t, "one two\nsix", script)
	if err != nil {
		t.Fatalf("script failed: %v\n%s", err, runner.GetOutput())
	}
}

func TestScript_ReportsFailedExpectations(t *testing.T) {
	script := `
Jump
Label "zz"
ExpectCursor 0 4
ExpectMode jump
ExpectLine 0 "foo bar"
`
	runner, err := runScript(t, "foo bar", script)
	if !errors.Is(err, tape.ErrExpectation) {
		t.Fatalf("err = %v, want an expectation failure", err)
	}
	if got := runner.Stats().FailedChecks; got != 2 {
		t.Errorf("FailedChecks = %d, want 2", got)
	}
}

func TestScript_UnknownActionStops(t *testing.T) {
	script := `
Action fly
Type "x"
`
	runner, err := runScript(t, "", script)
	if err == nil || errors.Is(err, tape.ErrExpectation) {
		t.Fatalf("err = %v, want a hard failure", err)
	}
	if got := runner.Stats().ExecutedCount; got != 1 {
		t.Errorf("ExecutedCount = %d, want 1", got)
	}
}

func BenchmarkJumpRoundTrip(b *testing.B) {
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "alpha beta gamma delta epsilon zeta eta theta"
	}
	e := newTestEditor(b, strings.Join(lines, "\n"))

	for b.Loop() {
		send(e, keyCtrl('g'), keyText("z"), keyText("z"))
		e.SetCursor(jump.Position{})
	}
}
