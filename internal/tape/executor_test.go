package tape

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

// recordingExecutor is a minimal editor double: it records key strings and
// actions and lets tests set the state expectations read.
type recordingExecutor struct {
	keys    []string
	actions []string
	line    int
	col     int
	jumping bool
	lines   []string
}

func (r *recordingExecutor) Dispatch(msg tea.Msg) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		r.keys = append(r.keys, key.String())
	}
}

func (r *recordingExecutor) RunAction(action string) error {
	if action == "explode" {
		return errors.New("unknown action explode")
	}
	r.actions = append(r.actions, action)
	switch action {
	case "jump":
		r.jumping = true
	case "jump_exit":
		r.jumping = false
	}
	return nil
}

func (r *recordingExecutor) CursorPosition() (int, int) { return r.line, r.col }
func (r *recordingExecutor) JumpActive() bool          { return r.jumping }

func (r *recordingExecutor) LineText(i int) string {
	if i < 0 || i >= len(r.lines) {
		return ""
	}
	return r.lines[i]
}

func TestKeyPressStrings(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`Type "ab "`, []string{"a", "b", "space"}},
		{`Type "A\n"`, []string{"A", "enter"}},
		{`Enter`, []string{"enter"}},
		{`Escape`, []string{"esc"}},
		{`Down 2`, []string{"down", "down"}},
		{`PageDown`, []string{"pgdown"}},
		{`Space`, []string{"space"}},
		{`Ctrl+G`, []string{"ctrl+g"}},
		{`Alt+j`, []string{"alt+j"}},
		{`Ctrl+Home`, []string{"ctrl+home"}},
		{`Label ab`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmds, errs := ParseFile(tt.input)
			if len(errs) > 0 {
				t.Fatalf("parse errors: %v", errs)
			}
			rec := &recordingExecutor{}
			if err := NewCommandExecutor(rec).Execute(&cmds[0]); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if strings.Join(rec.keys, ",") != strings.Join(tt.want, ",") {
				t.Errorf("keys = %q, want %q", rec.keys, tt.want)
			}
		})
	}
}

func TestKeyPressUnknown(t *testing.T) {
	if _, err := KeyPress("Banana"); err == nil {
		t.Error("expected an error for a multi-letter unknown key")
	}
	if _, err := ComboPress("Ctrl+Banana"); err == nil {
		t.Error("expected an error for an unknown combo key")
	}
}

func TestExecutorActionsAndExpectations(t *testing.T) {
	rec := &recordingExecutor{line: 2, col: 5, lines: []string{"foo", "bar"}}
	exec := NewCommandExecutor(rec)

	run := func(src string) error {
		t.Helper()
		cmds, errs := ParseFile(src)
		if len(errs) > 0 {
			t.Fatalf("parse errors: %v", errs)
		}
		return exec.Execute(&cmds[0])
	}

	if err := run("Jump"); err != nil {
		t.Fatal(err)
	}
	if err := run("ExpectMode jump"); err != nil {
		t.Errorf("ExpectMode jump: %v", err)
	}
	if err := run("JumpExit"); err != nil {
		t.Fatal(err)
	}
	if err := run("ExpectMode jump"); !errors.Is(err, ErrExpectation) {
		t.Errorf("ExpectMode after exit = %v, want ErrExpectation", err)
	}
	if err := run("ExpectCursor 2 5"); err != nil {
		t.Errorf("ExpectCursor: %v", err)
	}
	if err := run("ExpectCursor 0 0"); !errors.Is(err, ErrExpectation) {
		t.Errorf("wrong cursor = %v, want ErrExpectation", err)
	}
	if err := run(`ExpectLine 1 "bar"`); err != nil {
		t.Errorf("ExpectLine: %v", err)
	}
	if err := run(`ExpectLine 0 "bar"`); !errors.Is(err, ErrExpectation) {
		t.Errorf("wrong line = %v, want ErrExpectation", err)
	}
	if err := run("Action explode"); err == nil || errors.Is(err, ErrExpectation) {
		t.Errorf("failing action = %v, want a plain error", err)
	}

	if strings.Join(rec.actions, ",") != "jump,jump_exit" {
		t.Errorf("actions = %q", rec.actions)
	}
}

func TestHeadlessRunner(t *testing.T) {
	script := `# exercise the runner
Jump
ExpectMode jump
Sleep 10ms
ExpectCursor 9 9
Down 2
JumpExit
ExpectMode edit
`
	cmds, errs := ParseFile(script)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	rec := &recordingExecutor{}
	runner := NewHeadlessRunner(cmds, rec)
	runner.SetVerbose(true)
	runner.SetNoDelay(true)

	err := runner.Run(context.Background())
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("Run = %v, want the failed cursor check", err)
	}

	stats := runner.Stats()
	if stats.ExecutedCount != len(cmds) {
		t.Errorf("executed %d of %d commands; a failed check should not stop the script",
			stats.ExecutedCount, len(cmds))
	}
	if stats.FailedChecks != 1 || stats.Success {
		t.Errorf("stats = %+v", stats)
	}
	if len(rec.keys) != 2 {
		t.Errorf("keys = %q", rec.keys)
	}
	if !strings.Contains(runner.GetOutput(), "ExpectCursor 9 9") {
		t.Errorf("verbose output missing command trace:\n%s", runner.GetOutput())
	}
}

func TestHeadlessRunnerStopsOnError(t *testing.T) {
	cmds, _ := ParseFile("Action explode\nJump\n")
	rec := &recordingExecutor{}
	runner := NewHeadlessRunner(cmds, rec)

	if err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected an error")
	}
	if len(rec.actions) != 0 {
		t.Errorf("commands after the error ran: %q", rec.actions)
	}
}

func TestHeadlessRunnerCancel(t *testing.T) {
	cmds, _ := ParseFile("Sleep 10s\nJump\n")
	rec := &recordingExecutor{}
	runner := NewHeadlessRunner(cmds, rec)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := runner.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Sleep ignored cancellation")
	}
	if rec.jumping {
		t.Error("commands after cancellation ran")
	}
}

func TestPlayer(t *testing.T) {
	cmds, _ := ParseFile("Jump\nLabel ab\n")
	p := NewPlayer(cmds)

	if p.IsFinished() {
		t.Fatal("new player should not be finished")
	}
	if p.CommandStr() != "Jump" {
		t.Errorf("CommandStr = %q", p.CommandStr())
	}
	p.Advance()
	if p.Progress() != 50 {
		t.Errorf("Progress = %d", p.Progress())
	}
	if cmd := p.NextCommand(); cmd == nil || cmd.Type != CommandType_Label {
		t.Errorf("NextCommand = %v", cmd)
	}
	p.Advance()
	if !p.IsFinished() || p.NextCommand() != nil {
		t.Error("player should be finished")
	}
	p.Reset()
	if p.IsFinished() || p.CurrentIndex() != 0 {
		t.Error("Reset should rewind")
	}

	if !NewPlayer(nil).IsFinished() {
		t.Error("empty player should be finished")
	}
}
