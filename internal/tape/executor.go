package tape

import (
	"errors"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// ErrExpectation is wrapped by every failed Expect command.
var ErrExpectation = errors.New("expectation failed")

// Executor is the editor surface a script drives.
type Executor interface {
	// Dispatch delivers a message as if it came from the terminal.
	Dispatch(msg tea.Msg)
	// RunAction runs a named action regardless of key bindings.
	RunAction(action string) error
	CursorPosition() (line, col int)
	JumpActive() bool
	LineText(i int) string
}

// CommandExecutor executes parsed commands against an Executor.
type CommandExecutor struct {
	target Executor
}

// NewCommandExecutor returns an executor bound to target.
func NewCommandExecutor(target Executor) *CommandExecutor {
	return &CommandExecutor{target: target}
}

// Execute runs a single command. Sleep is a no-op here; callers own timing.
func (e *CommandExecutor) Execute(cmd *Command) error {
	switch cmd.Type {
	case CommandType_Sleep:
		return nil

	case CommandType_Jump:
		return e.target.RunAction("jump")

	case CommandType_JumpExit:
		return e.target.RunAction("jump_exit")

	case CommandType_Action:
		if len(cmd.Args) == 0 {
			return fmt.Errorf("line %d: Action without a name", cmd.Line)
		}
		return e.target.RunAction(cmd.Args[0])

	case CommandType_ExpectCursor:
		return e.expectCursor(cmd)

	case CommandType_ExpectMode:
		return e.expectMode(cmd)

	case CommandType_ExpectLine:
		return e.expectLine(cmd)
	}

	msgs, err := CommandMessages(cmd)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		e.target.Dispatch(msg)
	}
	return nil
}

func (e *CommandExecutor) expectCursor(cmd *Command) error {
	if len(cmd.Args) != 2 {
		return fmt.Errorf("line %d: ExpectCursor needs a line and a column", cmd.Line)
	}
	wantLine, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return fmt.Errorf("line %d: %w", cmd.Line, err)
	}
	wantCol, err := strconv.Atoi(cmd.Args[1])
	if err != nil {
		return fmt.Errorf("line %d: %w", cmd.Line, err)
	}

	line, col := e.target.CursorPosition()
	if line != wantLine || col != wantCol {
		return fmt.Errorf("%w: line %d: cursor at %d:%d, want %d:%d",
			ErrExpectation, cmd.Line, line, col, wantLine, wantCol)
	}
	return nil
}

func (e *CommandExecutor) expectMode(cmd *Command) error {
	if len(cmd.Args) != 1 {
		return fmt.Errorf("line %d: ExpectMode needs a mode", cmd.Line)
	}
	mode := "edit"
	if e.target.JumpActive() {
		mode = "jump"
	}
	if mode != cmd.Args[0] {
		return fmt.Errorf("%w: line %d: mode %s, want %s", ErrExpectation, cmd.Line, mode, cmd.Args[0])
	}
	return nil
}

func (e *CommandExecutor) expectLine(cmd *Command) error {
	if len(cmd.Args) != 2 {
		return fmt.Errorf("line %d: ExpectLine needs a line and text", cmd.Line)
	}
	n, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return fmt.Errorf("line %d: %w", cmd.Line, err)
	}
	if got := e.target.LineText(n); got != cmd.Args[1] {
		return fmt.Errorf("%w: line %d: line %d is %q, want %q", ErrExpectation, cmd.Line, n, got, cmd.Args[1])
	}
	return nil
}
