package tape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// HeadlessRunner runs a tape script against an Executor without rendering a
// TUI. It honours Sleep and @delay modifiers unless delays are disabled and
// keeps a log of what it did.
type HeadlessRunner struct {
	commands   []Command
	executor   *CommandExecutor
	output     strings.Builder
	outputLock sync.Mutex
	verbose    bool
	noDelay    bool
	stats      ScriptExecutionStats
}

// ScriptExecutionStats contains statistics about a script execution
type ScriptExecutionStats struct {
	TotalCommands int
	ExecutedCount int
	FailedChecks  int
	ExecutedTime  time.Duration
	StartTime     time.Time
	EndTime       time.Time
	Success       bool
	ErrorMessage  string
}

// NewHeadlessRunner creates a runner that drives target with commands
func NewHeadlessRunner(commands []Command, target Executor) *HeadlessRunner {
	return &HeadlessRunner{
		commands: commands,
		executor: NewCommandExecutor(target),
		stats:    ScriptExecutionStats{TotalCommands: len(commands)},
	}
}

// SetVerbose enables verbose output logging
func (hr *HeadlessRunner) SetVerbose(verbose bool) {
	hr.verbose = verbose
}

// SetNoDelay makes Sleep and @delay modifiers return immediately
func (hr *HeadlessRunner) SetNoDelay(noDelay bool) {
	hr.noDelay = noDelay
}

// Run executes all commands in order. A failed expectation is recorded and
// the script continues; any other error stops it. The returned error joins
// every failure.
func (hr *HeadlessRunner) Run(ctx context.Context) error {
	hr.stats.StartTime = time.Now()
	defer func() {
		hr.stats.EndTime = time.Now()
		hr.stats.ExecutedTime = hr.stats.EndTime.Sub(hr.stats.StartTime)
	}()

	hr.logf("Starting headless script execution with %d commands\n", len(hr.commands))

	var failures []error
	for i := range hr.commands {
		cmd := &hr.commands[i]

		if err := ctx.Err(); err != nil {
			return hr.finish(append(failures, err))
		}

		if hr.verbose {
			hr.logf("[%d/%d] %s\n", i+1, len(hr.commands), cmd.String())
		}

		if cmd.Type == CommandType_Sleep {
			if err := hr.sleep(ctx, cmd.Delay); err != nil {
				return hr.finish(append(failures, err))
			}
			hr.stats.ExecutedCount++
			continue
		}

		err := hr.executor.Execute(cmd)
		hr.stats.ExecutedCount++
		switch {
		case errors.Is(err, ErrExpectation):
			hr.stats.FailedChecks++
			hr.logf("  ✗ %v\n", err)
			failures = append(failures, err)
		case err != nil:
			hr.logf("  ✗ %v\n", err)
			return hr.finish(append(failures, err))
		case cmd.Type.IsAssertion() && hr.verbose:
			hr.logf("  ✓ ok\n")
		}

		if err := hr.sleep(ctx, cmd.Delay); err != nil {
			return hr.finish(append(failures, err))
		}
	}

	return hr.finish(failures)
}

func (hr *HeadlessRunner) finish(failures []error) error {
	err := errors.Join(failures...)
	hr.stats.Success = err == nil
	if err != nil {
		hr.stats.ErrorMessage = err.Error()
	}
	hr.logf("Executed %d/%d commands, %d failed checks\n",
		hr.stats.ExecutedCount, hr.stats.TotalCommands, hr.stats.FailedChecks)
	return err
}

func (hr *HeadlessRunner) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 || hr.noDelay {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Stats returns execution statistics
func (hr *HeadlessRunner) Stats() ScriptExecutionStats {
	return hr.stats
}

// GetOutput returns the captured output
func (hr *HeadlessRunner) GetOutput() string {
	hr.outputLock.Lock()
	defer hr.outputLock.Unlock()
	return hr.output.String()
}

// WriteOutput writes the output to a writer
func (hr *HeadlessRunner) WriteOutput(w io.Writer) error {
	hr.outputLock.Lock()
	defer hr.outputLock.Unlock()
	_, err := io.WriteString(w, hr.output.String())
	return err
}

// logf logs a message to the internal output buffer
func (hr *HeadlessRunner) logf(format string, args ...any) {
	hr.outputLock.Lock()
	defer hr.outputLock.Unlock()
	fmt.Fprintf(&hr.output, format, args...)
}
