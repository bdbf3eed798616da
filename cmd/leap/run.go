package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/leap/internal/app"
	"github.com/Gaurav-Gosain/leap/internal/buffer"
	"github.com/Gaurav-Gosain/leap/internal/config"
	"github.com/Gaurav-Gosain/leap/internal/input"
	"github.com/Gaurav-Gosain/leap/internal/server"
	"github.com/Gaurav-Gosain/leap/internal/tape"
	"github.com/Gaurav-Gosain/leap/internal/theme"
)

// loadConfig reads the user configuration and applies the global flags.
// A broken file is reported and replaced by the defaults.
func loadConfig(logger *log.Logger) *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ThemeName:  themeName,
		ScanRadius: scanRadius,
		NoWatch:    noWatch,
	}, userConfig)

	if err := theme.Initialize(userConfig.Appearance.Theme); err != nil {
		logger.Warn("theme", "err", err)
	}
	return userConfig
}

// newFileLogger returns a logger writing to the log file when --debug is
// set and discarding everything otherwise. The TUI owns the terminal, so
// nothing is logged to stderr while it runs.
func newFileLogger() (*log.Logger, func(), error) {
	if !debugMode {
		return log.New(io.Discard), func() {}, nil
	}

	path, err := config.GetLogPath()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "leap",
	})
	return logger, func() { _ = f.Close() }, nil
}

// newConsoleLogger logs to stderr, for commands without a TUI.
func newConsoleLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "leap",
	})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// startCPUProfile starts profiling when --cpuprofile is set. The returned
// function stops it.
func startCPUProfile(logger *log.Logger) (func(), error) {
	if cpuProfile == "" {
		return func() {}, nil
	}

	f, err := os.Create(cpuProfile)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		if closeErr := f.Close(); closeErr != nil {
			logger.Warn("failed to close CPU profile file", "err", closeErr)
		}
	}, nil
}

// openDocument loads path, or returns an empty unnamed document.
func openDocument(path string) (*buffer.Document, error) {
	if path == "" {
		return buffer.FromString(""), nil
	}
	doc := buffer.New(path)
	if err := doc.Load(); err != nil {
		return nil, err
	}
	return doc, nil
}

// loadScript parses a tape file, joining every syntax error.
func loadScript(path string) ([]tape.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read script: %w", err)
	}
	commands, parseErrs := tape.ParseFile(string(data))
	if len(parseErrs) > 0 {
		errs := make([]error, len(parseErrs))
		for i, msg := range parseErrs {
			errs[i] = errors.New(msg)
		}
		return nil, fmt.Errorf("%s: %w", path, errors.Join(errs...))
	}
	return commands, nil
}

func runLocal(ctx context.Context, path string, line int, scriptPath string) error {
	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig := loadConfig(logger)

	stopProfile, err := startCPUProfile(logger)
	if err != nil {
		return err
	}
	defer stopProfile()

	var script []tape.Command
	if scriptPath != "" {
		if script, err = loadScript(scriptPath); err != nil {
			return err
		}
	}

	doc, err := openDocument(path)
	if err != nil {
		return err
	}

	// Set up the input handler to break circular dependency
	app.SetInputHandler(input.HandleInput)
	app.SetActionRunner(input.RunAction)

	editor, err := app.NewEditor(app.EditorOptions{
		Doc:    doc,
		Config: userConfig,
		Logger: logger,
		Line:   max(line-1, 0),
		Script: script,
	})
	if err != nil {
		return err
	}
	defer editor.Close()

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Info("starting", "file", path, "config", configPath, "version", version)
	}

	p := tea.NewProgram(
		editor,
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("program error: %w", err)
	}

	if len(editor.ScriptErrors) > 0 {
		return fmt.Errorf("script: %w", errors.Join(editor.ScriptErrors...))
	}
	return nil
}

func runSSHServer(ctx context.Context, sshHost, sshPort, sshKeyPath, path string) error {
	logger := newConsoleLogger()
	userConfig := loadConfig(logger)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := &server.SSHServerConfig{
		Host:    sshHost,
		Port:    sshPort,
		KeyPath: sshKeyPath,
		File:    path,
		Config:  userConfig,
		Logger:  logger,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

type playOptions struct {
	script    string
	file      string
	verbose   bool
	withDelay bool
	save      bool
	width     int
	height    int
}

func runPlay(ctx context.Context, opts playOptions) error {
	logger := newConsoleLogger()
	userConfig := loadConfig(logger)
	userConfig.Editor.Watch = false

	script, err := loadScript(opts.script)
	if err != nil {
		return err
	}
	doc, err := openDocument(opts.file)
	if err != nil {
		return err
	}

	app.SetInputHandler(input.HandleInput)
	app.SetActionRunner(input.RunAction)

	editor, err := app.NewEditor(app.EditorOptions{
		Doc:    doc,
		Config: userConfig,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer editor.Close()
	editor.Update(tea.WindowSizeMsg{Width: opts.width, Height: opts.height})

	runner := tape.NewHeadlessRunner(script, editor)
	runner.SetVerbose(opts.verbose)
	runner.SetNoDelay(!opts.withDelay)

	runErr := runner.Run(ctx)
	if opts.verbose {
		if err := runner.WriteOutput(os.Stdout); err != nil {
			return err
		}
	}

	stats := runner.Stats()
	mode := "edit"
	if editor.JumpActive() {
		mode = "jump"
	}
	fmt.Printf("cursor %d:%d  mode %s  %d/%d commands  %d failed checks  %s\n",
		editor.Cursor.Line+1, editor.Cursor.Character+1, mode,
		stats.ExecutedCount, stats.TotalCommands, stats.FailedChecks, stats.ExecutedTime)

	if runErr != nil {
		return runErr
	}
	if opts.save && doc.Dirty() {
		return editor.Save()
	}
	return nil
}
