// Package server serves leap editors over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/leap/internal/app"
	"github.com/Gaurav-Gosain/leap/internal/buffer"
	"github.com/Gaurav-Gosain/leap/internal/config"
	"github.com/Gaurav-Gosain/leap/internal/input"
	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/overlay"
	"github.com/charmbracelet/ssh"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	// File is opened for every session. Sessions edit their own copy and
	// saving writes back to it; an empty File gives each session a scratch
	// buffer.
	File   string
	Config *config.UserConfig
	Logger *log.Logger
}

// sharedState is built once per server and read by every session.
type sharedState struct {
	cfg    *SSHServerConfig
	space  *jump.LabelSpace
	glyphs *overlay.GlyphCache
	logger *log.Logger
}

// StartSSHServer initializes and runs the SSH server until ctx is done.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.Config == nil {
		cfg.Config = config.DefaultConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hostKeyPath, err := hostKeyPath(cfg)
	if err != nil {
		return err
	}

	app.SetInputHandler(input.HandleInput)
	app.SetActionRunner(input.RunAction)

	space := jump.DefaultLabelSpace()
	state := &sharedState{
		cfg:    cfg,
		space:  space,
		glyphs: overlay.NewGlyphCache(space.Labels(), overlay.ThemePalette()),
		logger: logger.WithPrefix("ssh"),
	}

	// Create SSH server with middleware
	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			// Bubble Tea middleware for interactive sessions
			bubbletea.Middleware(state.teaHandler),
			// Logging middleware for connection tracking
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		state.logger.Info("starting SSH server", "addr", server.Addr, "file", cfg.File)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("SSH server error: %w", err)
		}
	}

	state.logger.Info("shutting down SSH server")
	return server.Shutdown(context.WithoutCancel(ctx))
}

// hostKeyPath returns the configured key path or ~/.ssh/leap_host_key.
func hostKeyPath(cfg *SSHServerConfig) (string, error) {
	if cfg.KeyPath != "" {
		return cfg.KeyPath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh", "leap_host_key"), nil
}

// teaHandler creates an editor for each SSH session
func (s *sharedState) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, active := sshSession.Pty()
	if !active {
		wish.Fatalln(sshSession, "leap needs a terminal, connect with ssh -t")
		return nil, nil
	}

	editor, err := s.newEditor(sshSession.User())
	if err != nil {
		s.logger.Error("failed to open editor", "user", sshSession.User(), "err", err)
		wish.Fatalln(sshSession, err)
		return nil, nil
	}
	editor.Width = pty.Window.Width
	editor.Height = pty.Window.Height

	go func() {
		<-sshSession.Context().Done()
		if err := editor.Close(); err != nil {
			s.logger.Warn("closing editor", "err", err)
		}
	}()

	return editor, nil
}

// newEditor loads the served file into a fresh document and wraps it in an
// editor sharing the server's label space and glyphs.
func (s *sharedState) newEditor(user string) (*app.Editor, error) {
	doc := buffer.New(s.cfg.File)
	if err := doc.Load(); err != nil {
		return nil, err
	}
	return app.NewEditor(app.EditorOptions{
		Doc:    doc,
		Config: s.cfg.Config,
		Space:  s.space,
		Glyphs: s.glyphs,
		Logger: s.logger.With("user", user),
	})
}
