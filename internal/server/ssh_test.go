package server

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/leap/internal/config"
	"github.com/Gaurav-Gosain/leap/internal/jump"
	"github.com/Gaurav-Gosain/leap/internal/overlay"
)

func newTestState(t *testing.T, file string) *sharedState {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Editor.Watch = false
	space := jump.DefaultLabelSpace()
	return &sharedState{
		cfg:    &SSHServerConfig{File: file, Config: cfg},
		space:  space,
		glyphs: overlay.NewGlyphCache(space.Labels(), overlay.ThemePalette()),
		logger: log.New(io.Discard),
	}
}

func TestHostKeyPath(t *testing.T) {
	got, err := hostKeyPath(&SSHServerConfig{KeyPath: "/tmp/key"})
	if err != nil || got != "/tmp/key" {
		t.Errorf("hostKeyPath = %q, %v", got, err)
	}

	got, err = hostKeyPath(&SSHServerConfig{})
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join(".ssh", "leap_host_key")) {
		t.Errorf("default host key path = %q", got)
	}
}

func TestNewEditor_SessionsAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.txt")
	if err := os.WriteFile(path, []byte("alpha beta\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newTestState(t, path)

	first, err := s.newEditor("ann")
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.newEditor("bob")
	if err != nil {
		t.Fatal(err)
	}

	first.Jump.Enter()
	first.InsertText("x")
	if second.Jump.Active() {
		t.Error("a jump in one session leaked into another")
	}
	if second.Doc.Line(0) != "alpha beta" {
		t.Errorf("second session sees %q", second.Doc.Line(0))
	}
	if first.Jump.LabelSpace() != second.Jump.LabelSpace() {
		t.Error("sessions should share the label space")
	}
}

func TestNewEditor_ScratchBuffer(t *testing.T) {
	s := newTestState(t, "")
	e, err := s.newEditor("anonymous")
	if err != nil {
		t.Fatal(err)
	}
	if e.Doc.Path() != "" || e.Doc.LineCount() != 1 {
		t.Errorf("expected an empty scratch buffer, got %d lines at %q", e.Doc.LineCount(), e.Doc.Path())
	}
}
