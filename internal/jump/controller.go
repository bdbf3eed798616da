package jump

import (
	"io"

	"charm.land/log/v2"
	"github.com/google/uuid"
)

// Phase is the externally visible state of the controller.
type Phase int

const (
	// PhaseIdle means no session is active and keys pass through.
	PhaseIdle Phase = iota
	// PhaseBound means labels are shown and the first label key is awaited.
	PhaseBound
	// PhaseAwaitingSecond means one label key has been typed.
	PhaseAwaitingSecond
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBound:
		return "bound"
	case PhaseAwaitingSecond:
		return "awaiting-second"
	}
	return "unknown"
}

// KeyResult describes what HandleKey did with a keystroke.
type KeyResult int

const (
	// KeyPassthrough: no session was active, the key belongs to the editor.
	KeyPassthrough KeyResult = iota
	// KeyPending: the first label character was stored.
	KeyPending
	// KeyJumped: the label resolved and the cursor moved.
	KeyJumped
	// KeyCancelled: the key ended the session without moving the cursor.
	KeyCancelled
)

func (r KeyResult) String() string {
	switch r {
	case KeyPassthrough:
		return "passthrough"
	case KeyPending:
		return "pending"
	case KeyJumped:
		return "jumped"
	case KeyCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	Space   *LabelSpace
	Pattern Pattern
	Radius  int
	Logger  *log.Logger
}

// sessionState is either bound or awaitingSecond; an idle controller has no
// session at all.
type sessionState interface {
	phase() Phase
}

type bound struct{}

func (bound) phase() Phase { return PhaseBound }

type awaitingSecond struct {
	first rune
}

func (awaitingSecond) phase() Phase { return PhaseAwaitingSecond }

type session struct {
	id       string
	bindings []Binding
	state    sessionState
}

// Controller runs jump sessions for one editor. It is not safe for
// concurrent use; the host serialises events.
type Controller struct {
	host    Host
	overlay Overlay
	space   *LabelSpace
	pattern Pattern
	radius  int
	logger  *log.Logger

	session *session
}

// NewController creates an idle controller.
func NewController(host Host, overlay Overlay, opts Options) *Controller {
	c := &Controller{
		host:    host,
		overlay: overlay,
		space:   opts.Space,
		pattern: opts.Pattern,
		radius:  opts.Radius,
		logger:  opts.Logger,
	}
	if c.space == nil {
		c.space = DefaultLabelSpace()
	}
	if c.pattern == nil {
		c.pattern = DefaultPattern
	}
	if c.radius <= 0 {
		c.radius = DefaultScanRadius
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Enter starts a jump session. An active session is torn down first so no
// overlay or binding from it survives.
func (c *Controller) Enter() {
	if c.session != nil {
		c.logger.Debug("jump retriggered", "session", c.session.id)
		c.overlay.ClearOverlays()
		c.session = nil
	}

	start, end := Window(c.host.CursorLine(), c.host.LineCount(), c.radius)
	candidates := Scan(c.space.Len(), start, windowLines{view: c.host, start: start, end: end}, c.pattern)
	bindings := Bind(c.space.Labels(), candidates)

	c.session = &session{
		id:       uuid.NewString(),
		bindings: bindings,
		state:    bound{},
	}
	for _, b := range bindings {
		c.overlay.RenderOverlay(b.Position, b.Label)
	}
	c.host.SetModeFlag(true)

	c.logger.Debug("jump entered",
		"session", c.session.id,
		"window", [2]int{start, end},
		"bindings", len(bindings))
}

// Exit cancels the active session, if any.
func (c *Controller) Exit() {
	if c.session == nil {
		return
	}
	c.logger.Debug("jump exited", "session", c.session.id)
	c.teardown()
}

// HandleKey feeds one keystroke event to the controller. text is the
// literal text the key produced; only its first ASCII letter matters.
// Events without a letter cancel the session.
func (c *Controller) HandleKey(text string) KeyResult {
	if c.session == nil {
		return KeyPassthrough
	}

	r, ok := firstLetter(text)
	if !ok {
		c.logger.Debug("jump cancelled by key", "session", c.session.id, "text", text)
		c.teardown()
		return KeyCancelled
	}

	switch st := c.session.state.(type) {
	case bound:
		c.session.state = awaitingSecond{first: r}
		return KeyPending

	case awaitingSecond:
		label := string([]rune{st.first, r})
		pos, err := Resolve(c.space, c.session.bindings, label)
		if err != nil {
			c.logger.Debug("jump label unresolved", "session", c.session.id, "err", err)
			c.teardown()
			return KeyCancelled
		}

		c.logger.Debug("jump resolved", "session", c.session.id, "label", label, "pos", pos)
		c.overlay.ClearOverlays()
		c.host.SetCursor(pos)
		c.host.RevealPosition(pos)
		c.session = nil
		c.host.SetModeFlag(false)
		return KeyJumped
	}

	c.teardown()
	return KeyCancelled
}

func (c *Controller) teardown() {
	c.overlay.ClearOverlays()
	c.session = nil
	c.host.SetModeFlag(false)
}

// Active reports whether a session is in progress.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	if c.session == nil {
		return PhaseIdle
	}
	return c.session.state.phase()
}

// Pending returns the first label character when one has been typed.
func (c *Controller) Pending() (rune, bool) {
	if c.session == nil {
		return 0, false
	}
	st, ok := c.session.state.(awaitingSecond)
	if !ok {
		return 0, false
	}
	return st.first, true
}

// Bindings returns the bindings of the active session.
func (c *Controller) Bindings() []Binding {
	if c.session == nil {
		return nil
	}
	return c.session.bindings
}

// SessionID returns the ID of the active session, or "" when idle.
func (c *Controller) SessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.id
}

// LabelSpace returns the label space the controller binds from.
func (c *Controller) LabelSpace() *LabelSpace {
	return c.space
}

// firstLetter returns the first ASCII letter of text, lowercased.
func firstLetter(text string) (rune, bool) {
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			return r, true
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A'), true
		}
	}
	return 0, false
}
