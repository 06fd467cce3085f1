package thread

import (
	"fmt"
	"log/slog"
)

const DefaultHighlightColor = "tan"

type StateKind int

const (
	Idle StateKind = iota
	Highlighted
)

// State is the navigator's current highlight. Target is only meaningful
// when Kind is Highlighted.
type State struct {
	Kind   StateKind
	Target int
}

func (s State) String() string {
	if s.Kind == Highlighted {
		return fmt.Sprintf("highlighted(%d)", s.Target)
	}
	return "idle"
}

// Navigator highlights and scrolls to at most one comment at a time.
type Navigator struct {
	reg     *Registry
	surface Surface
	color   string
	logger  *slog.Logger
	state   State
}

func NewNavigator(reg *Registry, surface Surface, color string, logger *slog.Logger) *Navigator {
	if surface == nil {
		surface = nopSurface{}
	}
	if color == "" {
		color = DefaultHighlightColor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		reg:     reg,
		surface: surface,
		color:   color,
		logger:  logger.With("component", "navigator"),
	}
}

func (n *Navigator) State() State {
	return n.state
}

// Activate clears every highlight, then highlights and scrolls to id if it
// is a registered comment.
func (n *Navigator) Activate(id int) State {
	n.clearAll()

	rec, ok := n.reg.Lookup(id)
	if !ok {
		n.logger.Debug("activation skipped", "id", id, "error", ErrUnresolvedTarget)
		n.state = State{Kind: Idle}
		return n.state
	}

	if err := n.surface.Highlight(rec.Row, n.color); err != nil {
		n.logger.Warn("error highlighting comment", "id", id, "error", err)
	}
	if err := n.surface.ScrollIntoView(rec.Row); err != nil {
		n.logger.Warn("error scrolling to comment", "id", id, "error", err)
	}

	n.state = State{Kind: Highlighted, Target: id}
	return n.state
}

func (n *Navigator) clearAll() {
	if hc, ok := n.surface.(HighlightClearer); ok {
		rows := make([]Row, len(n.reg.records))
		for i, rec := range n.reg.records {
			rows[i] = rec.Row
		}
		if err := hc.ClearHighlights(rows); err != nil {
			n.logger.Warn("error clearing highlights", "error", err)
		}
		return
	}

	for _, rec := range n.reg.records {
		if err := n.surface.ClearHighlight(rec.Row); err != nil {
			n.logger.Warn("error clearing highlight", "id", rec.ID, "error", err)
		}
	}
}

// Event is the input event delivered to a link.
type Event struct {
	defaultPrevented bool
}

func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Link is a synthesized navigation link bound to a navigator.
type Link struct {
	Label    string
	Href     string
	TargetID int
	nav      *Navigator
}

// Click suppresses the event's default navigation and activates the
// link's target.
func (l *Link) Click(ev *Event) State {
	if ev != nil {
		ev.PreventDefault()
	}
	return l.nav.Activate(l.TargetID)
}
