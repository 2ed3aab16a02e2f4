package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Flap       key.Binding
	Dive       key.Binding
	Restart    key.Binding
	Share      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Dive, k.Restart, k.Share, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap, k.Dive, k.Restart},
		{k.Share, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys("up", "w", "k", " "),
			key.WithHelp("↑/space", "flap"),
		),
		Dive: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "dive"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "restart"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share card"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	case key.Matches(msg, k.Flap):
		return core.ActionFlap
	case key.Matches(msg, k.Dive):
		return core.ActionDive
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Share):
		return core.ActionShare
	}
	return core.ActionNone
}

// Terminals report a held key as one press, a pause of the keyboard's
// repeat delay, then a press every repeat interval. There is no release
// event.
const (
	// DefaultRepeatWindow covers the repeat interval of common terminals.
	DefaultRepeatWindow = 90 * time.Millisecond

	// The range of common repeat delays. A second press of the same key
	// this long after the first might be the first repeat.
	firstRepeatMin = 200 * time.Millisecond
	firstRepeatMax = 700 * time.Millisecond
)

// Debouncer turns terminal autorepeat back into single presses.
//
// A press of the same action within the window of the previous one is a
// repeat, and every repeat extends the window. A second press arriving after
// a typical repeat delay is held back for one window: if another press
// follows right behind it the key is being held and both are dropped,
// otherwise Due releases it.
type Debouncer struct {
	window   time.Duration
	firstMin time.Duration
	firstMax time.Duration

	last    core.Action
	seen    time.Time
	held    bool
	pending core.Action
}

// NewDebouncer creates a debouncer with the given repeat window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:   window,
		firstMin: firstRepeatMin,
		firstMax: firstRepeatMax,
	}
}

// Press records a press of a at now and returns the actions to apply right
// away: the press itself when it is fresh, preceded by a held back press
// that a different action released.
func (d *Debouncer) Press(a core.Action, now time.Time) []core.Action {
	var out []core.Action
	same := a == d.last && !d.seen.IsZero()
	gap := now.Sub(d.seen)

	if d.pending != core.ActionNone {
		p := d.pending
		d.pending = core.ActionNone
		if same && gap < d.window {
			d.held = true
			d.seen = now
			return nil
		}
		out = append(out, p)
	}

	switch {
	case same && gap < d.window:
		d.held = true
	case same && !d.held && gap >= d.firstMin && gap < d.firstMax:
		d.pending = a
	default:
		d.held = false
		out = append(out, a)
	}

	d.last = a
	d.seen = now
	return out
}

// Due returns the held back press once a full window passed without a
// repeat behind it.
func (d *Debouncer) Due(now time.Time) (core.Action, bool) {
	if d.pending == core.ActionNone || now.Sub(d.seen) < d.window {
		return core.ActionNone, false
	}
	a := d.pending
	d.pending = core.ActionNone
	return a, true
}

// Reset forgets every press.
func (d *Debouncer) Reset() {
	*d = Debouncer{window: d.window, firstMin: d.firstMin, firstMax: d.firstMax}
}
