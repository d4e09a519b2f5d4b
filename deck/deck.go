// Package deck runs the dashboard session: it owns the terminal, the
// navigation state, and the renderer, and turns key events into
// navigation transitions or dispatched actions. The loop is
// single-threaded; dispatch blocks it for the duration of the action.
package deck

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/termdeck/logging"
	"github.com/lixenwraith/termdeck/logging/events"
	"github.com/lixenwraith/termdeck/menu"
	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/terminal"
	"github.com/lixenwraith/termdeck/terminal/tui"
)

// pollTimeout bounds each key wait so the footer clock stays live and
// resizes are noticed promptly.
const pollTimeout = 150 * time.Millisecond

const ctrlC = 0x03

// Config adjusts optional deck behavior. The zero value works.
type Config struct {
	Title       string
	Theme       tui.Theme
	Dispatcher  Dispatcher
	PollTimeout time.Duration

	// Clock overrides the footer clock source. Tests pin it.
	Clock func() time.Time
}

// Deck drives one dashboard session over a terminal.
type Deck struct {
	term     terminal.Terminal
	state    *menu.State
	rend     *render.Renderer
	dispatch Dispatcher
	poll     time.Duration
	title    string
	find     finder
}

// New builds a deck over term for the given sections. Section
// validation errors surface here, before the terminal is touched.
func New(term terminal.Terminal, sections []menu.Section, cfg Config) (*Deck, error) {
	state, err := menu.NewState(sections)
	if err != nil {
		return nil, err
	}

	if cfg.Title == "" {
		cfg.Title = "termdeck"
	}
	if cfg.Theme == (tui.Theme{}) {
		cfg.Theme = tui.DefaultTheme
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = &CommandDispatcher{Size: term.Size}
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = pollTimeout
	}

	rend := render.New(term, cfg.Theme, cfg.Title)
	if cfg.Clock != nil {
		rend.SetClock(cfg.Clock)
	}

	return &Deck{
		term:     term,
		state:    state,
		rend:     rend,
		dispatch: cfg.Dispatcher,
		poll:     cfg.PollTimeout,
		title:    cfg.Title,
	}, nil
}

// State exposes the navigation state for callers building richer
// shells around the loop.
func (d *Deck) State() *menu.State { return d.state }

// Run drives the session: terminal acquisition, first paint, the
// poll/translate/render loop, and restoration. The terminal is
// restored exactly once on every exit path, panics included.
func (d *Deck) Run(ctx context.Context) (err error) {
	if err := d.term.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	// Restoration failures are logged, never returned: they must not
	// mask the reason the loop exited.
	defer func() {
		if ferr := d.term.Fini(); ferr != nil {
			logging.Error(fmt.Errorf("terminal restore: %w", ferr))
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			if ferr := d.term.Fini(); ferr != nil {
				logging.Error(fmt.Errorf("terminal restore: %w", ferr))
			}
			events.App.Panic(r)
			err = fmt.Errorf("deck panic: %v", r)
		}
	}()

	cols, rows := d.term.Size()
	d.state.UpdateSize(cols, rows)
	events.App.Start(cols, rows, d.title)

	if err := d.rend.Render(d.state, true); err != nil {
		return fmt.Errorf("first paint: %w", err)
	}

	return d.loop(ctx)
}

func (d *Deck) loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			events.App.Stop("interrupt")
			return nil
		}

		ev, err := d.term.Poll(d.poll)
		if err != nil {
			events.App.Stop("input error")
			return fmt.Errorf("input: %w", err)
		}

		force := d.checkResize()

		if ev.Key != terminal.KeyTimeout {
			if d.handleKey(ctx, ev) {
				events.App.Stop("quit")
				return nil
			}
		}

		if err := d.rend.Render(d.state, force); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
}

// checkResize polls the terminal size once per iteration. The
// renderer invalidates its own cache on size change too; the force
// flag keeps the full repaint on the same iteration the size moved.
func (d *Deck) checkResize() bool {
	cols, rows := d.term.Size()
	if !d.state.UpdateSize(cols, rows) {
		return false
	}
	events.App.Resize(cols, rows)
	return true
}

func (d *Deck) handleKey(ctx context.Context, ev terminal.Event) (quit bool) {
	if d.find.active && d.handleFindKey(ev) {
		return false
	}

	switch ev.Key {
	case terminal.KeyCtrl:
		if ev.Ctrl == ctrlC {
			return true
		}

	case terminal.KeyRune:
		switch ev.Rune {
		case 'q':
			return true
		case '/':
			if !d.state.InSubmenu() {
				d.startFind()
			}
		}

	case terminal.KeyDown:
		if d.state.Down() {
			d.selectionChanged()
		}

	case terminal.KeyUp:
		if d.state.Up() {
			d.selectionChanged()
		}

	case terminal.KeyRight:
		if d.state.Right() {
			d.selectionChanged()
		}

	case terminal.KeyLeft:
		if d.state.InSubmenu() {
			d.closeSubmenu()
			return false
		}
		changed, atStart := d.state.Left()
		if changed {
			d.selectionChanged()
		} else if atStart {
			return true
		}

	case terminal.KeyEscape:
		if d.state.InSubmenu() {
			d.closeSubmenu()
		}

	case terminal.KeyHome:
		if d.state.First() {
			d.selectionChanged()
		}

	case terminal.KeyEnd:
		if d.state.Last() {
			d.selectionChanged()
		}

	case terminal.KeyPageUp:
		d.rend.ScrollBy(-d.rend.Page())

	case terminal.KeyPageDown:
		d.rend.ScrollBy(d.rend.Page())

	case terminal.KeyDigit:
		return d.quickSelect(ctx, ev.Digit)

	case terminal.KeyEnter:
		return d.activate(ctx, d.state.CurrentItem())
	}
	return false
}

// handleFindKey consumes a key while the finder owns input. A false
// return means the finder closed and the key still wants normal
// handling.
func (d *Deck) handleFindKey(ev terminal.Event) bool {
	switch ev.Key {
	case terminal.KeyRune, terminal.KeyDigit:
		d.find.append(ev.Rune)

	case terminal.KeyBackspace:
		if !d.find.backspace() {
			d.stopFind()
			return true
		}

	case terminal.KeyEnter:
		d.jumpToMatch()
		d.stopFind()
		return true

	case terminal.KeyEscape:
		events.Filter.Cleared()
		d.stopFind()
		return true

	case terminal.KeyNone:
		return true

	default:
		// Directional keys close the finder, then act normally.
		d.stopFind()
		return false
	}

	d.refreshFind()
	return true
}

func (d *Deck) startFind() {
	d.find.start()
	d.rend.SetFind(true, "", "")
}

func (d *Deck) stopFind() {
	d.find.stop()
	d.rend.SetFind(false, "", "")
}

func (d *Deck) refreshFind() {
	events.Filter.Append(d.find.pattern)
	preview := ""
	if t, ok := bestMatch(d.state.Sections(), d.find.pattern); ok {
		preview = fmt.Sprintf("%s (%s)", t.label, d.state.Sections()[t.section].Label)
	}
	d.rend.SetFind(true, d.find.pattern, preview)
}

func (d *Deck) jumpToMatch() {
	t, ok := bestMatch(d.state.Sections(), d.find.pattern)
	if !ok {
		return
	}
	events.Filter.Match(d.find.pattern, t.label, t.item)
	if d.state.JumpTo(t.section, t.item) {
		d.selectionChanged()
	}
}

// selectionChanged clears per-selection presentation after the cursor
// moves: scroll position, dispatched output, and the status message.
func (d *Deck) selectionChanged() {
	d.rend.ResetScroll()
	d.rend.SetResult(nil)
	d.rend.SetStatus("")
	events.Nav.Move(d.state.SectionIndex(), d.state.ItemIndex())
}

func (d *Deck) closeSubmenu() {
	title := d.state.SubmenuTitle()
	if d.state.ExitSubmenu() {
		events.Nav.SubmenuExit(title)
		d.selectionChanged()
	}
}

// quickSelect moves the cursor to the digit's item and activates it,
// matching what Enter on that item would do.
func (d *Deck) quickSelect(ctx context.Context, digit int) bool {
	if digit < 0 || digit >= d.state.ItemCount() {
		return false
	}
	if d.state.QuickSelect(digit) {
		events.Nav.QuickSelect(digit, digit)
		d.selectionChanged()
	}
	return d.activate(ctx, d.state.CurrentItem())
}

// activate runs the selected item: quit items end the loop, submenu
// items open their list, command items dispatch synchronously.
// Disabled items are inert.
func (d *Deck) activate(ctx context.Context, item menu.Item) bool {
	switch {
	case item.Disabled:
		return false

	case item.Quit:
		return true

	case len(item.Sub) > 0:
		if d.state.EnterSubmenu(item.Label, item.Sub) {
			events.Nav.SubmenuEnter(item.Label, len(item.Sub))
			d.rend.ResetScroll()
			d.rend.SetResult(nil)
			d.rend.SetStatus("")
		}
		return false

	case item.Command != "":
		return d.runAction(ctx, item)
	}
	return false
}

// runAction dispatches the item's command and shows the outcome. The
// dispatch is synchronous; the loop blocks until it finishes.
func (d *Deck) runAction(ctx context.Context, item menu.Item) bool {
	// Results render in the content pane, which a submenu list would
	// cover. Close it first.
	if d.state.InSubmenu() {
		d.closeSubmenu()
	}

	events.Action.Run(item.ID, item.Command)
	d.rend.SetStatus(item.Label + ": running")
	d.rend.Render(d.state, false)

	content, exit, err := d.dispatch.Dispatch(ctx, item)

	if content != nil {
		d.rend.SetResult(content)
		d.rend.ResetScroll()
	}
	if err != nil {
		events.Action.Error(err)
		logging.Error(fmt.Errorf("%s: %w", item.ID, err))
		if content == nil {
			d.rend.SetResult(menu.Text(err.Error()))
			d.rend.ResetScroll()
		}
		d.rend.SetStatus(item.Label + ": failed")
		return false
	}

	events.Action.Result(item.ID, len(menu.Normalize(content)))
	d.rend.SetStatus(item.Label + ": ok")
	return exit
}
