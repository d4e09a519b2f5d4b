package terminal

import (
	"errors"
	"time"
)

// ErrNotTerminal reports that standard input is not attached to an
// interactive terminal. Callers should fall back to a non-interactive
// mode instead of starting the UI loop.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Backend abstracts platform-specific terminal access. Two
// implementations exist: a termios byte-stream backend for Unix ttys
// (escape sequences disambiguated by timing) and a console-API backend
// for Windows (special keys arrive as discrete keycodes, no
// disambiguation involved). newBackend in each platform file selects
// the implementation at build time.
type Backend interface {
	// Init switches the terminal into raw (non-canonical, no-echo)
	// input mode. Fails with ErrNotTerminal when stdin is not a tty.
	Init() error

	// Fini restores the input mode captured by Init. Repeated calls
	// are tolerated; only the first restores.
	Fini() error

	// Size returns current terminal dimensions in cells.
	Size() (cols, rows int)

	// Poll returns the next key event, waiting at most timeout.
	// KeyTimeout is delivered when no input arrives in the window.
	Poll(timeout time.Duration) (Event, error)

	// Write sends raw bytes to the terminal output.
	Write(p []byte) (int, error)
}
