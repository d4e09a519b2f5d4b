package terminal

import (
	"io"
	"os"
	"sync"
	"time"
)

// Terminal provides raw-mode lifecycle, key input, and cell output for
// a single interactive session. Init and Fini bracket the session;
// Fini restores the terminal exactly once no matter how many times it
// runs, which is the one guarantee callers must be able to lean on
// even when unwinding from a failure.
type Terminal interface {
	// Init enters raw mode, switches to the alternate screen, and
	// hides the cursor. Fails with ErrNotTerminal when stdin is not
	// an interactive terminal.
	Init() error

	// Fini restores terminal state. Safe to call multiple times; only
	// the first call restores.
	Fini() error

	// Size returns current terminal dimensions. Synchronous; callers
	// poll it to detect resizes.
	Size() (cols, rows int)

	// Poll returns the next key event, waiting at most timeout.
	Poll(timeout time.Duration) (Event, error)

	// Blit writes the wxh rectangle at x,y from a row-major cell
	// buffer with the given stride.
	Blit(cells []Cell, stride, x, y, w, h int)

	// Clear erases the screen to the given background.
	Clear(bg RGB)

	// Flush drains buffered output to the terminal.
	Flush() error

	// ColorMode returns the detected color capability.
	ColorMode() ColorMode
}

type term struct {
	backend Backend
	paint   *painter

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on the platform backend.
func New() Terminal {
	return NewWithBackend(newBackend())
}

// NewWithBackend wires an explicit backend. Tests use this with fakes.
func NewWithBackend(b Backend) Terminal {
	return &term{
		backend: b,
		paint:   newPainter(b, DetectColorMode()),
	}
}

func (t *term) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)
	t.backend.Write(csiAutoWrapOff)
	t.paint.clear(RGB{})

	t.initialized = true
	return nil
}

func (t *term) Fini() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	// Mark before restoring so a second Fini can never restore twice.
	t.finalized = true

	t.backend.Write(csiCursorShow)
	t.backend.Write(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alt screen so the main
	// buffer gets it back.
	t.backend.Write(csiAutoWrapOn)
	t.backend.Write(csiSGR0)

	return t.backend.Fini()
}

func (t *term) Size() (int, int) {
	return t.backend.Size()
}

func (t *term) Poll(timeout time.Duration) (Event, error) {
	return t.backend.Poll(timeout)
}

func (t *term) Blit(cells []Cell, stride, x, y, w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.paint.blit(cells, stride, x, y, w, h)
}

func (t *term) Clear(bg RGB) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.paint.clear(bg)
}

func (t *term) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	return t.paint.flush()
}

func (t *term) ColorMode() ColorMode {
	return t.paint.colorMode
}

// EmergencyReset writes the terminal back to a usable state. Call from
// panic recovery when the normal Fini path cannot be trusted; escape
// sequences restore the screen and resetTerminalMode restores cooked
// input.
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	resetTerminalMode()
}
