//go:build windows

package terminal

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procReadConsoleInput = kernel32.NewProc("ReadConsoleInputW")
)

const keyEventType = 0x0001

// Virtual keycodes for the keys the dashboard handles.
const (
	vkBack   = 0x08
	vkTab    = 0x09
	vkReturn = 0x0d
	vkEscape = 0x1b
	vkPrior  = 0x21
	vkNext   = 0x22
	vkEnd    = 0x23
	vkHome   = 0x24
	vkLeft   = 0x25
	vkUp     = 0x26
	vkRight  = 0x27
	vkDown   = 0x28
)

// inputRecord mirrors INPUT_RECORD; the event payload is decoded per
// eventType.
type inputRecord struct {
	eventType uint16
	_         uint16
	event     [16]byte
}

// keyEventRecord mirrors KEY_EVENT_RECORD.
type keyEventRecord struct {
	keyDown         int32
	repeatCount     uint16
	virtualKeyCode  uint16
	virtualScanCode uint16
	unicodeChar     uint16
	controlKeyState uint32
}

// consoleBackend reads key-event records through the Windows console
// API. Special keys arrive as discrete virtual keycodes, so the
// escape-sequence timing ambiguity of byte-stream ttys does not exist
// on this path. Output goes through VT processing so the ANSI writer
// works unchanged.
type consoleBackend struct {
	in       windows.Handle
	out      windows.Handle
	outFile  *os.File
	savedIn  uint32
	savedOut uint32
	active   bool
}

func newBackend() Backend {
	return &consoleBackend{outFile: os.Stdout}
}

func (b *consoleBackend) Init() error {
	in := windows.Handle(os.Stdin.Fd())
	out := windows.Handle(os.Stdout.Fd())

	var inMode, outMode uint32
	if err := windows.GetConsoleMode(in, &inMode); err != nil {
		return ErrNotTerminal
	}
	if err := windows.GetConsoleMode(out, &outMode); err != nil {
		return ErrNotTerminal
	}

	raw := inMode &^ (windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT)
	if err := windows.SetConsoleMode(in, raw); err != nil {
		return fmt.Errorf("set console input mode: %w", err)
	}
	if err := windows.SetConsoleMode(out, outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		windows.SetConsoleMode(in, inMode)
		return fmt.Errorf("set console output mode: %w", err)
	}

	b.in, b.out = in, out
	b.savedIn, b.savedOut = inMode, outMode
	b.active = true
	return nil
}

func (b *consoleBackend) Fini() error {
	if !b.active {
		return nil
	}
	b.active = false

	errIn := windows.SetConsoleMode(b.in, b.savedIn)
	errOut := windows.SetConsoleMode(b.out, b.savedOut)
	if errIn != nil {
		return fmt.Errorf("restore console input mode: %w", errIn)
	}
	if errOut != nil {
		return fmt.Errorf("restore console output mode: %w", errOut)
	}
	return nil
}

func (b *consoleBackend) Size() (int, int) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(b.out, &info); err != nil {
		return 80, 24
	}
	return int(info.Window.Right-info.Window.Left) + 1, int(info.Window.Bottom-info.Window.Top) + 1
}

func (b *consoleBackend) Poll(timeout time.Duration) (Event, error) {
	deadline := time.Now().Add(timeout)

	for {
		wait := time.Until(deadline)
		if wait < 0 {
			wait = 0
		}

		status, err := windows.WaitForSingleObject(b.in, uint32(wait/time.Millisecond))
		if err != nil {
			return Event{}, fmt.Errorf("wait console input: %w", err)
		}
		if status != windows.WAIT_OBJECT_0 {
			return Event{Key: KeyTimeout}, nil
		}

		rec, err := b.readRecord()
		if err != nil {
			return Event{}, err
		}
		if ev, ok := translateRecord(rec); ok {
			return ev, nil
		}
		// Key release, modifier-only press, or non-key record: the
		// handle may stay signaled, so loop back to the deadline check.
	}
}

func (b *consoleBackend) Write(p []byte) (int, error) {
	return b.outFile.Write(p)
}

// readRecord pulls one input record; nil means a record the decoder
// does not care about (mouse, focus, buffer resize events).
func (b *consoleBackend) readRecord() (*keyEventRecord, error) {
	var rec inputRecord
	var n uint32
	r1, _, err := procReadConsoleInput.Call(
		uintptr(b.in),
		uintptr(unsafe.Pointer(&rec)),
		1,
		uintptr(unsafe.Pointer(&n)),
	)
	if r1 == 0 {
		return nil, fmt.Errorf("read console input: %w", err)
	}
	if n == 0 || rec.eventType != keyEventType {
		return nil, nil
	}
	return (*keyEventRecord)(unsafe.Pointer(&rec.event)), nil
}

// translateRecord maps a key-down record to an Event. Releases and
// modifier-only presses report ok=false.
func translateRecord(rec *keyEventRecord) (Event, bool) {
	if rec == nil || rec.keyDown == 0 {
		return Event{}, false
	}

	switch rec.virtualKeyCode {
	case vkUp:
		return Event{Key: KeyUp}, true
	case vkDown:
		return Event{Key: KeyDown}, true
	case vkLeft:
		return Event{Key: KeyLeft}, true
	case vkRight:
		return Event{Key: KeyRight}, true
	case vkPrior:
		return Event{Key: KeyPageUp}, true
	case vkNext:
		return Event{Key: KeyPageDown}, true
	case vkHome:
		return Event{Key: KeyHome}, true
	case vkEnd:
		return Event{Key: KeyEnd}, true
	case vkReturn:
		return Event{Key: KeyEnter}, true
	case vkTab:
		return Event{Key: KeyTab}, true
	case vkEscape:
		return Event{Key: KeyEscape}, true
	case vkBack:
		return Event{Key: KeyBackspace}, true
	}

	ch := rune(rec.unicodeChar)
	switch {
	case ch == 0:
		return Event{}, false
	case ch >= '0' && ch <= '9':
		return Event{Key: KeyDigit, Rune: ch, Digit: int(ch - '0')}, true
	case ch < 0x20:
		return Event{Key: KeyCtrl, Ctrl: byte(ch)}, true
	case ch == 0x7f:
		return Event{Key: KeyBackspace}, true
	default:
		return Event{Key: KeyRune, Rune: ch}, true
	}
}
