//go:build unix

package terminal

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// unixBackend drives a byte-stream tty: termios raw mode, poll-bounded
// reads, and escape-sequence decoding.
type unixBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	saved *term.State
	dec   *decoder
}

func newBackend() Backend {
	b := &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
	b.dec = newDecoder(b.readTimeout)
	return b
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return ErrNotTerminal
	}
	saved, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	b.saved = saved
	return nil
}

func (b *unixBackend) Fini() error {
	if b.saved == nil {
		return nil
	}
	saved := b.saved
	b.saved = nil
	if err := term.Restore(b.inFd, saved); err != nil {
		return fmt.Errorf("restore terminal mode: %w", err)
	}
	return nil
}

func (b *unixBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

func (b *unixBackend) Poll(timeout time.Duration) (Event, error) {
	return b.dec.next(timeout)
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// readTimeout returns whatever input is available within the window.
// An empty result with nil error means the window expired.
func (b *unixBackend) readTimeout(timeout time.Duration) ([]byte, error) {
	var buf [64]byte
	deadline := time.Now().Add(timeout)

	for {
		ms := int(time.Until(deadline) / time.Millisecond)
		if ms < 0 {
			ms = 0
		}

		fds := []unix.PollFd{{Fd: int32(b.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, ms)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}

		rn, err := unix.Read(b.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}
		if rn == 0 {
			return nil, io.EOF
		}

		out := make([]byte, rn)
		copy(out, buf[:rn])
		return out, nil
	}
}
