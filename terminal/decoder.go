package terminal

import (
	"time"
	"unicode/utf8"
)

// escapeTimeout is how long the decoder waits after a lone ESC for
// sequence continuation bytes before reporting a standalone Escape
// key-press. Shorter than any sane poll timeout.
const escapeTimeout = 50 * time.Millisecond

// csiScanLimit bounds terminator scans so corrupt input cannot pin the
// pending buffer forever.
const csiScanLimit = 16

// readFunc reads raw input, blocking at most the given duration.
// An empty result with nil error means the window expired.
type readFunc func(timeout time.Duration) ([]byte, error)

// decoder turns a raw byte stream into key events, one per call.
// Bytes left over from a read (type-ahead, sequences split across
// reads) stay buffered and are consumed by subsequent calls.
type decoder struct {
	read readFunc
	buf  []byte
}

func newDecoder(read readFunc) *decoder {
	return &decoder{read: read, buf: make([]byte, 0, 64)}
}

// next returns exactly one event, waiting at most timeout for initial
// input. A buffered incomplete sequence is given the short escape
// window instead, so disambiguation latency stays bounded regardless
// of the caller's poll interval.
func (d *decoder) next(timeout time.Duration) (Event, error) {
	deadline := time.Now().Add(timeout)

	for {
		if ev, n, ok := parseEvent(d.buf); ok {
			d.consume(n)
			return ev, nil
		}

		wait := time.Until(deadline)
		if len(d.buf) > 0 {
			wait = escapeTimeout
		}
		if wait < 0 {
			wait = 0
		}

		data, err := d.read(wait)
		if err != nil {
			return Event{}, err
		}
		if len(data) > 0 {
			d.buf = append(d.buf, data...)
			continue
		}

		// Window expired.
		if len(d.buf) > 0 {
			return d.flushPending(), nil
		}
		return Event{Key: KeyTimeout}, nil
	}
}

// flushPending resolves a buffered sequence whose continuation never
// arrived. A lone ESC is a standalone Escape key-press; a partial
// UTF-8 rune degrades to the replacement character.
func (d *decoder) flushPending() Event {
	if d.buf[0] == 0x1b {
		d.consume(1)
		return Event{Key: KeyEscape}
	}
	d.consume(1)
	return Event{Key: KeyRune, Rune: utf8.RuneError}
}

// consume drops n parsed bytes from the front of the buffer.
func (d *decoder) consume(n int) {
	if n <= 0 {
		return
	}
	if n >= len(d.buf) {
		d.buf = d.buf[:0]
		return
	}
	copy(d.buf, d.buf[n:])
	d.buf = d.buf[:len(d.buf)-n]
}

// parseEvent parses the first complete event in data. ok=false means
// data is empty or ends mid-sequence and the caller must read more
// bytes or give up via flushPending.
func parseEvent(data []byte) (ev Event, consumed int, ok bool) {
	if len(data) == 0 {
		return Event{}, 0, false
	}
	b := data[0]

	if b == 0x1b {
		return parseEscape(data)
	}

	// Fast path: printable ASCII.
	if b >= 0x20 && b < 0x7f {
		if b >= '0' && b <= '9' {
			return Event{Key: KeyDigit, Rune: rune(b), Digit: int(b - '0')}, 1, true
		}
		return Event{Key: KeyRune, Rune: rune(b)}, 1, true
	}

	if b < 0x20 {
		switch b {
		case 0x0d, 0x0a:
			return Event{Key: KeyEnter}, 1, true
		case 0x09:
			return Event{Key: KeyTab}, 1, true
		case 0x08:
			return Event{Key: KeyBackspace}, 1, true
		default:
			return Event{Key: KeyCtrl, Ctrl: b}, 1, true
		}
	}

	if b == 0x7f {
		return Event{Key: KeyBackspace}, 1, true
	}

	// UTF-8 multibyte. Invalid encodings decode as the replacement
	// rune with width 1, so garbled input shifts through instead of
	// failing the loop.
	if !utf8.FullRune(data) {
		return Event{}, 0, false
	}
	r, size := utf8.DecodeRune(data)
	return Event{Key: KeyRune, Rune: r}, size, true
}

// parseEscape decodes ESC-prefixed input. A lone ESC is ambiguous
// (standalone key vs sequence start) and stays unconsumed; next
// resolves it with the short-window read.
func parseEscape(data []byte) (Event, int, bool) {
	if len(data) < 2 {
		return Event{}, 0, false
	}
	switch data[1] {
	case '[':
		return parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return Event{}, 0, false
		}
		if k, ok := lookupSS3(data[2:3]); ok {
			return Event{Key: k}, 3, true
		}
		return Event{Key: KeyNone}, 3, true
	default:
		// ESC followed by an unrelated byte: standalone Escape; the
		// follower replays on the next call.
		return Event{Key: KeyEscape}, 1, true
	}
}

// parseCSI scans for the sequence terminator and maps the body.
// Unknown but well-formed sequences consume as KeyNone; malformed
// interior bytes abandon the CSI intro rather than wedging the stream.
func parseCSI(data []byte) (Event, int, bool) {
	limit := len(data)
	if limit > csiScanLimit {
		limit = csiScanLimit
	}

	for i := 2; i < limit; i++ {
		b := data[i]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			if k, ok := lookupCSI(data[2 : i+1]); ok {
				return Event{Key: k}, i + 1, true
			}
			return Event{Key: KeyNone}, i + 1, true
		}
		if b < 0x20 || b > 0x7e {
			return Event{Key: KeyNone}, 2, true
		}
	}

	if len(data) >= csiScanLimit {
		return Event{Key: KeyNone}, 2, true
	}
	return Event{}, 0, false
}
