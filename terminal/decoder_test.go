package terminal

import (
	"testing"
	"time"
	"unicode/utf8"
)

// scriptedReader replays canned chunks, one per read call. An empty
// chunk models a poll window expiring with no input.
type scriptedReader struct {
	chunks [][]byte
}

func (s *scriptedReader) read(timeout time.Duration) ([]byte, error) {
	if len(s.chunks) == 0 {
		return nil, nil
	}
	c := s.chunks[0]
	s.chunks = s.chunks[1:]
	return c, nil
}

func decodeOne(t *testing.T, chunks ...[]byte) Event {
	t.Helper()
	d := newDecoder((&scriptedReader{chunks: chunks}).read)
	ev, err := d.next(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}
	return ev
}

func TestDecodeSingleBytes(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Event
	}{
		{"lowercase letter", []byte{'a'}, Event{Key: KeyRune, Rune: 'a'}},
		{"uppercase letter", []byte{'G'}, Event{Key: KeyRune, Rune: 'G'}},
		{"digit", []byte{'7'}, Event{Key: KeyDigit, Rune: '7', Digit: 7}},
		{"digit zero", []byte{'0'}, Event{Key: KeyDigit, Rune: '0', Digit: 0}},
		{"carriage return", []byte{0x0d}, Event{Key: KeyEnter}},
		{"line feed", []byte{0x0a}, Event{Key: KeyEnter}},
		{"tab", []byte{0x09}, Event{Key: KeyTab}},
		{"backspace", []byte{0x08}, Event{Key: KeyBackspace}},
		{"delete", []byte{0x7f}, Event{Key: KeyBackspace}},
		{"ctrl-c", []byte{0x03}, Event{Key: KeyCtrl, Ctrl: 0x03}},
		{"ctrl-l", []byte{0x0c}, Event{Key: KeyCtrl, Ctrl: 0x0c}},
		{"space", []byte{' '}, Event{Key: KeyRune, Rune: ' '}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeOne(t, tt.input)
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDecodeEscapeSequences(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Key
	}{
		{"arrow up", []byte("\x1b[A"), KeyUp},
		{"arrow down", []byte("\x1b[B"), KeyDown},
		{"arrow right", []byte("\x1b[C"), KeyRight},
		{"arrow left", []byte("\x1b[D"), KeyLeft},
		{"home", []byte("\x1b[H"), KeyHome},
		{"end", []byte("\x1b[F"), KeyEnd},
		{"home vt", []byte("\x1b[1~"), KeyHome},
		{"end vt", []byte("\x1b[4~"), KeyEnd},
		{"page up", []byte("\x1b[5~"), KeyPageUp},
		{"page down", []byte("\x1b[6~"), KeyPageDown},
		{"ss3 up", []byte("\x1bOA"), KeyUp},
		{"ss3 down", []byte("\x1bOB"), KeyDown},
		{"unknown csi", []byte("\x1b[99z"), KeyNone},
		{"unknown ss3", []byte("\x1bOZ"), KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeOne(t, tt.input)
			if got.Key != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got.Key)
			}
		})
	}
}

func TestDecodeSplitSequence(t *testing.T) {
	// The same sequence must decode identically regardless of read
	// boundaries.
	tests := []struct {
		name   string
		chunks [][]byte
		want   Key
	}{
		{"esc then rest", [][]byte{{0x1b}, {'[', 'A'}}, KeyUp},
		{"byte at a time", [][]byte{{0x1b}, {'['}, {'A'}}, KeyUp},
		{"page down split at tilde", [][]byte{{0x1b, '[', '6'}, {'~'}}, KeyPageDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeOne(t, tt.chunks...)
			if got.Key != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got.Key)
			}
		})
	}
}

func TestDecodeLoneEscape(t *testing.T) {
	// ESC with no continuation inside the short window is a
	// standalone Escape key-press.
	got := decodeOne(t, []byte{0x1b}, nil)
	if got.Key != KeyEscape {
		t.Errorf("Expected KeyEscape, got %v", got.Key)
	}
}

func TestDecodeEscapeThenUnrelatedByte(t *testing.T) {
	d := newDecoder((&scriptedReader{chunks: [][]byte{{0x1b, 'x'}}}).read)

	first, err := d.next(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}
	if first.Key != KeyEscape {
		t.Errorf("Expected KeyEscape first, got %v", first.Key)
	}

	second, err := d.next(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}
	if second.Key != KeyRune || second.Rune != 'x' {
		t.Errorf("Expected follower rune 'x', got %+v", second)
	}
}

func TestDecodeUTF8(t *testing.T) {
	tests := []struct {
		name   string
		chunks [][]byte
		want   rune
	}{
		{"two byte rune", [][]byte{[]byte("ü")}, 'ü'},
		{"three byte rune", [][]byte{[]byte("日")}, '日'},
		{"rune split across reads", [][]byte{{0xc3}, {0xbc}}, 'ü'},
		{"invalid byte", [][]byte{{0xff}}, utf8.RuneError},
		{"truncated rune then silence", [][]byte{{0xc3}, nil}, utf8.RuneError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeOne(t, tt.chunks...)
			if got.Key != KeyRune || got.Rune != tt.want {
				t.Errorf("Expected rune %q, got %+v", tt.want, got)
			}
		})
	}
}

func TestDecodeTimeout(t *testing.T) {
	got := decodeOne(t, nil)
	if got.Key != KeyTimeout {
		t.Errorf("Expected KeyTimeout, got %v", got.Key)
	}
}

func TestDecodeTypeahead(t *testing.T) {
	// Multiple events in one read come out one per call, in order.
	d := newDecoder((&scriptedReader{chunks: [][]byte{[]byte("ab\x1b[B")}}).read)

	want := []Event{
		{Key: KeyRune, Rune: 'a'},
		{Key: KeyRune, Rune: 'b'},
		{Key: KeyDown},
	}
	for i, w := range want {
		got, err := d.next(10 * time.Millisecond)
		if err != nil {
			t.Fatalf("next() %d error: %v", i, err)
		}
		if got != w {
			t.Errorf("Event %d: expected %+v, got %+v", i, w, got)
		}
	}
}

func TestDecodeMalformedCSIDoesNotWedge(t *testing.T) {
	// A control byte inside a CSI body abandons the sequence; the
	// stream keeps producing events afterwards.
	d := newDecoder((&scriptedReader{chunks: [][]byte{{0x1b, '[', 0x01, 'q'}}}).read)

	first, err := d.next(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}
	if first.Key != KeyNone {
		t.Errorf("Expected KeyNone for malformed sequence, got %v", first.Key)
	}

	// Remaining bytes still decode.
	for {
		ev, err := d.next(10 * time.Millisecond)
		if err != nil {
			t.Fatalf("next() error: %v", err)
		}
		if ev.Key == KeyRune && ev.Rune == 'q' {
			return
		}
		if ev.Key == KeyTimeout {
			t.Fatal("Stream wedged before producing trailing 'q'")
		}
	}
}

func TestKeyString(t *testing.T) {
	if got := KeyUp.String(); got != "Up" {
		t.Errorf("Expected %q, got %q", "Up", got)
	}
	if got := Key(200).String(); got != "Unknown" {
		t.Errorf("Expected %q, got %q", "Unknown", got)
	}
}
