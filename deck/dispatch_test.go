package deck

import (
	"reflect"
	"testing"
)

func TestSplitOutput(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []string
	}{
		{"crlf endings", []byte("a\r\nb\r\n"), []string{"a", "b"}},
		{"blank lines kept", []byte("a\r\n\r\nb\r\n"), []string{"a", "", "b"}},
		{"bare cr keeps rewritten text", []byte("10%\r50%\r100%\n"), []string{"100%"}},
		{"sgr stripped", []byte("\x1b[32mok\x1b[0m\r\n"), []string{"ok"}},
		{"osc title stripped", []byte("\x1b]0;title\x07body\r\n"), []string{"body"}},
		{"empty", nil, nil},
		{"only newlines", []byte("\n\n"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitOutput(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitOutput(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"color run", "\x1b[1;31mred\x1b[0m", "red"},
		{"cursor moves", "\x1b[2Ja\x1b[10;20Hb", "ab"},
		{"osc bel", "\x1b]0;t\x07x", "x"},
		{"osc st", "\x1b]0;t\x1b\\x", "x"},
		{"two byte escape", "a\x1bMb", "ab"},
		{"trailing escape", "a\x1b", "a"},
		{"unterminated csi", "a\x1b[12", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(stripANSI([]byte(tt.in))); got != tt.want {
				t.Errorf("stripANSI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
