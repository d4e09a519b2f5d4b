package menu

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    []string
	}{
		{
			name:    "text single line",
			content: Text("all systems nominal"),
			want:    []string{"all systems nominal"},
		},
		{
			name:    "text with embedded newlines",
			content: Text("line one\nline two\nline three"),
			want:    []string{"line one", "line two", "line three"},
		},
		{
			name:    "text with crlf",
			content: Text("windows\r\noutput\r\n"),
			want:    []string{"windows", "output", ""},
		},
		{
			name:    "lines verbatim",
			content: Lines{"first", "second"},
			want:    []string{"first", "second"},
		},
		{
			name:    "lines with embedded newline split further",
			content: Lines{"first\nsecond", "third"},
			want:    []string{"first", "second", "third"},
		},
		{
			name:    "lines with trailing cr",
			content: Lines{"dirty\r", "clean"},
			want:    []string{"dirty", "clean"},
		},
		{
			name:    "nil content",
			content: nil,
			want:    nil,
		},
		{
			name:    "empty text",
			content: Text(""),
			want:    []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%#v) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestNormalizeFormsAgree(t *testing.T) {
	// The same logical content must normalize identically whether it
	// arrives as a block or pre-split.
	block := Text("status: ok\nuptime: 14d\nload: 0.42")
	split := Lines{"status: ok", "uptime: 14d", "load: 0.42"}

	if !reflect.DeepEqual(Normalize(block), Normalize(split)) {
		t.Errorf("Forms disagree: block=%q split=%q", Normalize(block), Normalize(split))
	}
}
