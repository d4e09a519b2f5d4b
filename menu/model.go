package menu

import "strings"

// Item is a single selectable entry. Zero or more of Command, Sub and
// Quit may be set; the event loop decides what activation means. An
// item with none of them is display-only.
type Item struct {
	ID       string
	Label    string
	Desc     string  // one-line summary shown next to the label
	Content  Content // detail pane payload
	Command  string  // shell command run on activation
	Sub      []Item  // opens as a submenu on activation
	Quit     bool    // activation terminates the dashboard
	Disabled bool
}

// Section is an ordered group of items shown in the sidebar. Sections
// are supplied once per session and treated as read-only afterwards.
type Section struct {
	ID    string
	Label string
	Icon  rune // optional sidebar marker, 0 for none
	Items []Item
}

// Content is the detail payload of an item: either a single text
// block or a pre-split sequence of lines. Both forms normalize to the
// same display-line sequence, so consumers never branch on the
// concrete type.
type Content interface {
	displayLines() []string
}

// Text is a content block; embedded newlines split it into lines.
type Text string

// Lines is pre-split content; elements containing newlines are split
// further during normalization.
type Lines []string

func (t Text) displayLines() []string {
	return splitLines(string(t))
}

func (l Lines) displayLines() []string {
	out := make([]string, 0, len(l))
	for _, s := range l {
		out = append(out, splitLines(s)...)
	}
	return out
}

// Normalize converts any content form into ordered display lines.
// Nil content yields nil.
func Normalize(c Content) []string {
	if c == nil {
		return nil
	}
	return c.displayLines()
}

// splitLines breaks on \n and strips the trailing \r that CRLF
// sources leave on each line.
func splitLines(s string) []string {
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
