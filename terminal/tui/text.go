package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the number of terminal columns the string
// occupies. East Asian wide runes count as two.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens a string to at most maxW columns, appending an
// ellipsis when truncation occurs.
func Truncate(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxW, "…")
}

// PadRight pads with trailing spaces to exactly w columns, truncating
// first if the string is too long.
func PadRight(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if DisplayWidth(s) > w {
		s = Truncate(s, w)
	}
	return runewidth.FillRight(s, w)
}

// PadLeft pads with leading spaces to exactly w columns, truncating
// first if the string is too long.
func PadLeft(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if DisplayWidth(s) > w {
		s = Truncate(s, w)
	}
	return runewidth.FillLeft(s, w)
}

// PadCenter centers the string within w columns. Odd leftover space
// goes to the right side.
func PadCenter(s string, w int) string {
	if w <= 0 {
		return ""
	}
	sw := DisplayWidth(s)
	if sw > w {
		return Truncate(s, w)
	}
	left := (w - sw) / 2
	right := w - sw - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// Wrap breaks text into lines of at most width columns at word
// boundaries. A single word wider than the line is hard-truncated
// with an ellipsis; that is the only case where wrapping drops text.
func Wrap(s string, width int) []string {
	if width < 1 {
		return nil
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var line strings.Builder
	lineW := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineW = 0
	}

	for _, word := range words {
		ww := DisplayWidth(word)
		if ww > width {
			if lineW > 0 {
				flush()
			}
			lines = append(lines, Truncate(word, width))
			continue
		}
		switch {
		case lineW == 0:
			line.WriteString(word)
			lineW = ww
		case lineW+1+ww <= width:
			line.WriteByte(' ')
			line.WriteString(word)
			lineW += 1 + ww
		default:
			flush()
			line.WriteString(word)
			lineW = ww
		}
	}
	if lineW > 0 {
		flush()
	}
	return lines
}
