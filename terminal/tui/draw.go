package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termdeck/terminal"
)

// Text renders a string at position, clipping at the region edge.
// Placement is display-width aware: a wide rune consumes two columns
// and its continuation cell is zeroed so the painter skips it.
func (r Region) Text(x, y int, s string, fg, bg terminal.RGB, attr terminal.Attr) {
	if y < 0 || y >= r.H {
		return
	}
	col := x
	for _, ch := range s {
		if col >= r.W {
			break
		}
		cw := runewidth.RuneWidth(ch)
		if cw < 1 {
			cw = 1
		}
		if cw == 2 && col == r.W-1 {
			// No room for the second half at the clip edge.
			r.Cell(col, y, ' ', fg, bg, attr)
			break
		}
		if col >= 0 {
			r.Cell(col, y, ch, fg, bg, attr)
			if cw == 2 {
				r.Cell(col+1, y, 0, fg, bg, attr)
			}
		}
		col += cw
	}
}

// TextRight renders text right-aligned on a row.
func (r Region) TextRight(y int, s string, fg, bg terminal.RGB, attr terminal.Attr) {
	r.Text(r.W-DisplayWidth(s), y, s, fg, bg, attr)
}

// TextCenter renders text centered on a row.
func (r Region) TextCenter(y int, s string, fg, bg terminal.RGB, attr terminal.Attr) {
	r.Text((r.W-DisplayWidth(s))/2, y, s, fg, bg, attr)
}

// HLine draws a horizontal rule across the region width at row y.
func (r Region) HLine(y int, fg, bg terminal.RGB) {
	if y < 0 || y >= r.H {
		return
	}
	for x := 0; x < r.W; x++ {
		r.Cell(x, y, '─', fg, bg, terminal.AttrNone)
	}
}

// VLine draws a vertical rule across the region height at column x.
func (r Region) VLine(x int, fg, bg terminal.RGB) {
	if x < 0 || x >= r.W {
		return
	}
	for y := 0; y < r.H; y++ {
		r.Cell(x, y, '│', fg, bg, terminal.AttrNone)
	}
}
