package tui

import "github.com/lixenwraith/termdeck/terminal"

// Region is a rectangular window into a shared cell buffer.
// Drawing coordinates are relative to the region origin and clipped
// to its bounds, so callers never index the backing slice directly.
type Region struct {
	Cells  []terminal.Cell
	Stride int // Row width of the underlying buffer
	X, Y   int // Absolute origin in the buffer
	W, H   int
}

// NewRegion wraps a cell slice with bounds.
func NewRegion(cells []terminal.Cell, stride, x, y, w, h int) Region {
	return Region{
		Cells:  cells,
		Stride: stride,
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
	}
}

// Sub returns a nested region relative to the parent, clipped to the
// parent's bounds.
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > r.W {
		w = r.W - x
	}
	if y+h > r.H {
		h = r.H - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	return Region{
		Cells:  r.Cells,
		Stride: r.Stride,
		X:      r.X + x,
		Y:      r.Y + y,
		W:      w,
		H:      h,
	}
}

// Inset shrinks the region by n cells on every side.
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Cell sets a single cell with bounds checking.
func (r Region) Cell(x, y int, ch rune, fg, bg terminal.RGB, attr terminal.Attr) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	absX := r.X + x
	absY := r.Y + y

	if uint(absX) >= uint(r.Stride) {
		return
	}

	idx := absY*r.Stride + absX
	if uint(idx) < uint(len(r.Cells)) {
		r.Cells[idx] = terminal.Cell{Rune: ch, Fg: fg, Bg: bg, Attrs: attr}
	}
}

// Fill paints the whole region with spaces on the given background.
func (r Region) Fill(bg terminal.RGB) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ' ', terminal.RGB{}, bg, terminal.AttrNone)
		}
	}
}

// Clear fills the region with spaces and zero colors.
func (r Region) Clear() {
	r.Fill(terminal.RGB{})
}
