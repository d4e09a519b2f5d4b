package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// Attr represents text attributes (bitmask).
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrReverse   Attr = 1 << 4
)

// Cell represents a single terminal cell.
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// painter serializes cell rectangles into ANSI output with coalesced
// SGR state. Dirty-region tracking lives above in the render cache;
// the painter writes whatever it is handed.
type painter struct {
	writer    *bufio.Writer
	colorMode ColorMode

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

func newPainter(w io.Writer, mode ColorMode) *painter {
	return &painter{
		writer:    bufio.NewWriterSize(w, 32768),
		colorMode: mode,
	}
}

// blit writes the wxh rectangle anchored at x,y from a row-major cell
// buffer with the given stride.
func (p *painter) blit(cells []Cell, stride, x, y, w, h int) {
	if w <= 0 || h <= 0 || stride <= 0 {
		return
	}

	out := p.writer
	for row := 0; row < h; row++ {
		base := (y+row)*stride + x
		if base < 0 || base+w > len(cells) {
			continue
		}

		writeCursorPos(out, x, y+row)
		for col := 0; col < w; {
			c := cells[base+col]
			p.writeStyle(out, c.Fg, c.Bg, c.Attrs)

			r := c.Rune
			if r == 0 {
				r = ' '
			}
			if r < 0x80 {
				out.WriteByte(byte(r))
				col++
				continue
			}

			// A wide rune covers its own cell plus the next; the
			// terminal advances the cursor by two, so skip the
			// continuation cell. At the rect edge fall back to a
			// space to avoid spilling past the clip.
			cw := runewidth.RuneWidth(r)
			if cw == 2 && col == w-1 {
				out.WriteByte(' ')
				col++
				continue
			}
			out.WriteRune(r)
			if cw < 1 {
				cw = 1
			}
			col += cw
		}
	}
}

// flush terminates the frame with an attribute reset and drains the
// buffered writer.
func (p *painter) flush() error {
	p.writer.Write(csiSGR0)
	p.lastValid = false
	return p.writer.Flush()
}

// clear erases the whole screen to the given background.
func (p *painter) clear(bg RGB) error {
	out := p.writer
	out.Write(csiSGR0)
	p.writeBg(out, bg)
	p.lastValid = false
	out.Write(csiClear)
	return out.Flush()
}

// writeStyle emits a single combined SGR sequence when style changed
// since the previous cell.
func (p *painter) writeStyle(out *bufio.Writer, fg, bg RGB, attr Attr) {
	fgChanged := !p.lastValid || fg != p.lastFg
	bgChanged := !p.lastValid || bg != p.lastBg
	attrChanged := !p.lastValid || attr != p.lastAttr

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	if attrChanged {
		// Attributes require a reset-and-rebuild sequence.
		out.Write(csi)
		out.WriteByte('0')
		if attr&AttrBold != 0 {
			out.Write([]byte(";1"))
		}
		if attr&AttrDim != 0 {
			out.Write([]byte(";2"))
		}
		if attr&AttrItalic != 0 {
			out.Write([]byte(";3"))
		}
		if attr&AttrUnderline != 0 {
			out.Write([]byte(";4"))
		}
		if attr&AttrReverse != 0 {
			out.Write([]byte(";7"))
		}
		p.writeFgInline(out, fg)
		p.writeBgInline(out, bg)
		out.WriteByte('m')
	} else if fgChanged && bgChanged {
		out.Write(csi)
		p.writeFgInline(out, fg)
		p.writeBgInline(out, bg)
		out.WriteByte('m')
	} else if fgChanged {
		p.writeFg(out, fg)
	} else {
		p.writeBg(out, bg)
	}

	p.lastFg = fg
	p.lastBg = bg
	p.lastAttr = attr
	p.lastValid = true
}

// writeFgInline writes fg color parameters (no CSI prefix, no 'm'
// suffix).
func (p *painter) writeFgInline(out *bufio.Writer, fg RGB) {
	out.WriteByte(';')
	if p.colorMode == ColorModeTrueColor {
		out.Write([]byte("38;2;"))
		writeInt(out, int(fg.R))
		out.WriteByte(';')
		writeInt(out, int(fg.G))
		out.WriteByte(';')
		writeInt(out, int(fg.B))
	} else {
		out.Write([]byte("38;5;"))
		writeInt(out, int(RGBTo256(fg)))
	}
}

// writeBgInline writes bg color parameters (no CSI prefix, no 'm'
// suffix).
func (p *painter) writeBgInline(out *bufio.Writer, bg RGB) {
	out.WriteByte(';')
	if p.colorMode == ColorModeTrueColor {
		out.Write([]byte("48;2;"))
		writeInt(out, int(bg.R))
		out.WriteByte(';')
		writeInt(out, int(bg.G))
		out.WriteByte(';')
		writeInt(out, int(bg.B))
	} else {
		out.Write([]byte("48;5;"))
		writeInt(out, int(RGBTo256(bg)))
	}
}

// writeFg writes a complete fg color sequence.
func (p *painter) writeFg(out *bufio.Writer, fg RGB) {
	if p.colorMode == ColorModeTrueColor {
		out.Write(csiFgRGB)
		writeInt(out, int(fg.R))
		out.WriteByte(';')
		writeInt(out, int(fg.G))
		out.WriteByte(';')
		writeInt(out, int(fg.B))
		out.WriteByte('m')
	} else {
		out.Write(csiFg256)
		writeInt(out, int(RGBTo256(fg)))
		out.WriteByte('m')
	}
}

// writeBg writes a complete bg color sequence.
func (p *painter) writeBg(out *bufio.Writer, bg RGB) {
	if p.colorMode == ColorModeTrueColor {
		out.Write(csiBgRGB)
		writeInt(out, int(bg.R))
		out.WriteByte(';')
		writeInt(out, int(bg.G))
		out.WriteByte(';')
		writeInt(out, int(bg.B))
		out.WriteByte('m')
	} else {
		out.Write(csiBg256)
		writeInt(out, int(RGBTo256(bg)))
		out.WriteByte('m')
	}
}
