package render

import "github.com/lixenwraith/termdeck/terminal"

// Region indices for the fixed dashboard frame.
const (
	regionHeader = iota
	regionSidebar
	regionContent
	regionFooter
	regionCount
)

// cache remembers the last-pushed fingerprint per region and the
// terminal size they were composed for. Zero value is invalid, which
// forces the first paint to draw everything.
type cache struct {
	fp    [regionCount]uint64
	cols  int
	rows  int
	valid bool
}

// FNV-1a, inlined to keep the per-frame hash loop allocation-free.
const (
	fnvOffset64 = 14695981039346656037
	fnvPrime64  = 1099511628211
)

// hashRect fingerprints the wxh rect at x,y of a row-major cell
// buffer. Every field that affects visible output feeds the hash.
func hashRect(cells []terminal.Cell, stride, x, y, w, h int) uint64 {
	fp := uint64(fnvOffset64)
	for row := 0; row < h; row++ {
		base := (y+row)*stride + x
		if base < 0 || base+w > len(cells) {
			continue
		}
		for col := 0; col < w; col++ {
			c := cells[base+col]

			r := uint32(c.Rune)
			fp = (fp ^ uint64(r&0xff)) * fnvPrime64
			fp = (fp ^ uint64((r>>8)&0xff)) * fnvPrime64
			fp = (fp ^ uint64((r>>16)&0xff)) * fnvPrime64

			fp = (fp ^ uint64(c.Fg.R)) * fnvPrime64
			fp = (fp ^ uint64(c.Fg.G)) * fnvPrime64
			fp = (fp ^ uint64(c.Fg.B)) * fnvPrime64
			fp = (fp ^ uint64(c.Bg.R)) * fnvPrime64
			fp = (fp ^ uint64(c.Bg.G)) * fnvPrime64
			fp = (fp ^ uint64(c.Bg.B)) * fnvPrime64
			fp = (fp ^ uint64(c.Attrs)) * fnvPrime64
		}
	}
	return fp
}
