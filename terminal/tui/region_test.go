package tui

import (
	"testing"

	"github.com/lixenwraith/termdeck/terminal"
)

func testRegion(w, h int) Region {
	return NewRegion(make([]terminal.Cell, w*h), w, 0, 0, w, h)
}

func TestSubClipping(t *testing.T) {
	r := testRegion(20, 10)

	tests := []struct {
		name       string
		x, y, w, h int
		wantW      int
		wantH      int
	}{
		{"inside parent", 2, 2, 5, 5, 5, 5},
		{"overflows right", 15, 0, 10, 5, 5, 5},
		{"overflows bottom", 0, 8, 5, 10, 5, 2},
		{"negative origin", -3, -2, 10, 10, 7, 8},
		{"fully outside", 25, 0, 5, 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := r.Sub(tt.x, tt.y, tt.w, tt.h)
			if sub.W != tt.wantW || sub.H != tt.wantH {
				t.Errorf("Sub(%d,%d,%d,%d) = %dx%d, want %dx%d",
					tt.x, tt.y, tt.w, tt.h, sub.W, sub.H, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCellOutOfBoundsIgnored(t *testing.T) {
	r := testRegion(4, 3)
	fg := terminal.RGB{R: 255}

	r.Cell(-1, 0, 'x', fg, terminal.RGB{}, terminal.AttrNone)
	r.Cell(4, 0, 'x', fg, terminal.RGB{}, terminal.AttrNone)
	r.Cell(0, 3, 'x', fg, terminal.RGB{}, terminal.AttrNone)

	for i, c := range r.Cells {
		if c.Rune != 0 {
			t.Errorf("cell %d modified by out-of-bounds write: %q", i, c.Rune)
		}
	}
}

func TestSubWritesThroughToParentBuffer(t *testing.T) {
	r := testRegion(10, 4)
	sub := r.Sub(3, 1, 4, 2)

	sub.Cell(0, 0, 'A', terminal.RGB{}, terminal.RGB{}, terminal.AttrNone)

	// Relative (0,0) in the sub-region lands at absolute (3,1).
	if got := r.Cells[1*10+3].Rune; got != 'A' {
		t.Errorf("Expected 'A' at absolute (3,1), got %q", got)
	}
}

func TestTextClipsAtRegionEdge(t *testing.T) {
	r := testRegion(5, 1)
	r.Text(0, 0, "overflowing", terminal.RGB{}, terminal.RGB{}, terminal.AttrNone)

	got := ""
	for x := 0; x < 5; x++ {
		got += string(r.Cells[x].Rune)
	}
	if got != "overf" {
		t.Errorf("Expected %q in cells, got %q", "overf", got)
	}
}

func TestTextWideRuneContinuation(t *testing.T) {
	r := testRegion(6, 1)
	r.Text(0, 0, "日x", terminal.RGB{}, terminal.RGB{}, terminal.AttrNone)

	if r.Cells[0].Rune != '日' {
		t.Errorf("Expected wide rune at col 0, got %q", r.Cells[0].Rune)
	}
	if r.Cells[1].Rune != 0 {
		t.Errorf("Expected zero continuation cell at col 1, got %q", r.Cells[1].Rune)
	}
	if r.Cells[2].Rune != 'x' {
		t.Errorf("Expected 'x' at col 2, got %q", r.Cells[2].Rune)
	}
}

func TestTextWideRuneAtClipEdge(t *testing.T) {
	r := testRegion(3, 1)
	r.Text(0, 0, "ab日", terminal.RGB{}, terminal.RGB{}, terminal.AttrNone)

	// Wide rune cannot fit its second half in the last column.
	if r.Cells[2].Rune != ' ' {
		t.Errorf("Expected space at clip edge, got %q", r.Cells[2].Rune)
	}
}

func TestLines(t *testing.T) {
	r := testRegion(4, 3)
	border := terminal.RGB{R: 60, G: 80, B: 100}

	r.HLine(1, border, terminal.RGB{})
	for x := 0; x < 4; x++ {
		if r.Cells[1*4+x].Rune != '─' {
			t.Errorf("HLine missing at col %d", x)
		}
	}

	r.VLine(2, border, terminal.RGB{})
	for y := 0; y < 3; y++ {
		if got := r.Cells[y*4+2].Rune; got != '│' {
			t.Errorf("VLine missing at row %d, got %q", y, got)
		}
	}
}
