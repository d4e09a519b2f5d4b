package tui

import "github.com/lixenwraith/termdeck/terminal"

// AdjustScroll returns a new scroll offset keeping the cursor visible.
func AdjustScroll(cursor, scroll, visible, total int) int {
	if total <= visible {
		return 0
	}
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+visible {
		return cursor - visible + 1
	}
	return scroll
}

// ClampScroll bounds a scroll offset to the valid range.
func ClampScroll(scroll, visible, total int) int {
	if total <= visible {
		return 0
	}
	maxScroll := total - visible
	if scroll < 0 {
		return 0
	}
	if scroll > maxScroll {
		return maxScroll
	}
	return scroll
}

// ScrollPercent returns the scroll position as a 0-100 percentage.
func ScrollPercent(scroll, visible, total int) int {
	if total <= visible {
		return 0
	}
	maxScroll := total - visible
	if maxScroll <= 0 {
		return 0
	}
	pct := (scroll * 100) / maxScroll
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// ScrollIndicator draws a compact "Top", "Bot" or "XX%" marker
// right-aligned on the given row.
func ScrollIndicator(r Region, y int, offset, visible, total int, fg, bg terminal.RGB) {
	if y < 0 || y >= r.H {
		return
	}

	var text string
	switch {
	case total <= visible || offset <= 0:
		text = "Top"
	case offset+visible >= total:
		text = "Bot"
	default:
		pct := ScrollPercent(offset, visible, total)
		if pct >= 100 {
			text = "99%"
		} else if pct >= 10 {
			text = string(rune('0'+pct/10)) + string(rune('0'+pct%10)) + "%"
		} else {
			text = " " + string(rune('0'+pct)) + "%"
		}
	}

	r.Text(r.W-DisplayWidth(text), y, text, fg, bg, terminal.AttrDim)
}

// PageDelta returns the row count a page scroll should move.
func PageDelta(visible int) int {
	delta := visible - 1
	if delta < 1 {
		delta = 1
	}
	return delta
}
