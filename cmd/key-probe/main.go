// key-probe shows decoded key events live. Useful for checking what a
// terminal actually sends for arrows, page keys, and modified keys.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/termdeck/terminal"
	"github.com/lixenwraith/termdeck/terminal/tui"
)

func main() {
	term := terminal.New()
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()

	theme := tui.DefaultTheme
	cols, rows := term.Size()
	cells := make([]terminal.Cell, cols*rows)

	colorName := "256"
	if term.ColorMode() == terminal.ColorModeTrueColor {
		colorName = "truecolor"
	}

	var log []string
	add := func(s string) {
		limit := rows - 4
		if limit < 1 {
			limit = 1
		}
		if len(log) >= limit {
			copy(log, log[1:])
			log = log[:limit-1]
		}
		log = append(log, s)
	}

	render := func() {
		region := tui.NewRegion(cells, cols, 0, 0, cols, rows)
		region.Fill(theme.Bg)

		region.TextCenter(0, "key-probe: press keys, ctrl+c to quit",
			theme.HeaderFg, theme.HeaderBg, terminal.AttrBold)
		region.HLine(1, theme.Border, theme.Bg)

		for i, entry := range log {
			y := 2 + i
			if y >= rows-1 {
				break
			}
			region.Text(1, y, entry, theme.Fg, theme.Bg, terminal.AttrNone)
		}

		status := fmt.Sprintf("size %dx%d   color %s", cols, rows, colorName)
		region.Text(1, rows-1, status, theme.HintFg, theme.Bg, terminal.AttrDim)

		term.Blit(cells, cols, 0, 0, cols, rows)
		term.Flush()
	}

	render()

	for {
		ev, err := term.Poll(500 * time.Millisecond)
		if err != nil {
			return
		}

		if c, r := term.Size(); c != cols || r != rows {
			cols, rows = c, r
			cells = make([]terminal.Cell, cols*rows)
			add(fmt.Sprintf("resize %dx%d", cols, rows))
		}

		switch ev.Key {
		case terminal.KeyTimeout:
			continue
		case terminal.KeyCtrl:
			if ev.Ctrl == 0x03 {
				return
			}
			add(fmt.Sprintf("ctrl 0x%02x", ev.Ctrl))
		case terminal.KeyRune:
			add(fmt.Sprintf("rune %q (U+%04X)", ev.Rune, ev.Rune))
		case terminal.KeyDigit:
			add(fmt.Sprintf("digit %d", ev.Digit))
		default:
			add(ev.Key.String())
		}

		render()
	}
}
