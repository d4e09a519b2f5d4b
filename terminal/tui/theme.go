package tui

import "github.com/lixenwraith/termdeck/terminal"

// Theme defines semantic colors for dashboard chrome.
type Theme struct {
	Bg       terminal.RGB
	Fg       terminal.RGB
	CursorBg terminal.RGB
	CursorFg terminal.RGB

	Border   terminal.RGB
	HeaderBg terminal.RGB
	HeaderFg terminal.RGB
	FooterBg terminal.RGB
	FooterFg terminal.RGB

	SectionFg  terminal.RGB
	ActiveFg   terminal.RGB
	DisabledFg terminal.RGB
	HintFg     terminal.RGB
	StatusFg   terminal.RGB
	ErrorFg    terminal.RGB
	AccentFg   terminal.RGB
}

// DefaultTheme provides reasonable defaults for dark terminals.
var DefaultTheme = Theme{
	Bg:       terminal.RGB{R: 20, G: 20, B: 30},
	Fg:       terminal.RGB{R: 200, G: 200, B: 200},
	CursorBg: terminal.RGB{R: 50, G: 50, B: 70},
	CursorFg: terminal.RGB{R: 255, G: 255, B: 255},

	Border:   terminal.RGB{R: 60, G: 80, B: 100},
	HeaderBg: terminal.RGB{R: 40, G: 60, B: 90},
	HeaderFg: terminal.RGB{R: 255, G: 255, B: 255},
	FooterBg: terminal.RGB{R: 30, G: 35, B: 45},
	FooterFg: terminal.RGB{R: 140, G: 140, B: 140},

	SectionFg:  terminal.RGB{R: 130, G: 170, B: 220},
	ActiveFg:   terminal.RGB{R: 80, G: 200, B: 200},
	DisabledFg: terminal.RGB{R: 100, G: 100, B: 100},
	HintFg:     terminal.RGB{R: 100, G: 180, B: 200},
	StatusFg:   terminal.RGB{R: 140, G: 140, B: 140},
	ErrorFg:    terminal.RGB{R: 255, G: 80, B: 80},
	AccentFg:   terminal.RGB{R: 220, G: 180, B: 80},
}
