package deck

import (
	"context"
	"fmt"
	"strings"

	"github.com/lixenwraith/termdeck/menu"
)

// maxResultLines bounds captured command output. The tail is kept
// since failures show up at the end.
const maxResultLines = 400

// Dispatcher executes the operation behind a menu item and returns
// the content to display, whether the loop should exit, and an error.
// Errors do not terminate the loop; they are shown in the content
// pane and the status line.
type Dispatcher interface {
	Dispatch(ctx context.Context, item menu.Item) (menu.Content, bool, error)
}

// CommandDispatcher runs item commands through the system shell on a
// pseudo-terminal, capturing combined output as content lines.
type CommandDispatcher struct {
	// Size supplies terminal dimensions for the command's pty so
	// programs that size their output to the terminal behave. Nil
	// falls back to 80x24.
	Size func() (cols, rows int)
}

func (d *CommandDispatcher) Dispatch(ctx context.Context, item menu.Item) (menu.Content, bool, error) {
	if item.Command == "" {
		return nil, false, nil
	}

	cols, rows := 80, 24
	if d.Size != nil {
		cols, rows = d.Size()
	}

	out, err := runCommand(ctx, item.Command, cols, rows)
	lines := splitOutput(out)
	if err != nil {
		lines = append(lines, "", fmt.Sprintf("[%v]", err))
	}
	if len(lines) > maxResultLines {
		lines = lines[len(lines)-maxResultLines:]
	}
	if len(lines) == 0 {
		lines = []string{"(no output)"}
	}
	return menu.Lines(lines), false, err
}

// splitOutput turns raw capture into display lines. Pty output uses
// CRLF endings; a bare CR rewinds the line, so only text after the
// last one survives, matching what a terminal would have shown.
func splitOutput(out []byte) []string {
	s := strings.ReplaceAll(string(stripANSI(out)), "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if j := strings.LastIndexByte(line, '\r'); j >= 0 {
			lines[i] = line[j+1:]
		}
	}
	return lines
}

// stripANSI removes escape sequences from captured output: CSI runs
// through their final byte, OSC runs through BEL or ST, and lone
// two-byte escapes. Cell buffers hold plain text only.
func stripANSI(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != 0x1b {
			out = append(out, b[i])
			continue
		}
		i++
		if i >= len(b) {
			break
		}
		switch b[i] {
		case '[':
			for i++; i < len(b); i++ {
				if b[i] >= 0x40 && b[i] <= 0x7e {
					break
				}
			}
		case ']':
			for i++; i < len(b); i++ {
				if b[i] == 0x07 {
					break
				}
				if b[i] == 0x1b && i+1 < len(b) && b[i+1] == '\\' {
					i++
					break
				}
			}
		}
	}
	return out
}
