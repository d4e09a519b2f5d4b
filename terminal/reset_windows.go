//go:build windows

package terminal

import (
	"os"

	"golang.org/x/sys/windows"
)

// resetTerminalMode re-enables cooked console input for crash paths
// where the saved mode is unreachable. Best-effort; errors ignored.
func resetTerminalMode() {
	in := windows.Handle(os.Stdin.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(in, &mode); err != nil {
		return
	}
	windows.SetConsoleMode(in, mode|windows.ENABLE_ECHO_INPUT|windows.ENABLE_LINE_INPUT|windows.ENABLE_PROCESSED_INPUT)
}
