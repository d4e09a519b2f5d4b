//go:build windows

package deck

import (
	"context"
	"os/exec"
)

// runCommand executes a shell command through cmd.exe pipes. There is
// no pty here; the size hint goes unused since console programs read
// dimensions from the console API, not the spawning process.
func runCommand(ctx context.Context, command string, cols, rows int) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "cmd", "/c", command)
	return cmd.CombinedOutput()
}
