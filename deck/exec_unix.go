//go:build unix

package deck

import (
	"bytes"
	"context"
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// runCommand executes a shell command on a pty sized to the terminal.
// stdout and stderr both land on the pty, so combined output comes
// back in order. The copy drains until the child exits; pty reads
// fail with EIO at that point, which is the normal end-of-output
// signal and not reported.
func runCommand(ctx context.Context, command string, cols, rows int) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	io.Copy(&buf, f)

	return buf.Bytes(), cmd.Wait()
}
