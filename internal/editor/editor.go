// Package editor launches the user's editor on a file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/boardci/internal/errors"
)

// Streams are the terminal handles the editor inherits.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open runs the editor on path and waits for it to exit. The editor comes
// from $EDITOR, then $VISUAL, then nano, then vi; the variable may carry
// arguments ("code --wait").
func Open(ctx context.Context, path string, s Streams) error {
	argv := strings.Fields(Command())
	argv = append(argv, path)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// Command returns the editor command line to use.
func Command() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
