package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if the given writer should receive ANSI colour.
//
// Precedence:
//   - NO_COLOR set disables colour (https://no-color.org)
//   - TERM=dumb disables colour
//   - FORCE_COLOR or GITHUB_ACTIONS set enables colour; CI log viewers
//     render ANSI even though stdout is a pipe
//   - otherwise colour follows TTY detection
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(_ io.Writer, isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("TERM") == "dumb" {
		return false
	}

	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	return isTTY
}
