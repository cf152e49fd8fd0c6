// Package main is the entry point for the boardci CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/boardci/cmd/boardci/commands"
	"github.com/thoreinstein/boardci/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, "Hint:", exitErr.Suggestion)
	}
	os.Exit(errors.ExitCode(err))
}
