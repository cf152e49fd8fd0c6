// Package runner executes external commands and captures their output.
package runner

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/logging"
)

// ExitNotFound is reported when the binary could not be located.
const ExitNotFound = 127

// Result is the outcome of one command invocation.
type Result struct {
	Command  []string      `json:"command"`
	ExitCode int           `json:"exit_code"`
	Stdout   string        `json:"stdout,omitempty"`
	Stderr   string        `json:"stderr,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Success reports whether the command exited with status zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Output returns stdout followed by stderr.
func (r *Result) Output() string {
	if r == nil {
		return ""
	}
	switch {
	case r.Stdout == "":
		return r.Stderr
	case r.Stderr == "":
		return r.Stdout
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}

// Runner abstracts command execution.
type Runner interface {
	// Run executes name with args and waits for it to exit. A non-zero exit
	// is reported through Result.ExitCode, not the error; the error is set
	// only when the process could not be started or ctx was cancelled.
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// ExecRunner runs commands on the local host via os/exec. No shell is
// involved; arguments are passed verbatim.
type ExecRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env, when non-nil, replaces the process environment.
	Env []string
	// Logger receives the command line at debug level and the captured
	// output at trace level. Nil uses the logger from ctx.
	Logger *slog.Logger
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	argv := append([]string{name}, args...)
	logger.Debug("exec", "cmd", argv)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Command:  argv,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	logger.Log(ctx, logging.LevelTrace, "exec finished",
		"cmd", argv, "duration", res.Duration, "output", res.Output())

	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, errors.Wrapf(ctxErr, "running %s", name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = 1
	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) {
		res.ExitCode = ExitNotFound
	}
	return res, errors.Wrapf(err, "starting %s", name)
}

// CommandError reports a command that exited unsuccessfully.
type CommandError struct {
	Message  string
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	stderr := strings.TrimSpace(e.Stderr)
	if stderr != "" {
		sb.WriteString("\n")
		sb.WriteString(stderr)
	}
	return sb.String()
}

// Check applies the fail-fast policy to a Run outcome: it returns nil when
// the command succeeded and an error carrying failureMessage and the captured
// stderr otherwise.
func Check(res *Result, err error, failureMessage string) error {
	if err != nil {
		return errors.Wrap(err, failureMessage)
	}
	if res.Success() {
		return nil
	}
	ce := &CommandError{Message: failureMessage}
	if res != nil {
		ce.Command = res.Command
		ce.ExitCode = res.ExitCode
		ce.Stderr = res.Stderr
	}
	return ce
}
