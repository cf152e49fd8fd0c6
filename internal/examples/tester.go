package examples

import (
	"context"
	"log/slog"
	"time"

	"github.com/thoreinstein/boardci/internal/arduino"
	"github.com/thoreinstein/boardci/internal/console"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/platform"
)

// Outcome is the compile result of one example.
type Outcome struct {
	Example  Example       `json:"example" yaml:"example" toml:"example"`
	Passed   bool          `json:"passed" yaml:"passed" toml:"passed"`
	ExitCode int           `json:"exit_code" yaml:"exit_code" toml:"exit_code"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration" toml:"duration"`
}

// Result aggregates the outcomes for one board.
type Result struct {
	FQBN     platform.FQBN `json:"fqbn" yaml:"fqbn" toml:"fqbn"`
	Outcomes []Outcome     `json:"outcomes" yaml:"outcomes" toml:"outcomes"`
}

// Passed reports whether every attempted compile succeeded. A board with no
// examples passes.
func (r *Result) Passed() bool {
	for _, o := range r.Outcomes {
		if !o.Passed {
			return false
		}
	}
	return true
}

// Failed returns the failing outcomes.
func (r *Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Passed {
			out = append(out, o)
		}
	}
	return out
}

// Tester compiles examples through a ToolClient.
type Tester struct {
	tool      arduino.ToolClient
	out       *console.Printer
	logger    *slog.Logger
	extension string
	filters   []string
}

// Option configures a Tester.
type Option func(*Tester)

// WithExtension sets the sketch file extension.
func WithExtension(ext string) Option {
	return func(t *Tester) { t.extension = ext }
}

// WithFilter restricts testing to examples matching any glob pattern.
func WithFilter(patterns ...string) Option {
	return func(t *Tester) { t.filters = patterns }
}

// NewTester creates a Tester.
func NewTester(tool arduino.ToolClient, out *console.Printer, logger *slog.Logger, opts ...Option) *Tester {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tester{tool: tool, out: out, logger: logger, extension: DefaultExtension}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TestAll compiles every example under root for fqbn. A failing compile is
// recorded and the loop moves on; the returned error is reserved for
// problems reading root and for cancellation.
func (t *Tester) TestAll(ctx context.Context, root string, fqbn platform.FQBN) (*Result, error) {
	list, err := Discover(root, t.extension, t.logger)
	if err != nil {
		return nil, err
	}
	list, err = Filter(list, t.filters)
	if err != nil {
		return nil, err
	}

	result := &Result{FQBN: fqbn}
	for _, ex := range list {
		if err := ctx.Err(); err != nil {
			return result, errors.Wrap(err, "testing examples")
		}
		result.Outcomes = append(result.Outcomes, t.compile(ctx, ex, fqbn))
	}

	t.logger.Info("examples tested", "fqbn", fqbn,
		"total", len(result.Outcomes), "failed", len(result.Failed()))
	return result, nil
}

func (t *Tester) compile(ctx context.Context, ex Example, fqbn platform.FQBN) Outcome {
	t.out.Info("Testing example: %s", ex.Name)

	start := time.Now()
	res, err := t.tool.CompileSketch(ctx, fqbn, ex.Dir)
	o := Outcome{Example: ex, Duration: time.Since(start), ExitCode: -1}
	if res != nil {
		o.ExitCode = res.ExitCode
		o.Output = res.Output()
		if res.Duration > 0 {
			o.Duration = res.Duration
		}
	}
	if err != nil && o.Output == "" {
		o.Output = err.Error()
	}
	o.Passed = err == nil && res.Success()

	if o.Passed {
		t.out.Check()
		return o
	}
	t.out.Cross()
	t.out.Output(o.Output)
	t.logger.Debug("compile failed", "example", ex.Name, "fqbn", fqbn, "exit", o.ExitCode)
	return o
}
