package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/boardci/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is below Debug and enables logging of captured tool output.
const LevelTrace = slog.Level(-8)

// Config describes the logger built by New.
type Config struct {
	Level  slog.Level
	Format Format
	// Output defaults to os.Stderr.
	Output io.Writer
	// File, when set, receives a JSON copy of each record at FileLevel.
	File io.Writer
	// FileLevel is the minimum level written to File. The zero value is
	// Info; use DefaultFileLevel to keep captured tool output.
	FileLevel slog.Level
}

// DefaultFileLevel keeps every record, including captured tool output, in
// the log file regardless of console verbosity.
const DefaultFileLevel = LevelTrace

// ParseFormat accepts "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Newf("unknown log format %q", s)
}

// New builds a logger from cfg. Unknown formats fall back to text.
// Credentials embedded in URLs are masked in every sink.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: cfg.Level, ReplaceAttr: redactAttr})
	} else {
		handler = NewHandler(output, opts)
	}
	if cfg.File != nil {
		file := slog.NewJSONHandler(cfg.File, &slog.HandlerOptions{Level: cfg.FileLevel, ReplaceAttr: redactAttr})
		handler = NewMultiHandler(handler, file)
	}
	return slog.New(handler)
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(RedactURLs(a.Value.String()))
	case slog.KindAny:
		if v, ok := a.Value.Any().([]string); ok {
			out := make([]string, len(v))
			for i, s := range v {
				out[i] = RedactURLs(s)
			}
			a.Value = slog.AnyValue(out)
		}
	}
	return a
}

// Default is the pre-flag logger: warnings and above, text, stderr.
func Default() *slog.Logger {
	return New(Config{Level: slog.LevelWarn})
}

// LevelFromVerbosity maps a -v count to a log level.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

// ForTest routes every record, including captured tool output, to t.Log.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{Level: LevelTrace, Output: testWriter{t: t}})
}
