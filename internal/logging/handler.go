package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Handler implements slog.Handler for TTY-optimized text output.
// It provides colorized output when the writer supports it.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string

	timeColor  *color.Color
	traceColor *color.Color
	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	keyColor   *color.Color
}

// NewHandler creates a new TTY-optimized text handler.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}

	if SupportsColor(out) {
		h.timeColor = color.New(color.FgHiBlack)
		h.traceColor = color.New(color.FgHiBlack)
		h.debugColor = color.New(color.FgMagenta)
		h.infoColor = color.New(color.FgGreen)
		h.warnColor = color.New(color.FgYellow)
		h.errorColor = color.New(color.FgRed, color.Bold)
		h.keyColor = color.New(color.FgCyan)
	}

	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle handles the Record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var sb strings.Builder

	if !r.Time.IsZero() {
		t := r.Time.Format(time.Kitchen)
		if h.timeColor != nil {
			t = h.timeColor.Sprint(t)
		}
		sb.WriteString(t)
		sb.WriteByte(' ')
	}

	fmt.Fprintf(&sb, "%-5s ", h.levelString(r.Level))
	sb.WriteString(r.Message)

	prefix := h.groupPrefix()
	for _, a := range h.attrs {
		h.appendAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, prefix, a)
		return true
	})
	sb.WriteByte('\n')

	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) levelString(level slog.Level) string {
	s := level.String()
	if level <= LevelTrace {
		s = "TRACE"
	}
	if h.timeColor == nil {
		return s
	}
	switch {
	case level >= slog.LevelError:
		return h.errorColor.Sprint(s)
	case level >= slog.LevelWarn:
		return h.warnColor.Sprint(s)
	case level >= slog.LevelInfo:
		return h.infoColor.Sprint(s)
	case level > LevelTrace:
		return h.debugColor.Sprint(s)
	default:
		return h.traceColor.Sprint(s)
	}
}

func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

func (h *Handler) appendAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(sb, prefix+a.Key+".", ga)
		}
		return
	}

	key := prefix + a.Key
	if h.keyColor != nil {
		key = h.keyColor.Sprint(key)
	}

	var value string
	switch v := a.Value.Any().(type) {
	case []string:
		value = strings.Join(v, " ")
	default:
		value = fmt.Sprint(v)
	}
	value = RedactURLs(value)

	// Captured tool output spans lines; keep it visually attached to the record.
	if strings.Contains(value, "\n") {
		value = "\n    " + strings.ReplaceAll(strings.TrimRight(value, "\n"), "\n", "\n    ")
	}

	fmt.Fprintf(sb, " %s=%s", key, value)
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	prefix := h.groupPrefix()
	for _, a := range attrs {
		a.Key = prefix + a.Key
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered by prefixing keys with "group.".
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = make([]string, len(h.groups)+1)
	copy(newH.groups, h.groups)
	newH.groups[len(h.groups)] = name
	return &newH
}
