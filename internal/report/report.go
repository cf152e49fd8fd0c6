// Package report persists a run report and renders the end-of-run summary.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/thoreinstein/boardci/internal/ci"
	"github.com/thoreinstein/boardci/internal/console"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/paths"
	"github.com/thoreinstein/boardci/pkg/fileutil"
)

// Format is a report file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for an unsupported format or extension.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat maps a format name to a Format. Case is ignored and "yml" is
// accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// FormatFor infers the format from the extension of path.
func FormatFor(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Wrapf(ErrUnknownFormat, "cannot infer format from %q", path)
	}
	return ParseFormat(ext)
}

// Write encodes r to path. An empty format is inferred from the extension.
// Missing parent directories are created.
func Write(path string, format Format, r *ci.Report) error {
	if r == nil {
		return errors.New("nil report")
	}
	if format == "" {
		f, err := FormatFor(path)
		if err != nil {
			return err
		}
		format = f
	}

	var write func(string, any) error
	switch format {
	case FormatJSON:
		write = fileutil.AtomicWriteJSON
	case FormatYAML:
		write = fileutil.AtomicWriteYAML
	case FormatTOML:
		write = fileutil.AtomicWriteTOML
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}

	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating report directory")
	}
	return write(path, r)
}

// Summary prints one row per board followed by the overall verdict.
func Summary(p *console.Printer, r *ci.Report) {
	w := p.Writer()
	if r == nil {
		return
	}

	if len(r.Platforms) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PLATFORM\tFQBN\tEXAMPLES\tFAILED\tRESULT")
		for _, pr := range r.Platforms {
			result := "pass"
			if !pr.Passed {
				result = "FAIL"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
				pr.Alias, pr.FQBN, len(pr.Examples), len(pr.Failed()), result)
		}
		tw.Flush()
	}

	for _, f := range r.DependencyFailures {
		p.Warn("Dependency not installed: %s", f.Dependency.Spec())
	}

	elapsed := r.Duration().Round(time.Second)
	switch {
	case r.DryRun:
		p.Info("Dry run complete, nothing was compiled")
	case r.Passed():
		p.Pass("All %d platform(s) passed in %s", len(r.Platforms), elapsed)
	case r.State == ci.StateStarted:
		p.Fail("Run stopped before any platform was resolved")
	default:
		failed := r.FailedPlatforms()
		names := make([]string, len(failed))
		for i, f := range failed {
			names[i] = f.Alias
		}
		if len(names) == 0 {
			p.Fail("Run stopped at %s after %s", r.State, elapsed)
			return
		}
		p.Fail("%d of %d platform(s) failed: %s", len(failed), len(r.Platforms), strings.Join(names, ", "))
	}
}
