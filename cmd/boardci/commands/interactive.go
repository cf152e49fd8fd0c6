package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/logging"
	"github.com/thoreinstein/boardci/internal/platform"
)

// findMulti is the fuzzy finder entry point. Tests replace it.
var findMulti = fuzzyfinder.FindMulti

// pickPlatforms lets the user choose aliases from reg. It requires a terminal
// on stdin.
func pickPlatforms(in io.Reader, reg *platform.Registry) ([]string, error) {
	if f, ok := in.(*os.File); !ok || !logging.IsTTY(f) {
		return nil, errors.NewUserError(errors.New("--interactive requires a terminal"),
			"Pass platform aliases as arguments instead")
	}

	entries := reg.Entries()
	idx, err := findMulti(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", entries[i].Alias, entries[i].Kind)
		},
		fuzzyfinder.WithPromptString("platforms> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return describeEntry(reg, entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errors.NewUserError(errors.New("no platforms selected"), "")
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = entries[n].Alias
	}
	return out, nil
}

// describeEntry renders the preview pane for one alias.
func describeEntry(reg *platform.Registry, e platform.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Alias: %s\nKind:  %s\n\n", e.Alias, e.Kind)
	fqbns, err := reg.Resolve(e.Alias)
	if err != nil {
		return b.String() + err.Error()
	}
	for _, f := range fqbns {
		fmt.Fprintf(&b, "%s\n  core: %s\n", f, f.Package())
	}
	return b.String()
}
