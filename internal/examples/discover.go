// Package examples finds the example sketches bundled with a library and
// compiles them against a board.
package examples

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/thoreinstein/boardci/internal/errors"
)

// DefaultExtension is the sketch file extension.
const DefaultExtension = ".ino"

// Example is one compilable example directory.
type Example struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Dir    string `json:"dir" yaml:"dir" toml:"dir"`
	Sketch string `json:"sketch" yaml:"sketch" toml:"sketch"`
}

// Discover returns the immediate subdirectories of root that contain a
// sketch named after the directory (Foo/Foo.ino), sorted by name.
// Directories without such a sketch are skipped. A missing root yields no
// examples and a warning.
func Discover(root, ext string, logger *slog.Logger) ([]Example, error) {
	if ext == "" {
		ext = DefaultExtension
	}
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("examples directory not found", "path", root)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading examples directory %s", root)
	}

	var found []Example
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		if !isDir(entry, dir) {
			continue
		}
		sketch := filepath.Join(dir, entry.Name()+ext)
		info, err := os.Stat(sketch)
		if err != nil || !info.Mode().IsRegular() {
			logger.Debug("skipping directory without sketch", "dir", dir)
			continue
		}
		found = append(found, Example{Name: entry.Name(), Dir: dir, Sketch: sketch})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// isDir follows symlinks so linked example directories are still found.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Filter keeps examples whose name matches any of the glob patterns.
// No patterns keeps everything.
func Filter(list []Example, patterns []string) ([]Example, error) {
	if len(patterns) == 0 {
		return list, nil
	}
	var out []Example
	for _, ex := range list {
		for _, p := range patterns {
			ok, err := filepath.Match(p, ex.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid example filter %q", p)
			}
			if ok {
				out = append(out, ex)
				break
			}
		}
	}
	return out, nil
}
