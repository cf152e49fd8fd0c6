package metadata

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/pkg/fileutil"
)

// depPattern matches "Name" or "Name (constraint)". Names may contain
// spaces ("Adafruit GFX Library").
var depPattern = regexp.MustCompile(`^([^()]+?)\s*(?:\(([^)]+)\))?\s*$`)

const (
	keyName    = "name"
	keyVersion = "version"
	keyDepends = "depends"
)

// Read parses the descriptor at path. It fails with ErrMetadataNotFound when
// the file does not exist and ErrMissingName when no name= line is present.
// Unparseable dependency entries are logged and recorded in Library.Skipped.
func Read(path string, logger *slog.Logger) (*Library, error) {
	data, err := load(path)
	if err != nil {
		return nil, err
	}

	lib, err := Parse(bytes.NewReader(data), logger)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return lib, nil
}

// ReadName returns the library name declared in path.
func ReadName(path string) (string, error) {
	lib, err := Read(path, nil)
	if err != nil {
		return "", err
	}
	return lib.Name, nil
}

// ReadDependencies returns the dependencies declared in path together with
// the raw entries that were skipped. A missing name= line is not an error here.
func ReadDependencies(path string, logger *slog.Logger) ([]Dependency, []string, error) {
	data, err := load(path)
	if err != nil {
		return nil, nil, err
	}

	values, err := scan(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	deps, skipped := ParseDepends(values[keyDepends], logger)
	return deps, skipped, nil
}

// Parse reads a descriptor from r.
func Parse(r io.Reader, logger *slog.Logger) (*Library, error) {
	values, err := scan(r)
	if err != nil {
		return nil, err
	}

	name := values[keyName]
	if name == "" {
		return nil, errors.ErrMissingName
	}

	lib := &Library{
		Name:    name,
		Version: values[keyVersion],
	}
	lib.Dependencies, lib.Skipped = ParseDepends(values[keyDepends], logger)
	return lib, nil
}

// ParseDepends splits a depends= value into dependencies. Entries that do
// not match "Name" or "Name (constraint)" are skipped with a warning.
func ParseDepends(value string, logger *slog.Logger) ([]Dependency, []string) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var deps []Dependency
	var skipped []string
	for _, raw := range strings.Split(value, ",") {
		entry := strings.TrimSpace(raw)
		m := depPattern.FindStringSubmatch(entry)
		if m == nil {
			logger.Warn("could not parse dependency", "entry", raw)
			skipped = append(skipped, raw)
			continue
		}
		deps = append(deps, Dependency{
			Name:    m[1],
			Version: strings.TrimSpace(m[2]),
		})
	}
	return deps, skipped
}

// scan collects the first value of each recognised key. Values are
// everything after the first '=', trimmed.
func scan(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case keyName, keyVersion, keyDepends:
			if _, seen := values[key]; !seen {
				values[key] = strings.TrimSpace(value)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning properties")
	}
	return values, nil
}

func load(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrMetadataNotFound, "%s", path)
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}
