// Package fileutil provides whole-file atomic writes for structured
// documents and size-bounded reads.
package fileutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/boardci/internal/errors"
)

// DefaultPerm is the mode used by the convenience writers.
const DefaultPerm os.FileMode = 0o644

// MarshalFunc encodes a value into a document.
type MarshalFunc func(v any) ([]byte, error)

// AtomicWriteFile replaces path with data via a sibling temp file and a
// rename, so readers see either the old or the new content.
//
// The parent directory must exist.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".boardci-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	committed = true
	return nil
}

// AtomicWriteEncoded encodes v with marshal and writes it atomically. The
// document always ends with a newline.
func AtomicWriteEncoded(path string, v any, marshal MarshalFunc, perm os.FileMode) (err error) {
	// yaml.v3 panics on some unencodable values.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("encoding %s: %v", filepath.Base(path), r)
		}
	}()

	data, err := marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", filepath.Base(path))
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return AtomicWriteFile(path, data, perm)
}

// MarshalJSON encodes v as two-space indented JSON.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// MarshalYAML encodes v as YAML with two-space indentation.
func MarshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalTOML encodes v as TOML.
func MarshalTOML(v any) ([]byte, error) {
	return toml.Marshal(v)
}

// AtomicWriteJSON writes v as indented JSON with DefaultPerm.
func AtomicWriteJSON(path string, v any) error {
	return AtomicWriteEncoded(path, v, MarshalJSON, DefaultPerm)
}

// AtomicWriteYAML writes v as YAML with DefaultPerm.
func AtomicWriteYAML(path string, v any) error {
	return AtomicWriteEncoded(path, v, MarshalYAML, DefaultPerm)
}

// AtomicWriteTOML writes v as TOML with DefaultPerm.
func AtomicWriteTOML(path string, v any) error {
	return AtomicWriteEncoded(path, v, MarshalTOML, DefaultPerm)
}
