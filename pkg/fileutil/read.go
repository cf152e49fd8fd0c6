package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/boardci/internal/errors"
)

// MaxFileSize bounds ReadFileWithLimit.
const MaxFileSize = 1 << 20

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads path, failing with ErrFileTooLarge when it holds
// more than MaxFileSize bytes.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s", path)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s", path)
	}
	return data, nil
}
