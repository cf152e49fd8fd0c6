// Package library stages the library under test into the board manager's
// user library directory so example sketches can #include it.
package library

import (
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/boardci/internal/errors"
)

// ErrSourceNotFound is returned when the library source directory is missing.
var ErrSourceNotFound = errors.New("library source not found")

// InstallDir returns <librariesDir>/<name>.
func InstallDir(librariesDir, name string) string {
	return filepath.Join(librariesDir, name)
}

// Stage copies the contents of src into dest, creating dest if needed.
// Existing files in dest are overwritten; files only in dest are kept.
// File modes are preserved and symlinks are recreated rather than followed.
func Stage(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrSourceNotFound, "%s", src)
		}
		return errors.Wrap(err, "checking library source")
	}
	if !info.IsDir() {
		return errors.Wrapf(ErrSourceNotFound, "%s is not a directory", src)
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	return copyDir(src, dest)
}

// copyDir recursively copies a directory from src to dst.
// dst is expected to already exist.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			info, err := entry.Info()
			if err != nil {
				return errors.Wrapf(err, "stating %s", srcPath)
			}
			if err := os.MkdirAll(dstPath, info.Mode().Perm()|0o700); err != nil {
				return errors.Wrapf(err, "creating directory %s", dstPath)
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, "reading link %s", src)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "replacing %s", dst)
	}
	return errors.Wrapf(os.Symlink(target, dst), "linking %s", dst)
}

// copyFile copies a single file from src to dst, preserving its mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stating source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying content from %s to %s", src, dst)
	}
	if err := dstFile.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}
	// O_CREATE only applies the mode to new files.
	return errors.Wrapf(os.Chmod(dst, srcInfo.Mode().Perm()), "setting mode on %s", dst)
}
