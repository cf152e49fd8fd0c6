package paths

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/boardci/internal/errors"
)

// Workspace-relative names.
const (
	SourceDirName   = "src"
	ExamplesDirName = "examples"
	BinDirName      = "bin"
)

// WorkspaceEnv is the CI variable naming the checkout directory.
const WorkspaceEnv = "GITHUB_WORKSPACE"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrapf(ErrHomeDirNotFound, "%v", err)
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDirEnv overrides the configuration directory.
const ConfigDirEnv = "BOARDCI_CONFIG_DIR"

// ConfigDir returns $BOARDCI_CONFIG_DIR when set, otherwise <ConfigHome>/boardci.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), "boardci")
}

// Workspace resolves the workspace directory. An explicit value wins, then
// $GITHUB_WORKSPACE, then the current directory. The result is absolute.
func Workspace(explicit string) (string, error) {
	dir := explicit
	if dir == "" {
		dir = os.Getenv(WorkspaceEnv)
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "getting working directory")
		}
		dir = wd
	}
	if strings.ContainsRune(dir, '\x00') {
		return "", errors.Wrapf(ErrInvalidPath, "%q", dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving workspace %s", dir)
	}
	return abs, nil
}

// SourceDir returns <workspace>/src.
func SourceDir(workspace string) string {
	return filepath.Join(workspace, SourceDirName)
}

// ExamplesDir returns <workspace>/examples.
func ExamplesDir(workspace string) string {
	return filepath.Join(workspace, ExamplesDirName)
}

// BinDir returns <workspace>/bin.
func BinDir(workspace string) string {
	return filepath.Join(workspace, BinDirName)
}

// LibrariesDir returns the arduino-cli user library directory under home.
func LibrariesDir(home string) string {
	return filepath.Join(home, "Arduino", "libraries")
}

// AppendPath appends dir to the PATH environment variable unless it is
// already present. It reports whether PATH changed.
func AppendPath(dir string) (bool, error) {
	current := os.Getenv("PATH")
	parts := filepath.SplitList(current)
	if slices.Contains(parts, dir) {
		return false, nil
	}
	next := dir
	if current != "" {
		next = current + string(os.PathListSeparator) + dir
	}
	if err := os.Setenv("PATH", next); err != nil {
		return false, errors.Wrap(err, "extending PATH")
	}
	return true, nil
}

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents.
// If perm is 0, DefaultDirPerm is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}
