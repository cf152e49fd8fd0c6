// Package paths resolves the directories the pipeline works with.
//
// # Workspace Layout
//
// The workspace is the library checkout. It defaults to $GITHUB_WORKSPACE
// and falls back to the current directory:
//
//	<workspace>/library.properties  metadata
//	<workspace>/src/                library sources, staged for compilation
//	<workspace>/examples/<Name>/    one directory per example sketch
//	<workspace>/bin/                appended to PATH (arduino-cli lives here in CI)
//
// # Board Manager Directories
//
// arduino-cli looks for user libraries in ~/Arduino/libraries. [LibrariesDir]
// derives that path from the home directory.
//
// # XDG Base Directory Compliance
//
// The boardci configuration file is searched under [ConfigHome], which wraps
// github.com/adrg/xdg (~/.config on Linux, ~/Library/Application Support on
// macOS, %LOCALAPPDATA% on Windows).
package paths
