// Package errors provides error handling conventions for the boardci CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors so
// callers need a single import, defines sentinel errors for the failure
// conditions the pipeline distinguishes, and an [ExitError] type that carries
// a process exit code up to main.
//
// # Sentinel Errors
//
//	if errors.Is(err, errors.ErrUnknownPlatform) {
//	    // an alias on the command line is not in the registry
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): every example compiled on every platform
//   - ExitUser (1): invalid input (unknown platform, bad configuration)
//   - ExitSystem (2): infrastructure failure (index update, core install, I/O)
//   - ExitCompile (3): at least one example failed to compile
//
// # ExitError
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
