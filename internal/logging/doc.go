// Package logging provides structured logging for the boardci CLI using slog.
//
// Logs are diagnostic output and go to stderr. The coloured pass/fail status
// lines a CI reader scans for are written by package console instead, so the
// two streams can be redirected independently.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("installing core", "package", "rakwireless:nrf52")
//
// # Verbosity
//
// [LevelFromVerbosity] maps the count of -v flags to a level; three or more
// enable [LevelTrace], which also logs the full output of every tool call.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//	}
package logging
