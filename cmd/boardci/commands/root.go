// Package commands implements the CLI commands for boardci.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/boardci/cmd"
	"github.com/thoreinstein/boardci/internal/config"
	"github.com/thoreinstein/boardci/internal/console"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given.
const debugEnv = "BOARDCI_DEBUG"

var (
	// verbosity holds the count of -v flags.
	verbosity int

	// quiet holds the value of the -q/--quiet flag.
	quiet bool

	// logFormat holds the value of the --log-format flag.
	logFormat string

	// logFile holds the path to the log file.
	logFile string

	// configFile holds the value of the --config flag.
	configFile string

	// noColor disables ANSI output on both logs and status lines.
	noColor bool
)

var (
	// cfg is the configuration loaded in initConfig.
	cfg *config.Config

	// configLoadErr holds any error that occurred during config loading.
	configLoadErr error
)

// viperFlags maps run flags onto configuration keys so a flag overrides the
// file and environment.
var viperFlags = map[string]string{
	"workspace":     "workspace",
	"cli":           "cli",
	"report":        "report",
	"report-format": "report_format",
	"filter":        "filter",
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv, -vvv)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text, json")
	pf.StringVar(&logFile, "log-file", "", "also write logs to file in JSON format")
	pf.StringVar(&configFile, "config", "", "config file (default: ./boardci.yaml, then the XDG config dir)")
	pf.BoolVar(&noColor, "no-color", false, "disable coloured output")

	addRunFlags(rootCmd)

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("boardci version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	for flag, key := range viperFlags {
		f := rootCmd.Flags().Lookup(flag)
		if f == nil {
			f = rootCmd.PersistentFlags().Lookup(flag)
		}
		if f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "boardci [flags] <platform-or-group>...",
	Short: "Compile an Arduino library's examples across boards",
	Long: `boardci checks that an Arduino-style library builds on every board it
claims to support.

It stages the library from src/ into the user libraries directory, installs
the board cores and the dependencies declared in library.properties with
arduino-cli, and compiles every examples/<Name>/<Name>.ino for each
requested board. Compile failures are collected across all boards; the exit
status is non-zero if any example failed.

Arguments are board aliases or group aliases; run 'boardci platforms' to
list them. With no arguments the 'platforms' list from the config is used.`,
	Example: `  # Compile examples for one board
  boardci uno

  # Compile for a whole group and write a JSON report
  boardci rak_platforms --report out/report.json

  # Show what would be installed and compiled
  boardci --dry-run rak_platforms

  See Also: boardci platforms, boardci resolve, boardci config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: runPipeline,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	if noColor {
		color.NoColor = true
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or json")
	}

	lc := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		lc.File = f
		lc.FileLevel = logging.DefaultFileLevel
	}

	logger := logging.New(lc)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// checkConfig surfaces configuration errors for commands that need config.
func checkConfig(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "gen-doc", "init":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return nil
}

// newPrinter returns the status printer for w honouring --no-color.
func newPrinter(w io.Writer) *console.Printer {
	if noColor {
		return console.NewPlain(w)
	}
	return console.New(w)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
