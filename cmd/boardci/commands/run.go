package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/boardci/internal/arduino"
	"github.com/thoreinstein/boardci/internal/ci"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/logging"
	"github.com/thoreinstein/boardci/internal/platform"
	"github.com/thoreinstein/boardci/internal/report"
	"github.com/thoreinstein/boardci/internal/runner"
)

var (
	dryRun          bool
	skipIndexUpdate bool
	interactive     bool
)

// newTool builds the ToolClient for a run. Tests replace it.
var newTool = func(binary string, urls []string, r runner.Runner) arduino.ToolClient {
	return arduino.NewCLI(binary, urls, r)
}

func addRunFlags(c *cobra.Command) {
	pf := c.PersistentFlags()
	pf.String("workspace", "", "library checkout (default: $GITHUB_WORKSPACE, then the current directory)")
	pf.String("cli", arduino.DefaultBinary, "arduino-cli binary name or path")

	f := c.Flags()
	f.String("report", "", "write a run report to this file")
	f.String("report-format", "", "report format: json, yaml, toml (default: from the file extension)")
	f.StringSlice("filter", nil, "only compile examples whose name matches a glob (repeatable)")
	f.BoolVar(&dryRun, "dry-run", false, "resolve and print the plan without running arduino-cli")
	f.BoolVar(&skipIndexUpdate, "skip-index-update", false, "do not refresh the core index")
	f.BoolVarP(&interactive, "interactive", "i", false, "pick platforms with a fuzzy finder")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	reg, err := cfg.Registry()
	if err != nil {
		return errors.NewConfigError(err)
	}

	if len(args) == 0 {
		args, err = defaultPlatforms(cmd, reg)
		if err != nil {
			return err
		}
	}

	out := newPrinter(cmd.OutOrStdout())
	status := out
	if quiet {
		status = newPrinter(io.Discard)
	}

	execRunner := &runner.ExecRunner{Logger: logger}
	pipeline := ci.New(ci.Options{
		Workspace:       cfg.Workspace,
		LibrariesDir:    cfg.LibrariesDir,
		SketchExtension: cfg.SketchExtension,
		Filter:          cfg.Filter,
		SkipIndexUpdate: skipIndexUpdate,
		DryRun:          dryRun,
	}, reg, newTool(cfg.CLI, cfg.AdditionalURLs, execRunner), status, logger)

	rep, runErr := pipeline.Run(ctx, args)

	if cfg.Report != "" {
		if err := writeReport(rep); err != nil {
			if runErr != nil {
				logger.Error("report not written", "path", cfg.Report, "err", err)
			} else {
				return err
			}
		} else {
			logger.Info("report written", "path", cfg.Report)
		}
	}

	report.Summary(out, rep)

	if runErr != nil {
		return runErr
	}
	if !rep.Passed() {
		hint := "Rerun with --report report.json to keep each example's compiler output"
		if cfg.Report != "" {
			hint = "Compiler output for each example is in " + cfg.Report
		}
		return errors.NewExitErrorWithSuggestion(
			errors.Newf("%d platform(s) had failing examples", len(rep.FailedPlatforms())), errors.ExitCompile, hint)
	}
	return nil
}

// defaultPlatforms supplies aliases when none were given on the command line.
func defaultPlatforms(cmd *cobra.Command, reg *platform.Registry) ([]string, error) {
	if interactive {
		return pickPlatforms(cmd.InOrStdin(), reg)
	}
	if len(cfg.Platforms) > 0 {
		return cfg.Platforms, nil
	}
	return nil, errors.NewUserError(errors.New("no platforms requested"),
		"Pass aliases as arguments, set 'platforms' in boardci.yaml, or use --interactive")
}

func writeReport(rep *ci.Report) error {
	var format report.Format
	if cfg.ReportFormat != "" {
		f, err := report.ParseFormat(cfg.ReportFormat)
		if err != nil {
			return errors.NewUserError(err, "Use --report-format json, yaml or toml")
		}
		format = f
	}
	if err := report.Write(cfg.Report, format, rep); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing report"), "")
	}
	return nil
}
