package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/boardci/internal/console"
	"github.com/thoreinstein/boardci/internal/doctor"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/logging"
	"github.com/thoreinstein/boardci/internal/paths"
	"github.com/thoreinstein/boardci/internal/runner"
)

var (
	doctorJSON   bool
	doctorStrict bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorStrict, "strict", false, "treat warnings as failures")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment can run boardci",
	Long: `Run diagnostic checks before a build: the build tool is executable, the
configuration is valid, the workspace has library.properties, src/ and
examples, and the user library directory is writable.

Exit codes:
  0 - No errors (warnings allowed unless --strict)
  2 - Errors present, or warnings with --strict`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	ws, err := paths.Workspace(cfg.Workspace)
	if err != nil {
		return errors.NewUserError(err, "Pass --workspace")
	}

	checks := doctor.NewRunner(
		&doctor.ConfigCheck{Config: cfg, Source: viper.ConfigFileUsed()},
		&doctor.ToolCheck{Binary: cfg.CLI, BinDir: paths.BinDir(ws), Runner: &runner.ExecRunner{Logger: logger}},
		&doctor.WorkspaceCheck{Workspace: ws, Extension: cfg.SketchExtension},
	)

	libDir := cfg.LibrariesDir
	if libDir == "" {
		if home, err := paths.ResolveHome(); err == nil {
			libDir = paths.LibrariesDir(home)
		} else {
			logger.Warn("skipping libraries-dir check", "err", err)
		}
	}
	if libDir != "" {
		checks.AddCheck(&doctor.LibrariesDirCheck{Dir: libDir})
	}

	report := checks.Run(ctx)

	if doctorJSON {
		if err := writeDoctorJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		writeDoctorText(newPrinter(cmd.OutOrStdout()), report)
	}

	if report.HasErrors() || (doctorStrict && report.HasWarnings()) {
		return errors.NewExitError(errors.Newf("doctor found %d error(s), %d warning(s)",
			report.Summary.Errors, report.Summary.Warnings), errors.ExitSystem)
	}
	return nil
}

func writeDoctorJSON(w io.Writer, report *doctor.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encoding JSON")
}

func writeDoctorText(p *console.Printer, report *doctor.Report) {
	for _, r := range report.Results {
		line := fmt.Sprintf("[%s] %s: %s", r.Category, r.Name, r.Message)
		switch r.Status {
		case doctor.SeverityPass:
			p.Pass("%s %s", console.CheckMark, line)
		case doctor.SeverityInfo:
			p.Info("i %s", line)
		case doctor.SeverityWarning:
			p.Warn("! %s", line)
		default:
			p.Fail("%s %s", console.CrossMark, line)
		}
		if r.FixHint != "" && r.Status >= doctor.SeverityWarning {
			fmt.Fprintf(p.Writer(), "  hint: %s\n", r.FixHint)
		}
	}
	fmt.Fprintf(p.Writer(), "\nSummary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}
