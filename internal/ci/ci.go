// Package ci runs the full library check: it stages the library, prepares
// the board-manager environment and compiles every example against every
// requested board.
//
// A Run aggregates results across boards. A failing example never stops the
// run; the caller decides the exit status from Report.Passed. Errors
// returned from Run are the fatal ones: unknown aliases, unreadable library
// metadata, and index or core installation failures. Run always returns the
// report it built so far, so a partial report can still be written.
package ci

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/thoreinstein/boardci/internal/arduino"
	"github.com/thoreinstein/boardci/internal/console"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/examples"
	"github.com/thoreinstein/boardci/internal/install"
	"github.com/thoreinstein/boardci/internal/library"
	"github.com/thoreinstein/boardci/internal/metadata"
	"github.com/thoreinstein/boardci/internal/paths"
	"github.com/thoreinstein/boardci/internal/platform"
)

// Options control a Runner.
type Options struct {
	// Workspace is the library checkout. Empty means $GITHUB_WORKSPACE,
	// then the current directory.
	Workspace string

	// LibrariesDir is the board manager's user library directory.
	// Empty means ~/Arduino/libraries.
	LibrariesDir string

	// SketchExtension defaults to ".ino".
	SketchExtension string

	// Filter restricts compiled examples to those matching a glob.
	Filter []string

	SkipIndexUpdate bool

	// DryRun resolves and prints the plan without invoking the tool.
	DryRun bool
}

// StageFunc copies the library source into the libraries directory.
type StageFunc func(src, dest string) error

// Runner drives the pipeline.
type Runner struct {
	opts     Options
	registry *platform.Registry
	tool     arduino.ToolClient
	out      *console.Printer
	logger   *slog.Logger

	stage StageFunc
	now   func() time.Time
}

// New creates a Runner. A nil registry means the built-in table.
func New(opts Options, registry *platform.Registry, tool arduino.ToolClient, out *console.Printer, logger *slog.Logger) *Runner {
	if registry == nil {
		registry = platform.DefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SketchExtension == "" {
		opts.SketchExtension = examples.DefaultExtension
	}
	return &Runner{
		opts:     opts,
		registry: registry,
		tool:     tool,
		out:      out,
		logger:   logger,
		stage:    library.Stage,
		now:      time.Now,
	}
}

// WithStager replaces the library staging step.
func (r *Runner) WithStager(fn StageFunc) *Runner {
	r.stage = fn
	return r
}

// target is a resolved board.
type target struct {
	alias string
	fqbn  platform.FQBN
}

// Run executes the pipeline for the given platform and group aliases.
func (r *Runner) Run(ctx context.Context, args []string) (*Report, error) {
	report := &Report{
		Requested: args,
		DryRun:    r.opts.DryRun,
		Started:   r.now(),
	}
	defer func() { report.Finished = r.now() }()

	targets, err := r.resolve(args)
	if err != nil {
		return report, err
	}
	r.transition(report, StateArgumentsParsed)

	ws, err := paths.Workspace(r.opts.Workspace)
	if err != nil {
		return report, errors.NewUserError(err, "Pass --workspace or set GITHUB_WORKSPACE")
	}
	report.Workspace = ws

	lib, err := metadata.Read(filepath.Join(ws, metadata.FileName), r.logger)
	if err != nil {
		return report, errors.NewUserError(err, "Run boardci from the library root or pass --workspace")
	}
	report.Library = lib

	libDir, err := r.librariesDir()
	if err != nil {
		return report, err
	}
	dest := library.InstallDir(libDir, lib.Name)

	if r.opts.DryRun {
		r.printPlan(lib, dest, targets)
		r.transition(report, StateDone)
		return report, nil
	}

	if added, err := paths.AppendPath(paths.BinDir(ws)); err != nil {
		return report, errors.NewSystemError(err, "")
	} else if added {
		r.logger.Debug("extended PATH", "dir", paths.BinDir(ws))
	}

	if err := r.stage(paths.SourceDir(ws), dest); err != nil {
		return report, errors.NewSystemError(errors.Wrap(err, "staging library"), "Check that src/ exists and the libraries directory is writable")
	}
	r.logger.Info("library staged", "name", lib.Name, "dest", dest)

	installer := install.NewInstaller(r.tool, r.out, r.logger)

	if r.opts.SkipIndexUpdate {
		r.logger.Info("skipping core index update")
	} else if err := installer.UpdateIndex(ctx); err != nil {
		return report, err
	}
	r.transition(report, StateIndexUpdated)

	failures, err := installer.InstallDependencies(ctx, lib.Dependencies)
	report.DependencyFailures = failures
	if err != nil {
		return report, err
	}
	r.transition(report, StateDependenciesInstalled)

	tester := examples.NewTester(r.tool, r.out, r.logger,
		examples.WithExtension(r.opts.SketchExtension),
		examples.WithFilter(r.opts.Filter...),
	)
	examplesDir := paths.ExamplesDir(ws)

	for _, t := range targets {
		if err := installer.InstallPlatform(ctx, t.fqbn); err != nil {
			return report, err
		}
		r.transition(report, StatePlatformInstalled)

		res, err := tester.TestAll(ctx, examplesDir, t.fqbn)
		if res != nil {
			report.Platforms = append(report.Platforms, platformReport(t, res))
		}
		if err != nil {
			return report, err
		}
		r.transition(report, StateExamplesTested)
		r.summarize(report.Platforms[len(report.Platforms)-1])
	}

	r.transition(report, StateDone)
	return report, nil
}

func (r *Runner) resolve(args []string) ([]target, error) {
	if len(args) == 0 {
		return nil, errors.NewUserError(errors.New("no platforms requested"), "Pass one or more platform or group aliases, see: boardci platforms")
	}

	aliases, err := r.registry.Expand(args)
	if err != nil {
		return nil, errors.NewUserError(err, "Run: boardci platforms")
	}

	targets := make([]target, 0, len(aliases))
	for _, a := range aliases {
		e, _ := r.registry.Lookup(a)
		targets = append(targets, target{alias: a, fqbn: e.FQBN})
	}
	return targets, nil
}

func (r *Runner) librariesDir() (string, error) {
	if r.opts.LibrariesDir != "" {
		return r.opts.LibrariesDir, nil
	}
	home, err := paths.ResolveHome()
	if err != nil {
		return "", errors.NewSystemError(err, "Set HOME or pass libraries_dir in the config")
	}
	return paths.LibrariesDir(home), nil
}

func (r *Runner) transition(report *Report, s State) {
	report.State = s
	r.logger.Debug("state", "state", s.String())
}

func (r *Runner) printPlan(lib *metadata.Library, dest string, targets []target) {
	r.out.Info("Library: %s", lib.Name)
	r.out.Info("Stage into: %s", dest)
	for _, dep := range lib.Dependencies {
		r.out.Info("Would install dependency: %s", dep.Spec())
	}
	for _, t := range targets {
		r.out.Info("Would test %s (%s) with core %s", t.alias, t.fqbn, t.fqbn.Package())
	}
}

func (r *Runner) summarize(p PlatformReport) {
	total := len(p.Examples)
	if p.Passed {
		r.out.Pass("%s: %d of %d examples compiled", p.Alias, total, total)
		return
	}
	r.out.Fail("%s: %d of %d examples failed", p.Alias, len(p.Failed()), total)
}

func platformReport(t target, res *examples.Result) PlatformReport {
	return PlatformReport{
		Alias:    t.alias,
		FQBN:     t.fqbn,
		Examples: res.Outcomes,
		Passed:   res.Passed(),
	}
}
