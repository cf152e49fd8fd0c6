// Package install prepares the board-manager environment: package index,
// board cores and library dependencies.
//
// Index and core failures are fatal and returned as errors. Dependency
// failures are not: each one is reported and collected, and installation
// continues with the next dependency. The asymmetry is intentional; a
// missing optional dependency often only breaks some examples, and the
// compile step will surface that per example.
package install

import (
	"context"
	"log/slog"

	"github.com/thoreinstein/boardci/internal/arduino"
	"github.com/thoreinstein/boardci/internal/console"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/metadata"
	"github.com/thoreinstein/boardci/internal/platform"
	"github.com/thoreinstein/boardci/internal/runner"
)

// DependencyFailure records a dependency that could not be installed.
type DependencyFailure struct {
	Dependency metadata.Dependency `json:"dependency" yaml:"dependency" toml:"dependency"`
	ExitCode   int                 `json:"exit_code" yaml:"exit_code" toml:"exit_code"`
	Output     string              `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
}

// Installer runs installation steps through a ToolClient.
type Installer struct {
	tool   arduino.ToolClient
	out    *console.Printer
	logger *slog.Logger
}

// NewInstaller creates an Installer.
func NewInstaller(tool arduino.ToolClient, out *console.Printer, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Installer{tool: tool, out: out, logger: logger}
}

// UpdateIndex refreshes the package index. Failure is fatal.
func (i *Installer) UpdateIndex(ctx context.Context) error {
	i.out.Info("Updating core index")
	res, err := i.tool.UpdateIndex(ctx)
	if err := runner.Check(res, err, "Failed to update core index"); err != nil {
		return errors.NewSystemError(err, "Check network access to the board index URLs")
	}
	return nil
}

// InstallPlatform installs the core providing fqbn (vendor:arch only).
// Failure is fatal.
func (i *Installer) InstallPlatform(ctx context.Context, fqbn platform.FQBN) error {
	pkg := fqbn.Package()
	i.out.Info("Installing platform: %s", pkg)
	res, err := i.tool.InstallPlatform(ctx, pkg)
	if err := runner.Check(res, err, "FAILED to install "+pkg); err != nil {
		return errors.NewSystemError(err, "Verify the core is published in one of the additional board index URLs")
	}
	i.logger.Debug("platform installed", "package", pkg, "fqbn", fqbn)
	return nil
}

// InstallDependencies installs each dependency in order and returns the
// ones that failed. Only a cancelled context stops the loop early.
func (i *Installer) InstallDependencies(ctx context.Context, deps []metadata.Dependency) ([]DependencyFailure, error) {
	var failures []DependencyFailure
	for _, dep := range deps {
		if err := ctx.Err(); err != nil {
			return failures, errors.Wrap(err, "installing dependencies")
		}

		spec := dep.Spec()
		i.out.Info("Installing dependency: %s", spec)
		res, err := i.tool.InstallLibrary(ctx, spec)
		if err == nil && res.Success() {
			continue
		}

		f := DependencyFailure{Dependency: dep, ExitCode: -1}
		if res != nil {
			f.ExitCode = res.ExitCode
			f.Output = res.Output()
		}
		if err != nil && res == nil {
			f.Output = err.Error()
		}
		failures = append(failures, f)

		version := dep.Version
		if version == "" {
			version = "any"
		}
		i.out.Fail("Error installing dependency: %s with version %s", dep.Name, version)
		i.out.Output(f.Output)
		i.logger.Warn("dependency install failed", "dependency", spec, "exit", f.ExitCode, "err", err)
	}

	if len(failures) > 0 {
		i.logger.Info("dependencies installed with failures",
			"installed", len(deps)-len(failures), "failed", len(failures))
	}
	return failures, nil
}
