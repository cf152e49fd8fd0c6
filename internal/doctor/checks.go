package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/boardci/internal/config"
	"github.com/thoreinstein/boardci/internal/examples"
	"github.com/thoreinstein/boardci/internal/metadata"
	"github.com/thoreinstein/boardci/internal/paths"
	"github.com/thoreinstein/boardci/internal/runner"
)

// ToolCheck verifies the build tool can be executed.
type ToolCheck struct {
	Binary string
	// BinDir is the workspace bin directory a run appends to PATH.
	BinDir string
	Runner runner.Runner
}

var _ Check = (*ToolCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ToolCheck) Name() string { return "build-tool" }

// Category returns the grouping for this check.
func (c *ToolCheck) Category() string { return "tool" }

// Run executes "<binary> version".
func (c *ToolCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"binary": c.Binary},
	}

	res, err := c.Runner.Run(ctx, c.Binary, "version")
	switch {
	case res != nil && res.ExitCode == runner.ExitNotFound:
		if c.BinDir != "" && isExecutable(filepath.Join(c.BinDir, c.Binary)) {
			result.Status = SeverityInfo
			result.Message = c.Binary + " not on PATH, found in " + c.BinDir + " which a run adds to PATH"
			return result
		}
		result.Status = SeverityError
		result.Message = c.Binary + " not found"
		result.FixHint = "install arduino-cli, place it in <workspace>/bin, or set cli in boardci.yaml"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = "running " + c.Binary + ": " + err.Error()
		return result
	case !res.Success():
		result.Status = SeverityError
		result.Message = c.Binary + " version exited with " + strings.TrimSpace(res.Output())
		return result
	}

	version := firstLine(res.Stdout)
	result.Details["version"] = version
	result.Status = SeverityPass
	result.Message = version
	return result
}

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	Config *config.Config
	// Source is the file the configuration came from, if any.
	Source string
}

var _ Check = (*ConfigCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string { return "configuration" }

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string { return "config" }

// Run validates the configuration and the platform table it produces.
func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"source": c.Source},
	}

	problems := make([]string, 0)
	for _, err := range config.Validate(c.Config) {
		problems = append(problems, err.Error())
	}
	if len(problems) == 0 {
		if _, err := c.Config.Registry(); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		result.Status = SeverityError
		result.Message = strings.Join(problems, "; ")
		result.Details["problems"] = problems
		result.FixHint = "edit boardci.yaml, or run: boardci config"
		return result
	}

	result.Status = SeverityPass
	if c.Source == "" {
		result.Message = "using built-in defaults"
	} else {
		result.Message = "loaded " + c.Source
	}
	return result
}

// WorkspaceCheck verifies the library layout: library.properties, src/ and
// examples/.
type WorkspaceCheck struct {
	Workspace string
	Extension string
}

var _ Check = (*WorkspaceCheck)(nil)

// Name returns the unique identifier for this check.
func (c *WorkspaceCheck) Name() string { return "library-layout" }

// Category returns the grouping for this check.
func (c *WorkspaceCheck) Category() string { return "workspace" }

// Run inspects the workspace.
func (c *WorkspaceCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"workspace": c.Workspace},
	}

	lib, err := metadata.Read(filepath.Join(c.Workspace, metadata.FileName), nil)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "run from the library root or pass --workspace"
		return result
	}
	result.Details["library"] = lib.Name
	result.Details["dependencies"] = len(lib.Dependencies)

	if info, err := os.Stat(paths.SourceDir(c.Workspace)); err != nil || !info.IsDir() {
		result.Status = SeverityError
		result.Message = "source directory " + paths.SourceDir(c.Workspace) + " not found"
		result.FixHint = "library sources must live in src/"
		return result
	}

	list, err := examples.Discover(paths.ExamplesDir(c.Workspace), c.Extension, nil)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}
	result.Details["examples"] = len(list)

	switch {
	case len(list) == 0:
		result.Status = SeverityWarning
		result.Message = "library " + lib.Name + " has no examples; every board will pass vacuously"
		result.FixHint = "add examples/<Name>/<Name>" + c.extension()
	case len(lib.Skipped) > 0:
		result.Status = SeverityWarning
		result.Message = "unparseable depends entries: " + strings.Join(lib.Skipped, ", ")
		result.FixHint = "use Name or Name (version) entries separated by commas"
	default:
		result.Status = SeverityPass
		result.Message = "library " + lib.Name + " looks complete"
	}
	return result
}

func (c *WorkspaceCheck) extension() string {
	if c.Extension == "" {
		return examples.DefaultExtension
	}
	return c.Extension
}

// LibrariesDirCheck verifies the user library directory can receive the
// staged library.
type LibrariesDirCheck struct {
	Dir string
}

var _ Check = (*LibrariesDirCheck)(nil)

// Name returns the unique identifier for this check.
func (c *LibrariesDirCheck) Name() string { return "libraries-dir" }

// Category returns the grouping for this check.
func (c *LibrariesDirCheck) Category() string { return "workspace" }

// Run checks that Dir is a writable directory.
func (c *LibrariesDirCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.Dir},
	}

	info, err := os.Stat(c.Dir)
	switch {
	case os.IsNotExist(err):
		result.Status = SeverityInfo
		result.Message = c.Dir + " does not exist yet and will be created"
		return result
	case err != nil:
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	case !info.IsDir():
		result.Status = SeverityError
		result.Message = c.Dir + " is not a directory"
		return result
	}

	if err := checkWritable(c.Dir); err != nil {
		result.Status = SeverityError
		result.Message = c.Dir + " is not writable"
		result.FixHint = "chmod u+w " + c.Dir + " or set libraries_dir"
		return result
	}

	result.Status = SeverityPass
	result.Message = c.Dir + " is writable"
	return result
}

// checkWritable creates and removes a probe file in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".boardci-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode().Perm()&0o111 != 0
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
