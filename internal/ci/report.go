package ci

import (
	"time"

	"github.com/thoreinstein/boardci/internal/examples"
	"github.com/thoreinstein/boardci/internal/install"
	"github.com/thoreinstein/boardci/internal/metadata"
	"github.com/thoreinstein/boardci/internal/platform"
)

// Report is the outcome of one Run.
type Report struct {
	Library            *metadata.Library           `json:"library,omitempty" yaml:"library,omitempty" toml:"library,omitempty"`
	Workspace          string                      `json:"workspace" yaml:"workspace" toml:"workspace"`
	Requested          []string                    `json:"requested" yaml:"requested" toml:"requested"`
	Platforms          []PlatformReport            `json:"platforms" yaml:"platforms" toml:"platforms"`
	DependencyFailures []install.DependencyFailure `json:"dependency_failures,omitempty" yaml:"dependency_failures,omitempty" toml:"dependency_failures,omitempty"`
	State              State                       `json:"state" yaml:"state" toml:"state"`
	DryRun             bool                        `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run,omitempty"`
	Started            time.Time                   `json:"started" yaml:"started" toml:"started"`
	Finished           time.Time                   `json:"finished" yaml:"finished" toml:"finished"`
}

// PlatformReport is the outcome for one board.
type PlatformReport struct {
	Alias    string             `json:"alias" yaml:"alias" toml:"alias"`
	FQBN     platform.FQBN      `json:"fqbn" yaml:"fqbn" toml:"fqbn"`
	Examples []examples.Outcome `json:"examples" yaml:"examples" toml:"examples"`
	Passed   bool               `json:"passed" yaml:"passed" toml:"passed"`
}

// Failed returns the outcomes that did not compile.
func (p PlatformReport) Failed() []examples.Outcome {
	var out []examples.Outcome
	for _, o := range p.Examples {
		if !o.Passed {
			out = append(out, o)
		}
	}
	return out
}

// Passed reports whether the run reached the end and every board passed.
func (r *Report) Passed() bool {
	if r == nil || r.State != StateDone {
		return false
	}
	for _, p := range r.Platforms {
		if !p.Passed {
			return false
		}
	}
	return true
}

// FailedPlatforms returns the boards with at least one failing example.
func (r *Report) FailedPlatforms() []PlatformReport {
	var out []PlatformReport
	for _, p := range r.Platforms {
		if !p.Passed {
			out = append(out, p)
		}
	}
	return out
}

// Duration is the wall time of the run, or zero if it has not finished.
func (r *Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}
