package ci

import "github.com/thoreinstein/boardci/internal/errors"

// State is a stage of the pipeline. A run only moves forward; the platform
// stages repeat once per requested board.
type State int

// Pipeline stages in execution order.
const (
	// StateStarted is the zero value: the run has not accepted its
	// arguments yet.
	StateStarted State = iota
	StateArgumentsParsed
	StateIndexUpdated
	StateDependenciesInstalled
	StatePlatformInstalled
	StateExamplesTested
	StateDone
)

var stateNames = [...]string{
	StateStarted:               "started",
	StateArgumentsParsed:       "arguments-parsed",
	StateIndexUpdated:          "index-updated",
	StateDependenciesInstalled: "dependencies-installed",
	StatePlatformInstalled:     "platform-installed",
	StateExamplesTested:        "examples-tested",
	StateDone:                  "done",
}

// String returns the kebab-case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return errors.Newf("unknown state %q", text)
}
