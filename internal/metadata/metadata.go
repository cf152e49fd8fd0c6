// Package metadata reads the library.properties descriptor of an Arduino
// library: its name, version and declared dependencies.
package metadata

import "fmt"

// FileName is the descriptor file name at the library root.
const FileName = "library.properties"

// Dependency is one entry of the depends= list.
type Dependency struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

// HasVersion reports whether a version constraint was declared.
func (d Dependency) HasVersion() bool {
	return d.Version != ""
}

// Spec returns the install argument: name, or name@version when constrained.
func (d Dependency) Spec() string {
	if d.HasVersion() {
		return d.Name + "@" + d.Version
	}
	return d.Name
}

func (d Dependency) String() string {
	if d.HasVersion() {
		return fmt.Sprintf("%s (%s)", d.Name, d.Version)
	}
	return d.Name
}

// Library is the subset of library.properties the pipeline uses.
type Library struct {
	Name         string       `json:"name" yaml:"name" toml:"name"`
	Version      string       `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`

	// Skipped holds depends= entries that could not be parsed.
	Skipped []string `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
}
