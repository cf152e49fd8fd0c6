package platform

import (
	"strings"

	"github.com/thoreinstein/boardci/internal/errors"
)

// ErrInvalidFQBN is returned when a board name lacks vendor, arch or board.
var ErrInvalidFQBN = errors.New("invalid FQBN")

// FQBN is a fully-qualified board name: vendor:arch:board[:options].
type FQBN string

// ParseFQBN validates s and returns it as an FQBN.
func ParseFQBN(s string) (FQBN, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return "", errors.Wrapf(ErrInvalidFQBN, "%q: want vendor:arch:board[:options]", s)
	}
	for _, p := range parts[:3] {
		if strings.TrimSpace(p) == "" {
			return "", errors.Wrapf(ErrInvalidFQBN, "%q: empty segment", s)
		}
	}
	return FQBN(s), nil
}

func (f FQBN) segment(i int) string {
	parts := strings.SplitN(string(f), ":", 4)
	if i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Vendor returns the package maintainer segment, e.g. "rakwireless".
func (f FQBN) Vendor() string { return f.segment(0) }

// Arch returns the architecture segment, e.g. "nrf52".
func (f FQBN) Arch() string { return f.segment(1) }

// Board returns the board id segment, e.g. "WisCoreRAK4631Board".
func (f FQBN) Board() string { return f.segment(2) }

// Options returns the raw board options, e.g. "softdevice=s140v6,debug=l0".
func (f FQBN) Options() string { return f.segment(3) }

// Package returns the installable core, vendor:arch, ignoring the board id
// and any options.
func (f FQBN) Package() string {
	parts := strings.SplitN(string(f), ":", 3)
	if len(parts) < 2 {
		return string(f)
	}
	return parts[0] + ":" + parts[1]
}

func (f FQBN) String() string { return string(f) }
