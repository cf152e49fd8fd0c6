// Package platform maps short platform and group aliases to fully-qualified
// board names (FQBNs).
//
// A [Registry] holds two kinds of [Entry]: a Board, which names exactly one
// FQBN, and a Group, which names an ordered list of board aliases. Groups are
// one level deep; a group may not contain another group.
//
//	reg := platform.DefaultRegistry()
//	fqbns, err := reg.Resolve("rak_platforms")
//	// [rakwireless:nrf52:WisCoreRAK4631Board:softdevice=s140v6,debug=l0 ...]
//
// Resolution is pure and never touches the board-management tool, so an
// unknown alias is reported before anything is installed.
package platform
