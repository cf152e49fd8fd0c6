package platform

import (
	"slices"

	"github.com/thoreinstein/boardci/internal/errors"
)

// Sentinel errors for registry construction.
var (
	// ErrDuplicateAlias is returned when two entries share an alias.
	ErrDuplicateAlias = errors.New("duplicate platform alias")

	// ErrInvalidEntry is returned for entries that cannot be resolved,
	// such as empty aliases, groups with unknown members, or nested groups.
	ErrInvalidEntry = errors.New("invalid platform entry")
)

// Kind discriminates the Entry variants.
type Kind int

const (
	// KindBoard entries resolve to a single FQBN.
	KindBoard Kind = iota
	// KindGroup entries resolve to the FQBNs of their member boards.
	KindGroup
)

// String returns "board" or "group".
func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "board"
}

// Entry is one row of the platform table.
type Entry struct {
	Alias   string   `json:"alias" yaml:"alias"`
	Kind    Kind     `json:"-" yaml:"-"`
	FQBN    FQBN     `json:"fqbn,omitempty" yaml:"fqbn,omitempty"`
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`
}

// Board returns a Board entry.
func Board(alias string, fqbn FQBN) Entry {
	return Entry{Alias: alias, Kind: KindBoard, FQBN: fqbn}
}

// Group returns a Group entry whose members are board aliases.
func Group(alias string, members ...string) Entry {
	return Entry{Alias: alias, Kind: KindGroup, Members: members}
}

// Registry is an immutable alias table. It is safe for concurrent use.
type Registry struct {
	order   []string
	entries map[string]Entry
}

// NewRegistry builds a registry, validating that every group member is a
// known board alias.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if e.Alias == "" {
			return nil, errors.Wrap(ErrInvalidEntry, "empty alias")
		}
		if _, exists := r.entries[e.Alias]; exists {
			return nil, errors.Wrapf(ErrDuplicateAlias, "%q", e.Alias)
		}
		if e.Kind == KindBoard {
			if _, err := ParseFQBN(string(e.FQBN)); err != nil {
				return nil, errors.Wrapf(err, "board %q", e.Alias)
			}
		}
		r.order = append(r.order, e.Alias)
		r.entries[e.Alias] = e
	}
	if err := r.validateGroups(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) validateGroups() error {
	for _, alias := range r.order {
		e := r.entries[alias]
		if e.Kind != KindGroup {
			continue
		}
		if len(e.Members) == 0 {
			return errors.Wrapf(ErrInvalidEntry, "group %q has no members", alias)
		}
		for _, m := range e.Members {
			member, ok := r.entries[m]
			if !ok {
				return errors.Wrapf(ErrInvalidEntry, "group %q: unknown member %q", alias, m)
			}
			if member.Kind != KindBoard {
				return errors.Wrapf(ErrInvalidEntry, "group %q: member %q is a group", alias, m)
			}
		}
	}
	return nil
}

// Extend returns a new registry with extra entries added. An extra entry
// whose alias already exists replaces the original in place.
func (r *Registry) Extend(extra ...Entry) (*Registry, error) {
	merged := r.Entries()
	for _, e := range extra {
		idx := slices.IndexFunc(merged, func(x Entry) bool { return x.Alias == e.Alias })
		if idx >= 0 {
			merged[idx] = e
			continue
		}
		merged = append(merged, e)
	}
	return NewRegistry(merged...)
}

// Lookup returns the entry for alias.
func (r *Registry) Lookup(alias string) (Entry, bool) {
	e, ok := r.entries[alias]
	return e, ok
}

// Entries returns all entries in declaration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, alias := range r.order {
		out = append(out, r.entries[alias])
	}
	return out
}

// Aliases returns all aliases in declaration order.
func (r *Registry) Aliases() []string {
	return slices.Clone(r.order)
}

// Resolve returns the FQBNs alias stands for. A board yields one FQBN; a
// group yields its members' FQBNs in declared order.
func (r *Registry) Resolve(alias string) ([]FQBN, error) {
	boards, err := r.boards(alias)
	if err != nil {
		return nil, err
	}
	out := make([]FQBN, len(boards))
	for i, b := range boards {
		out[i] = r.entries[b].FQBN
	}
	return out, nil
}

// Expand flattens names into concrete board aliases. Duplicates produced by
// overlapping groups are dropped, keeping the first occurrence. Any unknown
// name fails the whole expansion.
func (r *Registry) Expand(names []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		boards, err := r.boards(name)
		if err != nil {
			return nil, err
		}
		for _, b := range boards {
			if seen[b] {
				continue
			}
			seen[b] = true
			out = append(out, b)
		}
	}
	return out, nil
}

// boards returns the board aliases name expands to.
func (r *Registry) boards(name string) ([]string, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownPlatform, "%q", name)
	}
	switch e.Kind {
	case KindGroup:
		return slices.Clone(e.Members), nil
	default:
		return []string{e.Alias}, nil
	}
}
