package diff

import (
	"maps"
	"slices"

	"github.com/caedis/fabric-mod-manager/internal/semver"
)

type ChangeType int

const (
	// Outdated means the repository has a strictly newer version.
	Outdated ChangeType = iota
	// Current means the installed version is equal to or newer than the
	// repository's.
	Current
	// Unknown means the repository version cannot be compared.
	Unknown
	// Untracked means the repository answered for a mod that is not
	// installed.
	Untracked
)

func (t ChangeType) String() string {
	switch t {
	case Outdated:
		return "outdated"
	case Current:
		return "current"
	case Unknown:
		return "unknown"
	case Untracked:
		return "untracked"
	}
	return "invalid"
}

type ModChange struct {
	ID               string
	Type             ChangeType
	InstalledVersion string
	LatestVersion    string
}

// Compute compares installed semver versions against the versions reported
// by the repository. Ids missing from latest produce no change. The result
// is sorted by id.
func Compute(installed, latest map[string]string) []ModChange {
	var changes []ModChange

	for _, id := range slices.Sorted(maps.Keys(latest)) {
		remote := latest[id]
		local, ok := installed[id]
		if !ok {
			changes = append(changes, ModChange{ID: id, Type: Untracked, LatestVersion: remote})
			continue
		}

		c := ModChange{ID: id, InstalledVersion: local, LatestVersion: remote}
		switch {
		case !semver.IsValid(remote) || !semver.IsValid(local):
			c.Type = Unknown
		case semver.Compare(remote, local) > 0:
			c.Type = Outdated
		default:
			c.Type = Current
		}
		changes = append(changes, c)
	}

	return changes
}

// Filter returns the changes of type t, preserving order.
func Filter(changes []ModChange, t ChangeType) []ModChange {
	var out []ModChange
	for _, c := range changes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Summary returns counts by change type.
func Summary(changes []ModChange) (outdated, current, unknown, untracked int) {
	for _, c := range changes {
		switch c.Type {
		case Outdated:
			outdated++
		case Current:
			current++
		case Unknown:
			unknown++
		case Untracked:
			untracked++
		}
	}
	return
}
