package types

import (
	"sort"

	debversion "github.com/knqyf263/go-deb-version"
)

// VersionSet is an unordered set of version strings.
type VersionSet map[string]struct{}

func NewVersionSet(versions ...string) VersionSet {
	set := VersionSet{}
	for _, version := range versions {
		set.Add(version)
	}
	return set
}

func (s VersionSet) Add(version string) {
	s[version] = struct{}{}
}

func (s VersionSet) Has(version string) bool {
	_, ok := s[version]
	return ok
}

func (s VersionSet) Union(other VersionSet) {
	for version := range other {
		s.Add(version)
	}
}

func (s VersionSet) Equal(other VersionSet) bool {
	if len(s) != len(other) {
		return false
	}
	for version := range s {
		if !other.Has(version) {
			return false
		}
	}
	return true
}

func (s VersionSet) Clone() VersionSet {
	out := make(VersionSet, len(s))
	out.Union(s)
	return out
}

// Sorted returns the versions in ascending version order. Strings that do
// not parse as versions sort lexically after the ones that do.
func (s VersionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for version := range s {
		out = append(out, version)
	}
	sort.Slice(out, func(i, j int) bool {
		return CompareVersions(out[i], out[j]) < 0
	})
	return out
}

// CompareVersions orders two version strings numerically where possible.
func CompareVersions(a string, b string) int {
	va, errA := debversion.NewVersion(a)
	vb, errB := debversion.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		if cmp := va.Compare(vb); cmp != 0 {
			return cmp
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
