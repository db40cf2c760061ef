package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"system-packages/internal/shared"
	"system-packages/internal/types"
)

type VersionResolver struct{}

func NewVersionResolver() VersionResolver {
	return VersionResolver{}
}

// ResolveSplitPackages returns, for every package, the union of the
// versions seen at all locations. A package reported by more than one
// location with differing version sets is a split package conflict; it is
// logged and returned but never fails the run.
func (r VersionResolver) ResolveSplitPackages(ctx context.Context, counts types.VersionLocations) (map[string]types.VersionSet, []types.SplitPackageConflict) {
	resolved := make(map[string]types.VersionSet, len(counts))
	var conflicts []types.SplitPackageConflict
	for _, name := range shared.SortedKeys(counts) {
		assert.NotEmpty(ctx, name, "package name must be set")
		byLocation := counts[name]
		union := types.VersionSet{}
		var reference types.VersionSet
		conflict := false
		for _, location := range shared.SortedKeys(byLocation) {
			versions := types.VersionSet{}
			for version := range byLocation[location] {
				versions.Add(version)
			}
			if reference == nil {
				reference = versions
			} else if !reference.Equal(versions) {
				conflict = true
			}
			union.Union(versions)
		}
		resolved[name] = union
		if conflict && len(byLocation) > 1 {
			split := buildConflict(name, byLocation)
			conflicts = append(conflicts, split)
			log.Ctx(ctx).Warn().
				Str("package", name).
				Strs("locations", describeLocations(split)).
				Msg("split package with version conflict")
		}
	}
	log.Ctx(ctx).Debug().
		Int("packages", len(resolved)).
		Int("conflicts", len(conflicts)).
		Msg("split packages resolved")
	return resolved, conflicts
}

func buildConflict(name string, byLocation map[string]map[string]*types.VersionLocation) types.SplitPackageConflict {
	conflict := types.SplitPackageConflict{Package: name}
	for _, location := range shared.SortedKeys(byLocation) {
		entry := types.LocationVersions{Location: location}
		versions := byLocation[location]
		keys := make([]string, 0, len(versions))
		for version := range versions {
			keys = append(keys, version)
		}
		sort.Slice(keys, func(i, j int) bool {
			return types.CompareVersions(keys[i], keys[j]) < 0
		})
		for _, version := range keys {
			entry.Versions = append(entry.Versions, *versions[version])
		}
		conflict.Locations = append(conflict.Locations, entry)
	}
	return conflict
}

// describeLocations renders "location: version (count=n, spec=s)" lines.
func describeLocations(conflict types.SplitPackageConflict) []string {
	var out []string
	for _, location := range conflict.Locations {
		var parts []string
		for _, version := range location.Versions {
			parts = append(parts, describeVersion(version))
		}
		out = append(out, fmt.Sprintf("%s: %s", location.Location, strings.Join(parts, ", ")))
	}
	return out
}

func describeVersion(version types.VersionLocation) string {
	spec := version.SpecVersion
	if spec == "" {
		spec = "none"
	}
	return fmt.Sprintf("%s (count=%d, spec=%s)", version.Version, version.Count, spec)
}
