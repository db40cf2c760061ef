package core

import (
	"sort"

	"system-packages/internal/types"
)

// ScanContext accumulates everything discovered during one scan run. It is
// not safe for concurrent mutation; DependencyScanner serializes writes.
type ScanContext struct {
	packages          map[string]*types.PackageInfo
	excluded          map[string]*types.PackageInfo
	excludedSources   map[string]map[string]struct{}
	locations         types.VersionLocations
	excludedArtifacts []types.ExcludedArtifact
	skippedArtifacts  []types.SkippedArtifact
	scannedArtifacts  []types.ArtifactRef
}

func NewScanContext() *ScanContext {
	return &ScanContext{
		packages:        map[string]*types.PackageInfo{},
		excluded:        map[string]*types.PackageInfo{},
		excludedSources: map[string]map[string]struct{}{},
		locations:       types.VersionLocations{},
	}
}

// TrackPackage records that coordinate exposes name at version. The
// version set only grows; the discovery method for a coordinate is
// overwritten by later calls.
func (c *ScanContext) TrackPackage(name string, version string, coordinate string, method types.DiscoveryMethod, parent string) {
	info, ok := c.packages[name]
	if !ok {
		info = types.NewPackageInfo(name)
		c.packages[name] = info
	}
	info.Versions.Add(version)
	info.Sources[coordinate] = method
	if parent != "" {
		info.ParentPackage = parent
	}
}

// UpdateVersionLocationCounts counts one sighting of version for name at
// location. Versions are compared after normalization.
func (c *ScanContext) UpdateVersionLocationCounts(location string, version string, specVersion string, name string) {
	normalized := NormalizeVersion(version)
	byLocation, ok := c.locations[name]
	if !ok {
		byLocation = map[string]map[string]*types.VersionLocation{}
		c.locations[name] = byLocation
	}
	byVersion, ok := byLocation[location]
	if !ok {
		byVersion = map[string]*types.VersionLocation{}
		byLocation[location] = byVersion
	}
	if existing, ok := byVersion[normalized]; ok {
		existing.Count++
		return
	}
	byVersion[normalized] = &types.VersionLocation{
		Version:     normalized,
		RawVersion:  version,
		SpecVersion: specVersion,
		Count:       1,
	}
}

// MarkPackageExcluded records an excluded package for reporting only.
func (c *ScanContext) MarkPackageExcluded(name string, pattern string, coordinate string) {
	info, ok := c.excluded[name]
	if !ok {
		info = types.NewPackageInfo(name)
		info.Excluded = true
		c.excluded[name] = info
		c.excludedSources[name] = map[string]struct{}{}
	}
	info.ExclusionPattern = pattern
	if coordinate != "" {
		c.excludedSources[name][coordinate] = struct{}{}
	}
}

func (c *ScanContext) RecordExcludedArtifact(artifact types.ArtifactRef, pattern string) {
	c.excludedArtifacts = append(c.excludedArtifacts, types.ExcludedArtifact{Artifact: artifact, Pattern: pattern})
}

func (c *ScanContext) RecordSkippedArtifact(artifact types.ArtifactRef, reason types.SkipReason) {
	c.skippedArtifacts = append(c.skippedArtifacts, types.SkippedArtifact{Artifact: artifact, Reason: reason})
}

func (c *ScanContext) RecordScannedArtifact(artifact types.ArtifactRef) {
	c.scannedArtifacts = append(c.scannedArtifacts, artifact)
}

func (c *ScanContext) Package(name string) (*types.PackageInfo, bool) {
	info, ok := c.packages[name]
	return info, ok
}

// Packages returns the included packages sorted by name.
func (c *ScanContext) Packages() []*types.PackageInfo {
	return sortedInfos(c.packages)
}

// ExcludedPackages returns the excluded packages sorted by name.
func (c *ScanContext) ExcludedPackages() []*types.PackageInfo {
	return sortedInfos(c.excluded)
}

// ExcludedPackageSources lists the artifacts that declared an excluded
// package, sorted.
func (c *ScanContext) ExcludedPackageSources(name string) []string {
	var out []string
	for coordinate := range c.excludedSources[name] {
		out = append(out, coordinate)
	}
	sort.Strings(out)
	return out
}

func (c *ScanContext) VersionLocations() types.VersionLocations {
	return c.locations
}

func (c *ScanContext) ExcludedArtifacts() []types.ExcludedArtifact {
	return c.excludedArtifacts
}

func (c *ScanContext) SkippedArtifacts() []types.SkippedArtifact {
	return c.skippedArtifacts
}

func (c *ScanContext) ScannedArtifacts() []types.ArtifactRef {
	return c.scannedArtifacts
}

func sortedInfos(infos map[string]*types.PackageInfo) []*types.PackageInfo {
	out := make([]*types.PackageInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
