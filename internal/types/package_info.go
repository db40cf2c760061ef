package types

type DiscoveryMethod string

const (
	DiscoveryExportHeader     DiscoveryMethod = "export-header"
	DiscoveryManifestEntry    DiscoveryMethod = "manifest-entry"
	DiscoveryArchiveStructure DiscoveryMethod = "archive-structure"
	DiscoveryInherited        DiscoveryMethod = "inherited-from-parent-package"
)

// DiscoveryMethods lists every method in report order.
var DiscoveryMethods = []DiscoveryMethod{
	DiscoveryExportHeader,
	DiscoveryManifestEntry,
	DiscoveryInherited,
	DiscoveryArchiveStructure,
}

// PackageInfo aggregates everything observed about one package name
// across all scanned archives.
type PackageInfo struct {
	Name             string
	Versions         VersionSet
	Sources          map[string]DiscoveryMethod
	ParentPackage    string
	Excluded         bool
	ExclusionPattern string
}

func NewPackageInfo(name string) *PackageInfo {
	return &PackageInfo{
		Name:     name,
		Versions: VersionSet{},
		Sources:  map[string]DiscoveryMethod{},
	}
}

// VersionLocation counts how often a normalized version was reported for
// a package at one origin location. Count is always at least 1.
type VersionLocation struct {
	Version     string
	RawVersion  string
	SpecVersion string
	Count       int
}

// VersionLocations is package -> location -> normalized version.
type VersionLocations map[string]map[string]map[string]*VersionLocation

// LocationVersions lists what one location reported for a split package.
type LocationVersions struct {
	Location string
	Versions []VersionLocation
}

type SplitPackageConflict struct {
	Package   string
	Locations []LocationVersions
}
