package core

import (
	"context"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"system-packages/internal/ports"
	"system-packages/internal/types"
)

// reservedPrefixes are archive paths that never hold exportable packages.
var reservedPrefixes = []string{
	"META-INF/",
	"OSGI-INF/",
	"OSGI-OPT/",
	"WEB-INF/",
	"java/",
}

// PackageFilter decides whether a package name is excluded.
type PackageFilter interface {
	PackageExcluded(name string) (string, bool)
}

// DiscoveredPackage is one package found in an archive, with its raw
// (not yet normalized) version.
type DiscoveredPackage struct {
	Name          string
	Version       string
	SpecVersion   string
	Method        types.DiscoveryMethod
	ParentPackage string
	Coordinate    string
}

// ArchiveCallback receives scan results for one archive.
type ArchiveCallback interface {
	OnPackage(pkg DiscoveredPackage)
	OnPackageExcluded(name string, pattern string, coordinate string)
}

// ArchiveScanner extracts packages and versions from one archive.
type ArchiveScanner struct {
	Filter  PackageFilter
	sources []discoverySource
}

func NewArchiveScanner(filter PackageFilter) ArchiveScanner {
	return ArchiveScanner{
		Filter: filter,
		sources: []discoverySource{
			exportHeaderSource{},
			structureSource{},
		},
	}
}

// Scan runs the discovery sources in priority order and reports the
// packages of the first source that yields any. Excluded packages are
// only reported through OnPackageExcluded.
func (s ArchiveScanner) Scan(ctx context.Context, archive ports.Archive, defaultVersion string, coordinate string, cb ArchiveCallback) error {
	if archive == nil || cb == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("archive scanner requires an archive and a callback")
	}
	input := sourceInput{
		defaultVersion: defaultVersion,
		files:          archive.Files(),
	}
	data, found, err := archive.Manifest()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read manifest of " + coordinate).
			WithCause(err)
	}
	switch {
	case !found:
		log.Ctx(ctx).Warn().Str("artifact", coordinate).Msg("archive has no manifest; using structural scan")
	default:
		manifest, err := ParseManifest(data)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("artifact", coordinate).Msg("ignoring unreadable manifest; using structural scan")
			break
		}
		input.manifest = &manifest
	}

	for _, source := range s.sources {
		candidates := source.discover(input)
		if len(candidates) == 0 {
			continue
		}
		log.Ctx(ctx).Debug().
			Str("artifact", coordinate).
			Str("source", source.name()).
			Int("packages", len(candidates)).
			Msg("packages discovered")
		for _, candidate := range candidates {
			if s.Filter != nil {
				if pattern, excluded := s.Filter.PackageExcluded(candidate.Name); excluded {
					cb.OnPackageExcluded(candidate.Name, pattern, coordinate)
					continue
				}
			}
			candidate.Coordinate = coordinate
			cb.OnPackage(candidate)
		}
		return nil
	}
	return nil
}

type sourceInput struct {
	manifest       *Manifest
	files          []string
	defaultVersion string
}

// discoverySource is one way of finding packages in an archive.
type discoverySource interface {
	name() string
	discover(input sourceInput) []DiscoveredPackage
}

// exportHeaderSource reads the Export-Package main attribute.
type exportHeaderSource struct{}

func (exportHeaderSource) name() string { return string(types.DiscoveryExportHeader) }

func (exportHeaderSource) discover(input sourceInput) []DiscoveredPackage {
	if input.manifest == nil {
		return nil
	}
	header := strings.TrimSpace(input.manifest.Main.Get(headerExportPackage))
	if header == "" {
		return nil
	}
	var out []DiscoveredPackage
	for _, clause := range ParseExportHeader(header) {
		for _, name := range clause.Packages {
			out = append(out, DiscoveredPackage{
				Name:    name,
				Version: clause.Version,
				Method:  types.DiscoveryExportHeader,
			})
		}
	}
	return out
}

// structureSource derives packages from the directories holding files,
// taking versions from named manifest sections where one applies.
type structureSource struct{}

func (structureSource) name() string { return string(types.DiscoveryArchiveStructure) }

func (structureSource) discover(input sourceInput) []DiscoveredPackage {
	anchors := manifestAnchors(input.manifest)
	var out []DiscoveredPackage
	for _, name := range structuralPackages(input.files) {
		found := DiscoveredPackage{
			Name:    name,
			Version: input.defaultVersion,
			Method:  types.DiscoveryArchiveStructure,
		}
		if anchorPkg, anchor, ok := InheritedVersion(name, anchors); ok {
			found.Version = anchor.Version
			found.SpecVersion = anchor.SpecVersion
			if anchorPkg == name {
				found.Method = types.DiscoveryManifestEntry
			} else {
				found.Method = types.DiscoveryInherited
				found.ParentPackage = anchorPkg
			}
		}
		out = append(out, found)
	}
	return out
}

// manifestAnchors collects the package versions declared by named
// manifest sections. Specification-Version wins over
// Implementation-Version.
func manifestAnchors(manifest *Manifest) map[string]VersionAnchor {
	anchors := map[string]VersionAnchor{}
	if manifest == nil {
		return anchors
	}
	for _, entryName := range manifest.Names {
		attrs := manifest.Entries[entryName]
		spec := strings.TrimSpace(attrs.Get(headerSpecificationVersion))
		impl := strings.TrimSpace(attrs.Get(headerImplementationVersion))
		if spec == "" && impl == "" {
			continue
		}
		pkg := entryPackageName(entryName)
		if pkg == "" {
			continue
		}
		anchor := VersionAnchor{Version: spec, SpecVersion: spec}
		if spec == "" {
			anchor.Version = impl
		}
		anchors[pkg] = anchor
	}
	return anchors
}

// entryPackageName turns a section name such as "com/acme/" or
// "com/acme/Foo.class" into "com.acme".
func entryPackageName(entryName string) string {
	name := strings.TrimPrefix(strings.TrimSpace(entryName), "/")
	if strings.HasSuffix(name, ".class") {
		name = path.Dir(name)
		if name == "." {
			return ""
		}
	}
	name = strings.Trim(name, "/")
	return strings.ReplaceAll(name, "/", ".")
}

// structuralPackages returns the sorted package names of every directory
// that directly contains a file.
func structuralPackages(files []string) []string {
	seen := map[string]struct{}{}
	for _, file := range files {
		dir := path.Dir(strings.TrimPrefix(file, "/"))
		if dir == "." || dir == "/" {
			continue
		}
		name, ok := directoryPackage(dir)
		if !ok {
			continue
		}
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func directoryPackage(dir string) (string, bool) {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(dir+"/", prefix) {
			return "", false
		}
	}
	segments := strings.Split(dir, "/")
	for _, segment := range segments {
		if !isJavaIdentifier(segment) {
			return "", false
		}
	}
	last := []rune(segments[len(segments)-1])
	if unicode.IsUpper(last[0]) {
		return "", false
	}
	return strings.Join(segments, "."), true
}

func isJavaIdentifier(segment string) bool {
	if segment == "" {
		return false
	}
	for i, r := range segment {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
