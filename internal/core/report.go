package core

import (
	"fmt"
	"sort"
	"strings"

	"system-packages/internal/shared"
	"system-packages/internal/types"
)

// ReportInput is everything the report reads. Nothing in it is modified.
type ReportInput struct {
	Scan             *ScanContext
	Result           types.ScanRunResult
	Overrides        []types.OverrideRecord
	OverrideRules    []types.VersionOverrideRule
	Conflicts        []types.SplitPackageConflict
	ArtifactPatterns []string
	PackagePatterns  []string
}

// ReportGenerator renders the human-readable analysis report.
type ReportGenerator struct{}

func NewReportGenerator() ReportGenerator {
	return ReportGenerator{}
}

func (g ReportGenerator) Render(input ReportInput) string {
	scan := input.Scan
	if scan == nil {
		scan = NewScanContext()
	}
	w := &reportWriter{}
	w.title("System packages report")
	g.writeSummary(w, scan, input)
	g.writeConfiguration(w, input)
	g.writeExcludedArtifacts(w, scan)
	g.writeSkippedArtifacts(w, scan)
	g.writeOverrides(w, input.Overrides)
	g.writeIncludedBySource(w, scan)
	g.writeExcludedPackages(w, scan)
	g.writeInheritance(w, scan)
	g.writeConflicts(w, input.Conflicts)
	g.writeMethodTally(w, scan)
	g.writeUnusedPatterns(w, scan, input)
	return w.String()
}

func (g ReportGenerator) writeSummary(w *reportWriter, scan *ScanContext, input ReportInput) {
	entries := 0
	for _, versions := range input.Result.Packages {
		entries += len(versions)
	}
	w.section("Summary")
	w.line(0, "Artifacts scanned:       %d", len(scan.ScannedArtifacts()))
	w.line(0, "Artifacts excluded:      %d", len(scan.ExcludedArtifacts()))
	w.line(0, "Artifacts skipped:       %d", len(scan.SkippedArtifacts()))
	w.line(0, "Packages included:       %d", len(scan.Packages()))
	w.line(0, "Packages excluded:       %d", len(scan.ExcludedPackages()))
	w.line(0, "Version overrides:       %d", len(input.Overrides))
	w.line(0, "Split package conflicts: %d", len(input.Conflicts))
	w.line(0, "Package list entries:    %d", entries)
}

func (g ReportGenerator) writeConfiguration(w *reportWriter, input ReportInput) {
	w.section("Configuration")
	w.line(0, "Artifact exclusion patterns:")
	w.list(1, input.ArtifactPatterns)
	w.line(0, "Package exclusion patterns:")
	w.list(1, input.PackagePatterns)
	w.line(0, "Version overrides:")
	var rules []string
	for _, rule := range input.OverrideRules {
		rules = append(rules, fmt.Sprintf("%s=%s", rule.Pattern, rule.RawVersion))
	}
	w.list(1, rules)
}

func (g ReportGenerator) writeExcludedArtifacts(w *reportWriter, scan *ScanContext) {
	w.section("Excluded artifacts (by rule)")
	grouped := map[string][]string{}
	for _, excluded := range scan.ExcludedArtifacts() {
		grouped[excluded.Pattern] = append(grouped[excluded.Pattern],
			fmt.Sprintf("%s (%s)", excluded.Artifact.Coordinate(), excluded.Artifact.Path))
	}
	w.groups(grouped)
}

func (g ReportGenerator) writeSkippedArtifacts(w *reportWriter, scan *ScanContext) {
	w.section("Skipped artifacts (by reason)")
	grouped := map[string][]string{}
	for _, skipped := range scan.SkippedArtifacts() {
		var detail string
		switch skipped.Reason {
		case types.SkipReasonScope:
			detail = fmt.Sprintf("scope=%s", skipped.Artifact.Scope)
		case types.SkipReasonType:
			detail = fmt.Sprintf("type=%s", skipped.Artifact.Type)
		}
		key := string(skipped.Reason)
		grouped[key] = append(grouped[key], fmt.Sprintf("%s (%s)", skipped.Artifact.Coordinate(), detail))
	}
	w.groups(grouped)
}

func (g ReportGenerator) writeOverrides(w *reportWriter, overrides []types.OverrideRecord) {
	w.section("Version overrides (by rule)")
	grouped := map[string][]string{}
	for _, record := range overrides {
		original := strings.Join(record.OriginalVersions, ", ")
		if original == "" {
			original = "none"
		}
		grouped[record.Pattern] = append(grouped[record.Pattern],
			fmt.Sprintf("%s: %s -> %s", record.Package, original, record.Version))
	}
	w.groups(grouped)
}

func (g ReportGenerator) writeIncludedBySource(w *reportWriter, scan *ScanContext) {
	w.section("Included packages (by source artifact)")
	locations := scan.VersionLocations()
	packages := scan.Packages()
	wrote := false
	for _, artifact := range scan.ScannedArtifacts() {
		coordinate := artifact.Coordinate()
		var lines []string
		for _, info := range packages {
			method, ok := info.Sources[coordinate]
			if !ok {
				continue
			}
			line := fmt.Sprintf("%s %s [%s]", info.Name, locationVersions(locations[info.Name][artifact.Path]), method)
			if method == types.DiscoveryInherited && info.ParentPackage != "" {
				line += fmt.Sprintf(" inherited from %s", info.ParentPackage)
			}
			lines = append(lines, line)
		}
		w.line(0, "%s (%s): %d packages", coordinate, artifact.Path, len(lines))
		for _, line := range lines {
			w.line(1, "%s", line)
		}
		wrote = true
	}
	if !wrote {
		w.line(0, "(none)")
	}
}

func (g ReportGenerator) writeExcludedPackages(w *reportWriter, scan *ScanContext) {
	w.section("Excluded packages (by rule)")
	grouped := map[string][]string{}
	for _, info := range scan.ExcludedPackages() {
		sources := scan.ExcludedPackageSources(info.Name)
		grouped[info.ExclusionPattern] = append(grouped[info.ExclusionPattern],
			fmt.Sprintf("%s (from %s)", info.Name, strings.Join(sources, ", ")))
	}
	w.groups(grouped)
}

func (g ReportGenerator) writeInheritance(w *reportWriter, scan *ScanContext) {
	w.section("Version inheritance (by parent package)")
	grouped := map[string][]string{}
	for _, info := range scan.Packages() {
		if info.ParentPackage == "" {
			continue
		}
		grouped[info.ParentPackage] = append(grouped[info.ParentPackage],
			fmt.Sprintf("%s %s", info.Name, strings.Join(info.Versions.Sorted(), ", ")))
	}
	w.groups(grouped)
}

func (g ReportGenerator) writeConflicts(w *reportWriter, conflicts []types.SplitPackageConflict) {
	w.section("Split packages with version conflicts")
	if len(conflicts) == 0 {
		w.line(0, "(none)")
		return
	}
	for _, conflict := range conflicts {
		w.line(0, "%s:", conflict.Package)
		w.list(1, describeLocations(conflict))
	}
}

func (g ReportGenerator) writeMethodTally(w *reportWriter, scan *ScanContext) {
	w.section("Packages by discovery method")
	tally := map[types.DiscoveryMethod]int{}
	for _, info := range scan.Packages() {
		seen := map[types.DiscoveryMethod]struct{}{}
		for _, method := range info.Sources {
			seen[method] = struct{}{}
		}
		for method := range seen {
			tally[method]++
		}
	}
	for _, method := range types.DiscoveryMethods {
		w.line(0, "%-30s %d", string(method)+":", tally[method])
	}
}

func (g ReportGenerator) writeUnusedPatterns(w *reportWriter, scan *ScanContext, input ReportInput) {
	w.section("Unused configuration")

	usedArtifact := map[string]struct{}{}
	for _, excluded := range scan.ExcludedArtifacts() {
		usedArtifact[excluded.Pattern] = struct{}{}
	}
	usedPackage := map[string]struct{}{}
	for _, info := range scan.ExcludedPackages() {
		usedPackage[info.ExclusionPattern] = struct{}{}
	}
	usedOverride := map[string]struct{}{}
	for _, record := range input.Overrides {
		usedOverride[record.Pattern] = struct{}{}
	}
	var overridePatterns []string
	for _, rule := range input.OverrideRules {
		overridePatterns = append(overridePatterns, rule.Pattern)
	}

	w.line(0, "Artifact exclusion patterns that matched nothing:")
	w.list(1, unused(input.ArtifactPatterns, usedArtifact))
	w.line(0, "Package exclusion patterns that matched nothing:")
	w.list(1, unused(input.PackagePatterns, usedPackage))
	w.line(0, "Version override patterns that matched nothing:")
	w.list(1, unused(overridePatterns, usedOverride))
}

func unused(patterns []string, used map[string]struct{}) []string {
	var out []string
	for _, pattern := range patterns {
		if _, ok := used[pattern]; !ok {
			out = append(out, pattern)
		}
	}
	return out
}

func locationVersions(versions map[string]*types.VersionLocation) string {
	keys := make([]string, 0, len(versions))
	for key := range versions {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return types.CompareVersions(keys[i], keys[j]) < 0
	})
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		version := versions[key]
		if version.RawVersion != "" && version.RawVersion != version.Version {
			parts = append(parts, fmt.Sprintf("%s (%s)", version.Version, version.RawVersion))
			continue
		}
		parts = append(parts, version.Version)
	}
	return strings.Join(parts, ", ")
}

type reportWriter struct {
	b strings.Builder
}

func (w *reportWriter) title(text string) {
	w.b.WriteString(text)
	w.b.WriteString("\n")
	w.b.WriteString(strings.Repeat("=", len(text)))
	w.b.WriteString("\n")
}

func (w *reportWriter) section(text string) {
	w.b.WriteString("\n")
	w.b.WriteString(text)
	w.b.WriteString("\n")
	w.b.WriteString(strings.Repeat("-", len(text)))
	w.b.WriteString("\n")
}

func (w *reportWriter) line(indent int, format string, args ...any) {
	w.b.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteString("\n")
}

func (w *reportWriter) list(indent int, items []string) {
	if len(items) == 0 {
		w.line(indent, "(none)")
		return
	}
	for _, item := range items {
		w.line(indent, "%s", item)
	}
}

// groups writes one block per key, keys and items sorted.
func (w *reportWriter) groups(grouped map[string][]string) {
	if len(grouped) == 0 {
		w.line(0, "(none)")
		return
	}
	for _, key := range shared.SortedKeys(grouped) {
		items := append([]string(nil), grouped[key]...)
		sort.Strings(items)
		w.line(0, "%s (%d):", key, len(items))
		w.list(1, items)
	}
}

func (w *reportWriter) String() string {
	return w.b.String()
}
