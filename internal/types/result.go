package types

// ScanRunResult is the resolved package -> versions map after overrides.
type ScanRunResult struct {
	Packages map[string]VersionSet
}

// PackageChange is a package present on both sides of a validation whose
// versions differ.
type PackageChange struct {
	Package   string
	Baseline  []string
	Generated []string
}

type ValidationResult struct {
	Added       []string
	Removed     []string
	Changed     []PackageChange
	UnifiedDiff string
}

func (r ValidationResult) Matches() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}
