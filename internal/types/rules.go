package types

// VersionOverrideRule forces every package matching Pattern to a single
// version. Version holds the normalized form, RawVersion what was configured.
type VersionOverrideRule struct {
	Pattern    string
	Version    string
	RawVersion string
}

// OverrideRecord keeps the versions an override replaced, for reporting.
type OverrideRecord struct {
	Package          string
	Pattern          string
	Version          string
	OriginalVersions []string
}
