package app

import "system-packages/internal/types"

type GenerateRequest struct {
	ArtifactsPath    string
	OutputDir        string
	PropertyName     string
	ExcludeArtifacts []string
	ExcludePackages  []string
	VersionOverrides []string
	Workers          int
}

type GenerateResult struct {
	PropertiesPath string
	ReportPath     string
	PackageCount   int
	EntryCount     int
	Conflicts      []types.SplitPackageConflict
	Overrides      []types.OverrideRecord
}

type ValidateRequest struct {
	GenerateRequest
	BaselinePath string
}

type ValidateResult struct {
	Generate   GenerateResult
	Validation types.ValidationResult
}

type InspectRequest struct {
	Path         string
	PropertyName string
}

type InspectPackage struct {
	Name     string
	Versions []string
}

type InspectResult struct {
	PropertyName string
	PackageCount int
	EntryCount   int
	Packages     []InspectPackage
	MultiVersion []InspectPackage
}
