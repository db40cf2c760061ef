package types

import "fmt"

type ArtifactScope string

const (
	ArtifactScopeCompile  ArtifactScope = "compile"
	ArtifactScopeProvided ArtifactScope = "provided"
	ArtifactScopeRuntime  ArtifactScope = "runtime"
	ArtifactScopeTest     ArtifactScope = "test"
	ArtifactScopeSystem   ArtifactScope = "system"
)

// ArtifactTypeJar is the only artifact type the scanner opens.
const ArtifactTypeJar = "jar"

// ArtifactRef identifies one dependency archive as supplied by the build.
type ArtifactRef struct {
	Group    string        `yaml:"group"`
	Artifact string        `yaml:"artifact"`
	Version  string        `yaml:"version"`
	Scope    ArtifactScope `yaml:"scope"`
	Type     string        `yaml:"type"`
	Path     string        `yaml:"path"`
}

// Key returns the group:artifact pair used for artifact exclusion matching.
func (a ArtifactRef) Key() string {
	return fmt.Sprintf("%s:%s", a.Group, a.Artifact)
}

// Coordinate returns group:artifact:version.
func (a ArtifactRef) Coordinate() string {
	return fmt.Sprintf("%s:%s:%s", a.Group, a.Artifact, a.Version)
}

// RuntimeRelevant reports whether the scope contributes classes at runtime.
func (s ArtifactScope) RuntimeRelevant() bool {
	switch s {
	case ArtifactScopeCompile, ArtifactScopeProvided, ArtifactScopeRuntime:
		return true
	default:
		return false
	}
}

type ArtifactList struct {
	Artifacts []ArtifactRef `yaml:"artifacts"`
}

type SkipReason string

const (
	SkipReasonScope SkipReason = "scope"
	SkipReasonType  SkipReason = "type"
)

// SkippedArtifact records an artifact ignored for its scope or type.
type SkippedArtifact struct {
	Artifact ArtifactRef
	Reason   SkipReason
}

// ExcludedArtifact records an artifact dropped by an exclusion pattern.
type ExcludedArtifact struct {
	Artifact ArtifactRef
	Pattern  string
}
