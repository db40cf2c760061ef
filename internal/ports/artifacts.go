package ports

import "system-packages/internal/types"

// ArtifactSourcePort loads the dependency set handed over by the build.
type ArtifactSourcePort interface {
	LoadArtifacts(path string) ([]types.ArtifactRef, error)
}
