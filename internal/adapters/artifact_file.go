package adapters

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"system-packages/internal/ports"
	"system-packages/internal/shared"
	"system-packages/internal/types"
)

// ArtifactFileAdapter loads the artifact list yaml written by the build.
type ArtifactFileAdapter struct{}

func NewArtifactFileAdapter() ArtifactFileAdapter {
	return ArtifactFileAdapter{}
}

func (a ArtifactFileAdapter) LoadArtifacts(path string) ([]types.ArtifactRef, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifact list path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shared.FileError(err, fmt.Sprintf("artifact list not found: %s", path))
	}
	var list types.ArtifactList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse artifact list yaml").
			WithCause(err)
	}
	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to resolve artifact list directory").
			WithCause(err)
	}
	artifacts := make([]types.ArtifactRef, 0, len(list.Artifacts))
	for i, entry := range list.Artifacts {
		artifact, err := normalizeArtifact(entry, base)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid artifact entry %d: %s", i, err.Error()))
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

func normalizeArtifact(entry types.ArtifactRef, base string) (types.ArtifactRef, error) {
	entry.Group = strings.TrimSpace(entry.Group)
	entry.Artifact = strings.TrimSpace(entry.Artifact)
	entry.Version = strings.TrimSpace(entry.Version)
	entry.Path = strings.TrimSpace(entry.Path)
	switch {
	case entry.Group == "":
		return types.ArtifactRef{}, errors.New("group is required")
	case entry.Artifact == "":
		return types.ArtifactRef{}, errors.New("artifact is required")
	case entry.Path == "":
		return types.ArtifactRef{}, errors.New("path is required")
	}
	entry.Scope = types.ArtifactScope(strings.ToLower(strings.TrimSpace(string(entry.Scope))))
	if entry.Scope == "" {
		entry.Scope = types.ArtifactScopeCompile
	}
	entry.Type = strings.ToLower(strings.TrimSpace(entry.Type))
	if entry.Type == "" {
		entry.Type = types.ArtifactTypeJar
	}
	if !filepath.IsAbs(entry.Path) {
		entry.Path = filepath.Join(base, entry.Path)
	}
	entry.Path = filepath.Clean(entry.Path)
	return entry, nil
}

var _ ports.ArtifactSourcePort = ArtifactFileAdapter{}
