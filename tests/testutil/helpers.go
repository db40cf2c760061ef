// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"system-packages/internal/types"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// Jar describes a jar fixture. An empty Manifest produces a jar without
// META-INF/MANIFEST.MF.
type Jar struct {
	Name     string
	Manifest string
	Files    []string
}

// WriteJar builds the jar under dir and returns its path. Every file entry
// is written with empty content.
func WriteJar(t *testing.T, dir string, jar Jar) string {
	t.Helper()
	path := filepath.Join(dir, jar.Name)
	out, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(out)
	if jar.Manifest != "" {
		entry, err := writer.Create("META-INF/MANIFEST.MF")
		require.NoError(t, err)
		_, err = entry.Write([]byte(jar.Manifest))
		require.NoError(t, err)
	}
	for _, name := range jar.Files {
		_, err := writer.Create(name)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, out.Close())
	return path
}

// WriteClassDir lays files out under dir the way a compiler output
// directory would look and returns dir.
func WriteClassDir(t *testing.T, dir string, manifest string, files ...string) string {
	t.Helper()
	if manifest != "" {
		files = append(files, "META-INF/MANIFEST.MF")
	}
	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		content := ""
		if name == "META-INF/MANIFEST.MF" {
			content = manifest
		}
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// WriteArtifactList writes an artifact list yaml next to the fixtures and
// returns its path.
func WriteArtifactList(t *testing.T, dir string, artifacts []types.ArtifactRef) string {
	t.Helper()
	data, err := yaml.Marshal(types.ArtifactList{Artifacts: artifacts})
	require.NoError(t, err)
	path := filepath.Join(dir, "artifacts.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
