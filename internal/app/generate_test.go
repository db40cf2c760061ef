package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"system-packages/internal/types"
	"system-packages/tests/testutil"
)

const apiManifest = "Manifest-Version: 1.0\n" +
	"Export-Package: com.acme.api;version=\"1.2\",com.acme.spi;uses:=\"com.acme.api\";version=1.2.0\n"

// writeFixture lays out four artifacts: an exporting bundle, a plain jar, an
// excluded OSGi artifact and a test-scoped jar. It returns the artifact
// list path.
func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	api := testutil.WriteJar(t, dir, testutil.Jar{
		Name:     "api-1.2.jar",
		Manifest: apiManifest,
		Files:    []string{"com/acme/api/Api.class", "com/acme/hidden/Hidden.class"},
	})
	impl := testutil.WriteJar(t, dir, testutil.Jar{
		Name:  "impl-3.0.jar",
		Files: []string{"com/acme/impl/Impl.class", "javax/servlet/Servlet.class"},
	})
	osgi := testutil.WriteJar(t, dir, testutil.Jar{Name: "osgi.jar", Files: []string{"org/osgi/framework/Bundle.class"}})
	testLib := testutil.WriteJar(t, dir, testutil.Jar{Name: "junit.jar", Files: []string{"org/junit/Test.class"}})

	return testutil.WriteArtifactList(t, dir, []types.ArtifactRef{
		{Group: "com.acme", Artifact: "api", Version: "1.2", Scope: types.ArtifactScopeCompile, Type: "jar", Path: api},
		{Group: "com.acme", Artifact: "impl", Version: "3.0", Scope: types.ArtifactScopeRuntime, Type: "jar", Path: impl},
		{Group: "org.osgi", Artifact: "osgi.core", Version: "8.0.0", Scope: types.ArtifactScopeProvided, Type: "jar", Path: osgi},
		{Group: "junit", Artifact: "junit", Version: "4.13", Scope: types.ArtifactScopeTest, Type: "jar", Path: testLib},
	})
}

func TestGenerateWritesPropertiesAndReport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	result, err := NewService().Generate(t.Context(), GenerateRequest{
		ArtifactsPath: writeFixture(t, dir),
		OutputDir:     out,
		Workers:       2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.PackageCount)
	assert.Equal(t, 3, result.EntryCount)
	assert.Empty(t, result.Conflicts)
	data, err := os.ReadFile(result.PropertiesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "org.osgi.framework.system.packages.extra=\\\n"+
		" com.acme.api;version=\"1.2.0\",\\\n"+
		" com.acme.impl;version=\"3.0.0\",\\\n"+
		" com.acme.spi;version=\"1.2.0\"\n")
	assert.NotContains(t, string(data), "com.acme.hidden")
	assert.NotContains(t, string(data), "javax.servlet")

	report, err := os.ReadFile(result.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "org.osgi:osgi.core:8.0.0")
	assert.Contains(t, string(report), "junit:junit:4.13 (scope=test)")
	assert.Contains(t, string(report), "javax.servlet (from com.acme:impl:3.0)")
}

func TestGenerateAppliesOverrides(t *testing.T) {
	dir := t.TempDir()

	result, err := NewService().Generate(t.Context(), GenerateRequest{
		ArtifactsPath:    writeFixture(t, dir),
		OutputDir:        filepath.Join(dir, "out"),
		VersionOverrides: []string{"com.acme.s*=2"},
	})
	require.NoError(t, err)

	require.Len(t, result.Overrides, 1)
	assert.Equal(t, "com.acme.spi", result.Overrides[0].Package)
	data, err := os.ReadFile(result.PropertiesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `com.acme.spi;version="2.0.0"`)
	assert.NotContains(t, string(data), `com.acme.spi;version="1.2.0"`)
}

func TestGenerateMissingArchive(t *testing.T) {
	dir := t.TempDir()
	list := testutil.WriteArtifactList(t, dir, []types.ArtifactRef{
		{Group: "com.acme", Artifact: "gone", Version: "1.0", Path: "gone.jar"},
	})

	_, err := NewService().Generate(t.Context(), GenerateRequest{ArtifactsPath: list, OutputDir: filepath.Join(dir, "out")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "com.acme:gone:1.0")
}
