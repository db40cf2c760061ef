package integration

import (
	"path/filepath"
	"testing"

	"system-packages/internal/types"
	"system-packages/tests/testutil"
)

const (
	apiManifest = "Manifest-Version: 1.0\n" +
		"Bundle-SymbolicName: com.example.api\n" +
		"Export-Package: com.example.api;version=\"1.2.3\",com.example.api.spi;uses:=\"com.example.api\";\n" +
		" version=\"1.2.3\",org.osgi.service.log;version=1.4\n"
	implManifest = "Manifest-Version: 1.0\n" +
		"\n" +
		"Name: com/example/impl/\n" +
		"Specification-Version: 2.0\n" +
		"Implementation-Version: 2.0.0-SNAPSHOT\n"
)

// fixtureOverrides pins the third-party package picked up from the impl jar.
var fixtureOverrides = []string{"org.thirdparty*=4.2"}

// writeFixture builds a small dependency set covering every discovery path:
// an exporting bundle, a jar with named manifest sections, a jar without a
// manifest, an exploded class directory, an excluded OSGi artifact, a
// test-scoped jar and a non-jar artifact. It returns the artifact list path.
func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	api := testutil.WriteJar(t, dir, testutil.Jar{
		Name:     "example-api-1.2.3.jar",
		Manifest: apiManifest,
		Files:    []string{"com/example/api/Api.class", "com/example/internal/Hidden.class"},
	})
	impl := testutil.WriteJar(t, dir, testutil.Jar{
		Name:     "example-impl-2.0.0-SNAPSHOT.jar",
		Manifest: implManifest,
		Files: []string{
			"com/example/impl/Impl.class",
			"com/example/impl/util/Util.class",
			"org/thirdparty/Lib.class",
			"javax/servlet/Filter.class",
			"META-INF/versions/9/module-info.class",
		},
	})
	legacy := testutil.WriteJar(t, dir, testutil.Jar{
		Name:  "example-legacy-3.1.jar",
		Files: []string{"com/example/api/Legacy.class", "Root.class"},
	})
	web := testutil.WriteClassDir(t, filepath.Join(dir, "classes"), "", "com/example/web/Servlet.class")
	osgi := testutil.WriteJar(t, dir, testutil.Jar{Name: "osgi.core-8.0.0.jar", Files: []string{"org/osgi/framework/Bundle.class"}})
	junit := testutil.WriteJar(t, dir, testutil.Jar{Name: "junit-4.13.jar", Files: []string{"org/junit/Test.class"}})

	return testutil.WriteArtifactList(t, dir, []types.ArtifactRef{
		{Group: "com.example", Artifact: "example-api", Version: "1.2.3", Scope: types.ArtifactScopeCompile, Type: "jar", Path: api},
		{Group: "com.example", Artifact: "example-impl", Version: "2.0.0-SNAPSHOT", Scope: types.ArtifactScopeRuntime, Type: "jar", Path: impl},
		{Group: "com.example", Artifact: "example-legacy", Version: "3.1", Scope: types.ArtifactScopeProvided, Type: "jar", Path: legacy},
		{Group: "com.example", Artifact: "example-web", Version: "1.0", Scope: types.ArtifactScopeCompile, Type: "jar", Path: web},
		{Group: "org.osgi", Artifact: "osgi.core", Version: "8.0.0", Scope: types.ArtifactScopeProvided, Type: "jar", Path: osgi},
		{Group: "junit", Artifact: "junit", Version: "4.13", Scope: types.ArtifactScopeTest, Type: "jar", Path: junit},
		{Group: "com.example", Artifact: "example-parent", Version: "1.0", Scope: types.ArtifactScopeCompile, Type: "pom", Path: filepath.Join(dir, "example-parent.pom")},
	})
}
