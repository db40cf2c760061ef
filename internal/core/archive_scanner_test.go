package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"system-packages/internal/policies"
	"system-packages/internal/types"
)

type fakeArchive struct {
	manifest    string
	hasManifest bool
	files       []string
	manifestErr error
	closed      bool
}

func (a *fakeArchive) Manifest() ([]byte, bool, error) {
	if a.manifestErr != nil {
		return nil, false, a.manifestErr
	}
	return []byte(a.manifest), a.hasManifest, nil
}

func (a *fakeArchive) Files() []string { return a.files }

func (a *fakeArchive) Close() error {
	a.closed = true
	return nil
}

type excludedEvent struct {
	Name       string
	Pattern    string
	Coordinate string
}

type recordingCallback struct {
	packages []DiscoveredPackage
	excluded []excludedEvent
}

func (c *recordingCallback) OnPackage(pkg DiscoveredPackage) {
	c.packages = append(c.packages, pkg)
}

func (c *recordingCallback) OnPackageExcluded(name string, pattern string, coordinate string) {
	c.excluded = append(c.excluded, excludedEvent{Name: name, Pattern: pattern, Coordinate: coordinate})
}

func (c *recordingCallback) names() []string {
	var out []string
	for _, pkg := range c.packages {
		out = append(out, pkg.Name)
	}
	return out
}

func TestArchiveScannerExportHeaderIsSoleSource(t *testing.T) {
	archive := &fakeArchive{
		hasManifest: true,
		manifest: "Manifest-Version: 1.0\n" +
			"Export-Package: com.acme.x;version=\"1.0.0\",com.acme.y\n",
		files: []string{
			"com/acme/x/X.class",
			"com/acme/y/Y.class",
			"com/acme/z/Z.class",
		},
	}
	cb := &recordingCallback{}
	scanner := NewArchiveScanner(policies.NewExclusionFilter(nil, nil))

	err := scanner.Scan(t.Context(), archive, "9.9.9", "com.acme:acme:1.0", cb)
	require.NoError(t, err)

	want := []DiscoveredPackage{
		{Name: "com.acme.x", Version: "1.0.0", Method: types.DiscoveryExportHeader, Coordinate: "com.acme:acme:1.0"},
		{Name: "com.acme.y", Version: "0.0.0", Method: types.DiscoveryExportHeader, Coordinate: "com.acme:acme:1.0"},
	}
	if diff := cmp.Diff(want, cb.packages); diff != "" {
		t.Fatalf("unexpected packages (-want +got):\n%s", diff)
	}
	assert.NotContains(t, cb.names(), "com.acme.z")
}

func TestArchiveScannerManifestEntriesAndInheritance(t *testing.T) {
	archive := &fakeArchive{
		hasManifest: true,
		manifest: "Manifest-Version: 1.0\n\n" +
			"Name: com/acme/\n" +
			"Specification-Version: 2.1\n" +
			"Implementation-Version: 2.1.7\n\n" +
			"Name: com/acme/core/Core.class\n" +
			"Implementation-Version: 3.0.0-beta\n",
		files: []string{
			"com/acme/Api.class",
			"com/acme/core/Core.class",
			"com/acme/core/internal/Helper.class",
			"com/acme/web/Servlet.class",
			"org/other/Other.class",
		},
	}
	cb := &recordingCallback{}
	scanner := NewArchiveScanner(policies.NewExclusionFilter(nil, nil))

	require.NoError(t, scanner.Scan(t.Context(), archive, "1.0.0", "g:a:1.0.0", cb))

	want := []DiscoveredPackage{
		{Name: "com.acme", Version: "2.1", SpecVersion: "2.1", Method: types.DiscoveryManifestEntry, Coordinate: "g:a:1.0.0"},
		{Name: "com.acme.core", Version: "3.0.0-beta", Method: types.DiscoveryManifestEntry, Coordinate: "g:a:1.0.0"},
		{Name: "com.acme.core.internal", Version: "3.0.0-beta", Method: types.DiscoveryInherited, ParentPackage: "com.acme.core", Coordinate: "g:a:1.0.0"},
		{Name: "com.acme.web", Version: "2.1", SpecVersion: "2.1", Method: types.DiscoveryInherited, ParentPackage: "com.acme", Coordinate: "g:a:1.0.0"},
		{Name: "org.other", Version: "1.0.0", Method: types.DiscoveryArchiveStructure, Coordinate: "g:a:1.0.0"},
	}
	if diff := cmp.Diff(want, cb.packages); diff != "" {
		t.Fatalf("unexpected packages (-want +got):\n%s", diff)
	}
}

func TestArchiveScannerWithoutManifest(t *testing.T) {
	archive := &fakeArchive{
		files: []string{
			"Root.class",
			"META-INF/maven/g/a/pom.xml",
			"META-INF/versions/9/com/acme/Module.class",
			"WEB-INF/classes/com/acme/Web.class",
			"java/lang/Object.class",
			"com/acme/Resources/icon.png",
			"com/acme/my-assets/logo.svg",
			"com/acme/util/Util.class",
		},
	}
	cb := &recordingCallback{}
	scanner := NewArchiveScanner(policies.NewExclusionFilter(nil, nil))

	require.NoError(t, scanner.Scan(t.Context(), archive, "4.2", "g:a:4.2", cb))
	if diff := cmp.Diff([]string{"com.acme.util"}, cb.names()); diff != "" {
		t.Fatalf("unexpected packages (-want +got):\n%s", diff)
	}
	assert.Equal(t, "4.2", cb.packages[0].Version)
	assert.Equal(t, types.DiscoveryArchiveStructure, cb.packages[0].Method)
}

func TestArchiveScannerMalformedManifestFallsBack(t *testing.T) {
	archive := &fakeArchive{
		hasManifest: true,
		manifest:    " broken\n",
		files:       []string{"com/acme/A.class"},
	}
	cb := &recordingCallback{}
	scanner := NewArchiveScanner(nil)

	require.NoError(t, scanner.Scan(t.Context(), archive, "1.0", "g:a:1.0", cb))
	assert.Equal(t, []string{"com.acme"}, cb.names())
}

func TestArchiveScannerReportsExcludedPackages(t *testing.T) {
	archive := &fakeArchive{
		hasManifest: true,
		manifest:    "Export-Package: org.osgi.framework;version=1.9,com.acme;version=1.0\n",
	}
	cb := &recordingCallback{}
	scanner := NewArchiveScanner(policies.NewExclusionFilter(nil, []string{"org.osgi*"}))

	require.NoError(t, scanner.Scan(t.Context(), archive, "1.0", "g:a:1.0", cb))
	assert.Equal(t, []string{"com.acme"}, cb.names())
	if diff := cmp.Diff([]excludedEvent{{Name: "org.osgi.framework", Pattern: "org.osgi*", Coordinate: "g:a:1.0"}}, cb.excluded); diff != "" {
		t.Fatalf("unexpected exclusions (-want +got):\n%s", diff)
	}
}

func TestArchiveScannerManifestReadError(t *testing.T) {
	archive := &fakeArchive{manifestErr: errors.New("crc mismatch")}
	err := NewArchiveScanner(nil).Scan(t.Context(), archive, "1.0", "g:a:1.0", &recordingCallback{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "g:a:1.0")
}

func TestEntryPackageName(t *testing.T) {
	assert.Equal(t, "com.acme", entryPackageName("com/acme/"))
	assert.Equal(t, "com.acme", entryPackageName("/com/acme"))
	assert.Equal(t, "com.acme", entryPackageName("com/acme/Foo.class"))
	assert.Equal(t, "", entryPackageName("Foo.class"))
}
