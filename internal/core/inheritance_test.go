package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInheritedVersion(t *testing.T) {
	anchors := map[string]VersionAnchor{
		"com.acme":      {Version: "1.0", SpecVersion: "1.0"},
		"com.acme.core": {Version: "2.0.1"},
	}

	tests := []struct {
		name    string
		pkg     string
		anchor  string
		version string
		found   bool
	}{
		{name: "exact", pkg: "com.acme.core", anchor: "com.acme.core", version: "2.0.1", found: true},
		{name: "nearest ancestor", pkg: "com.acme.core.internal.util", anchor: "com.acme.core", version: "2.0.1", found: true},
		{name: "root ancestor", pkg: "com.acme.web", anchor: "com.acme", version: "1.0", found: true},
		{name: "prefix is not an ancestor", pkg: "com.acmeware", found: false},
		{name: "unrelated", pkg: "org.other", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor, version, found := InheritedVersion(tt.pkg, anchors)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.anchor, anchor)
			assert.Equal(t, tt.version, version.Version)
		})
	}
}
