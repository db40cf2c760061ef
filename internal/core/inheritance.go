package core

import "strings"

// VersionAnchor is a version declared by a named manifest section.
type VersionAnchor struct {
	Version     string
	SpecVersion string
}

// InheritedVersion finds the anchor for name or its closest ancestor
// package. It returns the package that declared the anchor.
func InheritedVersion(name string, anchors map[string]VersionAnchor) (string, VersionAnchor, bool) {
	for candidate := name; candidate != ""; candidate = parentPackage(candidate) {
		if anchor, ok := anchors[candidate]; ok {
			return candidate, anchor, true
		}
	}
	return "", VersionAnchor{}, false
}

func parentPackage(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}
