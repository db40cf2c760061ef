package core

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultVersion is used when no version can be determined.
const DefaultVersion = "0.0.0"

var versionPattern = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// normalizedVersions memoizes NormalizeVersion. The same handful of
// version strings repeat for every package of an archive.
var normalizedVersions = mustVersionCache(4096)

func mustVersionCache(size int) *lru.Cache[string, string] {
	cache, err := lru.New[string, string](size)
	if err != nil {
		panic(err)
	}
	return cache
}

// NormalizeVersion reduces any version string to major.minor.micro.
// Qualifiers are dropped, missing components default to 0, and input
// without a leading number yields 0.0.0.
//
//	"1.2.3-SNAPSHOT" -> "1.2.3"
//	"2.1"            -> "2.1.0"
//	"garbage"        -> "0.0.0"
func NormalizeVersion(raw string) string {
	if cached, ok := normalizedVersions.Get(raw); ok {
		return cached
	}
	normalized := normalizeVersion(raw)
	normalizedVersions.Add(raw, normalized)
	return normalized
}

func normalizeVersion(raw string) string {
	match := versionPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return DefaultVersion
	}
	parts := make([]string, 3)
	for i := range parts {
		parts[i] = trimLeadingZeros(match[i+1])
	}
	return strings.Join(parts, ".")
}

func trimLeadingZeros(value string) string {
	trimmed := strings.TrimLeft(value, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
