package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ExclusionFilter matches artifact coordinates and package names against
// ordered exclusion patterns. A pattern is either an exact name or a
// prefix terminated by a single trailing '*'. The first pattern that
// matches wins.
type ExclusionFilter struct {
	artifactPatterns []compiledPattern
	packagePatterns  []compiledPattern
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternInvalid
)

type compiledPattern struct {
	raw  string
	kind patternKind
	name string
}

func NewExclusionFilter(artifactPatterns []string, packagePatterns []string) ExclusionFilter {
	return ExclusionFilter{
		artifactPatterns: compilePatterns(artifactPatterns),
		packagePatterns:  compilePatterns(packagePatterns),
	}
}

// ArtifactExcluded checks group:artifact against the artifact patterns.
func (f ExclusionFilter) ArtifactExcluded(group string, artifact string) (string, bool) {
	return firstMatch(f.artifactPatterns, group+":"+artifact)
}

func (f ExclusionFilter) PackageExcluded(name string) (string, bool) {
	return firstMatch(f.packagePatterns, name)
}

func (f ExclusionFilter) ArtifactPatterns() []string {
	return rawPatterns(f.artifactPatterns)
}

func (f ExclusionFilter) PackagePatterns() []string {
	return rawPatterns(f.packagePatterns)
}

// MatchPattern reports whether name matches a single exclusion or
// override pattern.
func MatchPattern(pattern string, name string) bool {
	compiled, ok := compilePattern(pattern)
	if !ok {
		return false
	}
	return compiled.matches(name)
}

// ValidatePatterns rejects patterns with a '*' anywhere but the end.
// Blank entries are ignored.
func ValidatePatterns(kind string, patterns []string) error {
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		if _, k := parseNamePattern(trimmed); k == patternInvalid {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid %s exclusion pattern %q: '*' is only allowed at the end", kind, trimmed))
		}
	}
	return nil
}

func compilePatterns(patterns []string) []compiledPattern {
	var out []compiledPattern
	for _, pattern := range patterns {
		compiled, ok := compilePattern(pattern)
		if !ok {
			continue
		}
		out = append(out, compiled)
	}
	return out
}

func compilePattern(pattern string) (compiledPattern, bool) {
	trimmed := strings.TrimSpace(pattern)
	name, kind := parseNamePattern(trimmed)
	if kind == patternInvalid {
		return compiledPattern{kind: patternInvalid}, false
	}
	return compiledPattern{raw: trimmed, kind: kind, name: name}, true
}

func parseNamePattern(pattern string) (string, patternKind) {
	if pattern == "" {
		return "", patternInvalid
	}
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		if strings.Contains(prefix, "*") {
			return "", patternInvalid
		}
		return prefix, patternPrefix
	}
	if strings.Contains(pattern, "*") {
		return "", patternInvalid
	}
	return pattern, patternExact
}

func (p compiledPattern) matches(name string) bool {
	switch p.kind {
	case patternExact:
		return name == p.name
	case patternPrefix:
		return strings.HasPrefix(name, p.name)
	default:
		return false
	}
}

func firstMatch(patterns []compiledPattern, name string) (string, bool) {
	for _, pattern := range patterns {
		if pattern.matches(name) {
			return pattern.raw, true
		}
	}
	return "", false
}

func rawPatterns(patterns []compiledPattern) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		out = append(out, pattern.raw)
	}
	return out
}
