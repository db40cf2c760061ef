package policies

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"system-packages/internal/types"
)

// VersionOverridePolicy forces package versions. Rules are evaluated in
// configured order and the first one whose pattern matches a package wins.
type VersionOverridePolicy struct {
	Rules []types.VersionOverrideRule
}

func NewVersionOverridePolicy(rules []types.VersionOverrideRule) VersionOverridePolicy {
	return VersionOverridePolicy{Rules: rules}
}

// ParseOverrideRule parses "pattern=version". The version must begin with
// a digit so it survives normalization unchanged in meaning.
func ParseOverrideRule(value string, normalize func(string) string) (types.VersionOverrideRule, error) {
	parts := strings.SplitN(strings.TrimSpace(value), "=", 2)
	if len(parts) != 2 {
		return types.VersionOverrideRule{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version override %q: expected pattern=version", value))
	}
	pattern := strings.TrimSpace(parts[0])
	version := strings.Trim(strings.TrimSpace(parts[1]), `"`)
	if pattern == "" {
		return types.VersionOverrideRule{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version override %q: pattern is empty", value))
	}
	if _, kind := parseNamePattern(pattern); kind == patternInvalid {
		return types.VersionOverrideRule{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version override %q: unsupported pattern %s", value, pattern))
	}
	if version == "" || version[0] < '0' || version[0] > '9' {
		return types.VersionOverrideRule{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version override %q: version %q is not numeric", value, version))
	}
	return types.VersionOverrideRule{
		Pattern:    pattern,
		Version:    normalize(version),
		RawVersion: version,
	}, nil
}

// Apply replaces the version set of every matched package in place and
// returns one record per replaced package, sorted by package name.
func (p VersionOverridePolicy) Apply(ctx context.Context, packages map[string]types.VersionSet) []types.OverrideRecord {
	if len(p.Rules) == 0 {
		return nil
	}
	var records []types.OverrideRecord
	for name, versions := range packages {
		rule, ok := p.ruleFor(name)
		if !ok {
			continue
		}
		records = append(records, types.OverrideRecord{
			Package:          name,
			Pattern:          rule.Pattern,
			Version:          rule.Version,
			OriginalVersions: versions.Sorted(),
		})
		packages[name] = types.NewVersionSet(rule.Version)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Package < records[j].Package
	})
	if len(records) == 0 {
		log.Ctx(ctx).Warn().
			Strs("patterns", p.patterns()).
			Msg("version overrides matched no packages; check the configured patterns")
		return nil
	}
	log.Ctx(ctx).Debug().Int("overridden", len(records)).Msg("version overrides applied")
	return records
}

func (p VersionOverridePolicy) ruleFor(name string) (types.VersionOverrideRule, bool) {
	for _, rule := range p.Rules {
		if MatchPattern(rule.Pattern, name) {
			return rule, true
		}
	}
	return types.VersionOverrideRule{}, false
}

func (p VersionOverridePolicy) patterns() []string {
	out := make([]string, 0, len(p.Rules))
	for _, rule := range p.Rules {
		out = append(out, rule.Pattern)
	}
	return out
}
