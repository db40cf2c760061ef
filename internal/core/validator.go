package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pmezard/go-difflib/difflib"

	"system-packages/internal/shared"
	"system-packages/internal/types"
)

// BaselineMismatchMsg prefixes the error returned for a failed validation.
const BaselineMismatchMsg = "system packages differ from baseline"

type Validator struct{}

func NewValidator() Validator {
	return Validator{}
}

// Compare checks the generated property value against the baseline value
// as sets of tokens.
func (v Validator) Compare(baseline string, generated string) types.ValidationResult {
	baselineTokens := tokenSet(SplitTokens(baseline))
	generatedTokens := tokenSet(SplitTokens(generated))

	result := types.ValidationResult{
		Added:   difference(generatedTokens, baselineTokens),
		Removed: difference(baselineTokens, generatedTokens),
	}
	if result.Matches() {
		return result
	}

	baselineByPkg := versionsByPackage(baselineTokens)
	generatedByPkg := versionsByPackage(generatedTokens)
	for _, name := range shared.SortedKeys(generatedByPkg) {
		before, ok := baselineByPkg[name]
		if !ok {
			continue
		}
		after := generatedByPkg[name]
		if before.Equal(after) {
			continue
		}
		result.Changed = append(result.Changed, types.PackageChange{
			Package:   name,
			Baseline:  before.Sorted(),
			Generated: after.Sorted(),
		})
	}
	result.UnifiedDiff = unifiedDiff(sortedTokens(baselineTokens), sortedTokens(generatedTokens))
	return result
}

// MismatchError turns a failed validation into the build-gate error.
func MismatchError(result types.ValidationResult) error {
	if result.Matches() {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %d added, %d removed, %d version changes",
			BaselineMismatchMsg, len(result.Added), len(result.Removed), len(result.Changed)))
}

// DiffLines lists the differences one per line: "+" for entries only in
// the generated list, "-" for entries only in the baseline, "~" for
// packages whose versions changed.
func DiffLines(result types.ValidationResult) []string {
	var lines []string
	for _, change := range result.Changed {
		lines = append(lines, fmt.Sprintf("~ %s: %s -> %s",
			change.Package, strings.Join(change.Baseline, ", "), strings.Join(change.Generated, ", ")))
	}
	for _, token := range result.Removed {
		lines = append(lines, "- "+token)
	}
	for _, token := range result.Added {
		lines = append(lines, "+ "+token)
	}
	return lines
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

func difference(a map[string]struct{}, b map[string]struct{}) []string {
	var out []string
	for token := range a {
		if _, ok := b[token]; !ok {
			out = append(out, token)
		}
	}
	sort.Strings(out)
	return out
}

func sortedTokens(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for token := range set {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

func versionsByPackage(tokens map[string]struct{}) map[string]types.VersionSet {
	out := map[string]types.VersionSet{}
	for token := range tokens {
		name := TokenPackage(token)
		if _, ok := out[name]; !ok {
			out[name] = types.VersionSet{}
		}
		out[name].Add(TokenVersion(token))
	}
	return out
}

func unifiedDiff(baseline []string, generated []string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewlines(baseline),
		B:        withNewlines(generated),
		FromFile: "baseline",
		ToFile:   "generated",
		Context:  1,
	})
	if err != nil {
		return ""
	}
	return diff
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
