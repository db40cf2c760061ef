package core

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"system-packages/internal/types"
)

// DefaultPropertyName is the framework property the package list feeds.
const DefaultPropertyName = "org.osgi.framework.system.packages.extra"

//go:embed templates/header.properties
var headerTemplateText string

var headerTemplate = template.Must(template.New("header").Parse(headerTemplateText))

type headerData struct {
	PropertyName string
	PackageCount int
	EntryCount   int
}

// PackageListGenerator renders resolved packages as a properties file.
type PackageListGenerator struct {
	Filter       PackageFilter
	PropertyName string
}

func NewPackageListGenerator(filter PackageFilter, propertyName string) PackageListGenerator {
	if strings.TrimSpace(propertyName) == "" {
		propertyName = DefaultPropertyName
	}
	return PackageListGenerator{Filter: filter, PropertyName: propertyName}
}

// Tokens returns one pkg;version="x.y.z" token per package and version,
// sorted by package then version. Excluded packages are dropped again here
// in case anything upstream let one through.
func (g PackageListGenerator) Tokens(ctx context.Context, result types.ScanRunResult) []string {
	names := make([]string, 0, len(result.Packages))
	for name := range result.Packages {
		if g.Filter != nil {
			if pattern, excluded := g.Filter.PackageExcluded(name); excluded {
				log.Ctx(ctx).Warn().
					Str("package", name).
					Str("pattern", pattern).
					Msg("excluded package reached the package list; dropping it")
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	var tokens []string
	for _, name := range names {
		for _, version := range result.Packages[name].Sorted() {
			tokens = append(tokens, FormatToken(name, version))
		}
	}
	return tokens
}

// Render produces the full file: the header block followed by the
// property, one token per continuation line.
func (g PackageListGenerator) Render(tokens []string) (string, error) {
	var out bytes.Buffer
	err := headerTemplate.Execute(&out, headerData{
		PropertyName: g.PropertyName,
		PackageCount: countPackages(tokens),
		EntryCount:   len(tokens),
	})
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to render properties header").
			WithCause(err)
	}
	out.WriteString(g.PropertyName)
	out.WriteString("=")
	if len(tokens) == 0 {
		out.WriteString("\n")
		return out.String(), nil
	}
	out.WriteString("\\\n")
	for i, token := range tokens {
		out.WriteString(" ")
		out.WriteString(token)
		if i < len(tokens)-1 {
			out.WriteString(",\\")
		}
		out.WriteString("\n")
	}
	return out.String(), nil
}

// FormatToken renders a single package entry.
func FormatToken(name string, version string) string {
	return fmt.Sprintf("%s;version=\"%s\"", name, version)
}

// TokenPackage returns the package name of a token.
func TokenPackage(token string) string {
	name, _, _ := strings.Cut(token, ";")
	return strings.TrimSpace(name)
}

// TokenVersion returns the version attribute of a token, or "" if none.
func TokenVersion(token string) string {
	_, attrs, ok := strings.Cut(token, ";")
	if !ok {
		return ""
	}
	for _, attr := range strings.Split(attrs, ";") {
		key, value, ok := strings.Cut(attr, "=")
		if ok && strings.TrimSpace(key) == "version" {
			return unquote(value)
		}
	}
	return ""
}

// SplitTokens splits a comma-joined property value into trimmed tokens.
func SplitTokens(value string) []string {
	var tokens []string
	for _, part := range strings.Split(value, ",") {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func countPackages(tokens []string) int {
	seen := map[string]struct{}{}
	for _, token := range tokens {
		seen[TokenPackage(token)] = struct{}{}
	}
	return len(seen)
}
