package app

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"system-packages/internal/core"
	"system-packages/internal/types"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("properties file path is required")
	}
	propertyName := strings.TrimSpace(req.PropertyName)
	if propertyName == "" {
		propertyName = core.DefaultPropertyName
	}
	value, err := s.Properties.ReadProperty(path, propertyName)
	if err != nil {
		return InspectResult{}, err
	}

	tokens := core.SplitTokens(value)
	versions := map[string]types.VersionSet{}
	for _, token := range tokens {
		name := core.TokenPackage(token)
		set, ok := versions[name]
		if !ok {
			set = types.NewVersionSet()
			versions[name] = set
		}
		set.Add(core.TokenVersion(token))
	}

	names := make([]string, 0, len(versions))
	for name := range versions {
		names = append(names, name)
	}
	sort.Strings(names)
	result := InspectResult{
		PropertyName: propertyName,
		PackageCount: len(names),
		EntryCount:   len(tokens),
	}
	for _, name := range names {
		pkg := InspectPackage{Name: name, Versions: versions[name].Sorted()}
		result.Packages = append(result.Packages, pkg)
		if len(pkg.Versions) > 1 {
			result.MultiVersion = append(result.MultiVersion, pkg)
		}
	}
	return result, nil
}
