package app

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"system-packages/internal/core"
	"system-packages/internal/policies"
	"system-packages/internal/shared"
	"system-packages/internal/types"
)

const (
	DefaultOutputDir = "target/system-packages"
	DefaultWorkers   = 4
)

var (
	DefaultExcludeArtifacts = []string{"org.osgi*"}
	DefaultExcludePackages  = []string{
		"javax.servlet*",
		"javax.annotation*",
		"org.osgi*",
		"org.apache.felix*",
		"org.w3c*",
		"org.xml.sax*",
	}
)

// RunConfig is a fully defaulted and validated generate run. A nil
// pattern list in the request selects the defaults; an empty non-nil list
// disables that kind of exclusion.
type RunConfig struct {
	ArtifactsPath    string
	OutputDir        string
	PropertyName     string
	ArtifactPatterns []string
	PackagePatterns  []string
	OverrideRules    []types.VersionOverrideRule
	Workers          int
}

func NewRunConfig(req GenerateRequest) (RunConfig, error) {
	artifactsPath := strings.TrimSpace(req.ArtifactsPath)
	if artifactsPath == "" {
		return RunConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifact list path is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	propertyName := strings.TrimSpace(req.PropertyName)
	if propertyName == "" {
		propertyName = core.DefaultPropertyName
	}
	workers := req.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	if workers < 0 {
		return RunConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("workers must be positive, got %d", workers))
	}

	artifactPatterns := patternsOrDefault(req.ExcludeArtifacts, DefaultExcludeArtifacts)
	if err := policies.ValidatePatterns("artifact", artifactPatterns); err != nil {
		return RunConfig{}, err
	}
	packagePatterns := patternsOrDefault(req.ExcludePackages, DefaultExcludePackages)
	if err := policies.ValidatePatterns("package", packagePatterns); err != nil {
		return RunConfig{}, err
	}

	var rules []types.VersionOverrideRule
	for _, value := range shared.NonEmpty(req.VersionOverrides) {
		rule, err := policies.ParseOverrideRule(value, core.NormalizeVersion)
		if err != nil {
			return RunConfig{}, err
		}
		rules = append(rules, rule)
	}

	return RunConfig{
		ArtifactsPath:    artifactsPath,
		OutputDir:        outputDir,
		PropertyName:     propertyName,
		ArtifactPatterns: artifactPatterns,
		PackagePatterns:  packagePatterns,
		OverrideRules:    rules,
		Workers:          workers,
	}, nil
}

func (c RunConfig) Filter() policies.ExclusionFilter {
	return policies.NewExclusionFilter(c.ArtifactPatterns, c.PackagePatterns)
}

func patternsOrDefault(values []string, defaults []string) []string {
	if values == nil {
		return append([]string(nil), defaults...)
	}
	return shared.NonEmpty(values)
}
