package app

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"system-packages/internal/core"
	"system-packages/internal/policies"
	"system-packages/internal/types"
)

func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	cfg, err := NewRunConfig(req)
	if err != nil {
		return GenerateResult{}, err
	}
	return s.generate(ctx, cfg)
}

func (s Service) generate(ctx context.Context, cfg RunConfig) (GenerateResult, error) {
	assert.NotEmpty(ctx, cfg.OutputDir, "output directory must be defaulted")
	assert.NotEmpty(ctx, cfg.PropertyName, "property name must be defaulted")

	artifacts, err := s.Artifacts.LoadArtifacts(cfg.ArtifactsPath)
	if err != nil {
		return GenerateResult{}, err
	}
	log.Ctx(ctx).Info().
		Int("artifacts", len(artifacts)).
		Str("list", cfg.ArtifactsPath).
		Msg("scanning dependency archives")

	filter := cfg.Filter()
	scanCtx := core.NewScanContext()
	scanner := core.NewDependencyScanner(s.Archives, filter, cfg.Workers)
	if err := scanner.ScanArtifacts(ctx, artifacts, scanCtx); err != nil {
		return GenerateResult{}, err
	}

	packages, conflicts := core.NewVersionResolver().ResolveSplitPackages(ctx, scanCtx.VersionLocations())
	overrides := policies.NewVersionOverridePolicy(cfg.OverrideRules).Apply(ctx, packages)
	result := types.ScanRunResult{Packages: packages}

	generator := core.NewPackageListGenerator(filter, cfg.PropertyName)
	tokens := generator.Tokens(ctx, result)
	content, err := generator.Render(tokens)
	if err != nil {
		return GenerateResult{}, err
	}
	report := core.NewReportGenerator().Render(core.ReportInput{
		Scan:             scanCtx,
		Result:           result,
		Overrides:        overrides,
		OverrideRules:    cfg.OverrideRules,
		Conflicts:        conflicts,
		ArtifactPatterns: cfg.ArtifactPatterns,
		PackagePatterns:  cfg.PackagePatterns,
	})

	output := s.Output(cfg.OutputDir)
	propertiesPath, err := output.WriteSystemPackages(content)
	if err != nil {
		return GenerateResult{}, err
	}
	reportPath, err := output.WriteReport(report)
	if err != nil {
		return GenerateResult{}, err
	}

	packageCount := 0
	for _, versions := range result.Packages {
		if len(versions) > 0 {
			packageCount++
		}
	}
	log.Ctx(ctx).Info().
		Int("packages", packageCount).
		Int("entries", len(tokens)).
		Int("conflicts", len(conflicts)).
		Int("overrides", len(overrides)).
		Str("properties", propertiesPath).
		Msg("system packages generated")

	return GenerateResult{
		PropertiesPath: propertiesPath,
		ReportPath:     reportPath,
		PackageCount:   packageCount,
		EntryCount:     len(tokens),
		Conflicts:      conflicts,
		Overrides:      overrides,
	}, nil
}
