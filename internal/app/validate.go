package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"system-packages/internal/core"
)

// Validate regenerates the package list and compares it with the baseline
// properties file. A mismatch is returned as a FailedPrecondition error
// alongside the populated result.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	baselinePath := strings.TrimSpace(req.BaselinePath)
	if baselinePath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("baseline path is required")
	}
	cfg, err := NewRunConfig(req.GenerateRequest)
	if err != nil {
		return ValidateResult{}, err
	}
	baseline, err := s.Properties.ReadProperty(baselinePath, cfg.PropertyName)
	if err != nil {
		return ValidateResult{}, err
	}
	generatedResult, err := s.generate(ctx, cfg)
	if err != nil {
		return ValidateResult{}, err
	}
	generated, err := s.Properties.ReadProperty(generatedResult.PropertiesPath, cfg.PropertyName)
	if err != nil {
		return ValidateResult{}, err
	}

	validation := core.NewValidator().Compare(baseline, generated)
	result := ValidateResult{Generate: generatedResult, Validation: validation}
	if err := core.MismatchError(validation); err != nil {
		log.Ctx(ctx).Error().
			Str("baseline", baselinePath).
			Int("added", len(validation.Added)).
			Int("removed", len(validation.Removed)).
			Int("changed", len(validation.Changed)).
			Msg(core.BaselineMismatchMsg)
		return result, err
	}
	log.Ctx(ctx).Info().Str("baseline", baselinePath).Msg("system packages match baseline")
	return result, nil
}
