package ai

import (
	"context"
	"fmt"

	"github.com/sandevgo/partsbot/internal/config"
	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/pkg/log"
)

// NewNormalizer selects the normalization capability from configuration.
// A nil return with no error means "rule-based fallback only".
func NewNormalizer(ctx context.Context, cfg *config.AIConfig) (core.QueryNormalizer, error) {
	if !cfg.Enabled() {
		log.FromCtx(ctx).Info().Msg("ai normalizer disabled, dialect dictionary only")
		return nil, nil
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting ai normalizer")

	switch cfg.Provider {
	case "openai", "openrouter", "custom":
		return NewClient(cfg)
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.Provider)
	}
}
