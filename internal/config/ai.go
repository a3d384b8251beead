package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/partsbot/pkg/log"
)

// AIConfig configures the optional AI-backed query normalizer. With an
// empty provider the bot runs on the rule-based dialect fallback alone.
type AIConfig struct {
	Provider string `env:"AI_PROVIDER" envDefault:""`
	BaseURL  string `env:"AI_BASE_URL" envDefault:"https://api.openai.com"`
	APIKey   string `env:"AI_API_KEY"`
	Model    string `env:"AI_MODEL" envDefault:"gpt-4o-mini"`

	// Prompt budget in tokens; history beyond it is clipped before the call.
	PromptBudget int `env:"AI_PROMPT_BUDGET" envDefault:"1024"`
}

func NewAIConfig(ctx context.Context) *AIConfig {
	c := &AIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse AI config")
	}
	return c
}

func (c AIConfig) Enabled() bool {
	return c.Provider != ""
}
