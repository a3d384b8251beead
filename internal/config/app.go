package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/partsbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"PARTSBOT_RUNTIME_PATH" envDefault:".partsbot"`

	// Transport flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// Conversation history window read per session context recompute
	HistoryWindowSize int `env:"HISTORY_WINDOW_SIZE" envDefault:"50"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "partsbot.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
