package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/partsbot/internal/config"
	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/internal/providers/ai"
	"github.com/sandevgo/partsbot/internal/service/bot"
	"github.com/sandevgo/partsbot/internal/service/clarify"
	"github.com/sandevgo/partsbot/internal/service/dialog"
	"github.com/sandevgo/partsbot/internal/storage/sqlite"
	"github.com/sandevgo/partsbot/internal/transport/cli"
	"github.com/sandevgo/partsbot/internal/transport/telegram"
	"github.com/sandevgo/partsbot/pkg/log"
	"github.com/sandevgo/partsbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	aiCfg := config.NewAIConfig(ctx)

	// 2. Storage
	db, catalog, history, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. AI normalization capability (best-effort, may be nil)
	normalizer, err := ai.NewNormalizer(ctx, aiCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize ai normalizer")
	}

	// 4. Clarification state machine; its expiry sweep runs as a service
	clarifyMgr := clarify.NewManager()
	services = append(services, clarifyMgr)

	// 5. Session context tracker
	tracker := dialog.NewTracker(history, appCfg.HistoryWindowSize)

	// 6. Orchestrator
	orch := bot.New(catalog, history, normalizer, clarifyMgr, tracker)

	// 7. Transports
	transports, err := initTransports(ctx, appCfg, orch)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.CatalogRepository, core.MessagesRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, nil, err
	}
	return db, sqlite.NewCatalog(db), sqlite.NewHistory(db), nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, orch *bot.Orchestrator) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		tgBot, err := telegram.NewBot(ctx, tgCfg, orch)
		if err != nil {
			return nil, err
		}
		services = append(services, tgBot)
	}

	if cfg.EnableCLI {
		rl, err := cli.NewReadLine(orch, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
