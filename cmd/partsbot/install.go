package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/partsbot/internal/config"
	"github.com/sandevgo/partsbot/internal/service/installer"
	"github.com/sandevgo/partsbot/pkg/log"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:           "setup",
	Short:         "Configure PartsBot interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting setup wizard")

		if _, err := installer.RunWizard(); err != nil {
			return err
		}

		// Load the newly created .env so follow-up commands see the values.
		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! Import a catalog with 'partsbot import' and run 'partsbot start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
