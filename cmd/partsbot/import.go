package main

import (
	"github.com/sandevgo/partsbot/internal/config"
	"github.com/sandevgo/partsbot/internal/storage/sqlite"
	"github.com/sandevgo/partsbot/pkg/log"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <catalog.csv>",
	Short: "Import catalog parts from a CSV file",
	Long:  `Loads parts into the catalog from a CSV file with the columns designation,reference,stock,unit_price.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return err
		}
		defer db.Close()

		imported, err := sqlite.ImportCSV(ctx, sqlite.NewCatalog(db), args[0])
		if err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Int("parts", imported).Msg("catalog import done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
