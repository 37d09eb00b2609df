package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kiroku/internal/config"
	"kiroku/internal/db"
	"kiroku/internal/logger"
	gormrepository "kiroku/internal/repository/gorm"
	"kiroku/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the catalog with the starter titles",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, envOnly := resolveConfigPath()
		cfg, err := config.Load(path, envOnly)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Log)
		if err != nil {
			return err
		}
		defer log.Sync()

		dbConn, err := db.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close(dbConn)

		if err := db.AutoMigrate(dbConn); err != nil {
			return err
		}

		store := gormrepository.New(dbConn.Gorm)
		ctx := context.Background()
		n, err := seed.Run(ctx, store, log)
		if err != nil {
			return err
		}
		total, err := store.CountAnime(ctx)
		if err != nil {
			return err
		}
		log.Info("database seeded", zap.Int("inserted", n), zap.Int64("total", total))
		return nil
	},
}
