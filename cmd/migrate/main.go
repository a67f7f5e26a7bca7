package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/twitsnap/twits/internal/db"
	"github.com/twitsnap/twits/internal/models"
	"github.com/twitsnap/twits/pkg/config"
	"github.com/twitsnap/twits/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Running schema migration")

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	// Snap first so the satellite tables can declare their cascades
	err = database.AutoMigrate(
		&models.Snap{},
		&models.Like{},
		&models.Snapshare{},
		&models.Mention{},
		&models.Favourite{},
		&models.Hashtag{},
	)
	if err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}

	logger.Info("Migration complete")
}
