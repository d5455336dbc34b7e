package main

import (
	"log"

	"fairshare-booking/cmd"
	"fairshare-booking/internal/data/repository"
	"fairshare-booking/internal/wire"
	"fairshare-booking/pkg/database"
	"fairshare-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize repositories and the transaction runner
	repos := repository.NewRepository(db, logger)
	tx := repository.NewTxRunner(db, logger)

	// Wire all dependencies
	app, err := wire.Wiring(repos, tx, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}
	defer app.Cache.Close()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
