package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"movie-booking/cmd"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/event"
	"movie-booking/internal/wire"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App, true)
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema up to date")
	}

	// Redis is optional
	rdb, err := cache.NewRedisClient(config.Redis)
	if err != nil {
		logger.Warn("Catalog cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Catalog cache enabled", zap.String("addr", config.Redis.Addr))
	}

	publisher := event.NewPublisher(config.Queue, logger)
	defer publisher.Close()

	repos := repository.NewRepository(db, rdb, config.Redis.CacheTTL, logger)

	app := wire.Wiring(repos, db, publisher, config, logger)

	if err := app.Service.Auth.SeedAdmin(ctx, config.Admin); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	go cleanSessions(ctx, repos.Session, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}

// cleanSessions drops expired sessions until ctx is cancelled.
func cleanSessions(ctx context.Context, sessions repository.SessionRepository, logger *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.CleanExpiredSessions(ctx)
			if err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("Expired sessions removed", zap.Int64("count", n))
			}
		}
	}
}
