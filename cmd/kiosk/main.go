package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/event"
	"movie-booking/internal/flow"
	"movie-booking/internal/kiosk"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal belongs to the UI; log to file only
	logger, err := utils.InitLogger(config.App, false)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(config.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if config.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	rdb, err := cache.NewRedisClient(config.Redis)
	if err != nil {
		logger.Warn("Catalog cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	publisher := event.NewPublisher(config.Queue, logger)
	defer publisher.Close()

	repos := repository.NewRepository(db, rdb, config.Redis.CacheTTL, logger)
	svc := usecase.NewService(repos, publisher, config, logger)

	if err := svc.Auth.SeedAdmin(ctx, config.Admin); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	machine := flow.New(flow.Ports{
		Auth:     svc.Auth,
		Catalog:  svc.MovieViewer,
		Manager:  svc.MovieManager,
		Bookings: svc.Booking,
	}, logger)

	logger.Info("Kiosk started", zap.String("app", config.App.Name))
	if _, err := tea.NewProgram(kiosk.New(ctx, machine), tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		logger.Error("Kiosk stopped", zap.Error(err))
		log.Fatalf("Kiosk error: %v", err)
	}
	logger.Info("Kiosk stopped")
}
