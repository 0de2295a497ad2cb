package wire

import (
	"net/http"

	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/event"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/database"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services and handlers over repo and mounts every route.
// db may be nil, in which case /health only reports the process as up.
func Wiring(repo *repository.Repository, db database.PgxIface, publisher event.Publisher, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, service, db, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	db database.PgxIface,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.ResolveSession(service.Auth, logger))

	wireAuth(r, handler.Auth, logger)
	wireUser(r, handler.User, logger)
	wireMovie(r, handler.Movie, logger)
	wireBooking(r, handler.Booking, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, nil)
				return
			}
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
