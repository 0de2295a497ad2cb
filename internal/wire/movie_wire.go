package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", movieHandler.GetMovies)
	r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
	r.Get("/api/movies/{id}/showtimes", movieHandler.GetShowTimes)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.RequireCapability(access.ManageMovies, log))

		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
		r.Post("/{id}/showtimes", movieHandler.CreateShowTime)
		r.Delete("/{id}/showtimes/{showtimeID}", movieHandler.DeleteShowTime)
	})
}
