package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	viewer  usecase.MovieViewerService
	manager usecase.MovieManagerService
	log     *zap.Logger
}

func NewMovieHandler(viewer usecase.MovieViewerService, manager usecase.MovieManagerService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		viewer:  viewer,
		manager: manager,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies?page=&per_page=&genre=&search=
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
		},
		Genre:  query.Get("genre"),
		Search: query.Get("search"),
	}

	movies, err := h.viewer.ListMovies(r.Context(), utils.GetUserContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.viewer.GetMovie(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// GetShowTimes handles GET /api/movies/{id}/showtimes
func (h *MovieHandler) GetShowTimes(w http.ResponseWriter, r *http.Request) {
	showTimes, err := h.viewer.ListShowTimes(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get show times")
		return
	}

	utils.ResponseSuccess(w, "success", showTimes)
}

// CreateMovie handles POST /api/admin/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.manager.AddMovie(r.Context(), utils.GetUserContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.manager.UpdateMovie(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.DeleteMovie(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

// CreateShowTime handles POST /api/admin/movies/{id}/showtimes
func (h *MovieHandler) CreateShowTime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowTimeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showTime, err := h.manager.AddShowTime(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create show time")
		return
	}

	utils.ResponseCreated(w, "Show time created successfully", showTime)
}

// DeleteShowTime handles DELETE /api/admin/movies/{id}/showtimes/{showtimeID}
func (h *MovieHandler) DeleteShowTime(w http.ResponseWriter, r *http.Request) {
	err := h.manager.DeleteShowTime(r.Context(), utils.GetUserContext(r.Context()),
		chi.URLParam(r, "id"), chi.URLParam(r, "showtimeID"))
	if err != nil {
		handleServiceError(w, h.log, err, "delete show time")
		return
	}

	utils.ResponseSuccess(w, "Show time deleted successfully", nil)
}
