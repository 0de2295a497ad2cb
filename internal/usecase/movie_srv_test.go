package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMovieRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := &request.MovieRequest{Title: "Heat", Genre: "Crime", Price: 40000}

	_, err := env.svc.MovieManager.AddMovie(ctx, entity.GuestContext(), req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.svc.MovieManager.AddMovie(ctx, env.signIn(t, "hank"), req)
	assert.ErrorIs(t, err, ErrForbidden)

	detail, err := env.svc.MovieManager.AddMovie(ctx, env.admin(t), req)
	require.NoError(t, err)
	assert.Equal(t, "Heat", detail.Title)
	assert.Equal(t, entity.DefaultDescription, detail.Description)
	assert.Equal(t, entity.DefaultRating, detail.Rating)
	assert.Empty(t, detail.ShowTimes)
}

func TestAddMovieRejectsBadShowTimeBeforeWriting(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin(t)

	_, err := env.svc.MovieManager.AddMovie(context.Background(), admin, &request.MovieRequest{
		Title: "Backwards",
		Genre: "Drama",
		ShowTimes: []request.ShowTimeRequest{
			{Date: showDate(1), StartTime: "10:00", EndTime: "12:00"},
			{Date: showDate(1), StartTime: "15:00", EndTime: "14:00"},
		},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ShowTimes[1]")
	assert.Empty(t, env.store.movies)
	assert.Empty(t, env.store.showTimes)
}

func TestAddMovieFailedWriteLeavesNoMovie(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)
	req := &request.MovieRequest{
		Title: "Orphan",
		Genre: "Horror",
		ShowTimes: []request.ShowTimeRequest{
			{Date: showDate(1), StartTime: "19:00", EndTime: "21:00"},
		},
	}

	env.store.createMovieErr = errors.New("db down")
	_, err := env.svc.MovieManager.AddMovie(ctx, admin, req)
	require.Error(t, err)

	page, err := env.svc.MovieViewer.ListMovies(ctx, admin, request.MovieListRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Empty(t, env.store.showTimes)

	detail, err := env.svc.MovieManager.AddMovie(ctx, admin, req)
	require.NoError(t, err)
	assert.Len(t, detail.ShowTimes, 1)

	page, err = env.svc.MovieViewer.ListMovies(ctx, admin, request.MovieListRequest{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Orphan", page.Data[0].Title)
}

func TestAddMovieRejectsOutOfRangeRating(t *testing.T) {
	env := newTestEnv(t)
	rating := 11.0

	_, err := env.svc.MovieManager.AddMovie(context.Background(), env.admin(t), &request.MovieRequest{
		Title:  "Loud",
		Genre:  "Action",
		Rating: &rating,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be at most 10", verr.Fields["Rating"])
}

func TestListMoviesFiltersAndPaginates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.admin(t)

	for _, m := range []struct{ title, genre string }{
		{"Alien", "Horror"},
		{"Brazil", "Comedy"},
		{"Carrie", "Horror"},
		{"Dune", "Sci-Fi"},
	} {
		_, err := env.svc.MovieManager.AddMovie(ctx, admin, &request.MovieRequest{Title: m.title, Genre: m.genre})
		require.NoError(t, err)
	}

	guest := entity.GuestContext()
	page, err := env.svc.MovieViewer.ListMovies(ctx, guest, request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Dune", page.Data[0].Title)

	horror, err := env.svc.MovieViewer.ListMovies(ctx, guest, request.MovieListRequest{Genre: "horror"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), horror.Pagination.Total)
	assert.Equal(t, 10, horror.Pagination.PerPage)

	search, err := env.svc.MovieViewer.ListMovies(ctx, guest, request.MovieListRequest{Search: "RAZ"})
	require.NoError(t, err)
	require.Len(t, search.Data, 1)
	assert.Equal(t, "Brazil", search.Data[0].Title)
}

func TestUpdateMovieChangesOnlySetFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movieID, _ := env.addMovie(t, "Vertigo", 2)

	price := 75000.0
	updated, err := env.svc.MovieManager.UpdateMovie(ctx, env.admin(t), movieID, &request.MovieUpdateRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Vertigo", updated.Title)
	assert.Equal(t, "Drama", updated.Genre)
	assert.Equal(t, 75000.0, updated.Price)

	blank := "   "
	_, err = env.svc.MovieManager.UpdateMovie(ctx, env.admin(t), movieID, &request.MovieUpdateRequest{Title: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.MovieManager.UpdateMovie(ctx, env.admin(t), "nope", &request.MovieUpdateRequest{Price: &price})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteMovieHidesItAndItsShowTimes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movieID, showTimeID := env.addMovie(t, "Psycho", 2)
	admin := env.admin(t)

	require.NoError(t, env.svc.MovieManager.DeleteMovie(ctx, admin, movieID))

	_, err := env.svc.MovieViewer.GetMovie(ctx, entity.GuestContext(), movieID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.Booking.SeatMap(ctx, entity.GuestContext(), showTimeID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, env.svc.MovieManager.DeleteMovie(ctx, admin, movieID), ErrNotFound)
}

func TestShowTimeManagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movieID, firstID := env.addMovie(t, "Rope", 2)
	otherID, _ := env.addMovie(t, "Notorious", 2)
	admin := env.admin(t)

	st, err := env.svc.MovieManager.AddShowTime(ctx, admin, movieID, &request.ShowTimeRequest{
		Date: showDate(3), StartTime: "13:00", EndTime: "14:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", st.StartTime)

	_, err = env.svc.MovieManager.AddShowTime(ctx, admin, movieID, &request.ShowTimeRequest{
		Date: showDate(3), StartTime: "1pm", EndTime: "14:30",
	})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := env.svc.MovieViewer.ListShowTimes(ctx, entity.GuestContext(), movieID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// a show time can only be removed through its own movie
	assert.ErrorIs(t, env.svc.MovieManager.DeleteShowTime(ctx, admin, otherID, firstID), ErrNotFound)
	require.NoError(t, env.svc.MovieManager.DeleteShowTime(ctx, admin, movieID, firstID))

	list, err = env.svc.MovieViewer.ListShowTimes(ctx, entity.GuestContext(), movieID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, st.ID, list[0].ID)
}
