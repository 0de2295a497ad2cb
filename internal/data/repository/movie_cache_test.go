package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"movie-booking/internal/data/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingMovieRepo struct {
	MovieRepository
	movies map[uuid.UUID]*entity.Movie
	reads  int
}

func (r *countingMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.reads++
	return r.movies[id], nil
}

func (r *countingMovieRepo) FindAll(_ context.Context, _ MovieFilter) ([]*entity.Movie, error) {
	r.reads++
	var out []*entity.Movie
	for _, m := range r.movies {
		out = append(out, m)
	}
	return out, nil
}

func (r *countingMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.movies[movie.ID] = movie
	return nil
}

func newCachedRepo(t *testing.T) (*countingMovieRepo, MovieRepository) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })

	movie := &entity.Movie{Title: "Arrival", Genre: "Sci-Fi", Rating: 8, Price: 45000}
	movie.ID = uuid.New()

	inner := &countingMovieRepo{movies: map[uuid.UUID]*entity.Movie{movie.ID: movie}}
	return inner, NewCachedMovieRepository(inner, rdb, time.Minute, zap.NewNop())
}

func TestCachedMovieRepositoryServesRepeatReads(t *testing.T) {
	inner, repo := newCachedRepo(t)
	ctx := context.Background()

	var id uuid.UUID
	for k := range inner.movies {
		id = k
	}

	first, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.reads)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.ID, second.ID)

	list, err := repo.FindAll(ctx, MovieFilter{Limit: 10})
	require.NoError(t, err)
	_, err = repo.FindAll(ctx, MovieFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, inner.reads)
}

func TestCachedMovieRepositoryInvalidatesOnWrite(t *testing.T) {
	inner, repo := newCachedRepo(t)
	ctx := context.Background()

	var movie *entity.Movie
	for _, m := range inner.movies {
		movie = m
	}

	_, err := repo.FindByID(ctx, movie.ID)
	require.NoError(t, err)

	updated := *movie
	updated.Title = "Arrival (Director's Cut)"
	require.NoError(t, repo.Update(ctx, &updated))

	got, err := repo.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arrival (Director's Cut)", got.Title)
	assert.Equal(t, 2, inner.reads)
}

func TestCachedMovieRepositoryDisabledWithoutRedis(t *testing.T) {
	inner := &countingMovieRepo{}
	assert.Same(t, MovieRepository(inner), NewCachedMovieRepository(inner, nil, time.Minute, zap.NewNop()))
}

type filterEchoRepo struct {
	MovieRepository
}

func (filterEchoRepo) FindAll(_ context.Context, filter MovieFilter) ([]*entity.Movie, error) {
	return []*entity.Movie{{Title: fmt.Sprintf("genre=%s search=%s", filter.Genre, filter.Search)}}, nil
}

func TestCachedMovieRepositoryKeepsFiltersApart(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })
	repo := NewCachedMovieRepository(filterEchoRepo{}, rdb, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := repo.FindAll(ctx, MovieFilter{Genre: "Drama:War", Search: "x", Limit: 10})
	require.NoError(t, err)
	second, err := repo.FindAll(ctx, MovieFilter{Genre: "Drama", Search: "War:x", Limit: 10})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "genre=Drama:War search=x", first[0].Title)
	assert.Equal(t, "genre=Drama search=War:x", second[0].Title)
}
