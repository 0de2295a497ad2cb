package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"movie-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	catalogPrefix     = "catalog"
	catalogGeneration = catalogPrefix + ":gen"
)

// cachedMovieRepository serves catalog reads from Redis. Every write bumps a
// generation counter that is part of each key, so stale entries are never
// read again and simply expire.
type cachedMovieRepository struct {
	MovieRepository
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewCachedMovieRepository wraps next with a Redis read cache. A nil client returns next unchanged.
func NewCachedMovieRepository(next MovieRepository, rdb *redis.Client, ttl time.Duration, log *zap.Logger) MovieRepository {
	if rdb == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &cachedMovieRepository{
		MovieRepository: next,
		rdb:             rdb,
		ttl:             ttl,
		log:             log.With(zap.String("repository", "movie_cache")),
	}
}

// key joins the generation and the quoted parts. Quoting keeps user supplied
// filter text containing ':' from colliding with another filter's key.
func (c *cachedMovieRepository) key(ctx context.Context, parts ...any) string {
	gen, err := c.rdb.Get(ctx, catalogGeneration).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn("Failed to read catalog generation", zap.Error(err))
	}
	k := fmt.Sprintf("%s:%d", catalogPrefix, gen)
	for _, p := range parts {
		k += ":" + strconv.Quote(fmt.Sprint(p))
	}
	return k
}

// load fills dst from key, returning false on a miss or any cache failure.
func (c *cachedMovieRepository) load(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("Cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *cachedMovieRepository) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *cachedMovieRepository) invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, catalogGeneration).Err(); err != nil {
		c.log.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

func (c *cachedMovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	key := c.key(ctx, "movie", id)

	var movie entity.Movie
	if c.load(ctx, key, &movie) {
		return &movie, nil
	}

	found, err := c.MovieRepository.FindByID(ctx, id)
	if err != nil || found == nil {
		return found, err
	}
	c.store(ctx, key, found)
	return found, nil
}

func (c *cachedMovieRepository) FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error) {
	key := c.key(ctx, "list", filter.Genre, filter.Search, filter.Limit, filter.Offset)

	var movies []*entity.Movie
	if c.load(ctx, key, &movies) {
		return movies, nil
	}

	movies, err := c.MovieRepository.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, movies)
	return movies, nil
}

func (c *cachedMovieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	key := c.key(ctx, "count", filter.Genre, filter.Search)

	var total int64
	if c.load(ctx, key, &total) {
		return total, nil
	}

	total, err := c.MovieRepository.CountAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	c.store(ctx, key, total)
	return total, nil
}

func (c *cachedMovieRepository) Create(ctx context.Context, movie *entity.Movie, showTimes []*entity.ShowTime) error {
	if err := c.MovieRepository.Create(ctx, movie, showTimes); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *cachedMovieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	if err := c.MovieRepository.Update(ctx, movie); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *cachedMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.MovieRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}
