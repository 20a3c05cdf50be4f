package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

// leaderboardKey holds one hash field per requested leaderboard size.
const leaderboardKey = "guesstheflag:leaderboard"

// Client is the part of *redis.Client used by the cache.
type Client interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type ResultStore interface {
	Save(ctx context.Context, res *entities.GameResult) error
	GetPlayerStats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
	GetTop(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}

// LeaderboardCache keeps recent leaderboards in Redis in front of a result store.
// Every saved result drops the cached boards. Redis failures fall back to the store.
type LeaderboardCache struct {
	next   ResultStore
	client Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewLeaderboardCache(next ResultStore, client Client, ttl time.Duration, logger *zap.Logger) *LeaderboardCache {
	return &LeaderboardCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *LeaderboardCache) Save(ctx context.Context, res *entities.GameResult) error {
	if err := c.next.Save(ctx, res); err != nil {
		return err
	}

	if err := c.client.Del(ctx, leaderboardKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached leaderboard", zap.Error(err))
	}
	return nil
}

func (c *LeaderboardCache) GetPlayerStats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	return c.next.GetPlayerStats(ctx, userID)
}

func (c *LeaderboardCache) GetTop(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	field := strconv.Itoa(limit)

	raw, err := c.client.HGet(ctx, leaderboardKey, field).Result()
	switch {
	case err == nil:
		var entries []*entities.LeaderboardEntry
		if err := json.Unmarshal([]byte(raw), &entries); err == nil {
			return entries, nil
		}
		c.logger.Warn("corrupted cached leaderboard", zap.String("field", field))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("failed to read cached leaderboard", zap.Error(err))
	}

	entries, err := c.next.GetTop(ctx, limit)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return entries, nil
	}

	if err := c.client.HSet(ctx, leaderboardKey, field, payload).Err(); err != nil {
		c.logger.Warn("failed to cache leaderboard", zap.Error(err))
		return entries, nil
	}
	if err := c.client.Expire(ctx, leaderboardKey, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to set leaderboard ttl", zap.Error(err))
	}

	return entries, nil
}
