package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/config"
	"github.com/phynetix/grading-api/internal/dto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

const defaultLeaderboardTTL = 5 * time.Minute

// LeaderboardCache keeps the ranked completed attempts of a test. Failures
// are logged and treated as misses; the store stays the source of truth.
type LeaderboardCache interface {
	Get(ctx context.Context, testID uuid.UUID) ([]dto.LeaderboardEntry, bool)
	Set(ctx context.Context, testID uuid.UUID, entries []dto.LeaderboardEntry)
	Invalidate(ctx context.Context, testID uuid.UUID)
}

// NewLeaderboardCache returns a Redis-backed cache, or a no-op cache when
// REDIS_ADDR is empty or Redis is unreachable at start.
func NewLeaderboardCache(lc fx.Lifecycle, cfg *config.Config) LeaderboardCache {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, leaderboard cache disabled")
		return NewNoopLeaderboardCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, leaderboard cache disabled")
		_ = client.Close()
		return NewNoopLeaderboardCache()
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	ttl := cfg.Redis.LeaderboardTTL
	if ttl <= 0 {
		ttl = defaultLeaderboardTTL
	}
	log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", ttl).Msg("Leaderboard cache connected to Redis")
	return &redisLeaderboardCache{client: client, ttl: ttl}
}

type redisLeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func leaderboardKey(testID uuid.UUID) string {
	return fmt.Sprintf("leaderboard:%s", testID)
}

func (c *redisLeaderboardCache) Get(ctx context.Context, testID uuid.UUID) ([]dto.LeaderboardEntry, bool) {
	raw, err := c.client.Get(ctx, leaderboardKey(testID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("testID", testID.String()).Msg("Leaderboard cache read failed")
		}
		return nil, false
	}
	var entries []dto.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Warn().Err(err).Str("testID", testID.String()).Msg("Leaderboard cache entry is corrupt")
		return nil, false
	}
	return entries, true
}

func (c *redisLeaderboardCache) Set(ctx context.Context, testID uuid.UUID, entries []dto.LeaderboardEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		log.Warn().Err(err).Msg("Leaderboard cache encode failed")
		return
	}
	if err := c.client.Set(ctx, leaderboardKey(testID), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("testID", testID.String()).Msg("Leaderboard cache write failed")
	}
}

func (c *redisLeaderboardCache) Invalidate(ctx context.Context, testID uuid.UUID) {
	if err := c.client.Del(ctx, leaderboardKey(testID)).Err(); err != nil {
		log.Warn().Err(err).Str("testID", testID.String()).Msg("Leaderboard cache invalidation failed")
	}
}

type noopLeaderboardCache struct{}

func NewNoopLeaderboardCache() LeaderboardCache {
	return noopLeaderboardCache{}
}

func (noopLeaderboardCache) Get(context.Context, uuid.UUID) ([]dto.LeaderboardEntry, bool) {
	return nil, false
}
func (noopLeaderboardCache) Set(context.Context, uuid.UUID, []dto.LeaderboardEntry) {}
func (noopLeaderboardCache) Invalidate(context.Context, uuid.UUID)                  {}
