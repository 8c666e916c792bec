package cache

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const searchCountTTL = 30 * 24 * time.Hour

// Cache wraps a Redis client with fail-open semantics: any transport
// error is downgraded to a miss on Get and a no-op on Set. Cache
// unavailability must degrade to recomputation, never request failure.
type Cache struct {
	client *redis.Client
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

func New(opts Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})
	return &Cache{client: client}
}

// Get returns the cached value for key, or ("", false) on miss.
// Expired keys are evicted by Redis itself and read as misses.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		}
		return "", false
	}
	return val, true
}

// Set stores value under key with the given TTL. Returns false if the
// write failed; callers are expected to carry on regardless.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		return false
	}
	return true
}

// Delete removes a key. Best effort.
func (c *Cache) Delete(ctx context.Context, key string) bool {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
		return false
	}
	return true
}

// IncrementSearch bumps the popularity counter for a player name.
// Counters expire after 30 days of inactivity.
func (c *Cache) IncrementSearch(ctx context.Context, playerName string) int64 {
	key := "search_count:" + strings.ToLower(playerName)
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("search counter incr failed")
		return 0
	}
	c.client.Expire(ctx, key, searchCountTTL)
	return count
}

// PopularSearch is one entry of PopularPlayers.
type PopularSearch struct {
	Name  string
	Count int64
}

// PopularPlayers returns the most-searched player names, highest first.
func (c *Cache) PopularPlayers(ctx context.Context, limit int) []PopularSearch {
	keys, err := c.client.Keys(ctx, "search_count:*").Result()
	if err != nil {
		log.Warn().Err(err).Msg("popular players scan failed")
		return nil
	}

	players := make([]PopularSearch, 0, len(keys))
	for _, key := range keys {
		val, err := c.client.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		count, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		players = append(players, PopularSearch{
			Name:  strings.TrimPrefix(key, "search_count:"),
			Count: count,
		})
	}

	sort.Slice(players, func(i, j int) bool { return players[i].Count > players[j].Count })
	if len(players) > limit {
		players = players[:limit]
	}
	return players
}

// Ping checks Redis connectivity, for health reporting only.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
