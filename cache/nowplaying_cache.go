package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flamtunes/db"
	"flamtunes/model"

	"github.com/redis/go-redis/v9"
)

const nowPlayingKey = "nowplaying:current"

// The cache outlives any plausible track length so a stalled orchestrator
// doesn't blank the player; the ingestion endpoint refreshes it on every
// playback change.
const nowPlayingTTL = 30 * time.Minute

// SetNowPlaying caches the current playback record for the public endpoint.
func SetNowPlaying(ctx context.Context, entry *model.NowPlaying) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal now playing entry: %w", err)
	}

	if err := db.RedisClient.Set(ctx, nowPlayingKey, data, nowPlayingTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache now playing entry: %w", err)
	}
	return nil
}

// GetNowPlaying returns the cached playback record, or (nil, nil) on a cache
// miss.
func GetNowPlaying(ctx context.Context) (*model.NowPlaying, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}

	data, err := db.RedisClient.Get(ctx, nowPlayingKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read now playing cache: %w", err)
	}

	entry := &model.NowPlaying{}
	if err := json.Unmarshal([]byte(data), entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal now playing cache: %w", err)
	}
	return entry, nil
}
