package cache

import (
	"fmt"
	"time"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// TTL constants for different cache types
const (
	ReelFeedTTL    = 2 * time.Minute
	LeaderboardTTL = 5 * time.Minute
)

// FeedCache caches reel feed pages and the points leaderboard.
type FeedCache struct {
	redis *RedisCache
}

func NewFeedCache(redis *RedisCache) *FeedCache {
	return &FeedCache{redis: redis}
}

// feedKey includes the page limit: the same cursor serves differently sized
// pages, and one must never be returned for the other.
func feedKey(theme string, cursor uint, limit int) string {
	if theme == "" {
		theme = "all"
	}
	return fmt.Sprintf("reels:feed:%s:%d:%d", theme, cursor, limit)
}

// GetFeed retrieves a cached feed page.
func (fc *FeedCache) GetFeed(theme string, cursor uint, limit int) ([]models.Reel, bool) {
	if fc == nil || fc.redis == nil {
		return nil, false
	}
	data, err := fc.redis.Get(feedKey(theme, cursor, limit))
	if err != nil || data == nil {
		return nil, false
	}

	var reels []models.Reel
	if err := msgpack.Unmarshal(data, &reels); err != nil {
		return nil, false
	}
	return reels, true
}

// SetFeed caches a feed page.
func (fc *FeedCache) SetFeed(theme string, cursor uint, limit int, reels []models.Reel) error {
	if fc == nil || fc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(reels)
	if err != nil {
		return err
	}
	return fc.redis.Set(feedKey(theme, cursor, limit), data, ReelFeedTTL)
}

// InvalidateFeed drops every cached feed page; called when reels change.
func (fc *FeedCache) InvalidateFeed() error {
	if fc == nil || fc.redis == nil {
		return nil
	}
	return fc.redis.DeletePattern("reels:feed:*")
}

// GetLeaderboard retrieves the cached points leaderboard.
func (fc *FeedCache) GetLeaderboard() ([]models.UserStats, bool) {
	if fc == nil || fc.redis == nil {
		return nil, false
	}
	data, err := fc.redis.Get("stats:leaderboard")
	if err != nil || data == nil {
		return nil, false
	}

	var rows []models.UserStats
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

// SetLeaderboard caches the points leaderboard.
func (fc *FeedCache) SetLeaderboard(rows []models.UserStats) error {
	if fc == nil || fc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(rows)
	if err != nil {
		return err
	}
	return fc.redis.Set("stats:leaderboard", data, LeaderboardTTL)
}
