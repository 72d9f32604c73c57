package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"
)

const (
	// UnlockKeyPrefix is the fixed prefix of the day-keyed unlock records.
	UnlockKeyPrefix = "unlocks"

	// UnlockRetention keeps a day key around long enough to survive timezone
	// skew, then lets Redis expire it. Day rollover itself comes from the key
	// (a new date means a new, empty key); the TTL only prevents stale keys
	// from accumulating forever.
	UnlockRetention = 48 * time.Hour
)

// DayKey returns the calendar date key for t at day granularity, in the
// server's local timezone.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// UnlockCache is the durable store for the daily free-view gate: one key per
// user per calendar day holding the JSON array of reel IDs unlocked under the
// free allowance that day.
type UnlockCache struct {
	redis *RedisCache
}

func NewUnlockCache(redis *RedisCache) *UnlockCache {
	return &UnlockCache{redis: redis}
}

func unlockKey(userID uint, day string) string {
	return fmt.Sprintf("%s:%d:%s", UnlockKeyPrefix, userID, day)
}

// Load returns the set of reel IDs unlocked by the user on the given day.
// It fails open: an absent key, a read error, or a malformed payload all
// degrade to the empty set (zero prior unlocks), never to an error. That is
// the conservative default; the gate must never assume unlimited unlocks.
func (c *UnlockCache) Load(userID uint, day string) map[uint]bool {
	unlocked := make(map[uint]bool)
	if c == nil || c.redis == nil {
		return unlocked
	}

	data, err := c.redis.Get(unlockKey(userID, day))
	if err != nil {
		log.Printf("unlock cache: read failed for user %d: %v", userID, err)
		return unlocked
	}
	if data == nil {
		return unlocked
	}

	var ids []uint
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("unlock cache: malformed record for user %d: %v", userID, err)
		return unlocked
	}
	for _, id := range ids {
		unlocked[id] = true
	}
	return unlocked
}

// Save persists the full unlocked set for the day, replacing any prior value
// under that key. Callers treat a write failure as non-fatal: the in-memory
// set stays authoritative for the session.
func (c *UnlockCache) Save(userID uint, day string, unlocked map[uint]bool) error {
	if c == nil || c.redis == nil {
		return nil
	}

	ids := make([]uint, 0, len(unlocked))
	for id := range unlocked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.redis.Set(unlockKey(userID, day), data, UnlockRetention)
}
