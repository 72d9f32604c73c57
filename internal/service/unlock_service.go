package service

import (
	"log"
)

// DailyFreeLimit is the maximum number of distinct reels a non-premium user
// may unlock per calendar day.
const DailyFreeLimit = 5

// UnlockState is the outcome of an unlock request for one reel.
type UnlockState int

const (
	// StateUnlocked: the reel is viewable (premium, already unlocked today,
	// or granted one of today's free slots).
	StateUnlocked UnlockState = iota
	// StateLocked: the daily allowance is spent and this reel holds no slot.
	// Terminal for the rest of the day; slots are never reclaimed.
	StateLocked
)

// UnlockStore persists the day-keyed unlocked set. Implemented by
// cache.UnlockCache; mocked in tests.
type UnlockStore interface {
	Load(userID uint, day string) map[uint]bool
	Save(userID uint, day string, unlocked map[uint]bool) error
}

// UnlockService decides unlock requests against the daily free allowance.
// The in-memory set on the viewer session is the source of truth for the
// session; the store write is issued after the mutation and a failure is
// logged and swallowed (the grant stands regardless).
type UnlockService struct {
	store UnlockStore
}

func NewUnlockService(store UnlockStore) *UnlockService {
	return &UnlockService{store: store}
}

// LoadDay fetches the unlocked set for the user's current day. Fails open to
// an empty set through the store.
func (s *UnlockService) LoadDay(userID uint, day string) map[uint]bool {
	if s.store == nil {
		return make(map[uint]bool)
	}
	return s.store.Load(userID, day)
}

// Request applies the admission policy for one reel within a viewer session.
// Slots go first-requested-first-served as the user scrolls; repeated
// requests for the same reel are idempotent and never re-persist.
func (s *UnlockService) Request(sess *ViewerSession, reelID uint) UnlockState {
	// Premium bypasses the counter entirely: never read, never mutated.
	if sess.Premium {
		return StateUnlocked
	}

	// The capacity check and the grant must be one atomic step, or two
	// overlapping requests could both take the last free slot.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Unlocked[reelID] {
		return StateUnlocked
	}

	if len(sess.Unlocked) >= DailyFreeLimit {
		return StateLocked
	}

	sess.Unlocked[reelID] = true
	if s.store != nil {
		if err := s.store.Save(sess.UserID, sess.Day, sess.Unlocked); err != nil {
			// The in-memory grant stands for the rest of the session; the
			// inconsistency only shows up after a restart as a re-locked reel.
			log.Printf("unlock: persist failed for user %d day %s: %v", sess.UserID, sess.Day, err)
		}
	}
	return StateUnlocked
}

// Locked reports whether a reel renders behind the upgrade overlay for this
// session: non-premium, not unlocked today, and the allowance is spent.
func (s *UnlockService) Locked(sess *ViewerSession, reelID uint) bool {
	if sess.Premium {
		return false
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Unlocked[reelID] {
		return false
	}
	return len(sess.Unlocked) >= DailyFreeLimit
}
