package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("viewer session not found")

// PresentationState is what the client should render for the reel viewer.
type PresentationState string

const (
	// StateLoading: content not yet available.
	StateLoading PresentationState = "loading"
	// StateEmpty: content available but the sequence has zero reels.
	StateEmpty PresentationState = "empty"
	// StateContent: render the current reel (locked or unlocked).
	StateContent PresentationState = "content"
)

// DerivePresentation evaluates the mutually exclusive viewer states in order:
// loading, then empty, then content.
func DerivePresentation(loaded bool, count int) PresentationState {
	if !loaded {
		return StateLoading
	}
	if count == 0 {
		return StateEmpty
	}
	return StateContent
}

// ViewerSession is the ephemeral state of one open-to-close cycle of the reel
// viewer. It lives in memory only and is discarded on close; the day-keyed
// unlocked set is the only part with a durable counterpart.
type ViewerSession struct {
	ID      string
	UserID  uint
	Premium bool

	// mu guards the mutable fields below. Overlapping requests for the same
	// session land on different Fiber workers, so every read or write of
	// Unlocked, Viewed, CurrentIndex, and LastSeen after Open holds it.
	mu sync.Mutex

	// Day is the calendar date key captured at open; Unlocked is today's
	// unlocked set, loaded once. No re-load happens within a session.
	Day      string
	Unlocked map[uint]bool

	// Viewed tracks reels whose view event already fired this session, so
	// scrolling back and forth never double-counts.
	Viewed map[uint]bool

	CurrentIndex int
	OpenedAt     time.Time
	LastSeen     time.Time
}

// PremiumChecker reports externally-verified entitlement. Implemented by
// SubscriptionService.
type PremiumChecker interface {
	IsPremium(userID uint) bool
}

// ViewSink receives each reel's view event exactly once per session.
type ViewSink func(userID, reelID uint)

// ViewerService owns the live viewer sessions and coordinates the unlock
// policy with view-event emission as the user scrolls.
type ViewerService struct {
	unlocks *UnlockService
	premium PremiumChecker
	onView  ViewSink

	mu       sync.RWMutex
	sessions map[string]*ViewerSession

	now         func() time.Time
	idleTimeout time.Duration
}

func NewViewerService(unlocks *UnlockService, premium PremiumChecker, onView ViewSink) *ViewerService {
	vs := &ViewerService{
		unlocks:     unlocks,
		premium:     premium,
		onView:      onView,
		sessions:    make(map[string]*ViewerSession),
		now:         time.Now,
		idleTimeout: 30 * time.Minute,
	}
	go vs.reaper()
	return vs
}

// Open creates a viewer session: loads today's unlocked set, captures the
// premium flag, resets the per-session view set, and seeds the start index.
func (s *ViewerService) Open(userID uint, startIndex int) *ViewerSession {
	now := s.now()
	day := now.Format("2006-01-02")

	isPremium := false
	if s.premium != nil {
		isPremium = s.premium.IsPremium(userID)
	}

	unlocked := make(map[uint]bool)
	// Premium sessions never read the counter.
	if !isPremium && s.unlocks != nil {
		unlocked = s.unlocks.LoadDay(userID, day)
	}
	if startIndex < 0 {
		startIndex = 0
	}

	sess := &ViewerSession{
		ID:           uuid.NewString(),
		UserID:       userID,
		Premium:      isPremium,
		Day:          day,
		Unlocked:     unlocked,
		Viewed:       make(map[uint]bool),
		CurrentIndex: startIndex,
		OpenedAt:     now,
		LastSeen:     now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *ViewerService) Get(sessionID string, userID uint) (*ViewerSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// VisibleResult is the outcome of one visibility change in the viewer.
type VisibleResult struct {
	State       UnlockState
	Locked      bool
	ViewEmitted bool
	FreeUsed    int
	FreeLimit   int
}

// Visible handles the currently-centered reel changing: it runs the unlock
// policy and, when the reel is unlocked and seen for the first time this
// session, emits exactly one view event. Locked reels are not "seen" and
// never emit.
func (s *ViewerService) Visible(sessionID string, userID, reelID uint, index int) (VisibleResult, error) {
	sess, err := s.Get(sessionID, userID)
	if err != nil {
		return VisibleResult{}, err
	}

	sess.mu.Lock()
	sess.LastSeen = s.now()
	if index >= 0 {
		sess.CurrentIndex = index
	}
	sess.mu.Unlock()

	state := s.unlocks.Request(sess, reelID)

	// Marking Viewed under the lock makes the emission decision at-most-once;
	// a reel never regresses from unlocked, so deciding after Request is safe.
	emitted := false
	sess.mu.Lock()
	if state == StateUnlocked && !sess.Viewed[reelID] {
		sess.Viewed[reelID] = true
		emitted = true
	}
	used := len(sess.Unlocked)
	if sess.Premium {
		used = 0
	}
	sess.mu.Unlock()

	if emitted && s.onView != nil {
		s.onView(sess.UserID, reelID)
	}
	return VisibleResult{
		State:       state,
		Locked:      state == StateLocked,
		ViewEmitted: emitted,
		FreeUsed:    used,
		FreeLimit:   DailyFreeLimit,
	}, nil
}

// Locked derives the per-reel lock flag for feed rendering.
func (s *ViewerService) Locked(sess *ViewerSession, reelID uint) bool {
	return s.unlocks.Locked(sess, reelID)
}

// Close discards the session. Persisted unlock counters are unaffected.
func (s *ViewerService) Close(sessionID string, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.UserID != userID {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// reaper drops sessions abandoned without an explicit close (app killed,
// network gone). Runs for the life of the process.
func (s *ViewerService) reaper() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := s.now().Add(-s.idleTimeout)
		s.mu.Lock()
		for id, sess := range s.sessions {
			sess.mu.Lock()
			idle := sess.LastSeen.Before(cutoff)
			sess.mu.Unlock()
			if idle {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
