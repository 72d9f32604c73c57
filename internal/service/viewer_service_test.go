package service

import (
	"sync"
	"testing"
)

type stubPremium struct{ premium map[uint]bool }

func (s *stubPremium) IsPremium(userID uint) bool { return s.premium[userID] }

type viewRecorder struct {
	mu     sync.Mutex
	events []uint
}

func (r *viewRecorder) sink(userID, reelID uint) {
	r.mu.Lock()
	r.events = append(r.events, reelID)
	r.mu.Unlock()
}

func newTestViewer(store *MockUnlockStore, premium map[uint]bool, rec *viewRecorder) *ViewerService {
	return NewViewerService(
		NewUnlockService(store),
		&stubPremium{premium: premium},
		rec.sink,
	)
}

func TestDerivePresentation(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		count  int
		want   PresentationState
	}{
		{"not loaded", false, 0, StateLoading},
		{"not loaded with count", false, 3, StateLoading},
		{"loaded but empty", true, 0, StateEmpty},
		{"loaded with content", true, 3, StateContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DerivePresentation(tt.loaded, tt.count); got != tt.want {
				t.Errorf("DerivePresentation(%v, %d) = %q, want %q", tt.loaded, tt.count, got, tt.want)
			}
		})
	}
}

func TestOpenLoadsTodaysSet(t *testing.T) {
	store := NewMockUnlockStore()
	store.records[storeKey(1, store.today())] = []uint{10, 11}
	rec := &viewRecorder{}
	vs := newTestViewer(store, nil, rec)

	sess := vs.Open(1, 0)
	if len(sess.Unlocked) != 2 || !sess.Unlocked[10] || !sess.Unlocked[11] {
		t.Errorf("Open loaded %v, want {10, 11}", sess.Unlocked)
	}
	if len(sess.Viewed) != 0 {
		t.Errorf("fresh session has view marks: %v", sess.Viewed)
	}
}

func TestOpenClampsStartIndex(t *testing.T) {
	vs := newTestViewer(NewMockUnlockStore(), nil, &viewRecorder{})
	sess := vs.Open(1, -3)
	if sess.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", sess.CurrentIndex)
	}
}

func TestVisibleEmitsViewOncePerSession(t *testing.T) {
	store := NewMockUnlockStore()
	rec := &viewRecorder{}
	vs := newTestViewer(store, nil, rec)
	sess := vs.Open(1, 0)

	// Scroll sequence A, B, A, C: A's view fires exactly once.
	for i, reelID := range []uint{7, 8, 7, 9} {
		if _, err := vs.Visible(sess.ID, 1, reelID, i); err != nil {
			t.Fatalf("Visible(%d): %v", reelID, err)
		}
	}

	counts := make(map[uint]int)
	for _, id := range rec.events {
		counts[id]++
	}
	if counts[7] != 1 {
		t.Errorf("reel 7 view fired %d times, want 1", counts[7])
	}
	if len(rec.events) != 3 {
		t.Errorf("view events = %v, want one each for 7, 8, 9", rec.events)
	}
}

func TestVisibleLockedEmitsNoView(t *testing.T) {
	store := NewMockUnlockStore()
	rec := &viewRecorder{}
	vs := newTestViewer(store, nil, rec)
	sess := vs.Open(1, 0)

	// Spend the allowance, then center a sixth reel.
	for i, reelID := range []uint{1, 2, 3, 4, 5} {
		vs.Visible(sess.ID, 1, reelID, i)
	}
	res, err := vs.Visible(sess.ID, 1, 6, 5)
	if err != nil {
		t.Fatalf("Visible(6): %v", err)
	}
	if !res.Locked || res.State != StateLocked {
		t.Errorf("reel 6 result = %+v, want locked", res)
	}
	if res.ViewEmitted {
		t.Error("locked reel emitted a view event")
	}
	for _, id := range rec.events {
		if id == 6 {
			t.Error("locked reel 6 present in view events")
		}
	}
	if res.FreeUsed != DailyFreeLimit {
		t.Errorf("FreeUsed = %d, want %d", res.FreeUsed, DailyFreeLimit)
	}
}

func TestVisiblePremiumUnlimited(t *testing.T) {
	store := NewMockUnlockStore()
	rec := &viewRecorder{}
	vs := newTestViewer(store, map[uint]bool{2: true}, rec)
	sess := vs.Open(2, 0)

	for reelID := uint(1); reelID <= 12; reelID++ {
		res, err := vs.Visible(sess.ID, 2, reelID, int(reelID))
		if err != nil {
			t.Fatalf("Visible(%d): %v", reelID, err)
		}
		if res.Locked {
			t.Fatalf("premium reel %d locked", reelID)
		}
	}
	if store.loadCalls != 0 || store.saveCalls != 0 {
		t.Errorf("premium session touched the store: %d loads, %d saves", store.loadCalls, store.saveCalls)
	}
	if len(rec.events) != 12 {
		t.Errorf("premium session emitted %d views, want 12", len(rec.events))
	}
}

func TestCloseDiscardsSessionOnly(t *testing.T) {
	store := NewMockUnlockStore()
	rec := &viewRecorder{}
	vs := newTestViewer(store, nil, rec)
	sess := vs.Open(1, 0)
	vs.Visible(sess.ID, 1, 42, 0)

	if err := vs.Close(sess.ID, 1); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := vs.Get(sess.ID, 1); err != ErrSessionNotFound {
		t.Errorf("Get after Close = %v, want ErrSessionNotFound", err)
	}

	// The durable unlock record survives the session.
	if len(store.records[storeKey(1, store.today())]) != 1 {
		t.Errorf("durable record lost on close: %v", store.records)
	}

	// A new session re-reads the persisted set; view marks start fresh.
	next := vs.Open(1, 0)
	if !next.Unlocked[42] {
		t.Errorf("new session missing persisted unlock: %v", next.Unlocked)
	}
	if len(next.Viewed) != 0 {
		t.Errorf("new session inherited view marks: %v", next.Viewed)
	}
}

func TestVisibleWrongUserRejected(t *testing.T) {
	vs := newTestViewer(NewMockUnlockStore(), nil, &viewRecorder{})
	sess := vs.Open(1, 0)

	if _, err := vs.Visible(sess.ID, 99, 1, 0); err != ErrSessionNotFound {
		t.Errorf("Visible with wrong user = %v, want ErrSessionNotFound", err)
	}
}

// Overlapping visibility calls for one session must never grant more than the
// daily allowance or double-emit a view. Run with -race.
func TestVisibleConcurrentKeepsLimit(t *testing.T) {
	store := NewMockUnlockStore()
	rec := &viewRecorder{}
	vs := newTestViewer(store, nil, rec)
	sess := vs.Open(1, 0)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				reelID := uint(1 + (g+i)%10)
				if _, err := vs.Visible(sess.ID, 1, reelID, i); err != nil {
					t.Errorf("Visible: %v", err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if len(sess.Unlocked) > DailyFreeLimit {
		t.Errorf("unlocked %d reels, want at most %d", len(sess.Unlocked), DailyFreeLimit)
	}

	emitted := make(map[uint]int)
	for _, id := range rec.events {
		emitted[id]++
	}
	if len(emitted) != len(sess.Unlocked) {
		t.Errorf("view events for %d reels, want %d", len(emitted), len(sess.Unlocked))
	}
	for id, n := range emitted {
		if n != 1 {
			t.Errorf("reel %d emitted %d view events, want 1", id, n)
		}
		if !sess.Unlocked[id] {
			t.Errorf("view event for reel %d outside the unlocked set", id)
		}
	}
}
