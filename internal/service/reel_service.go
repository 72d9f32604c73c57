package service

import (
	"errors"
	"log"
	"strings"

	"github.com/AkshayEddula/bibleapp-sub000/internal/cache"
	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

type ReelService struct {
	reelRepo  repository.ReelRepositoryInterface
	unlocks   *UnlockService
	stats     *StatsService
	feedCache *cache.FeedCache

	// Base URL prepended to background keys when building responses.
	mediaBaseURL string
}

func NewReelService(reelRepo repository.ReelRepositoryInterface, unlocks *UnlockService, stats *StatsService, feedCache *cache.FeedCache, mediaBaseURL string) *ReelService {
	return &ReelService{
		reelRepo:     reelRepo,
		unlocks:      unlocks,
		stats:        stats,
		feedCache:    feedCache,
		mediaBaseURL: strings.TrimRight(strings.TrimSpace(mediaBaseURL), "/"),
	}
}

// FeedPage is one page of the reel viewer, with the presentation state the
// client should render.
type FeedPage struct {
	State      PresentationState     `json:"state"`
	Reels      []models.ReelResponse `json:"reels"`
	NextCursor uint                  `json:"next_cursor"`
}

// Feed returns a page of active reels with per-session lock flags. cursor is
// the smallest reel ID the client already has; 0 starts from the top.
func (s *ReelService) Feed(sess *ViewerSession, theme string, cursor uint, limit int) (*FeedPage, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	theme = strings.TrimSpace(strings.ToLower(theme))

	reels, hit := s.feedCache.GetFeed(theme, cursor, limit)
	if !hit {
		var err error
		if theme != "" {
			reels, err = s.reelRepo.ListByTheme(theme, cursor, limit)
		} else {
			reels, err = s.reelRepo.ListActive(cursor, limit)
		}
		if err != nil {
			return nil, err
		}
		if err := s.feedCache.SetFeed(theme, cursor, limit, reels); err != nil {
			log.Printf("reel feed: cache write failed: %v", err)
		}
	}

	// Empty applies to the sequence, not to a scrolled-past-the-end page.
	state := StateContent
	if cursor == 0 && len(reels) == 0 {
		state = StateEmpty
	}

	page := &FeedPage{State: state, Reels: make([]models.ReelResponse, 0, len(reels))}
	for i := range reels {
		reel := reels[i]
		if reel.BackgroundKey != "" && s.mediaBaseURL != "" {
			reel.BackgroundURL = s.mediaBaseURL + "/media/reels/" + reel.BackgroundKey
		}
		locked := s.unlocks.Locked(sess, reel.ID)
		page.Reels = append(page.Reels, reel.ToResponse(locked))
		page.NextCursor = reel.ID
	}
	return page, nil
}

// RecordView is the view-event sink: it bumps the reel's engagement counter
// and the viewer's gamification stats. Both writes are best-effort; a failed
// count never blocks scrolling.
func (s *ReelService) RecordView(userID, reelID uint) {
	if err := s.reelRepo.IncrementViewCount(reelID); err != nil {
		log.Printf("reel view: count increment failed for reel %d: %v", reelID, err)
	}
	if s.stats != nil {
		if err := s.stats.AddReelView(userID); err != nil {
			log.Printf("reel view: stats update failed for user %d: %v", userID, err)
		}
	}
}

type CreateReelInput struct {
	VerseRef      string `json:"verse_ref"`
	Translation   string `json:"translation"`
	VerseText     string `json:"verse_text"`
	Theme         string `json:"theme"`
	BackgroundKey string `json:"background_key"`
}

// Create adds a reel to the feed (admin only) and drops the cached pages.
func (s *ReelService) Create(input CreateReelInput) (*models.Reel, error) {
	input.VerseRef = strings.TrimSpace(input.VerseRef)
	input.VerseText = strings.TrimSpace(input.VerseText)
	if input.VerseRef == "" || input.VerseText == "" {
		return nil, errors.New("verse reference and text are required")
	}
	if input.Translation == "" {
		input.Translation = "KJV"
	}

	reel := &models.Reel{
		VerseRef:      input.VerseRef,
		Translation:   strings.ToUpper(strings.TrimSpace(input.Translation)),
		VerseText:     input.VerseText,
		Theme:         strings.TrimSpace(strings.ToLower(input.Theme)),
		BackgroundKey: strings.TrimSpace(input.BackgroundKey),
		IsActive:      true,
	}
	if err := s.reelRepo.Create(reel); err != nil {
		return nil, err
	}
	if err := s.feedCache.InvalidateFeed(); err != nil {
		log.Printf("reel create: feed invalidation failed: %v", err)
	}
	return reel, nil
}
