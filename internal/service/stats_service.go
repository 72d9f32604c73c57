package service

import (
	"log"
	"time"

	"github.com/AkshayEddula/bibleapp-sub000/internal/cache"
	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

// Points awarded per action.
const (
	PointsPerPrayer   = 5
	PointsPerAmen     = 2
	PointsPerReelView = 1
	PointsPerPost     = 10
)

type StatsService struct {
	statsRepo repository.StatsRepositoryInterface
	feedCache *cache.FeedCache
	now       func() time.Time
}

func NewStatsService(statsRepo repository.StatsRepositoryInterface, feedCache *cache.FeedCache) *StatsService {
	return &StatsService{statsRepo: statsRepo, feedCache: feedCache, now: time.Now}
}

func (s *StatsService) AddPrayerOffered(userID uint) error {
	return s.recordAction(userID, PointsPerPrayer, 1, 0, 0)
}

func (s *StatsService) AddAmenGiven(userID uint) error {
	return s.recordAction(userID, PointsPerAmen, 0, 1, 0)
}

func (s *StatsService) AddReelView(userID uint) error {
	return s.recordAction(userID, PointsPerReelView, 0, 0, 1)
}

func (s *StatsService) AddPost(userID uint) error {
	return s.recordAction(userID, PointsPerPost, 0, 0, 0)
}

func (s *StatsService) recordAction(userID uint, points, prayers, amens, reels int64) error {
	if err := s.statsRepo.EnsureForUser(userID); err != nil {
		return err
	}
	if err := s.statsRepo.ApplyAction(userID, points, prayers, amens, reels); err != nil {
		return err
	}
	s.touchStreak(userID)
	return nil
}

// touchStreak extends or resets the daily streak for today's date. Same
// day-keyed idea as the unlock gate: the stored date string decides whether
// today continues yesterday's run. Failures are logged, never surfaced; a
// streak is not worth failing an action over.
func (s *StatsService) touchStreak(userID uint) {
	stats, err := s.statsRepo.Get(userID)
	if err != nil {
		log.Printf("stats: streak read failed for user %d: %v", userID, err)
		return
	}

	now := s.now()
	today := now.Format("2006-01-02")
	if stats.LastActiveDate == today {
		return
	}

	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	length := 1
	if stats.LastActiveDate == yesterday {
		length = stats.StreakLength + 1
	}

	if err := s.statsRepo.UpdateStreak(userID, today, length); err != nil {
		log.Printf("stats: streak update failed for user %d: %v", userID, err)
	}
}

// GetMine returns the caller's stats row, creating it on first read.
func (s *StatsService) GetMine(userID uint) (*models.UserStats, error) {
	if err := s.statsRepo.EnsureForUser(userID); err != nil {
		return nil, err
	}
	return s.statsRepo.Get(userID)
}

// Leaderboard returns the top users by points, cached briefly.
func (s *StatsService) Leaderboard(limit int) ([]models.UserStats, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if rows, hit := s.feedCache.GetLeaderboard(); hit {
		if len(rows) > limit {
			rows = rows[:limit]
		}
		return rows, nil
	}

	rows, err := s.statsRepo.TopByPoints(limit)
	if err != nil {
		return nil, err
	}
	if err := s.feedCache.SetLeaderboard(rows); err != nil {
		log.Printf("stats: leaderboard cache write failed: %v", err)
	}
	return rows, nil
}
