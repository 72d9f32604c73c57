package service

import (
	"errors"
	"testing"
	"time"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
)

// MockStatsRepository is an in-memory stats store for testing
type MockStatsRepository struct {
	rows map[uint]*models.UserStats
}

func NewMockStatsRepository() *MockStatsRepository {
	return &MockStatsRepository{rows: make(map[uint]*models.UserStats)}
}

func (m *MockStatsRepository) EnsureForUser(userID uint) error {
	if _, ok := m.rows[userID]; !ok {
		m.rows[userID] = &models.UserStats{UserID: userID}
	}
	return nil
}

func (m *MockStatsRepository) Get(userID uint) (*models.UserStats, error) {
	if row, ok := m.rows[userID]; ok {
		return row, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockStatsRepository) ApplyAction(userID uint, points, prayers, amens, reels int64) error {
	row, ok := m.rows[userID]
	if !ok {
		return errors.New("record not found")
	}
	row.Points += points
	row.PrayersOffered += prayers
	row.AmensGiven += amens
	row.ReelsViewed += reels
	return nil
}

func (m *MockStatsRepository) UpdateStreak(userID uint, date string, length int) error {
	row, ok := m.rows[userID]
	if !ok {
		return errors.New("record not found")
	}
	row.LastActiveDate = date
	row.StreakLength = length
	return nil
}

func (m *MockStatsRepository) TopByPoints(limit int) ([]models.UserStats, error) {
	out := make([]models.UserStats, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, *row)
	}
	return out, nil
}

func newTestStatsService(repo *MockStatsRepository, at time.Time) *StatsService {
	svc := NewStatsService(repo, nil)
	svc.now = func() time.Time { return at }
	return svc
}

func TestRecordActionAwardsPoints(t *testing.T) {
	repo := NewMockStatsRepository()
	svc := newTestStatsService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	if err := svc.AddPrayerOffered(1); err != nil {
		t.Fatalf("AddPrayerOffered: %v", err)
	}
	if err := svc.AddAmenGiven(1); err != nil {
		t.Fatalf("AddAmenGiven: %v", err)
	}
	if err := svc.AddReelView(1); err != nil {
		t.Fatalf("AddReelView: %v", err)
	}

	stats, err := svc.GetMine(1)
	if err != nil {
		t.Fatalf("GetMine: %v", err)
	}
	wantPoints := int64(PointsPerPrayer + PointsPerAmen + PointsPerReelView)
	if stats.Points != wantPoints {
		t.Errorf("Points = %d, want %d", stats.Points, wantPoints)
	}
	if stats.PrayersOffered != 1 || stats.AmensGiven != 1 || stats.ReelsViewed != 1 {
		t.Errorf("counters = %d/%d/%d, want 1/1/1", stats.PrayersOffered, stats.AmensGiven, stats.ReelsViewed)
	}
}

func TestStreakTransitions(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		firstDay   time.Time
		secondDay  time.Time
		wantLength int
	}{
		{"consecutive days extend", day1, day1.AddDate(0, 0, 1), 2},
		{"same day no change", day1, day1.Add(2 * time.Hour), 1},
		{"gap resets", day1, day1.AddDate(0, 0, 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockStatsRepository()

			svc := newTestStatsService(repo, tt.firstDay)
			if err := svc.AddReelView(5); err != nil {
				t.Fatalf("first action: %v", err)
			}

			svc.now = func() time.Time { return tt.secondDay }
			if err := svc.AddReelView(5); err != nil {
				t.Fatalf("second action: %v", err)
			}

			stats, _ := repo.Get(5)
			if stats.StreakLength != tt.wantLength {
				t.Errorf("StreakLength = %d, want %d", stats.StreakLength, tt.wantLength)
			}
			if stats.LastActiveDate != tt.secondDay.Format("2006-01-02") {
				t.Errorf("LastActiveDate = %q, want %q", stats.LastActiveDate, tt.secondDay.Format("2006-01-02"))
			}
		})
	}
}
