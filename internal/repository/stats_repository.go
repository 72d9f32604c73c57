package repository

import (
	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// EnsureForUser creates the stats row lazily; a no-op if it already exists.
func (r *StatsRepository) EnsureForUser(userID uint) error {
	return r.db.Exec(`
		INSERT INTO user_stats (user_id, created_at, updated_at)
		VALUES (?, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, userID).Error
}

func (r *StatsRepository) Get(userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.db.First(&stats, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ApplyAction adds points plus per-action counter deltas in a single SQL
// update so concurrent actions don't lose increments.
func (r *StatsRepository) ApplyAction(userID uint, points, prayers, amens, reels int64) error {
	return r.db.Exec(`
		UPDATE user_stats
		SET points = points + ?,
			prayers_offered = prayers_offered + ?,
			amens_given = amens_given + ?,
			reels_viewed = reels_viewed + ?,
			updated_at = NOW()
		WHERE user_id = ?
	`, points, prayers, amens, reels, userID).Error
}

// UpdateStreak stores the recomputed streak for the given calendar date.
func (r *StatsRepository) UpdateStreak(userID uint, date string, length int) error {
	return r.db.Model(&models.UserStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"last_active_date": date,
			"streak_length":    length,
		}).Error
}

func (r *StatsRepository) TopByPoints(limit int) ([]models.UserStats, error) {
	var rows []models.UserStats
	err := r.db.Order("points DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
