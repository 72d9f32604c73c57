package repository

import (
	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"gorm.io/gorm"
)

type ReelRepository struct {
	db *gorm.DB
}

func NewReelRepository(db *gorm.DB) *ReelRepository {
	return &ReelRepository{db: db}
}

func (r *ReelRepository) Create(reel *models.Reel) error {
	return r.db.Create(reel).Error
}

func (r *ReelRepository) FindByID(id uint) (*models.Reel, error) {
	var reel models.Reel
	err := r.db.First(&reel, id).Error
	return &reel, err
}

// ListActive returns active reels newest-first. cursor is the smallest reel ID
// the client has already seen; 0 means start from the top.
func (r *ReelRepository) ListActive(cursor uint, limit int) ([]models.Reel, error) {
	var reels []models.Reel
	q := r.db.Where("is_active = ?", true)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	err := q.Order("id DESC").Limit(limit).Find(&reels).Error
	return reels, err
}

// ListByTheme returns active reels for one theme, newest-first with the same
// cursor semantics as ListActive.
func (r *ReelRepository) ListByTheme(theme string, cursor uint, limit int) ([]models.Reel, error) {
	var reels []models.Reel
	q := r.db.Where("is_active = ? AND theme = ?", true, theme)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	err := q.Order("id DESC").Limit(limit).Find(&reels).Error
	return reels, err
}

// IncrementViewCount bumps the engagement counter atomically in SQL so
// concurrent views don't lose updates.
func (r *ReelRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Reel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ReelRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Reel{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
