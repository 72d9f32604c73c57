package repository

import (
	"errors"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"gorm.io/gorm"
)

var ErrAlreadyPrayed = errors.New("already prayed")

type PrayerRepository struct {
	db *gorm.DB
}

func NewPrayerRepository(db *gorm.DB) *PrayerRepository {
	return &PrayerRepository{db: db}
}

func (r *PrayerRepository) Create(request *models.PrayerRequest) error {
	return r.db.Create(request).Error
}

func (r *PrayerRepository) FindByID(id uint) (*models.PrayerRequest, error) {
	var request models.PrayerRequest
	err := r.db.Preload("User").First(&request, id).Error
	return &request, err
}

// FindByClientID looks up a request by its client-supplied dedupe UUID.
func (r *PrayerRepository) FindByClientID(clientID string, userID uint) (*models.PrayerRequest, error) {
	var request models.PrayerRequest
	err := r.db.Preload("User").
		Where("client_id = ? AND user_id = ?", clientID, userID).
		First(&request).Error
	return &request, err
}

// List returns requests newest-first; cursor is the smallest ID already seen.
func (r *PrayerRepository) List(cursor uint, limit int) ([]models.PrayerRequest, error) {
	var requests []models.PrayerRequest
	q := r.db.Preload("User")
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	err := q.Order("id DESC").Limit(limit).Find(&requests).Error
	return requests, err
}

func (r *PrayerRepository) ListByUser(userID uint, limit int) ([]models.PrayerRequest, error) {
	var requests []models.PrayerRequest
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Find(&requests).Error
	return requests, err
}

// AddPrayer records one user praying for a request and bumps the counter.
// The unique index makes the pair at-most-once; a second attempt returns
// ErrAlreadyPrayed and leaves the counter untouched.
func (r *PrayerRepository) AddPrayer(requestID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			INSERT INTO prayers (prayer_request_id, user_id, created_at)
			VALUES (?, ?, NOW())
			ON CONFLICT (prayer_request_id, user_id) DO NOTHING
		`, requestID, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyPrayed
		}
		return tx.Model(&models.PrayerRequest{}).
			Where("id = ?", requestID).
			UpdateColumn("prayer_count", gorm.Expr("prayer_count + 1")).Error
	})
}

func (r *PrayerRepository) HasPrayed(requestID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Prayer{}).
		Where("prayer_request_id = ? AND user_id = ?", requestID, userID).
		Count(&count).Error
	return count > 0, err
}

// HasPrayedBatch returns the subset of requestIDs the user has prayed for.
func (r *PrayerRepository) HasPrayedBatch(requestIDs []uint, userID uint) (map[uint]bool, error) {
	prayed := make(map[uint]bool, len(requestIDs))
	if len(requestIDs) == 0 {
		return prayed, nil
	}
	var rows []models.Prayer
	err := r.db.Where("prayer_request_id IN ? AND user_id = ?", requestIDs, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		prayed[row.PrayerRequestID] = true
	}
	return prayed, nil
}

func (r *PrayerRepository) MarkAnswered(id, userID uint) error {
	return r.db.Model(&models.PrayerRequest{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_answered", true).Error
}

func (r *PrayerRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.PrayerRequest{}).Error
}
