package repository

import (
	"errors"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"gorm.io/gorm"
)

var ErrAlreadyAmened = errors.New("already amened")

type TestimonyRepository struct {
	db *gorm.DB
}

func NewTestimonyRepository(db *gorm.DB) *TestimonyRepository {
	return &TestimonyRepository{db: db}
}

func (r *TestimonyRepository) Create(testimony *models.Testimony) error {
	return r.db.Create(testimony).Error
}

func (r *TestimonyRepository) FindByID(id uint) (*models.Testimony, error) {
	var testimony models.Testimony
	err := r.db.Preload("User").First(&testimony, id).Error
	return &testimony, err
}

func (r *TestimonyRepository) FindByClientID(clientID string, userID uint) (*models.Testimony, error) {
	var testimony models.Testimony
	err := r.db.Preload("User").
		Where("client_id = ? AND user_id = ?", clientID, userID).
		First(&testimony).Error
	return &testimony, err
}

// List returns testimonies newest-first; cursor is the smallest ID already seen.
func (r *TestimonyRepository) List(cursor uint, limit int) ([]models.Testimony, error) {
	var testimonies []models.Testimony
	q := r.db.Preload("User")
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	err := q.Order("id DESC").Limit(limit).Find(&testimonies).Error
	return testimonies, err
}

// AddAmen records one user's amen and bumps the counter; at most once per pair.
func (r *TestimonyRepository) AddAmen(testimonyID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			INSERT INTO amens (testimony_id, user_id, created_at)
			VALUES (?, ?, NOW())
			ON CONFLICT (testimony_id, user_id) DO NOTHING
		`, testimonyID, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyAmened
		}
		return tx.Model(&models.Testimony{}).
			Where("id = ?", testimonyID).
			UpdateColumn("amen_count", gorm.Expr("amen_count + 1")).Error
	})
}

// HasAmenedBatch returns the subset of testimonyIDs the user has amened.
func (r *TestimonyRepository) HasAmenedBatch(testimonyIDs []uint, userID uint) (map[uint]bool, error) {
	amened := make(map[uint]bool, len(testimonyIDs))
	if len(testimonyIDs) == 0 {
		return amened, nil
	}
	var rows []models.Amen
	err := r.db.Where("testimony_id IN ? AND user_id = ?", testimonyIDs, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		amened[row.TestimonyID] = true
	}
	return amened, nil
}

func (r *TestimonyRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Testimony{}).Error
}
