package repository

import (
	"time"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

// FindByTransactionID is used by the billing webhook to keep retries idempotent.
func (r *SubscriptionRepository) FindByTransactionID(transactionID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("transaction_id = ?", transactionID).First(&sub).Error
	return &sub, err
}

// FindActiveByUserID returns the subscription entitling the user right now,
// if any. The latest-expiring one wins when several rows overlap.
func (r *SubscriptionRepository) FindActiveByUserID(userID uint, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where(
		"user_id = ? AND revoked_at IS NULL AND starts_at <= ? AND expires_at > ?",
		userID, now, now,
	).Order("expires_at DESC").First(&sub).Error
	return &sub, err
}

func (r *SubscriptionRepository) FindLatestByUserID(userID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("user_id = ?", userID).
		Order("expires_at DESC").First(&sub).Error
	return &sub, err
}

func (r *SubscriptionRepository) RevokeByTransactionID(transactionID string, revokedAt time.Time) error {
	return r.db.Model(&models.Subscription{}).
		Where("transaction_id = ? AND revoked_at IS NULL", transactionID).
		Update("revoked_at", &revokedAt).Error
}
