package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "monthly"
	PlanYearly  SubscriptionPlan = "yearly"
)

// Subscription mirrors an entitlement verified by the billing provider.
// Rows are written by the billing webhook, never by the app itself.
type Subscription struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Plan     SubscriptionPlan `gorm:"type:varchar(20);not null" json:"plan"`
	Provider string           `gorm:"type:varchar(40);not null" json:"provider"`

	// Store-side transaction identifier; makes webhook retries idempotent.
	TransactionID string `gorm:"uniqueIndex;not null" json:"-"`

	StartsAt  time.Time  `gorm:"not null" json:"starts_at"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	RevokedAt *time.Time `gorm:"index" json:"-"`
}

// IsActive reports whether this subscription entitles the user at the given time.
func (s *Subscription) IsActive(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return !now.Before(s.StartsAt) && now.Before(s.ExpiresAt)
}

type SubscriptionResponse struct {
	Plan      SubscriptionPlan `json:"plan"`
	Provider  string           `json:"provider"`
	StartsAt  time.Time        `json:"starts_at"`
	ExpiresAt time.Time        `json:"expires_at"`
	Active    bool             `json:"active"`
}

func (s *Subscription) ToResponse(now time.Time) SubscriptionResponse {
	return SubscriptionResponse{
		Plan:      s.Plan,
		Provider:  s.Provider,
		StartsAt:  s.StartsAt,
		ExpiresAt: s.ExpiresAt,
		Active:    s.IsActive(now),
	}
}
