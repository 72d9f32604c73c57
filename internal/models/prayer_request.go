package models

import (
	"time"

	"gorm.io/gorm"
)

type PrayerRequest struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Client-generated UUID so retried posts don't create duplicates.
	ClientID string `gorm:"type:varchar(36);uniqueIndex:idx_prayer_client_user;not null" json:"client_id"`

	UserID uint `gorm:"not null;uniqueIndex:idx_prayer_client_user;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Title       string `gorm:"type:varchar(120);not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`
	IsAnswered  bool   `gorm:"default:false" json:"is_answered"`

	PrayerCount int64 `gorm:"default:0" json:"prayer_count"`
}

// Prayer records one user praying for one request; at most once per pair.
type Prayer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	PrayerRequestID uint          `gorm:"not null;uniqueIndex:idx_prayer_once;index" json:"prayer_request_id"`
	PrayerRequest   PrayerRequest `gorm:"foreignKey:PrayerRequestID;constraint:OnDelete:CASCADE" json:"-"`
	UserID          uint          `gorm:"not null;uniqueIndex:idx_prayer_once" json:"user_id"`
}

type PrayerRequestResponse struct {
	ID          uint          `json:"id"`
	Author      *UserResponse `json:"author,omitempty"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	IsAnonymous bool          `json:"is_anonymous"`
	IsAnswered  bool          `json:"is_answered"`
	PrayerCount int64         `json:"prayer_count"`
	HasPrayed   bool          `json:"has_prayed"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (p *PrayerRequest) ToResponse(hasPrayed bool) PrayerRequestResponse {
	resp := PrayerRequestResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		IsAnonymous: p.IsAnonymous,
		IsAnswered:  p.IsAnswered,
		PrayerCount: p.PrayerCount,
		HasPrayed:   hasPrayed,
		CreatedAt:   p.CreatedAt,
	}
	if !p.IsAnonymous {
		author := p.User.PublicResponse()
		resp.Author = &author
	}
	return resp
}
