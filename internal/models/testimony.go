package models

import (
	"time"

	"gorm.io/gorm"
)

type Testimony struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Client-generated UUID so retried posts don't create duplicates.
	ClientID string `gorm:"type:varchar(36);uniqueIndex:idx_testimony_client_user;not null" json:"client_id"`

	UserID uint `gorm:"not null;uniqueIndex:idx_testimony_client_user;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Title   string `gorm:"type:varchar(120);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`

	AmenCount int64 `gorm:"default:0" json:"amen_count"`
}

// Amen records one user's amen on one testimony; at most once per pair.
type Amen struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TestimonyID uint      `gorm:"not null;uniqueIndex:idx_amen_once;index" json:"testimony_id"`
	Testimony   Testimony `gorm:"foreignKey:TestimonyID;constraint:OnDelete:CASCADE" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_amen_once" json:"user_id"`
}

type TestimonyResponse struct {
	ID        uint         `json:"id"`
	Author    UserResponse `json:"author"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	AmenCount int64        `json:"amen_count"`
	HasAmened bool         `json:"has_amened"`
	CreatedAt time.Time    `json:"created_at"`
}

func (t *Testimony) ToResponse(hasAmened bool) TestimonyResponse {
	return TestimonyResponse{
		ID:        t.ID,
		Author:    t.User.PublicResponse(),
		Title:     t.Title,
		Content:   t.Content,
		AmenCount: t.AmenCount,
		HasAmened: hasAmened,
		CreatedAt: t.CreatedAt,
	}
}
