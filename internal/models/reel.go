package models

import (
	"time"

	"gorm.io/gorm"
)

// Reel is one verse card in the vertical feed.
type Reel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Verse reference like "John 3:16".
	VerseRef    string `gorm:"type:varchar(64);not null;index" json:"verse_ref"`
	Translation string `gorm:"type:varchar(12);not null;default:'KJV'" json:"translation"`
	VerseText   string `gorm:"type:text;not null" json:"verse_text"`
	Theme       string `gorm:"type:varchar(40);index" json:"theme"`

	// Object-storage key of the background image; empty means plain gradient.
	BackgroundKey string `json:"-"`
	BackgroundURL string `gorm:"-" json:"background_url,omitempty"`

	ViewCount int64 `gorm:"default:0" json:"view_count"`
	IsActive  bool  `gorm:"default:true;index" json:"-"`
}

type ReelResponse struct {
	ID          uint   `json:"id"`
	VerseRef    string `json:"verse_ref"`
	Translation string `json:"translation"`
	VerseText   string `json:"verse_text"`
	Theme       string `json:"theme"`
	Background  string `json:"background_url,omitempty"`
	ViewCount   int64  `json:"view_count"`

	// Locked is derived per viewer: non-premium, not unlocked today, and the
	// daily free allowance is spent. Locked reels carry no verse text.
	Locked bool `json:"locked"`
}

func (r *Reel) ToResponse(locked bool) ReelResponse {
	resp := ReelResponse{
		ID:          r.ID,
		VerseRef:    r.VerseRef,
		Translation: r.Translation,
		VerseText:   r.VerseText,
		Theme:       r.Theme,
		Background:  r.BackgroundURL,
		ViewCount:   r.ViewCount,
		Locked:      locked,
	}
	if locked {
		// A locked reel shows the reference and the upgrade overlay, not the verse.
		resp.VerseText = ""
	}
	return resp
}
