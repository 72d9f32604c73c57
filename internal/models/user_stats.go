package models

import (
	"time"
)

// UserStats holds the per-user gamification counters. One row per user,
// created lazily on the first point-earning action.
type UserStats struct {
	UserID    uint      `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Points int64 `gorm:"default:0" json:"points"`

	// Streak bookkeeping is day-keyed: LastActiveDate holds a calendar date
	// string (YYYY-MM-DD, server-local). A gap of exactly one day extends the
	// streak; anything larger resets it to 1.
	StreakLength   int    `gorm:"default:0" json:"streak_length"`
	LastActiveDate string `gorm:"type:varchar(10)" json:"-"`

	PrayersOffered int64 `gorm:"default:0" json:"prayers_offered"`
	AmensGiven     int64 `gorm:"default:0" json:"amens_given"`
	ReelsViewed    int64 `gorm:"default:0" json:"reels_viewed"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
