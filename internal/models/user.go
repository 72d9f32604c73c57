package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name"`
	Role         string `gorm:"not null;default:user" json:"role"`

	// Preferred Bible translation for verse reels (e.g. "KJV", "NIV").
	Translation string `gorm:"type:varchar(12);default:'KJV'" json:"translation"`

	Avatar            string     `json:"avatar"`
	AvatarKey         string     `json:"-"`
	AvatarContentType string     `json:"-"`
	AvatarSizeBytes   int64      `json:"-"`
	AvatarUpdatedAt   *time.Time `json:"-"`
	AvatarETag        string     `json:"-"`

	PrayerRequests []PrayerRequest `gorm:"foreignKey:UserID" json:"-"`
	Testimonies    []Testimony     `gorm:"foreignKey:UserID" json:"-"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Avatar      string `json:"avatar"`
	Role        string `json:"role"`
	Translation string `json:"translation"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Avatar:      u.Avatar,
		Role:        u.Role,
		Translation: u.Translation,
	}
}

// PublicResponse hides the email for profiles viewed by other users.
func (u *User) PublicResponse() UserResponse {
	r := u.ToResponse()
	r.Email = ""
	return r
}
