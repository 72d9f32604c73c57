package repository

import (
	"time"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
	SearchUsers(query string, limit int) ([]models.User, error)
}

// ReelRepositoryInterface defines the contract for reel feed operations
type ReelRepositoryInterface interface {
	Create(reel *models.Reel) error
	FindByID(id uint) (*models.Reel, error)
	ListActive(cursor uint, limit int) ([]models.Reel, error)
	ListByTheme(theme string, cursor uint, limit int) ([]models.Reel, error)
	IncrementViewCount(id uint) error
	CountActive() (int64, error)
}

// PrayerRepositoryInterface defines the contract for prayer request operations
type PrayerRepositoryInterface interface {
	Create(request *models.PrayerRequest) error
	FindByID(id uint) (*models.PrayerRequest, error)
	FindByClientID(clientID string, userID uint) (*models.PrayerRequest, error)
	List(cursor uint, limit int) ([]models.PrayerRequest, error)
	ListByUser(userID uint, limit int) ([]models.PrayerRequest, error)
	AddPrayer(requestID, userID uint) error
	HasPrayed(requestID, userID uint) (bool, error)
	HasPrayedBatch(requestIDs []uint, userID uint) (map[uint]bool, error)
	MarkAnswered(id, userID uint) error
	Delete(id, userID uint) error
}

// TestimonyRepositoryInterface defines the contract for testimony operations
type TestimonyRepositoryInterface interface {
	Create(testimony *models.Testimony) error
	FindByID(id uint) (*models.Testimony, error)
	FindByClientID(clientID string, userID uint) (*models.Testimony, error)
	List(cursor uint, limit int) ([]models.Testimony, error)
	AddAmen(testimonyID, userID uint) error
	HasAmenedBatch(testimonyIDs []uint, userID uint) (map[uint]bool, error)
	Delete(id, userID uint) error
}

// SubscriptionRepositoryInterface defines the contract for entitlement rows
type SubscriptionRepositoryInterface interface {
	Create(sub *models.Subscription) error
	FindByTransactionID(transactionID string) (*models.Subscription, error)
	FindActiveByUserID(userID uint, now time.Time) (*models.Subscription, error)
	FindLatestByUserID(userID uint) (*models.Subscription, error)
	RevokeByTransactionID(transactionID string, revokedAt time.Time) error
}

// StatsRepositoryInterface defines the contract for gamification counters
type StatsRepositoryInterface interface {
	EnsureForUser(userID uint) error
	Get(userID uint) (*models.UserStats, error)
	ApplyAction(userID uint, points, prayers, amens, reels int64) error
	UpdateStreak(userID uint, date string, length int) error
	TopByPoints(limit int) ([]models.UserStats, error)
}

// RefreshTokenRepositoryInterface defines the contract for refresh token repository operations
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	FindValidByHash(tokenHash string) (*models.RefreshToken, error)
	RevokeByHash(tokenHash string) error
}

// VersionRepositoryInterface defines the contract for app version operations
type VersionRepositoryInterface interface {
	GetActiveVersion(platform string) (*models.AppVersion, error)
	CreateVersion(version *models.AppVersion) error
	SetActiveVersion(platform string, buildNumber int) error
}
