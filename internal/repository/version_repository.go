package repository

import (
	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"gorm.io/gorm"
)

type VersionRepository struct {
	db *gorm.DB
}

func NewVersionRepository(db *gorm.DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// GetActiveVersion returns the currently active version for a platform
func (r *VersionRepository) GetActiveVersion(platform string) (*models.AppVersion, error) {
	var version models.AppVersion
	err := r.db.Where("platform = ? AND is_active = ?", platform, true).
		First(&version).Error
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (r *VersionRepository) CreateVersion(version *models.AppVersion) error {
	return r.db.Create(version).Error
}

// SetActiveVersion activates one build and deactivates all others for the platform.
func (r *VersionRepository) SetActiveVersion(platform string, buildNumber int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AppVersion{}).
			Where("platform = ?", platform).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.AppVersion{}).
			Where("platform = ? AND build_number = ?", platform, buildNumber).
			Update("is_active", true).Error
	})
}
