package service

import (
	"fmt"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

type VersionService struct {
	versionRepo repository.VersionRepositoryInterface
}

func NewVersionService(versionRepo repository.VersionRepositoryInterface) *VersionService {
	return &VersionService{versionRepo: versionRepo}
}

// GetLatestVersion returns the active version for a platform
func (s *VersionService) GetLatestVersion(platform string) (*models.AppVersion, error) {
	if platform != "android" && platform != "ios" {
		return nil, fmt.Errorf("invalid platform: %s", platform)
	}

	version, err := s.versionRepo.GetActiveVersion(platform)
	if err != nil {
		return nil, fmt.Errorf("failed to get active version: %w", err)
	}
	return version, nil
}

// CheckUpdateRequired determines if an update is needed based on build number
func (s *VersionService) CheckUpdateRequired(platform string, currentBuild int) (bool, *models.AppVersion, error) {
	latest, err := s.GetLatestVersion(platform)
	if err != nil {
		return false, nil, err
	}
	return currentBuild < latest.BuildNumber, latest, nil
}

// IsForceUpdateRequired checks if the current build MUST update
func (s *VersionService) IsForceUpdateRequired(platform string, currentBuild int) (bool, error) {
	latest, err := s.GetLatestVersion(platform)
	if err != nil {
		return false, err
	}

	if currentBuild < latest.MinSupportedBuild {
		return true, nil
	}
	if latest.ForceUpdate && currentBuild < latest.BuildNumber {
		return true, nil
	}
	return false, nil
}
