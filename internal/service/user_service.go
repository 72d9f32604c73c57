package service

import (
	"errors"
	"strings"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

// Translations selectable as a reading preference.
var supportedTranslations = map[string]bool{
	"KJV": true, "NIV": true, "ESV": true, "NLT": true, "NKJV": true,
}

type UserService struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserService(userRepo repository.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Translation string `json:"translation"`
}

func (s *UserService) IsUsernameAvailable(username string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, errors.New("username cannot be empty")
	}

	// Username not found = available
	if _, err := s.userRepo.FindByUsername(username); err != nil {
		return true, nil
	}
	return false, nil
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if input.Username != "" {
		username := strings.TrimSpace(input.Username)

		// Only check availability if username is different
		if username != user.Username {
			available, err := s.IsUsernameAvailable(username)
			if err != nil {
				return nil, err
			}
			if !available {
				return nil, errors.New("username already taken")
			}
			user.Username = username
		}
	}

	if input.FullName != "" {
		user.FullName = strings.TrimSpace(input.FullName)
	}

	if input.Translation != "" {
		translation := strings.ToUpper(strings.TrimSpace(input.Translation))
		if !supportedTranslations[translation] {
			return nil, errors.New("unsupported translation")
		}
		user.Translation = translation
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByID(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	return s.userRepo.FindByUsername(username)
}

func (s *UserService) SearchUsers(query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return []models.User{}, nil
	}
	if limit == 0 || limit > 50 {
		limit = 20
	}
	return s.userRepo.SearchUsers(query, limit)
}
