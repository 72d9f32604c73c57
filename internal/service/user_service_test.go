package service

import (
	"errors"
	"testing"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository for testing
type MockUserRepository struct {
	users  map[uint]*models.User
	nextID uint
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(user *models.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockUserRepository) Update(user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	var results []models.User
	count := 0
	for _, user := range m.users {
		if count >= limit {
			break
		}
		results = append(results, *user)
		count++
	}
	return results, nil
}

// Tests for UserService

func TestIsUsernameAvailable(t *testing.T) {
	mockRepo := NewMockUserRepository()
	userService := NewUserService(mockRepo)

	mockRepo.Create(&models.User{
		Username: "existinguser",
		Email:    "test@example.com",
	})

	tests := []struct {
		name      string
		username  string
		expected  bool
		shouldErr bool
	}{
		{"Available username", "newuser", true, false},
		{"Existing username", "existinguser", false, false},
		{"Empty username", "", false, true},
		{"Username with spaces", "  ", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := userService.IsUsernameAvailable(tt.username)
			if (err != nil) != tt.shouldErr {
				t.Errorf("IsUsernameAvailable(%q) error = %v, wantErr %v", tt.username, err, tt.shouldErr)
			}
			if result != tt.expected {
				t.Errorf("IsUsernameAvailable(%q) = %v, want %v", tt.username, result, tt.expected)
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	mockRepo := NewMockUserRepository()
	userService := NewUserService(mockRepo)

	mockRepo.Create(&models.User{
		ID:          1,
		Username:    "john_doe",
		Email:       "john@example.com",
		FullName:    "John Doe",
		Translation: "KJV",
	})

	tests := []struct {
		name      string
		userID    uint
		input     UpdateProfileInput
		expectErr bool
		checkFn   func(*models.User) bool
	}{
		{
			name:      "Update full name",
			userID:    1,
			input:     UpdateProfileInput{FullName: "John Smith"},
			expectErr: false,
			checkFn: func(u *models.User) bool {
				return u.FullName == "John Smith"
			},
		},
		{
			name:      "Update username",
			userID:    1,
			input:     UpdateProfileInput{Username: "john_smith"},
			expectErr: false,
			checkFn: func(u *models.User) bool {
				return u.Username == "john_smith"
			},
		},
		{
			name:      "Update translation",
			userID:    1,
			input:     UpdateProfileInput{Translation: "niv"},
			expectErr: false,
			checkFn: func(u *models.User) bool {
				return u.Translation == "NIV"
			},
		},
		{
			name:      "Unsupported translation",
			userID:    1,
			input:     UpdateProfileInput{Translation: "XYZ"},
			expectErr: true,
			checkFn:   nil,
		},
		{
			name:      "User not found",
			userID:    999,
			input:     UpdateProfileInput{},
			expectErr: true,
			checkFn:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := userService.UpdateProfile(tt.userID, tt.input)
			if (err != nil) != tt.expectErr {
				t.Errorf("UpdateProfile error = %v, wantErr %v", err, tt.expectErr)
			}
			if !tt.expectErr && tt.checkFn != nil {
				if !tt.checkFn(result) {
					t.Errorf("UpdateProfile result does not match expected condition")
				}
			}
		})
	}
}

func TestGetUserByID(t *testing.T) {
	mockRepo := NewMockUserRepository()
	userService := NewUserService(mockRepo)

	mockRepo.Create(&models.User{
		ID:       1,
		Username: "john_doe",
		Email:    "john@example.com",
	})

	tests := []struct {
		name      string
		userID    uint
		expectErr bool
	}{
		{"Existing user", 1, false},
		{"Non-existing user", 999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := userService.GetUserByID(tt.userID)
			if (err != nil) != tt.expectErr {
				t.Errorf("GetUserByID error = %v, wantErr %v", err, tt.expectErr)
			}
			if !tt.expectErr && result.ID != tt.userID {
				t.Errorf("GetUserByID returned user with ID %d, want %d", result.ID, tt.userID)
			}
		})
	}
}
