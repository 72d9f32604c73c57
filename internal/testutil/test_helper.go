package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, username, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if username == "" {
		username = "testuser"
	}
	if email == "" {
		email = "test@example.com"
	}

	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed_password_123",
		FullName:     "Test User",
		Role:         "user",
		Translation:  "KJV",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestReel creates an active verse reel with default values
func (h *TestHelper) CreateTestReel(id uint, verseRef string) *models.Reel {
	if id == 0 {
		id = 1
	}
	if verseRef == "" {
		verseRef = "John 3:16"
	}

	return &models.Reel{
		ID:          id,
		VerseRef:    verseRef,
		Translation: "KJV",
		VerseText:   "For God so loved the world...",
		Theme:       "hope",
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// CreateTestPrayerRequest creates a prayer request with default values
func (h *TestHelper) CreateTestPrayerRequest(id uint, userID uint, title string) *models.PrayerRequest {
	if id == 0 {
		id = 1
	}
	if userID == 0 {
		userID = 1
	}
	if title == "" {
		title = "Test prayer request"
	}

	return &models.PrayerRequest{
		ID:        id,
		ClientID:  fmt.Sprintf("00000000-0000-4000-8000-%012d", id),
		UserID:    userID,
		Title:     title,
		Content:   "Please pray",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("DATABASE_URL", "")
	os.Setenv("PASSWORD_MIN_LENGTH", "10")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("PASSWORD_MIN_LENGTH")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// GetRecordNotFoundError returns the error repositories surface for a miss
func GetRecordNotFoundError() error {
	return gorm.ErrRecordNotFound
}
