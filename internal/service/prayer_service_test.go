package service

import (
	"errors"
	"testing"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

// MockPrayerRepository is an in-memory prayer wall for testing
type MockPrayerRepository struct {
	requests map[uint]*models.PrayerRequest
	prayers  map[[2]uint]bool // (requestID, userID)
	nextID   uint
}

func NewMockPrayerRepository() *MockPrayerRepository {
	return &MockPrayerRepository{
		requests: make(map[uint]*models.PrayerRequest),
		prayers:  make(map[[2]uint]bool),
		nextID:   1,
	}
}

func (m *MockPrayerRepository) Create(request *models.PrayerRequest) error {
	request.ID = m.nextID
	m.nextID++
	m.requests[request.ID] = request
	return nil
}

func (m *MockPrayerRepository) FindByID(id uint) (*models.PrayerRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *request
	return &copied, nil
}

func (m *MockPrayerRepository) FindByClientID(clientID string, userID uint) (*models.PrayerRequest, error) {
	for _, request := range m.requests {
		if request.ClientID == clientID && request.UserID == userID {
			copied := *request
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockPrayerRepository) List(cursor uint, limit int) ([]models.PrayerRequest, error) {
	var out []models.PrayerRequest
	for _, request := range m.requests {
		out = append(out, *request)
	}
	return out, nil
}

func (m *MockPrayerRepository) ListByUser(userID uint, limit int) ([]models.PrayerRequest, error) {
	var out []models.PrayerRequest
	for _, request := range m.requests {
		if request.UserID == userID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (m *MockPrayerRepository) AddPrayer(requestID, userID uint) error {
	key := [2]uint{requestID, userID}
	if m.prayers[key] {
		return repository.ErrAlreadyPrayed
	}
	m.prayers[key] = true
	m.requests[requestID].PrayerCount++
	return nil
}

func (m *MockPrayerRepository) HasPrayed(requestID, userID uint) (bool, error) {
	return m.prayers[[2]uint{requestID, userID}], nil
}

func (m *MockPrayerRepository) HasPrayedBatch(requestIDs []uint, userID uint) (map[uint]bool, error) {
	out := make(map[uint]bool)
	for _, id := range requestIDs {
		if m.prayers[[2]uint{id, userID}] {
			out[id] = true
		}
	}
	return out, nil
}

func (m *MockPrayerRepository) MarkAnswered(id, userID uint) error {
	request, ok := m.requests[id]
	if !ok || request.UserID != userID {
		return errors.New("record not found")
	}
	request.IsAnswered = true
	return nil
}

func (m *MockPrayerRepository) Delete(id, userID uint) error {
	request, ok := m.requests[id]
	if !ok || request.UserID != userID {
		return errors.New("record not found")
	}
	delete(m.requests, id)
	return nil
}

// recordingNotifier captures realtime pushes instead of sending them
type recordingNotifier struct {
	prayed []uint // owner IDs notified
	amens  []uint
}

func (n *recordingNotifier) NotifyPrayed(ownerID, requestID uint, prayerCount int64) {
	n.prayed = append(n.prayed, ownerID)
}

func (n *recordingNotifier) NotifyAmen(ownerID, testimonyID uint, amenCount int64) {
	n.amens = append(n.amens, ownerID)
}

func TestCreatePrayerRequestDedupesClientID(t *testing.T) {
	repo := NewMockPrayerRepository()
	svc := NewPrayerService(repo, nil, nil)

	input := CreatePrayerRequestInput{
		ClientID: "c0a80121-7ac0-4e1c-9f1d-000000000001",
		Title:    "For my family",
		Content:  "Please pray for healing",
	}

	first, err := svc.Create(1, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Client retry after a dropped response: same row comes back.
	second, err := svc.Create(1, input)
	if err != nil {
		t.Fatalf("Create retry: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("retry created new row: got IDs %d and %d", first.ID, second.ID)
	}
	if len(repo.requests) != 1 {
		t.Errorf("got %d rows, want 1", len(repo.requests))
	}

	// A different user reusing the same client id gets their own row.
	third, err := svc.Create(2, input)
	if err != nil {
		t.Fatalf("Create for other user: %v", err)
	}
	if third.ID == first.ID {
		t.Error("client id dedupe leaked across users")
	}
}

func TestCreatePrayerRequestValidation(t *testing.T) {
	svc := NewPrayerService(NewMockPrayerRepository(), nil, nil)

	tests := []struct {
		name  string
		input CreatePrayerRequestInput
	}{
		{"missing client id", CreatePrayerRequestInput{Title: "t", Content: "c"}},
		{"missing title", CreatePrayerRequestInput{ClientID: "x", Content: "c"}},
		{"blank content", CreatePrayerRequestInput{ClientID: "x", Title: "t", Content: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(1, tt.input); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestPrayIdempotent(t *testing.T) {
	repo := NewMockPrayerRepository()
	statsRepo := NewMockStatsRepository()
	stats := NewStatsService(statsRepo, nil)
	notifier := &recordingNotifier{}
	svc := NewPrayerService(repo, stats, notifier)

	request, err := svc.Create(1, CreatePrayerRequestInput{
		ClientID: "req-1", Title: "Exams", Content: "Pray for peace",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Pray(request.ID, 2)
	if err != nil {
		t.Fatalf("Pray: %v", err)
	}
	if updated.PrayerCount != 1 {
		t.Errorf("prayer count = %d, want 1", updated.PrayerCount)
	}

	// Second tap is a no-op: no count bump, no extra points, no extra push.
	again, err := svc.Pray(request.ID, 2)
	if err != nil {
		t.Fatalf("Pray again: %v", err)
	}
	if again.PrayerCount != 1 {
		t.Errorf("repeat prayer count = %d, want 1", again.PrayerCount)
	}
	if len(notifier.prayed) != 1 {
		t.Errorf("owner notified %d times, want 1", len(notifier.prayed))
	}
	if notifier.prayed[0] != 1 {
		t.Errorf("notified user %d, want owner 1", notifier.prayed[0])
	}

	userStats, err := stats.GetMine(2)
	if err != nil {
		t.Fatalf("GetMine: %v", err)
	}
	if userStats.PrayersOffered != 1 {
		t.Errorf("prayers offered = %d, want 1", userStats.PrayersOffered)
	}
}

func TestPrayOwnRequestSkipsNotification(t *testing.T) {
	repo := NewMockPrayerRepository()
	notifier := &recordingNotifier{}
	svc := NewPrayerService(repo, nil, notifier)

	request, err := svc.Create(1, CreatePrayerRequestInput{
		ClientID: "req-2", Title: "Work", Content: "Guidance needed",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Pray(request.ID, 1); err != nil {
		t.Fatalf("Pray: %v", err)
	}
	if len(notifier.prayed) != 0 {
		t.Error("owner should not be notified of their own prayer")
	}
}

func TestPrayMissingRequest(t *testing.T) {
	svc := NewPrayerService(NewMockPrayerRepository(), nil, nil)
	if _, err := svc.Pray(999, 1); err == nil {
		t.Error("expected error for missing request")
	}
}
