package service

import (
	"errors"
	"testing"
	"time"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
)

// MockSubscriptionRepository is an in-memory entitlement store for testing
type MockSubscriptionRepository struct {
	subs   []*models.Subscription
	nextID uint
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{nextID: 1}
}

func (m *MockSubscriptionRepository) Create(sub *models.Subscription) error {
	if sub.ID == 0 {
		sub.ID = m.nextID
		m.nextID++
	}
	m.subs = append(m.subs, sub)
	return nil
}

func (m *MockSubscriptionRepository) FindByTransactionID(transactionID string) (*models.Subscription, error) {
	for _, sub := range m.subs {
		if sub.TransactionID == transactionID {
			return sub, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockSubscriptionRepository) FindActiveByUserID(userID uint, now time.Time) (*models.Subscription, error) {
	var best *models.Subscription
	for _, sub := range m.subs {
		if sub.UserID == userID && sub.IsActive(now) {
			if best == nil || sub.ExpiresAt.After(best.ExpiresAt) {
				best = sub
			}
		}
	}
	if best == nil {
		return nil, errors.New("record not found")
	}
	return best, nil
}

func (m *MockSubscriptionRepository) FindLatestByUserID(userID uint) (*models.Subscription, error) {
	var best *models.Subscription
	for _, sub := range m.subs {
		if sub.UserID == userID {
			if best == nil || sub.ExpiresAt.After(best.ExpiresAt) {
				best = sub
			}
		}
	}
	if best == nil {
		return nil, errors.New("record not found")
	}
	return best, nil
}

func (m *MockSubscriptionRepository) RevokeByTransactionID(transactionID string, revokedAt time.Time) error {
	for _, sub := range m.subs {
		if sub.TransactionID == transactionID && sub.RevokedAt == nil {
			at := revokedAt
			sub.RevokedAt = &at
		}
	}
	return nil
}

func newTestSubscriptionService(at time.Time) (*SubscriptionService, *MockSubscriptionRepository) {
	repo := NewMockSubscriptionRepository()
	svc := NewSubscriptionService(repo)
	svc.now = func() time.Time { return at }
	return svc, repo
}

func TestIsPremium(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestSubscriptionService(now)

	if svc.IsPremium(1) {
		t.Error("user with no subscription reported premium")
	}

	repo.Create(&models.Subscription{
		UserID:        1,
		Plan:          models.PlanMonthly,
		TransactionID: "txn-1",
		StartsAt:      now.AddDate(0, -1, 0),
		ExpiresAt:     now.AddDate(0, 1, 0),
	})
	if !svc.IsPremium(1) {
		t.Error("user with active subscription not premium")
	}

	// Expired subscription: back to free tier.
	repo.Create(&models.Subscription{
		UserID:        2,
		Plan:          models.PlanMonthly,
		TransactionID: "txn-2",
		StartsAt:      now.AddDate(0, -2, 0),
		ExpiresAt:     now.AddDate(0, -1, 0),
	})
	if svc.IsPremium(2) {
		t.Error("user with expired subscription reported premium")
	}
}

func TestWebhookActivateIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestSubscriptionService(now)

	input := WebhookInput{
		UserID:        1,
		Action:        "activate",
		Plan:          "monthly",
		Provider:      "revenuecat",
		TransactionID: "txn-42",
		ExpiresAt:     now.AddDate(0, 1, 0).Unix(),
	}

	if err := svc.HandleWebhook(input); err != nil {
		t.Fatalf("HandleWebhook: %v", err)
	}
	// Provider retry with the same transaction: no duplicate row.
	if err := svc.HandleWebhook(input); err != nil {
		t.Fatalf("HandleWebhook retry: %v", err)
	}
	if len(repo.subs) != 1 {
		t.Errorf("webhook retry created %d rows, want 1", len(repo.subs))
	}
}

func TestWebhookRevoke(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestSubscriptionService(now)

	activate := WebhookInput{
		UserID:        1,
		Action:        "activate",
		Plan:          "yearly",
		TransactionID: "txn-9",
		ExpiresAt:     now.AddDate(1, 0, 0).Unix(),
	}
	if err := svc.HandleWebhook(activate); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !svc.IsPremium(1) {
		t.Fatal("expected premium after activation")
	}

	if err := svc.HandleWebhook(WebhookInput{Action: "revoke", TransactionID: "txn-9"}); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if svc.IsPremium(1) {
		t.Error("still premium after revocation")
	}
}

func TestWebhookValidation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestSubscriptionService(now)

	tests := []struct {
		name  string
		input WebhookInput
	}{
		{"missing transaction", WebhookInput{UserID: 1, Action: "activate", Plan: "monthly", ExpiresAt: now.AddDate(0, 1, 0).Unix()}},
		{"missing user", WebhookInput{Action: "activate", Plan: "monthly", TransactionID: "t", ExpiresAt: now.AddDate(0, 1, 0).Unix()}},
		{"unknown plan", WebhookInput{UserID: 1, Action: "activate", Plan: "lifetime", TransactionID: "t", ExpiresAt: now.AddDate(0, 1, 0).Unix()}},
		{"expiry in the past", WebhookInput{UserID: 1, Action: "activate", Plan: "monthly", TransactionID: "t", ExpiresAt: now.AddDate(0, -1, 0).Unix()}},
		{"unknown action", WebhookInput{UserID: 1, Action: "pause", TransactionID: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.HandleWebhook(tt.input); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
