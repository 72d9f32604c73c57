package service

import (
	"errors"
	"strings"
	"time"

	"github.com/AkshayEddula/bibleapp-sub000/internal/models"
	"github.com/AkshayEddula/bibleapp-sub000/internal/repository"
)

// SubscriptionService answers entitlement questions and applies billing
// webhooks. It is the only premium source in the app; the unlock gate never
// infers entitlement on its own.
type SubscriptionService struct {
	subRepo repository.SubscriptionRepositoryInterface
	now     func() time.Time
}

func NewSubscriptionService(subRepo repository.SubscriptionRepositoryInterface) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, now: time.Now}
}

// IsPremium reports whether the user holds an active subscription right now.
// Lookup failures degrade to non-premium: the conservative default for a
// gate is fewer unlocks, never unlimited ones.
func (s *SubscriptionService) IsPremium(userID uint) bool {
	sub, err := s.subRepo.FindActiveByUserID(userID, s.now())
	if err != nil {
		return false
	}
	return sub.IsActive(s.now())
}

// GetStatus returns the user's latest subscription, or an inactive zero
// status when they never subscribed.
func (s *SubscriptionService) GetStatus(userID uint) models.SubscriptionResponse {
	sub, err := s.subRepo.FindLatestByUserID(userID)
	if err != nil {
		return models.SubscriptionResponse{Active: false}
	}
	return sub.ToResponse(s.now())
}

type WebhookInput struct {
	UserID        uint   `json:"user_id"`
	Action        string `json:"action"` // "activate" or "revoke"
	Plan          string `json:"plan"`
	Provider      string `json:"provider"`
	TransactionID string `json:"transaction_id"`
	ExpiresAt     int64  `json:"expires_at"` // unix seconds
}

// HandleWebhook applies one billing-provider event. Activation is idempotent
// on the transaction ID, so provider retries are harmless.
func (s *SubscriptionService) HandleWebhook(input WebhookInput) error {
	input.TransactionID = strings.TrimSpace(input.TransactionID)
	if input.TransactionID == "" {
		return errors.New("transaction_id is required")
	}

	switch strings.ToLower(strings.TrimSpace(input.Action)) {
	case "activate":
		if input.UserID == 0 {
			return errors.New("user_id is required")
		}
		plan := models.SubscriptionPlan(strings.ToLower(strings.TrimSpace(input.Plan)))
		if plan != models.PlanMonthly && plan != models.PlanYearly {
			return errors.New("unknown plan")
		}
		expiresAt := time.Unix(input.ExpiresAt, 0)
		if !expiresAt.After(s.now()) {
			return errors.New("expires_at must be in the future")
		}

		// Retried events reuse the transaction ID; the first write wins.
		if _, err := s.subRepo.FindByTransactionID(input.TransactionID); err == nil {
			return nil
		}

		return s.subRepo.Create(&models.Subscription{
			UserID:        input.UserID,
			Plan:          plan,
			Provider:      strings.TrimSpace(input.Provider),
			TransactionID: input.TransactionID,
			StartsAt:      s.now(),
			ExpiresAt:     expiresAt,
		})

	case "revoke":
		return s.subRepo.RevokeByTransactionID(input.TransactionID, s.now())

	default:
		return errors.New("unknown action")
	}
}
