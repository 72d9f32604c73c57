package models

import (
	"testing"
	"time"
)

func TestUserToResponseHidesSecrets(t *testing.T) {
	u := &User{
		ID:           7,
		Username:     "grace",
		Email:        "grace@example.com",
		PasswordHash: "secret-hash",
		FullName:     "Grace A",
		Translation:  "NIV",
	}

	resp := u.ToResponse()
	if resp.ID != 7 || resp.Username != "grace" || resp.Translation != "NIV" {
		t.Errorf("ToResponse dropped fields: %+v", resp)
	}

	pub := u.PublicResponse()
	if pub.Email != "" {
		t.Errorf("PublicResponse leaked email %q", pub.Email)
	}
}

func TestReelToResponseLocked(t *testing.T) {
	r := &Reel{
		ID:        3,
		VerseRef:  "John 3:16",
		VerseText: "For God so loved the world...",
		ViewCount: 42,
	}

	open := r.ToResponse(false)
	if open.Locked || open.VerseText == "" {
		t.Errorf("unlocked reel should carry verse text: %+v", open)
	}

	locked := r.ToResponse(true)
	if !locked.Locked {
		t.Error("expected Locked = true")
	}
	if locked.VerseText != "" {
		t.Errorf("locked reel must not carry verse text, got %q", locked.VerseText)
	}
	if locked.VerseRef != "John 3:16" {
		t.Errorf("locked reel should keep the reference, got %q", locked.VerseRef)
	}
}

func TestPrayerRequestAnonymousHidesAuthor(t *testing.T) {
	p := &PrayerRequest{
		ID:          1,
		Title:       "Healing",
		Content:     "Please pray",
		IsAnonymous: true,
		User:        User{ID: 9, Username: "grace"},
	}

	resp := p.ToResponse(false)
	if resp.Author != nil {
		t.Errorf("anonymous request leaked author: %+v", resp.Author)
	}

	p.IsAnonymous = false
	resp = p.ToResponse(true)
	if resp.Author == nil || resp.Author.Username != "grace" {
		t.Errorf("expected author on non-anonymous request, got %+v", resp.Author)
	}
	if !resp.HasPrayed {
		t.Error("expected HasPrayed = true")
	}
}

func TestSubscriptionIsActive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	revoked := now.Add(-time.Hour)

	tests := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{
			name: "active window",
			sub:  Subscription{StartsAt: now.AddDate(0, -1, 0), ExpiresAt: now.AddDate(0, 1, 0)},
			want: true,
		},
		{
			name: "expired",
			sub:  Subscription{StartsAt: now.AddDate(0, -2, 0), ExpiresAt: now.AddDate(0, -1, 0)},
			want: false,
		},
		{
			name: "not started",
			sub:  Subscription{StartsAt: now.AddDate(0, 0, 1), ExpiresAt: now.AddDate(0, 1, 0)},
			want: false,
		},
		{
			name: "revoked",
			sub:  Subscription{StartsAt: now.AddDate(0, -1, 0), ExpiresAt: now.AddDate(0, 1, 0), RevokedAt: &revoked},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.IsActive(now); got != tt.want {
				t.Errorf("IsActive = %v, want %v", got, tt.want)
			}
		})
	}
}
