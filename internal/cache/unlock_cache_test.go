package cache

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("TST", 0)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"plain date", time.Date(2024, 1, 1, 10, 30, 0, 0, loc), "2024-01-01"},
		{"just before midnight", time.Date(2024, 1, 1, 23, 59, 59, 0, loc), "2024-01-01"},
		{"just after midnight", time.Date(2024, 1, 2, 0, 0, 1, 0, loc), "2024-01-02"},
		{"zero-padded month and day", time.Date(2026, 3, 5, 12, 0, 0, 0, loc), "2026-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.at); got != tt.want {
				t.Errorf("DayKey(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestUnlockKeyFormat(t *testing.T) {
	got := unlockKey(42, "2024-01-01")
	want := "unlocks:42:2024-01-01"
	if got != want {
		t.Errorf("unlockKey = %q, want %q", got, want)
	}
}

// A nil cache (Redis unavailable) must degrade to "no prior unlocks" and
// swallow writes, mirroring the other caches' run-without-cache behavior.
func TestUnlockCacheNilDegradation(t *testing.T) {
	var c *UnlockCache

	got := c.Load(1, "2024-01-01")
	if len(got) != 0 {
		t.Errorf("nil cache Load returned %v, want empty set", got)
	}

	if err := c.Save(1, "2024-01-01", map[uint]bool{1: true}); err != nil {
		t.Errorf("nil cache Save returned error: %v", err)
	}
}
