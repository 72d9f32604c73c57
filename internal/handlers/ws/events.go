package ws

// PrayedEvent is pushed to a prayer request owner when someone prays.
type PrayedEvent struct {
	Type        string `json:"type"`
	RequestID   uint   `json:"request_id"`
	PrayerCount int64  `json:"prayer_count"`
}

// AmenEvent is pushed to a testimony owner when someone says amen.
type AmenEvent struct {
	Type        string `json:"type"`
	TestimonyID uint   `json:"testimony_id"`
	AmenCount   int64  `json:"amen_count"`
}
