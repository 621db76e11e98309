package models

import "time"

// AvailabilityRecord is a single block rule for a provider: either an exact
// blocked date or a recurring weekday block. Exactly one of SpecificDate and
// DayOfWeek is set per record, never both, never neither.
type AvailabilityRecord struct {
	ID           string    `bson:"id" json:"id"`
	ProviderID   string    `bson:"provider_id" json:"providerId"`
	SpecificDate *string   `bson:"specific_date,omitempty" json:"specificDate,omitempty"` // "YYYY-MM-DD"
	DayOfWeek    *int      `bson:"day_of_week,omitempty" json:"dayOfWeek,omitempty"`      // 0 (Sunday) .. 6 (Saturday)
	IsBlocked    bool      `bson:"is_blocked" json:"isBlocked"`
	Reason       string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// Valid reports whether the record sets exactly one of its two rule fields
// with a weekday in range.
func (r *AvailabilityRecord) Valid() bool {
	if (r.SpecificDate == nil) == (r.DayOfWeek == nil) {
		return false
	}
	if r.DayOfWeek != nil && (*r.DayOfWeek < 0 || *r.DayOfWeek > 6) {
		return false
	}
	return true
}
