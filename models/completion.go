package models

import "time"

// CompletionDetails is the provider's structured summary of work performed,
// submitted at mark-complete time. At most one exists per booking and it is
// read-only after creation.
type CompletionDetails struct {
	ID           string    `bson:"id" json:"id"`
	BookingID    string    `bson:"booking_id" json:"bookingId"`
	ProviderID   string    `bson:"provider_id" json:"providerId"`
	WorkSummary  string    `bson:"work_summary" json:"workSummary"`
	ItemsUsed    []string  `bson:"items_used,omitempty" json:"itemsUsed,omitempty"`
	HoursWorked  float64   `bson:"hours_worked,omitempty" json:"hoursWorked,omitempty"`
	PhotoProofID string    `bson:"photo_proof_id,omitempty" json:"photoProofId,omitempty"` // reference into the storage subsystem, not managed here
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
