package models

// Notification event names fired on lifecycle transitions.
const (
	EventBookingRequested    = "booking_requested"
	EventBookingAccepted     = "booking_accepted"
	EventBookingRejected     = "booking_rejected"
	EventBookingCancelled    = "booking_cancelled"
	EventVerificationAwaited = "verification_awaited"
	EventBookingCompleted    = "booking_completed"
	EventBookingDisputed     = "booking_disputed"
	EventPaymentRequested    = "payment_requested"
	EventPaymentCompleted    = "payment_completed"
	EventPaymentFailed       = "payment_failed"
	EventInquiryConverted    = "inquiry_converted"
)

// ReminderPayload is the asynq task payload for a stale-pending-booking nudge.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	ProviderID string `json:"providerId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireDate   string `json:"fireDate"`
}

// ChangeEvent is the realtime change-feed payload. It deliberately carries
// identifiers only; subscribers must re-fetch the entity from the store.
type ChangeEvent struct {
	Entity string `json:"entity"` // "booking", "payment", "inquiry", "availability"
	ID     string `json:"id"`
	Action string `json:"action"` // "created" or "updated"
}
