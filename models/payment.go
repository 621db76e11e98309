package models

import "time"

// Payment statuses. Completed payments are immutable.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment types.
const (
	PaymentTypeAdvance = "advance"
	PaymentTypeBalance = "balance"
	PaymentTypeFull    = "full"
)

// Payment is a payment request linked to a booking. A booking accumulates a
// history of payments (e.g. advance then balance), but only one
// provider-requested payment may be pending and editable at a time.
type Payment struct {
	ID                  string    `bson:"id" json:"id"`
	BookingID           string    `bson:"booking_id" json:"bookingId"`
	Amount              float64   `bson:"amount" json:"amount"`
	Currency            string    `bson:"currency" json:"currency"`
	Status              string    `bson:"status" json:"status"`
	IsProviderRequested bool      `bson:"is_provider_requested" json:"isProviderRequested"`
	PaymentType         string    `bson:"payment_type" json:"paymentType"`
	Description         string    `bson:"description,omitempty" json:"description,omitempty"`
	GatewayRef          string    `bson:"gateway_ref,omitempty" json:"gatewayRef,omitempty"` // payment-intent id from the gateway
	FailureReason       string    `bson:"failure_reason,omitempty" json:"failureReason,omitempty"`
	CreatedAt           time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updatedAt"`
}
