package models

import "time"

// Inquiry conversation statuses.
const (
	InquiryStatusOpen      = "open"
	InquiryStatusConverted = "converted"
)

// InquiryConversation is a pre-booking chat thread between a customer and a
// provider. The message thread itself lives in a separate subsystem; this
// core only consumes status and the converted booking link. A conversation
// converts to a booking exactly once; BookingID is immutable afterward.
type InquiryConversation struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"providerId"`
	CustomerID string    `bson:"customer_id" json:"customerId"`
	Status     string    `bson:"status" json:"status"`
	BookingID  string    `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Subject    string    `bson:"subject,omitempty" json:"subject,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}
