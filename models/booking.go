package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusAccepted  = "accepted"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Completion verification states.
const (
	CompletionStatusNone     = "none"
	CompletionStatusPending  = "pending_customer_verification"
	CompletionStatusVerified = "verified"
	CompletionStatusDisputed = "disputed"
)

// Booking represents a customer's request for a provider's service on one or
// more dates. Bookings are never deleted, only status-transitioned.
type Booking struct {
	ID                  string `bson:"id" json:"id"`
	CustomerID          string `bson:"customer_id" json:"customerId"`
	ProviderID          string `bson:"provider_id" json:"providerId"`
	ServiceDate         string `bson:"service_date" json:"serviceDate"` // "YYYY-MM-DD"
	StartDate           string `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate             string `bson:"end_date,omitempty" json:"endDate,omitempty"`
	TotalDays           int    `bson:"total_days,omitempty" json:"totalDays,omitempty"`
	ServiceTime         string `bson:"service_time,omitempty" json:"serviceTime,omitempty"`
	Message             string `bson:"message,omitempty" json:"message,omitempty"`
	SpecialRequirements string `bson:"special_requirements,omitempty" json:"specialRequirements,omitempty"`

	Status          string `bson:"status" json:"status"`
	RejectionReason string `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`

	// Two-party completion handshake. The customer flag can only ever be set
	// after the provider flag; status reaches "completed" only with both set.
	CompletionConfirmedByProvider bool   `bson:"completion_confirmed_by_provider" json:"completionConfirmedByProvider"`
	CompletionConfirmedByCustomer bool   `bson:"completion_confirmed_by_customer" json:"completionConfirmedByCustomer"`
	CompletionStatus              string `bson:"completion_status" json:"completionStatus"`

	InquiryID string    `bson:"inquiry_id,omitempty" json:"inquiryId,omitempty"` // set when created via inquiry conversion
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsTerminal reports whether no further lifecycle transitions are allowed.
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Dates returns every service date the booking covers, in order. Single-day
// bookings return just the service date.
func (b *Booking) Dates() []string {
	if b.StartDate == "" || b.EndDate == "" {
		return []string{b.ServiceDate}
	}
	start, err := time.Parse("2006-01-02", b.StartDate)
	if err != nil {
		return []string{b.ServiceDate}
	}
	end, err := time.Parse("2006-01-02", b.EndDate)
	if err != nil {
		return []string{b.ServiceDate}
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}
