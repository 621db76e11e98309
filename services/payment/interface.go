package payment

import (
	"context"

	bookingRepo "ceremo/database/repository/booking"
	paymentRepo "ceremo/database/repository/payment"
	"ceremo/models"
	"ceremo/services/notification"
	"ceremo/services/realtime"
)

// RequestPaymentInput carries a provider's payment request against a booking.
type RequestPaymentInput struct {
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"paymentType"`
	Description string  `json:"description,omitempty"`
}

// PaymentService links payments to bookings. Providers raise requests against
// accepted bookings; the gateway callback settles them. Completed payments
// are immutable.
type PaymentService interface {
	// RequestPayment creates a provider payment request, or edits the
	// booking's outstanding pending request in place if one exists.
	RequestPayment(ctx context.Context, actor models.Actor, bookingID string, input RequestPaymentInput) (*models.Payment, error)
	// VerifyPayment resolves the gateway proof and transitions the pending
	// payment to completed or failed. One-way. Only the booking's customer
	// may settle a payment.
	VerifyPayment(ctx context.Context, actor models.Actor, paymentID, gatewayRef string) (*models.Payment, error)
	// ListForBooking returns the payment history of a booking the actor is a
	// party to.
	ListForBooking(ctx context.Context, actor models.Actor, bookingID string) ([]models.Payment, error)
}

// Gateway resolves a payment reference at the external processor.
type Gateway interface {
	// IntentStatus returns the processor-side status of a payment intent.
	IntentStatus(ctx context.Context, ref string) (string, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Repo            paymentRepo.PaymentRepository
	BookingRepo     bookingRepo.BookingRepository
	NotificationSvc notification.NotificationService
	Feed            realtime.Publisher
	Gateway         Gateway
}
