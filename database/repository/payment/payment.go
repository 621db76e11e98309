package paymentRepo

import (
	"context"
	"errors"

	"ceremo/database"
	"ceremo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no payment matches the given ID.
var ErrNotFound = errors.New("payment not found")

// ErrNotPending is returned when a mutation targets a payment that is no
// longer pending. Completed payments are immutable.
var ErrNotPending = errors.New("payment is not pending")

// PaymentRepository defines methods for payment data access.
type PaymentRepository interface {
	// Create inserts a new payment record.
	Create(ctx context.Context, payment *models.Payment) error
	// GetByID retrieves a payment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	// ListByBooking retrieves the payment history for a booking.
	ListByBooking(ctx context.Context, bookingID string) ([]models.Payment, error)
	// GetPendingProviderRequest returns the booking's outstanding
	// provider-requested payment, or nil when there is none.
	GetPendingProviderRequest(ctx context.Context, bookingID string) (*models.Payment, error)
	// UpdatePendingRequest edits an outstanding pending request in place.
	// Guarded on status=pending.
	UpdatePendingRequest(ctx context.Context, id string, amount float64, paymentType, description string) error
	// SetOutcome transitions a pending payment to completed or failed.
	// Guarded on status=pending; one-way.
	SetOutcome(ctx context.Context, id, status, gatewayRef, failureReason string) error
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a PaymentRepository backed by the "payments"
// collection.
func NewMongoPaymentRepo() PaymentRepository {
	return &mongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
}
