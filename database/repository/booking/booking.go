package bookingRepo

import (
	"context"
	"errors"

	"ceremo/database"
	"ceremo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no booking matches the given ID.
var ErrNotFound = errors.New("booking not found")

// ErrPreconditionFailed is returned when a guarded update matched no document,
// i.e. the booking exists but its current state no longer satisfies the
// guard (typically because a concurrent actor won the race).
var ErrPreconditionFailed = errors.New("booking state precondition failed")

// BookingRepository defines the interface for booking data access. Mutations
// that depend on current state encode their precondition in the update filter
// so that races resolve server-side rather than via read-then-write.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// CreateWithInquiryConversion inserts the booking and marks the inquiry
	// conversation converted in a single multi-document transaction.
	CreateWithInquiryConversion(ctx context.Context, booking *models.Booking, inquiryID string) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByCustomer retrieves all bookings made by a customer.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// ListByProvider retrieves all bookings addressed to a provider.
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	// SetStatus transitions the booking from fromStatus to toStatus, guarded
	// on the current status. rejectionReason is stored only for rejections.
	SetStatus(ctx context.Context, id, fromStatus, toStatus, rejectionReason string) error
	// MarkProviderComplete sets the provider confirmation flag and moves
	// completion status to pending customer verification. Guarded on
	// status=accepted and the flag not yet set.
	MarkProviderComplete(ctx context.Context, id string) error
	// ConfirmCustomerComplete sets the customer confirmation flag, completes
	// the booking and verifies completion. Guarded on the provider flag set
	// and the customer flag unset.
	ConfirmCustomerComplete(ctx context.Context, id string) error
	// MarkDisputed flags the completion as disputed; the booking stays
	// accepted. Guarded on completion pending customer verification.
	MarkDisputed(ctx context.Context, id string) error
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll        *mongo.Collection
	inquiryColl *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by the "bookings"
// collection. The inquiry collection is needed for the conversion transaction.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.DB()
	return &MongoBookingRepo{
		coll:        db.Collection("bookings"),
		inquiryColl: db.Collection("inquiry_conversations"),
	}
}
