package completionRepo

import (
	"context"
	"errors"

	"ceremo/database"
	"ceremo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAlreadyExists is returned when a booking already has completion details.
var ErrAlreadyExists = errors.New("completion details already exist for booking")

// CompletionRepository stores the provider's work summary submitted at
// mark-complete time. Records are write-once.
type CompletionRepository interface {
	// Create inserts the completion details for a booking and returns the
	// record ID. At most one record may exist per booking.
	Create(ctx context.Context, details models.CompletionDetails) (string, error)
	// GetByBookingID returns the completion details for a booking, or nil
	// when none have been submitted.
	GetByBookingID(ctx context.Context, bookingID string) (*models.CompletionDetails, error)
}

type mongoCompletionRepo struct {
	coll *mongo.Collection
}

// NewMongoCompletionRepo returns a CompletionRepository backed by the
// "completion_details" collection.
func NewMongoCompletionRepo() CompletionRepository {
	return &mongoCompletionRepo{
		coll: database.DB().Collection("completion_details"),
	}
}
