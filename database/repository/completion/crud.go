package completionRepo

import (
	"context"
	"fmt"
	"time"

	"ceremo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts completion details for a booking, enforcing 0-or-1 per booking.
func (r *mongoCompletionRepo) Create(ctx context.Context, details models.CompletionDetails) (string, error) {
	existing, err := r.GetByBookingID(ctx, details.BookingID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrAlreadyExists
	}

	if details.ID == "" {
		details.ID = uuid.New().String()
	}
	details.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, details); err != nil {
		return "", fmt.Errorf("failed to create completion details: %w", err)
	}
	return details.ID, nil
}

// GetByBookingID returns a booking's completion details, nil when absent.
func (r *mongoCompletionRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.CompletionDetails, error) {
	var details models.CompletionDetails
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&details)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completion details for booking %s: %w", bookingID, err)
	}
	return &details, nil
}
