package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"ceremo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// SetStatus transitions the booking status, guarded on the current status.
func (r *MongoBookingRepo) SetStatus(ctx context.Context, id, fromStatus, toStatus, rejectionReason string) error {
	filter := bson.M{"id": id, "status": fromStatus}
	set := bson.M{
		"status":     toStatus,
		"updated_at": time.Now(),
	}
	if toStatus == models.BookingStatusRejected && rejectionReason != "" {
		set["rejection_reason"] = rejectionReason
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set booking %s status to %s: %w", id, toStatus, err)
	}
	if res.MatchedCount == 0 {
		return ErrPreconditionFailed
	}
	return nil
}

// MarkProviderComplete sets the provider confirmation flag, guarded on the
// booking being accepted and not already marked.
func (r *MongoBookingRepo) MarkProviderComplete(ctx context.Context, id string) error {
	filter := bson.M{
		"id":                               id,
		"status":                           models.BookingStatusAccepted,
		"completion_confirmed_by_provider": false,
	}
	update := bson.M{"$set": bson.M{
		"completion_confirmed_by_provider": true,
		"completion_status":                models.CompletionStatusPending,
		"updated_at":                       time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking %s provider-complete: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrPreconditionFailed
	}
	return nil
}

// ConfirmCustomerComplete finalizes the completion handshake, guarded on the
// provider having gone first.
func (r *MongoBookingRepo) ConfirmCustomerComplete(ctx context.Context, id string) error {
	filter := bson.M{
		"id":                               id,
		"status":                           models.BookingStatusAccepted,
		"completion_status":                models.CompletionStatusPending,
		"completion_confirmed_by_provider": true,
		"completion_confirmed_by_customer": false,
	}
	update := bson.M{"$set": bson.M{
		"completion_confirmed_by_customer": true,
		"status":                           models.BookingStatusCompleted,
		"completion_status":                models.CompletionStatusVerified,
		"updated_at":                       time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to confirm completion of booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrPreconditionFailed
	}
	return nil
}

// MarkDisputed records a customer dispute; the booking stays accepted and
// resolution moves to support.
func (r *MongoBookingRepo) MarkDisputed(ctx context.Context, id string) error {
	filter := bson.M{
		"id":                id,
		"status":            models.BookingStatusAccepted,
		"completion_status": models.CompletionStatusPending,
	}
	update := bson.M{"$set": bson.M{
		"completion_status": models.CompletionStatusDisputed,
		"updated_at":        time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking %s disputed: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrPreconditionFailed
	}
	return nil
}
