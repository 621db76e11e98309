package paymentRepo

import (
	"context"
	"fmt"
	"time"

	"ceremo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new payment document.
func (r *mongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its unique ID.
func (r *mongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment %s: %w", id, err)
	}
	return &payment, nil
}

// ListByBooking fetches the payment history for a booking, oldest first.
func (r *mongoPaymentRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for booking %s: %w", bookingID, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

// GetPendingProviderRequest returns the outstanding provider-requested
// payment for a booking, if any.
func (r *mongoPaymentRepo) GetPendingProviderRequest(ctx context.Context, bookingID string) (*models.Payment, error) {
	filter := bson.M{
		"booking_id":            bookingID,
		"status":                models.PaymentStatusPending,
		"is_provider_requested": true,
	}
	var payment models.Payment
	err := r.coll.FindOne(ctx, filter).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending request for booking %s: %w", bookingID, err)
	}
	return &payment, nil
}

// UpdatePendingRequest edits a pending provider request in place.
func (r *mongoPaymentRepo) UpdatePendingRequest(ctx context.Context, id string, amount float64, paymentType, description string) error {
	filter := bson.M{"id": id, "status": models.PaymentStatusPending}
	update := bson.M{"$set": bson.M{
		"amount":       amount,
		"payment_type": paymentType,
		"description":  description,
		"updated_at":   time.Now(),
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update pending payment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}

// SetOutcome transitions a pending payment to its final state.
func (r *mongoPaymentRepo) SetOutcome(ctx context.Context, id, status, gatewayRef, failureReason string) error {
	filter := bson.M{"id": id, "status": models.PaymentStatusPending}
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if gatewayRef != "" {
		set["gateway_ref"] = gatewayRef
	}
	if failureReason != "" {
		set["failure_reason"] = failureReason
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to set outcome of payment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}
