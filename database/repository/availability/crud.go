package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ceremo/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new availability block record.
func (r *mongoAvailabilityRepo) Create(ctx context.Context, record *models.AvailabilityRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create availability record: %w", err)
	}
	return nil
}

// ListByProvider fetches all block records for a provider.
func (r *mongoAvailabilityRepo) ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list availability records for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var records []models.AvailabilityRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode availability records: %w", err)
	}
	return records, nil
}

// Delete removes a block record, scoped to its owning provider.
func (r *mongoAvailabilityRepo) Delete(ctx context.Context, id, providerID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "provider_id": providerID})
	if err != nil {
		return fmt.Errorf("failed to delete availability record %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return errors.New("availability record not found")
	}
	return nil
}
