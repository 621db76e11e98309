package availabilityRepo

import (
	"context"

	"ceremo/database"
	"ceremo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository defines methods for availability-block data access.
type AvailabilityRepository interface {
	// Create inserts a new availability block record.
	Create(ctx context.Context, record *models.AvailabilityRecord) error
	// ListByProvider retrieves every block record for a provider.
	ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityRecord, error)
	// Delete removes a block record owned by the given provider.
	Delete(ctx context.Context, id, providerID string) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo returns an AvailabilityRepository backed by the
// "availability_records" collection.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: database.DB().Collection("availability_records"),
	}
}
