package providerRepo

import (
	"context"
	"errors"

	"ceremo/database"
	"ceremo/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no provider matches the query.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByUserID retrieves the provider owned by a user account.
	GetByUserID(ctx context.Context, userID string) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// Update modifies an existing provider record.
	Update(ctx context.Context, provider *models.Provider) error
	// SetAvailabilityStatus updates the provider's presence state.
	SetAvailabilityStatus(ctx context.Context, id, status string) error
}

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo returns a ProviderRepository backed by the "providers"
// collection.
func NewMongoProviderRepo() *MongoProviderRepo {
	return &MongoProviderRepo{
		coll: database.DB().Collection("providers"),
	}
}
